package tidyxl

import (
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/parser"
)

// Validations extracts the data-validation rules of the selected sheets,
// sorted by sheet and covered range.
func Validations(path string, opts Options) (*models.ValidationTable, error) {
	log := opts.logger()
	wb, err := openWorkbook(path, opts.ShouldCheckFiletype(), log)
	if err != nil {
		return nil, err
	}
	defer closeWorkbook(wb, log)

	sheets, err := selectSheets(wb.SheetList(), opts.Sheets)
	if err != nil {
		return nil, err
	}

	var rules []models.ValidationRule
	for _, sheetName := range sheets {
		sheetRules, err := parser.ExtractValidations(wb, sheetName)
		if err != nil {
			return nil, NewExtractionError(sheetName, "validation", err)
		}
		rules = append(rules, sheetRules...)
	}
	slices.SortStableFunc(rules, func(a, b models.ValidationRule) int {
		if c := cmp.Compare(a.Sheet, b.Sheet); c != 0 {
			return c
		}
		return cmp.Compare(deref(a.Ref), deref(b.Ref))
	})

	log.WithFields(logrus.Fields{
		"path":   path,
		"sheets": len(sheets),
		"rules":  len(rules),
	}).Info("Extracted data validations")
	return models.NewValidationTable(rules), nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
