package tidyxl

import (
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/parser"
)

// Names extracts the defined names of the workbook. Global names come first,
// then sheet-scoped names by sheet; each group is ordered by name.
func Names(path string, opts Options) (*models.NameTable, error) {
	log := opts.logger()
	wb, err := openWorkbook(path, opts.ShouldCheckFiletype(), log)
	if err != nil {
		return nil, err
	}
	defer closeWorkbook(wb, log)

	names, err := parser.ExtractNames(wb)
	if err != nil {
		return nil, NewExtractionError("", "names", err)
	}
	slices.SortStableFunc(names, func(a, b models.Name) int {
		if c := cmp.Compare(scope(a), scope(b)); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})

	log.WithFields(logrus.Fields{
		"path":  path,
		"names": len(names),
	}).Info("Extracted defined names")
	return models.NewNameTable(names), nil
}

func scope(n models.Name) string {
	if n.Sheet == nil {
		return ""
	}
	return *n.Sheet
}
