package parser

import (
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
)

// ExtractNames extracts the defined names of a workbook in document order.
// A sheet-local name takes the sheet at its localSheetId position; an index
// outside the sheet list leaves the name global.
func ExtractNames(wb *Workbook) ([]models.Name, error) {
	definedNames, err := wb.DefinedNames()
	if err != nil {
		return nil, err
	}
	sheets := wb.SheetList()

	result := make([]models.Name, 0, len(definedNames))
	for _, dn := range definedNames {
		name := models.Name{
			Name:    dn.Name,
			Formula: dn.Formula,
			Comment: dn.Comment,
			Hidden:  dn.Hidden,
			IsRange: IsCellRange(dn.Formula),
		}
		if id := dn.LocalSheetID; id != nil && *id >= 0 && *id < len(sheets) {
			sheet := sheets[*id]
			name.Sheet = &sheet
		}
		result = append(result, name)
	}
	return result, nil
}
