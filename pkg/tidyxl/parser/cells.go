package parser

import (
	"cmp"
	"slices"

	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
)

// ExtractCells extracts the tidy records of a sheet in row-major order.
// Blank cells are skipped unless includeBlank is set.
func ExtractCells(wb *Workbook, sheetName string, includeBlank bool) ([]models.Cell, error) {
	sheet, err := wb.Sheet(sheetName)
	if err != nil {
		return nil, err
	}
	date1904 := wb.Date1904()

	var result []models.Cell
	for _, cell := range sheet.Grid(includeBlank) {
		class := Classify(cell, date1904)
		if class.IsBlank && !includeBlank {
			continue
		}
		result = append(result, assembleCell(sheet, cell, class))
	}
	return result, nil
}

// assembleCell merges the classification, formula metadata, comment and layout of a cell.
func assembleCell(sheet *Sheet, cell Cell, class Classification) models.Cell {
	formula := FormulaInfo(cell)
	return models.Cell{
		Sheet:           sheet.Name,
		Address:         cellName(cell.Col, cell.Row),
		Row:             cell.Row,
		Col:             cell.Col,
		IsBlank:         class.IsBlank,
		Content:         cell.Value,
		DataType:        class.DataType,
		Error:           class.Error,
		Logical:         class.Logical,
		Numeric:         class.Numeric,
		Date:            class.Date,
		Character:       class.Character,
		Formula:         formula.Formula,
		IsArray:         formula.IsArray,
		FormulaRef:      formula.Ref,
		FormulaGroup:    formula.Group,
		Comment:         cell.Comment,
		Height:          sheet.RowHeight(cell.Row),
		Width:           sheet.ColWidth(cell.Col),
		RowOutlineLevel: sheet.RowOutlineLevel(cell.Row),
		ColOutlineLevel: sheet.ColOutlineLevel(cell.Col),
		StyleFormat:     cell.StyleName,
		LocalFormatID:   cell.StyleID,
	}
}

// sortCells orders cells by row, then column. Duplicate positions keep part order.
func sortCells(cells []Cell) {
	slices.SortStableFunc(cells, func(a, b Cell) int {
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
}
