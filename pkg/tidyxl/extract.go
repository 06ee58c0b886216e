package tidyxl

import (
	"cmp"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/parser"
)

// Cells extracts every cell of the selected sheets into a tidy table sorted by
// sheet, row and column.
func Cells(path string, opts Options) (*models.CellTable, error) {
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

	includeBlank := opts.ShouldIncludeBlankCells()
	var rows []models.Cell
	for _, sheetName := range sheets {
		cells, err := parser.ExtractCells(wb, sheetName, includeBlank)
		if err != nil {
			return nil, NewExtractionError(sheetName, "cells", err)
		}
		rows = append(rows, cells...)
	}
	sortCellRecords(rows)

	log.WithFields(logrus.Fields{
		"path":   path,
		"sheets": len(sheets),
		"cells":  len(rows),
	}).Info("Extracted cells")
	return models.NewCellTable(rows), nil
}

// SheetNames returns the worksheet names in workbook order.
func SheetNames(path string, opts Options) ([]string, error) {
	log := opts.logger()
	wb, err := openWorkbook(path, opts.ShouldCheckFiletype(), log)
	if err != nil {
		return nil, err
	}
	defer closeWorkbook(wb, log)

	return wb.SheetList(), nil
}

func sortCellRecords(rows []models.Cell) {
	slices.SortStableFunc(rows, func(a, b models.Cell) int {
		if c := cmp.Compare(a.Sheet, b.Sheet); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Row, b.Row); c != 0 {
			return c
		}
		return cmp.Compare(a.Col, b.Col)
	})
}
