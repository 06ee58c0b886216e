// Package parser loads xlsx workbooks and projects their cells, defined names,
// validation rules and style tables into tidy records.
package parser

import (
	"archive/zip"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// TypeTag is the low-level type of a cell as recorded in the worksheet part.
type TypeTag int

const (
	// TypeUnset marks a grid position with no c element.
	TypeUnset TypeTag = iota
	TypeNumber
	TypeSharedString
	TypeInlineString
	TypeString
	TypeBool
	TypeError
	TypeDate
	// TypeFormula marks any cell carrying an f element, whatever its t attribute.
	TypeFormula
)

func (t TypeTag) String() string {
	switch t {
	case TypeUnset:
		return "unset"
	case TypeNumber:
		return "n"
	case TypeSharedString:
		return "s"
	case TypeInlineString:
		return "inlineStr"
	case TypeString:
		return "str"
	case TypeBool:
		return "b"
	case TypeError:
		return "e"
	case TypeDate:
		return "d"
	case TypeFormula:
		return "f"
	default:
		return "unknown"
	}
}

// typeTag maps a t attribute to its tag. Cells without t are numbers.
func typeTag(t string, hasFormula bool) TypeTag {
	if hasFormula {
		return TypeFormula
	}
	switch t {
	case "", "n":
		return TypeNumber
	case "s":
		return TypeSharedString
	case "inlineStr":
		return TypeInlineString
	case "str":
		return TypeString
	case "b":
		return TypeBool
	case "e":
		return TypeError
	case "d":
		return TypeDate
	default:
		return TypeString
	}
}

// Formula holds the formula attributes of a cell. Fields the part does not
// record are nil.
type Formula struct {
	// Text is the formula with its leading "=".
	Text string
	// Array reports an f element with t="array".
	Array bool
	// Group is the shared-formula index (si).
	Group *int
	// Ref is the range recorded on array and shared master cells.
	Ref *string
}

// Cell is one cell of the workbook object model.
type Cell struct {
	Row int
	Col int
	// Value is the stored value as text; nil when the cell has none.
	Value *string
	Type  TypeTag
	// NumFmt is the number format code of the cell's format.
	NumFmt string
	// Formula is nil for cells without a formula.
	Formula *Formula
	Comment *string
	// StyleID is the cell's index into cellXfs.
	StyleID   int
	StyleName *string
}

// Sheet is a loaded worksheet: its cells in row-major order plus layout.
type Sheet struct {
	Name string
	// Cells holds the cells recorded in the part, in row-major order.
	Cells []Cell
	// MaxRow and MaxCol bound the used grid, starting at A1.
	MaxRow int
	MaxCol int

	Heights     map[int]float64
	Widths      map[int]float64
	RowOutlines map[int]int
	ColOutlines map[int]int

	// Blank is the template for grid positions that have no cell.
	Blank Cell
}

// RowHeight returns the explicit height of row, or nil.
func (s *Sheet) RowHeight(row int) *float64 {
	if h, ok := s.Heights[row]; ok {
		return &h
	}
	return nil
}

// ColWidth returns the explicit width of col, or nil.
func (s *Sheet) ColWidth(col int) *float64 {
	if w, ok := s.Widths[col]; ok {
		return &w
	}
	return nil
}

// RowOutlineLevel returns the outline level of row, 0 when unset.
func (s *Sheet) RowOutlineLevel(row int) int { return s.RowOutlines[row] }

// ColOutlineLevel returns the outline level of col, 0 when unset.
func (s *Sheet) ColOutlineLevel(col int) int { return s.ColOutlines[col] }

// Grid returns the cells of the sheet in row-major order. With fill set, every
// position from A1 to (MaxRow, MaxCol) is present, gaps taking the Blank template.
func (s *Sheet) Grid(fill bool) []Cell {
	if !fill {
		return s.Cells
	}
	var grid []Cell
	i := 0
	for row := 1; row <= s.MaxRow; row++ {
		for col := 1; col <= s.MaxCol; col++ {
			found := false
			for i < len(s.Cells) && s.Cells[i].Row == row && s.Cells[i].Col == col {
				grid = append(grid, s.Cells[i])
				i++
				found = true
			}
			if found {
				continue
			}
			blank := s.Blank
			blank.Row, blank.Col = row, col
			grid = append(grid, blank)
		}
	}
	return grid
}

// DefinedName is a definedName entry of workbook.xml.
type DefinedName struct {
	Name    string
	Formula string
	Comment *string
	Hidden  bool
	// LocalSheetID is the position of the scoping sheet, nil for global names.
	LocalSheetID *int
}

// Workbook is an open xlsx package: the excelize file plus the raw archive
// for parts excelize normalizes away.
type Workbook struct {
	file    *excelize.File
	archive *zip.ReadCloser
	parts   map[string]string
	styles  *StyleSheet
	log     logrus.FieldLogger
}

// Open opens the workbook at path. The caller must Close it.
func Open(path string, log logrus.FieldLogger) (*Workbook, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, err
	}
	wb := &Workbook{file: f, log: log}

	wb.archive, err = zip.OpenReader(path)
	if err != nil {
		wb.Close()
		return nil, err
	}
	if wb.parts, err = sheetParts(&wb.archive.Reader); err != nil {
		wb.Close()
		return nil, err
	}
	stylesXML, err := readZipFile(&wb.archive.Reader, stylesPart)
	if err != nil {
		wb.Close()
		return nil, err
	}
	if wb.styles, err = ParseStyleSheet(stylesXML); err != nil {
		wb.Close()
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"path":   path,
		"sheets": len(wb.parts),
	}).Debug("Opened workbook")
	return wb, nil
}

// Close releases the excelize file and the archive.
func (wb *Workbook) Close() error {
	var errs []error
	if wb.archive != nil {
		errs = append(errs, wb.archive.Close())
	}
	if wb.file != nil {
		errs = append(errs, wb.file.Close())
	}
	return errors.Join(errs...)
}

// SheetList returns the worksheet names in workbook order.
func (wb *Workbook) SheetList() []string {
	return wb.file.GetSheetList()
}

// Date1904 reports whether the workbook uses the 1904 date system.
func (wb *Workbook) Date1904() bool {
	props, err := wb.file.GetWorkbookProps()
	if err != nil || props.Date1904 == nil {
		return false
	}
	return *props.Date1904
}

// Styles returns the parsed shared style tables.
func (wb *Workbook) Styles() *StyleSheet {
	return wb.styles
}

// DefinedNames returns the defined names of the workbook in document order.
func (wb *Workbook) DefinedNames() ([]DefinedName, error) {
	data, err := readZipFile(&wb.archive.Reader, workbookPart)
	if err != nil {
		return nil, err
	}
	return parseDefinedNames(data)
}

// IsChartsheet reports whether sheet is a chart sheet, which holds no cells.
func (wb *Workbook) IsChartsheet(sheet string) bool {
	return isChartsheetPart(wb.parts[sheet])
}

// DataValidations returns the validation rules attached to sheet. Chart sheets have none.
func (wb *Workbook) DataValidations(sheet string) ([]*excelize.DataValidation, error) {
	if wb.IsChartsheet(sheet) {
		return nil, nil
	}
	return wb.file.GetDataValidations(sheet)
}

// Sheet loads the named worksheet.
func (wb *Workbook) Sheet(name string) (*Sheet, error) {
	part, ok := wb.parts[name]
	if !ok {
		return nil, fmt.Errorf("no worksheet part for sheet %q", name)
	}
	if isChartsheetPart(part) {
		return &Sheet{
			Name:        name,
			Heights:     map[int]float64{},
			Widths:      map[int]float64{},
			RowOutlines: map[int]int{},
			ColOutlines: map[int]int{},
		}, nil
	}
	data, err := readZipFile(&wb.archive.Reader, part)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, fmt.Errorf("worksheet part %s is missing", part)
	}
	scan, err := scanSheetXML(data)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", part, err)
	}

	comments, err := wb.comments(name)
	if err != nil {
		return nil, err
	}

	sheet := &Sheet{
		Name:        name,
		MaxRow:      scan.maxRow,
		MaxCol:      scan.maxCol,
		Heights:     scan.heights,
		Widths:      make(map[int]float64),
		RowOutlines: make(map[int]int),
		ColOutlines: make(map[int]int),
		Cells:       make([]Cell, 0, len(scan.cells)),
		Blank: Cell{
			Type:      TypeUnset,
			NumFmt:    wb.styles.NumFmtCode(0),
			StyleName: wb.styles.StyleName(0),
		},
	}

	for _, rc := range scan.cells {
		cell, err := wb.resolveCell(name, rc)
		if err != nil {
			return nil, err
		}
		if text, ok := comments[cellName(rc.col, rc.row)]; ok {
			cell.Comment = &text
		}
		sheet.Cells = append(sheet.Cells, cell)
	}
	sortCells(sheet.Cells)

	for row := 1; row <= sheet.MaxRow; row++ {
		level, err := wb.file.GetRowOutlineLevel(name, row)
		if err != nil {
			return nil, err
		}
		if level > 0 {
			sheet.RowOutlines[row] = int(level)
		}
	}
	for col := 1; col <= sheet.MaxCol; col++ {
		letters, err := excelize.ColumnNumberToName(col)
		if err != nil {
			return nil, err
		}
		level, err := wb.file.GetColOutlineLevel(name, letters)
		if err != nil {
			return nil, err
		}
		if level > 0 {
			sheet.ColOutlines[col] = int(level)
		}
		if w := scan.width(col); w != nil {
			sheet.Widths[col] = *w
		}
	}

	wb.log.WithFields(logrus.Fields{
		"sheet": name,
		"cells": len(sheet.Cells),
		"rows":  sheet.MaxRow,
		"cols":  sheet.MaxCol,
	}).Debug("Loaded worksheet")
	return sheet, nil
}

// resolveCell fills in the value, formula text and number format of a scanned cell.
func (wb *Workbook) resolveCell(sheet string, rc rawCell) (Cell, error) {
	cell := Cell{
		Row:       rc.row,
		Col:       rc.col,
		Type:      typeTag(rc.typ, rc.formula != nil),
		NumFmt:    wb.styles.NumFmtCode(rc.style),
		StyleID:   rc.style,
		StyleName: wb.styles.StyleName(rc.style),
	}
	if !rc.hasValue {
		return cell, nil
	}
	ref := cellName(rc.col, rc.row)

	if rc.formula != nil {
		text, err := wb.file.GetCellFormula(sheet, ref)
		if err != nil {
			return cell, fmt.Errorf("formula of %s!%s: %w", sheet, ref, err)
		}
		if text != "" && !strings.HasPrefix(text, "=") {
			text = "=" + text
		}
		cell.Formula = newFormula(text, rc.formula)
		cell.Value = &text
		return cell, nil
	}

	value, err := wb.file.GetCellValue(sheet, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return cell, fmt.Errorf("value of %s!%s: %w", sheet, ref, err)
	}
	cell.Value = &value
	return cell, nil
}

// comments returns the comment text of every annotated cell, keyed by reference.
func (wb *Workbook) comments(sheet string) (map[string]string, error) {
	list, err := wb.file.GetComments(sheet)
	if err != nil {
		return nil, err
	}
	result := make(map[string]string, len(list))
	for _, c := range list {
		text := c.Text
		if text == "" {
			var b strings.Builder
			for _, run := range c.Paragraph {
				b.WriteString(run.Text)
			}
			text = b.String()
		}
		result[c.Cell] = text
	}
	return result, nil
}

func newFormula(text string, f *xlsxF) *Formula {
	formula := &Formula{
		Text:  text,
		Array: f.T == "array",
	}
	if f.Si != nil {
		si := *f.Si
		formula.Group = &si
	}
	if f.Ref != "" {
		ref := f.Ref
		formula.Ref = &ref
	}
	return formula
}

// cellName converts 1-based coordinates to an A1 reference.
func cellName(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return ""
	}
	return name
}
