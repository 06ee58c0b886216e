// Package models defines the tidy records produced by workbook extraction.
package models

import (
	"strconv"
	"time"
)

// DataType is the semantic type assigned to a cell.
type DataType string

const (
	DataTypeError     DataType = "error"
	DataTypeLogical   DataType = "logical"
	DataTypeNumeric   DataType = "numeric"
	DataTypeDate      DataType = "date"
	DataTypeCharacter DataType = "character"
	DataTypeFormula   DataType = "formula"
	DataTypeBlank     DataType = "blank"
)

// CellColumns is the fixed column order of the tidy cell table.
var CellColumns = []string{
	"sheet", "address", "row", "col", "is_blank", "content", "data_type",
	"error", "logical", "numeric", "date", "character",
	"formula", "is_array", "formula_ref", "formula_group", "comment",
	"height", "width", "row_outline_level", "col_outline_level",
	"style_format", "local_format_id",
}

// Cell is one spreadsheet cell in tidy form.
//
// At most one of Error, Logical, Numeric, Date and Character is non-nil, and it
// is the one matching DataType. Formula and blank cells leave all five nil.
type Cell struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet" yaml:"sheet"`
	// Address is the A1-style cell reference.
	Address string `json:"address" yaml:"address"`
	// Row is the 1-based row number.
	Row int `json:"row" yaml:"row"`
	// Col is the 1-based column number.
	Col int `json:"col" yaml:"col"`
	// IsBlank reports that the cell has no value and a numeric or unset type tag.
	IsBlank bool `json:"is_blank" yaml:"is_blank"`
	// Content is the stored value as text, before any type conversion.
	Content *string `json:"content" yaml:"content"`
	// DataType is the semantic type of the cell.
	DataType DataType `json:"data_type" yaml:"data_type"`

	Error     *string    `json:"error" yaml:"error"`
	Logical   *bool      `json:"logical" yaml:"logical"`
	Numeric   *float64   `json:"numeric" yaml:"numeric"`
	Date      *time.Time `json:"date" yaml:"date"`
	Character *string    `json:"character" yaml:"character"`

	// Formula is the formula text, starting with "=".
	Formula *string `json:"formula" yaml:"formula"`
	// IsArray reports an array (CSE) formula.
	IsArray bool `json:"is_array" yaml:"is_array"`
	// FormulaRef is the range covered by an array or shared formula, when recorded on the cell.
	FormulaRef *string `json:"formula_ref" yaml:"formula_ref"`
	// FormulaGroup is the shared-formula group index.
	FormulaGroup *int `json:"formula_group" yaml:"formula_group"`
	// Comment is the text of the cell comment (note).
	Comment *string `json:"comment" yaml:"comment"`

	// Height is the explicit row height in points.
	Height *float64 `json:"height" yaml:"height"`
	// Width is the explicit column width in characters.
	Width           *float64 `json:"width" yaml:"width"`
	RowOutlineLevel int      `json:"row_outline_level" yaml:"row_outline_level"`
	ColOutlineLevel int      `json:"col_outline_level" yaml:"col_outline_level"`

	// StyleFormat is the named cell style applied to the cell (e.g. "Normal").
	StyleFormat *string `json:"style_format" yaml:"style_format"`
	// LocalFormatID is the index of the cell format in the workbook's cellXfs table.
	LocalFormatID int `json:"local_format_id" yaml:"local_format_id"`
}

// Record renders the cell as strings in CellColumns order. Nil values render as "".
func (c Cell) Record() []string {
	var date *string
	if c.Date != nil {
		s := c.Date.Format(time.RFC3339)
		date = &s
	}
	return []string{
		c.Sheet,
		c.Address,
		strconv.Itoa(c.Row),
		strconv.Itoa(c.Col),
		strconv.FormatBool(c.IsBlank),
		str(c.Content),
		string(c.DataType),
		str(c.Error),
		boolStr(c.Logical),
		floatStr(c.Numeric),
		str(date),
		str(c.Character),
		str(c.Formula),
		strconv.FormatBool(c.IsArray),
		str(c.FormulaRef),
		intStr(c.FormulaGroup),
		str(c.Comment),
		floatStr(c.Height),
		floatStr(c.Width),
		strconv.Itoa(c.RowOutlineLevel),
		strconv.Itoa(c.ColOutlineLevel),
		str(c.StyleFormat),
		strconv.Itoa(c.LocalFormatID),
	}
}

// CellTable is the tidy cell table: one row per cell, sorted by sheet, row and column.
type CellTable struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Cell   `json:"rows" yaml:"rows"`
}

// NewCellTable returns a table over rows carrying the full cell schema.
// A nil rows slice becomes an empty table, never a schema-less one.
func NewCellTable(rows []Cell) *CellTable {
	if rows == nil {
		rows = []Cell{}
	}
	return &CellTable{
		Columns: append([]string(nil), CellColumns...),
		Rows:    rows,
	}
}

// Header implements output.Table.
func (t *CellTable) Header() []string { return t.Columns }

// Records implements output.Table.
func (t *CellTable) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, c := range t.Rows {
		records[i] = c.Record()
	}
	return records
}

// Len returns the number of cells in the table.
func (t *CellTable) Len() int { return len(t.Rows) }
