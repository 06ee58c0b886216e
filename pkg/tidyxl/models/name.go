package models

import "strconv"

// NameColumns is the fixed column order of the named-range table.
var NameColumns = []string{"sheet", "name", "formula", "comment", "hidden", "is_range"}

// Name is a defined name (named range or named formula).
type Name struct {
	// Sheet is the sheet the name is scoped to, nil for workbook-global names.
	Sheet *string `json:"sheet" yaml:"sheet"`
	// Name is the defined name.
	Name string `json:"name" yaml:"name"`
	// Formula is the text the name refers to, e.g. "Sheet1!$A$1:$B$10".
	Formula string `json:"formula" yaml:"formula"`
	// Comment is the description entered by the workbook author.
	Comment *string `json:"comment" yaml:"comment"`
	// Hidden reports that the name is hidden from the user interface.
	Hidden bool `json:"hidden" yaml:"hidden"`
	// IsRange reports that Formula is a plain cell or range reference.
	IsRange bool `json:"is_range" yaml:"is_range"`
}

// Record renders the name in NameColumns order.
func (n Name) Record() []string {
	return []string{
		str(n.Sheet),
		n.Name,
		n.Formula,
		str(n.Comment),
		strconv.FormatBool(n.Hidden),
		strconv.FormatBool(n.IsRange),
	}
}

// NameTable holds the defined names of a workbook, global names first.
type NameTable struct {
	Columns []string `json:"columns" yaml:"columns"`
	Rows    []Name   `json:"rows" yaml:"rows"`
}

// NewNameTable returns a table over rows carrying the full name schema.
func NewNameTable(rows []Name) *NameTable {
	if rows == nil {
		rows = []Name{}
	}
	return &NameTable{Columns: append([]string(nil), NameColumns...), Rows: rows}
}

func (t *NameTable) Header() []string { return t.Columns }

func (t *NameTable) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, n := range t.Rows {
		records[i] = n.Record()
	}
	return records
}

func (t *NameTable) Len() int { return len(t.Rows) }
