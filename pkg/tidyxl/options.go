// Package tidyxl extracts the cells of xlsx workbooks into tidy tables, one
// record per cell, along with sheet names, defined names, data-validation
// rules and the shared style tables.
package tidyxl

import "github.com/sirupsen/logrus"

// Options configures extraction behavior.
type Options struct {
	// Sheets limits extraction to the named sheets, in the given order.
	// Nil or empty selects every sheet in workbook order.
	Sheets []string
	// CheckFiletype rejects paths without an .xlsx or .xlsm extension.
	// If nil, defaults to true.
	CheckFiletype *bool
	// IncludeBlankCells keeps cells that have no value.
	// If nil, defaults to true.
	IncludeBlankCells *bool
	// Logger receives diagnostics. If nil, the logrus standard logger is used.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldCheckFiletype returns whether to validate the file extension.
func (o Options) ShouldCheckFiletype() bool {
	if o.CheckFiletype != nil {
		return *o.CheckFiletype
	}
	return true
}

// ShouldIncludeBlankCells returns whether to keep blank cells.
func (o Options) ShouldIncludeBlankCells() bool {
	if o.IncludeBlankCells != nil {
		return *o.IncludeBlankCells
	}
	return true
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger != nil {
		return o.Logger
	}
	return logrus.StandardLogger()
}
