package models

import "strconv"

// ValidationColumns is the fixed column order of the data-validation table.
var ValidationColumns = []string{
	"sheet", "ref", "type", "operator", "formula1", "formula2",
	"allow_blank", "show_input_message", "show_error_message",
	"prompt_title", "prompt", "error_title", "error", "error_style",
}

// ValidationRule is one data-validation rule attached to a worksheet.
type ValidationRule struct {
	// Sheet is the worksheet carrying the rule.
	Sheet string `json:"sheet" yaml:"sheet"`
	// Ref is the cell range the rule covers, e.g. "A2:A10".
	Ref *string `json:"ref" yaml:"ref"`
	// Type is one of whole, decimal, list, date, time, textLength, custom.
	Type *string `json:"type" yaml:"type"`
	// Operator is the comparison operator, e.g. between or greaterThan.
	Operator *string `json:"operator" yaml:"operator"`
	Formula1 *string `json:"formula1" yaml:"formula1"`
	Formula2 *string `json:"formula2" yaml:"formula2"`

	AllowBlank       bool `json:"allow_blank" yaml:"allow_blank"`
	ShowInputMessage bool `json:"show_input_message" yaml:"show_input_message"`
	ShowErrorMessage bool `json:"show_error_message" yaml:"show_error_message"`

	PromptTitle *string `json:"prompt_title" yaml:"prompt_title"`
	Prompt      *string `json:"prompt" yaml:"prompt"`
	ErrorTitle  *string `json:"error_title" yaml:"error_title"`
	Error       *string `json:"error" yaml:"error"`
	// ErrorStyle is stop, warning or information.
	ErrorStyle *string `json:"error_style" yaml:"error_style"`
}

// Record renders the rule in ValidationColumns order.
func (v ValidationRule) Record() []string {
	return []string{
		v.Sheet,
		str(v.Ref),
		str(v.Type),
		str(v.Operator),
		str(v.Formula1),
		str(v.Formula2),
		strconv.FormatBool(v.AllowBlank),
		strconv.FormatBool(v.ShowInputMessage),
		strconv.FormatBool(v.ShowErrorMessage),
		str(v.PromptTitle),
		str(v.Prompt),
		str(v.ErrorTitle),
		str(v.Error),
		str(v.ErrorStyle),
	}
}

// ValidationTable holds validation rules sorted by sheet and ref.
type ValidationTable struct {
	Columns []string         `json:"columns" yaml:"columns"`
	Rows    []ValidationRule `json:"rows" yaml:"rows"`
}

// NewValidationTable returns a table over rows carrying the full validation schema.
func NewValidationTable(rows []ValidationRule) *ValidationTable {
	if rows == nil {
		rows = []ValidationRule{}
	}
	return &ValidationTable{Columns: append([]string(nil), ValidationColumns...), Rows: rows}
}

func (t *ValidationTable) Header() []string { return t.Columns }

func (t *ValidationTable) Records() [][]string {
	records := make([][]string, len(t.Rows))
	for i, v := range t.Rows {
		records[i] = v.Record()
	}
	return records
}

func (t *ValidationTable) Len() int { return len(t.Rows) }
