package parser

// FormulaMeta is the formula text and shared/array metadata of a cell.
type FormulaMeta struct {
	Formula *string
	IsArray bool
	Ref     *string
	Group   *int
}

// FormulaInfo returns the formula metadata of cell. Cells without a formula,
// or whose formula cell holds no value, yield the zero FormulaMeta.
func FormulaInfo(cell Cell) FormulaMeta {
	if cell.Type != TypeFormula || cell.Value == nil || cell.Formula == nil {
		return FormulaMeta{}
	}
	text := cell.Formula.Text
	return FormulaMeta{
		Formula: &text,
		IsArray: cell.Formula.Array,
		Ref:     cell.Formula.Ref,
		Group:   cell.Formula.Group,
	}
}
