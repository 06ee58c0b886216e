package parser

import (
	"regexp"
	"strings"
)

var rangePatterns = []*regexp.Regexp{
	regexp.MustCompile(`^[A-Z]+[0-9]+$`),
	regexp.MustCompile(`^[A-Z]+[0-9]+:[A-Z]+[0-9]+$`),
	regexp.MustCompile(`^\$?[A-Z]+\$?[0-9]+$`),
	regexp.MustCompile(`^\$?[A-Z]+\$?[0-9]+:\$?[A-Z]+\$?[0-9]+$`),
}

// IsCellRange reports whether formula is a plain reference to one cell or one
// rectangular range, optionally sheet-qualified and with $ anchors.
func IsCellRange(formula string) bool {
	if formula == "" {
		return false
	}
	if _, ref, ok := strings.Cut(formula, "!"); ok {
		formula = ref
	}
	formula = strings.TrimSpace(formula)
	for _, re := range rangePatterns {
		if re.MatchString(formula) {
			return true
		}
	}
	return false
}
