package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/xuri/excelize/v2"
)

// dateTokens are the substrings whose presence in a lower-cased number format
// marks it as a date or time format.
var dateTokens = []string{"d", "m", "y", "h", "s", ":", "/", "-"}

// Serials converting outside these years are kept numeric.
const (
	minDateYear = 1
	maxDateYear = 9999
)

// Classification is the semantic type of a cell with its one typed value.
// Every slot is nil for blank and formula cells.
type Classification struct {
	DataType  models.DataType
	IsBlank   bool
	Error     *string
	Logical   *bool
	Numeric   *float64
	Date      *time.Time
	Character *string
}

// IsDateFormat reports whether numFmt looks like a date format.
// The check is a substring match, so a format such as "0.00;-0.00" also qualifies.
func IsDateFormat(numFmt string) bool {
	lower := strings.ToLower(numFmt)
	for _, tok := range dateTokens {
		if strings.Contains(lower, tok) {
			return true
		}
	}
	return false
}

// Classify decides the data type of cell and fills the matching slot.
// Numbers stored under a date format are converted with the workbook's
// date system; a failed or out-of-range conversion leaves the cell numeric.
func Classify(cell Cell, date1904 bool) Classification {
	if cell.Value == nil {
		return Classification{
			DataType: models.DataTypeBlank,
			IsBlank:  cell.Type == TypeNumber || cell.Type == TypeUnset,
		}
	}
	value := *cell.Value

	switch cell.Type {
	case TypeFormula:
		return Classification{DataType: models.DataTypeFormula}
	case TypeError:
		return Classification{DataType: models.DataTypeError, Error: &value}
	case TypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			break
		}
		return Classification{DataType: models.DataTypeLogical, Logical: &b}
	case TypeNumber:
		n, err := strconv.ParseFloat(value, 64)
		if err != nil {
			break
		}
		if IsDateFormat(cell.NumFmt) {
			if t, err := excelize.ExcelDateToTime(n, date1904); err == nil && t.Year() >= minDateYear && t.Year() <= maxDateYear {
				return Classification{DataType: models.DataTypeDate, Date: &t}
			}
		}
		return Classification{DataType: models.DataTypeNumeric, Numeric: &n}
	}

	return Classification{DataType: models.DataTypeCharacter, Character: &value}
}
