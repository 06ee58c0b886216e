package parser

import (
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/xuri/excelize/v2"
)

// ExtractValidations extracts the data-validation rules of a sheet.
func ExtractValidations(wb *Workbook, sheetName string) ([]models.ValidationRule, error) {
	rules, err := wb.DataValidations(sheetName)
	if err != nil {
		return nil, err
	}

	result := make([]models.ValidationRule, 0, len(rules))
	for _, dv := range rules {
		if dv == nil {
			continue
		}
		result = append(result, projectValidation(sheetName, dv))
	}
	return result, nil
}

func projectValidation(sheetName string, dv *excelize.DataValidation) models.ValidationRule {
	return models.ValidationRule{
		Sheet:            sheetName,
		Ref:              optional(dv.Sqref),
		Type:             optional(dv.Type),
		Operator:         optional(dv.Operator),
		Formula1:         optional(dv.Formula1),
		Formula2:         optional(dv.Formula2),
		AllowBlank:       dv.AllowBlank,
		ShowInputMessage: dv.ShowInputMessage,
		ShowErrorMessage: dv.ShowErrorMessage,
		PromptTitle:      optionalPtr(dv.PromptTitle),
		Prompt:           optionalPtr(dv.Prompt),
		ErrorTitle:       optionalPtr(dv.ErrorTitle),
		Error:            optionalPtr(dv.Error),
		ErrorStyle:       optionalPtr(dv.ErrorStyle),
	}
}

// optional returns nil for an empty string.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalPtr(s *string) *string {
	if s == nil {
		return nil
	}
	return optional(*s)
}
