package parser

import (
	"strconv"

	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
)

// ExtractFormats dumps the shared font, fill, border and custom number-format tables.
func ExtractFormats(ss *StyleSheet) *models.Formats {
	formats := models.NewFormats()
	for _, f := range ss.sheet.Fonts.Font {
		formats.Fonts = append(formats.Fonts, projectFont(f))
	}
	for _, f := range ss.sheet.Fills.Fill {
		formats.Fills = append(formats.Fills, projectFill(f))
	}
	for _, b := range ss.sheet.Borders.Border {
		formats.Borders = append(formats.Borders, models.Border{
			Left:   borderStyle(b.Left),
			Right:  borderStyle(b.Right),
			Top:    borderStyle(b.Top),
			Bottom: borderStyle(b.Bottom),
		})
	}
	for _, nf := range ss.sheet.NumFmts.NumFmt {
		formats.NumberFormats = append(formats.NumberFormats, models.NumberFormat{
			FormatCode: nf.FormatCode,
			FormatID:   nf.NumFmtID,
		})
	}
	return formats
}

func projectFont(f xlsxFont) models.Font {
	font := models.Font{
		Bold:   flag(f.B),
		Italic: flag(f.I),
		Color:  rgb(f.Color),
	}
	if f.Name != nil {
		font.Name = f.Name.Val
	}
	if f.Sz != nil && f.Sz.Val != nil {
		if size, err := strconv.ParseFloat(*f.Sz.Val, 64); err == nil {
			font.Size = &size
		}
	}
	if f.U != nil {
		// <u/> without val is a single underline.
		underline := "single"
		if f.U.Val != nil {
			underline = *f.U.Val
		}
		if underline != "none" {
			font.Underline = &underline
		}
	}
	return font
}

func projectFill(f xlsxFill) models.Fill {
	var fill models.Fill
	switch {
	case f.PatternFill != nil:
		fill.FillType = optional(f.PatternFill.PatternType)
		fill.StartColor = rgb(f.PatternFill.FgColor)
		fill.EndColor = rgb(f.PatternFill.BgColor)
	case f.GradientFill != nil:
		gradient := f.GradientFill.Type
		if gradient == "" {
			gradient = "linear"
		}
		fill.FillType = &gradient
		if stops := f.GradientFill.Stop; len(stops) > 0 {
			fill.StartColor = rgb(&stops[0].Color)
			fill.EndColor = rgb(&stops[len(stops)-1].Color)
		}
	}
	return fill
}

// flag reads a boolean font property: present without val means true.
func flag(v *xlsxVal) bool {
	if v == nil {
		return false
	}
	if v.Val == nil {
		return true
	}
	b, err := strconv.ParseBool(*v.Val)
	return err == nil && b
}

// rgb returns the ARGB value of c, or nil for theme, indexed and missing colors.
func rgb(c *xlsxColor) *string {
	if c == nil {
		return nil
	}
	return optional(c.RGB)
}

func borderStyle(side *xlsxBorderSide) *string {
	if side == nil || side.Style == "none" {
		return nil
	}
	return optional(side.Style)
}
