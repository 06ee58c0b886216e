package models

// Font is one entry of the workbook's shared font table.
type Font struct {
	Name      *string  `json:"name" yaml:"name"`
	Size      *float64 `json:"size" yaml:"size"`
	Bold      bool     `json:"bold" yaml:"bold"`
	Italic    bool     `json:"italic" yaml:"italic"`
	Underline *string  `json:"underline" yaml:"underline"`
	// Color is the ARGB hex value, nil for theme or indexed colors.
	Color *string `json:"color" yaml:"color"`
}

// Fill is one entry of the workbook's shared fill table.
type Fill struct {
	// FillType is the pattern type (e.g. solid, gray125) or the gradient type.
	FillType   *string `json:"fill_type" yaml:"fill_type"`
	StartColor *string `json:"start_color" yaml:"start_color"`
	EndColor   *string `json:"end_color" yaml:"end_color"`
}

// Border is one entry of the workbook's shared border table.
// Each side holds the line style, or nil when the side has none.
type Border struct {
	Left   *string `json:"left" yaml:"left"`
	Right  *string `json:"right" yaml:"right"`
	Top    *string `json:"top" yaml:"top"`
	Bottom *string `json:"bottom" yaml:"bottom"`
}

// NumberFormat is one custom number format declared by the workbook.
type NumberFormat struct {
	FormatCode string `json:"format_code" yaml:"format_code"`
	FormatID   int    `json:"format_id" yaml:"format_id"`
}

// Formats is a flat dump of the workbook's shared style tables, in table order.
type Formats struct {
	Fonts         []Font         `json:"fonts" yaml:"fonts"`
	Fills         []Fill         `json:"fills" yaml:"fills"`
	Borders       []Border       `json:"borders" yaml:"borders"`
	NumberFormats []NumberFormat `json:"number_formats" yaml:"number_formats"`
}

// NewFormats returns a Formats value whose four lists are empty, not nil.
func NewFormats() *Formats {
	return &Formats{
		Fonts:         []Font{},
		Fills:         []Fill{},
		Borders:       []Border{},
		NumberFormats: []NumberFormat{},
	}
}
