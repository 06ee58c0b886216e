package parser

import (
	"encoding/xml"
	"fmt"
)

// xlsxStyleSheet maps the parts of styles.xml that tidy extraction reads.
type xlsxStyleSheet struct {
	NumFmts struct {
		NumFmt []xlsxNumFmt `xml:"numFmt"`
	} `xml:"numFmts"`
	Fonts struct {
		Font []xlsxFont `xml:"font"`
	} `xml:"fonts"`
	Fills struct {
		Fill []xlsxFill `xml:"fill"`
	} `xml:"fills"`
	Borders struct {
		Border []xlsxBorder `xml:"border"`
	} `xml:"borders"`
	CellXfs struct {
		Xf []xlsxXf `xml:"xf"`
	} `xml:"cellXfs"`
	CellStyles struct {
		CellStyle []xlsxCellStyle `xml:"cellStyle"`
	} `xml:"cellStyles"`
}

type xlsxNumFmt struct {
	NumFmtID   int    `xml:"numFmtId,attr"`
	FormatCode string `xml:"formatCode,attr"`
}

// xlsxVal maps the many CT_*Property elements that carry a single val attribute.
type xlsxVal struct {
	Val *string `xml:"val,attr"`
}

type xlsxColor struct {
	RGB     string `xml:"rgb,attr"`
	Theme   *int   `xml:"theme,attr"`
	Indexed *int   `xml:"indexed,attr"`
}

type xlsxFont struct {
	B     *xlsxVal   `xml:"b"`
	I     *xlsxVal   `xml:"i"`
	U     *xlsxVal   `xml:"u"`
	Sz    *xlsxVal   `xml:"sz"`
	Color *xlsxColor `xml:"color"`
	Name  *xlsxVal   `xml:"name"`
}

type xlsxPatternFill struct {
	PatternType string     `xml:"patternType,attr"`
	FgColor     *xlsxColor `xml:"fgColor"`
	BgColor     *xlsxColor `xml:"bgColor"`
}

type xlsxGradientStop struct {
	Position float64   `xml:"position,attr"`
	Color    xlsxColor `xml:"color"`
}

type xlsxGradientFill struct {
	Type string             `xml:"type,attr"`
	Stop []xlsxGradientStop `xml:"stop"`
}

type xlsxFill struct {
	PatternFill  *xlsxPatternFill  `xml:"patternFill"`
	GradientFill *xlsxGradientFill `xml:"gradientFill"`
}

type xlsxBorderSide struct {
	Style string `xml:"style,attr"`
}

type xlsxBorder struct {
	Left   *xlsxBorderSide `xml:"left"`
	Right  *xlsxBorderSide `xml:"right"`
	Top    *xlsxBorderSide `xml:"top"`
	Bottom *xlsxBorderSide `xml:"bottom"`
}

type xlsxXf struct {
	NumFmtID int  `xml:"numFmtId,attr"`
	XfID     *int `xml:"xfId,attr"`
}

type xlsxCellStyle struct {
	Name string `xml:"name,attr"`
	XfID int    `xml:"xfId,attr"`
}

// StyleSheet is the parsed shared style tables of a workbook.
type StyleSheet struct {
	sheet      xlsxStyleSheet
	numFmts    map[int]string
	styleNames map[int]string // cellStyleXfs index -> cell style name
}

// ParseStyleSheet parses the contents of styles.xml. Empty data yields an empty sheet.
func ParseStyleSheet(data []byte) (*StyleSheet, error) {
	ss := &StyleSheet{
		numFmts:    make(map[int]string),
		styleNames: make(map[int]string),
	}
	if len(data) > 0 {
		if err := xml.Unmarshal(data, &ss.sheet); err != nil {
			return nil, fmt.Errorf("parse %s: %w", stylesPart, err)
		}
	}
	for _, nf := range ss.sheet.NumFmts.NumFmt {
		ss.numFmts[nf.NumFmtID] = nf.FormatCode
	}
	for _, cs := range ss.sheet.CellStyles.CellStyle {
		if _, ok := ss.styleNames[cs.XfID]; !ok {
			ss.styleNames[cs.XfID] = cs.Name
		}
	}
	return ss, nil
}

// NumFmtCode returns the number format code applied by cell format xf.
func (ss *StyleSheet) NumFmtCode(xf int) string {
	if xf < 0 || xf >= len(ss.sheet.CellXfs.Xf) {
		return generalNumFmt
	}
	id := ss.sheet.CellXfs.Xf[xf].NumFmtID
	if code, ok := ss.numFmts[id]; ok {
		return code
	}
	if code, ok := builtInNumFmt[id]; ok {
		return code
	}
	return generalNumFmt
}

// StyleName returns the named cell style that cell format xf inherits from.
func (ss *StyleSheet) StyleName(xf int) *string {
	if xf < 0 || xf >= len(ss.sheet.CellXfs.Xf) {
		return nil
	}
	parent := 0
	if id := ss.sheet.CellXfs.Xf[xf].XfID; id != nil {
		parent = *id
	}
	name, ok := ss.styleNames[parent]
	if !ok {
		return nil
	}
	return &name
}
