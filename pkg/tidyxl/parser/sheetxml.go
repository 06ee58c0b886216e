package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"
)

// xlsxC maps the c element of a worksheet part.
type xlsxC struct {
	R  string    `xml:"r,attr"`
	S  int       `xml:"s,attr"`
	T  string    `xml:"t,attr"`
	F  *xlsxF    `xml:"f"`
	V  *string   `xml:"v"`
	IS *struct{} `xml:"is"`
}

// xlsxF maps the f element: formula text plus its array/shared attributes.
type xlsxF struct {
	Content string `xml:",chardata"`
	T       string `xml:"t,attr"`
	Ref     string `xml:"ref,attr"`
	Si      *int   `xml:"si,attr"`
}

// rawCell is a cell as recorded in the worksheet part, before values are resolved.
type rawCell struct {
	row, col int
	style    int
	typ      string
	hasValue bool
	formula  *xlsxF
}

// colSpan is a cols/col entry: a run of columns sharing a width.
type colSpan struct {
	min, max int
	width    *float64
}

// sheetScan is the structure of a worksheet part that excelize does not expose:
// value presence, formula attributes and explicitly recorded dimensions.
type sheetScan struct {
	cells   []rawCell
	heights map[int]float64
	cols    []colSpan
	maxRow  int
	maxCol  int
}

// scanSheetXML walks a worksheet part and records its rows, columns and cells.
// Rows and cells missing an r attribute take the position after their predecessor.
func scanSheetXML(data []byte) (*sheetScan, error) {
	scan := &sheetScan{heights: make(map[int]float64)}
	decoder := xml.NewDecoder(bytes.NewReader(data))

	row, col := 0, 0
	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}

		switch se.Name.Local {
		case "col":
			scan.cols = append(scan.cols, parseColSpan(se))
		case "row":
			row, col = parseRowStart(se, row, scan.heights), 0
		case "c":
			var c xlsxC
			if err := decoder.DecodeElement(&c, &se); err != nil {
				return nil, err
			}
			if c.R != "" {
				if col, row, err = excelize.CellNameToCoordinates(c.R); err != nil {
					return nil, fmt.Errorf("cell reference %q: %w", c.R, err)
				}
			} else {
				col++
				if row == 0 {
					row = 1
				}
			}
			scan.add(rawCell{
				row:      row,
				col:      col,
				style:    c.S,
				typ:      c.T,
				hasValue: c.V != nil || c.IS != nil || c.F != nil,
				formula:  c.F,
			})
		}
	}

	return scan, nil
}

func (s *sheetScan) add(c rawCell) {
	s.cells = append(s.cells, c)
	if c.row > s.maxRow {
		s.maxRow = c.row
	}
	if c.col > s.maxCol {
		s.maxCol = c.col
	}
}

// parseRowStart reads a row element, records its explicit height and returns its number.
func parseRowStart(se xml.StartElement, prev int, heights map[int]float64) int {
	row := prev + 1
	var ht *float64
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "r":
			if n, err := strconv.Atoi(attr.Value); err == nil {
				row = n
			}
		case "ht":
			if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
				ht = &v
			}
		}
	}
	if ht != nil {
		heights[row] = *ht
	}
	return row
}

func parseColSpan(se xml.StartElement) colSpan {
	var span colSpan
	for _, attr := range se.Attr {
		switch attr.Name.Local {
		case "min":
			span.min, _ = strconv.Atoi(attr.Value)
		case "max":
			span.max, _ = strconv.Atoi(attr.Value)
		case "width":
			if v, err := strconv.ParseFloat(attr.Value, 64); err == nil {
				span.width = &v
			}
		}
	}
	if span.max < span.min {
		span.max = span.min
	}
	return span
}

// width returns the explicit width of column col, or nil.
func (s *sheetScan) width(col int) *float64 {
	for _, span := range s.cols {
		if col >= span.min && col <= span.max && span.width != nil {
			w := *span.width
			return &w
		}
	}
	return nil
}
