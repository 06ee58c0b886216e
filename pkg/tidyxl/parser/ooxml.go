package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"io"
	"strings"
)

// Package part paths.
const (
	workbookPart     = "xl/workbook.xml"
	workbookRelsPart = "xl/_rels/workbook.xml.rels"
	stylesPart       = "xl/styles.xml"
)

// readZipFile returns the contents of the named part, or nil if the package has no such part.
func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// resolveRelativePath resolves a relationship target against the directory of its source part.
func resolveRelativePath(target, baseDir string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	if strings.HasPrefix(target, "../") {
		clean := target
		for strings.HasPrefix(clean, "../") {
			clean = strings.TrimPrefix(clean, "../")
		}
		return "xl/" + clean
	}
	return baseDir + "/" + target
}

// parseWorkbookSheets maps relationship ids to sheet names from workbook.xml.
func parseWorkbookSheets(data []byte) map[string]string {
	result := make(map[string]string) // rId -> sheet name
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "sheet" {
			var name, rID string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "name":
					name = attr.Value
				case "id":
					rID = attr.Value
				}
			}
			if name != "" && rID != "" {
				result[rID] = name
			}
		}
	}

	return result
}

// parseWorkbookRels maps sheet names to their worksheet or chartsheet part paths.
func parseWorkbookRels(data []byte, sheetsInfo map[string]string) map[string]string {
	result := make(map[string]string) // sheet name -> part path
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && se.Name.Local == "Relationship" {
			var rID, target string
			for _, attr := range se.Attr {
				switch attr.Name.Local {
				case "Id":
					rID = attr.Value
				case "Target":
					target = attr.Value
				}
			}
			if sheetName, ok := sheetsInfo[rID]; ok && isSheetTarget(target) {
				result[sheetName] = resolveRelativePath(target, "xl")
			}
		}
	}

	return result
}

func isSheetTarget(target string) bool {
	lower := strings.ToLower(target)
	return strings.Contains(lower, "worksheet") || strings.Contains(lower, "chartsheet")
}

// isChartsheetPart reports whether part is a chartsheet part.
func isChartsheetPart(part string) bool {
	return strings.Contains(strings.ToLower(part), "chartsheets/")
}

// sheetParts returns the part path of every sheet in the package.
func sheetParts(r *zip.Reader) (map[string]string, error) {
	workbookXML, err := readZipFile(r, workbookPart)
	if err != nil {
		return nil, err
	}
	relsXML, err := readZipFile(r, workbookRelsPart)
	if err != nil {
		return nil, err
	}
	return parseWorkbookRels(relsXML, parseWorkbookSheets(workbookXML)), nil
}

// xlsxDefinedName maps the definedName element of workbook.xml.
type xlsxDefinedName struct {
	Name         string `xml:"name,attr"`
	Comment      string `xml:"comment,attr"`
	Hidden       bool   `xml:"hidden,attr"`
	LocalSheetID *int   `xml:"localSheetId,attr"`
	Data         string `xml:",chardata"`
}

// parseDefinedNames reads every definedName element of workbook.xml in document order.
func parseDefinedNames(data []byte) ([]DefinedName, error) {
	var names []DefinedName
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		se, ok := token.(xml.StartElement)
		if !ok || se.Name.Local != "definedName" {
			continue
		}
		var dn xlsxDefinedName
		if err := decoder.DecodeElement(&dn, &se); err != nil {
			return nil, err
		}
		name := DefinedName{
			Name:         dn.Name,
			Formula:      dn.Data,
			Hidden:       dn.Hidden,
			LocalSheetID: dn.LocalSheetID,
		}
		if dn.Comment != "" {
			comment := dn.Comment
			name.Comment = &comment
		}
		names = append(names, name)
	}

	return names, nil
}
