// Package output serializes extraction results as JSON, YAML or CSV.
package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatCSV  Format = "csv"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML, FormatCSV:
		return f, nil
	default:
		return "", fmt.Errorf("invalid format: %s (must be json, yaml, or csv)", s)
	}
}

// Table is a header plus string records, as rendered by the model tables.
type Table interface {
	Header() []string
	Records() [][]string
}

// ToJSON serializes v to JSON.
func ToJSON(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToYAML serializes v to YAML.
func ToYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteCSV writes the header and records of t to w.
func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header()); err != nil {
		return err
	}
	if err := cw.WriteAll(t.Records()); err != nil {
		return err
	}
	return cw.Error()
}

// TableToCSV renders t as CSV.
func TableToCSV(t Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Encode serializes v in format. CSV requires v to be a Table.
func Encode(v any, format Format, pretty bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ToJSON(v, pretty)
	case FormatYAML:
		return ToYAML(v)
	case FormatCSV:
		t, ok := v.(Table)
		if !ok {
			return nil, fmt.Errorf("%T cannot be written as csv", v)
		}
		return TableToCSV(t)
	default:
		return nil, fmt.Errorf("invalid format: %s", format)
	}
}

// List adapts a string list, such as sheet names, to a one-column Table.
type List struct {
	Column string
	Values []string
}

func (l List) Header() []string { return []string{l.Column} }

func (l List) Records() [][]string {
	records := make([][]string, len(l.Values))
	for i, v := range l.Values {
		records[i] = []string{v}
	}
	return records
}
