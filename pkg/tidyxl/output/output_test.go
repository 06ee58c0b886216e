package output

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"gopkg.in/yaml.v3"
)

func sampleTable() *models.CellTable {
	n := 42.0
	content := "42"
	return models.NewCellTable([]models.Cell{{
		Sheet:    "Data",
		Address:  "B1",
		Row:      1,
		Col:      2,
		Content:  &content,
		DataType: models.DataTypeNumeric,
		Numeric:  &n,
	}})
}

func TestToJSON(t *testing.T) {
	data, err := ToJSON(sampleTable(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded["columns"], len(models.CellColumns))

	rows := decoded["rows"].([]any)
	require.Len(t, rows, 1)
	row := rows[0].(map[string]any)
	assert.Equal(t, "numeric", row["data_type"])
	assert.Equal(t, 42.0, row["numeric"])
	assert.Nil(t, row["character"])

	pretty, err := ToJSON(sampleTable(), true)
	require.NoError(t, err)
	assert.Contains(t, string(pretty), "\n  ")
}

func TestFormatsJSONKeys(t *testing.T) {
	data, err := ToJSON(models.NewFormats(), false)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 4)
	for _, key := range []string{"fonts", "fills", "borders", "number_formats"} {
		assert.Contains(t, decoded, key)
		assert.Equal(t, []any{}, decoded[key])
	}
}

func TestToYAML(t *testing.T) {
	data, err := ToYAML(sampleTable())
	require.NoError(t, err)

	var decoded struct {
		Columns []string         `yaml:"columns"`
		Rows    []map[string]any `yaml:"rows"`
	}
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, models.CellColumns, decoded.Columns)
	require.Len(t, decoded.Rows, 1)
	assert.Equal(t, "B1", decoded.Rows[0]["address"])
}

func TestTableToCSV(t *testing.T) {
	data, err := TableToCSV(sampleTable())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, strings.Join(models.CellColumns, ","), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "Data,B1,1,2,false,42,numeric,,,42,"))
}

func TestEncode(t *testing.T) {
	_, err := Encode(map[string]int{"a": 1}, FormatCSV, false)
	assert.Error(t, err)

	data, err := Encode(List{Column: "sheet", Values: []string{"Data", "Summary"}}, FormatCSV, false)
	require.NoError(t, err)
	assert.Equal(t, "sheet\nData\nSummary\n", string(data))

	data, err = Encode([]string{"Data"}, FormatJSON, false)
	require.NoError(t, err)
	assert.Equal(t, `["Data"]`, string(data))
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "yaml", "csv"} {
		f, err := ParseFormat(s)
		require.NoError(t, err)
		assert.Equal(t, Format(s), f)
	}
	_, err := ParseFormat("xml")
	assert.Error(t, err)
}
