package tidyxl

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/output"
	"github.com/xuri/excelize/v2"
)

// createTestWorkbook builds a two-sheet workbook with the named ranges and
// cells the extraction tests rely on.
func createTestWorkbook(t *testing.T, name string) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Data"))
	_, err := f.NewSheet("Summary")
	require.NoError(t, err)

	require.NoError(t, f.SetCellValue("Data", "A1", "Hello"))
	require.NoError(t, f.SetCellValue("Data", "B1", 42))
	require.NoError(t, f.SetCellValue("Data", "C1", true))
	require.NoError(t, f.SetCellFormula("Data", "D1", "B1*2"))
	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Italic: true}})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Data", "E1", "E1", style))
	require.NoError(t, f.SetCellValue("Data", "B3", "below"))

	require.NoError(t, f.SetCellValue("Summary", "A1", "Report"))
	require.NoError(t, f.SetCellValue("Summary", "B2", 7.5))

	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Total",
		RefersTo: "Data!$A$1:$A$10",
	}))
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "Title",
		RefersTo: "Summary!$A$1",
		Scope:    "Summary",
	}))

	dv := excelize.NewDataValidation(true)
	dv.Sqref = "C2:C5"
	require.NoError(t, dv.SetDropList([]string{"Yes", "No"}))
	require.NoError(t, f.AddDataValidation("Summary", dv))
	dv = excelize.NewDataValidation(true)
	dv.Sqref = "A2:A5"
	require.NoError(t, dv.SetRange(0, 10, excelize.DataValidationTypeDecimal, excelize.DataValidationOperatorBetween))
	require.NoError(t, f.AddDataValidation("Summary", dv))

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, f.SaveAs(path))
	return path
}

func quietOptions() Options {
	logger, _ := test.NewNullLogger()
	return Options{Logger: logger}
}

func TestCells(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	opts := quietOptions()
	opts.Sheets = []string{"Data"}
	table, err := Cells(path, opts)
	require.NoError(t, err)
	assert.Equal(t, models.CellColumns, table.Columns)

	// A1:E3 grid.
	require.Equal(t, 15, table.Len())

	index := make(map[string]models.Cell)
	for _, c := range table.Rows {
		assert.Equal(t, "Data", c.Sheet)
		index[c.Address] = c
	}
	assert.Equal(t, models.DataTypeCharacter, index["A1"].DataType)
	assert.Equal(t, models.DataTypeNumeric, index["B1"].DataType)
	assert.Equal(t, models.DataTypeLogical, index["C1"].DataType)
	assert.Equal(t, models.DataTypeFormula, index["D1"].DataType)
	assert.Equal(t, models.DataTypeBlank, index["E1"].DataType)
	assert.True(t, index["E1"].IsBlank)
	assert.True(t, index["D3"].IsBlank)
}

func TestCellsSortedAcrossSheets(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	opts := quietOptions()
	opts.Sheets = []string{"Summary", "Data"}
	table, err := Cells(path, opts)
	require.NoError(t, err)
	require.NotEmpty(t, table.Rows)

	for i := 1; i < len(table.Rows); i++ {
		prev, cur := table.Rows[i-1], table.Rows[i]
		ordered := prev.Sheet < cur.Sheet ||
			(prev.Sheet == cur.Sheet && (prev.Row < cur.Row || (prev.Row == cur.Row && prev.Col < cur.Col)))
		assert.True(t, ordered, "%s!%s before %s!%s", prev.Sheet, prev.Address, cur.Sheet, cur.Address)
	}
	assert.Equal(t, "Data", table.Rows[0].Sheet)
}

func TestCellsTypedSlotInvariant(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	table, err := Cells(path, quietOptions())
	require.NoError(t, err)

	for _, c := range table.Rows {
		slots := map[models.DataType]bool{
			models.DataTypeError:     c.Error != nil,
			models.DataTypeLogical:   c.Logical != nil,
			models.DataTypeNumeric:   c.Numeric != nil,
			models.DataTypeDate:      c.Date != nil,
			models.DataTypeCharacter: c.Character != nil,
		}
		for dataType, set := range slots {
			assert.Equal(t, dataType == c.DataType, set, "%s!%s slot %s", c.Sheet, c.Address, dataType)
		}
		assert.Equal(t, c.IsBlank, c.Content == nil, "%s!%s", c.Sheet, c.Address)
	}
}

func TestCellsExcludeBlanks(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	all, err := Cells(path, quietOptions())
	require.NoError(t, err)

	opts := quietOptions()
	exclude := false
	opts.IncludeBlankCells = &exclude
	filled, err := Cells(path, opts)
	require.NoError(t, err)

	assert.LessOrEqual(t, filled.Len(), all.Len())
	assert.Equal(t, 7, filled.Len())
	for _, c := range filled.Rows {
		assert.False(t, c.IsBlank)
	}
}

func TestCellsEmptyResultKeepsSchema(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Cells(path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, models.CellColumns, table.Columns)
	assert.NotNil(t, table.Rows)
	assert.Zero(t, table.Len())
}

func TestCellsUnknownSheet(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	opts := quietOptions()
	opts.Sheets = []string{"Data", "Missing"}
	_, err := Cells(path, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)

	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Missing", notFound.Sheet)
	assert.Equal(t, []string{"Data", "Summary"}, notFound.Available)
	assert.Contains(t, err.Error(), "Data, Summary")
}

func TestFiletypeCheck(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("plain text"), 0644))

	_, err := Cells(txt, quietOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)
	var typeErr *FileTypeError
	require.ErrorAs(t, err, &typeErr)
	assert.Equal(t, ".txt", typeErr.Ext)

	// The extension is checked before the file is looked up.
	_, err = SheetNames(filepath.Join(dir, "missing.csv"), quietOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = Names(txt, quietOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = Validations(txt, quietOptions())
	assert.ErrorIs(t, err, ErrInvalidInput)

	// With the check off the file is opened and rejected as a workbook.
	opts := quietOptions()
	off := false
	opts.CheckFiletype = &off
	_, err = Cells(txt, opts)
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.False(t, errors.Is(err, ErrInvalidInput))
}

func TestUppercaseAndMacroExtensions(t *testing.T) {
	for _, name := range []string{"BOOK.XLSX", "book.xlsm"} {
		t.Run(name, func(t *testing.T) {
			path := createTestWorkbook(t, name)
			names, err := SheetNames(path, quietOptions())
			require.NoError(t, err)
			assert.Equal(t, []string{"Data", "Summary"}, names)
		})
	}
}

func TestFileNotFound(t *testing.T) {
	_, err := Cells(filepath.Join(t.TempDir(), "missing.xlsx"), quietOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	_, err = Formats(filepath.Join(t.TempDir(), "missing.xlsx"), quietOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestSheetNames(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	names, err := SheetNames(path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Data", "Summary"}, names)
}

func TestNames(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	table, err := Names(path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, models.NameColumns, table.Columns)
	require.Equal(t, 2, table.Len())

	total, title := table.Rows[0], table.Rows[1]
	assert.Equal(t, "Total", total.Name)
	assert.Nil(t, total.Sheet)
	assert.True(t, total.IsRange)

	assert.Equal(t, "Title", title.Name)
	require.NotNil(t, title.Sheet)
	assert.Equal(t, "Summary", *title.Sheet)
}

func TestNamesEmptyKeepsSchema(t *testing.T) {
	f := excelize.NewFile()
	path := filepath.Join(t.TempDir(), "plain.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Names(path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, models.NameColumns, table.Columns)
	assert.NotNil(t, table.Rows)
	assert.Zero(t, table.Len())
}

func TestValidations(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	table, err := Validations(path, quietOptions())
	require.NoError(t, err)
	assert.Equal(t, models.ValidationColumns, table.Columns)
	require.Equal(t, 2, table.Len())

	first, second := table.Rows[0], table.Rows[1]
	assert.Equal(t, "Summary", first.Sheet)
	require.NotNil(t, first.Ref)
	assert.Equal(t, "A2:A5", *first.Ref)
	require.NotNil(t, first.Type)
	assert.Equal(t, "decimal", *first.Type)

	require.NotNil(t, second.Ref)
	assert.Equal(t, "C2:C5", *second.Ref)
	assert.Equal(t, "list", *second.Type)

	opts := quietOptions()
	opts.Sheets = []string{"Data"}
	table, err = Validations(path, opts)
	require.NoError(t, err)
	assert.Zero(t, table.Len())
	assert.Equal(t, models.ValidationColumns, table.Columns)

	opts.Sheets = []string{"Nope"}
	_, err = Validations(path, opts)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFormats(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	formats, err := Formats(path, quietOptions())
	require.NoError(t, err)
	assert.NotEmpty(t, formats.Fonts)
	assert.NotEmpty(t, formats.Fills)
	assert.NotEmpty(t, formats.Borders)
	assert.NotNil(t, formats.NumberFormats)

	italic := false
	for _, font := range formats.Fonts {
		italic = italic || font.Italic
	}
	assert.True(t, italic)
}

func TestFormatsSkipsFiletypeCheck(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")
	renamed := filepath.Join(filepath.Dir(path), "book.bin")
	require.NoError(t, os.Rename(path, renamed))

	_, err := Formats(renamed, quietOptions())
	assert.NoError(t, err)
}

func TestCellsLogsSummary(t *testing.T) {
	path := createTestWorkbook(t, "book.xlsx")

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	_, err := Cells(path, Options{Logger: logger})
	require.NoError(t, err)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Extracted cells", entry.Message)
	assert.Equal(t, 2, entry.Data["sheets"])
}

func TestSelectSheets(t *testing.T) {
	available := []string{"A", "B", "C"}

	got, err := selectSheets(available, nil)
	require.NoError(t, err)
	assert.Equal(t, available, got)

	got, err = selectSheets(available, []string{"C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A"}, got)

	_, err = selectSheets(available, []string{"A", "Z"})
	var notFound *SheetNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "Z", notFound.Sheet)
}

func TestOptionsDefaults(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.ShouldCheckFiletype())
	assert.True(t, opts.ShouldIncludeBlankCells())
	assert.NotNil(t, opts.logger())

	off := false
	opts.CheckFiletype = &off
	opts.IncludeBlankCells = &off
	assert.False(t, opts.ShouldCheckFiletype())
	assert.False(t, opts.ShouldIncludeBlankCells())
}

func TestCellsLargeCommaStyledAmountsStayNumeric(t *testing.T) {
	f := excelize.NewFile()
	comma, err := f.NewStyle(&excelize.Style{NumFmt: 43})
	require.NoError(t, err)
	require.NoError(t, f.SetCellValue("Sheet1", "A1", 5000000000))
	require.NoError(t, f.SetCellStyle("Sheet1", "A1", "A1", comma))
	path := filepath.Join(t.TempDir(), "amounts.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Cells(path, quietOptions())
	require.NoError(t, err)
	require.Equal(t, 1, table.Len())

	a1 := table.Rows[0]
	assert.Equal(t, models.DataTypeNumeric, a1.DataType)
	assert.Nil(t, a1.Date)
	require.NotNil(t, a1.Numeric)
	assert.Equal(t, 5e9, *a1.Numeric)

	data, err := output.ToJSON(table, false)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"numeric":5000000000`)
}
