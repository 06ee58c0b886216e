package tidyxl

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/parser"
)

var workbookExts = []string{".xlsx", ".xlsm"}

// checkFiletype rejects paths whose extension is not a supported workbook type.
func checkFiletype(path string) error {
	ext := strings.ToLower(filepath.Ext(path))
	if !slices.Contains(workbookExts, ext) {
		return &FileTypeError{Path: path, Ext: filepath.Ext(path)}
	}
	return nil
}

// openWorkbook validates path and opens it. The caller must close the workbook.
func openWorkbook(path string, check bool, log logrus.FieldLogger) (*parser.Workbook, error) {
	if check {
		if err := checkFiletype(path); err != nil {
			return nil, err
		}
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
		}
		return nil, err
	}
	wb, err := parser.Open(path, log)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidFormat, path, err)
	}
	return wb, nil
}

// closeWorkbook closes wb, logging rather than returning a failure.
func closeWorkbook(wb *parser.Workbook, log logrus.FieldLogger) {
	if err := wb.Close(); err != nil {
		log.WithError(err).Warn("Failed to close workbook")
	}
}

// selectSheets resolves the requested sheets against the workbook's sheet list.
// An empty request selects every sheet; any unknown name fails the whole selection.
func selectSheets(available, requested []string) ([]string, error) {
	if len(requested) == 0 {
		return available, nil
	}
	for _, name := range requested {
		if !slices.Contains(available, name) {
			return nil, &SheetNotFoundError{Sheet: name, Available: available}
		}
	}
	return requested, nil
}
