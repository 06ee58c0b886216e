package tidyxl

import (
	"github.com/sirupsen/logrus"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/parser"
)

// Formats dumps the workbook's shared font, fill, border and number-format
// tables. The file extension is not checked and only opts.Logger is read.
func Formats(path string, opts Options) (*models.Formats, error) {
	log := opts.logger()
	wb, err := openWorkbook(path, false, log)
	if err != nil {
		return nil, err
	}
	defer closeWorkbook(wb, log)

	formats := parser.ExtractFormats(wb.Styles())
	log.WithFields(logrus.Fields{
		"path":           path,
		"fonts":          len(formats.Fonts),
		"fills":          len(formats.Fills),
		"borders":        len(formats.Borders),
		"number_formats": len(formats.NumberFormats),
	}).Info("Extracted formats")
	return formats, nil
}
