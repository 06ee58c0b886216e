package tidyxl

import (
	"errors"
	"fmt"
	"strings"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file could not be read as a workbook.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ErrInvalidInput indicates a bad argument: an unsupported file type or an unknown sheet.
var ErrInvalidInput = errors.New("invalid input")

// FileTypeError reports a path whose extension is not a supported workbook type.
type FileTypeError struct {
	Path string
	Ext  string
}

func (e *FileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type %q for %s: expected .xlsx or .xlsm", e.Ext, e.Path)
}

func (e *FileTypeError) Is(target error) bool { return target == ErrInvalidInput }

// SheetNotFoundError reports a requested sheet that the workbook does not contain.
type SheetNotFoundError struct {
	Sheet     string
	Available []string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found, available sheets: %s", e.Sheet, strings.Join(e.Available, ", "))
}

func (e *SheetNotFoundError) Is(target error) bool { return target == ErrInvalidInput }

// ExtractionError represents an error during extraction.
type ExtractionError struct {
	SheetName string
	Component string // "cells", "names", "validation", "formats"
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error (%s): %v", e.Component, e.Err)
	}
	return fmt.Sprintf("extraction error in sheet %q (%s): %v", e.SheetName, e.Component, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(sheetName, component string, err error) *ExtractionError {
	return &ExtractionError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
