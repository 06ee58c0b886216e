// Package main provides the CLI entry point for tidyxl.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/wwd1015/tidyxl/pkg/tidyxl"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/models"
	"github.com/wwd1015/tidyxl/pkg/tidyxl/output"
)

var (
	outputPath    string
	outputFormat  string
	pretty        bool
	logLevel      string
	sheets        []string
	includeBlank  bool
	checkFiletype bool
	sheetsDir     string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tidyxl",
		Short: "Extract tidy cell tables from Excel files",
		Long: `tidyxl reads xlsx and xlsm workbooks and writes one record per cell,
with typed values, formulas, comments and layout, plus sheet names,
defined names, data validations and the shared style tables.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&outputPath, "output", "o", "", "Output file path (default: stdout)")
	pf.StringVar(&outputFormat, "format", "json", "Output format: json, yaml, csv")
	pf.BoolVar(&pretty, "pretty", false, "Pretty-print JSON output")
	pf.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: $LOG_LEVEL or warn)")

	cellsCmd := &cobra.Command{
		Use:   "cells [input.xlsx]",
		Short: "Extract every cell into a tidy table",
		Args:  cobra.ExactArgs(1),
		RunE:  runCells,
	}
	cellsCmd.Flags().StringArrayVar(&sheets, "sheet", nil, "Sheet to extract (repeatable; default: all sheets)")
	cellsCmd.Flags().BoolVar(&includeBlank, "blank", true, "Include cells without a value")
	cellsCmd.Flags().BoolVar(&checkFiletype, "check-filetype", true, "Reject files without an .xlsx or .xlsm extension")
	cellsCmd.Flags().StringVar(&sheetsDir, "sheets-dir", "", "Directory for per-sheet output files")

	sheetsCmd := &cobra.Command{
		Use:   "sheets [input.xlsx]",
		Short: "List worksheet names in workbook order",
		Args:  cobra.ExactArgs(1),
		RunE:  runSheets,
	}
	sheetsCmd.Flags().BoolVar(&checkFiletype, "check-filetype", true, "Reject files without an .xlsx or .xlsm extension")

	namesCmd := &cobra.Command{
		Use:   "names [input.xlsx]",
		Short: "Extract defined names",
		Args:  cobra.ExactArgs(1),
		RunE:  runNames,
	}
	namesCmd.Flags().BoolVar(&checkFiletype, "check-filetype", true, "Reject files without an .xlsx or .xlsm extension")

	validationCmd := &cobra.Command{
		Use:   "validation [input.xlsx]",
		Short: "Extract data-validation rules",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidation,
	}
	validationCmd.Flags().StringArrayVar(&sheets, "sheet", nil, "Sheet to extract (repeatable; default: all sheets)")
	validationCmd.Flags().BoolVar(&checkFiletype, "check-filetype", true, "Reject files without an .xlsx or .xlsm extension")

	formatsCmd := &cobra.Command{
		Use:   "formats [input.xlsx]",
		Short: "Dump the shared font, fill, border and number-format tables",
		Args:  cobra.ExactArgs(1),
		RunE:  runFormats,
	}

	rootCmd.AddCommand(cellsCmd, sheetsCmd, namesCmd, validationCmd, formatsCmd)
	return rootCmd
}

func runCells(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	table, err := tidyxl.Cells(args[0], options(cmd))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	if sheetsDir != "" {
		if err := writeSheetFiles(table, sheetsDir, format); err != nil {
			return fmt.Errorf("failed to write sheet files: %w", err)
		}
		if outputPath == "" {
			return nil
		}
	}
	return emit(table, format)
}

func runSheets(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	names, err := tidyxl.SheetNames(args[0], options(cmd))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	if format == output.FormatCSV {
		return emit(output.List{Column: "sheet", Values: names}, format)
	}
	return emit(names, format)
}

func runNames(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	table, err := tidyxl.Names(args[0], options(cmd))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return emit(table, format)
}

func runValidation(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	table, err := tidyxl.Validations(args[0], options(cmd))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return emit(table, format)
}

func runFormats(cmd *cobra.Command, args []string) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	if format == output.FormatCSV {
		return fmt.Errorf("formats cannot be written as csv (use json or yaml)")
	}
	formats, err := tidyxl.Formats(args[0], options(cmd))
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return emit(formats, format)
}

// options builds library options from the flags the command defines.
func options(cmd *cobra.Command) tidyxl.Options {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(parseLogLevel(logLevel))
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	opts := tidyxl.Options{Logger: logger}
	flags := cmd.Flags()
	if flags.Lookup("sheet") != nil {
		opts.Sheets = sheets
	}
	if flags.Lookup("check-filetype") != nil {
		opts.CheckFiletype = &checkFiletype
	}
	if flags.Lookup("blank") != nil {
		opts.IncludeBlankCells = &includeBlank
	}
	return opts
}

// parseLogLevel resolves the level from the flag, then LOG_LEVEL, defaulting to warn.
func parseLogLevel(flag string) logrus.Level {
	level := flag
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.WarnLevel
	}
}

func emit(v any, format output.Format) error {
	data, err := output.Encode(v, format, pretty)
	if err != nil {
		return fmt.Errorf("serialization failed: %w", err)
	}
	if outputPath != "" {
		if err := os.WriteFile(outputPath, data, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
	_, err = os.Stdout.Write(data)
	if err == nil && format == output.FormatJSON {
		fmt.Println()
	}
	return err
}

// writeSheetFiles writes one cell table per sheet into dir.
func writeSheetFiles(table *models.CellTable, dir string, format output.Format) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	bySheet := make(map[string][]models.Cell)
	var order []string
	for _, c := range table.Rows {
		if _, ok := bySheet[c.Sheet]; !ok {
			order = append(order, c.Sheet)
		}
		bySheet[c.Sheet] = append(bySheet[c.Sheet], c)
	}

	for _, sheetName := range order {
		data, err := output.Encode(models.NewCellTable(bySheet[sheetName]), format, pretty)
		if err != nil {
			return err
		}
		filename := filepath.Join(dir, sheetName+"."+string(format))
		if err := os.WriteFile(filename, data, 0644); err != nil {
			return err
		}
	}

	return nil
}
