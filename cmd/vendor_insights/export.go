package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/export"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the dashboard report to a spreadsheet or CSV file",
	Long:  "Builds the report for the given filters and writes it as an XLSX workbook (one sheet per table) or a CSV of the vendor table.",
	RunE:  runExportCmd,
}

var (
	exportFilters filterFlags
	exportFormat  string
	exportOut     string
)

func init() {
	exportFilters.bind(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "xlsx", "Output format: xlsx or csv")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "Output file path (required)")

	if err := exportCmd.MarkFlagRequired("out"); err != nil {
		panic(fmt.Sprintf("failed to mark out flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, err := generateDataset(cfg)
	if err != nil {
		return err
	}
	fs, err := exportFilters.state()
	if err != nil {
		return err
	}
	if err := writeExport(exportOut, exportFormat, ds, fs); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s report to %s\n", exportFormat, exportOut)
	return nil
}

// writeExport renders the report for fs into path in the given format.
func writeExport(path, format string, ds *types.Dataset, fs analytics.FilterState) (err error) {
	var write func(io.Writer, *analytics.Report) error
	switch format {
	case "xlsx":
		write = export.WriteXLSX
	case "csv":
		write = export.WriteCSV
	default:
		return fmt.Errorf("unknown export format %q (want xlsx or csv)", format)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	report := analytics.BuildReport(ds, fs)
	return write(f, &report)
}
