package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/observability"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print the dashboard views for a set of filters",
	Long:  "Builds every dashboard view for the given filters and prints them as boxed summaries, or as JSON with --json.",
	RunE:  runReportCmd,
}

var (
	reportFilters filterFlags
	reportTab     string
	reportJSON    bool
)

func init() {
	reportFilters.bind(reportCmd)
	reportCmd.Flags().StringVar(&reportTab, "tab", string(analytics.TabVendors), "Pass-rate chart variant: vendors, roles or job-families")
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Print the report as JSON")
	rootCmd.AddCommand(reportCmd)
}

func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ds, err := generateDataset(cfg)
	if err != nil {
		return err
	}
	fs, err := reportFilters.state()
	if err != nil {
		return err
	}
	tab, err := analytics.ParseTab(reportTab)
	if err != nil {
		return err
	}
	return runReport(cmd.OutOrStdout(), ds, fs, tab, reportJSON)
}

// runReport writes the report for fs to out.
func runReport(out io.Writer, ds *types.Dataset, fs analytics.FilterState, tab analytics.Tab, asJSON bool) error {
	report := analytics.BuildReport(ds, fs)
	passRate, err := analytics.BuildPassRate(ds, tab, fs)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(struct {
			analytics.Report
			PassRate analytics.PassRateData `json:"pass_rate"`
		}{report, passRate}); err != nil {
			return fmt.Errorf("failed to encode report: %w", err)
		}
		return nil
	}

	p := observability.NewPrinter(out)
	p.PrintReport(&report)
	p.PrintPassRate(tab, passRate)
	return nil
}
