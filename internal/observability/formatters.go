// Package observability provides logging setup and formatted terminal output for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/jonathan/vendor-insights/internal/view"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = view.DefaultTopN
)

// Printer handles formatted report output
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		// Truncate long lines
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintReport outputs every section of a report.
func (p *Printer) PrintReport(r *analytics.Report) {
	if r == nil {
		return
	}
	p.PrintFilters(r.Filters)
	p.PrintSummary(r.Summary)
	p.PrintTopVendors(r.Vendors)
	p.PrintJobFamilies(r.JobFamilies)
	p.PrintFunnel(r.Funnel)
	p.PrintRegions(r.Regions)
}

// PrintFilters outputs the filter state a report was built for.
func (p *Printer) PrintFilters(fs analytics.FilterState) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Period:   %s\n", fs.Period))
	sb.WriteString(fmt.Sprintf("Vendor:   %s\n", fs.Vendor))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", fs.Role))
	sb.WriteString(fmt.Sprintf("Family:   %s\n", fs.JobFamily))
	sb.WriteString(fmt.Sprintf("Regions:  %s\n", strings.Join(fs.Regions, ", ")))
	if fs.Search != "" {
		sb.WriteString(fmt.Sprintf("Search:   %q\n", fs.Search))
	}
	p.printBox("FILTERS", sb.String())
}

// PrintSummary outputs the headline cards.
func (p *Printer) PrintSummary(s analytics.SummaryCard) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Active vendors:          %d\n", s.ActiveVendors))
	sb.WriteString(fmt.Sprintf("Interviews:              %d\n", s.TotalVolume))
	sb.WriteString(fmt.Sprintf("Placements:              %d\n", s.TotalPlacements))
	sb.WriteString(fmt.Sprintf("Pass rate:               %s\n", s.PassRateDisplay))
	sb.WriteString(fmt.Sprintf("Avg time in process:     %.1f days\n", s.AvgTimeInProcess))
	sb.WriteString(fmt.Sprintf("Interviews / placement:  %.1f\n", s.AvgInterviewsPerPlacement))
	p.printBox("SUMMARY", sb.String())
}

// PrintTopVendors outputs the highest pass-rate vendors.
func (p *Printer) PrintTopVendors(vendors []types.VendorRecord) {
	if len(vendors) == 0 {
		p.printBox("TOP VENDORS", "No vendors match the current filters")
		return
	}

	top := view.NewTopN(vendors, maxItemsToShow, func(v types.VendorRecord) int { return v.PassRate })

	var sb strings.Builder
	for i, v := range top.Display() {
		sb.WriteString(fmt.Sprintf("%d. %-28s %3d%%  (%d placed)\n", i+1, v.Name, v.PassRate, v.Placements))
	}
	if top.HasMore() {
		sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(vendors)-maxItemsToShow))
	}
	p.printBox("TOP VENDORS", sb.String())
}

// PrintJobFamilies outputs the ranked job families with their leading vendor.
func (p *Printer) PrintJobFamilies(families []analytics.JobFamilyStat) {
	if len(families) == 0 {
		return
	}

	var sb strings.Builder
	for i, f := range families {
		sb.WriteString(fmt.Sprintf("%d. %-24s %3d%%  %d roles\n", i+1, f.Name, f.AvgPassRate, f.RoleCount))
		if len(f.Vendors) > 0 {
			sb.WriteString(fmt.Sprintf("   best: %s (%d%%)\n", f.Vendors[0].Name, f.Vendors[0].PassRate))
		}
	}
	p.printBox("JOB FAMILIES", sb.String())
}

// PrintFunnel outputs the hiring funnel stages.
func (p *Printer) PrintFunnel(stages []analytics.FunnelStage) {
	if len(stages) == 0 {
		return
	}

	var sb strings.Builder
	top := stages[0].Count
	for _, s := range stages {
		sb.WriteString(fmt.Sprintf("%-12s %7d  %s\n", s.Name, s.Count, analytics.FormatPercent(float64(s.Count), float64(top))))
	}
	p.printBox("FUNNEL", sb.String())
}

// PrintRegions outputs the regional cost comparison.
func (p *Printer) PrintRegions(regions []analytics.RegionInsight) {
	if len(regions) == 0 {
		return
	}

	var sb strings.Builder
	for _, r := range regions {
		sb.WriteString(fmt.Sprintf("%-14s %3d roles  cost/placement %10.2f\n", r.Region, r.RoleCount, r.CostPerPlacement))
	}
	p.printBox("REGIONS", sb.String())
}

// PrintPassRate outputs a pass-rate chart as ranked bars.
func (p *Printer) PrintPassRate(tab analytics.Tab, data analytics.PassRateData) {
	title := fmt.Sprintf("PASS RATE BY %s", strings.ToUpper(strings.ReplaceAll(string(tab), "-", " ")))
	if len(data.Items) == 0 {
		p.printBox(title, "No data for the current filters")
		return
	}

	top := view.NewTopN(data.Items, maxItemsToShow, func(it analytics.PassRateItem) int { return it.Percentage })

	var sb strings.Builder
	for _, it := range top.Display() {
		bar := strings.Repeat("█", it.Percentage/5)
		sb.WriteString(fmt.Sprintf("%-22s %3d%% %s\n", it.Name, it.Percentage, bar))
	}
	if top.HasMore() {
		sb.WriteString(fmt.Sprintf("   ... and %d more\n", len(data.Items)-maxItemsToShow))
	}
	sb.WriteString(fmt.Sprintf("Overall: %d%%\n", data.OverallPassRate))
	p.printBox(title, sb.String())
}
