package analytics

import "github.com/jonathan/vendor-insights/internal/types"

// Report bundles every table of the dashboard for one set of filters. It backs the
// spreadsheet export and the CLI report.
type Report struct {
	Filters     FilterState          `json:"filters"`
	Summary     SummaryCard          `json:"summary"`
	Vendors     []types.VendorRecord `json:"vendors"`
	Roles       []RoleStat           `json:"roles"`
	JobFamilies []JobFamilyStat      `json:"job_families"`
	RateCards   []types.RateCard     `json:"rate_cards"`
	Regions     []RegionInsight      `json:"regions"`
	Funnel      []FunnelStage        `json:"funnel"`
}

// BuildReport runs every aggregation for fs.
func BuildReport(ds *types.Dataset, fs FilterState) Report {
	fs = fs.Normalize()
	vendors := FilterVendors(FilterByRole(ds.Vendors, ds.Roles, fs.Role), fs)
	roles := RolesForFilters(ds, fs)
	return Report{
		Filters:     fs,
		Summary:     BuildSummary(vendors),
		Vendors:     vendors,
		Roles:       RoleStats(roles),
		JobFamilies: JobFamilyStats(ds, fs),
		RateCards: FilterRateCards(ds.RateCards, ds.Vendors, RateCardFilter{
			Vendor:  fs.Vendor,
			Regions: fs.Regions,
		}),
		Regions: RegionalInsights(ds.RateCards, roles),
		Funnel:  FunnelStages(ds, fs),
	}
}
