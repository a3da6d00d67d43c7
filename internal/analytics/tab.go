package analytics

import "github.com/jonathan/vendor-insights/internal/types"

// Tab selects which record variant a chart aggregates over
type Tab string

const (
	TabVendors     Tab = "vendors"
	TabRoles       Tab = "roles"
	TabJobFamilies Tab = "job-families"
)

// ParseTab parses a tab name. The empty string yields TabVendors.
func ParseTab(s string) (Tab, error) {
	switch Tab(s) {
	case "":
		return TabVendors, nil
	case TabVendors, TabRoles, TabJobFamilies:
		return Tab(s), nil
	default:
		return "", &ErrUnknownTab{Value: s}
	}
}

// BuildPassRate builds the pass-rate chart for the given tab.
func BuildPassRate(ds *types.Dataset, tab Tab, fs FilterState) (PassRateData, error) {
	fs = fs.Normalize()
	switch tab {
	case TabVendors:
		return GeneratePassRateData(vendorsForFilters(ds, fs), fs.Period, ds.Summary.OverallPassRate), nil
	case TabRoles:
		return GenerateRolePassRateData(rolesForFilters(ds, fs), fs.Period, ds.Summary.OverallPassRate), nil
	case TabJobFamilies:
		return familyPassRate(AggregateJobFamilies(ds.JobFamilies, rolesForFilters(ds, fs)), fs.Period, ds.Summary.OverallPassRate), nil
	default:
		return PassRateData{}, &ErrUnknownTab{Value: string(tab)}
	}
}

// BuildPlacements builds the placements chart for the given tab.
func BuildPlacements(ds *types.Dataset, tab Tab, fs FilterState) (PlacementsData, error) {
	fs = fs.Normalize()
	switch tab {
	case TabVendors:
		return GeneratePlacementsData(vendorsForFilters(ds, fs), fs.Period, ds.Summary.TotalPlacements), nil
	case TabRoles:
		return GenerateRolePlacementsData(rolesForFilters(ds, fs), fs.Period, ds.Summary.TotalPlacements), nil
	case TabJobFamilies:
		return familyPlacements(AggregateJobFamilies(ds.JobFamilies, rolesForFilters(ds, fs)), fs.Period, ds.Summary.TotalPlacements), nil
	default:
		return PlacementsData{}, &ErrUnknownTab{Value: string(tab)}
	}
}

// familyPassRate converts unscaled family stats. Like GenerateRolePassRateData, rates come
// from the canonical-window counts and only each Count is scaled.
func familyPassRate(stats []JobFamilyStat, period Period, baseline int) PassRateData {
	ratio := period.Ratio()
	items := make([]PassRateItem, 0, len(stats))
	var passes, volume int
	for _, s := range stats {
		items = append(items, PassRateItem{Name: s.Name, Percentage: s.AvgPassRate, Count: ScaleCount(s.TotalVolume, ratio)})
		passes += s.TotalPasses
		volume += s.TotalVolume
	}
	overall := baseline
	if volume > 0 {
		overall = RoundPercent(float64(passes), float64(volume))
	}
	return PassRateData{Items: items, OverallPassRate: overall}
}

// familyPlacements charts the same top families as familyPassRate, which are ranked by pass
// rate, so both family charts list one set of families. It does not re-rank by placements.
func familyPlacements(stats []JobFamilyStat, period Period, baseline int) PlacementsData {
	ratio := period.Ratio()
	items := make([]PlacementItem, 0, len(stats))
	total := 0
	for _, s := range stats {
		count := ScaleCount(s.Placements, ratio)
		items = append(items, PlacementItem{Name: s.Name, Count: count})
		total += count
	}
	if len(stats) == 0 {
		total = baseline
	}
	return PlacementsData{Items: items, TotalPlacements: total}
}
