package analytics

import "github.com/jonathan/vendor-insights/internal/types"

// roleTotals sums a role's embedded vendors at the canonical window.
type roleTotals struct {
	volume     int
	placements int
	passes     int
	passRates  []int
}

func totalsForRole(r types.RoleRecord) roleTotals {
	t := roleTotals{passRates: make([]int, 0, len(r.Vendors))}
	for _, v := range r.Vendors {
		t.volume += v.Volume
		t.placements += v.Placements
		t.passes += v.PassTotal
		t.passRates = append(t.passRates, v.PassRate)
	}
	return t
}

// GenerateRolePassRateData mirrors GeneratePassRateData for roles. A role's percentage is
// the mean of its vendors' rounded pass rates; its count is the summed volume scaled to period.
func GenerateRolePassRateData(roles []types.RoleRecord, period Period, baseline int) PassRateData {
	ratio := period.Ratio()
	items := make([]PassRateItem, 0, len(roles))
	var passes, volume int
	for _, r := range roles {
		t := totalsForRole(r)
		items = append(items, PassRateItem{
			Name:       r.Name,
			Percentage: averageInts(t.passRates),
			Count:      ScaleCount(t.volume, ratio),
		})
		passes += t.passes
		volume += t.volume
	}

	overall := baseline
	if volume > 0 {
		overall = RoundPercent(float64(passes), float64(volume))
	}
	return PassRateData{Items: items, OverallPassRate: overall}
}

// GenerateRolePlacementsData mirrors GeneratePlacementsData for roles, summing each
// role's vendor placements before scaling.
func GenerateRolePlacementsData(roles []types.RoleRecord, period Period, baseline int) PlacementsData {
	ratio := period.Ratio()
	items := make([]PlacementItem, 0, len(roles))
	total := 0
	for _, r := range roles {
		count := ScaleCount(totalsForRole(r).placements, ratio)
		items = append(items, PlacementItem{Name: r.Name, Count: count})
		total += count
	}

	if len(roles) == 0 {
		total = baseline
	}
	return PlacementsData{Items: items, TotalPlacements: total}
}

// RoleStat is one row of the roles table
type RoleStat struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	JobFamilyID string `json:"job_family_id"`
	Level       string `json:"level"`
	VendorCount int    `json:"vendor_count"`
	Volume      int    `json:"volume"`
	Placements  int    `json:"placements"`
	PassRate    int    `json:"pass_rate"`
}

// RoleStats summarizes roles that have already been scaled by FilterRoles.
func RoleStats(roles []types.RoleRecord) []RoleStat {
	out := make([]RoleStat, 0, len(roles))
	for _, r := range roles {
		t := totalsForRole(r)
		out = append(out, RoleStat{
			ID:          r.ID,
			Name:        r.Name,
			Location:    r.Location,
			JobFamilyID: r.JobFamilyID,
			Level:       r.Level,
			VendorCount: len(r.Vendors),
			Volume:      t.volume,
			Placements:  t.placements,
			PassRate:    averageInts(t.passRates),
		})
	}
	return out
}
