package analytics

import "github.com/jonathan/vendor-insights/internal/types"

// Funnel stage names, in order.
const (
	StageInterviewed = "Interviewed"
	StagePassed      = "Passed"
	StagePlaced      = "Placed"
)

// minFunnelShare is the floor applied to the role-filtered vendor share.
const minFunnelShare = 0.2

// FunnelStage is one step of the hiring funnel
type FunnelStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// FunnelStages builds the hiring funnel for the filtered, period-scaled vendors. When a role
// is selected the counts are further multiplied by the share of vendors servicing that role,
// floored at 0.2.
func FunnelStages(ds *types.Dataset, fs FilterState) []FunnelStage {
	fs = fs.Normalize()
	vendors := FilterVendors(ds.Vendors, fs)

	var volume, passes, placements int
	for _, v := range vendors {
		volume += v.Volume
		passes += v.PassTotal
		placements += v.Placements
	}

	share := 1.0
	if fs.Role != AllRoles {
		roleVendors := FilterByRole(ds.Vendors, ds.Roles, fs.Role)
		share = max(SafeDiv(float64(len(roleVendors)), float64(len(ds.Vendors))), minFunnelShare)
	}

	return []FunnelStage{
		{Name: StageInterviewed, Count: ScaleCount(volume, share)},
		{Name: StagePassed, Count: ScaleCount(passes, share)},
		{Name: StagePlaced, Count: ScaleCount(placements, share)},
	}
}
