package analytics

import (
	"cmp"
	"slices"

	"github.com/jonathan/vendor-insights/internal/types"
)

// TopFamilies is the number of job families shown in the pass-rate-by-family view.
const TopFamilies = 5

// VendorBreakdown is one vendor's contribution to a job family
type VendorBreakdown struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Volume   int    `json:"volume"`
	Passes   int    `json:"passes"`
	PassRate int    `json:"pass_rate"`
}

// JobFamilyStat is a job family's aggregate over the distinct vendors of its roles
type JobFamilyStat struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	RoleCount   int               `json:"role_count"`
	TotalVolume int               `json:"total_volume"`
	TotalPasses int               `json:"total_passes"`
	Placements  int               `json:"placements"`
	AvgPassRate int               `json:"avg_pass_rate"`
	Vendors     []VendorBreakdown `json:"vendors,omitempty"`
}

// AggregateJobFamilies computes per-family totals over the union of vendors servicing the
// family's roles. A vendor servicing several roles in one family is counted once.
// Families are ranked by AvgPassRate (ties by name) and truncated to TopFamilies; each
// family's vendor breakdown is ranked by vendor pass rate.
func AggregateJobFamilies(families []types.JobFamily, roles []types.RoleRecord) []JobFamilyStat {
	stats := make([]JobFamilyStat, 0, len(families))
	for _, f := range families {
		stats = append(stats, aggregateFamily(f, roles))
	}

	slices.SortStableFunc(stats, func(a, b JobFamilyStat) int {
		if c := cmp.Compare(b.AvgPassRate, a.AvgPassRate); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(stats) > TopFamilies {
		stats = stats[:TopFamilies]
	}
	return stats
}

func aggregateFamily(f types.JobFamily, roles []types.RoleRecord) JobFamilyStat {
	stat := JobFamilyStat{ID: f.ID, Name: f.Name}
	seen := make(map[string]struct{})
	for _, r := range roles {
		if r.JobFamilyID != f.ID {
			continue
		}
		stat.RoleCount++
		for _, v := range r.Vendors {
			if _, dup := seen[v.ID]; dup {
				continue
			}
			seen[v.ID] = struct{}{}
			stat.TotalVolume += v.Volume
			stat.TotalPasses += v.PassTotal
			stat.Placements += v.Placements
			stat.Vendors = append(stat.Vendors, VendorBreakdown{
				ID:       v.ID,
				Name:     v.Name,
				Volume:   v.Volume,
				Passes:   v.PassTotal,
				PassRate: v.PassRate,
			})
		}
	}

	stat.AvgPassRate = RoundPercent(float64(stat.TotalPasses), float64(stat.TotalVolume))
	slices.SortStableFunc(stat.Vendors, func(a, b VendorBreakdown) int {
		if c := cmp.Compare(b.PassRate, a.PassRate); c != 0 {
			return c
		}
		return cmp.Compare(a.Name, b.Name)
	})
	return stat
}

// JobFamilyStats aggregates the families of the roles matching fs. Rates come from the
// canonical-window counts; only the count fields are scaled to the period.
func JobFamilyStats(ds *types.Dataset, fs FilterState) []JobFamilyStat {
	fs = fs.Normalize()
	stats := AggregateJobFamilies(ds.JobFamilies, rolesForFilters(ds, fs))
	ratio := fs.Period.Ratio()
	for i := range stats {
		stats[i] = scaleFamily(stats[i], ratio)
	}
	return stats
}

func scaleFamily(s JobFamilyStat, ratio float64) JobFamilyStat {
	scaled := s
	scaled.TotalVolume = ScaleCount(s.TotalVolume, ratio)
	scaled.TotalPasses = ScaleCount(s.TotalPasses, ratio)
	scaled.Placements = ScaleCount(s.Placements, ratio)
	scaled.Vendors = make([]VendorBreakdown, 0, len(s.Vendors))
	for _, v := range s.Vendors {
		v.Volume = ScaleCount(v.Volume, ratio)
		v.Passes = ScaleCount(v.Passes, ratio)
		scaled.Vendors = append(scaled.Vendors, v)
	}
	return scaled
}
