package analytics

import "github.com/jonathan/vendor-insights/internal/types"

// PassRateItem is one bar in a pass-rate chart
type PassRateItem struct {
	Name       string `json:"name"`
	Percentage int    `json:"percentage"`
	Count      int    `json:"count"`
}

// PassRateData is the pass-rate chart for a filtered set
type PassRateData struct {
	Items           []PassRateItem `json:"items"`
	OverallPassRate int            `json:"overall_pass_rate"`
}

// PlacementItem is one bar in a placements chart
type PlacementItem struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// PlacementsData is the placements chart for a filtered set
type PlacementsData struct {
	Items           []PlacementItem `json:"items"`
	TotalPlacements int             `json:"total_placements"`
}

// GeneratePassRateData builds pass-rate bars from unscaled vendor records. Each bar's
// percentage is the vendor's own pass rate and its count is the volume scaled to period.
// OverallPassRate falls back to baseline for an empty or zero-volume set.
func GeneratePassRateData(vendors []types.VendorRecord, period Period, baseline int) PassRateData {
	ratio := period.Ratio()
	items := make([]PassRateItem, 0, len(vendors))
	var passes, volume int
	for _, v := range vendors {
		items = append(items, PassRateItem{
			Name:       v.Name,
			Percentage: v.PassRate,
			Count:      ScaleCount(v.Volume, ratio),
		})
		passes += v.PassTotal
		volume += v.Volume
	}

	overall := baseline
	if volume > 0 {
		overall = RoundPercent(float64(passes), float64(volume))
	}
	return PassRateData{Items: items, OverallPassRate: overall}
}

// GeneratePlacementsData builds placement bars with counts scaled to period.
// TotalPlacements falls back to baseline for an empty set.
func GeneratePlacementsData(vendors []types.VendorRecord, period Period, baseline int) PlacementsData {
	ratio := period.Ratio()
	items := make([]PlacementItem, 0, len(vendors))
	total := 0
	for _, v := range vendors {
		count := ScaleCount(v.Placements, ratio)
		items = append(items, PlacementItem{Name: v.Name, Count: count})
		total += count
	}

	if len(vendors) == 0 {
		total = baseline
	}
	return PlacementsData{Items: items, TotalPlacements: total}
}
