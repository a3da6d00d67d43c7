package analytics

import (
	"time"

	"github.com/jonathan/vendor-insights/internal/types"
)

// SummaryCard is the headline card row of the dashboard
type SummaryCard struct {
	ActiveVendors             int     `json:"active_vendors"`
	TotalVolume               int     `json:"total_volume"`
	TotalPlacements           int     `json:"total_placements"`
	OverallPassRate           int     `json:"overall_pass_rate"`
	PassRateDisplay           string  `json:"pass_rate_display"`
	AvgTimeInProcess          float64 `json:"avg_time_in_process"`
	AvgInterviewsPerPlacement float64 `json:"avg_interviews_per_placement"`
}

// BuildSummary computes the headline cards over period-scaled vendors.
func BuildSummary(vendors []types.VendorRecord) SummaryCard {
	var card SummaryCard
	var passes int
	var timeInProcess float64
	for _, v := range vendors {
		if v.IsActive() {
			card.ActiveVendors++
		}
		card.TotalVolume += v.Volume
		card.TotalPlacements += v.Placements
		passes += v.PassTotal
		timeInProcess += v.TimeInProcess
	}

	card.OverallPassRate = RoundPercent(float64(passes), float64(card.TotalVolume))
	card.PassRateDisplay = FormatPercent(float64(passes), float64(card.TotalVolume))
	card.AvgTimeInProcess = RoundTo(SafeDiv(timeInProcess, float64(len(vendors))), 1)
	card.AvgInterviewsPerPlacement = RoundTo(SafeDiv(float64(card.TotalVolume), float64(card.TotalPlacements)), 1)
	return card
}

// EfficiencyPoint is one point of the interviews-per-placement scatter chart
type EfficiencyPoint struct {
	Name                   string  `json:"name"`
	InterviewsPerPlacement float64 `json:"interviews_per_placement"`
	PassRate               int     `json:"pass_rate"`
	Volume                 int     `json:"volume"`
}

// VendorEfficiency returns one scatter point per vendor. Vendors without placements are
// plotted at 0 interviews per placement.
func VendorEfficiency(vendors []types.VendorRecord) []EfficiencyPoint {
	out := make([]EfficiencyPoint, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, EfficiencyPoint{
			Name:                   v.Name,
			InterviewsPerPlacement: v.InterviewsPerPlacement,
			PassRate:               v.PassRate,
			Volume:                 v.Volume,
		})
	}
	return out
}

// TrendWindow returns the snapshots dated within the period ending at ref, oldest first.
func TrendWindow(history []types.Snapshot, period Period, ref time.Time) []types.Snapshot {
	start := ref.AddDate(0, 0, -period.Days())
	out := make([]types.Snapshot, 0)
	for _, s := range history {
		if s.Date.After(start) && !s.Date.After(ref) {
			out = append(out, s)
		}
	}
	return out
}
