package analytics

import (
	"slices"

	"github.com/jonathan/vendor-insights/internal/types"
)

// Period is one of the fixed reporting windows
type Period string

const (
	Period7Days   Period = "7d"
	Period30Days  Period = "30d"
	Period90Days  Period = "90d"
	Period1Year   Period = "1y"
	Period2Years  Period = "2y"
	DefaultPeriod        = Period30Days
)

// baselineDays is the window the dataset's counts were generated for.
const baselineDays = 30

var periodDays = map[Period]int{
	Period7Days:  7,
	Period30Days: 30,
	Period90Days: 90,
	Period1Year:  365,
	Period2Years: 730,
}

// Periods returns all supported periods, shortest first.
func Periods() []Period {
	return []Period{Period7Days, Period30Days, Period90Days, Period1Year, Period2Years}
}

// ParsePeriod parses a period string. The empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return DefaultPeriod, nil
	}
	p := Period(s)
	if _, ok := periodDays[p]; !ok {
		return "", &ErrUnknownPeriod{Value: s}
	}
	return p, nil
}

// Days returns the window length in days. Unknown periods report the baseline.
func (p Period) Days() int {
	if d, ok := periodDays[p]; ok {
		return d
	}
	return baselineDays
}

// Ratio is the multiplier applied to count-type metrics for this window.
func (p Period) Ratio() float64 {
	return float64(p.Days()) / baselineDays
}

// ScaleVendor approximates a vendor's counts over period by linear scaling.
// Volume, Placements and PassTotal are scaled; rate-type fields are copied unchanged.
func ScaleVendor(v types.VendorRecord, period Period) types.VendorRecord {
	ratio := period.Ratio()
	scaled := v
	scaled.Volume = ScaleCount(v.Volume, ratio)
	scaled.Placements = ScaleCount(v.Placements, ratio)
	scaled.PassTotal = ScaleCount(v.PassTotal, ratio)
	scaled.History = slices.Clone(v.History)
	return scaled
}

// ScaleVendors applies ScaleVendor to every vendor.
func ScaleVendors(vendors []types.VendorRecord, period Period) []types.VendorRecord {
	out := make([]types.VendorRecord, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, ScaleVendor(v, period))
	}
	return out
}

// scaleRole returns a copy of the role with its embedded vendors scaled.
func scaleRole(r types.RoleRecord, period Period) types.RoleRecord {
	scaled := r
	scaled.Vendors = ScaleVendors(r.Vendors, period)
	return scaled
}
