package analytics

import (
	"cmp"
	"slices"

	"github.com/jonathan/vendor-insights/internal/types"
)

// RateCardFilter selects rate cards for the rate-card table
type RateCardFilter struct {
	Vendor       string   `json:"vendor"`        // vendor name or AllVendors
	Regions      []string `json:"regions"`       // empty or AllRegions means all
	RoleCategory string   `json:"role_category"` // empty means all
	Tier         string   `json:"tier"`          // empty means all
}

// FilterRateCards returns the matching cards ordered by region, role category and
// ascending placement fee. Rate cards are reference data and are never scaled.
func FilterRateCards(cards []types.RateCard, vendors []types.VendorRecord, f RateCardFilter) []types.RateCard {
	vendorID := ""
	if f.Vendor != "" && f.Vendor != AllVendors {
		for _, v := range vendors {
			if v.Name == f.Vendor {
				vendorID = v.ID
				break
			}
		}
		if vendorID == "" {
			return []types.RateCard{}
		}
	}
	allRegions := len(f.Regions) == 0 || slices.Contains(f.Regions, AllRegions)

	out := make([]types.RateCard, 0, len(cards))
	for _, c := range cards {
		if vendorID != "" && c.VendorID != vendorID {
			continue
		}
		if !allRegions && !slices.Contains(f.Regions, c.Region) {
			continue
		}
		if f.RoleCategory != "" && c.RoleCategory != f.RoleCategory {
			continue
		}
		if f.Tier != "" && c.Tier != f.Tier {
			continue
		}
		out = append(out, c)
	}

	slices.SortStableFunc(out, func(a, b types.RateCard) int {
		return cmp.Or(
			cmp.Compare(a.Region, b.Region),
			cmp.Compare(a.RoleCategory, b.RoleCategory),
			cmp.Compare(a.PlacementFee, b.PlacementFee),
		)
	})
	return out
}

// EffectivePlacementFee applies the card's volume discount when its volume reaches the
// discount threshold.
func EffectivePlacementFee(c types.RateCard) float64 {
	if c.DiscountThreshold == nil || c.DiscountRate == nil || c.Volume < *c.DiscountThreshold {
		return c.PlacementFee
	}
	return RoundTo(c.PlacementFee*(1-*c.DiscountRate), 2)
}

// RegionInsight is the cost summary for one region
type RegionInsight struct {
	Region           string  `json:"region"`
	RateCardCount    int     `json:"rate_card_count"`
	RoleCount        int     `json:"role_count"`
	TotalVolume      int     `json:"total_volume"`
	AvgPlacementFee  float64 `json:"avg_placement_fee"`
	AvgInterviewFee  float64 `json:"avg_interview_fee"`
	CostPerPlacement float64 `json:"cost_per_placement"`
}

// RegionalInsights summarizes rate cards and roles per region, sorted by region name.
// CostPerPlacement is the average placement fee plus the interview fees spent per
// placement by the vendors servicing the region's roles; it is 0 when undefined.
func RegionalInsights(cards []types.RateCard, roles []types.RoleRecord) []RegionInsight {
	byRegion := make(map[string]*RegionInsight)
	get := func(region string) *RegionInsight {
		ri, ok := byRegion[region]
		if !ok {
			ri = &RegionInsight{Region: region}
			byRegion[region] = ri
		}
		return ri
	}

	placementFees := make(map[string]float64)
	interviewFees := make(map[string]float64)
	for _, c := range cards {
		ri := get(c.Region)
		ri.RateCardCount++
		ri.TotalVolume += c.Volume
		placementFees[c.Region] += c.PlacementFee
		interviewFees[c.Region] += c.InterviewFee
	}

	ippSum := make(map[string]float64)
	ippCount := make(map[string]int)
	seen := make(map[string]map[string]struct{})
	for _, r := range roles {
		get(r.Location).RoleCount++
		if seen[r.Location] == nil {
			seen[r.Location] = make(map[string]struct{})
		}
		for _, v := range r.Vendors {
			if _, dup := seen[r.Location][v.ID]; dup || v.Placements == 0 {
				continue
			}
			seen[r.Location][v.ID] = struct{}{}
			ippSum[r.Location] += v.InterviewsPerPlacement
			ippCount[r.Location]++
		}
	}

	out := make([]RegionInsight, 0, len(byRegion))
	for region, ri := range byRegion {
		n := float64(ri.RateCardCount)
		ri.AvgPlacementFee = RoundTo(SafeDiv(placementFees[region], n), 2)
		ri.AvgInterviewFee = RoundTo(SafeDiv(interviewFees[region], n), 2)
		if ippCount[region] > 0 && ri.RateCardCount > 0 {
			avgIPP := ippSum[region] / float64(ippCount[region])
			ri.CostPerPlacement = RoundTo(ri.AvgPlacementFee+ri.AvgInterviewFee*avgIPP, 2)
		}
		out = append(out, *ri)
	}
	slices.SortFunc(out, func(a, b RegionInsight) int { return cmp.Compare(a.Region, b.Region) })
	return out
}
