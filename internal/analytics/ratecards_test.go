package analytics

import (
	"testing"

	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fees(cards []types.RateCard) []float64 {
	out := make([]float64, 0, len(cards))
	for _, c := range cards {
		out = append(out, c.PlacementFee)
	}
	return out
}

func TestFilterRateCards(t *testing.T) {
	ds := fixtureDataset()

	tests := []struct {
		name string
		f    RateCardFilter
		want []float64
	}{
		{"all, ordered by region, category, fee", RateCardFilter{}, []float64{800, 1000, 1200}},
		{"all vendors sentinel", RateCardFilter{Vendor: AllVendors, Regions: []string{AllRegions}}, []float64{800, 1000, 1200}},
		{"by vendor", RateCardFilter{Vendor: "Acme"}, []float64{1000, 1200}},
		{"unknown vendor", RateCardFilter{Vendor: "Nobody"}, []float64{}},
		{"by region", RateCardFilter{Regions: []string{"North America"}}, []float64{1200}},
		{"by category", RateCardFilter{RoleCategory: "Engineering"}, []float64{800, 1000}},
		{"by tier", RateCardFilter{Tier: "Standard"}, []float64{800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fees(FilterRateCards(ds.RateCards, ds.Vendors, tt.f)))
		})
	}
}

func TestEffectivePlacementFee(t *testing.T) {
	ds := fixtureDataset()

	assert.Equal(t, 900.0, EffectivePlacementFee(ds.RateCards[0]))
	assert.Equal(t, 800.0, EffectivePlacementFee(ds.RateCards[1]), "no discount configured")

	below := ds.RateCards[0]
	below.Volume = 9
	assert.Equal(t, 1000.0, EffectivePlacementFee(below))
}

func TestRegionalInsights(t *testing.T) {
	ds := fixtureDataset()

	insights := RegionalInsights(ds.RateCards, ds.Roles)
	require.Len(t, insights, 2)

	assert.Equal(t, RegionInsight{
		Region:           "Europe",
		RateCardCount:    2,
		RoleCount:        2,
		TotalVolume:      25,
		AvgPlacementFee:  900,
		AvgInterviewFee:  90,
		CostPerPlacement: 1800,
	}, insights[0])

	assert.Equal(t, RegionInsight{
		Region:           "North America",
		RateCardCount:    1,
		RoleCount:        1,
		TotalVolume:      3,
		AvgPlacementFee:  1200,
		AvgInterviewFee:  120,
		CostPerPlacement: 2400,
	}, insights[1])
}

func TestRegionalInsights_RolesWithoutCards(t *testing.T) {
	ds := fixtureDataset()

	insights := RegionalInsights(nil, ds.Roles)
	require.Len(t, insights, 2)
	for _, ri := range insights {
		assert.Zero(t, ri.RateCardCount)
		assert.Zero(t, ri.CostPerPlacement)
	}
}
