package mockdata

import (
	"testing"
	"time"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ref = time.Date(2025, 6, 30, 15, 4, 5, 0, time.UTC)

func TestNewGenerator_TruncatesReference(t *testing.T) {
	g := NewGenerator(DefaultSeed, ref)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), g.ReferenceDate)

	now := NewGenerator(DefaultSeed, time.Time{})
	assert.False(t, now.ReferenceDate.IsZero())
}

func TestGenerate_Deterministic(t *testing.T) {
	a := NewGenerator(7, ref).Generate()
	b := NewGenerator(7, ref).Generate()
	assert.Equal(t, a, b)

	c := NewGenerator(8, ref).Generate()
	assert.NotEqual(t, a.Vendors, c.Vendors)
}

func TestGenerate_Shape(t *testing.T) {
	ds := NewGenerator(DefaultSeed, ref).Generate()

	assert.Len(t, ds.Vendors, len(vendorCatalog))
	assert.Len(t, ds.Roles, len(roleCatalog))
	assert.Len(t, ds.JobFamilies, len(familyCatalog))
	assert.Equal(t, Regions, ds.Regions)
	assert.NotEmpty(t, ds.RateCards)
	assert.Equal(t, time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC), ds.GeneratedAt)

	families := make(map[string]bool)
	for _, f := range ds.JobFamilies {
		families[f.ID] = true
	}
	vendorIDs := make(map[string]bool)
	for _, v := range ds.Vendors {
		vendorIDs[v.ID] = true
	}

	for _, r := range ds.Roles {
		assert.True(t, families[r.JobFamilyID], "role %s has unknown family", r.ID)
		assert.Contains(t, Regions, r.Location)
		assert.GreaterOrEqual(t, len(r.Vendors), minRoleVendors)
		assert.LessOrEqual(t, len(r.Vendors), maxRoleVendors)
		seen := make(map[string]bool)
		for _, v := range r.Vendors {
			assert.True(t, vendorIDs[v.ID])
			assert.False(t, seen[v.ID], "role %s embeds %s twice", r.ID, v.ID)
			seen[v.ID] = true
			assert.Nil(t, v.History, "embedded vendors carry no history")
		}
	}

	for _, c := range ds.RateCards {
		assert.True(t, vendorIDs[c.VendorID])
		assert.NotEmpty(t, c.Currency)
		if c.DiscountThreshold != nil {
			assert.Equal(t, "Tier 1", c.Tier)
			require.NotNil(t, c.DiscountRate)
		}
	}
}

func TestGenerate_VendorInvariants(t *testing.T) {
	ds := NewGenerator(DefaultSeed, ref).Generate()

	var passes, volume, placements int
	for _, v := range ds.Vendors {
		assert.Positive(t, v.Volume)
		assert.LessOrEqual(t, v.PassTotal, v.Volume)
		assert.LessOrEqual(t, v.Placements, v.PassTotal)
		assert.Equal(t, analytics.RoundPercent(float64(v.PassTotal), float64(v.Volume)), v.PassRate)
		assert.Contains(t, []types.VendorStatus{types.VendorActive, types.VendorInactive}, v.Status)
		passes += v.PassTotal
		volume += v.Volume
		placements += v.Placements

		require.Len(t, v.History, historyWeeks)
		assert.Equal(t, ds.GeneratedAt, v.History[len(v.History)-1].Date)
		assert.True(t, v.History[0].Date.Before(v.History[1].Date))
		for _, s := range v.History {
			assert.LessOrEqual(t, s.PassTotal, s.Volume)
			assert.NotEmpty(t, s.PeriodLabel)
		}
	}

	assert.Equal(t, analytics.RoundPercent(float64(passes), float64(volume)), ds.Summary.OverallPassRate)
	assert.Equal(t, placements, ds.Summary.TotalPlacements)
}

func TestGenerate_HistoryCoversLongestPeriod(t *testing.T) {
	ds := NewGenerator(DefaultSeed, ref).Generate()

	window := analytics.TrendWindow(ds.Vendors[0].History, analytics.Period2Years, ds.GeneratedAt)
	assert.GreaterOrEqual(t, len(window), 104)
}
