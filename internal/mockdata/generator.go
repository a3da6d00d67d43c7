// Package mockdata generates the synthetic dataset the dashboard reports on.
package mockdata

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/types"
)

const (
	// DefaultSeed is used when no seed is configured
	DefaultSeed uint64 = 42
	// historyWeeks covers the longest reporting window (2y)
	historyWeeks = 105
	// minRoleVendors and maxRoleVendors bound the vendors embedded per role
	minRoleVendors = 3
	maxRoleVendors = 6
)

// Generator builds a deterministic dataset from a seed and a reference date.
type Generator struct {
	Seed          uint64
	ReferenceDate time.Time
}

// NewGenerator returns a generator for seed anchored at ref (truncated to the day).
// A zero ref anchors at the current UTC day.
func NewGenerator(seed uint64, ref time.Time) *Generator {
	if ref.IsZero() {
		ref = time.Now().UTC()
	}
	return &Generator{Seed: seed, ReferenceDate: ref.UTC().Truncate(24 * time.Hour)}
}

// Generate builds the dataset. The same Seed and ReferenceDate always produce the same data.
func (g *Generator) Generate() *types.Dataset {
	rng := rand.New(rand.NewPCG(g.Seed, g.Seed^0x9e3779b97f4a7c15))

	vendors := make([]types.VendorRecord, 0, len(vendorCatalog))
	for i, entry := range vendorCatalog {
		vendors = append(vendors, g.vendor(rng, i, entry.name, entry.tier))
	}

	families := make([]types.JobFamily, 0, len(familyCatalog))
	for _, f := range familyCatalog {
		families = append(families, types.JobFamily{ID: f.id, Name: f.name})
	}

	roles := make([]types.RoleRecord, 0, len(roleCatalog))
	for i, entry := range roleCatalog {
		n := minRoleVendors + rng.IntN(maxRoleVendors-minRoleVendors+1)
		picked := rng.Perm(len(vendors))[:n]
		embedded := make([]types.VendorRecord, 0, n)
		for _, idx := range picked {
			v := vendors[idx]
			v.History = nil
			embedded = append(embedded, v)
		}
		roles = append(roles, types.RoleRecord{
			ID:          fmt.Sprintf("role-%02d", i+1),
			Name:        entry.name,
			Location:    entry.location,
			JobFamilyID: entry.familyID,
			Level:       entry.level,
			Vendors:     embedded,
		})
	}

	var passes, volume, placements int
	for _, v := range vendors {
		passes += v.PassTotal
		volume += v.Volume
		placements += v.Placements
	}

	return &types.Dataset{
		Vendors:     vendors,
		Roles:       roles,
		JobFamilies: families,
		RateCards:   rateCards(rng, vendors),
		Regions:     append([]string(nil), Regions...),
		Summary: types.Summary{
			OverallPassRate: analytics.RoundPercent(float64(passes), float64(volume)),
			TotalPlacements: placements,
		},
		GeneratedAt: g.ReferenceDate,
	}
}

func (g *Generator) vendor(rng *rand.Rand, i int, name, tier string) types.VendorRecord {
	volume := 80 + rng.IntN(320)
	passTotal := int(math.Round(float64(volume) * between(rng, 0.35, 0.75)))
	placements := int(math.Round(float64(passTotal) * between(rng, 0.2, 0.6)))

	status := types.VendorActive
	if rng.Float64() < 0.15 {
		status = types.VendorInactive
	}

	ipp := analytics.SafeDiv(float64(volume), float64(placements))
	v := types.VendorRecord{
		ID:                     fmt.Sprintf("vendor-%02d", i+1),
		Name:                   name,
		Status:                 status,
		Tier:                   tier,
		Volume:                 volume,
		Placements:             placements,
		PassTotal:              passTotal,
		PassRate:               analytics.RoundPercent(float64(passTotal), float64(volume)),
		TimeInProcess:          analytics.RoundTo(between(rng, 8, 35), 1),
		NoShows:                analytics.RoundTo(between(rng, 2, 15), 1),
		IntegrityFlag:          analytics.RoundTo(between(rng, 0.5, 6), 1),
		InterviewsPerPlacement: analytics.RoundTo(ipp, 1),
	}
	v.History = g.history(rng, v)
	return v
}

// history samples weekly snapshots around the vendor's 30-day baseline, oldest first.
func (g *Generator) history(rng *rand.Rand, v types.VendorRecord) []types.Snapshot {
	weekly := 7.0 / 30.0
	out := make([]types.Snapshot, 0, historyWeeks)
	for w := historyWeeks - 1; w >= 0; w-- {
		date := g.ReferenceDate.AddDate(0, 0, -7*w)
		jitter := between(rng, 0.8, 1.2)
		volume := int(math.Round(float64(v.Volume) * weekly * jitter))
		passTotal := min(volume, int(math.Round(float64(v.PassTotal)*weekly*between(rng, 0.8, 1.2))))
		placements := int(math.Round(float64(v.Placements) * weekly * between(rng, 0.7, 1.3)))
		year, week := date.ISOWeek()
		out = append(out, types.Snapshot{
			Date:          date,
			PeriodLabel:   fmt.Sprintf("%d-W%02d", year, week),
			Volume:        volume,
			Placements:    placements,
			PassTotal:     passTotal,
			PassRate:      analytics.RoundPercent(float64(passTotal), float64(volume)),
			TimeInProcess: analytics.RoundTo(v.TimeInProcess*between(rng, 0.9, 1.1), 1),
			NoShows:       analytics.RoundTo(v.NoShows*between(rng, 0.8, 1.2), 1),
			IntegrityFlag: analytics.RoundTo(v.IntegrityFlag*between(rng, 0.8, 1.2), 1),
		})
	}
	return out
}

func rateCards(rng *rand.Rand, vendors []types.VendorRecord) []types.RateCard {
	var cards []types.RateCard
	for _, v := range vendors {
		regions := rng.Perm(len(Regions))[:2+rng.IntN(len(Regions)-1)]
		for _, ri := range regions {
			region := Regions[ri]
			for _, category := range roleCategories {
				if rng.Float64() < 0.3 {
					continue
				}
				card := types.RateCard{
					VendorID:     v.ID,
					Region:       region,
					RoleCategory: category,
					Tier:         v.Tier,
					Currency:     regionCurrency[region],
					PlacementFee: analytics.RoundTo(tierFeeBase[v.Tier]*between(rng, 0.85, 1.15), 0),
					InterviewFee: analytics.RoundTo(between(rng, 150, 600), 0),
					Volume:       20 + rng.IntN(280),
				}
				if v.Tier == "Tier 1" {
					threshold := 100
					rate := 0.1
					card.DiscountThreshold = &threshold
					card.DiscountRate = &rate
				}
				cards = append(cards, card)
			}
		}
	}
	return cards
}

func between(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
