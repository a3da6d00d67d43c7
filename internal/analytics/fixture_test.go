package analytics

import (
	"time"

	"github.com/jonathan/vendor-insights/internal/types"
)

var fixtureRef = time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

// fixtureDataset is a small hand-computed dataset:
//
//	Acme  active    volume 100  placements 10  passes 40
//	Beta  inactive  volume  50  placements  0  passes 30
//	Gamma active    volume   0  placements  0  passes  0
func fixtureDataset() *types.Dataset {
	acme := types.VendorRecord{
		ID: "v1", Name: "Acme", Status: types.VendorActive, Tier: "Tier 1",
		Volume: 100, Placements: 10, PassTotal: 40, PassRate: 40,
		TimeInProcess: 10, InterviewsPerPlacement: 10,
	}
	beta := types.VendorRecord{
		ID: "v2", Name: "Beta", Status: types.VendorInactive, Tier: "Tier 2",
		Volume: 50, PassTotal: 30, PassRate: 60, TimeInProcess: 20,
	}
	gamma := types.VendorRecord{ID: "v3", Name: "Gamma", Status: types.VendorActive, Tier: "Tier 3"}

	return &types.Dataset{
		Vendors: []types.VendorRecord{acme, beta, gamma},
		Roles: []types.RoleRecord{
			{ID: "r1", Name: "Backend Engineer", Location: "North America", JobFamilyID: "eng", Level: "Senior", Vendors: []types.VendorRecord{acme, beta}},
			{ID: "r2", Name: "Frontend Engineer", Location: "Europe", JobFamilyID: "eng", Level: "Mid", Vendors: []types.VendorRecord{acme}},
			{ID: "r3", Name: "Data Analyst", Location: "Europe", JobFamilyID: "data", Level: "Mid", Vendors: []types.VendorRecord{beta}},
		},
		JobFamilies: []types.JobFamily{
			{ID: "eng", Name: "Engineering"},
			{ID: "data", Name: "Data"},
			{ID: "sales", Name: "Sales"},
		},
		RateCards: []types.RateCard{
			{VendorID: "v1", Region: "Europe", RoleCategory: "Engineering", Tier: "Premium", PlacementFee: 1000, InterviewFee: 100, Volume: 20, DiscountThreshold: ptr(10), DiscountRate: ptr(0.1)},
			{VendorID: "v2", Region: "Europe", RoleCategory: "Engineering", Tier: "Standard", PlacementFee: 800, InterviewFee: 80, Volume: 5},
			{VendorID: "v1", Region: "North America", RoleCategory: "Data", Tier: "Premium", PlacementFee: 1200, InterviewFee: 120, Volume: 3},
		},
		Regions:     []string{"Europe", "North America"},
		Summary:     types.Summary{OverallPassRate: 47, TotalPlacements: 10},
		GeneratedAt: fixtureRef,
	}
}

func names(vendors []types.VendorRecord) []string {
	out := make([]string, 0, len(vendors))
	for _, v := range vendors {
		out = append(out, v.Name)
	}
	return out
}

func roleNames(roles []types.RoleRecord) []string {
	out := make([]string, 0, len(roles))
	for _, r := range roles {
		out = append(out, r.Name)
	}
	return out
}
