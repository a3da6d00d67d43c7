package analytics

import (
	"slices"
	"strings"

	"github.com/jonathan/vendor-insights/internal/types"
)

// Sentinel selector values meaning "no filter on this dimension".
const (
	AllVendors     = "All Vendors"
	AllRoles       = "All Roles"
	AllJobFamilies = "All Job Families"
	AllRegions     = "All Regions"
)

// FilterState is the set of filter controls applied to a view
type FilterState struct {
	Period    Period   `json:"period"`
	Vendor    string   `json:"vendor"`
	Role      string   `json:"role"`
	JobFamily string   `json:"job_family"`
	Search    string   `json:"search"`
	Regions   []string `json:"regions"`
}

// DefaultFilters returns a FilterState with every dimension unfiltered.
func DefaultFilters() FilterState {
	return FilterState{
		Period:    DefaultPeriod,
		Vendor:    AllVendors,
		Role:      AllRoles,
		JobFamily: AllJobFamilies,
		Regions:   []string{AllRegions},
	}
}

// Normalize fills empty selectors with their sentinel and trims the search query.
func (fs FilterState) Normalize() FilterState {
	out := fs
	if out.Period == "" {
		out.Period = DefaultPeriod
	}
	if out.Vendor == "" {
		out.Vendor = AllVendors
	}
	if out.Role == "" {
		out.Role = AllRoles
	}
	if out.JobFamily == "" {
		out.JobFamily = AllJobFamilies
	}
	out.Search = strings.TrimSpace(out.Search)
	regions := make([]string, 0, len(fs.Regions))
	for _, r := range fs.Regions {
		if r != "" && r != AllRegions {
			regions = append(regions, r)
		}
	}
	if len(regions) == 0 {
		regions = []string{AllRegions}
	}
	out.Regions = regions
	return out
}

// allRegions reports whether the region selection is the sentinel.
func (fs FilterState) allRegions() bool {
	return len(fs.Regions) == 0 || slices.Contains(fs.Regions, AllRegions)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// FilterByRole returns the vendors that service the named role.
// AllRoles returns the input unchanged (as a copy); an unknown role matches nothing.
func FilterByRole(vendors []types.VendorRecord, roles []types.RoleRecord, roleName string) []types.VendorRecord {
	if roleName == "" || roleName == AllRoles {
		return slices.Clone(vendors)
	}
	ids := make(map[string]struct{})
	for _, r := range roles {
		if r.Name != roleName {
			continue
		}
		for _, v := range r.Vendors {
			ids[v.ID] = struct{}{}
		}
	}
	out := make([]types.VendorRecord, 0, len(ids))
	for _, v := range vendors {
		if _, ok := ids[v.ID]; ok {
			out = append(out, v)
		}
	}
	return out
}

// FilterVendors narrows vendors by name and search query, then scales counts to the period.
func FilterVendors(vendors []types.VendorRecord, fs FilterState) []types.VendorRecord {
	fs = fs.Normalize()
	return ScaleVendors(selectVendors(vendors, fs), fs.Period)
}

// selectVendors applies the vendor-name and search filters without scaling.
func selectVendors(vendors []types.VendorRecord, fs FilterState) []types.VendorRecord {
	out := make([]types.VendorRecord, 0, len(vendors))
	for _, v := range vendors {
		if fs.Vendor != AllVendors && v.Name != fs.Vendor {
			continue
		}
		if fs.Search != "" && !containsFold(v.Name, fs.Search) {
			continue
		}
		out = append(out, v)
	}
	return out
}

// FilterRoles narrows roles by name, job family ID, region and search query, then scales the
// embedded vendors to the period. The search matches role name, location or any vendor name.
// Use RolesForFilters to also accept a family name.
func FilterRoles(roles []types.RoleRecord, fs FilterState) []types.RoleRecord {
	fs = fs.Normalize()
	selected := selectRoles(roles, fs)
	out := make([]types.RoleRecord, 0, len(selected))
	for _, r := range selected {
		out = append(out, scaleRole(r, fs.Period))
	}
	return out
}

// selectRoles applies the role, family, region and search filters without scaling.
func selectRoles(roles []types.RoleRecord, fs FilterState) []types.RoleRecord {
	out := make([]types.RoleRecord, 0, len(roles))
	for _, r := range roles {
		if fs.Role != AllRoles && r.Name != fs.Role {
			continue
		}
		if fs.JobFamily != AllJobFamilies && r.JobFamilyID != fs.JobFamily {
			continue
		}
		if !fs.allRegions() && !slices.Contains(fs.Regions, r.Location) {
			continue
		}
		if fs.Search != "" && !roleMatches(r, fs.Search) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func roleMatches(r types.RoleRecord, query string) bool {
	if containsFold(r.Name, query) || containsFold(r.Location, query) {
		return true
	}
	for _, v := range r.Vendors {
		if containsFold(v.Name, query) {
			return true
		}
	}
	return false
}

// RolesForFilters is FilterRoles over the dataset with the family selector resolved, so
// it matches a job family by ID or by name.
func RolesForFilters(ds *types.Dataset, fs FilterState) []types.RoleRecord {
	return FilterRoles(ds.Roles, fs.Normalize().resolveFamily(ds.JobFamilies))
}

// rolesForFilters is RolesForFilters without the period scaling.
func rolesForFilters(ds *types.Dataset, fs FilterState) []types.RoleRecord {
	return selectRoles(ds.Roles, fs.Normalize().resolveFamily(ds.JobFamilies))
}

// resolveFamily rewrites a family name selector to that family's ID. IDs take precedence
// over names; an unknown value is left as is and matches nothing.
func (fs FilterState) resolveFamily(families []types.JobFamily) FilterState {
	if fs.JobFamily == AllJobFamilies {
		return fs
	}
	if slices.ContainsFunc(families, func(f types.JobFamily) bool { return f.ID == fs.JobFamily }) {
		return fs
	}
	if i := slices.IndexFunc(families, func(f types.JobFamily) bool { return f.Name == fs.JobFamily }); i >= 0 {
		fs.JobFamily = families[i].ID
	}
	return fs
}

// vendorsForFilters applies the role selector and the vendor filters, leaving counts at
// the canonical window.
func vendorsForFilters(ds *types.Dataset, fs FilterState) []types.VendorRecord {
	fs = fs.Normalize()
	return selectVendors(FilterByRole(ds.Vendors, ds.Roles, fs.Role), fs)
}
