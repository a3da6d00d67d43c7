// Package export renders a dashboard report as a spreadsheet or CSV file.
package export

import (
	"github.com/jonathan/vendor-insights/internal/analytics"
)

// Table is one sheet of an export
type Table struct {
	Name   string
	Header []string
	Rows   [][]any
}

// Sheet names in workbook order
const (
	SheetVendors     = "Vendors"
	SheetRoles       = "Roles"
	SheetJobFamilies = "Job Families"
	SheetRateCards   = "Rate Cards"
	SheetRegions     = "Regions"
)

// Tables converts a report into its export tables.
func Tables(r *analytics.Report) []Table {
	return []Table{
		vendorTable(r),
		roleTable(r),
		jobFamilyTable(r),
		rateCardTable(r),
		regionTable(r),
	}
}

func vendorTable(r *analytics.Report) Table {
	t := Table{
		Name: SheetVendors,
		Header: []string{
			"ID", "Vendor", "Status", "Tier", "Interviews", "Passed", "Placements",
			"Pass Rate %", "Time In Process (days)", "No Shows %", "Integrity Flags %",
			"Interviews Per Placement",
		},
	}
	for _, v := range r.Vendors {
		t.Rows = append(t.Rows, []any{
			v.ID, v.Name, string(v.Status), v.Tier, v.Volume, v.PassTotal, v.Placements,
			v.PassRate, v.TimeInProcess, v.NoShows, v.IntegrityFlag, v.InterviewsPerPlacement,
		})
	}
	return t
}

func roleTable(r *analytics.Report) Table {
	t := Table{
		Name:   SheetRoles,
		Header: []string{"ID", "Role", "Location", "Job Family", "Level", "Vendors", "Interviews", "Placements", "Pass Rate %"},
	}
	for _, role := range r.Roles {
		t.Rows = append(t.Rows, []any{
			role.ID, role.Name, role.Location, role.JobFamilyID, role.Level,
			role.VendorCount, role.Volume, role.Placements, role.PassRate,
		})
	}
	return t
}

func jobFamilyTable(r *analytics.Report) Table {
	t := Table{
		Name:   SheetJobFamilies,
		Header: []string{"ID", "Job Family", "Roles", "Interviews", "Passed", "Placements", "Avg Pass Rate %", "Top Vendor"},
	}
	for _, f := range r.JobFamilies {
		top := ""
		if len(f.Vendors) > 0 {
			top = f.Vendors[0].Name
		}
		t.Rows = append(t.Rows, []any{
			f.ID, f.Name, f.RoleCount, f.TotalVolume, f.TotalPasses, f.Placements, f.AvgPassRate, top,
		})
	}
	return t
}

func rateCardTable(r *analytics.Report) Table {
	t := Table{
		Name: SheetRateCards,
		Header: []string{
			"Vendor ID", "Region", "Role Category", "Tier", "Currency", "Placement Fee",
			"Interview Fee", "Volume", "Discount Threshold", "Discount Rate", "Effective Placement Fee",
		},
	}
	for _, c := range r.RateCards {
		var threshold, rate any = "", ""
		if c.DiscountThreshold != nil {
			threshold = *c.DiscountThreshold
		}
		if c.DiscountRate != nil {
			rate = *c.DiscountRate
		}
		t.Rows = append(t.Rows, []any{
			c.VendorID, c.Region, c.RoleCategory, c.Tier, c.Currency, c.PlacementFee,
			c.InterviewFee, c.Volume, threshold, rate, analytics.EffectivePlacementFee(c),
		})
	}
	return t
}

func regionTable(r *analytics.Report) Table {
	t := Table{
		Name: SheetRegions,
		Header: []string{
			"Region", "Rate Cards", "Roles", "Interviews", "Avg Placement Fee",
			"Avg Interview Fee", "Cost Per Placement",
		},
	}
	for _, reg := range r.Regions {
		t.Rows = append(t.Rows, []any{
			reg.Region, reg.RateCardCount, reg.RoleCount, reg.TotalVolume,
			reg.AvgPlacementFee, reg.AvgInterviewFee, reg.CostPerPlacement,
		})
	}
	return t
}
