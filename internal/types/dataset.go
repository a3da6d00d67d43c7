package types

import "time"

// Summary holds dataset-wide baseline metrics computed at generation time
type Summary struct {
	OverallPassRate int `json:"overall_pass_rate"`
	TotalPlacements int `json:"total_placements"`
}

// Dataset is the immutable record set the dashboard aggregates over
type Dataset struct {
	Vendors     []VendorRecord `json:"vendors"`
	Roles       []RoleRecord   `json:"roles"`
	JobFamilies []JobFamily    `json:"job_families"`
	RateCards   []RateCard     `json:"rate_cards"`
	Regions     []string       `json:"regions"`
	Summary     Summary        `json:"summary"`
	GeneratedAt time.Time      `json:"generated_at"`
}

// VendorByID returns the vendor with the given ID, or nil.
func (d *Dataset) VendorByID(id string) *VendorRecord {
	for i := range d.Vendors {
		if d.Vendors[i].ID == id {
			return &d.Vendors[i]
		}
	}
	return nil
}
