package types

// RoleRecord is an open role together with the vendors servicing it.
// Vendors are embedded copies rather than references into the vendor list.
type RoleRecord struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Location    string         `json:"location"` // region
	JobFamilyID string         `json:"job_family_id"`
	Level       string         `json:"level"`
	Vendors     []VendorRecord `json:"vendors"`
}

// JobFamily groups roles for family-level reporting
type JobFamily struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// RateCard is a vendor's negotiated pricing for a region and role category
type RateCard struct {
	VendorID          string   `json:"vendor_id"`
	Region            string   `json:"region"`
	RoleCategory      string   `json:"role_category"`
	Tier              string   `json:"tier"`
	Currency          string   `json:"currency"`
	PlacementFee      float64  `json:"placement_fee"`
	InterviewFee      float64  `json:"interview_fee"`
	Volume            int      `json:"volume"`
	DiscountThreshold *int     `json:"discount_threshold,omitempty"`
	DiscountRate      *float64 `json:"discount_rate,omitempty"`
}
