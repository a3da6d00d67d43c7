// Package types provides type definitions for the records served by the vendor-insights dashboard.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// VendorStatus is the engagement status of a vendor
type VendorStatus string

const (
	VendorActive   VendorStatus = "Active"
	VendorInactive VendorStatus = "Inactive"
)

// VendorRecord holds interview performance for a single vendor over the canonical 30-day window
type VendorRecord struct {
	ID                     string       `json:"id"`
	Name                   string       `json:"name"`
	Status                 VendorStatus `json:"status"`
	Tier                   string       `json:"tier"`
	Volume                 int          `json:"volume"`          // interviews conducted
	Placements             int          `json:"placements"`      // successful hires
	PassTotal              int          `json:"pass_total"`      // candidates scoring above bar
	PassRate               int          `json:"pass_rate"`       // percent, PassTotal/Volume
	TimeInProcess          float64      `json:"time_in_process"` // days, average
	NoShows                float64      `json:"no_shows"`        // percent
	IntegrityFlag          float64      `json:"integrity_flag"`  // percent
	InterviewsPerPlacement float64      `json:"interviews_per_placement"`
	History                []Snapshot   `json:"history,omitempty"`
}

// Snapshot is one periodic sample of a vendor's metrics
type Snapshot struct {
	Date          time.Time `json:"date"`
	PeriodLabel   string    `json:"period_label"`
	Volume        int       `json:"volume"`
	Placements    int       `json:"placements"`
	PassTotal     int       `json:"pass_total"`
	PassRate      int       `json:"pass_rate"`
	TimeInProcess float64   `json:"time_in_process"`
	NoShows       float64   `json:"no_shows"`
	IntegrityFlag float64   `json:"integrity_flag"`
}

// IsActive reports whether the vendor is currently engaged.
func (v VendorRecord) IsActive() bool {
	return v.Status == VendorActive
}
