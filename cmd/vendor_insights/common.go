package main

import (
	"fmt"
	"os"

	"github.com/jonathan/vendor-insights/internal/analytics"
	"github.com/jonathan/vendor-insights/internal/config"
	"github.com/jonathan/vendor-insights/internal/mockdata"
	"github.com/jonathan/vendor-insights/internal/observability"
	"github.com/jonathan/vendor-insights/internal/types"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// loadConfig resolves --config, the environment and defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Resolve(configPath, os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.LogLevel)
}

// generateDataset builds the mock dataset the configuration describes.
func generateDataset(cfg *config.Config) (*types.Dataset, error) {
	ref, err := cfg.Reference()
	if err != nil {
		return nil, fmt.Errorf("invalid reference date: %w", err)
	}
	return mockdata.NewGenerator(cfg.DataSeed, ref).Generate(), nil
}

// filterFlags are the view filters shared by report and export.
type filterFlags struct {
	period  string
	vendor  string
	role    string
	family  string
	search  string
	regions []string
}

func (f *filterFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.period, "period", string(analytics.DefaultPeriod), "Reporting window: 7d, 30d, 90d, 1y or 2y")
	cmd.Flags().StringVar(&f.vendor, "vendor", analytics.AllVendors, "Vendor name")
	cmd.Flags().StringVar(&f.role, "role", analytics.AllRoles, "Role name")
	cmd.Flags().StringVar(&f.family, "family", analytics.AllJobFamilies, "Job family name or ID")
	cmd.Flags().StringVar(&f.search, "q", "", "Case-insensitive search")
	cmd.Flags().StringSliceVar(&f.regions, "region", nil, "Region (repeatable)")
}

// state converts the flags into a normalized FilterState.
func (f *filterFlags) state() (analytics.FilterState, error) {
	period, err := analytics.ParsePeriod(f.period)
	if err != nil {
		return analytics.FilterState{}, err
	}
	fs := analytics.FilterState{
		Period:    period,
		Vendor:    f.vendor,
		Role:      f.role,
		JobFamily: f.family,
		Search:    f.search,
		Regions:   f.regions,
	}
	return fs.Normalize(), nil
}
