package faq

import (
	"context"
	"fmt"

	"github.com/jonathan/vendor-insights/internal/config"
	"github.com/jonathan/vendor-insights/internal/db"
	"go.uber.org/zap"
)

// Open returns the store selected by cfg.FAQBackend and a function releasing its resources.
func Open(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, func(), error) {
	switch cfg.FAQBackend {
	case "", config.FAQBackendCSV:
		return NewCSVStore(cfg.FAQPath, logger), func() {}, nil
	case config.FAQBackendPostgres:
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := database.EnsureFAQSchema(ctx); err != nil {
			database.Close()
			return nil, nil, err
		}
		return NewPostgresStore(database, logger), database.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown FAQ backend %q", cfg.FAQBackend)
	}
}
