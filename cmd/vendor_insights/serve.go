package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/vendor-insights/internal/cache"
	"github.com/jonathan/vendor-insights/internal/config"
	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/server"
	"github.com/jonathan/vendor-insights/internal/server/ratelimit"
	"github.com/jonathan/vendor-insights/internal/session"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// sessionPruneInterval is how often expired sessions are forgotten
const sessionPruneInterval = 10 * time.Minute

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	Long:  `Start an HTTP server that exposes the dashboard views, the FAQ store and the access gate.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are not actionable

	gate, err := newGate(cfg)
	if err != nil {
		return err
	}

	dataset, err := generateDataset(cfg)
	if err != nil {
		return err
	}
	logger.Info("dataset generated",
		zap.Uint64("seed", cfg.DataSeed),
		zap.Time("reference", dataset.GeneratedAt),
		zap.Int("vendors", len(dataset.Vendors)),
		zap.Int("roles", len(dataset.Roles)),
	)

	ctx := context.Background()
	store, closeStore, err := faq.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to open FAQ store: %w", err)
	}
	defer closeStore()

	views, closeCache, err := newViewLoader(cfg, logger)
	if err != nil {
		return err
	}
	defer closeCache()

	stopPrune := pruneSessions(gate, sessionPruneInterval, logger)
	defer stopPrune()

	srv, err := server.New(server.Config{
		Port:    cfg.Port,
		Dataset: dataset,
		Gate:    gate,
		FAQ:     store,
		Views:   views,
		Limiter: ratelimit.NewLimiter(ratelimit.LoadConfig(os.Getenv)),
		Logger:  logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}

// newGate builds the access gate from the shared password and token settings.
func newGate(cfg *config.Config) (*session.Gate, error) {
	passwords, err := cfg.PasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	jwtConfig, err := cfg.JWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	gate, err := session.NewGate(cfg.Password, passwords, session.NewTokenService(jwtConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to create access gate: %w", err)
	}
	return gate, nil
}

// newViewLoader builds the view cache described by cfg.
func newViewLoader(cfg *config.Config, logger *zap.Logger) (*cache.Loader, func(), error) {
	ttl, err := cfg.CacheDuration()
	if err != nil {
		return nil, nil, err
	}
	c, err := cache.New(cache.Options{
		TTL: ttl,
		Redis: cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create view cache: %w", err)
	}

	logger.Info("view cache ready", zap.String("backend", fmt.Sprintf("%T", c)), zap.Duration("ttl", ttl))
	closeCache := func() {
		if err := c.Close(); err != nil {
			logger.Warn("failed to close view cache", zap.Error(err))
		}
	}
	return cache.NewLoader(c, ttl, logger), closeCache, nil
}

// pruneSessions forgets expired sessions every interval until the returned stop is called.
func pruneSessions(gate *session.Gate, interval time.Duration, logger *zap.Logger) (stop func()) {
	ticker := time.NewTicker(interval)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case now := <-ticker.C:
				if n := gate.PruneExpired(now); n > 0 {
					logger.Debug("pruned expired sessions", zap.Int("count", n))
				}
			case <-done:
				return
			}
		}
	}()
	return func() {
		ticker.Stop()
		close(done)
	}
}
