// Package server provides the HTTP JSON API for the vendor-insights dashboard.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jonathan/vendor-insights/internal/cache"
	"github.com/jonathan/vendor-insights/internal/faq"
	"github.com/jonathan/vendor-insights/internal/server/middleware"
	"github.com/jonathan/vendor-insights/internal/server/ratelimit"
	"github.com/jonathan/vendor-insights/internal/session"
	"github.com/jonathan/vendor-insights/internal/types"
	"go.uber.org/zap"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	handler     http.Handler
	dataset     *types.Dataset
	reference   time.Time
	gate        *session.Gate
	faq         faq.Store
	views       *cache.Loader
	rateLimiter *ratelimit.Limiter
	metrics     *Metrics
	logger      *zap.Logger
}

// Config holds server dependencies. Dataset and Gate are required; the rest fall back
// to working defaults.
type Config struct {
	Port      int
	Dataset   *types.Dataset
	Reference time.Time // end of trend windows; defaults to Dataset.GeneratedAt
	Gate      *session.Gate
	FAQ       faq.Store
	Views     *cache.Loader
	Limiter   *ratelimit.Limiter
	Metrics   *Metrics
	Logger    *zap.Logger
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Dataset == nil {
		return nil, fmt.Errorf("server requires a dataset")
	}
	if cfg.Gate == nil {
		return nil, fmt.Errorf("server requires an access gate")
	}

	s := &Server{
		dataset:     cfg.Dataset,
		reference:   cfg.Reference,
		gate:        cfg.Gate,
		faq:         cfg.FAQ,
		views:       cfg.Views,
		rateLimiter: cfg.Limiter,
		metrics:     cfg.Metrics,
		logger:      cfg.Logger,
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.reference.IsZero() {
		s.reference = cfg.Dataset.GeneratedAt
	}
	if s.views == nil {
		s.views = cache.NewLoader(cache.NewNoOpCache(), 0, s.logger)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(&ratelimit.Config{Enabled: false})
	}
	if s.metrics == nil {
		s.metrics = NewMetrics()
	}

	gated := middleware.AuthMiddleware(cfg.Gate.AsTokenValidator())

	// Setup router
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", s.metrics.Handler())

	// Access gate
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("POST /auth/logout", gated(http.HandlerFunc(s.handleLogout)))
	mux.Handle("GET /auth/session", gated(http.HandlerFunc(s.handleSession)))

	// FAQ is readable and writable without a session
	mux.HandleFunc("GET /api/faq", s.handleListFAQ)
	mux.HandleFunc("POST /api/faq", s.handleCreateFAQ)

	// Dashboard views
	for pattern, h := range map[string]http.HandlerFunc{
		"GET /api/summary":            s.handleSummary,
		"GET /api/vendors":            s.handleVendors,
		"GET /api/vendors/{id}/trend": s.handleVendorTrend,
		"GET /api/roles":              s.handleRoles,
		"GET /api/pass-rate":          s.handlePassRate,
		"GET /api/placements":         s.handlePlacements,
		"GET /api/job-families":       s.handleJobFamilies,
		"GET /api/funnel":             s.handleFunnel,
		"GET /api/efficiency":         s.handleEfficiency,
		"GET /api/rate-cards":         s.handleRateCards,
		"GET /api/regions":            s.handleRegions,
		"GET /api/export.xlsx":        s.handleExportXLSX,
		"GET /api/export.csv":         s.handleExportCSV,
	} {
		mux.Handle(pattern, gated(h))
	}

	s.handler = s.withMetrics(s.withRateLimit(s.withLogging(s.withCORS(mux))))

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-stop:
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	}
	s.logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	// Stop rate limiter cleanup goroutine
	s.rateLimiter.Stop()

	s.logger.Info("server stopped")
	return nil
}

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	if r.status == 0 {
		r.status = code
	}
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.ResponseWriter.Write(b)
}

func (r *statusRecorder) code() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}

// withMetrics counts every request by its matched route pattern
func (s *Server) withMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)

		// ServeMux fills in Pattern on the shared request once it has matched
		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		s.metrics.requests.WithLabelValues(route, r.Method, strconv.Itoa(rec.code())).Inc()
	})
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Extract client identifier (IP address)
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, clientID, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rec, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.code()),
			zap.Duration("duration", time.Since(start)),
			zap.String("remote", r.RemoteAddr),
		)
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("failed to encode JSON response", zap.Error(err))
	}
}

// rawJSONResponse writes an already encoded JSON body
func (s *Server) rawJSONResponse(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		s.logger.Warn("failed to write response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	// Get IP from RemoteAddr (format: "IP:port")
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
		w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, clientID string, info ratelimit.Info) {
	response := map[string]any{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
	}
	if !info.ResetTime.IsZero() {
		response["reset_at"] = info.ResetTime.Format(time.RFC3339)
	}

	if info.RetryAfter > 0 {
		// Round up so clients never retry early
		retryAfter := int((info.RetryAfter + time.Second - 1) / time.Second)
		response["retry_after"] = retryAfter
		w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
	}

	s.logger.Warn("rate limit exceeded",
		zap.String("client", clientID),
		zap.Int("limit", info.Limit),
		zap.Int("remaining", info.Remaining),
	)

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
