package ratelimit

import (
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from RATE_LIMIT_* variables read through
// getenv. Unset or unparseable values keep their defaults.
func LoadConfig(getenv func(string) string) *Config {
	env := envReader(getenv)

	enabled := env.boolean("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    env.integer("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   env.duration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: env.duration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseIPList(env.str("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(env.str("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Password guessing (strictest limits)
		{Path: "/auth/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Tier 2: Writes and workbook generation (moderate limits)
		{Path: "/api/faq", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/export.xlsx", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/export.csv", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 3: Dashboard reads - handled by default limit
		// Tier 4: Health check and metrics (unlimited) - handled by special case in matcher
	}
}

type envReader func(string) string

func (e envReader) str(key string, defaultValue string) string {
	if value := e(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) integer(key string, defaultValue int) int {
	if value := e(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (e envReader) boolean(key string, defaultValue bool) bool {
	if value := e(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (e envReader) duration(key string, defaultValue time.Duration) time.Duration {
	if value := e(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
