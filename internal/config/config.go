// Package config provides configuration loading and validation for the dashboard server and CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/jonathan/vendor-insights/internal/schemas"
	"gopkg.in/yaml.v3"
)

// SchemaPath is the JSON Schema that configuration files are checked against.
const SchemaPath = "schemas/config.schema.json"

// FAQ storage backends
const (
	FAQBackendCSV      = "csv"
	FAQBackendPostgres = "postgres"
)

// Config represents the dashboard configuration. It can be loaded from a JSON or YAML
// file; environment variables override file values.
type Config struct {
	// Server
	Port     int    `json:"port,omitempty"`      // HTTP port
	Password string `json:"password,omitempty"`  // shared dashboard password
	LogLevel string `json:"log_level,omitempty"` // debug, info, warn or error

	// Sessions
	JWTSecret          string `json:"jwt_secret,omitempty"`
	JWTExpirationHours int    `json:"jwt_expiration_hours,omitempty"`
	BcryptCost         int    `json:"bcrypt_cost,omitempty"`
	PasswordPepper     string `json:"password_pepper,omitempty"`

	// FAQ storage
	FAQBackend  string `json:"faq_backend,omitempty"`  // csv or postgres
	FAQPath     string `json:"faq_path,omitempty"`     // CSV file for the csv backend
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL URL for the postgres backend

	// Response cache
	CacheTTL      string `json:"cache_ttl,omitempty"`  // Go duration; "0" disables caching
	RedisAddr     string `json:"redis_addr,omitempty"` // empty uses the in-memory cache
	RedisPassword string `json:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty"`

	// Dataset
	DataSeed      uint64 `json:"data_seed,omitempty"`
	ReferenceDate string `json:"reference_date,omitempty"` // YYYY-MM-DD, defaults to today
}

// Defaults returns the configuration used for unset values.
func Defaults() Config {
	return Config{
		Port:               8080,
		LogLevel:           "info",
		JWTExpirationHours: DefaultJWTExpirationHours,
		BcryptCost:         DefaultBcryptCost,
		FAQBackend:         FAQBackendCSV,
		FAQPath:            "data/faq.csv",
		CacheTTL:           "30s",
		DataSeed:           42,
	}
}

// LoadConfig loads configuration from a JSON or YAML file (chosen by extension).
// When the config schema can be located the document is validated against it first.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		var doc map[string]any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
		if doc == nil {
			doc = map[string]any{}
		}
		if data, err = json.Marshal(doc); err != nil {
			return nil, fmt.Errorf("failed to convert config YAML: %w", err)
		}
	}

	if schemaPath := schemas.ResolveSchemaPath(SchemaPath); schemaPath != "" {
		schemaContent, err := os.ReadFile(schemaPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config schema: %w", err)
		}
		if err := schemas.ValidateJSONString(string(schemaContent), string(data)); err != nil {
			return nil, fmt.Errorf("config file %s does not match schema: %w", path, err)
		}
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: the password and JWT secret are checked when the gate is built, so a CLI command
// that never serves can run without them.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be 1..65535")
	}

	switch c.FAQBackend {
	case "", FAQBackendCSV:
	case FAQBackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("config error: 'database_url' is required for the postgres FAQ backend")
		}
	default:
		return fmt.Errorf("config error: 'faq_backend' must be %q or %q", FAQBackendCSV, FAQBackendPostgres)
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config error: 'log_level' must be debug, info, warn or error")
	}

	if _, err := c.CacheDuration(); err != nil {
		return fmt.Errorf("config error: 'cache_ttl': %w", err)
	}
	if _, err := c.Reference(); err != nil {
		return fmt.Errorf("config error: 'reference_date': %w", err)
	}
	if c.JWTExpirationHours < 0 {
		return fmt.Errorf("config error: 'jwt_expiration_hours' must be non-negative")
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Password == "" {
		result.Password = defaults.Password
	}
	if result.LogLevel == "" {
		result.LogLevel = defaults.LogLevel
	}
	if result.JWTSecret == "" {
		result.JWTSecret = defaults.JWTSecret
	}
	if result.JWTExpirationHours == 0 {
		result.JWTExpirationHours = defaults.JWTExpirationHours
	}
	if result.BcryptCost == 0 {
		result.BcryptCost = defaults.BcryptCost
	}
	if result.PasswordPepper == "" {
		result.PasswordPepper = defaults.PasswordPepper
	}
	if result.FAQBackend == "" {
		result.FAQBackend = defaults.FAQBackend
	}
	if result.FAQPath == "" {
		result.FAQPath = defaults.FAQPath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.CacheTTL == "" {
		result.CacheTTL = defaults.CacheTTL
	}
	if result.RedisAddr == "" {
		result.RedisAddr = defaults.RedisAddr
	}
	if result.DataSeed == 0 {
		result.DataSeed = defaults.DataSeed
	}
	if result.ReferenceDate == "" {
		result.ReferenceDate = defaults.ReferenceDate
	}

	return result
}

// ApplyEnv overrides fields from environment variables read through getenv.
// Unparseable numeric values are reported rather than ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	setString := func(key string, dst *string) {
		if v := getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", key, err)
		}
		*dst = n
		return nil
	}

	setString("DASHBOARD_PASSWORD", &c.Password)
	setString("LOG_LEVEL", &c.LogLevel)
	setString("JWT_SECRET", &c.JWTSecret)
	setString("PASSWORD_PEPPER", &c.PasswordPepper)
	setString("FAQ_BACKEND", &c.FAQBackend)
	setString("FAQ_PATH", &c.FAQPath)
	setString("DATABASE_URL", &c.DatabaseURL)
	setString("CACHE_TTL", &c.CacheTTL)
	setString("REDIS_ADDR", &c.RedisAddr)
	setString("REDIS_PASSWORD", &c.RedisPassword)
	setString("REFERENCE_DATE", &c.ReferenceDate)

	for key, dst := range map[string]*int{
		"PORT":                 &c.Port,
		"JWT_EXPIRATION_HOURS": &c.JWTExpirationHours,
		"BCRYPT_COST":          &c.BcryptCost,
		"REDIS_DB":             &c.RedisDB,
	} {
		if err := setInt(key, dst); err != nil {
			return err
		}
	}

	if v := getenv("DATA_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid DATA_SEED: %v", err)
		}
		c.DataSeed = seed
	}

	return nil
}

// CacheDuration parses CacheTTL. An empty value or "0" disables the cache.
func (c *Config) CacheDuration() (time.Duration, error) {
	if c.CacheTTL == "" || c.CacheTTL == "0" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("must be non-negative, got %s", d)
	}
	return d, nil
}

// Reference parses ReferenceDate. An empty value returns the zero time.
func (c *Config) Reference() (time.Time, error) {
	if c.ReferenceDate == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.DateOnly, c.ReferenceDate)
}

// PasswordConfig builds the bcrypt configuration for the shared password.
func (c *Config) PasswordConfig() (*PasswordConfig, error) {
	return NewPasswordConfig(c.BcryptCost, c.PasswordPepper)
}

// JWTConfig builds the session token configuration.
func (c *Config) JWTConfig() (*JWTConfig, error) {
	return NewJWTConfig(c.JWTSecret, c.JWTExpirationHours)
}

// Resolve loads path (when non-empty), applies environment overrides and defaults, and
// validates the result.
func Resolve(path string, getenv func(string) string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
