package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestLoadConfig_ValidJSON(t *testing.T) {
	path := writeConfig(t, "config.json", `{
		"port": 9090,
		"password": "open-sesame",
		"faq_path": "tmp/faq.csv",
		"cache_ttl": "45s",
		"data_seed": 7,
		"reference_date": "2025-03-01"
	}`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "open-sesame", cfg.Password)
	assert.Equal(t, "tmp/faq.csv", cfg.FAQPath)
	assert.Equal(t, "45s", cfg.CacheTTL)
	assert.Equal(t, uint64(7), cfg.DataSeed)
	assert.Equal(t, "2025-03-01", cfg.ReferenceDate)
}

func TestLoadConfig_ValidYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
port: 9191
log_level: debug
faq_backend: csv
redis_addr: localhost:6379
redis_db: 2
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, FAQBackendCSV, cfg.FAQBackend)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadConfig_EmptyYAML(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "config.yml", ""))
	require.NoError(t, err)
	assert.Equal(t, Config{}, *cfg)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "config.json", `{ invalid json }`))
	assert.Error(t, err)
}

func TestLoadConfig_SchemaViolation(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "config.json", `{"port": "eighty"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")

	_, err = LoadConfig(writeConfig(t, "config.yaml", "unknown_key: true\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match schema")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nonexistent.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{name: "defaults", cfg: Defaults()},
		{name: "empty", cfg: Config{}},
		{name: "negative port", cfg: Config{Port: -1}, wantErr: "'port'"},
		{name: "port too large", cfg: Config{Port: 70000}, wantErr: "'port'"},
		{name: "unknown backend", cfg: Config{FAQBackend: "sqlite"}, wantErr: "'faq_backend'"},
		{name: "postgres without url", cfg: Config{FAQBackend: FAQBackendPostgres}, wantErr: "'database_url'"},
		{name: "postgres with url", cfg: Config{FAQBackend: FAQBackendPostgres, DatabaseURL: "postgres://localhost/db"}},
		{name: "bad log level", cfg: Config{LogLevel: "trace"}, wantErr: "'log_level'"},
		{name: "bad ttl", cfg: Config{CacheTTL: "soon"}, wantErr: "'cache_ttl'"},
		{name: "negative ttl", cfg: Config{CacheTTL: "-5s"}, wantErr: "'cache_ttl'"},
		{name: "bad reference date", cfg: Config{ReferenceDate: "2025-13-40"}, wantErr: "'reference_date'"},
		{name: "negative expiration", cfg: Config{JWTExpirationHours: -1}, wantErr: "'jwt_expiration_hours'"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Port:     9000,
		Password: "override",
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, 9000, merged.Port)
	assert.Equal(t, "override", merged.Password)
	assert.Equal(t, "info", merged.LogLevel)
	assert.Equal(t, DefaultBcryptCost, merged.BcryptCost)
	assert.Equal(t, DefaultJWTExpirationHours, merged.JWTExpirationHours)
	assert.Equal(t, FAQBackendCSV, merged.FAQBackend)
	assert.Equal(t, "data/faq.csv", merged.FAQPath)
	assert.Equal(t, "30s", merged.CacheTTL)
	assert.Equal(t, uint64(42), merged.DataSeed)

	// Original is untouched
	assert.Empty(t, cfg.LogLevel)
}

func TestMergeWithDefaults_EmptyDefaults(t *testing.T) {
	cfg := &Config{Port: 1234, FAQPath: "faq.csv"}
	merged := cfg.MergeWithDefaults(Config{})
	assert.Equal(t, *cfg, merged)
}

func TestApplyEnv(t *testing.T) {
	cfg := &Config{Port: 1000, FAQPath: "from-file.csv"}

	err := cfg.ApplyEnv(envFrom(map[string]string{
		"PORT":                 "8181",
		"DASHBOARD_PASSWORD":   "pw",
		"JWT_SECRET":           "secret",
		"JWT_EXPIRATION_HOURS": "6",
		"BCRYPT_COST":          "11",
		"CACHE_TTL":            "0",
		"REDIS_ADDR":           "redis:6379",
		"REDIS_DB":             "3",
		"DATA_SEED":            "99",
	}))
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Port)
	assert.Equal(t, "pw", cfg.Password)
	assert.Equal(t, "secret", cfg.JWTSecret)
	assert.Equal(t, 6, cfg.JWTExpirationHours)
	assert.Equal(t, 11, cfg.BcryptCost)
	assert.Equal(t, "0", cfg.CacheTTL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, uint64(99), cfg.DataSeed)
	// Unset variables leave file values alone
	assert.Equal(t, "from-file.csv", cfg.FAQPath)
}

func TestApplyEnv_InvalidNumbers(t *testing.T) {
	tests := map[string]string{
		"PORT":        "eighty",
		"BCRYPT_COST": "high",
		"DATA_SEED":   "-1",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			cfg := &Config{}
			err := cfg.ApplyEnv(envFrom(map[string]string{key: value}))
			require.Error(t, err)
			assert.Contains(t, err.Error(), key)
		})
	}
}

func TestCacheDuration(t *testing.T) {
	d, err := (&Config{}).CacheDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = (&Config{CacheTTL: "0"}).CacheDuration()
	require.NoError(t, err)
	assert.Zero(t, d)

	d, err = (&Config{CacheTTL: "1m30s"}).CacheDuration()
	require.NoError(t, err)
	assert.Equal(t, 90*time.Second, d)
}

func TestReference(t *testing.T) {
	ref, err := (&Config{}).Reference()
	require.NoError(t, err)
	assert.True(t, ref.IsZero())

	ref, err = (&Config{ReferenceDate: "2025-01-31"}).Reference()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 31, 0, 0, 0, 0, time.UTC), ref)
}

func TestConfig_SecurityAccessors(t *testing.T) {
	cfg := Defaults()
	cfg.JWTSecret = "secret"

	pw, err := cfg.PasswordConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, pw.BcryptCost)

	jwtCfg, err := cfg.JWTConfig()
	require.NoError(t, err)
	assert.Equal(t, "secret", jwtCfg.Secret)

	cfg.JWTSecret = ""
	_, err = cfg.JWTConfig()
	assert.Error(t, err)
}

func TestResolve(t *testing.T) {
	path := writeConfig(t, "config.json", `{"port": 7000, "faq_path": "file.csv"}`)

	cfg, err := Resolve(path, envFrom(map[string]string{"FAQ_PATH": "env.csv"}))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "env.csv", cfg.FAQPath)
	assert.Equal(t, "30s", cfg.CacheTTL)

	cfg, err = Resolve("", envFrom(nil))
	require.NoError(t, err)
	assert.Equal(t, Defaults(), *cfg)

	_, err = Resolve("", envFrom(map[string]string{"FAQ_BACKEND": "postgres"}))
	assert.Error(t, err)
}
