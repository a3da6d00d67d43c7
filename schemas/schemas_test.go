package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/vendor-insights/internal/schemas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var schemaFiles = []string{
	"config.schema.json",
}

func TestAllSchemaFiles_ValidJSON(t *testing.T) {
	for _, schemaFile := range schemaFiles {
		t.Run(schemaFile, func(t *testing.T) {
			data, err := os.ReadFile(filepath.Join(".", schemaFile))
			require.NoError(t, err, "should be able to read schema file")

			var v interface{}
			assert.NoError(t, json.Unmarshal(data, &v), "schema file should be valid JSON: %s", schemaFile)
		})
	}
}

func TestConfigSchema(t *testing.T) {
	data, err := os.ReadFile("config.schema.json")
	require.NoError(t, err)
	schema := string(data)

	tests := []struct {
		name    string
		doc     string
		wantErr bool
	}{
		{name: "empty document", doc: `{}`},
		{name: "full document", doc: `{
			"port": 9090,
			"log_level": "debug",
			"jwt_secret": "s",
			"jwt_expiration_hours": 8,
			"bcrypt_cost": 10,
			"faq_backend": "csv",
			"faq_path": "data/faq.csv",
			"cache_ttl": "1m30s",
			"redis_addr": "localhost:6379",
			"data_seed": 7,
			"reference_date": "2025-01-31"
		}`},
		{name: "cache disabled", doc: `{"cache_ttl": "0"}`},
		{name: "unknown key", doc: `{"colour": "blue"}`, wantErr: true},
		{name: "port out of range", doc: `{"port": 70000}`, wantErr: true},
		{name: "bad log level", doc: `{"log_level": "trace"}`, wantErr: true},
		{name: "bad backend", doc: `{"faq_backend": "sqlite"}`, wantErr: true},
		{name: "bcrypt cost too low", doc: `{"bcrypt_cost": 4}`, wantErr: true},
		{name: "bad ttl", doc: `{"cache_ttl": "soon"}`, wantErr: true},
		{name: "bad reference date", doc: `{"reference_date": "31/01/2025"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := schemas.ValidateJSONString(schema, tt.doc)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
