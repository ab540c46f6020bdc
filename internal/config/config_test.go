package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: https://api.clinic.example
database:
  path: data/admin.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "beauty-center-admin", cfg.App.Name)
	assert.Equal(t, 10, cfg.Console.PageSize)
	assert.Equal(t, 400, cfg.Console.DebounceMillis)
	assert.Equal(t, 5, cfg.Backend.RateLimitBurst)
	assert.Equal(t, "exports", cfg.Exports.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("CLINIC_API_URL", "https://api.clinic.example")

	path := writeConfig(t, `
backend:
  base_url: ${CLINIC_API_URL}
database:
  path: data/admin.db
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://api.clinic.example", cfg.Backend.BaseURL)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing base url",
			content: "database:\n  path: data/admin.db\n",
			wantErr: "base_url",
		},
		{
			name:    "missing database path",
			content: "backend:\n  base_url: https://api.clinic.example\n",
			wantErr: "database path",
		},
		{
			name:    "negative rate limit",
			content: "backend:\n  base_url: https://api.clinic.example\n  rate_limit_rps: -1\ndatabase:\n  path: data/admin.db\n",
			wantErr: "rate_limit_rps",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := &Config{}
	assert.Equal(t, "30s", cfg.Backend.TimeoutDuration().String())
	assert.Equal(t, "24h0m0s", cfg.Session.TTL().String())
	assert.Equal(t, "400ms", cfg.Console.Debounce().String())

	cfg.Backend.Timeout = 5
	assert.Equal(t, "5s", cfg.Backend.TimeoutDuration().String())
}
