package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfig(t, `
session:
  key: "0123456789abcdef0123456789abcdef"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3000", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.RegistrationEnabled)
	assert.Equal(t, "./data", cfg.Database.Path)
	assert.Equal(t, 172800, cfg.Session.MaxAge)
	assert.Equal(t, "neonlink_session", cfg.Session.CookieName)
	assert.Equal(t, 10*time.Minute, cfg.Session.ReapInterval)
	assert.Equal(t, 48*time.Hour, cfg.Session.TTL())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
listen: "127.0.0.1:8080"
log_level: debug
registration_enabled: false
database:
  path: /tmp/neonlink
session:
  key: "0123456789abcdef0123456789abcdef"
  max_age: 3600
  cookie_name: custom_session
  reap_interval: 1m
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.RegistrationEnabled)
	assert.Equal(t, "/tmp/neonlink", cfg.Database.Path)
	assert.Equal(t, 3600, cfg.Session.MaxAge)
	assert.Equal(t, "custom_session", cfg.Session.CookieName)
	assert.Equal(t, time.Minute, cfg.Session.ReapInterval)
	assert.Equal(t, time.Hour, cfg.Session.TTL())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "missing session key",
			content: "listen: \":3000\"\n",
			wantErr: "session key is required",
		},
		{
			name: "short session key",
			content: `
session:
  key: "too-short"
`,
			wantErr: "session key must be at least 32 characters",
		},
		{
			name: "non-positive max age",
			content: `
session:
  key: "0123456789abcdef0123456789abcdef"
  max_age: 0
`,
			wantErr: "session max age must be positive",
		},
		{
			name: "empty database path",
			content: `
database:
  path: ""
session:
  key: "0123456789abcdef0123456789abcdef"
`,
			wantErr: "database path is required",
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
