package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnv = []string{
	"PORT", "DATABASE_URL", "OIDC_ISSUER_URL", "OIDC_CLIENT_ID", "JWT_SECRET", "JWT_ISSUER",
	"JWT_TTL_MINUTES", "AUTO_PROVISION_USERS", "CORS_ALLOWED_ORIGINS", "LOG_LEVEL",
	"HTTP_READ_TIMEOUT", "HTTP_WRITE_TIMEOUT", "HTTP_IDLE_TIMEOUT", "HTTP_SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configEnv {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite::memory:")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "homeflow", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.AutoProvisionUsers)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.OIDCEnabled())
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://localhost/homeflow")
	t.Setenv("OIDC_ISSUER_URL", "https://id.example.com/")
	t.Setenv("OIDC_CLIENT_ID", "homeflow-web")
	t.Setenv("JWT_TTL_MINUTES", "nonsense")
	t.Setenv("AUTO_PROVISION_USERS", "false")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com , ,https://b.example.com")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("HTTP_WRITE_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.OIDCEnabled())
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.AutoProvisionUsers)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.WriteTimeout)
}

func TestLoadRejects(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{"no database", map[string]string{"JWT_SECRET": "s"}},
		{"no verifier", map[string]string{"DATABASE_URL": "sqlite::memory:"}},
		{"issuer without client", map[string]string{"DATABASE_URL": "sqlite::memory:", "OIDC_ISSUER_URL": "https://id.example.com/"}},
		{"client without issuer", map[string]string{"DATABASE_URL": "sqlite::memory:", "OIDC_CLIENT_ID": "web", "JWT_SECRET": "s"}},
		{"bad bool", map[string]string{"DATABASE_URL": "sqlite::memory:", "JWT_SECRET": "s", "AUTO_PROVISION_USERS": "maybe"}},
		{"bad level", map[string]string{"DATABASE_URL": "sqlite::memory:", "JWT_SECRET": "s", "LOG_LEVEL": "loud"}},
		{"bad duration", map[string]string{"DATABASE_URL": "sqlite::memory:", "JWT_SECRET": "s", "HTTP_READ_TIMEOUT": "-1s"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
