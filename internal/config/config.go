package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port        string
	DatabaseURL string

	OIDCIssuerURL string
	OIDCClientID  string

	JWTSecret string
	JWTIssuer string
	JWTTTL    time.Duration

	AutoProvisionUsers bool
	CORSOrigins        []string
	LogLevel           slog.Level

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Port:          fallback(os.Getenv("PORT"), "8080"),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		OIDCIssuerURL: strings.TrimSpace(os.Getenv("OIDC_ISSUER_URL")),
		OIDCClientID:  strings.TrimSpace(os.Getenv("OIDC_CLIENT_ID")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "homeflow"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	var err error
	if cfg.AutoProvisionUsers, err = strconv.ParseBool(fallback(os.Getenv("AUTO_PROVISION_USERS"), "true")); err != nil {
		return Config{}, fmt.Errorf("AUTO_PROVISION_USERS: %w", err)
	}
	if err := cfg.LogLevel.UnmarshalText([]byte(fallback(os.Getenv("LOG_LEVEL"), "INFO"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	durations := []struct {
		name string
		def  time.Duration
		dst  *time.Duration
	}{
		{"HTTP_READ_TIMEOUT", 10 * time.Second, &cfg.ReadTimeout},
		{"HTTP_WRITE_TIMEOUT", 10 * time.Second, &cfg.WriteTimeout},
		{"HTTP_IDLE_TIMEOUT", 120 * time.Second, &cfg.IdleTimeout},
		{"HTTP_SHUTDOWN_TIMEOUT", 15 * time.Second, &cfg.ShutdownTimeout},
	}
	for _, d := range durations {
		if *d.dst, err = parseDuration(d.name, d.def); err != nil {
			return Config{}, err
		}
	}

	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("DATABASE_URL is required")
	}
	if cfg.OIDCIssuerURL != "" && cfg.OIDCClientID == "" {
		return Config{}, errors.New("OIDC_CLIENT_ID is required when OIDC_ISSUER_URL is set")
	}
	if cfg.OIDCClientID != "" && cfg.OIDCIssuerURL == "" {
		return Config{}, errors.New("OIDC_ISSUER_URL is required when OIDC_CLIENT_ID is set")
	}
	if !cfg.OIDCEnabled() && cfg.JWTSecret == "" {
		return Config{}, errors.New("configure OIDC_ISSUER_URL/OIDC_CLIENT_ID or JWT_SECRET")
	}

	return cfg, nil
}

// OIDCEnabled reports whether identity-provider tokens are accepted.
func (c Config) OIDCEnabled() bool {
	return c.OIDCIssuerURL != "" && c.OIDCClientID != ""
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseDuration(name string, def time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s must be a positive duration such as 15s", name)
	}
	return d, nil
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
