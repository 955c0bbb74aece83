package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/config"
	"github.com/hongminglow/homeflow-be/internal/server"
	"github.com/hongminglow/homeflow-be/internal/storage"
	"github.com/hongminglow/homeflow-be/internal/storage/postgres"
	"github.com/hongminglow/homeflow-be/internal/storage/sqlite"
)

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel})))

	ctx := context.Background()
	store, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("init database", "error", err)
		os.Exit(1)
	}
	defer store.Close()

	verifier, err := buildVerifier(ctx, cfg)
	if err != nil {
		slog.Error("init token verification", "error", err)
		os.Exit(1)
	}

	srv := server.New(cfg, store, verifier)

	go func() {
		slog.Info("HomeFlow backend listening", "addr", cfg.HTTPAddress())
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	ctxShutdown, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		slog.Error("graceful shutdown error", "error", err)
	}
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found; relying on existing environment")
	}
}

// openStore picks the backend from the DATABASE_URL scheme.
func openStore(ctx context.Context, url string) (storage.Store, error) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		store, err := postgres.NewStore(ctx, url)
		if err != nil {
			return nil, err
		}
		return store, nil
	case strings.HasPrefix(url, "sqlite:"), strings.HasPrefix(url, "file:"):
		store, err := sqlite.NewStore(ctx, url)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported DATABASE_URL scheme in %q", redact(url))
	}
}

func buildVerifier(ctx context.Context, cfg config.Config) (auth.Verifier, error) {
	var chain auth.Verifiers
	if cfg.OIDCEnabled() {
		v, err := auth.NewOIDCVerifier(ctx, cfg.OIDCIssuerURL, cfg.OIDCClientID)
		if err != nil {
			return nil, err
		}
		chain = append(chain, v)
	}
	if cfg.JWTSecret != "" {
		chain = append(chain, auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL))
	}
	return chain, nil
}

func redact(url string) string {
	if i := strings.Index(url, "@"); i >= 0 {
		return "***" + url[i:]
	}
	return url
}
