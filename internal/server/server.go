package server

import (
	"context"
	"net/http"
	"time"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/config"
	"github.com/hongminglow/homeflow-be/internal/http/handlers"
	"github.com/hongminglow/homeflow-be/internal/middleware"
	"github.com/hongminglow/homeflow-be/internal/service"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, verifier auth.Verifier) *Server {
	return &Server{inner: &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           Routes(cfg, store, verifier),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}}
}

// Routes builds the full handler tree: services over store, per-route auth,
// and the middleware chain.
func Routes(cfg config.Config, store storage.Store, verifier auth.Verifier) http.Handler {
	guard := middleware.NewGuard(verifier, auth.NewResolver(store, cfg.AutoProvisionUsers))

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewUserHandler(service.NewUserService(store), guard).Register(mux)
	handlers.NewReminderHandler(service.NewReminderService(store), guard).Register(mux)
	handlers.NewTodoHandler(service.NewTodoService(store), guard).Register(mux)
	handlers.NewBudgetHandler(service.NewBudgetService(store), guard).Register(mux)

	return middleware.RequestID(middleware.Logging(middleware.Recover(middleware.CORS(cfg.CORSOrigins, mux))))
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
