package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
)

// Recover turns a handler panic into a 500 response.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				if err == http.ErrAbortHandler {
					panic(err)
				}
				slog.Error("internal server error",
					"error", err,
					"method", r.Method,
					"url", r.URL.String(),
					"remote_addr", r.RemoteAddr,
					"request_id", RequestIDFromContext(r.Context()),
					"stack_trace", string(debug.Stack()),
				)
				respond.Error(w, http.StatusInternalServerError, "internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
