package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/service"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

// ErrorBody is the payload of every non-2xx response.
type ErrorBody struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// JSON writes payload with the given status.
func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("respond: encode payload failed", "error", err)
	}
}

// Error writes an error body with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, ErrorBody{Error: message})
}

// HandleErr maps err onto a status and a client-safe message, logging it first.
func HandleErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ve *service.ValidationError
		se *service.StorageError
	)
	switch {
	case errors.As(err, &ve):
		slog.Debug("request rejected", "error", err, "method", r.Method, "path", r.URL.Path)
		JSON(w, http.StatusBadRequest, ErrorBody{Error: "validation failed", Fields: ve.Fields})
	case errors.Is(err, auth.ErrUnauthenticated):
		slog.Info("request unauthenticated", "error", err, "method", r.Method, "path", r.URL.Path)
		Error(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, storage.ErrNotFound):
		Error(w, http.StatusNotFound, "user not found")
	case errors.As(err, &se):
		slog.Error("storage failure", "op", se.Op, "error", se.Err, "method", r.Method, "path", r.URL.Path)
		Error(w, http.StatusInternalServerError, "internal server error")
	default:
		slog.Error("request error", "error", err, "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)
		Error(w, http.StatusInternalServerError, "internal server error")
	}
}
