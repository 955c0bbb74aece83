package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

func TestRecoverPanic(t *testing.T) {
	slog.SetDefault(slog.New(slog.DiscardHandler))

	h := Recover(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("test panic")
	}))
	rec := httptest.NewRecorder()

	assert.NotPanics(t, func() {
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLoggingRecordsStatusAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewJSONHandler(&buf, nil))
	h := RequestID(LoggingWith(l, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	req := httptest.NewRequest(http.MethodPost, "/api/todos", nil)
	req.Header.Set("User-Agent", "test-agent")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var entry struct {
		Msg       string `json:"msg"`
		Level     string `json:"level"`
		Method    string `json:"method"`
		Path      string `json:"path"`
		Status    int    `json:"status"`
		Agent     string `json:"agent"`
		RequestID string `json:"request_id"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "request handled", entry.Msg)
	assert.Equal(t, "WARN", entry.Level)
	assert.Equal(t, http.MethodPost, entry.Method)
	assert.Equal(t, "/api/todos", entry.Path)
	assert.Equal(t, http.StatusTeapot, entry.Status)
	assert.Equal(t, "test-agent", entry.Agent)
	assert.Equal(t, rec.Header().Get(RequestIDHeader), entry.RequestID)
	assert.NotEmpty(t, entry.RequestID)
}

func TestRequestIDReusesValidIncoming(t *testing.T) {
	const incoming = "3f8e0c3a-54b4-4a49-9d0b-7b0a8a3f8a11"
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, incoming)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, incoming, seen)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "<script>")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "<script>", seen)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })

	h := CORS([]string{"https://app.example.com"}, next)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://other.example.com")
	rec = httptest.NewRecorder()
	CORS([]string{"*"}, next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

type resolverFunc func(ctx context.Context, id auth.Identity) (models.User, error)

func (f resolverFunc) Resolve(ctx context.Context, id auth.Identity) (models.User, error) {
	return f(ctx, id)
}

func TestGuard(t *testing.T) {
	slog.SetDefault(slog.New(slog.DiscardHandler))
	tokens := auth.NewTokenManager("secret", "homeflow", time.Hour)
	valid, err := tokens.Generate(auth.Identity{Subject: "sub-1"})
	require.NoError(t, err)

	resolver := resolverFunc(func(_ context.Context, id auth.Identity) (models.User, error) {
		switch id.Subject {
		case "sub-1":
			return models.User{ID: 1, ExternalID: id.Subject}, nil
		case "ghost":
			return models.User{}, storage.ErrNotFound
		default:
			return models.User{}, errors.New("unexpected")
		}
	})
	guard := NewGuard(tokens, resolver)

	var gotUser models.User
	h := guard.User(func(w http.ResponseWriter, r *http.Request) {
		gotUser, _ = UserFromContext(r.Context())
		id, _ := IdentityFromContext(r.Context())
		assert.Equal(t, "sub-1", id.Subject)
		w.WriteHeader(http.StatusOK)
	})

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"raw token", valid, http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h(rec, req)
			assert.Equal(t, tc.status, rec.Code)
		})
	}
	assert.Equal(t, int64(1), gotUser.ID)

	ghost, err := tokens.Generate(auth.Identity{Subject: "ghost"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.Header.Set("Authorization", "Bearer "+ghost)
	rec := httptest.NewRecorder()
	guard.User(func(http.ResponseWriter, *http.Request) { t.Fatal("handler must not run") })(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
