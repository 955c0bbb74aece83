package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/service"
)

// maxBodyBytes caps request payloads.
const maxBodyBytes = 1 << 20

// decodePayload reads a JSON body into T, answering 400 itself when it cannot.
func decodePayload[T any](w http.ResponseWriter, r *http.Request) (T, bool) {
	var payload T
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&payload); err != nil {
		respond.Error(w, http.StatusBadRequest, "invalid JSON payload")
		return payload, false
	}
	return payload, true
}

// pathID parses the {id} wildcard as a positive integer.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, invalid("id", "id must be a positive integer")
	}
	return id, nil
}

// queryLimit parses an optional positive integer query parameter; zero means unset.
func queryLimit(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, invalid(name, name+" must be a positive integer")
	}
	return n, nil
}

func invalid(field, msg string) error {
	return &service.ValidationError{Fields: map[string]string{field: msg}}
}
