package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrUnauthenticated marks a request whose caller could not be established.
var ErrUnauthenticated = errors.New("unauthenticated")

// Identity is the verified subject of a bearer token.
type Identity struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks a raw bearer token and returns the identity it carries.
type Verifier interface {
	Verify(ctx context.Context, token string) (Identity, error)
}

// Verifiers tries each verifier in order; the first success wins.
type Verifiers []Verifier

// Verify returns the identity of the first verifier that accepts token.
func (vs Verifiers) Verify(ctx context.Context, token string) (Identity, error) {
	if len(vs) == 0 {
		return Identity{}, fmt.Errorf("%w: no token verifier configured", ErrUnauthenticated)
	}
	var errs []error
	for _, v := range vs {
		id, err := v.Verify(ctx, token)
		if err == nil {
			return id, nil
		}
		errs = append(errs, err)
	}
	return Identity{}, fmt.Errorf("%w: %w", ErrUnauthenticated, errors.Join(errs...))
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(headers http.Header) (string, error) {
	value := headers.Get("Authorization")
	if value == "" {
		return "", fmt.Errorf("%w: authorization header missing", ErrUnauthenticated)
	}
	scheme, token, ok := strings.Cut(value, " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", fmt.Errorf("%w: authorization scheme must be Bearer", ErrUnauthenticated)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", fmt.Errorf("%w: bearer presented without token", ErrUnauthenticated)
	}
	return token, nil
}
