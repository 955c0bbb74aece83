package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/models"
)

type identityKey struct{}

type userKey struct{}

// UserResolver maps a verified identity to its local user.
type UserResolver interface {
	Resolve(ctx context.Context, id auth.Identity) (models.User, error)
}

// Guard authenticates requests per route before any handler touches data.
type Guard struct {
	verifier auth.Verifier
	users    UserResolver
}

// NewGuard creates a guard verifying tokens with verifier and resolving users with users.
func NewGuard(verifier auth.Verifier, users UserResolver) *Guard {
	return &Guard{verifier: verifier, users: users}
}

// Identity requires a verified bearer token and stores its identity on the context.
func (g *Guard) Identity(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, err := auth.BearerToken(r.Header)
		if err != nil {
			respond.HandleErr(w, r, err)
			return
		}
		id, err := g.verifier.Verify(r.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrUnauthenticated) {
				err = fmt.Errorf("%w: %w", auth.ErrUnauthenticated, err)
			}
			respond.HandleErr(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), identityKey{}, id)))
	}
}

// User is Identity plus resolution of the local user.
func (g *Guard) User(next http.HandlerFunc) http.HandlerFunc {
	return g.Identity(func(w http.ResponseWriter, r *http.Request) {
		id, _ := IdentityFromContext(r.Context())
		user, err := g.users.Resolve(r.Context(), id)
		if err != nil {
			respond.HandleErr(w, r, err)
			return
		}
		next(w, r.WithContext(context.WithValue(r.Context(), userKey{}, user)))
	})
}

// IdentityFromContext returns the identity stored by Guard.Identity.
func IdentityFromContext(ctx context.Context) (auth.Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(auth.Identity)
	return id, ok
}

// UserFromContext returns the user stored by Guard.User.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userKey{}).(models.User)
	return user, ok
}
