package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/blake2b"

	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

// placeholderDomain hosts the synthetic email of users provisioned without one.
const placeholderDomain = "users.homeflow.local"

// Resolver maps a verified identity to its local user, provisioning on first sight.
type Resolver struct {
	store     storage.UserStore
	provision bool
}

// NewResolver creates a resolver over store; autoProvision creates unknown users.
func NewResolver(store storage.UserStore, autoProvision bool) *Resolver {
	return &Resolver{store: store, provision: autoProvision}
}

// Resolve returns the user for id. An unknown subject is created when
// provisioning is on and reported as storage.ErrNotFound otherwise. Lookup and
// persistence failures are ErrUnauthenticated.
func (r *Resolver) Resolve(ctx context.Context, id Identity) (models.User, error) {
	if strings.TrimSpace(id.Subject) == "" {
		return models.User{}, fmt.Errorf("%w: identity has no subject", ErrUnauthenticated)
	}

	user, err := r.store.FindUserByExternalID(ctx, id.Subject)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		return models.User{}, fmt.Errorf("%w: look up user: %w", ErrUnauthenticated, err)
	}
	if !r.provision {
		return models.User{}, storage.ErrNotFound
	}

	user, err = r.store.UpsertUser(ctx, models.User{
		ExternalID:  id.Subject,
		Email:       EmailFor(id),
		DisplayName: DisplayNameFor(id),
	})
	if err != nil {
		return models.User{}, fmt.Errorf("%w: provision user: %w", ErrUnauthenticated, err)
	}
	return user, nil
}

// EmailFor returns the identity's email or a placeholder derived from its subject.
func EmailFor(id Identity) string {
	if email := strings.TrimSpace(id.Email); email != "" {
		return email
	}
	local := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '-'
		}
	}, id.Subject)
	if len(local) > 32 {
		local = local[:32]
	}
	return fmt.Sprintf("%s-%s@%s", local, digest(id.Subject)[:8], placeholderDomain)
}

// DisplayNameFor returns the identity's name or a stable generated one.
func DisplayNameFor(id Identity) string {
	if name := strings.TrimSpace(id.Name); name != "" {
		return name
	}
	return "user_" + digest(id.Subject)[:16]
}

func digest(s string) string {
	sum := blake2b.Sum256([]byte(s))
	return fmt.Sprintf("%x", sum)
}
