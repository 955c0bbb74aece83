package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/hongminglow/homeflow-be/internal/auth"
	"github.com/hongminglow/homeflow-be/internal/models"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/storage"
)

// UserService syncs identity-provider profiles into local users.
type UserService struct {
	store storage.UserStore
}

// NewUserService creates the service over store.
func NewUserService(store storage.UserStore) *UserService {
	return &UserService{store: store}
}

// Sync upserts the user for id. The subject always comes from the verified
// token; a blank display name keeps the stored one.
func (s *UserService) Sync(ctx context.Context, id auth.Identity, req dto.SyncUserRequest) (models.User, error) {
	var v validator
	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = id.Email
	}
	v.check(email != "", "email", "email is required")
	if email != "" {
		_, err := mail.ParseAddress(email)
		v.check(err == nil, "email", "email is not a valid address")
	}
	if err := v.err(); err != nil {
		return models.User{}, err
	}

	name := strings.TrimSpace(req.DisplayName)
	if name == "" {
		existing, err := s.store.FindUserByExternalID(ctx, id.Subject)
		switch {
		case err == nil:
			name = existing.DisplayName
		case errors.Is(err, storage.ErrNotFound):
			name = auth.DisplayNameFor(id)
		default:
			return models.User{}, storageErr("find user", err)
		}
	}

	user, err := s.store.UpsertUser(ctx, models.User{ExternalID: id.Subject, Email: email, DisplayName: name})
	return user, storageErr("upsert user", err)
}
