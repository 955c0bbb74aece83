package handlers

import (
	"net/http"

	"github.com/hongminglow/homeflow-be/internal/http/respond"
	"github.com/hongminglow/homeflow-be/internal/middleware"
	"github.com/hongminglow/homeflow-be/internal/models/dto"
	"github.com/hongminglow/homeflow-be/internal/service"
)

// UserHandler owns the caller's own profile endpoints.
type UserHandler struct {
	users *service.UserService
	guard *middleware.Guard
}

// NewUserHandler constructs the handler.
func NewUserHandler(users *service.UserService, guard *middleware.Guard) *UserHandler {
	return &UserHandler{users: users, guard: guard}
}

// Register attaches user routes to the mux.
func (h *UserHandler) Register(mux *http.ServeMux) {
	// sync-user creates the local row, so it only needs a verified token.
	mux.HandleFunc("POST /api/auth/sync-user", h.guard.Identity(h.handleSync))
	mux.HandleFunc("GET /api/me", h.guard.User(h.handleMe))
}

func (h *UserHandler) handleSync(w http.ResponseWriter, r *http.Request) {
	req, ok := decodePayload[dto.SyncUserRequest](w, r)
	if !ok {
		return
	}
	id, _ := middleware.IdentityFromContext(r.Context())
	user, err := h.users.Sync(r.Context(), id, req)
	if err != nil {
		respond.HandleErr(w, r, err)
		return
	}
	respond.JSON(w, http.StatusOK, user)
}

func (h *UserHandler) handleMe(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())
	respond.JSON(w, http.StatusOK, user)
}

func userID(r *http.Request) int64 {
	user, _ := middleware.UserFromContext(r.Context())
	return user.ID
}
