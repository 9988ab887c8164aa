package api

import (
	"net/http"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
)

// UserHandler handles requests about the authenticated user.
type UserHandler struct{}

// NewUserHandler creates a new UserHandler.
func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// Profile handles GET /users/profile. It echoes the resolved principal's
// public fields.
func (h *UserHandler) Profile(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, principalToResponse(principal))
}

// Admin handles GET /users/admin, an example resource gated on the admin
// role by the RequireAdmin middleware.
func (h *UserHandler) Admin(w http.ResponseWriter, r *http.Request) {
	principal, ok := getPrincipal(w, r)
	if !ok {
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, map[string]any{
		"message": "Welcome, admin!",
		"user":    principalToResponse(principal),
	})
}
