package domain

import "github.com/google/uuid"

// Principal is the authenticated identity attached to a request after
// credential verification. It is derived from a stored User and carries
// only public fields; it is never persisted and lives for one request.
type Principal struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  Role      `json:"role"`
}

// IsAdmin reports whether the principal holds the admin role.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}
