package shared

import "github.com/google/uuid"

// Role is the coarse permission level attached to an actor identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Actor is an already-authenticated identity handed to the service by the
// authentication collaborator. The service never verifies credentials itself.
type Actor struct {
	ID   uuid.UUID `json:"id"`
	Role Role      `json:"role"`
}

// IsAdmin returns true if the actor holds the administrator role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanModify returns true if the actor owns the record or is an administrator.
func (a Actor) CanModify(ownerID uuid.UUID) bool {
	return a.IsAdmin() || a.ID == ownerID
}
