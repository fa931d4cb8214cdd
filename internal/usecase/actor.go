package usecase

import (
	"media-review/internal/data/entity"

	"github.com/google/uuid"
)

// Actor is the authenticated requester as seen by object-level checks
type Actor struct {
	ID   uuid.UUID
	Role entity.UserRole
}

// NewActor builds an Actor from raw context values
func NewActor(id uuid.UUID, role string) Actor {
	return Actor{ID: id, Role: entity.UserRole(role)}
}

// CanModerate reports whether the actor may edit or delete resources
// owned by other users
func (a Actor) CanModerate() bool {
	return a.Role == entity.RoleAdmin || a.Role == entity.RoleModerator
}

// Owns reports object-level ownership
func (a Actor) Owns(ownerID uuid.UUID) bool {
	return a.ID == ownerID
}
