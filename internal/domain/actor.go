package domain

import "github.com/google/uuid"

// Role is the authorization role attached to a user account.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)

// IsValid returns true if the role is recognized.
func (r Role) IsValid() bool {
	return r == RoleCustomer || r == RoleAdmin
}

// Actor is the capability object handed to every use case. It carries the
// authenticated user's identity and role instead of implicit request state.
type Actor struct {
	UserID uuid.UUID
	Role   Role
}

// IsAdmin returns true if the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// Owns returns true if the actor is the given user.
func (a Actor) Owns(userID uuid.UUID) bool {
	return a.UserID == userID
}
