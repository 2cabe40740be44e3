package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentwheels/service-rental/internal/domain"
)

// User is an account that can authenticate and own bookings.
type User struct {
	id           uuid.UUID
	name         string
	email        string
	passwordHash string
	role         domain.Role
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new user with an already-hashed password.
func NewUser(name, email, passwordHash string, role domain.Role) (*User, error) {
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return nil, domain.NewValidationError("invalid email address")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role: " + string(role))
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(id uuid.UUID, name, email, passwordHash string, role domain.Role, createdAt, updatedAt time.Time) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         role,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Role() domain.Role    { return u.role }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }

// IsAdmin returns true if the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.role == domain.RoleAdmin
}
