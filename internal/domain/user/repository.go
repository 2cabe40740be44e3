package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for user accounts.
type Repository interface {
	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Save persists a new user. Fails with a ConflictError when the email is taken.
	Save(ctx context.Context, u *User) error
}
