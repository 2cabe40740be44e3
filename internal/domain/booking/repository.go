package booking

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByUserID retrieves bookings belonging to a specific user with pagination,
	// newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination, newest first (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Create persists a new booking, atomically verifying that no conflicting
	// active booking overlaps its period. The overlap scan and the insert run
	// in one serializable transaction, so two racing requests for the same
	// vehicle cannot both succeed. Returns a ConflictError when an overlapping
	// active booking blocks the candidate under the coexistence policy.
	Create(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
