package vehicle

import (
	"context"

	"github.com/google/uuid"
)

// Filter narrows vehicle listings. Nil fields are not applied.
type Filter struct {
	VehicleType *Type
	Category    *Category
	MinPrice    *float64
	MaxPrice    *float64
	IsAvailable *bool
}

// Repository defines the persistence contract for vehicles.
type Repository interface {
	// FindByID retrieves a vehicle by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)

	// List retrieves vehicles matching the filter, newest first.
	List(ctx context.Context, filter Filter) ([]*Vehicle, error)

	// Save persists a new vehicle.
	Save(ctx context.Context, v *Vehicle) error

	// Update persists changes to an existing vehicle with optimistic locking.
	Update(ctx context.Context, v *Vehicle) error

	// Delete removes a vehicle. Existing bookings are left untouched.
	Delete(ctx context.Context, id uuid.UUID) error
}
