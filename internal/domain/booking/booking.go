package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/rentwheels/service-rental/internal/domain"
)

// Booking is the aggregate root for a vehicle rental reservation.
type Booking struct {
	id            uuid.UUID
	userID        uuid.UUID
	vehicleID     uuid.UUID
	period        Period
	totalAmount   int64
	paymentStatus PaymentStatus
	status        Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking in pending state with payment pending.
func NewBooking(userID, vehicleID uuid.UUID, period Period, totalAmount int64) (*Booking, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if vehicleID == uuid.Nil {
		return nil, domain.NewValidationError("vehicle ID is required")
	}
	if !period.To.After(period.From) {
		return nil, domain.NewValidationError("end date must be after start date")
	}
	if totalAmount <= 0 {
		return nil, domain.NewValidationError("total amount must be positive")
	}

	now := time.Now().UTC()
	return &Booking{
		id:            uuid.New(),
		userID:        userID,
		vehicleID:     vehicleID,
		period:        period,
		totalAmount:   totalAmount,
		paymentStatus: PaymentPending,
		status:        StatusPending,
		version:       1,
		createdAt:     now,
		updatedAt:     now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, userID, vehicleID uuid.UUID,
	period Period,
	totalAmount int64,
	paymentStatus PaymentStatus,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		userID:        userID,
		vehicleID:     vehicleID,
		period:        period,
		totalAmount:   totalAmount,
		paymentStatus: paymentStatus,
		status:        status,
		version:       version,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

// --- Getters ---

// ID returns the booking's unique identifier.
func (b *Booking) ID() uuid.UUID { return b.id }

// UserID returns the owning customer's user ID.
func (b *Booking) UserID() uuid.UUID { return b.userID }

// VehicleID returns the booked vehicle's ID.
func (b *Booking) VehicleID() uuid.UUID { return b.vehicleID }

// Period returns the calendar interval the booking occupies.
func (b *Booking) Period() Period { return b.period }

// FromDate returns the first day of the rental.
func (b *Booking) FromDate() time.Time { return b.period.From }

// ToDate returns the last day of the rental.
func (b *Booking) ToDate() time.Time { return b.period.To }

// TotalAmount returns the total price in whole currency units.
func (b *Booking) TotalAmount() int64 { return b.totalAmount }

// PaymentStatus returns the recorded payment state.
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }

// Status returns the current booking status.
func (b *Booking) Status() Status { return b.status }

// Version returns the entity version for optimistic locking.
func (b *Booking) Version() int64 { return b.version }

// CreatedAt returns the creation timestamp.
func (b *Booking) CreatedAt() time.Time { return b.createdAt }

// UpdatedAt returns the last-updated timestamp.
func (b *Booking) UpdatedAt() time.Time { return b.updatedAt }

// IsOwnedBy returns true if the booking belongs to the given user.
func (b *Booking) IsOwnedBy(userID uuid.UUID) bool {
	return b.userID == userID
}

// --- Behavior ---

// Approve transitions the booking from pending to approved.
func (b *Booking) Approve() error {
	return b.transition(StatusApproved)
}

// Reject transitions the booking from pending to rejected.
func (b *Booking) Reject() error {
	return b.transition(StatusRejected)
}

// Complete transitions the booking from approved to completed.
func (b *Booking) Complete() error {
	return b.transition(StatusCompleted)
}

// Cancel transitions the booking to cancelled. Only pending and approved
// bookings can be cancelled.
func (b *Booking) Cancel() error {
	if !b.status.CanBeCancelled() {
		return domain.NewInvalidStateError(string(b.status), string(StatusCancelled))
	}
	b.status = StatusCancelled
	b.updatedAt = time.Now().UTC()
	return nil
}

// ForceStatus sets the booking status to any valid value without consulting
// the transition table. This is the admin update path; it deliberately skips
// lifecycle checks and only rejects unknown status values.
func (b *Booking) ForceStatus(status Status) error {
	if !status.IsValid() {
		return domain.NewValidationError("invalid booking status: " + string(status))
	}
	b.status = status
	b.updatedAt = time.Now().UTC()
	return nil
}

// RecordPayment sets the payment status recorded on the booking.
func (b *Booking) RecordPayment(status PaymentStatus) error {
	if !status.IsValid() {
		return domain.NewValidationError("invalid payment status: " + string(status))
	}
	b.paymentStatus = status
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}

func (b *Booking) transition(target Status) error {
	if !b.status.CanTransitionTo(target) {
		return domain.NewInvalidStateError(string(b.status), string(target))
	}
	b.status = target
	b.updatedAt = time.Now().UTC()
	return nil
}
