package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/rentwheels/service-rental/internal/domain"
	bookingDomain "github.com/rentwheels/service-rental/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID        uuid.UUID `gorm:"type:uuid;index;not null"`
	VehicleID     uuid.UUID `gorm:"type:uuid;index;not null"`
	FromDate      time.Time `gorm:"not null;index"`
	ToDate        time.Time `gorm:"not null"`
	TotalAmount   int64     `gorm:"not null"`
	PaymentStatus string    `gorm:"not null;size:20"`
	BookingStatus string    `gorm:"not null;size:20;index"`
	Version       int64     `gorm:"not null;default:1"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// GormBookingRepository is the GORM-based implementation of the booking repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// activeStatuses are the booking statuses that count toward overlap checks.
var activeStatuses = []string{
	string(bookingDomain.StatusPending),
	string(bookingDomain.StatusApproved),
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindByUserID retrieves bookings for a specific user with pagination, newest first.
func (r *GormBookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count user bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find user bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// ListAll retrieves all bookings with pagination, newest first (admin).
func (r *GormBookingRepository) ListAll(ctx context.Context, page, limit int) ([]*bookingDomain.Booking, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	var models []BookingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}

	return toDomainBookings(models, total)
}

// CountByStatus returns booking counts grouped by status (admin).
func (r *GormBookingRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		BookingStatus string
		Count         int64
	}
	var results []statusCount
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Select("booking_status, count(*) as count").
		Group("booking_status").
		Find(&results).Error; err != nil {
		return nil, fmt.Errorf("failed to count by status: %w", err)
	}

	counts := make(map[string]int64)
	for _, sc := range results {
		counts[sc.BookingStatus] = sc.Count
	}
	return counts, nil
}

// Create persists a new booking after verifying that no conflicting active
// booking overlaps its period. Check and insert run in one serializable
// transaction, so racing requests for the same vehicle serialize instead of
// double-booking. The original system did the check and the insert as two
// independent operations and carried that race.
func (r *GormBookingRepository) Create(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var overlapping []BookingModel
		if err := tx.
			Where("vehicle_id = ? AND booking_status IN ? AND from_date <= ? AND to_date >= ?",
				bk.VehicleID(), activeStatuses, model.ToDate, model.FromDate).
			Find(&overlapping).Error; err != nil {
			return fmt.Errorf("failed to scan for overlapping bookings: %w", err)
		}

		for _, m := range overlapping {
			existing := bookingDomain.Period{From: m.FromDate, To: m.ToDate}
			if !bookingDomain.CanCoexist(bk.Period(), existing) {
				return domain.NewConflictError("vehicle is already booked for the selected dates")
			}
		}

		if err := tx.Create(model).Error; err != nil {
			return fmt.Errorf("failed to insert booking: %w", err)
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	// Serialization failures surface as a conflict the caller can retry.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "40001" {
		return domain.NewConflictError("booking collided with a concurrent reservation, please retry")
	}
	return err
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, bk *bookingDomain.Booking) error {
	model := toBookingModel(bk)

	expectedVersion := bk.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"booking_status": model.BookingStatus,
			"payment_status": model.PaymentStatus,
			"total_amount":   model.TotalAmount,
			"version":        model.Version,
			"updated_at":     model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(bk *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:            bk.ID(),
		UserID:        bk.UserID(),
		VehicleID:     bk.VehicleID(),
		FromDate:      bk.FromDate(),
		ToDate:        bk.ToDate(),
		TotalAmount:   bk.TotalAmount(),
		PaymentStatus: string(bk.PaymentStatus()),
		BookingStatus: string(bk.Status()),
		Version:       bk.Version(),
		CreatedAt:     bk.CreatedAt(),
		UpdatedAt:     bk.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.BookingStatus)
	if err != nil {
		return nil, err
	}
	payment, err := bookingDomain.ParsePaymentStatus(m.PaymentStatus)
	if err != nil {
		return nil, err
	}

	return bookingDomain.Reconstruct(
		m.ID,
		m.UserID,
		m.VehicleID,
		bookingDomain.Period{From: m.FromDate, To: m.ToDate},
		m.TotalAmount,
		payment,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainBookings(models []BookingModel, total int64) ([]*bookingDomain.Booking, int64, error) {
	bookings := make([]*bookingDomain.Booking, len(models))
	for i, m := range models {
		bk, err := toDomainBooking(&m)
		if err != nil {
			return nil, 0, err
		}
		bookings[i] = bk
	}
	return bookings, total, nil
}
