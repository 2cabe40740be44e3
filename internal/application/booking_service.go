package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/domain"
	bookingDomain "github.com/rentwheels/service-rental/internal/domain/booking"
	vehicleDomain "github.com/rentwheels/service-rental/internal/domain/vehicle"
	"github.com/rentwheels/service-rental/internal/events"
)

// priceTolerance is the allowed difference between a client-quoted total and
// the server's recomputation, absorbing client-side float rounding.
const priceTolerance = 1

// CreateBookingRequest holds the data needed to create a new booking. The
// duration is either a predefined package (kind + value) or a custom date
// range; dates use the 2006-01-02 layout.
type CreateBookingRequest struct {
	VehicleID   uuid.UUID `json:"vehicle_id" binding:"required"`
	PackageKind string    `json:"package_kind" binding:"required"`
	Value       int       `json:"value"`
	FromDate    string    `json:"from_date"`
	ToDate      string    `json:"to_date"`
	TotalAmount *int64    `json:"total_amount"`
}

// UpdateBookingStatusRequest holds the admin status-update payload.
type UpdateBookingStatusRequest struct {
	BookingStatus string `json:"booking_status"`
	PaymentStatus string `json:"payment_status"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID            uuid.UUID `json:"id"`
	UserID        uuid.UUID `json:"user_id"`
	VehicleID     uuid.UUID `json:"vehicle_id"`
	FromDate      time.Time `json:"from_date"`
	ToDate        time.Time `json:"to_date"`
	TotalAmount   int64     `json:"total_amount"`
	PaymentStatus string    `json:"payment_status"`
	BookingStatus string    `json:"booking_status"`
	Version       int64     `json:"version"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.Repository
	vehicles vehicleDomain.Repository
	pricing  bookingDomain.PricingStrategy
	producer *events.Producer
	logger   *zap.Logger
	now      func() time.Time
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	vehicles vehicleDomain.Repository,
	pricing bookingDomain.PricingStrategy,
	producer *events.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		vehicles: vehicles,
		pricing:  pricing,
		producer: producer,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// CreateBooking creates a new booking for the given user. The vehicle must be
// marked available by an administrator; the overlap check against existing
// active bookings happens atomically inside the repository.
func (s *BookingService) CreateBooking(ctx context.Context, userID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	pkg, err := buildRentalPackage(req)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if !vehicle.IsAvailable() {
		return nil, domain.NewValidationError("vehicle is not available for booking")
	}

	period, err := bookingDomain.NormalizePeriod(pkg, s.now())
	if err != nil {
		return nil, err
	}

	amount, err := s.pricing.Quote(pkg, period, vehicle.RentPerDay())
	if err != nil {
		return nil, domain.NewValidationError(fmt.Sprintf("pricing error: %v", err))
	}

	// A client-supplied quote is verified, never trusted.
	if req.TotalAmount != nil && absDiff(*req.TotalAmount, amount) > priceTolerance {
		return nil, domain.NewValidationError(
			fmt.Sprintf("total amount mismatch: expected %d, got %d", amount, *req.TotalAmount))
	}

	bk, err := bookingDomain.NewBooking(userID, vehicle.ID(), period, amount)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Create(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingCreated, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking. Customers can only read their own.
func (s *BookingService) GetBooking(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && !bk.IsOwnedBy(actor.UserID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetUserBookings retrieves paginated bookings for a specific user. Customers
// may only list their own bookings; admins may list anyone's.
func (s *BookingService) GetUserBookings(ctx context.Context, actor domain.Actor, userID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	if !actor.IsAdmin() && !actor.Owns(userID) {
		return nil, domain.NewForbiddenError("cannot access another user's bookings")
	}

	bookings, total, err := s.bookings.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// CancelBooking cancels a booking on behalf of its owner or an admin. Only
// pending and approved bookings can be cancelled.
func (s *BookingService) CancelBooking(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !actor.IsAdmin() && !bk.IsOwnedBy(actor.UserID) {
		return nil, domain.NewForbiddenError("booking does not belong to this user")
	}

	if err := bk.Cancel(); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	s.publishBookingEvent(ctx, events.BookingCancelled, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBookingStatus applies an admin status update. The booking status is
// set directly without consulting the lifecycle transition table; the payment
// status, when present, is updated alongside it.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, bookingID uuid.UUID, req UpdateBookingStatusRequest) (*BookingDTO, error) {
	if req.BookingStatus == "" && req.PaymentStatus == "" {
		return nil, domain.NewValidationError("nothing to update")
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if req.BookingStatus != "" {
		status, err := bookingDomain.ParseStatus(req.BookingStatus)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := bk.ForceStatus(status); err != nil {
			return nil, err
		}
	}
	if req.PaymentStatus != "" {
		status, err := bookingDomain.ParsePaymentStatus(req.PaymentStatus)
		if err != nil {
			return nil, domain.NewValidationError(err.Error())
		}
		if err := bk.RecordPayment(status); err != nil {
			return nil, err
		}
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	if evtType := lifecycleEventFor(bk.Status()); evtType != "" {
		s.publishBookingEvent(ctx, evtType, bk)
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// RecordPaymentResult updates a booking's payment status from a payment
// gateway event. Used by the payment event consumer.
func (s *BookingService) RecordPaymentResult(ctx context.Context, bookingID uuid.UUID, status bookingDomain.PaymentStatus) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}

	if err := bk.RecordPayment(status); err != nil {
		return err
	}

	bk.IncrementVersion()
	return s.bookings.Update(ctx, bk)
}

// --- Helpers ---

func buildRentalPackage(req CreateBookingRequest) (bookingDomain.RentalPackage, error) {
	kind := bookingDomain.PackageKind(req.PackageKind)
	if !kind.IsValid() {
		return bookingDomain.RentalPackage{}, domain.NewValidationError(
			fmt.Sprintf("invalid package kind: %s", req.PackageKind))
	}

	pkg := bookingDomain.RentalPackage{Kind: kind, Value: req.Value}
	if kind == bookingDomain.PackageCustom {
		from, err := parseDate(req.FromDate, "from_date")
		if err != nil {
			return bookingDomain.RentalPackage{}, err
		}
		to, err := parseDate(req.ToDate, "to_date")
		if err != nil {
			return bookingDomain.RentalPackage{}, err
		}
		pkg.FromDate = from
		pkg.ToDate = to
	}
	return pkg, nil
}

func parseDate(value, field string) (time.Time, error) {
	if value == "" {
		return time.Time{}, domain.NewValidationError(field + " is required")
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field + " must use the YYYY-MM-DD format")
	}
	return t, nil
}

func absDiff(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

func lifecycleEventFor(status bookingDomain.Status) string {
	switch status {
	case bookingDomain.StatusApproved:
		return events.BookingApproved
	case bookingDomain.StatusRejected:
		return events.BookingRejected
	case bookingDomain.StatusCancelled:
		return events.BookingCancelled
	case bookingDomain.StatusCompleted:
		return events.BookingCompleted
	}
	return ""
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
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

func (s *BookingService) publishBookingEvent(ctx context.Context, eventType string, bk *bookingDomain.Booking) {
	if s.producer == nil {
		return
	}

	evt := events.BookingEvent{
		BookingID:   bk.ID(),
		UserID:      bk.UserID(),
		VehicleID:   bk.VehicleID(),
		FromDate:    bk.FromDate(),
		ToDate:      bk.ToDate(),
		TotalAmount: bk.TotalAmount(),
		Status:      string(bk.Status()),
		OccurredAt:  time.Now().UTC(),
	}
	cloudEvent, err := events.NewCloudEvent("service-rental", eventType, evt)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.Publish(ctx, events.TopicBookingEvents, bk.ID().String(), cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", events.TopicBookingEvents),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
