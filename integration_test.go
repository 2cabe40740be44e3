//go:build integration

package main_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/service-rental/internal/application"
	"github.com/rentwheels/service-rental/internal/domain"
	"github.com/rentwheels/service-rental/internal/events"
)

// TestConcurrentLongBookings_OnlyOneSucceeds verifies that two racing requests
// for overlapping long bookings on the same vehicle cannot both be persisted:
// the serializable create transaction forces one of them to fail with a
// conflict.
func TestConcurrentLongBookings_OnlyOneSucceeds(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, infra.DB, 1000)

	req := application.CreateBookingRequest{
		VehicleID:   vehicleID,
		PackageKind: "custom",
		FromDate:    "2026-06-01",
		ToDate:      "2026-06-10",
	}

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), req)
			results[i] = err
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
			continue
		}
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			conflicts++
		} else {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes, "exactly one booking must win")
	assert.Equal(t, 1, conflicts, "the loser must get a conflict")
}

// TestShortBookings_Coexist verifies that hour-based bookings on the same day
// for the same vehicle stack instead of conflicting.
func TestShortBookings_Coexist(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, infra.DB, 1000)

	for _, hours := range []int{4, 8} {
		_, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), application.CreateBookingRequest{
			VehicleID:   vehicleID,
			PackageKind: "hours",
			Value:       hours,
		})
		require.NoError(t, err, "hours=%d", hours)
	}
}

// TestPaymentCaptured_UpdatesBooking verifies the end-to-end flow: a booking
// is created and announced on booking.events, then a payment captured event
// on payment.events flips its payment status to completed.
func TestPaymentCaptured_UpdatesBooking(t *testing.T) {
	infra := setupContainers(t)
	defer infra.Cleanup()

	stack := setupRentalStack(t, infra.DB, infra.KafkaBrokers)
	defer stack.CleanupProducer()
	defer func() { _ = stack.Consumer.Close() }()

	vehicleID := seedVehicle(t, infra.DB, 1000)

	dto, err := stack.Bookings.CreateBooking(context.Background(), uuid.New(), application.CreateBookingRequest{
		VehicleID:   vehicleID,
		PackageKind: "days",
		Value:       3,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2700), dto.TotalAmount)

	// The creation was announced on booking.events.
	ce := consumeOneEvent(t, infra.KafkaBrokers, events.TopicBookingEvents,
		events.BookingCreated, 15*time.Second)
	var created events.BookingEvent
	require.NoError(t, ce.ParseData(&created))
	assert.Equal(t, dto.ID, created.BookingID)
	assert.Equal(t, int64(2700), created.TotalAmount)

	// Start the consumer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = stack.Consumer.Start(ctx) }()
	time.Sleep(3 * time.Second) // Wait for consumer group join.

	evt := events.PaymentEvent{
		PaymentID:  uuid.New(),
		BookingID:  dto.ID,
		Amount:     dto.TotalAmount,
		OccurredAt: time.Now().UTC(),
	}
	publishTestEvent(t, infra.KafkaBrokers, events.TopicPaymentEvents,
		"service-payment", events.PaymentCaptured, evt)

	model := waitForPaymentStatus(t, infra.DB, dto.ID, "completed", 15*time.Second)
	assert.Equal(t, "pending", model.BookingStatus, "payment completion does not auto-approve")
}
