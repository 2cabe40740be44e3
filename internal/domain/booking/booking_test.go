package booking

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/service-rental/internal/domain"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	period := Period{From: day(1), To: day(5)}
	bk, err := NewBooking(uuid.New(), uuid.New(), period, 4000)
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	bk := newTestBooking(t)

	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, PaymentPending, bk.PaymentStatus())
	assert.Equal(t, int64(1), bk.Version())
	assert.Equal(t, int64(4000), bk.TotalAmount())
}

func TestNewBookingValidation(t *testing.T) {
	period := Period{From: day(1), To: day(5)}

	_, err := NewBooking(uuid.Nil, uuid.New(), period, 4000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.Nil, period, 4000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), Period{From: day(5), To: day(5)}, 4000)
	assert.Error(t, err)

	_, err = NewBooking(uuid.New(), uuid.New(), period, 0)
	assert.Error(t, err)
}

func TestBookingLifecycle(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.Approve())
	assert.Equal(t, StatusApproved, bk.Status())

	require.NoError(t, bk.Complete())
	assert.Equal(t, StatusCompleted, bk.Status())

	// Completed is terminal.
	var stateErr *domain.InvalidStateError
	err := bk.Cancel()
	assert.ErrorAs(t, err, &stateErr)
}

func TestBookingReject(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.Reject())
	assert.Equal(t, StatusRejected, bk.Status())

	assert.Error(t, bk.Approve())
}

func TestBookingCancel(t *testing.T) {
	bk := newTestBooking(t)
	require.NoError(t, bk.Cancel())
	assert.Equal(t, StatusCancelled, bk.Status())

	bk = newTestBooking(t)
	require.NoError(t, bk.Approve())
	require.NoError(t, bk.Cancel())
	assert.Equal(t, StatusCancelled, bk.Status())
}

func TestForceStatusSkipsTransitionTable(t *testing.T) {
	bk := newTestBooking(t)

	// pending -> completed is not a legal transition, but the admin path sets
	// it anyway.
	require.NoError(t, bk.ForceStatus(StatusCompleted))
	assert.Equal(t, StatusCompleted, bk.Status())

	// Unknown values are still rejected.
	assert.Error(t, bk.ForceStatus(Status("shipped")))
}

func TestRecordPayment(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.RecordPayment(PaymentCompleted))
	assert.Equal(t, PaymentCompleted, bk.PaymentStatus())

	assert.Error(t, bk.RecordPayment(PaymentStatus("refunded")))
}

func TestIsOwnedBy(t *testing.T) {
	userID := uuid.New()
	bk, err := NewBooking(userID, uuid.New(), Period{From: day(1), To: day(3)}, 2000)
	require.NoError(t, err)

	assert.True(t, bk.IsOwnedBy(userID))
	assert.False(t, bk.IsOwnedBy(uuid.New()))
}
