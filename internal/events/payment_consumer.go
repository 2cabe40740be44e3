package events

import (
	"context"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/rentwheels/service-rental/internal/domain/booking"
)

// PaymentRecorder records externally-reported payment outcomes on a booking.
type PaymentRecorder interface {
	RecordPaymentResult(ctx context.Context, bookingID uuid.UUID, status booking.PaymentStatus) error
}

// PaymentEventConsumer listens to payment gateway events and records the
// outcome on the affected booking. The service never processes payments
// itself; it only mirrors what the gateway reports.
type PaymentEventConsumer struct {
	reader   *kafkago.Reader
	recorder PaymentRecorder
	logger   *zap.Logger
}

// NewPaymentEventConsumer creates a consumer bound to the payment topic.
func NewPaymentEventConsumer(brokers []string, groupID string, recorder PaymentRecorder, logger *zap.Logger) *PaymentEventConsumer {
	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  groupID,
		Topic:    TopicPaymentEvents,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &PaymentEventConsumer{reader: reader, recorder: recorder, logger: logger}
}

// Start consumes payment events until the context is cancelled.
func (c *PaymentEventConsumer) Start(ctx context.Context) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		if err := c.handleMessage(ctx, msg); err != nil {
			c.logger.Error("failed to handle payment event", zap.Error(err))
		}
	}
}

// Close closes the underlying Kafka reader.
func (c *PaymentEventConsumer) Close() error {
	return c.reader.Close()
}

func (c *PaymentEventConsumer) handleMessage(ctx context.Context, msg kafkago.Message) error {
	ce, err := ParseCloudEvent(msg.Value)
	if err != nil {
		// Don't retry malformed messages.
		c.logger.Error("malformed payment event", zap.Error(err), zap.String("raw", string(msg.Value)))
		return nil
	}

	var status booking.PaymentStatus
	switch ce.Type {
	case PaymentCaptured:
		status = booking.PaymentCompleted
	case PaymentFailed:
		status = booking.PaymentFailed
	default:
		c.logger.Debug("ignoring unhandled payment event type", zap.String("type", ce.Type))
		return nil
	}

	var evt PaymentEvent
	if err := ce.ParseData(&evt); err != nil {
		c.logger.Error("malformed payment event data", zap.Error(err))
		return nil
	}

	if err := c.recorder.RecordPaymentResult(ctx, evt.BookingID, status); err != nil {
		return err
	}

	c.logger.Info("payment outcome recorded",
		zap.String("booking_id", evt.BookingID.String()),
		zap.String("payment_status", status.String()),
	)
	return nil
}
