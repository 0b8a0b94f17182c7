package notification

import (
	"context"
	"fmt"
	"time"

	"rotharc/models"
	"rotharc/utils"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// QueueNotifier enqueues confirmation jobs for the background worker.
type QueueNotifier struct {
	client *asynq.Client
	logger *zap.Logger
}

func NewQueueNotifier(opt asynq.RedisConnOpt, logger *zap.Logger) *QueueNotifier {
	return &QueueNotifier{client: asynq.NewClient(opt), logger: logger}
}

func (n *QueueNotifier) EnqueueBookingConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error {
	task, err := NewBookingConfirmationTask(payload)
	if err != nil {
		return err
	}
	info, err := n.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue booking confirmation: %w", err)
	}
	n.logger.Debug("Booking confirmation enqueued",
		zap.String("taskID", info.ID), zap.String("bookingID", payload.BookingID))
	return nil
}

func (n *QueueNotifier) Close() error {
	return n.client.Close()
}

// InboxWriter stores in-app notifications for a user.
type InboxWriter interface {
	AppendNotification(ctx context.Context, userID string, n models.Notification) error
}

// ConfirmationNotification is the in-app message for a stored booking.
func ConfirmationNotification(p models.BookingConfirmationPayload, now time.Time) models.Notification {
	return models.Notification{
		ID:    uuid.New().String(),
		Type:  TypeBookingConfirmation,
		Title: "Reservation confirmed " + p.Reference,
		Message: fmt.Sprintf("Your installation of %s is booked for %s at %s. Deposit: %d €.",
			p.ProductName, p.Date, p.Time, p.Deposit),
		Data: map[string]any{
			"bookingId": p.BookingID,
			"reference": p.Reference,
		},
		CreatedAt: now,
	}
}

// HandleBookingConfirmation delivers the confirmation to the user's inbox and
// records the e-mail that would be sent.
func HandleBookingConfirmation(inbox InboxWriter) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		p, err := parseBookingConfirmation(task)
		if err != nil {
			logger.Error("Dropping booking confirmation", zap.Error(err))
			return err
		}

		if err := inbox.AppendNotification(ctx, p.UserID, ConfirmationNotification(p, time.Now())); err != nil {
			logger.Warn("Failed to store confirmation notification",
				zap.String("bookingID", p.BookingID), zap.Error(err))
			return err
		}
		logger.Info("Booking confirmation delivered",
			zap.String("bookingID", p.BookingID),
			zap.String("reference", p.Reference),
			zap.String("email", p.Email))
		return nil
	}
}
