package notification

import (
	"encoding/json"
	"fmt"

	"rotharc/models"

	"github.com/hibiken/asynq"
)

const TypeBookingConfirmation = "booking:confirmation"

func NewBookingConfirmationTask(payload models.BookingConfirmationPayload) (*asynq.Task, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode confirmation payload: %w", err)
	}
	return asynq.NewTask(TypeBookingConfirmation, b, asynq.MaxRetry(5)), nil
}

func parseBookingConfirmation(task *asynq.Task) (models.BookingConfirmationPayload, error) {
	var p models.BookingConfirmationPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return p, fmt.Errorf("invalid confirmation payload: %v: %w", err, asynq.SkipRetry)
	}
	if p.UserID == "" || p.BookingID == "" {
		return p, fmt.Errorf("confirmation payload without user or booking: %w", asynq.SkipRetry)
	}
	return p, nil
}
