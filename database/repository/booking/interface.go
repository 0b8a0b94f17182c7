package bookingRepo

import (
	"context"

	"rotharc/models"
)

// BookingRepository persists confirmed wizard runs.
type BookingRepository interface {
	// Create is a single atomic insert; the caller assigns the ID.
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// ListByUser returns the user's bookings ordered by booking date, earliest first.
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, id string, status models.BookingStatus) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
