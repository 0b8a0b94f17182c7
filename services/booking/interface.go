package booking

import (
	"context"

	"rotharc/models"
)

// ProductReader is the catalogue lookup the wizard depends on.
type ProductReader interface {
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
}

// BookingWriter persists a finished booking in one atomic write.
type BookingWriter interface {
	Create(ctx context.Context, booking *models.Booking) error
}

// ConfirmationNotifier is told about every stored booking.
type ConfirmationNotifier interface {
	EnqueueBookingConfirmation(ctx context.Context, payload models.BookingConfirmationPayload) error
}

// WizardService drives one booking wizard per user. Methods return the updated
// view; on wizard errors the view of the unchanged session is returned as well.
type WizardService interface {
	Current(ctx context.Context, userID string) (*WizardView, error)
	SelectProduct(ctx context.Context, userID, productID string) (*WizardView, error)
	SetSchedule(ctx context.Context, userID, date, slot string) (*WizardView, error)
	UpdateContact(ctx context.Context, userID, field, value string) (*WizardView, error)
	SetPayment(ctx context.Context, userID string, method models.PaymentMethod, agreed bool) (*WizardView, error)
	Advance(ctx context.Context, userID string) (*WizardView, error)
	Retreat(ctx context.Context, userID string) (*WizardView, error)
	Submit(ctx context.Context, userID string) (*WizardView, error)
	Reset(ctx context.Context, userID string) (*WizardView, error)
	Discard(ctx context.Context, userID string) error
}

// ReservationService covers the bookings once they are stored.
type ReservationService interface {
	ListForUser(ctx context.Context, userID string) ([]models.Booking, error)
	CancelForUser(ctx context.Context, userID, bookingID string) (*models.Booking, error)
	ListAll(ctx context.Context) ([]models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error)
	DeleteForUser(ctx context.Context, userID string) error
}
