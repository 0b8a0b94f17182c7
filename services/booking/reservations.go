package booking

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "rotharc/database/repository/booking"
	"rotharc/models"

	"go.uber.org/zap"
)

var (
	ErrNotOwner          = errors.New("booking belongs to another user")
	ErrInvalidTransition = errors.New("booking status change not allowed")
)

// DefaultReservationService implements ReservationService.
type DefaultReservationService struct {
	Repo   bookingRepo.BookingRepository
	logger *zap.Logger
}

func NewReservationService(repo bookingRepo.BookingRepository, logger *zap.Logger) *DefaultReservationService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultReservationService{Repo: repo, logger: logger}
}

// ListForUser returns the user's bookings, earliest appointment first.
func (s *DefaultReservationService) ListForUser(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// CancelForUser cancels one of the user's own pending bookings.
func (s *DefaultReservationService) CancelForUser(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotOwner
	}
	if b.Status != models.BookingPending {
		return nil, fmt.Errorf("%w: only pending bookings can be cancelled, booking is %s", ErrInvalidTransition, b.Status)
	}
	return s.setStatus(ctx, b, models.BookingCancelled)
}

func (s *DefaultReservationService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.ListAll(ctx)
}

// UpdateStatus is the admin transition, following BookingStatus.CanTransition.
func (s *DefaultReservationService) UpdateStatus(ctx context.Context, bookingID string, status models.BookingStatus) (*models.Booking, error) {
	b, err := s.Repo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if !b.Status.CanTransition(status) {
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, status)
	}
	return s.setStatus(ctx, b, status)
}

func (s *DefaultReservationService) setStatus(ctx context.Context, b *models.Booking, status models.BookingStatus) (*models.Booking, error) {
	if err := s.Repo.UpdateStatus(ctx, b.ID, status); err != nil {
		return nil, err
	}
	s.logger.Info("Booking status changed",
		zap.String("bookingID", b.ID),
		zap.String("from", string(b.Status)),
		zap.String("to", string(status)))
	b.Status = status
	return b, nil
}

func (s *DefaultReservationService) DeleteForUser(ctx context.Context, userID string) error {
	n, err := s.Repo.DeleteByUser(ctx, userID)
	if err != nil {
		return err
	}
	s.logger.Info("Deleted user bookings", zap.String("userID", userID), zap.Int64("count", n))
	return nil
}
