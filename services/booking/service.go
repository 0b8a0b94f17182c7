package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"rotharc/database/repository"
	"rotharc/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WizardConfig carries the tunables of the wizard service.
type WizardConfig struct {
	// PaymentDelay is how long the simulated payment keeps the wizard busy.
	PaymentDelay time.Duration
	// Location decides which calendar day "today" is.
	Location *time.Location
}

// DefaultWizardService implements WizardService.
type DefaultWizardService struct {
	Store    SessionStore
	Products ProductReader
	Writer   BookingWriter
	Notifier ConfirmationNotifier

	PaymentDelay time.Duration
	Location     *time.Location
	// Now is the clock; tests replace it.
	Now func() time.Time

	logger *zap.Logger
	locks  *keyedMutex
}

func NewWizardService(store SessionStore, products ProductReader, writer BookingWriter, notifier ConfirmationNotifier, cfg WizardConfig, logger *zap.Logger) *DefaultWizardService {
	loc := cfg.Location
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultWizardService{
		Store:        store,
		Products:     products,
		Writer:       writer,
		Notifier:     notifier,
		PaymentDelay: cfg.PaymentDelay,
		Location:     loc,
		Now:          time.Now,
		logger:       logger,
		locks:        newKeyedMutex(),
	}
}

func (s *DefaultWizardService) now() time.Time {
	return s.Now().In(s.Location)
}

// load returns the user's session, creating it on first use. A payment delay
// that ran out while nobody was waiting on it is settled here.
func (s *DefaultWizardService) load(ctx context.Context, userID string) (*Wizard, error) {
	sess, err := s.Store.Load(ctx, userID)
	if errors.Is(err, ErrSessionNotFound) {
		return NewWizard(NewSession(userID, s.now())), nil
	}
	if err != nil {
		return nil, err
	}
	w := NewWizard(sess)
	if w.ProcessingElapsed(s.now()) {
		w.CompleteProcessing()
		if err := s.submit(ctx, w); err != nil {
			s.logger.Warn("Booking submission failed while settling payment",
				zap.String("userID", userID), zap.Error(err))
		}
		if err := s.save(ctx, w); err != nil {
			return nil, err
		}
	}
	return w, nil
}

func (s *DefaultWizardService) save(ctx context.Context, w *Wizard) error {
	w.Session().UpdatedAt = s.now()
	return s.Store.Save(ctx, w.Session())
}

func (s *DefaultWizardService) view(ctx context.Context, w *Wizard) (*WizardView, error) {
	today := s.now()
	switch w.Step() {
	case StepProduct:
		products, err := s.Products.List(ctx, models.ProductFilter{})
		if err != nil {
			return nil, fmt.Errorf("failed to list products: %w", err)
		}
		return render(w, today, products, nil), nil
	case StepContact:
		return render(w, today, nil, nil), nil
	}

	product, err := s.product(ctx, w.Draft().ProductID)
	if err != nil {
		return nil, err
	}
	return render(w, today, nil, product), nil
}

// product returns nil without error when no product is selected or it is gone
// from the catalogue.
func (s *DefaultWizardService) product(ctx context.Context, id string) (*models.Product, error) {
	if id == "" {
		return nil, nil
	}
	p, err := s.Products.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch product: %w", err)
	}
	return p, nil
}

// mutate runs fn on the locked session and persists it. The session is only
// saved when fn succeeds or keepOnError is set.
func (s *DefaultWizardService) mutate(ctx context.Context, userID string, keepOnError bool, fn func(w *Wizard) error) (*WizardView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	opErr := fn(w)
	if opErr == nil || keepOnError {
		if err := s.save(ctx, w); err != nil {
			return nil, err
		}
	} else if w, err = s.load(ctx, userID); err != nil {
		// Render the stored state, not the half applied change.
		return nil, err
	}
	v, err := s.view(ctx, w)
	if err != nil {
		return nil, err
	}
	return v, opErr
}

func (s *DefaultWizardService) Current(ctx context.Context, userID string) (*WizardView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	w, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, w)
}

func (s *DefaultWizardService) SelectProduct(ctx context.Context, userID, productID string) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		if err := w.edit(StepProduct); err != nil {
			return err
		}
		p, err := s.product(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: %q", ErrUnknownProduct, productID)
		}
		return w.SelectProduct(p.ID)
	})
}

// SetSchedule updates the date, the time or both. Empty values are left as is.
func (s *DefaultWizardService) SetSchedule(ctx context.Context, userID, date, slot string) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		if date == "" && slot == "" {
			return newStepError(StepSchedule, "nothing to update", nil)
		}
		if date != "" {
			if err := w.SetDate(date, s.now()); err != nil {
				return err
			}
		}
		if slot != "" {
			if err := w.SetTime(slot); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DefaultWizardService) UpdateContact(ctx context.Context, userID, field, value string) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		return w.UpdateContactField(field, value)
	})
}

func (s *DefaultWizardService) SetPayment(ctx context.Context, userID string, method models.PaymentMethod, agreed bool) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		return w.SetPayment(method, agreed)
	})
}

// Advance moves the wizard forward. From the payment step the call waits out the
// payment delay, enters the confirmation step and submits the booking. The wait
// is not tied to ctx: a client going away does not abort the payment.
func (s *DefaultWizardService) Advance(ctx context.Context, userID string) (*WizardView, error) {
	unlock := s.locks.Lock(userID)
	w, err := s.load(ctx, userID)
	if err != nil {
		unlock()
		return nil, err
	}
	if advErr := w.Advance(s.now(), s.PaymentDelay); advErr != nil {
		defer unlock()
		// Field errors computed by the failed advance are kept for the next render.
		if err := s.save(ctx, w); err != nil {
			return nil, err
		}
		v, err := s.view(ctx, w)
		if err != nil {
			return nil, err
		}
		return v, advErr
	}
	if err := s.save(ctx, w); err != nil {
		unlock()
		return nil, err
	}
	if !w.Session().Processing {
		defer unlock()
		return s.view(ctx, w)
	}
	unlock()

	s.logger.Info("Processing booking payment",
		zap.String("userID", userID), zap.Duration("delay", s.PaymentDelay))
	waitFixed(s.PaymentDelay)
	return s.settle(context.WithoutCancel(ctx), userID)
}

func waitFixed(d time.Duration) {
	if d <= 0 {
		return
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	<-timer.C
}

// settle finishes a payment started by Advance. Another request may already
// have settled it; submission still happens at most once.
func (s *DefaultWizardService) settle(ctx context.Context, userID string) (*WizardView, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	sess, err := s.Store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	w := NewWizard(sess)
	if sess.Processing {
		w.CompleteProcessing()
	}
	subErr := s.submit(ctx, w)
	if err := s.save(ctx, w); err != nil {
		return nil, err
	}
	v, err := s.view(ctx, w)
	if err != nil {
		return nil, err
	}
	return v, subErr
}

// submit hands a ready draft to the booking writer and flips the submitted
// flag on success. It does nothing when the draft is not ready or already sent.
func (s *DefaultWizardService) submit(ctx context.Context, w *Wizard) error {
	if !w.ReadyToSubmit() {
		return nil
	}
	sess := w.Session()
	d := sess.Draft

	product, err := s.product(ctx, d.ProductID)
	if err == nil && product == nil {
		err = fmt.Errorf("%w: %q", ErrUnknownProduct, d.ProductID)
	}
	if err != nil {
		w.MarkSubmitFailed(err)
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}

	booking := newBooking(sess, product, s.now())
	if err := s.Writer.Create(ctx, booking); err != nil {
		s.logger.Error("Failed to store booking",
			zap.String("userID", sess.UserID), zap.Error(err))
		w.MarkSubmitFailed(err)
		return fmt.Errorf("%w: %v", ErrSubmissionFailed, err)
	}
	w.MarkSubmitted(booking.ID)
	s.logger.Info("Booking stored",
		zap.String("userID", sess.UserID),
		zap.String("bookingID", booking.ID),
		zap.String("reference", booking.Reference))

	if s.Notifier != nil {
		payload := models.BookingConfirmationPayload{
			BookingID:   booking.ID,
			UserID:      booking.UserID,
			Email:       booking.Email,
			Reference:   booking.Reference,
			ProductName: booking.ProductName,
			Date:        booking.BookingDate,
			Time:        booking.BookingTime,
			Deposit:     booking.Deposit,
		}
		if err := s.Notifier.EnqueueBookingConfirmation(ctx, payload); err != nil {
			s.logger.Warn("Failed to enqueue booking confirmation",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}
	return nil
}

func newBooking(sess *models.WizardSession, product *models.Product, now time.Time) *models.Booking {
	d := sess.Draft
	return &models.Booking{
		ID:                uuid.New().String(),
		UserID:            sess.UserID,
		ProductID:         product.ID,
		ProductName:       product.Name,
		BookingDate:       d.Date,
		BookingTime:       d.Time,
		FirstName:         d.Contact.FirstName,
		LastName:          d.Contact.LastName,
		Email:             d.Contact.Email,
		Phone:             d.Contact.Phone,
		Address:           d.Contact.Address,
		City:              d.Contact.City,
		PostalCode:        d.Contact.PostalCode,
		InstallationNotes: d.Contact.Notes,
		PaymentMethod:     d.PaymentMethod,
		Deposit:           Deposit(product.Price),
		Reference:         sess.Reference,
		Status:            models.BookingPending,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
}

func (s *DefaultWizardService) Retreat(ctx context.Context, userID string) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		return w.Retreat()
	})
}

// Submit retries a submission that failed on entry to the confirmation step.
func (s *DefaultWizardService) Submit(ctx context.Context, userID string) (*WizardView, error) {
	return s.mutate(ctx, userID, true, func(w *Wizard) error {
		switch {
		case w.Session().Processing:
			return ErrProcessing
		case w.Step() != StepConfirmation:
			return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, StepConfirmation, w.Step())
		case w.Draft().Submitted:
			return ErrAlreadySubmitted
		}
		return s.submit(ctx, w)
	})
}

func (s *DefaultWizardService) Reset(ctx context.Context, userID string) (*WizardView, error) {
	return s.mutate(ctx, userID, false, func(w *Wizard) error {
		return w.Reset()
	})
}

// Discard drops the user's wizard session, e.g. when the account is deleted.
func (s *DefaultWizardService) Discard(ctx context.Context, userID string) error {
	unlock := s.locks.Lock(userID)
	defer unlock()
	return s.Store.Delete(ctx, userID)
}
