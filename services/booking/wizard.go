package booking

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"rotharc/models"
)

// newReference returns the cosmetic reservation number shown on the last step.
var newReference = func() string {
	return fmt.Sprintf("CYB-%04d", rand.IntN(10000))
}

// NewSession starts a wizard at the product step with an empty draft.
func NewSession(userID string, now time.Time) *models.WizardSession {
	return &models.WizardSession{
		UserID:    userID,
		Step:      int(StepProduct),
		Draft:     models.NewBookingDraft(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Wizard applies the step transitions to a session. It holds no other state and
// performs no I/O.
type Wizard struct {
	s *models.WizardSession
}

func NewWizard(s *models.WizardSession) *Wizard {
	if !Step(s.Step).Valid() {
		s.Step = int(StepProduct)
	}
	if s.Draft.PaymentMethod == "" {
		s.Draft.PaymentMethod = models.PaymentCard
	}
	if s.Draft.Status == "" {
		s.Draft.Status = models.DraftOpen
	}
	return &Wizard{s: s}
}

func (w *Wizard) Session() *models.WizardSession { return w.s }

func (w *Wizard) Step() Step { return Step(w.s.Step) }

func (w *Wizard) Draft() models.BookingDraft { return w.s.Draft }

// edit checks that the draft slice owned by step may be changed now.
func (w *Wizard) edit(step Step) error {
	switch {
	case w.s.Processing:
		return ErrProcessing
	case w.s.Draft.Submitted:
		return ErrAlreadySubmitted
	case w.Step() != step:
		return fmt.Errorf("%w: expected %s, at %s", ErrWrongStep, step, w.Step())
	}
	return nil
}

// SelectProduct records the chosen product. The caller checks it exists.
func (w *Wizard) SelectProduct(productID string) error {
	if err := w.edit(StepProduct); err != nil {
		return err
	}
	if productID == "" {
		return newStepError(StepProduct, "no product selected", nil)
	}
	w.s.Draft.ProductID = productID
	return nil
}

// SetDate records the installation day. A previously chosen time is kept.
func (w *Wizard) SetDate(date string, today time.Time) error {
	if err := w.edit(StepSchedule); err != nil {
		return err
	}
	if err := ValidateDate(date, today); err != nil {
		return newStepError(StepSchedule, err.Error(), map[string]string{"date": err.Error()})
	}
	w.s.Draft.Date = date
	return nil
}

func (w *Wizard) SetTime(slot string) error {
	if err := w.edit(StepSchedule); err != nil {
		return err
	}
	if err := ValidateTime(slot); err != nil {
		return newStepError(StepSchedule, err.Error(), map[string]string{"time": err.Error()})
	}
	w.s.Draft.Time = slot
	return nil
}

// UpdateContactField stores one contact value and refreshes its live error.
// An invalid value is stored too; only an unknown field is rejected.
func (w *Wizard) UpdateContactField(field, value string) error {
	if err := w.edit(StepContact); err != nil {
		return err
	}
	msg, err := ValidateContactField(field, value)
	if err != nil {
		return err
	}
	if err := setContactValue(&w.s.Draft.Contact, field, value); err != nil {
		return err
	}
	if msg == "" {
		delete(w.s.FieldErrors, field)
		return nil
	}
	if w.s.FieldErrors == nil {
		w.s.FieldErrors = make(map[string]string)
	}
	w.s.FieldErrors[field] = msg
	return nil
}

func (w *Wizard) SetPayment(method models.PaymentMethod, agreed bool) error {
	if err := w.edit(StepPayment); err != nil {
		return err
	}
	if !method.Valid() {
		reason := fmt.Sprintf("unknown payment method %q", method)
		return newStepError(StepPayment, reason, map[string]string{"paymentMethod": reason})
	}
	w.s.Draft.PaymentMethod = method
	w.s.Draft.AgreedToTerms = agreed
	return nil
}

// check returns nil when the current step lets the wizard move forward.
func (w *Wizard) check(today time.Time) error {
	d := w.s.Draft
	switch w.Step() {
	case StepProduct:
		if d.ProductID == "" {
			return newStepError(StepProduct, "select a product to continue", nil)
		}
	case StepSchedule:
		fields := make(map[string]string)
		if d.Date == "" {
			fields["date"] = MsgRequired
		} else if err := ValidateDate(d.Date, today); err != nil {
			fields["date"] = err.Error()
		}
		if d.Time == "" {
			fields["time"] = MsgRequired
		} else if err := ValidateTime(d.Time); err != nil {
			fields["time"] = err.Error()
		}
		if len(fields) > 0 {
			return newStepError(StepSchedule, "select an open day and a time slot", fields)
		}
	case StepContact:
		if fields := ValidateContact(d.Contact); len(fields) > 0 {
			return newStepError(StepContact, "fix the highlighted fields", fields)
		}
	case StepPayment:
		if !d.PaymentMethod.Valid() {
			return newStepError(StepPayment, "choose a payment method", nil)
		}
		if !d.AgreedToTerms {
			return newStepError(StepPayment, "the terms and conditions must be accepted",
				map[string]string{"agreedToTerms": MsgRequired})
		}
	case StepConfirmation:
		return ErrNoNextStep
	}
	return nil
}

// CanAdvance reports whether Advance would succeed at today.
func (w *Wizard) CanAdvance(today time.Time) bool {
	return !w.s.Processing && w.check(today) == nil
}

func (w *Wizard) CanRetreat() bool {
	return !w.s.Processing && w.Step() > StepProduct
}

// Advance moves to the next step when the current one is satisfied. Leaving the
// payment step does not reach the confirmation directly: the session enters
// processing until now+delay and CompleteProcessing finishes the move.
func (w *Wizard) Advance(now time.Time, delay time.Duration) error {
	if w.s.Processing {
		return ErrProcessing
	}
	if err := w.check(now); err != nil {
		var stepErr *StepError
		if errors.As(err, &stepErr) && stepErr.Step == StepContact {
			w.s.FieldErrors = stepErr.Fields
		}
		return err
	}

	switch w.Step() {
	case StepContact:
		w.s.FieldErrors = nil
	case StepPayment:
		w.s.Processing = true
		w.s.ProcessingUntil = now.Add(delay)
		return nil
	}
	w.s.Step++
	return nil
}

// ProcessingElapsed reports whether a pending payment delay is over.
func (w *Wizard) ProcessingElapsed(now time.Time) bool {
	return w.s.Processing && !now.Before(w.s.ProcessingUntil)
}

// CompleteProcessing enters the confirmation step. The reference is assigned on
// the first entry and kept afterwards.
func (w *Wizard) CompleteProcessing() {
	w.s.Processing = false
	w.s.ProcessingUntil = time.Time{}
	w.s.Step = int(StepConfirmation)
	if w.s.Reference == "" {
		w.s.Reference = newReference()
	}
}

// Retreat goes back one step without validation and without touching the draft.
func (w *Wizard) Retreat() error {
	if w.s.Processing {
		return ErrProcessing
	}
	if w.Step() <= StepProduct {
		return ErrNoPreviousStep
	}
	w.s.Step--
	return nil
}

// Reset starts a new booking. Only allowed from the confirmation step.
func (w *Wizard) Reset() error {
	if w.s.Processing {
		return ErrProcessing
	}
	if w.Step() != StepConfirmation {
		return ErrResetNotAllowed
	}
	w.s.Step = int(StepProduct)
	w.s.Draft = models.NewBookingDraft()
	w.s.Reference = ""
	w.s.FieldErrors = nil
	w.s.LastError = ""
	return nil
}

// ReadyToSubmit reports whether the draft should be handed to the booking writer.
func (w *Wizard) ReadyToSubmit() bool {
	d := w.s.Draft
	return w.Step() == StepConfirmation && !w.s.Processing && !d.Submitted &&
		d.ProductID != "" && d.Date != "" && d.Time != ""
}

func (w *Wizard) MarkSubmitted(bookingID string) {
	w.s.Draft.Submitted = true
	w.s.Draft.Status = models.DraftSubmitted
	w.s.Draft.BookingID = bookingID
	w.s.LastError = ""
}

func (w *Wizard) MarkSubmitFailed(err error) {
	w.s.LastError = err.Error()
}
