package models

import "time"

type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentCrypto PaymentMethod = "crypto"
)

// Valid reports whether m is one of the accepted payment tags.
func (m PaymentMethod) Valid() bool {
	return m == PaymentCard || m == PaymentCrypto
}

type DraftStatus string

const (
	DraftOpen      DraftStatus = "draft"
	DraftSubmitted DraftStatus = "submitted"
)

// ContactDetails is the step three slice of a draft.
type ContactDetails struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Notes      string `json:"notes"`
}

// BookingDraft is the reservation being assembled across the wizard steps.
type BookingDraft struct {
	ProductID     string         `json:"productId,omitempty"`
	Date          string         `json:"date,omitempty"` // "YYYY-MM-DD"
	Time          string         `json:"time,omitempty"`
	Contact       ContactDetails `json:"contact"`
	PaymentMethod PaymentMethod  `json:"paymentMethod"`
	AgreedToTerms bool           `json:"agreedToTerms"`
	Status        DraftStatus    `json:"status"`
	// Submitted flips once, when the booking writer accepted the draft.
	Submitted bool   `json:"submitted"`
	BookingID string `json:"bookingId,omitempty"`
}

// NewBookingDraft returns an empty draft with the default payment method.
func NewBookingDraft() BookingDraft {
	return BookingDraft{
		PaymentMethod: PaymentCard,
		Status:        DraftOpen,
	}
}

// WizardSession is the server side state of one user's booking wizard.
type WizardSession struct {
	UserID          string            `json:"userId"`
	Step            int               `json:"step"`
	Processing      bool              `json:"processing"`
	ProcessingUntil time.Time         `json:"processingUntil,omitempty"`
	Draft           BookingDraft      `json:"draft"`
	Reference       string            `json:"reference,omitempty"`
	FieldErrors     map[string]string `json:"fieldErrors,omitempty"`
	LastError       string            `json:"lastError,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}
