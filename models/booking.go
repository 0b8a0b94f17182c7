package models

import "time"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// Booking represents a persisted installation reservation.
type Booking struct {
	ID                string        `bson:"id" json:"id"`
	UserID            string        `bson:"user_id" json:"user_id"`
	ProductID         string        `bson:"product_id" json:"product_id"`
	ProductName       string        `bson:"product_name" json:"product_name"`
	BookingDate       string        `bson:"booking_date" json:"booking_date"` // "YYYY-MM-DD"
	BookingTime       string        `bson:"booking_time" json:"booking_time"` // one of the fixed slots, "HH:MM"
	FirstName         string        `bson:"first_name" json:"first_name"`
	LastName          string        `bson:"last_name" json:"last_name"`
	Email             string        `bson:"email" json:"email"`
	Phone             string        `bson:"phone" json:"phone"`
	Address           string        `bson:"address" json:"address"`
	City              string        `bson:"city" json:"city"`
	PostalCode        string        `bson:"postal_code" json:"postal_code"`
	InstallationNotes string        `bson:"installation_notes" json:"installation_notes"`
	PaymentMethod     PaymentMethod `bson:"payment_method" json:"payment_method"`
	Deposit           int64         `bson:"deposit" json:"deposit"` // whole EUR
	Reference         string        `bson:"reference" json:"reference"`
	Status            BookingStatus `bson:"status" json:"status"`
	CreatedAt         time.Time     `bson:"created_at" json:"created_at"`
	UpdatedAt         time.Time     `bson:"updated_at" json:"updated_at"`
}

// CanTransition reports whether a booking may move from one status to another.
// Cancelled is terminal.
func (s BookingStatus) CanTransition(to BookingStatus) bool {
	switch s {
	case BookingPending:
		return to == BookingConfirmed || to == BookingCancelled
	case BookingConfirmed:
		return to == BookingCancelled
	default:
		return false
	}
}
