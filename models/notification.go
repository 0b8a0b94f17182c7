package models

import "time"

type Notification struct {
	ID        string         `bson:"id" json:"id"`
	Type      string         `bson:"type" json:"type"`
	Title     string         `bson:"title" json:"title"`
	Message   string         `bson:"message" json:"message"`
	Data      map[string]any `bson:"data,omitempty" json:"data,omitempty"`
	Read      bool           `bson:"read" json:"read"`
	CreatedAt time.Time      `bson:"created_at" json:"createdAt"`
}

// BookingConfirmationPayload is the queued job emitted after a booking is stored.
type BookingConfirmationPayload struct {
	BookingID   string `json:"bookingId"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	Reference   string `json:"reference"`
	ProductName string `json:"productName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Deposit     int64  `json:"deposit"`
}
