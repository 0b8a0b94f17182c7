package models

import "time"

type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "pending"
	TestimonialApproved TestimonialStatus = "approved"
	TestimonialRejected TestimonialStatus = "rejected"
)

// Testimonial is a customer quote shown on the landing page once approved.
type Testimonial struct {
	ID        string            `bson:"id" json:"id"`
	UserID    string            `bson:"user_id" json:"user_id"`
	Name      string            `bson:"name" json:"name"`
	Title     string            `bson:"title" json:"title"`
	Quote     string            `bson:"quote" json:"quote"`
	ImageURL  string            `bson:"image_url" json:"image_url"`
	Status    TestimonialStatus `bson:"status" json:"status"`
	CreatedAt time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time         `bson:"updated_at" json:"updated_at"`
}
