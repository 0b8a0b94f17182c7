package testimonialRepo

import (
	"context"

	"rotharc/models"
)

// TestimonialRepository stores customer testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *models.Testimonial) error
	// List returns testimonials oldest first; an empty status lists all of them.
	List(ctx context.Context, status models.TestimonialStatus) ([]models.Testimonial, error)
	UpdateStatus(ctx context.Context, id string, status models.TestimonialStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) (int64, error)
}
