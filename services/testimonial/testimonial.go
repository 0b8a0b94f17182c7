package testimonial

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	testimonialRepo "rotharc/database/repository/testimonial"
	"rotharc/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var ErrInvalidTestimonial = errors.New("invalid testimonial")

const maxQuoteLength = 1000

type TestimonialService interface {
	// ListApproved returns the testimonials shown publicly, oldest first.
	ListApproved(ctx context.Context) ([]models.Testimonial, error)
	Submit(ctx context.Context, author Author, req SubmitRequest) (*models.Testimonial, error)
	ListAll(ctx context.Context) ([]models.Testimonial, error)
	SetStatus(ctx context.Context, id string, status models.TestimonialStatus) error
	Delete(ctx context.Context, id string) error
	DeleteForUser(ctx context.Context, userID string) error
}

// Author identifies who submits a testimonial.
type Author struct {
	UserID    string
	Name      string
	AvatarURL string
}

type SubmitRequest struct {
	Title string `json:"title"`
	Quote string `json:"quote"`
}

type DefaultTestimonialService struct {
	Repo   testimonialRepo.TestimonialRepository
	logger *zap.Logger
}

func NewTestimonialService(repo testimonialRepo.TestimonialRepository, logger *zap.Logger) *DefaultTestimonialService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DefaultTestimonialService{Repo: repo, logger: logger}
}

func (s *DefaultTestimonialService) ListApproved(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.List(ctx, models.TestimonialApproved)
}

// Submit stores a new testimonial awaiting moderation.
func (s *DefaultTestimonialService) Submit(ctx context.Context, author Author, req SubmitRequest) (*models.Testimonial, error) {
	quote := strings.TrimSpace(req.Quote)
	switch {
	case quote == "":
		return nil, fmt.Errorf("%w: quote is required", ErrInvalidTestimonial)
	case len([]rune(quote)) > maxQuoteLength:
		return nil, fmt.Errorf("%w: quote is longer than %d characters", ErrInvalidTestimonial, maxQuoteLength)
	}
	name := strings.TrimSpace(author.Name)
	if name == "" {
		name = "Anonymous"
	}

	now := time.Now()
	t := &models.Testimonial{
		ID:        uuid.New().String(),
		UserID:    author.UserID,
		Name:      name,
		Title:     strings.TrimSpace(req.Title),
		Quote:     quote,
		ImageURL:  author.AvatarURL,
		Status:    models.TestimonialPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("Testimonial submitted", zap.String("testimonialID", t.ID), zap.String("userID", t.UserID))
	return t, nil
}

func (s *DefaultTestimonialService) ListAll(ctx context.Context) ([]models.Testimonial, error) {
	return s.Repo.List(ctx, "")
}

func (s *DefaultTestimonialService) SetStatus(ctx context.Context, id string, status models.TestimonialStatus) error {
	switch status {
	case models.TestimonialPending, models.TestimonialApproved, models.TestimonialRejected:
	default:
		return fmt.Errorf("%w: unknown status %q", ErrInvalidTestimonial, status)
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

func (s *DefaultTestimonialService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultTestimonialService) DeleteForUser(ctx context.Context, userID string) error {
	_, err := s.Repo.DeleteByUser(ctx, userID)
	return err
}
