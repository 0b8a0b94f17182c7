package testimonial

import (
	"context"
	"sort"
	"strings"
	"testing"

	"rotharc/database/repository"
	"rotharc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	items []models.Testimonial
}

func (f *fakeRepo) Create(_ context.Context, t *models.Testimonial) error {
	f.items = append(f.items, *t)
	return nil
}

func (f *fakeRepo) List(_ context.Context, status models.TestimonialStatus) ([]models.Testimonial, error) {
	out := []models.Testimonial{}
	for _, t := range f.items {
		if status == "" || t.Status == status {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeRepo) UpdateStatus(_ context.Context, id string, status models.TestimonialStatus) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items[i].Status = status
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) Delete(_ context.Context, id string) error {
	for i := range f.items {
		if f.items[i].ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeRepo) DeleteByUser(_ context.Context, userID string) (int64, error) {
	kept := f.items[:0]
	var n int64
	for _, t := range f.items {
		if t.UserID == userID {
			n++
			continue
		}
		kept = append(kept, t)
	}
	f.items = kept
	return n, nil
}

func TestSubmitIsPendingUntilApproved(t *testing.T) {
	svc := NewTestimonialService(&fakeRepo{}, nil)
	ctx := context.Background()

	created, err := svc.Submit(ctx, Author{UserID: "u1", Name: "Ada Lovelace"}, SubmitRequest{Title: "Engineer", Quote: "  Life changing.  "})
	require.NoError(t, err)
	assert.Equal(t, models.TestimonialPending, created.Status)
	assert.Equal(t, "Life changing.", created.Quote)

	approved, err := svc.ListApproved(ctx)
	require.NoError(t, err)
	assert.Empty(t, approved)

	require.NoError(t, svc.SetStatus(ctx, created.ID, models.TestimonialApproved))
	approved, err = svc.ListApproved(ctx)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, "Ada Lovelace", approved[0].Name)
}

func TestSubmitValidation(t *testing.T) {
	svc := NewTestimonialService(&fakeRepo{}, nil)
	ctx := context.Background()

	_, err := svc.Submit(ctx, Author{UserID: "u1"}, SubmitRequest{Quote: "   "})
	assert.ErrorIs(t, err, ErrInvalidTestimonial)

	_, err = svc.Submit(ctx, Author{UserID: "u1"}, SubmitRequest{Quote: strings.Repeat("a", maxQuoteLength+1)})
	assert.ErrorIs(t, err, ErrInvalidTestimonial)

	created, err := svc.Submit(ctx, Author{UserID: "u1"}, SubmitRequest{Quote: "Great"})
	require.NoError(t, err)
	assert.Equal(t, "Anonymous", created.Name)
}

func TestModeration(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewTestimonialService(repo, nil)
	ctx := context.Background()
	a, err := svc.Submit(ctx, Author{UserID: "u1", Name: "A"}, SubmitRequest{Quote: "one"})
	require.NoError(t, err)
	_, err = svc.Submit(ctx, Author{UserID: "u2", Name: "B"}, SubmitRequest{Quote: "two"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.SetStatus(ctx, a.ID, "published"), ErrInvalidTestimonial)
	assert.ErrorIs(t, svc.SetStatus(ctx, "missing", models.TestimonialRejected), repository.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, a.ID))
	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, svc.DeleteForUser(ctx, "u2"))
	all, err = svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}
