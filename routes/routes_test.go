package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"rotharc/database/repository"
	"rotharc/handlers"
	"rotharc/models"
	"rotharc/services/booking"
	"rotharc/services/session"
	"rotharc/services/testimonial"
	"rotharc/services/user"
	"rotharc/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeResolver map[string]*session.CurrentUser

func (f fakeResolver) Resolve(_ context.Context, token string) (*session.CurrentUser, error) {
	u, ok := f[token]
	if !ok {
		return nil, session.ErrInvalidToken
	}
	return u, nil
}

type fakeCatalogue struct {
	products []models.Product
	filters  []models.ProductFilter
}

func (f *fakeCatalogue) List(_ context.Context, filter models.ProductFilter) ([]models.Product, error) {
	f.filters = append(f.filters, filter)
	return f.products, nil
}

func (f *fakeCatalogue) Get(_ context.Context, id string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("product %s: %w", id, repository.ErrNotFound)
}

func (f *fakeCatalogue) GetByID(ctx context.Context, id string) (*models.Product, error) {
	return f.Get(ctx, id)
}

func (f *fakeCatalogue) Create(_ context.Context, p *models.Product) (*models.Product, error) {
	f.products = append(f.products, *p)
	return p, nil
}

func (f *fakeCatalogue) Update(ctx context.Context, id string, p *models.Product) (*models.Product, error) {
	return f.Get(ctx, id)
}

func (f *fakeCatalogue) Delete(context.Context, string) error { return nil }

func (f *fakeCatalogue) Import(_ context.Context, ps []models.Product) (int, error) {
	f.products = append(f.products, ps...)
	return len(ps), nil
}

type fakeWriter struct {
	mu      sync.Mutex
	created []models.Booking
}

func (f *fakeWriter) Create(_ context.Context, b *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, *b)
	return nil
}

type stubReservations struct{}

func (stubReservations) ListForUser(context.Context, string) ([]models.Booking, error) {
	return []models.Booking{}, nil
}

func (stubReservations) CancelForUser(_ context.Context, userID, id string) (*models.Booking, error) {
	if id != "b1" {
		return nil, repository.ErrNotFound
	}
	return nil, booking.ErrNotOwner
}

func (stubReservations) ListAll(context.Context) ([]models.Booking, error) {
	return []models.Booking{{ID: "b1"}}, nil
}

func (stubReservations) UpdateStatus(context.Context, string, models.BookingStatus) (*models.Booking, error) {
	return nil, booking.ErrInvalidTransition
}

func (stubReservations) DeleteForUser(context.Context, string) error { return nil }

type stubUsers struct{}

func (stubUsers) Register(_ context.Context, req user.RegisterRequest) (*user.AuthResponse, error) {
	if req.Email == "taken@example.com" {
		return nil, user.ErrEmailTaken
	}
	return &user.AuthResponse{ID: "u-new", Token: "t", Email: req.Email}, nil
}

func (stubUsers) Login(context.Context, string, string) (*user.AuthResponse, error) {
	return nil, user.ErrInvalidCredentials
}

func (stubUsers) Logout(context.Context, string) error { return nil }

func (stubUsers) GetProfile(_ context.Context, id string) (*models.User, error) {
	return &models.User{ID: id, FirstName: "Ada"}, nil
}

func (stubUsers) UpdateProfile(_ context.Context, id, first, last string) (*models.User, error) {
	return &models.User{ID: id, FirstName: first, LastName: last}, nil
}

func (stubUsers) UploadAvatar(context.Context, string, io.Reader) (*models.User, error) {
	return nil, nil
}

func (stubUsers) DeleteAccount(context.Context, string) error { return nil }

type stubTestimonials struct{}

func (stubTestimonials) ListApproved(context.Context) ([]models.Testimonial, error) {
	return []models.Testimonial{{ID: "t1", Status: models.TestimonialApproved}}, nil
}

func (stubTestimonials) Submit(_ context.Context, a testimonial.Author, req testimonial.SubmitRequest) (*models.Testimonial, error) {
	return &models.Testimonial{ID: "t2", UserID: a.UserID, Name: a.Name, Quote: req.Quote, Status: models.TestimonialPending}, nil
}

func (stubTestimonials) ListAll(context.Context) ([]models.Testimonial, error) { return nil, nil }

func (stubTestimonials) SetStatus(context.Context, string, models.TestimonialStatus) error {
	return nil
}

func (stubTestimonials) Delete(context.Context, string) error { return nil }

func (stubTestimonials) DeleteForUser(context.Context, string) error { return nil }

type testServer struct {
	router *gin.Engine
	writer *fakeWriter
	health utils.HealthStatus
}

func newTestServer() *testServer {
	gin.SetMode(gin.TestMode)
	ts := &testServer{writer: &fakeWriter{}, health: utils.HealthStatus{Mongo: true}}

	products := &fakeCatalogue{products: []models.Product{{ID: "x", Name: "Neural Link X", Category: "neural", Price: 1000}}}
	wizard := booking.NewWizardService(booking.NewMemorySessionStore(), products, ts.writer, nil,
		booking.WizardConfig{PaymentDelay: 10 * time.Millisecond, Location: time.UTC}, nil)
	wizard.Now = func() time.Time { return time.Date(2026, time.October, 15, 9, 0, 0, 0, time.UTC) }

	hb := &handlers.HandlerBundle{
		Sessions: fakeResolver{
			"user-token":  {ID: "u1", FirstName: "Ada", LastName: "Lovelace"},
			"admin-token": {ID: "a1", IsAdmin: true},
		},
		Auth:         handlers.NewAuthHandler(stubUsers{}),
		Profile:      handlers.NewProfileHandler(stubUsers{}),
		Catalogue:    handlers.NewCatalogueHandler(products),
		Wizard:       handlers.NewWizardHandler(wizard),
		Reservations: handlers.NewReservationHandler(stubReservations{}),
		Testimonials: handlers.NewTestimonialHandler(stubTestimonials{}, stubUsers{}, zap.NewNop()),
		Legal:        handlers.NewLegalHandler(),
		Health:       &handlers.HealthHandler{Status: func() utils.HealthStatus { return ts.health }},
	}
	ts.router = gin.New()
	RegisterRoutes(ts.router, hb, nil)
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	ts.router.ServeHTTP(w, req)

	var decoded map[string]any
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
	}
	return w, decoded
}

func TestWizardRequiresSession(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodGet, "/api/booking/wizard", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "/api/auth/login", body["login"])
	assert.Equal(t, "/api/auth/register", body["register"])
}

func TestWizardOverHTTP(t *testing.T) {
	ts := newTestServer()
	const tok = "user-token"

	w, body := ts.do(t, http.MethodGet, "/api/booking/wizard", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["step"])
	assert.Len(t, body["products"], 1)

	w, body = ts.do(t, http.MethodPost, "/api/booking/wizard/retreat", tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.NotNil(t, body["view"])

	w, _ = ts.do(t, http.MethodPut, "/api/booking/wizard/product", tok, map[string]string{"productId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = ts.do(t, http.MethodPut, "/api/booking/wizard/product", tok, map[string]string{"productId": "x"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/booking/wizard/advance", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, http.MethodPut, "/api/booking/wizard/schedule", tok, map[string]string{"date": "2026-10-18", "time": "14:00"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["fields"], "date")

	w, _ = ts.do(t, http.MethodPut, "/api/booking/wizard/schedule", tok, map[string]string{"date": "2026-10-20", "time": "14:00"})
	require.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/booking/wizard/advance", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, http.MethodPost, "/api/booking/wizard/advance", tok, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, body["fields"], "email")

	w, body = ts.do(t, http.MethodPatch, "/api/booking/wizard/contact", tok, map[string]string{"field": "email", "value": "bad"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "invalid email address", body["fieldErrors"].(map[string]any)["email"])

	for field, value := range map[string]string{
		"firstName": "Ada", "lastName": "Lovelace", "email": "ada@example.com",
		"phone": "06 12 34 56 78", "address": "1 Rue de Rivoli", "city": "Paris", "postalCode": "75001",
	} {
		w, _ = ts.do(t, http.MethodPatch, "/api/booking/wizard/contact", tok, map[string]string{"field": field, "value": value})
		require.Equal(t, http.StatusOK, w.Code, field)
	}
	w, _ = ts.do(t, http.MethodPost, "/api/booking/wizard/advance", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, body = ts.do(t, http.MethodPut, "/api/booking/wizard/payment", tok, map[string]any{"paymentMethod": "card", "agreedToTerms": true})
	require.Equal(t, http.StatusOK, w.Code)
	payment := body["payment"].(map[string]any)
	assert.Equal(t, "300 €", payment["depositLabel"])
	assert.Equal(t, "terms-of-sale", payment["terms"])

	w, body = ts.do(t, http.MethodPost, "/api/booking/wizard/advance", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 5, body["step"])
	confirmation := body["confirmation"].(map[string]any)
	assert.Equal(t, "300 €", confirmation["depositLabel"])
	assert.Equal(t, "Ada Lovelace", confirmation["clientName"])
	assert.Len(t, ts.writer.created, 1)

	w, _ = ts.do(t, http.MethodPost, "/api/booking/wizard/submit", tok, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, body = ts.do(t, http.MethodPost, "/api/booking/wizard/reset", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, body["step"])
	assert.Len(t, ts.writer.created, 1)
}

func TestCatalogueQueryFilters(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodGet, "/api/products?category=neural&featured=true", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/products/x", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w, _ = ts.do(t, http.MethodGet, "/api/products/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAuthErrors(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "taken@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "new@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"email": "a@example.com", "password": "x"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = ts.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReservationErrors(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodPost, "/api/bookings/b1/cancel", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	w, _ = ts.do(t, http.MethodPost, "/api/bookings/zz/cancel", "user-token", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminRoutes(t *testing.T) {
	ts := newTestServer()
	w, _ := ts.do(t, http.MethodGet, "/api/admin/bookings", "user-token", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = ts.do(t, http.MethodGet, "/api/admin/bookings", "admin-token", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = ts.do(t, http.MethodPatch, "/api/admin/bookings/b1/status", "admin-token", map[string]string{"status": "pending"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestTestimonialSubmitUsesSessionUser(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodPost, "/api/testimonials", "user-token", map[string]string{"quote": "Great"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Ada Lovelace", body["name"])
	assert.Equal(t, "u1", body["user_id"])

	w, _ = ts.do(t, http.MethodPost, "/api/testimonials", "", map[string]string{"quote": "Great"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealth(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])

	ts.health = utils.HealthStatus{Mongo: false}
	w, body = ts.do(t, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "degraded", body["status"])
}

func TestLegalDocuments(t *testing.T) {
	ts := newTestServer()
	w, body := ts.do(t, http.MethodGet, "/api/legal/terms-of-sale", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Terms of Sale", body["title"])

	w, _ = ts.do(t, http.MethodGet, "/api/legal/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
