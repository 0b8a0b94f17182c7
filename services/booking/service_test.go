package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"rotharc/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testUser = "user-1"

type testEnv struct {
	svc      *DefaultWizardService
	store    *MemorySessionStore
	products *fakeProducts
	writer   *fakeWriter
	notifier *fakeNotifier
}

func newTestEnv() *testEnv {
	env := &testEnv{
		store: NewMemorySessionStore(),
		products: newFakeProducts(
			models.Product{ID: "X", Name: "Neural Link X", Price: 1000},
			models.Product{ID: "Y", Name: "Optic Implant Y", Price: 4500},
		),
		writer:   &fakeWriter{},
		notifier: &fakeNotifier{},
	}
	env.svc = NewWizardService(env.store, env.products, env.writer, env.notifier,
		WizardConfig{PaymentDelay: 20 * time.Millisecond, Location: time.UTC}, nil)
	env.svc.Now = func() time.Time { return today }
	return env
}

// toPayment drives the wizard of testUser to the payment step with valid data.
func (env *testEnv) toPayment(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	svc := env.svc

	_, err := svc.SelectProduct(ctx, testUser, "X")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, testUser)
	require.NoError(t, err)
	_, err = svc.SetSchedule(ctx, testUser, "2026-10-20", "14:00")
	require.NoError(t, err)
	_, err = svc.Advance(ctx, testUser)
	require.NoError(t, err)

	c := validContact()
	fields := [][2]string{
		{FieldFirstName, c.FirstName}, {FieldLastName, c.LastName}, {FieldEmail, c.Email},
		{FieldPhone, c.Phone}, {FieldAddress, c.Address}, {FieldCity, c.City},
		{FieldPostalCode, c.PostalCode}, {FieldNotes, c.Notes},
	}
	for _, f := range fields {
		_, err = svc.UpdateContact(ctx, testUser, f[0], f[1])
		require.NoError(t, err)
	}
	v, err := svc.Advance(ctx, testUser)
	require.NoError(t, err)
	require.Equal(t, int(StepPayment), v.Step)
}

func TestWizardService_FirstViewListsProducts(t *testing.T) {
	env := newTestEnv()
	v, err := env.svc.Current(context.Background(), testUser)
	require.NoError(t, err)

	assert.Equal(t, 1, v.Step)
	assert.Equal(t, TotalSteps, v.TotalSteps)
	assert.Len(t, v.Products, 2)
	assert.False(t, v.CanAdvance)
	assert.False(t, v.CanRetreat)
}

func TestWizardService_UnknownProduct(t *testing.T) {
	env := newTestEnv()
	v, err := env.svc.SelectProduct(context.Background(), testUser, "nope")
	assert.ErrorIs(t, err, ErrUnknownProduct)
	require.NotNil(t, v)
	assert.Empty(t, v.Draft.ProductID)
}

func TestWizardService_EndToEnd(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.toPayment(t)

	v, err := env.svc.Current(ctx, testUser)
	require.NoError(t, err)
	require.NotNil(t, v.Payment)
	assert.Equal(t, "300 €", v.Payment.DepositLabel)
	assert.Equal(t, "20 octobre 2026 à 14:00", v.Payment.Schedule)

	_, err = env.svc.SetPayment(ctx, testUser, models.PaymentCard, true)
	require.NoError(t, err)

	start := time.Now()
	v, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	assert.Equal(t, int(StepConfirmation), v.Step)
	assert.False(t, v.Processing)
	assert.True(t, v.Submitted)
	require.NotNil(t, v.Confirmation)
	assert.Equal(t, "300 €", v.Confirmation.DepositLabel)
	assert.Equal(t, "Neural Link X", v.Confirmation.ProductName)
	assert.Equal(t, "Ada Lovelace", v.Confirmation.ClientName)
	assert.Equal(t, v.Reference, v.Confirmation.Reference)

	attempts, created := env.writer.snapshot()
	require.Equal(t, 1, attempts)
	b := created[0]
	assert.Equal(t, testUser, b.UserID)
	assert.Equal(t, "X", b.ProductID)
	assert.Equal(t, "2026-10-20", b.BookingDate)
	assert.Equal(t, "14:00", b.BookingTime)
	assert.Equal(t, "Ada", b.FirstName)
	assert.Equal(t, "Lovelace", b.LastName)
	assert.Equal(t, "ada@example.com", b.Email)
	assert.Equal(t, "06 12 34 56 78", b.Phone)
	assert.Equal(t, "1 Rue de Rivoli", b.Address)
	assert.Equal(t, "Paris", b.City)
	assert.Equal(t, "75001", b.PostalCode)
	assert.Equal(t, "Second floor", b.InstallationNotes)
	assert.Equal(t, models.PaymentCard, b.PaymentMethod)
	assert.Equal(t, int64(300), b.Deposit)
	assert.Equal(t, models.BookingPending, b.Status)
	assert.Equal(t, v.Reference, b.Reference)
	assert.Equal(t, b.ID, v.Draft.BookingID)
	assert.Equal(t, 1, env.notifier.count())

	// Re-rendering never submits again.
	for i := 0; i < 3; i++ {
		again, err := env.svc.Current(ctx, testUser)
		require.NoError(t, err)
		assert.Equal(t, v.Reference, again.Reference)
	}
	attempts, _ = env.writer.snapshot()
	assert.Equal(t, 1, attempts)
}

func TestWizardService_AdvanceReportsFieldErrors(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.svc.SelectProduct(ctx, testUser, "X")
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)
	_, err = env.svc.SetSchedule(ctx, testUser, "2026-10-20", "10:30")
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)

	v, err := env.svc.Advance(ctx, testUser)
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Equal(t, StepContact, stepErr.Step)
	require.NotNil(t, v)
	assert.Equal(t, int(StepContact), v.Step)
	assert.Equal(t, stepErr.Fields, v.FieldErrors)
	assert.Equal(t, InstallationCenter, v.Contact.InstallationCenter)

	// Retreat is never blocked by validation.
	v, err = env.svc.Retreat(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int(StepSchedule), v.Step)
	assert.Equal(t, "10:30", v.Draft.Time)
}

func TestWizardService_WeekendRejected(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.svc.SelectProduct(ctx, testUser, "X")
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)

	v, err := env.svc.SetSchedule(ctx, testUser, "2026-10-17", "14:00")
	var stepErr *StepError
	require.True(t, errors.As(err, &stepErr))
	assert.Contains(t, stepErr.Fields, "date")
	assert.Empty(t, v.Draft.Date)
	assert.Empty(t, v.Draft.Time, "a failed update is not persisted")
}

func TestWizardService_SubmissionFailureKeepsDraft(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.toPayment(t)
	_, err := env.svc.SetPayment(ctx, testUser, models.PaymentCrypto, true)
	require.NoError(t, err)

	env.writer.setErr(errors.New("database unavailable"))
	v, err := env.svc.Advance(ctx, testUser)
	assert.ErrorIs(t, err, ErrSubmissionFailed)
	require.NotNil(t, v)
	assert.Equal(t, int(StepConfirmation), v.Step)
	assert.False(t, v.Submitted)
	assert.Contains(t, v.LastError, "database unavailable")
	assert.Equal(t, "X", v.Draft.ProductID)
	assert.Equal(t, models.PaymentCrypto, v.Draft.PaymentMethod)

	// Rendering does not retry.
	_, err = env.svc.Current(ctx, testUser)
	require.NoError(t, err)
	attempts, _ := env.writer.snapshot()
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 0, env.notifier.count())

	env.writer.setErr(nil)
	v, err = env.svc.Submit(ctx, testUser)
	require.NoError(t, err)
	assert.True(t, v.Submitted)
	assert.Empty(t, v.LastError)

	_, err = env.svc.Submit(ctx, testUser)
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	attempts, created := env.writer.snapshot()
	assert.Equal(t, 2, attempts)
	assert.Len(t, created, 1)
}

func TestWizardService_SubmitOutsideConfirmation(t *testing.T) {
	env := newTestEnv()
	_, err := env.svc.Submit(context.Background(), testUser)
	assert.ErrorIs(t, err, ErrWrongStep)
}

func TestWizardService_ConcurrentAdvanceSubmitsOnce(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.toPayment(t)
	_, err := env.svc.SetPayment(ctx, testUser, models.PaymentCard, true)
	require.NoError(t, err)

	const n = 4
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = env.svc.Advance(ctx, testUser)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.True(t, errors.Is(err, ErrProcessing) || errors.Is(err, ErrNoNextStep), err)
	}
	assert.Equal(t, 1, succeeded)
	attempts, _ := env.writer.snapshot()
	assert.Equal(t, 1, attempts)
	assert.Zero(t, env.svc.locks.size())
}

func TestWizardService_RetreatDuringProcessing(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.toPayment(t)
	_, err := env.svc.SetPayment(ctx, testUser, models.PaymentCard, true)
	require.NoError(t, err)
	env.svc.PaymentDelay = 200 * time.Millisecond

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = env.svc.Advance(ctx, testUser)
	}()

	require.Eventually(t, func() bool {
		v, err := env.svc.Current(ctx, testUser)
		return err == nil && v.Processing
	}, time.Second, 5*time.Millisecond)

	_, err = env.svc.Retreat(ctx, testUser)
	assert.ErrorIs(t, err, ErrProcessing)
	<-done

	v, err := env.svc.Current(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int(StepConfirmation), v.Step)
}

func TestWizardService_SettlesElapsedPaymentOnLoad(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	sess := NewSession(testUser, today)
	sess.Step = int(StepPayment)
	sess.Processing = true
	sess.ProcessingUntil = today.Add(-time.Second)
	sess.Draft.ProductID = "Y"
	sess.Draft.Date = "2026-10-20"
	sess.Draft.Time = "09:00"
	sess.Draft.Contact = validContact()
	sess.Draft.AgreedToTerms = true
	require.NoError(t, env.store.Save(ctx, sess))

	v, err := env.svc.Current(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int(StepConfirmation), v.Step)
	assert.True(t, v.Submitted)
	require.NotNil(t, v.Confirmation)
	assert.Equal(t, "1 350 €", v.Confirmation.DepositLabel)

	attempts, _ := env.writer.snapshot()
	assert.Equal(t, 1, attempts)
}

func TestWizardService_MissingProductRendersEmptyBody(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.svc.SelectProduct(ctx, testUser, "X")
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)

	env.products.remove("X")
	v, err := env.svc.Current(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, int(StepSchedule), v.Step)
	assert.Nil(t, v.Schedule)
}

func TestWizardService_ResetStartsOver(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	env.toPayment(t)

	_, err := env.svc.Reset(ctx, testUser)
	assert.ErrorIs(t, err, ErrResetNotAllowed)

	_, err = env.svc.SetPayment(ctx, testUser, models.PaymentCard, true)
	require.NoError(t, err)
	_, err = env.svc.Advance(ctx, testUser)
	require.NoError(t, err)

	v, err := env.svc.Reset(ctx, testUser)
	require.NoError(t, err)
	assert.Equal(t, 1, v.Step)
	assert.Equal(t, models.NewBookingDraft(), v.Draft)
	assert.Empty(t, v.Reference)
}

func TestWizardService_Discard(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()
	_, err := env.svc.SelectProduct(ctx, testUser, "X")
	require.NoError(t, err)

	require.NoError(t, env.svc.Discard(ctx, testUser))
	_, err = env.store.Load(ctx, testUser)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
