package create_checkout

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	catalogRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/catalog"
	referralRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/referral"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
	"github.com/SyahmiDin/app-raya-studio/pkg/types"
)

var (
	testNow     = time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)
	testDate    = time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)
	testWindows = []domain.SessionWindow{
		{Name: "Pagi", Start: "10:00", End: "12:30"},
		{Name: "Petang", Start: "14:00", End: "17:30"},
	}
	testService = &domain.Service{
		ID:              "svc-raya",
		Name:            "Raya Family Session",
		DurationMinutes: 30,
		Price:           250,
	}
)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// fakeReservationRepo хранит брони в памяти и повторяет контракт
// уникального индекса (booking_date, start_time)
type fakeReservationRepo struct {
	mu    sync.Mutex
	bySl  map[string]*domain.Reservation
	byID  map[string]*domain.Reservation
	clock func() time.Time
}

func newFakeReservationRepo(clock func() time.Time) *fakeReservationRepo {
	return &fakeReservationRepo{
		bySl:  make(map[string]*domain.Reservation),
		byID:  make(map[string]*domain.Reservation),
		clock: clock,
	}
}

func slotKey(date time.Time, start types.TimeString) string {
	return date.Format(domain.DateFormat) + "/" + start.String()
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := slotKey(res.BookingDate, res.StartTime)
	if _, exists := f.bySl[key]; exists {
		return nil, reservationRepo.ErrDuplicateSlot
	}

	stored := *res
	stored.CreatedAt = f.clock()
	stored.UpdatedAt = stored.CreatedAt
	f.bySl[key] = &stored
	f.byID[stored.ID] = &stored

	out := stored
	return &out, nil
}

func (f *fakeReservationRepo) GetBySlot(_ context.Context, date time.Time, start types.TimeString) (*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.bySl[slotKey(date, start)]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []*domain.Reservation
	for _, res := range f.bySl {
		if filter.Date != nil && !res.BookingDate.Equal(*filter.Date) {
			continue
		}
		if filter.Status != nil && res.Status != *filter.Status {
			continue
		}
		if filter.Kind != nil && res.Kind != *filter.Kind {
			continue
		}
		copied := *res
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReservationRepo) SetPaymentRef(_ context.Context, id string, sessionID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	res, ok := f.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	res.StripeSessionID = &sessionID
	return nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteLocked(id, false)
}

func (f *fakeReservationRepo) DeleteHeld(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deleteLocked(id, true)
}

func (f *fakeReservationRepo) deleteLocked(id string, heldOnly bool) error {
	res, ok := f.byID[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	if heldOnly && !res.IsHeld() {
		return reservationRepo.ErrNotHeld
	}
	delete(f.byID, id)
	delete(f.bySl, slotKey(res.BookingDate, res.StartTime))
	return nil
}

type fakeCatalogRepo struct {
	services map[string]*domain.Service
}

func (f *fakeCatalogRepo) GetByID(_ context.Context, id string) (*domain.Service, error) {
	svc, ok := f.services[id]
	if !ok {
		return nil, catalogRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeReferralRepo struct {
	codes map[string]*domain.ReferralCode
}

func (f *fakeReferralRepo) GetByCode(_ context.Context, code string) (*domain.ReferralCode, error) {
	c, ok := f.codes[code]
	if !ok {
		return nil, referralRepo.ErrCodeNotFound
	}
	return c, nil
}

type fakePayment struct {
	mu       sync.Mutex
	fail     bool
	requests []stripepay.CheckoutRequest
}

func (f *fakePayment) CreateCheckoutSession(_ context.Context, req stripepay.CheckoutRequest) (*stripepay.CheckoutSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail {
		return nil, stripepay.ErrInternal
	}
	f.requests = append(f.requests, req)
	return &stripepay.CheckoutSession{
		ID:  "cs_test_" + req.ReservationID,
		URL: "https://checkout.stripe.com/pay/cs_test_" + req.ReservationID,
	}, nil
}

// fakeTxManager сериализует транзакции мьютексом, имитируя serializable
type fakeTxManager struct {
	mu sync.Mutex
}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return fn(ctx)
}

type checkoutEnv struct {
	uc      *UseCase
	repo    *fakeReservationRepo
	payment *fakePayment
	clock   *fixedTime
}

func newCheckoutEnv(t *testing.T) *checkoutEnv {
	t.Helper()

	clock := &fixedTime{now: testNow}
	repo := newFakeReservationRepo(func() time.Time { return clock.now })
	payment := &fakePayment{}

	uc := NewUseCase(
		repo,
		&fakeCatalogRepo{services: map[string]*domain.Service{testService.ID: testService}},
		&fakeReferralRepo{codes: map[string]*domain.ReferralCode{
			"RAYA10": {Code: "RAYA10", StaffName: "Aina", DiscountPercent: 10},
		}},
		payment,
		&fakeTxManager{},
		testWindows,
		5,
		10*time.Minute,
		nopLogger{},
	)
	uc.timeProvider = clock

	return &checkoutEnv{uc: uc, repo: repo, payment: payment, clock: clock}
}

func validRequest() *Request {
	return &Request{
		ServiceID:   testService.ID,
		Date:        testDate,
		StartTime:   "10:00",
		ClientName:  "Syahmi",
		ClientEmail: "syahmi@example.com",
		ClientPhone: "+60123456789",
	}
}

func TestCreateCheckout_Success(t *testing.T) {
	env := newCheckoutEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.ReservationID)
	assert.Equal(t, "cs_test_"+resp.ReservationID, resp.SessionID)
	assert.Equal(t, 250.0, resp.BasePrice)
	assert.Equal(t, 250.0, resp.FinalPrice)
	assert.Equal(t, testNow.Add(10*time.Minute), resp.HoldExpiresAt)

	stored, err := env.repo.GetBySlot(context.Background(), testDate, "10:00")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusHeld, stored.Status)
	assert.Equal(t, domain.KindCustomer, stored.Kind)
	require.NotNil(t, stored.StripeSessionID)
	assert.Equal(t, resp.SessionID, *stored.StripeSessionID)

	require.Len(t, env.payment.requests, 1)
	assert.Equal(t, int64(25000), env.payment.requests[0].AmountCents)
}

func TestCreateCheckout_ReferralDiscount(t *testing.T) {
	env := newCheckoutEnv(t)

	req := validRequest()
	code := "RAYA10"
	req.ReferralCode = &code

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 250.0, resp.BasePrice)
	assert.Equal(t, 225.0, resp.FinalPrice)
	require.Len(t, env.payment.requests, 1)
	assert.Equal(t, int64(22500), env.payment.requests[0].AmountCents)
}

func TestCreateCheckout_ReferralCodeNormalized(t *testing.T) {
	env := newCheckoutEnv(t)

	// Коды хранятся в верхнем регистре, клиент может ввести как угодно
	req := validRequest()
	code := "  raya10 "
	req.ReferralCode = &code

	resp, err := env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 225.0, resp.FinalPrice)

	stored, err := env.repo.GetBySlot(context.Background(), testDate, "10:00")
	require.NoError(t, err)
	require.NotNil(t, stored.ReferralCode)
	assert.Equal(t, "RAYA10", *stored.ReferralCode)
}

func TestCreateCheckout_UnknownReferral(t *testing.T) {
	env := newCheckoutEnv(t)

	req := validRequest()
	code := "NOPE"
	req.ReferralCode = &code

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrReferralNotFound)
}

func TestCreateCheckout_OffGridTimeRejected(t *testing.T) {
	env := newCheckoutEnv(t)

	req := validRequest()
	req.StartTime = "10:05"

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestCreateCheckout_FreshHoldRejected(t *testing.T) {
	env := newCheckoutEnv(t)

	// Первый клиент удерживает слот
	_, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Через 5 минут второй клиент пробует тот же слот
	env.clock.now = testNow.Add(5 * time.Minute)
	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotHeldByOther)
}

func TestCreateCheckout_ExpiredHoldEvicted(t *testing.T) {
	env := newCheckoutEnv(t)

	first, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Через 11 минут холд протух: новый клиент занимает слот
	env.clock.now = testNow.Add(11 * time.Minute)
	second, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotEqual(t, first.ReservationID, second.ReservationID)

	stored, err := env.repo.GetBySlot(context.Background(), testDate, "10:00")
	require.NoError(t, err)
	assert.Equal(t, second.ReservationID, stored.ID)
}

func TestCreateCheckout_ConfirmedSlotRejected(t *testing.T) {
	env := newCheckoutEnv(t)

	resp, err := env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Бронь подтверждается, даже истекший TTL не освобождает слот
	env.repo.mu.Lock()
	env.repo.byID[resp.ReservationID].Status = domain.StatusConfirmed
	env.repo.mu.Unlock()

	env.clock.now = testNow.Add(time.Hour)
	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyConfirmed)
}

func TestCreateCheckout_OverlappingConfirmedRejected(t *testing.T) {
	env := newCheckoutEnv(t)

	// Подтвержденная бронь 10:00-10:30 (+5 буфер) перекрывает кандидата 10:00,
	// а соседний слот сетки 10:35 свободен
	_, err := env.repo.Create(context.Background(), &domain.Reservation{
		ID:              "existing",
		BookingDate:     testDate,
		StartTime:       "10:00",
		ServiceID:       testService.ID,
		DurationMinutes: 30,
		Kind:            domain.KindCustomer,
		Status:          domain.StatusConfirmed,
	})
	require.NoError(t, err)

	_, err = env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrSlotAlreadyConfirmed)

	req := validRequest()
	req.StartTime = "10:35"
	_, err = env.uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestCreateCheckout_GatewayFailureReleasesHold(t *testing.T) {
	env := newCheckoutEnv(t)
	env.payment.fail = true

	_, err := env.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrPaymentGateway)

	// Удержание снято, слот снова свободен
	_, err = env.repo.GetBySlot(context.Background(), testDate, "10:00")
	assert.ErrorIs(t, err, reservationRepo.ErrReservationNotFound)

	env.payment.fail = false
	_, err = env.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestCreateCheckout_PastDateRejected(t *testing.T) {
	env := newCheckoutEnv(t)

	req := validRequest()
	req.Date = testDate.AddDate(0, 0, -1)

	_, err := env.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestCreateCheckout_ConcurrentRequestsSingleWinner(t *testing.T) {
	env := newCheckoutEnv(t)

	const workers = 8

	var wg sync.WaitGroup
	results := make([]error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = env.uc.Execute(context.Background(), validRequest())
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		if err == nil {
			winners++
			continue
		}
		isConflict := errors.Is(err, ErrSlotHeldByOther) ||
			errors.Is(err, ErrSlotAlreadyConfirmed) ||
			errors.Is(err, ErrRaceLost)
		assert.True(t, isConflict, "unexpected error: %v", err)
	}

	assert.Equal(t, 1, winners)
}
