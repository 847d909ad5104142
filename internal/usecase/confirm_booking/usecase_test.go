package confirm_booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/integrations/stripepay"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

var testNow = time.Date(2026, 3, 21, 9, 30, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	byID         map[string]*domain.Reservation
	confirmCalls int
}

func newFakeReservationRepo(rs ...*domain.Reservation) *fakeReservationRepo {
	f := &fakeReservationRepo{byID: make(map[string]*domain.Reservation)}
	for _, r := range rs {
		f.byID[r.ID] = r
	}
	return f
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id string) (*domain.Reservation, error) {
	res, ok := f.byID[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	out := *res
	return &out, nil
}

func (f *fakeReservationRepo) Confirm(_ context.Context, id string, sessionID string, confirmedAt time.Time) error {
	f.confirmCalls++

	res, ok := f.byID[id]
	if !ok || !res.IsHeld() {
		return reservationRepo.ErrNotHeld
	}
	res.Status = domain.StatusConfirmed
	res.StripeSessionID = &sessionID
	res.ConfirmedAt = &confirmedAt
	return nil
}

type fakePayment struct {
	sessions map[string]*stripepay.PaymentInfo
}

func (f *fakePayment) GetPaymentInfo(_ context.Context, sessionID string) (*stripepay.PaymentInfo, error) {
	info, ok := f.sessions[sessionID]
	if !ok {
		return nil, stripepay.ErrSessionNotFound
	}
	return info, nil
}

func heldReservation(id, sessionID string) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		BookingDate:     time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		ServiceID:       "svc-raya",
		DurationMinutes: 30,
		Kind:            domain.KindCustomer,
		Status:          domain.StatusHeld,
		StripeSessionID: &sessionID,
		BasePrice:       250,
		FinalPrice:      ptr.Ptr(225.0),
	}
}

func newConfirmUseCase(repo *fakeReservationRepo, payment *fakePayment) *UseCase {
	uc := NewUseCase(repo, payment, nopLogger{})
	uc.timeProvider = &fixedTime{now: testNow}
	return uc
}

func TestConfirmBooking_PaidSessionConfirms(t *testing.T) {
	repo := newFakeReservationRepo(heldReservation("res-1", "cs_1"))
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: true, ReservationID: "res-1"},
	}}
	uc := newConfirmUseCase(repo, payment)

	resp, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, "res-1", resp.ReservationID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	require.NotNil(t, resp.ConfirmedAt)
	assert.Equal(t, testNow, *resp.ConfirmedAt)
	require.NotNil(t, resp.FinalPrice)
	assert.Equal(t, 225.0, *resp.FinalPrice)
}

func TestConfirmBooking_UnpaidSessionLeavesHoldUntouched(t *testing.T) {
	repo := newFakeReservationRepo(heldReservation("res-1", "cs_1"))
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: false, ReservationID: "res-1"},
	}}
	uc := newConfirmUseCase(repo, payment)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	assert.ErrorIs(t, err, ErrPaymentNotVerified)

	assert.Equal(t, 0, repo.confirmCalls)
	assert.Equal(t, domain.StatusHeld, repo.byID["res-1"].Status)
}

func TestConfirmBooking_RepeatedConfirmIsIdempotent(t *testing.T) {
	repo := newFakeReservationRepo(heldReservation("res-1", "cs_1"))
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: true, ReservationID: "res-1"},
	}}
	uc := newConfirmUseCase(repo, payment)

	first, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	second, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)

	assert.Equal(t, first.ReservationID, second.ReservationID)
	assert.Equal(t, string(domain.StatusConfirmed), second.Status)
}

func TestConfirmBooking_RepeatWithoutStoredPaymentRef(t *testing.T) {
	// SetPaymentRef на этапе checkout мог не записаться: холд лежит без
	// платёжного референса, бронь находится по reservation_id из metadata
	res := heldReservation("res-1", "ignored")
	res.StripeSessionID = nil
	repo := newFakeReservationRepo(res)
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: true, ReservationID: "res-1"},
	}}
	uc := newConfirmUseCase(repo, payment)

	first, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), first.Status)

	// Confirm дозаписывает референс, повтор остается идемпотентным
	require.NotNil(t, repo.byID["res-1"].StripeSessionID)
	assert.Equal(t, "cs_1", *repo.byID["res-1"].StripeSessionID)

	second, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	require.NoError(t, err)
	assert.Equal(t, first.ReservationID, second.ReservationID)
	assert.Equal(t, string(domain.StatusConfirmed), second.Status)
}

func TestConfirmBooking_ResoldSlotRejected(t *testing.T) {
	// Холд истек, слот перепродан другой сессии, затем приходит первая оплата
	res := heldReservation("res-1", "cs_other")
	res.Status = domain.StatusConfirmed
	repo := newFakeReservationRepo(res)
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: true, ReservationID: "res-1"},
	}}
	uc := newConfirmUseCase(repo, payment)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	assert.ErrorIs(t, err, ErrReservationExpired)
}

func TestConfirmBooking_EvictedReservationRejected(t *testing.T) {
	repo := newFakeReservationRepo()
	payment := &fakePayment{sessions: map[string]*stripepay.PaymentInfo{
		"cs_1": {SessionID: "cs_1", Paid: true, ReservationID: "res-gone"},
	}}
	uc := newConfirmUseCase(repo, payment)

	_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_1"})
	assert.ErrorIs(t, err, ErrReservationExpired)
}

func TestConfirmBooking_UnknownSession(t *testing.T) {
	uc := newConfirmUseCase(newFakeReservationRepo(), &fakePayment{sessions: map[string]*stripepay.PaymentInfo{}})

	_, err := uc.Execute(context.Background(), &Request{SessionID: "cs_missing"})
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfirmBooking_EmptySessionID(t *testing.T) {
	uc := newConfirmUseCase(newFakeReservationRepo(), &fakePayment{})

	_, err := uc.Execute(context.Background(), &Request{SessionID: ""})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
