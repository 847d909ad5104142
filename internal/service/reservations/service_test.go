package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	reservationRepo "github.com/SyahmiDin/app-raya-studio/internal/infra/storage/reservation"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations/models"
	"github.com/SyahmiDin/app-raya-studio/pkg/ptr"
)

var testNow = time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC)

type fixedTime struct{ now time.Time }

func (f *fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeReservationRepo struct {
	byID        map[string]*domain.Reservation
	lastFilter  domain.ReservationsFilter
	sweepCutoff time.Time
	sweepResult int64
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

func (f *fakeReservationRepo) GetWithFilter(_ context.Context, filter domain.ReservationsFilter) ([]*domain.Reservation, error) {
	f.lastFilter = filter

	var out []*domain.Reservation
	for _, r := range f.byID {
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.Kind != nil && r.Kind != *filter.Kind {
			continue
		}
		copied := *r
		out = append(out, &copied)
	}
	return out, nil
}

func (f *fakeReservationRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.byID[id]; !ok {
		return reservationRepo.ErrReservationNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeReservationRepo) DeleteExpiredHolds(_ context.Context, cutoff time.Time) (int64, error) {
	f.sweepCutoff = cutoff
	return f.sweepResult, nil
}

func customerBooking(id string) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		BookingDate:     time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		ServiceID:       "svc-raya",
		DurationMinutes: 30,
		Kind:            domain.KindCustomer,
		Status:          domain.StatusConfirmed,
	}
}

func adminBlock(id string) *domain.Reservation {
	return &domain.Reservation{
		ID:              id,
		BookingDate:     time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC),
		StartTime:       "13:15",
		DurationMinutes: 45,
		Kind:            domain.KindAdminBlock,
		Status:          domain.StatusConfirmed,
	}
}

func newTestService(repo *fakeReservationRepo) *Service {
	svc := NewService(repo, 10*time.Minute, nopLogger{})
	svc.timeProvider = &fixedTime{now: testNow}
	return svc
}

func TestList_MapsFilter(t *testing.T) {
	repo := newFakeReservationRepo(customerBooking("res-1"), adminBlock("blk-1"))
	svc := newTestService(repo)

	resp, err := svc.List(context.Background(), &models.GetReservationsRequest{
		Kind: ptr.Ptr("admin_block"),
	})
	require.NoError(t, err)

	require.Len(t, resp.Reservations, 1)
	assert.Equal(t, "blk-1", resp.Reservations[0].ID)

	require.NotNil(t, repo.lastFilter.Kind)
	assert.Equal(t, domain.KindAdminBlock, *repo.lastFilter.Kind)
}

func TestList_RejectsUnknownStatus(t *testing.T) {
	svc := newTestService(newFakeReservationRepo())

	_, err := svc.List(context.Background(), &models.GetReservationsRequest{
		Status: ptr.Ptr("cancelled"),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDelete_RemovesReservation(t *testing.T) {
	repo := newFakeReservationRepo(customerBooking("res-1"))
	svc := newTestService(repo)

	require.NoError(t, svc.Delete(context.Background(), "res-1"))
	assert.ErrorIs(t, svc.Delete(context.Background(), "res-1"), ErrReservationNotFound)
}

func TestUnblock_RemovesBlock(t *testing.T) {
	repo := newFakeReservationRepo(adminBlock("blk-1"))
	svc := newTestService(repo)

	require.NoError(t, svc.Unblock(context.Background(), "blk-1"))
	assert.ErrorIs(t, svc.Unblock(context.Background(), "blk-1"), ErrReservationNotFound)
}

func TestUnblock_RefusesCustomerBooking(t *testing.T) {
	repo := newFakeReservationRepo(customerBooking("res-1"))
	svc := newTestService(repo)

	err := svc.Unblock(context.Background(), "res-1")
	assert.ErrorIs(t, err, ErrNotABlock)

	// Бронь осталась на месте
	_, getErr := repo.GetByID(context.Background(), "res-1")
	assert.NoError(t, getErr)
}

func TestSweepExpiredHolds_CutoffFromTTL(t *testing.T) {
	repo := newFakeReservationRepo()
	repo.sweepResult = 3
	svc := newTestService(repo)

	removed, err := svc.SweepExpiredHolds(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), removed)
	assert.Equal(t, testNow.Add(-10*time.Minute), repo.sweepCutoff)
}
