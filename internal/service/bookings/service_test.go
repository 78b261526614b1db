package bookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type recordingMetrics struct{ outcomes []string }

func (m *recordingMetrics) ObserveBooking(operation, outcome string) {
	m.outcomes = append(m.outcomes, operation+":"+outcome)
}

type fakeBookings struct {
	rows []*domain.Booking
	err  error
}

func (f *fakeBookings) GetByIDAndUser(_ context.Context, id int64, userID uuid.UUID) (*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range f.rows {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (f *fakeBookings) GetByGroup(_ context.Context, groupID, userID uuid.UUID) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, r := range f.rows {
		if r.GroupID == groupID && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBookings) GetByUser(_ context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]*domain.Booking, 0)
	for _, r := range f.rows {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeBookings) CancelGroup(_ context.Context, groupID, userID uuid.UUID, at time.Time) (int64, error) {
	var n int64
	for _, r := range f.rows {
		if r.GroupID == groupID && r.UserID == userID && r.IsActive() {
			r.Status = domain.StatusCancelled
			r.CancelledAt = &at
			n++
		}
	}
	return n, nil
}

type fakeServices struct{ calls int }

func (f *fakeServices) GetServicesByIDs(_ context.Context, ids []int64, _ *int64) ([]*domain.Service, error) {
	f.calls++
	all := map[int64]*domain.Service{
		10: {ID: 10, Name: "Haircut", Duration: 45, Price: decimal.NewFromInt(50000)},
		11: {ID: 11, Name: "Shave", Duration: 30, Price: decimal.NewFromInt(25000)},
	}
	out := make([]*domain.Service, 0)
	for _, id := range ids {
		if s, ok := all[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

var (
	owner = uuid.MustParse("9b2f7c3e-4a1d-4c8e-9f6a-2d3b5e7f1a0c")
	other = uuid.MustParse("3f1e2d4c-5b6a-4798-8a9b-0c1d2e3f4a5b")
)

func group(firstID int64, user uuid.UUID, start time.Time, slots int) []*domain.Booking {
	id := uuid.New()
	rows := make([]*domain.Booking, slots)
	for i := range rows {
		rows[i] = &domain.Booking{
			ID:            firstID + int64(i),
			GroupID:       id,
			UserID:        user,
			CapsterID:     5,
			BranchID:      1,
			ServiceIDs:    []int64{10, 11},
			Schedule:      start.Add(time.Duration(i) * time.Hour),
			Status:        domain.StatusConfirmed,
			BookingType:   domain.BookingTypeFor(slots),
			SlotSequence:  i + 1,
			TotalSlots:    slots,
			TotalPrice:    decimal.NewFromInt(75000),
			TotalDuration: 75,
			Capster:       &domain.CapsterSummary{ID: 5, Name: "Budi"},
		}
	}
	return rows
}

func newService(repo *fakeBookings) (*Service, *recordingMetrics, *fakeServices) {
	m := &recordingMetrics{}
	svcRepo := &fakeServices{}
	now := time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)
	return NewService(repo, svcRepo, m, fixedTime{now: now}, time.UTC, nopLogger{}), m, svcRepo
}

func TestGetBooking_MultiSlotBySecondRow(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBookings{rows: group(101, owner, start, 2)}
	svc, _, _ := newService(repo)

	view, err := svc.GetBooking(context.Background(), 102, owner)

	require.NoError(t, err)
	assert.Equal(t, int64(101), view.ID)
	assert.Equal(t, "multi", view.BookingType)
	assert.Equal(t, 2, view.TotalSlots)
	require.Len(t, view.Services, 2)
	assert.Equal(t, "Haircut", view.Services[0].Name)
	require.NotNil(t, view.Barber)
	assert.Equal(t, "Budi", view.Barber.Name)
	assert.Equal(t, 2, view.Summary.TotalServices)
	assert.Equal(t, 75, view.Summary.TotalDuration)
	assert.Equal(t, "2:00 PM", view.Summary.StartTime)
	assert.Equal(t, "4:00 PM", view.Summary.EndTime)
	require.Len(t, view.Summary.Slots, 2)
	assert.Equal(t, "3:00 PM", view.Summary.Slots[1].Time)
}

func TestGetBooking_OtherUserIsNotFound(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBookings{rows: group(101, owner, start, 1)}
	svc, _, _ := newService(repo)

	_, err := svc.GetBooking(context.Background(), 101, other)

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestGetBooking_StorageFailure(t *testing.T) {
	svc, _, _ := newService(&fakeBookings{err: errors.New("boom")})

	_, err := svc.GetBooking(context.Background(), 1, owner)

	assert.Equal(t, domain.KindPersistence, domain.KindOf(err))
}

func TestGetUserBookings_GroupsRowsAndBatchesServices(t *testing.T) {
	rows := append(
		group(101, owner, time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC), 2),
		group(201, owner, time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC), 1)...,
	)
	rows = append(rows, group(301, other, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), 1)...)
	svc, _, services := newService(&fakeBookings{rows: rows})

	views, err := svc.GetUserBookings(context.Background(), owner)

	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, int64(101), views[0].ID)
	assert.Equal(t, 2, views[0].TotalSlots)
	assert.Equal(t, int64(201), views[1].ID)
	assert.Empty(t, views[1].Summary.Slots)
	assert.Equal(t, 1, services.calls)
}

func TestGetUserBookings_Empty(t *testing.T) {
	svc, _, services := newService(&fakeBookings{})

	views, err := svc.GetUserBookings(context.Background(), owner)

	require.NoError(t, err)
	assert.Empty(t, views)
	assert.Zero(t, services.calls)
}

func TestCancel(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBookings{rows: group(101, owner, start, 2)}
	svc, m, _ := newService(repo)

	resp, err := svc.Cancel(context.Background(), 101, owner)

	require.NoError(t, err)
	assert.Equal(t, int64(2), resp.CancelledSlots)
	for _, r := range repo.rows {
		assert.Equal(t, domain.StatusCancelled, r.Status)
		assert.NotNil(t, r.CancelledAt)
	}
	assert.Equal(t, []string{"cancel:cancelled"}, m.outcomes)

	view, err := svc.GetBooking(context.Background(), 101, owner)
	require.NoError(t, err)
	assert.Equal(t, "cancelled", view.Status)
}

func TestCancel_Twice(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	repo := &fakeBookings{rows: group(101, owner, start, 1)}
	svc, _, _ := newService(repo)

	_, err := svc.Cancel(context.Background(), 101, owner)
	require.NoError(t, err)

	_, err = svc.Cancel(context.Background(), 101, owner)
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
}

func TestCancel_NotFound(t *testing.T) {
	svc, _, _ := newService(&fakeBookings{})

	_, err := svc.Cancel(context.Background(), 999, owner)

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
