package update_booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	catalogRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/catalog"
	"github.com/m04kA/SMC-BarberBooking/internal/service/availability"
	"github.com/m04kA/SMC-BarberBooking/internal/service/resolver"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const (
	alice = "9b2f7c3e-4a1d-4c8e-9f6a-2d3b5e7f1a0c"
	bob   = "3f1e2d4c-5b6a-4798-8a9b-0c1d2e3f4a5b"
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

// passthroughTx выполняет функцию без настоящей транзакции
type passthroughTx struct {
	calls     int
	commitErr error
}

func (tx *passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	if tx.commitErr != nil {
		return fmt.Errorf("txmanager: commit: %w", tx.commitErr)
	}
	return nil
}

type memoryStore struct {
	nextID int64
	rows   []*domain.Booking
}

func (s *memoryStore) GetBranchByID(_ context.Context, id int64) (*domain.Branch, error) {
	if id != 1 {
		return nil, catalogRepo.ErrBranchNotFound
	}
	return &domain.Branch{ID: 1, Name: "Senopati"}, nil
}

func (s *memoryStore) GetCapsterInBranch(_ context.Context, capsterID, branchID int64) (*domain.Capster, error) {
	if branchID != 1 || (capsterID != 5 && capsterID != 6) {
		return nil, catalogRepo.ErrCapsterNotFound
	}
	return &domain.Capster{ID: capsterID, Name: fmt.Sprintf("Capster %d", capsterID), BranchID: 1}, nil
}

func (s *memoryStore) GetServicesByIDs(_ context.Context, ids []int64, _ *int64) ([]*domain.Service, error) {
	catalog := map[int64]*domain.Service{
		10: {ID: 10, Name: "Haircut", Duration: 45, Price: decimal.NewFromInt(50000)},
		11: {ID: 11, Name: "Beard trim", Duration: 30, Price: decimal.NewFromInt(25000)},
		12: {ID: 12, Name: "Coloring", Duration: 150, Price: decimal.NewFromInt(200000)},
	}
	out := make([]*domain.Service, 0)
	for _, id := range ids {
		if svc, ok := catalog[id]; ok {
			out = append(out, svc)
		}
	}
	return out, nil
}

func (s *memoryStore) CountActiveAt(_ context.Context, capsterID int64, schedule time.Time, excludeGroup *uuid.UUID) (int, error) {
	count := 0
	for _, r := range s.rows {
		if r.CapsterID == capsterID && r.Schedule.Equal(schedule) && r.IsActive() &&
			(excludeGroup == nil || r.GroupID != *excludeGroup) {
			count++
		}
	}
	return count, nil
}

func (s *memoryStore) CountActiveGroupsSince(context.Context, uuid.UUID, time.Time) (int, error) {
	return 0, nil
}

func (s *memoryStore) GetByIDAndUser(_ context.Context, id int64, userID uuid.UUID) (*domain.Booking, error) {
	for _, r := range s.rows {
		if r.ID == id && r.UserID == userID {
			return r, nil
		}
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (s *memoryStore) GetByGroup(_ context.Context, groupID, userID uuid.UUID) ([]*domain.Booking, error) {
	out := make([]*domain.Booking, 0)
	for _, r := range s.rows {
		if r.GroupID == groupID && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *memoryStore) InsertMany(_ context.Context, rows []*domain.Booking) ([]*domain.Booking, error) {
	for _, row := range rows {
		s.nextID++
		row.ID = s.nextID
		s.rows = append(s.rows, row)
	}
	return rows, nil
}

func (s *memoryStore) UpdateRow(_ context.Context, id int64, patch domain.BookingRowPatch, now time.Time) error {
	for _, r := range s.rows {
		if r.ID == id && r.IsActive() {
			r.CapsterID = patch.CapsterID
			r.ServiceIDs = patch.ServiceIDs
			r.Schedule = patch.Schedule
			r.BookingType = patch.BookingType
			r.SlotSequence = patch.SlotSequence
			r.TotalSlots = patch.TotalSlots
			r.TotalPrice = patch.TotalPrice
			r.TotalDuration = patch.TotalDuration
			r.UpdatedAt = now
			return nil
		}
	}
	return bookingRepo.ErrBookingNotFound
}

func (s *memoryStore) CancelRows(_ context.Context, ids []int64, at time.Time) (int64, error) {
	var n int64
	for _, id := range ids {
		for _, r := range s.rows {
			if r.ID == id && r.IsActive() {
				r.Status = domain.StatusCancelled
				r.CancelledAt = &at
				n++
			}
		}
	}
	return n, nil
}

// seed сохраняет группу слотов, начиная с часа start
func (s *memoryStore) seed(user string, capster int64, serviceIDs []int64, start time.Time, duration int) uuid.UUID {
	groupID := uuid.New()
	slots := domain.AllocateSlots(start, duration)
	rows := domain.SlotRows(domain.Booking{
		GroupID:       groupID,
		UserID:        uuid.MustParse(user),
		CapsterID:     capster,
		BranchID:      1,
		ServiceIDs:    serviceIDs,
		Status:        domain.StatusConfirmed,
		TotalPrice:    decimal.NewFromInt(50000),
		TotalDuration: duration,
	}, slots)
	_, _ = s.InsertMany(context.Background(), rows)
	return groupID
}

func (s *memoryStore) active(groupID uuid.UUID) []*domain.Booking {
	out := make([]*domain.Booking, 0)
	for _, r := range s.rows {
		if r.GroupID == groupID && r.IsActive() {
			out = append(out, r)
		}
	}
	return out
}

var now = time.Date(2025, 2, 28, 10, 0, 0, 0, time.UTC)

func at(hour int) time.Time {
	return time.Date(2025, 3, 1, hour, 0, 0, 0, time.UTC)
}

type fixture struct {
	uc      *UseCase
	store   *memoryStore
	tx      *passthroughTx
	metrics *recordingMetrics
}

func newFixture() *fixture {
	store := &memoryStore{}
	policy := domain.Policy{Location: time.UTC, OpeningHour: 9, ClosingHour: 18, MaxActiveBookings: 2}
	tx := &passthroughTx{}
	m := &recordingMetrics{}

	uc := NewUseCase(
		store,
		store,
		resolver.NewService(store, nopLogger{}),
		availability.NewService(store, policy, nopLogger{}),
		tx,
		m,
		policy,
		nopLogger{},
	)
	uc.timeProvider = fixedTime{now: now}

	return &fixture{uc: uc, store: store, tx: tx, metrics: m}
}

func TestExecute_MoveSchedule(t *testing.T) {
	f := newFixture()
	group := f.store.seed(alice, 5, []int64{10}, at(14), 45)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		Date:      ptr.Ptr("2025-03-01"),
		Time:      ptr.Ptr("4:00 PM"),
	})

	require.NoError(t, err)
	rows := f.store.active(group)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID, "row is rewritten in place")
	assert.Equal(t, 16, rows[0].Schedule.Hour())
	assert.Equal(t, "4:00 PM", resp.Time)
	assert.Equal(t, 1, f.tx.calls)
	assert.Equal(t, []string{"update:updated"}, f.metrics.outcomes)
}

func TestExecute_ExtendServicesAddsSlots(t *testing.T) {
	f := newFixture()
	group := f.store.seed(alice, 5, []int64{10}, at(14), 45)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:     alice,
		BookingID:  "1",
		ServiceIDs: json.RawMessage(`[10,12]`),
	})

	require.NoError(t, err)
	rows := f.store.active(group)
	require.Len(t, rows, 4, "195 minutes need four slots")
	for i, row := range rows {
		assert.Equal(t, 14+i, row.Schedule.Hour())
		assert.Equal(t, i+1, row.SlotSequence)
		assert.Equal(t, 4, row.TotalSlots)
		assert.Equal(t, domain.BookingTypeMulti, row.BookingType)
		assert.Equal(t, 195, row.TotalDuration)
		assert.Equal(t, "250000", row.TotalPrice.String())
		assert.Equal(t, []int64{10, 12}, row.ServiceIDs)
	}
	assert.Equal(t, "multi", resp.BookingType)
	assert.Len(t, resp.Services, 2)
	assert.Equal(t, "6:00 PM", resp.Summary.EndTime)
}

func TestExecute_ShrinkCancelsSurplus(t *testing.T) {
	f := newFixture()
	group := f.store.seed(alice, 5, []int64{12}, at(10), 150)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:     alice,
		BookingID:  "2",
		ServiceIDs: json.RawMessage(`"[11]"`),
	})

	require.NoError(t, err)
	rows := f.store.active(group)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].Schedule.Hour())
	assert.Equal(t, domain.BookingTypeSingle, rows[0].BookingType)
	assert.Equal(t, 30, rows[0].TotalDuration)

	cancelled := 0
	for _, r := range f.store.rows {
		if r.IsCancelled() {
			cancelled++
			require.NotNil(t, r.CancelledAt)
		}
	}
	assert.Equal(t, 2, cancelled)
}

func TestExecute_ConflictIgnoresOwnGroup(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{12}, at(10), 150)

	// сдвиг на час пересекается только с собственными слотами
	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		Date:      ptr.Ptr("2025-03-01"),
		Time:      ptr.Ptr("11:00 AM"),
	})
	assert.NoError(t, err)
}

func TestExecute_ConflictWithOtherBooking(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(10), 45)
	f.store.seed(bob, 5, []int64{10}, at(12), 45)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		Date:      ptr.Ptr("2025-03-01"),
		Time:      ptr.Ptr("12:00 PM"),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.Equal(t, 10, f.store.rows[0].Schedule.Hour(), "nothing written")
	assert.Equal(t, []string{"update:conflict"}, f.metrics.outcomes)
}

func TestExecute_ChangeCapster(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(10), 45)
	f.store.seed(bob, 6, []int64{10}, at(11), 45)

	resp, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		CapsterID: ptr.Ptr("6"),
	})

	require.NoError(t, err)
	assert.Equal(t, int64(6), f.store.rows[0].CapsterID)
	require.NotNil(t, resp.Barber)
	assert.Equal(t, "Capster 6", resp.Barber.Name)

	_, err = f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		CapsterID: ptr.Ptr("99"),
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestExecute_CancelledBooking(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(10), 45)
	f.store.rows[0].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		CapsterID: ptr.Ptr("6"),
	})

	require.Error(t, err)
	assert.Equal(t, 400, domain.StatusCode(err))
}

func TestExecute_OtherUsersBooking(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(10), 45)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    bob,
		BookingID: "1",
		CapsterID: ptr.Ptr("6"),
	})

	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestExecute_OutsideWorkingHours(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(17), 45)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:     alice,
		BookingID:  "1",
		ServiceIDs: json.RawMessage(`[12]`),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindInvalidArgument, domain.KindOf(err))
	assert.Equal(t, 45, f.store.rows[0].TotalDuration)
}

func TestExecute_CommitRace(t *testing.T) {
	f := newFixture()
	f.store.seed(alice, 5, []int64{10}, at(10), 45)
	f.tx.commitErr = fmt.Errorf("%w: deferred exclusion", bookingRepo.ErrSlotTaken)

	_, err := f.uc.Execute(context.Background(), &Request{
		UserID:    alice,
		BookingID: "1",
		Date:      ptr.Ptr("2025-03-01"),
		Time:      ptr.Ptr("3:00 PM"),
	})

	require.Error(t, err)
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))
	assert.True(t, errors.Is(err, bookingRepo.ErrSlotTaken))
}

func TestValidateRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
		kind    domain.ErrorKind
	}{
		{
			name:    "empty patch",
			req:     &Request{UserID: alice, BookingID: "1"},
			wantErr: errEmptyPatch,
		},
		{
			name:    "date without time",
			req:     &Request{UserID: alice, BookingID: "1", Date: ptr.Ptr("2025-03-01")},
			wantErr: errDateTimePair,
		},
		{
			name: "bad booking id",
			req:  &Request{UserID: alice, BookingID: "abc", CapsterID: ptr.Ptr("5")},
			kind: domain.KindInvalidArgument,
		},
		{
			name: "bad user id",
			req:  &Request{UserID: "user-1", BookingID: "1", CapsterID: ptr.Ptr("5")},
			kind: domain.KindInvalidArgument,
		},
		{
			name: "past schedule",
			req:  &Request{UserID: alice, BookingID: "1", Date: ptr.Ptr("2025-02-27"), Time: ptr.Ptr("2:00 PM")},
			kind: domain.KindPastSchedule,
		},
		{
			name: "empty services",
			req:  &Request{UserID: alice, BookingID: "1", ServiceIDs: json.RawMessage(`[]`)},
			kind: domain.KindInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := validateRequest(tt.req, time.UTC, now)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.Equal(t, tt.wantErr, err)
				return
			}
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}
