package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateSlots(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	tests := []struct {
		minutes int
		want    int
	}{
		{minutes: 1, want: 1},
		{minutes: 30, want: 1},
		{minutes: 60, want: 1},
		{minutes: 61, want: 2},
		{minutes: 75, want: 2},
		{minutes: 120, want: 2},
		{minutes: 181, want: 4},
	}

	for _, tt := range tests {
		slots := AllocateSlots(start, tt.minutes)
		require.Len(t, slots, tt.want, "minutes=%d", tt.minutes)
		assert.Equal(t, start, slots[0])
		for i := 1; i < len(slots); i++ {
			assert.Equal(t, time.Hour, slots[i].Sub(slots[i-1]))
		}
	}

	assert.Empty(t, AllocateSlots(start, 0))
}

func TestAllocateSlots_SeventyFiveMinutes(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	slots := AllocateSlots(start, 45+30)

	require.Len(t, slots, 2)
	assert.Equal(t, "14:00", slots[0].Format(SlotTimeFormat))
	assert.Equal(t, "15:00", slots[1].Format(SlotTimeFormat))
}

func TestPolicy_CheckWorkingHours(t *testing.T) {
	p := Policy{Location: time.UTC, OpeningHour: 9, ClosingHour: 18, MaxActiveBookings: 2}
	at := func(h int) time.Time { return time.Date(2025, 3, 1, h, 0, 0, 0, time.UTC) }

	assert.NoError(t, p.CheckWorkingHours([]time.Time{at(9)}))
	assert.NoError(t, p.CheckWorkingHours([]time.Time{at(17), at(18)}))
	assert.Equal(t, KindInvalidArgument, KindOf(p.CheckWorkingHours([]time.Time{at(8)})))
	assert.Equal(t, KindInvalidArgument, KindOf(p.CheckWorkingHours([]time.Time{at(18), at(19)})))
	assert.Error(t, p.CheckWorkingHours(nil))
}

func TestPolicy_DaySlots(t *testing.T) {
	p := Policy{Location: time.UTC, OpeningHour: 9, ClosingHour: 18}

	slots := p.DaySlots(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))

	require.Len(t, slots, 10)
	assert.Equal(t, "09:00", slots[0].Format(SlotTimeFormat))
	assert.Equal(t, "18:00", slots[9].Format(SlotTimeFormat))
}

func TestServiceTotals(t *testing.T) {
	services := []*Service{
		{ID: 10, Duration: 45, Price: mustDecimal(t, "50000")},
		{ID: 11, Duration: 30, Price: mustDecimal(t, "25000.50")},
	}

	price, duration := ServiceTotals(services)

	assert.Equal(t, 75, duration)
	assert.Equal(t, "75000.5", price.String())
}

func TestSlotRows(t *testing.T) {
	start := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)
	template := Booking{
		CapsterID:     5,
		BranchID:      1,
		ServiceIDs:    []int64{10, 11},
		Status:        StatusConfirmed,
		TotalDuration: 75,
	}

	rows := SlotRows(template, AllocateSlots(start, 75))

	require.Len(t, rows, 2)
	for i, row := range rows {
		assert.Equal(t, i+1, row.SlotSequence)
		assert.Equal(t, 2, row.TotalSlots)
		assert.Equal(t, BookingTypeMulti, row.BookingType)
		assert.Equal(t, int64(5), row.CapsterID)
		assert.Equal(t, 75, row.TotalDuration)
	}
	assert.Equal(t, start.Add(time.Hour), rows[1].Schedule)

	single := SlotRows(template, AllocateSlots(start, 30))
	require.Len(t, single, 1)
	assert.Equal(t, BookingTypeSingle, single[0].BookingType)
	assert.Equal(t, 1, single[0].SlotSequence)
}
