package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// BookingType distinguishes one-slot bookings from slot sequences
type BookingType string

const (
	BookingTypeSingle BookingType = "single"
	BookingTypeMulti  BookingType = "multi"
)

// Booking is one persisted slot row. A booking request that spans several
// hours is stored as several rows sharing GroupID, numbered by SlotSequence.
type Booking struct {
	ID           int64
	GroupID      uuid.UUID
	UserID       uuid.UUID
	CapsterID    int64
	BranchID     int64
	ServiceIDs   []int64
	Schedule     time.Time
	Status       BookingStatus
	BookingType  BookingType
	SlotSequence int
	TotalSlots   int

	// Snapshot of the service set at creation time
	TotalPrice    decimal.Decimal
	TotalDuration int

	// Filled by reads that join the capsters relation
	Capster *CapsterSummary

	CancelledAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsMultiSlot returns true if the row is part of a slot sequence
func (b *Booking) IsMultiSlot() bool {
	return b.BookingType == BookingTypeMulti || b.TotalSlots > 1
}

// BookingTypeFor returns the booking type for the given number of slots
func BookingTypeFor(slots int) BookingType {
	if slots > 1 {
		return BookingTypeMulti
	}
	return BookingTypeSingle
}

// BookingRowPatch is the set of columns rewritten on a single row by an update
type BookingRowPatch struct {
	CapsterID     int64
	ServiceIDs    []int64
	Schedule      time.Time
	BookingType   BookingType
	SlotSequence  int
	TotalSlots    int
	TotalPrice    decimal.Decimal
	TotalDuration int
}

// SlotRows builds one row per slot from template. Rows share every field
// except Schedule and SlotSequence.
func SlotRows(template Booking, slots []time.Time) []*Booking {
	rows := make([]*Booking, len(slots))
	for i, slot := range slots {
		row := template
		row.ServiceIDs = append([]int64(nil), template.ServiceIDs...)
		row.Schedule = slot
		row.SlotSequence = i + 1
		row.TotalSlots = len(slots)
		row.BookingType = BookingTypeFor(len(slots))
		rows[i] = &row
	}
	return rows
}
