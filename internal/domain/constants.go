package domain

import "time"

// Booking policy defaults
const (
	DefaultOpeningHour       = 9
	DefaultClosingHour       = 18
	DefaultMaxActiveBookings = 2
	DefaultTimezone          = "UTC"

	SlotDurationMinutes = 60
)

// Time format constants
const (
	DateFormat        = "2006-01-02"  // YYYY-MM-DD
	TimeFormat        = "3:04 PM"     // 12-hour clock with AM/PM marker
	SlotTimeFormat    = "15:04"       // HH:MM
	DisplayTimeFormat = "3:04 PM"
	DisplayDateTime   = "Mon, 02 Jan 2006 3:04 PM"
)

// Policy holds the tunable booking rules
type Policy struct {
	Location          *time.Location
	OpeningHour       int
	ClosingHour       int
	MaxActiveBookings int
}

// DefaultPolicy returns the policy used when nothing is configured
func DefaultPolicy() Policy {
	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		loc = time.UTC
	}
	return Policy{
		Location:          loc,
		OpeningHour:       DefaultOpeningHour,
		ClosingHour:       DefaultClosingHour,
		MaxActiveBookings: DefaultMaxActiveBookings,
	}
}

// StartOfDay returns midnight of t's day in the policy location
func (p Policy) StartOfDay(t time.Time) time.Time {
	local := t.In(p.Location)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, p.Location)
}
