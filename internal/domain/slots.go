package domain

import "time"

// AllocateSlots expands a booking starting at start and lasting totalMinutes
// into ceil(totalMinutes/60) consecutive hourly slots.
func AllocateSlots(start time.Time, totalMinutes int) []time.Time {
	if totalMinutes <= 0 {
		return nil
	}
	count := (totalMinutes + SlotDurationMinutes - 1) / SlotDurationMinutes
	slots := make([]time.Time, count)
	for i := range slots {
		slots[i] = start.Add(time.Duration(i*SlotDurationMinutes) * time.Minute)
	}
	return slots
}

// CheckWorkingHours verifies the slot sequence fits the opening hours.
// The last slot may start at the closing hour at the latest.
func (p Policy) CheckWorkingHours(slots []time.Time) error {
	if len(slots) == 0 {
		return InvalidArgument("booking has no slots")
	}
	first := slots[0].In(p.Location)
	last := slots[len(slots)-1].In(p.Location)

	opening := time.Date(first.Year(), first.Month(), first.Day(), p.OpeningHour, 0, 0, 0, p.Location)
	closing := time.Date(first.Year(), first.Month(), first.Day(), p.ClosingHour, 0, 0, 0, p.Location)

	if first.Before(opening) || last.After(closing) {
		return InvalidArgument("booking must fit between %02d:00 and %02d:00", p.OpeningHour, p.ClosingHour).
			WithDetail("start", first.Format(DisplayTimeFormat)).
			WithDetail("end", last.Add(SlotDurationMinutes*time.Minute).Format(DisplayTimeFormat))
	}
	return nil
}

// DaySlots returns the hourly slot starts of day from opening to closing inclusive
func (p Policy) DaySlots(day time.Time) []time.Time {
	local := day.In(p.Location)
	slots := make([]time.Time, 0, p.ClosingHour-p.OpeningHour+1)
	for h := p.OpeningHour; h <= p.ClosingHour; h++ {
		slots = append(slots, time.Date(local.Year(), local.Month(), local.Day(), h, 0, 0, 0, p.Location))
	}
	return slots
}
