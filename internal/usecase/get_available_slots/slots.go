package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// freeSlots оставляет слоты дня, которые не заняты и начинаются строго после now
func freeSlots(daySlots, booked []time.Time, now time.Time, loc *time.Location) []Slot {
	taken := make(map[int64]struct{}, len(booked))
	for _, b := range booked {
		taken[b.Unix()] = struct{}{}
	}

	result := make([]Slot, 0, len(daySlots))
	for _, slot := range daySlots {
		if !slot.After(now) {
			continue
		}
		if _, ok := taken[slot.Unix()]; ok {
			continue
		}
		local := slot.In(loc)
		result = append(result, Slot{
			Time:    types.NewTimeString(local),
			Display: local.Format(domain.DisplayTimeFormat),
		})
	}
	return result
}
