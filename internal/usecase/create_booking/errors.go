package create_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
)

// writeError переводит ошибку вставки в доменную.
// Нарушение уникального индекса означает, что слот заняли между проверкой и вставкой.
func writeError(err error, capsterID int64, start time.Time, loc *time.Location) *domain.Error {
	if errors.Is(err, bookingRepo.ErrSlotTaken) {
		display := start.In(loc).Format(domain.DisplayDateTime)
		return domain.NewError(domain.KindConflict, "capster is already booked at %s", display).
			WithDetail("capster_id", capsterID).
			WithDetail("schedule", display).
			WithCause(err)
	}
	if errors.Is(err, bookingRepo.ErrNoRowsReturned) {
		return domain.Persistence(err, "no data returned after insert")
	}
	return domain.Persistence(err, "failed to create booking")
}
