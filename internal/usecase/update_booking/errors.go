package update_booking

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
)

var (
	// errEmptyPatch возвращается, когда в запросе нет ни одного изменяемого поля
	errEmptyPatch = domain.InvalidArgument("nothing to update: provide capster_id, service_ids or date and time")

	// errDateTimePair возвращается, когда передана только дата или только время
	errDateTimePair = domain.InvalidArgument("date and time must be provided together")
)

func errBookingNotFound(id int64) *domain.Error {
	return domain.NotFound("booking not found").WithDetail("booking_id", id)
}

func errCancelled(id int64) *domain.Error {
	return domain.InvalidArgument("cancelled booking cannot be updated").WithDetail("booking_id", id)
}

// toDomainError переводит ошибки транзакции в доменные
func toDomainError(err error, capsterID int64, start time.Time, loc *time.Location) error {
	if _, ok := domain.AsError(err); ok {
		return err
	}
	if bookingRepo.IsSlotTaken(err) {
		display := start.In(loc).Format(domain.DisplayDateTime)
		return domain.NewError(domain.KindConflict, "new schedule conflicts with existing booking at %s", display).
			WithDetail("capster_id", capsterID).
			WithDetail("schedule", display).
			WithCause(err)
	}
	if errors.Is(err, bookingRepo.ErrBookingNotFound) {
		return domain.NotFound("booking not found").WithCause(err)
	}
	return domain.Persistence(err, "failed to update booking")
}
