package bookings

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// errBookingNotFound бронирование не найдено среди бронирований пользователя
func errBookingNotFound(id int64) *domain.Error {
	return domain.NotFound("booking not found").WithDetail("booking_id", id)
}

// errAlreadyCancelled повторная отмена или изменение отменённого бронирования
func errAlreadyCancelled(id int64) *domain.Error {
	return domain.InvalidArgument("booking is already cancelled").WithDetail("booking_id", id)
}
