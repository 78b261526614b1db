package get_available_slots

import "github.com/m04kA/SMC-BarberBooking/internal/domain"

// errMissingParam возвращается, когда не передан обязательный параметр запроса
func errMissingParam(name string) *domain.Error {
	return domain.InvalidArgument("%s is required", name).WithDetail("field", name)
}
