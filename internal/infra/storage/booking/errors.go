package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrSlotTaken возвращается, когда ограничение (capster_id, schedule) отклонило запись
	ErrSlotTaken = errors.New("booking.repository: slot already taken")

	// ErrNoRowsReturned возвращается, когда вставка не вернула ни одной строки
	ErrNoRowsReturned = errors.New("booking.repository: insert returned no rows")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
