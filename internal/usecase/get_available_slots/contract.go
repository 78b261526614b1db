package get_available_slots

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	// GetBookedSchedules возвращает занятые слоты мастера в интервале [from, to)
	GetBookedSchedules(ctx context.Context, capsterID, branchID int64, from, to time.Time) ([]time.Time, error)
}

// ReferenceResolver проверяет, что мастер работает в филиале
type ReferenceResolver interface {
	ResolveCapster(ctx context.Context, capsterID, branchID int64) (*domain.Capster, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
