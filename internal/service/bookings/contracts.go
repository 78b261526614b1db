package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Booking, error)
	GetByGroup(ctx context.Context, groupID, userID uuid.UUID) ([]*domain.Booking, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error)
	CancelGroup(ctx context.Context, groupID, userID uuid.UUID, at time.Time) (int64, error)
}

// ServiceRepository интерфейс для пакетного получения услуг
type ServiceRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64, branchID *int64) ([]*domain.Service, error)
}

// Metrics интерфейс для учёта исходов операций с бронированиями
type Metrics interface {
	ObserveBooking(operation, outcome string)
}

// TimeProvider интерфейс для получения текущего времени
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
