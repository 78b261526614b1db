package create_booking

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/resolver"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	InsertMany(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
}

// ReferenceResolver проверяет филиал, мастера и услуги
type ReferenceResolver interface {
	Resolve(ctx context.Context, branchID, capsterID int64, serviceIDs []int64) (*resolver.References, error)
}

// AvailabilityChecker проверяет занятость слотов и лимит пользователя
type AvailabilityChecker interface {
	CheckSlots(ctx context.Context, capsterID int64, slots []time.Time, excludeGroup *uuid.UUID) error
	CheckUserLimit(ctx context.Context, userID uuid.UUID, now time.Time) error
}

// Metrics интерфейс для учёта исходов создания бронирований
type Metrics interface {
	ObserveBooking(operation, outcome string)
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
