package update_booking

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
	InsertMany(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error)
	UpdateRow(ctx context.Context, id int64, patch domain.BookingRowPatch, now time.Time) error
	CancelRows(ctx context.Context, ids []int64, at time.Time) (int64, error)
}

// ServiceRepository интерфейс для получения услуг при сборке ответа
type ServiceRepository interface {
	GetServicesByIDs(ctx context.Context, ids []int64, branchID *int64) ([]*domain.Service, error)
}

// ReferenceResolver проверяет нового мастера и новый набор услуг
type ReferenceResolver interface {
	ResolveCapster(ctx context.Context, capsterID, branchID int64) (*domain.Capster, error)
	ResolveServices(ctx context.Context, branchID int64, serviceIDs []int64) ([]*domain.Service, error)
}

// AvailabilityChecker проверяет занятость слотов
type AvailabilityChecker interface {
	CheckSlots(ctx context.Context, capsterID int64, slots []time.Time, excludeGroup *uuid.UUID) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс для учёта исходов изменения бронирований
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
