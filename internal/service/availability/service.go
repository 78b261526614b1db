package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// Service проверяет свободность слотов мастера и лимит бронирований пользователя.
// Проверка не резервирует слоты: между проверкой и вставкой остаётся окно,
// которое закрывает уникальный индекс в БД.
type Service struct {
	bookingRepo BookingRepository
	policy      domain.Policy
	logger      Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(bookingRepo BookingRepository, policy domain.Policy, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		policy:      policy,
		logger:      logger,
	}
}

// CheckSlots проверяет каждый слот отдельно и останавливается на первом занятом.
// excludeGroup исключает строки обновляемого бронирования.
func (s *Service) CheckSlots(ctx context.Context, capsterID int64, slots []time.Time, excludeGroup *uuid.UUID) error {
	for _, slot := range slots {
		count, err := s.bookingRepo.CountActiveAt(ctx, capsterID, slot, excludeGroup)
		if err != nil {
			s.logger.Error("CheckSlots: failed to check capster=%d at %s: %v", capsterID, slot.Format(time.RFC3339), err)
			return domain.Persistence(err, "failed to check slot availability")
		}
		if count > 0 {
			display := slot.In(s.policy.Location).Format(domain.DisplayDateTime)
			s.logger.Warn("CheckSlots: capster=%d already booked at %s", capsterID, display)
			return domain.NewError(domain.KindConflict, "capster is already booked at %s", display).
				WithDetail("capster_id", capsterID).
				WithDetail("schedule", display)
		}
	}
	return nil
}

// CheckUserLimit отклоняет бронирование, если у пользователя уже есть
// MaxActiveBookings активных бронирований на сегодня или позже
func (s *Service) CheckUserLimit(ctx context.Context, userID uuid.UUID, now time.Time) error {
	since := s.policy.StartOfDay(now)

	count, err := s.bookingRepo.CountActiveGroupsSince(ctx, userID, since)
	if err != nil {
		s.logger.Error("CheckUserLimit: failed to count bookings for user=%s: %v", userID, err)
		return domain.Persistence(err, "failed to count user bookings")
	}

	if count >= s.policy.MaxActiveBookings {
		s.logger.Warn("CheckUserLimit: user=%s has %d active bookings, limit=%d", userID, count, s.policy.MaxActiveBookings)
		return domain.NewError(domain.KindLimitExceeded, "maximum booking limit reached (%d bookings per user)", s.policy.MaxActiveBookings).
			WithDetail("active_bookings", count).
			WithDetail("limit", s.policy.MaxActiveBookings)
	}

	return nil
}
