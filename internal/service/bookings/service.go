package bookings

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

const operationCancel = "cancel"

// Service чтение и отмена бронирований.
// Все запросы ограничены бронированиями самого пользователя.
type Service struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	metrics      Metrics
	timeProvider TimeProvider
	location     *time.Location
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	metrics Metrics,
	timeProvider TimeProvider,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		metrics:      metrics,
		timeProvider: timeProvider,
		location:     location,
		logger:       logger,
	}
}

// GetBooking получает бронирование по ID любой строки его группы
func (s *Service) GetBooking(ctx context.Context, bookingID int64, userID uuid.UUID) (*models.BookingResponse, error) {
	s.logger.Info("GetBooking: fetching booking id=%d for user=%s", bookingID, userID)

	rows, err := s.loadGroup(ctx, "GetBooking", bookingID, userID)
	if err != nil {
		return nil, err
	}

	services, err := s.loadServices(ctx, "GetBooking", rows)
	if err != nil {
		return nil, err
	}

	s.logger.Info("GetBooking: successfully fetched booking id=%d (%d slots)", bookingID, len(rows))
	return models.FromDomainGroup(rows, services, nil, s.location), nil
}

// GetUserBookings получает все бронирования пользователя по возрастанию времени
func (s *Service) GetUserBookings(ctx context.Context, userID uuid.UUID) ([]*models.BookingResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%s", userID)

	rows, err := s.bookingRepo.GetByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%s: %v", userID, err)
		return nil, domain.Persistence(err, "failed to load bookings")
	}

	services, err := s.loadServices(ctx, "GetUserBookings", rows)
	if err != nil {
		return nil, err
	}

	groups := models.GroupRows(rows)
	result := make([]*models.BookingResponse, 0, len(groups))
	for _, group := range groups {
		if view := models.FromDomainGroup(group, services, nil, s.location); view != nil {
			result = append(result, view)
		}
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%s", len(result), userID)
	return result, nil
}

// Cancel переводит все слоты бронирования в статус cancelled.
// Строки остаются в БД, но перестают занимать слоты.
func (s *Service) Cancel(ctx context.Context, bookingID int64, userID uuid.UUID) (*models.CancelResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d for user=%s", bookingID, userID)

	// 1. Получаем бронирование пользователя
	booking, err := s.loadRow(ctx, "Cancel", bookingID, userID)
	if err != nil {
		return nil, err
	}

	// 2. Повторная отмена запрещена
	if booking.IsCancelled() {
		s.logger.Warn("Cancel: booking id=%d is already cancelled", bookingID)
		s.metrics.ObserveBooking(operationCancel, string(domain.KindInvalidArgument))
		return nil, errAlreadyCancelled(bookingID)
	}

	// 3. Отменяем всю группу
	now := s.timeProvider.Now()
	affected, err := s.bookingRepo.CancelGroup(ctx, booking.GroupID, userID, now)
	if err != nil {
		s.logger.Error("Cancel: failed to cancel group=%s: %v", booking.GroupID, err)
		s.metrics.ObserveBooking(operationCancel, string(domain.KindPersistence))
		return nil, domain.Persistence(err, "failed to cancel booking")
	}
	if affected == 0 {
		s.logger.Warn("Cancel: booking id=%d was cancelled concurrently", bookingID)
		s.metrics.ObserveBooking(operationCancel, string(domain.KindInvalidArgument))
		return nil, errAlreadyCancelled(bookingID)
	}

	s.metrics.ObserveBooking(operationCancel, "cancelled")
	s.logger.Info("Cancel: successfully cancelled booking id=%d, group=%s, slots=%d", bookingID, booking.GroupID, affected)

	return &models.CancelResponse{
		Message:        "Booking cancelled successfully",
		BookingID:      bookingID,
		GroupID:        booking.GroupID.String(),
		CancelledSlots: affected,
		CancelledAt:    now,
	}, nil
}

func (s *Service) loadRow(ctx context.Context, op string, bookingID int64, userID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByIDAndUser(ctx, bookingID, userID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("%s: booking id=%d not found for user=%s", op, bookingID, userID)
			return nil, errBookingNotFound(bookingID)
		}
		s.logger.Error("%s: repository error for booking id=%d: %v", op, bookingID, err)
		return nil, domain.Persistence(err, "failed to load booking")
	}
	return booking, nil
}

func (s *Service) loadGroup(ctx context.Context, op string, bookingID int64, userID uuid.UUID) ([]*domain.Booking, error) {
	booking, err := s.loadRow(ctx, op, bookingID, userID)
	if err != nil {
		return nil, err
	}

	rows, err := s.bookingRepo.GetByGroup(ctx, booking.GroupID, userID)
	if err != nil {
		s.logger.Error("%s: failed to load group=%s: %v", op, booking.GroupID, err)
		return nil, domain.Persistence(err, "failed to load booking")
	}
	if len(rows) == 0 {
		rows = []*domain.Booking{booking}
	}
	return rows, nil
}

// loadServices получает услуги всех строк одним запросом
func (s *Service) loadServices(ctx context.Context, op string, rows []*domain.Booking) (map[int64]*domain.Service, error) {
	ids := models.ServiceIDsOf(rows)
	if len(ids) == 0 {
		return map[int64]*domain.Service{}, nil
	}

	services, err := s.serviceRepo.GetServicesByIDs(ctx, ids, nil)
	if err != nil {
		s.logger.Error("%s: failed to load services %v: %v", op, ids, err)
		return nil, domain.Persistence(err, "failed to load services")
	}
	return models.IndexServices(services), nil
}
