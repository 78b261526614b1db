package update_booking

import (
	"context"
	"errors"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	bookingRepo "github.com/m04kA/SMC-BarberBooking/internal/infra/storage/booking"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
)

const operationUpdate = "update"

// UseCase use case для изменения бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	serviceRepo  ServiceRepository
	resolver     ReferenceResolver
	availability AvailabilityChecker
	txManager    TransactionManager
	metrics      Metrics
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	resolver ReferenceResolver,
	availability AvailabilityChecker,
	txManager TransactionManager,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		serviceRepo:  serviceRepo,
		resolver:     resolver,
		availability: availability,
		txManager:    txManager,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case изменения бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.ObserveBooking(operationUpdate, string(domain.KindOf(err)))
		return nil, err
	}
	uc.metrics.ObserveBooking(operationUpdate, "updated")
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("UpdateBooking: booking=%s, user=%s", req.BookingID, req.UserID)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	p, err := validateRequest(req, uc.policy.Location, now)
	if err != nil {
		uc.logger.Warn("UpdateBooking: validation failed: %v", err)
		return nil, err
	}

	var (
		result    *models.BookingResponse
		capsterID int64
		start     = now
	)

	// 3. Чтение, проверки и запись группы выполняются в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем бронирование пользователя
		booking, err := uc.bookingRepo.GetByIDAndUser(txCtx, p.bookingID, p.userID)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrBookingNotFound) {
				uc.logger.Warn("UpdateBooking: booking id=%d not found for user=%s", p.bookingID, p.userID)
				return errBookingNotFound(p.bookingID)
			}
			uc.logger.Error("UpdateBooking: failed to get booking id=%d: %v", p.bookingID, err)
			return domain.Persistence(err, "failed to load booking")
		}

		// 3.2. Отменённое бронирование не меняется
		if booking.IsCancelled() {
			uc.logger.Warn("UpdateBooking: booking id=%d is cancelled", p.bookingID)
			return errCancelled(p.bookingID)
		}

		// 3.3. Блокируем активные строки группы
		group, err := uc.bookingRepo.GetByGroup(txCtx, booking.GroupID, p.userID)
		if err != nil {
			uc.logger.Error("UpdateBooking: failed to get group=%s: %v", booking.GroupID, err)
			return domain.Persistence(err, "failed to load booking")
		}
		rows := activeRows(group)
		if len(rows) == 0 {
			return errCancelled(p.bookingID)
		}
		current := rows[0]

		// 3.4. Новый мастер должен работать в том же филиале
		capsterID = current.CapsterID
		var barber *domain.CapsterSummary
		if p.capsterID != nil && *p.capsterID != current.CapsterID {
			capster, err := uc.resolver.ResolveCapster(txCtx, *p.capsterID, current.BranchID)
			if err != nil {
				return err
			}
			capsterID = capster.ID
			barber = capster.Summary()
		}

		// 3.5. Новый набор услуг пересчитывает цену и длительность
		serviceIDs := current.ServiceIDs
		totalPrice, totalDuration := current.TotalPrice, current.TotalDuration
		if p.serviceIDs != nil {
			services, err := uc.resolver.ResolveServices(txCtx, current.BranchID, p.serviceIDs)
			if err != nil {
				return err
			}
			serviceIDs = make([]int64, len(services))
			for i, s := range services {
				serviceIDs[i] = s.ID
			}
			totalPrice, totalDuration = domain.ServiceTotals(services)
			if totalDuration <= 0 {
				return domain.InvalidArgument("selected services have no duration")
			}
		}

		// 3.6. Перераспределяем слоты
		start = ptr.Deref(p.schedule, current.Schedule)
		slots := domain.AllocateSlots(start, totalDuration)

		scheduleChanged := !start.Equal(current.Schedule)
		capsterChanged := capsterID != current.CapsterID
		slotsChanged := len(slots) != len(rows)

		if scheduleChanged || slotsChanged {
			if err := uc.policy.CheckWorkingHours(slots); err != nil {
				uc.logger.Warn("UpdateBooking: outside working hours: %v", err)
				return err
			}
		}

		// 3.7. Проверяем занятость против всех бронирований вне группы
		if scheduleChanged || capsterChanged || slotsChanged {
			if err := uc.availability.CheckSlots(txCtx, capsterID, slots, &current.GroupID); err != nil {
				return err
			}
		}

		// 3.8. Переписываем строки, добавляем недостающие, отменяем лишние
		desired := domain.SlotRows(domain.Booking{
			GroupID:       current.GroupID,
			UserID:        current.UserID,
			CapsterID:     capsterID,
			BranchID:      current.BranchID,
			ServiceIDs:    serviceIDs,
			Status:        domain.StatusConfirmed,
			TotalPrice:    totalPrice,
			TotalDuration: totalDuration,
		}, slots)

		for i := 0; i < len(rows) && i < len(desired); i++ {
			d := desired[i]
			if err := uc.bookingRepo.UpdateRow(txCtx, rows[i].ID, domain.BookingRowPatch{
				CapsterID:     d.CapsterID,
				ServiceIDs:    d.ServiceIDs,
				Schedule:      d.Schedule,
				BookingType:   d.BookingType,
				SlotSequence:  d.SlotSequence,
				TotalSlots:    d.TotalSlots,
				TotalPrice:    d.TotalPrice,
				TotalDuration: d.TotalDuration,
			}, now); err != nil {
				uc.logger.Error("UpdateBooking: failed to update row id=%d: %v", rows[i].ID, err)
				return err
			}
		}

		if len(desired) > len(rows) {
			if _, err := uc.bookingRepo.InsertMany(txCtx, desired[len(rows):]); err != nil {
				uc.logger.Error("UpdateBooking: failed to insert %d extra rows: %v", len(desired)-len(rows), err)
				return err
			}
		}

		if len(rows) > len(desired) {
			surplus := make([]int64, 0, len(rows)-len(desired))
			for _, row := range rows[len(desired):] {
				surplus = append(surplus, row.ID)
			}
			if _, err := uc.bookingRepo.CancelRows(txCtx, surplus, now); err != nil {
				uc.logger.Error("UpdateBooking: failed to cancel surplus rows %v: %v", surplus, err)
				return err
			}
		}

		// 3.9. Перечитываем группу для ответа
		updated, err := uc.bookingRepo.GetByGroup(txCtx, current.GroupID, p.userID)
		if err != nil {
			return err
		}
		services, err := uc.serviceRepo.GetServicesByIDs(txCtx, serviceIDs, nil)
		if err != nil {
			return err
		}
		result = models.FromDomainGroup(updated, models.IndexServices(services), barber, uc.policy.Location)

		uc.logger.Info("UpdateBooking: group=%s now has %d slots from %s",
			current.GroupID, len(desired), start.In(uc.policy.Location).Format(domain.DisplayDateTime))
		return nil
	})
	if err != nil {
		return nil, toDomainError(err, capsterID, start, uc.policy.Location)
	}

	uc.logger.Info("UpdateBooking: successfully updated booking id=%d", p.bookingID)
	return result, nil
}

func activeRows(rows []*domain.Booking) []*domain.Booking {
	active := make([]*domain.Booking, 0, len(rows))
	for _, row := range rows {
		if row.IsActive() {
			active = append(active, row)
		}
	}
	return active
}
