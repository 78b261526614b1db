package get_available_slots

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// UseCase use case для получения свободных слотов мастера на дату
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     ReferenceResolver
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver ReferenceResolver,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения свободных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: capster=%s, branch=%s, date=%s", req.CapsterID, req.BranchID, req.Date)

	// 1. Валидация входных данных
	v, err := validateRequest(req, uc.policy.Location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Мастер должен работать в указанном филиале
	capster, err := uc.resolver.ResolveCapster(ctx, v.capsterID, v.branchID)
	if err != nil {
		return nil, err
	}

	// 3. Генерируем слоты дня с открытия до закрытия
	daySlots := uc.policy.DaySlots(v.day)
	from := uc.policy.StartOfDay(v.day)
	to := from.AddDate(0, 0, 1)

	// 4. Получаем занятые слоты
	booked, err := uc.bookingRepo.GetBookedSchedules(ctx, v.capsterID, v.branchID, from, to)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get booked schedules: %v", err)
		return nil, domain.Persistence(err, "failed to load booked schedules")
	}

	// 5. Убираем занятые и прошедшие слоты
	slots := freeSlots(daySlots, booked, uc.timeProvider.Now(), uc.policy.Location)

	uc.logger.Info("GetAvailableSlots: %d of %d slots free for capster=%d on %s",
		len(slots), len(daySlots), v.capsterID, v.day.Format(domain.DateFormat))

	return &Response{
		Date:           v.day.Format(domain.DateFormat),
		CapsterID:      capster.ID,
		BranchID:       v.branchID,
		CapsterName:    capster.Name,
		AvailableSlots: slots,
	}, nil
}
