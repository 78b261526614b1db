package create_booking

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/internal/service/bookings/models"
)

const operationCreate = "create"

// UseCase use case для создания бронирования
type UseCase struct {
	bookingRepo  BookingRepository
	resolver     ReferenceResolver
	availability AvailabilityChecker
	metrics      Metrics
	policy       domain.Policy
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	resolver ReferenceResolver,
	availability AvailabilityChecker,
	metrics Metrics,
	policy domain.Policy,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		resolver:     resolver,
		availability: availability,
		metrics:      metrics,
		policy:       policy,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case создания бронирования.
// Проверка занятости и вставка выполняются разными запросами без транзакции;
// одновременную вставку в тот же слот отклоняет уникальный индекс.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	resp, err := uc.execute(ctx, req)
	if err != nil {
		uc.metrics.ObserveBooking(operationCreate, string(domain.KindOf(err)))
		return nil, err
	}
	uc.metrics.ObserveBooking(operationCreate, "created")
	return resp, nil
}

func (uc *UseCase) execute(ctx context.Context, req *Request) (*models.BookingResponse, error) {
	uc.logger.Info("CreateBooking: user=%s, capster=%s, branch=%s, services=%s, date=%s, time=%s",
		req.UserID, req.CapsterID, req.BranchID, string(req.ServiceIDs), req.Date, req.Time)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных
	in, err := validateRequest(req, uc.policy.Location, now)
	if err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 3. Проверяем филиал, мастера и услуги
	refs, err := uc.resolver.Resolve(ctx, in.branchID, in.capsterID, in.serviceIDs)
	if err != nil {
		return nil, err
	}

	// 4. Считаем итоговую цену и длительность
	totalPrice, totalDuration := domain.ServiceTotals(refs.Services)
	if totalDuration <= 0 {
		uc.logger.Warn("CreateBooking: services %v have no duration", refs.ServiceIDs)
		return nil, domain.InvalidArgument("selected services have no duration")
	}

	// 5. Разбиваем длительность на часовые слоты
	slots := domain.AllocateSlots(in.schedule, totalDuration)
	if err := uc.policy.CheckWorkingHours(slots); err != nil {
		uc.logger.Warn("CreateBooking: outside working hours: %v", err)
		return nil, err
	}

	uc.logger.Info("CreateBooking: duration=%d min, slots=%d, price=%s", totalDuration, len(slots), totalPrice)

	// 6. Проверяем, что все слоты мастера свободны
	if err := uc.availability.CheckSlots(ctx, in.capsterID, slots, nil); err != nil {
		return nil, err
	}

	// 7. Проверяем лимит активных бронирований пользователя
	if err := uc.availability.CheckUserLimit(ctx, in.userID, now); err != nil {
		return nil, err
	}

	// 8. Записываем строки бронирования одной вставкой
	rows := domain.SlotRows(domain.Booking{
		GroupID:       uuid.New(),
		UserID:        in.userID,
		CapsterID:     in.capsterID,
		BranchID:      in.branchID,
		ServiceIDs:    refs.ServiceIDs,
		Status:        domain.StatusConfirmed,
		TotalPrice:    totalPrice,
		TotalDuration: totalDuration,
	}, slots)

	created, err := uc.bookingRepo.InsertMany(ctx, rows)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to insert %d rows: %v", len(rows), err)
		return nil, writeError(err, in.capsterID, in.schedule, uc.policy.Location)
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, group=%s, slots=%d",
		created[0].ID, created[0].GroupID, len(created))

	return models.FromDomainGroup(
		created,
		models.IndexServices(refs.Services),
		refs.Capster.Summary(),
		uc.policy.Location,
	), nil
}
