package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

const (
	uniqueViolation    = "23505"
	exclusionViolation = "23P01"
)

var bookingColumns = []string{
	"b.id",
	"b.group_id",
	"b.user_id",
	"b.capster_id",
	"b.branch_id",
	"b.service_ids",
	"b.schedule",
	"b.status",
	"b.booking_type",
	"b.slot_sequence",
	"b.total_slots",
	"b.total_price",
	"b.total_duration",
	"b.cancelled_at",
	"b.created_at",
	"b.updated_at",
	"c.name",
	"c.image",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// InsertMany вставляет все строки одного бронирования одним запросом.
// Запрос либо возвращает все строки, либо ошибку для всей пачки.
func (r *Repository) InsertMany(ctx context.Context, bookings []*domain.Booking) ([]*domain.Booking, error) {
	if len(bookings) == 0 {
		return nil, fmt.Errorf("%w: InsertMany - empty batch", ErrNoRowsReturned)
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Insert("bookings").
		Columns(
			"group_id",
			"user_id",
			"capster_id",
			"branch_id",
			"service_ids",
			"schedule",
			"status",
			"booking_type",
			"slot_sequence",
			"total_slots",
			"total_price",
			"total_duration",
		)

	for _, b := range bookings {
		builder = builder.Values(
			b.GroupID,
			b.UserID,
			b.CapsterID,
			b.BranchID,
			pq.Array(b.ServiceIDs),
			b.Schedule,
			b.Status,
			b.BookingType,
			b.SlotSequence,
			b.TotalSlots,
			b.TotalPrice,
			b.TotalDuration,
		)
	}

	query, args, err := builder.Suffix("RETURNING id, created_at, updated_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: InsertMany - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classifyWriteError("InsertMany - execute insert", err)
	}
	defer rows.Close()

	i := 0
	for rows.Next() {
		if i >= len(bookings) {
			break
		}
		if err := rows.Scan(&bookings[i].ID, &bookings[i].CreatedAt, &bookings[i].UpdatedAt); err != nil {
			return nil, fmt.Errorf("%w: InsertMany - scan returning: %v", ErrScanRow, err)
		}
		i++
	}
	if err := rows.Err(); err != nil {
		return nil, classifyWriteError("InsertMany - iterate returning", err)
	}
	if i == 0 {
		return nil, ErrNoRowsReturned
	}
	if i != len(bookings) {
		return nil, fmt.Errorf("%w: InsertMany - got %d of %d rows", ErrNoRowsReturned, i, len(bookings))
	}

	return bookings, nil
}

// GetByIDAndUser получает строку бронирования по ID в пределах пользователя
func (r *Repository) GetByIDAndUser(ctx context.Context, id int64, userID uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id, "b.user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndUser - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByIDAndUser - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByGroup получает все строки группы в порядке slot_sequence
func (r *Repository) GetByGroup(ctx context.Context, groupID, userID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.group_id": groupID, "b.user_id": userID}).
		OrderBy("b.slot_sequence ASC")

	// Внутри транзакции блокируем строки группы до конца обновления
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroup - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGroup - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUser получает все строки бронирований пользователя по возрастанию schedule
func (r *Repository) GetByUser(ctx context.Context, userID uuid.UUID) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.user_id": userID}).
		OrderBy("b.schedule ASC", "b.slot_sequence ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUser - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// CountActiveAt считает неотменённые бронирования мастера на указанное время.
// Строки группы excludeGroup не учитываются (используется при обновлении).
func (r *Repository) CountActiveAt(ctx context.Context, capsterID int64, schedule time.Time, excludeGroup *uuid.UUID) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("COUNT(*)").
		From("bookings").
		Where(squirrel.Eq{"capster_id": capsterID, "schedule": schedule}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})

	if excludeGroup != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"group_id": *excludeGroup})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveAt - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountActiveGroupsSince считает активные бронирования пользователя начиная с since.
// Многослотовое бронирование считается один раз.
func (r *Repository) CountActiveGroupsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(DISTINCT group_id)").
		From("bookings").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"schedule": since}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CountActiveGroupsSince - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountActiveGroupsSince - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// GetBookedSchedules возвращает занятые слоты мастера филиала в интервале [from, to)
func (r *Repository) GetBookedSchedules(ctx context.Context, capsterID, branchID int64, from, to time.Time) ([]time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("schedule").
		From("bookings").
		Where(squirrel.Eq{"capster_id": capsterID, "branch_id": branchID}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		Where(squirrel.GtOrEq{"schedule": from}).
		Where(squirrel.Lt{"schedule": to}).
		OrderBy("schedule ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSchedules - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetBookedSchedules - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	schedules := make([]time.Time, 0)
	for rows.Next() {
		var schedule time.Time
		if err := rows.Scan(&schedule); err != nil {
			return nil, fmt.Errorf("%w: GetBookedSchedules - scan schedule: %v", ErrScanRow, err)
		}
		schedules = append(schedules, schedule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetBookedSchedules - iterate rows: %v", ErrExecQuery, err)
	}

	return schedules, nil
}

// UpdateRow переписывает одну неотменённую строку бронирования
func (r *Repository) UpdateRow(ctx context.Context, id int64, patch domain.BookingRowPatch, now time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("capster_id", patch.CapsterID).
		Set("service_ids", pq.Array(patch.ServiceIDs)).
		Set("schedule", patch.Schedule).
		Set("booking_type", patch.BookingType).
		Set("slot_sequence", patch.SlotSequence).
		Set("total_slots", patch.TotalSlots).
		Set("total_price", patch.TotalPrice).
		Set("total_duration", patch.TotalDuration).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.NotEq{"status": domain.StatusCancelled}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateRow - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return classifyWriteError("UpdateRow - execute update", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateRow - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// CancelGroup помечает все активные строки группы как отменённые.
// Возвращает количество отменённых строк.
func (r *Repository) CancelGroup(ctx context.Context, groupID, userID uuid.UUID, at time.Time) (int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelBuilder(at).
		Where(squirrel.Eq{"group_id": groupID, "user_id": userID}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelGroup - build update query: %v", ErrBuildQuery, err)
	}

	return execCancel(ctx, executor, "CancelGroup", query, args)
}

// CancelRows отменяет отдельные строки (лишние слоты после сокращения бронирования)
func (r *Repository) CancelRows(ctx context.Context, ids []int64, at time.Time) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := cancelBuilder(at).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: CancelRows - build update query: %v", ErrBuildQuery, err)
	}

	return execCancel(ctx, executor, "CancelRows", query, args)
}

func cancelBuilder(at time.Time) squirrel.UpdateBuilder {
	return psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", at).
		Set("updated_at", at).
		Where(squirrel.NotEq{"status": domain.StatusCancelled})
}

func execCancel(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) (int64, error) {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, op, err)
	}

	return affected, nil
}

func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(bookingColumns...).
		From("bookings b").
		LeftJoin("capsters c ON c.id = b.capster_id")
}

// IsSlotTaken сообщает, что запись отклонена ограничением уникальности слота.
// Внутри транзакции ограничение проверяется при COMMIT, поэтому ошибка может
// прийти от менеджера транзакций, а не от репозитория.
func IsSlotTaken(err error) bool {
	if errors.Is(err, ErrSlotTaken) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation || pqErr.Code == exclusionViolation
	}
	return false
}

// classifyWriteError отделяет нарушение уникальности слота от прочих ошибок
func classifyWriteError(op string, err error) error {
	if IsSlotTaken(err) {
		return fmt.Errorf("%w: %s: %v", ErrSlotTaken, op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var (
		booking     domain.Booking
		serviceIDs  pq.Int64Array
		cancelledAt sql.NullTime
		capsterName sql.NullString
		image       sql.NullString
	)

	err := row.Scan(
		&booking.ID,
		&booking.GroupID,
		&booking.UserID,
		&booking.CapsterID,
		&booking.BranchID,
		&serviceIDs,
		&booking.Schedule,
		&booking.Status,
		&booking.BookingType,
		&booking.SlotSequence,
		&booking.TotalSlots,
		&booking.TotalPrice,
		&booking.TotalDuration,
		&cancelledAt,
		&booking.CreatedAt,
		&booking.UpdatedAt,
		&capsterName,
		&image,
	)
	if err != nil {
		return nil, err
	}

	booking.ServiceIDs = []int64(serviceIDs)
	if cancelledAt.Valid {
		at := cancelledAt.Time
		booking.CancelledAt = &at
	}
	if capsterName.Valid {
		booking.Capster = &domain.CapsterSummary{ID: booking.CapsterID, Name: capsterName.String}
		if image.Valid {
			img := image.String
			booking.Capster.Image = &img
		}
	}

	return &booking, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan booking: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - iterate rows: %v", ErrExecQuery, err)
	}
	return bookings, nil
}
