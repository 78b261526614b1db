package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
	"github.com/m04kA/SMC-BarberBooking/pkg/dbmetrics"
	"github.com/m04kA/SMC-BarberBooking/pkg/psqlbuilder"
)

// Repository справочники: филиалы, мастера, услуги
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория справочников
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// ListBranches возвращает все филиалы, отсортированные по названию
func (r *Repository) ListBranches(ctx context.Context) ([]*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("branches").
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranches - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListBranches - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	branches := make([]*domain.Branch, 0)
	for rows.Next() {
		var b domain.Branch
		if err := rows.Scan(&b.ID, &b.Name); err != nil {
			return nil, fmt.Errorf("%w: ListBranches - scan branch: %v", ErrScanRow, err)
		}
		branches = append(branches, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListBranches - iterate rows: %v", ErrExecQuery, err)
	}

	return branches, nil
}

// GetBranchByID получает филиал по ID
func (r *Repository) GetBranchByID(ctx context.Context, id int64) (*domain.Branch, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name").
		From("branches").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranchByID - build select query: %v", ErrBuildQuery, err)
	}

	var b domain.Branch
	err = executor.QueryRowContext(ctx, query, args...).Scan(&b.ID, &b.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBranchNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetBranchByID - scan branch: %v", ErrScanRow, err)
	}

	return &b, nil
}

// ListCapstersByBranch возвращает мастеров филиала, отсортированных по имени
func (r *Repository) ListCapstersByBranch(ctx context.Context, branchID int64) ([]*domain.Capster, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "image", "branch_id").
		From("capsters").
		Where(squirrel.Eq{"branch_id": branchID}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListCapstersByBranch - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListCapstersByBranch - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	capsters := make([]*domain.Capster, 0)
	for rows.Next() {
		c, err := scanCapster(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListCapstersByBranch - scan capster: %v", ErrScanRow, err)
		}
		capsters = append(capsters, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListCapstersByBranch - iterate rows: %v", ErrExecQuery, err)
	}

	return capsters, nil
}

// GetCapsterInBranch получает мастера только если он работает в указанном филиале
func (r *Repository) GetCapsterInBranch(ctx context.Context, capsterID, branchID int64) (*domain.Capster, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "image", "branch_id").
		From("capsters").
		Where(squirrel.Eq{"id": capsterID, "branch_id": branchID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapsterInBranch - build select query: %v", ErrBuildQuery, err)
	}

	c, err := scanCapster(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCapsterNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetCapsterInBranch - scan capster: %v", ErrScanRow, err)
	}

	return c, nil
}

// ListServicesByBranch возвращает услуги филиала и общие услуги (branch_id IS NULL)
func (r *Repository) ListServicesByBranch(ctx context.Context, branchID int64) ([]*domain.Service, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "name", "price", "duration", "branch_id").
		From("services").
		Where(squirrel.Or{
			squirrel.Eq{"branch_id": branchID},
			squirrel.Eq{"branch_id": nil},
		}).
		OrderBy("name ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListServicesByBranch - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryServices(ctx, executor, "ListServicesByBranch", query, args)
}

// GetServicesByIDs получает услуги по списку ID одним запросом.
// Если branchID задан, услуги других филиалов не возвращаются.
func (r *Repository) GetServicesByIDs(ctx context.Context, ids []int64, branchID *int64) ([]*domain.Service, error) {
	if len(ids) == 0 {
		return []*domain.Service{}, nil
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id", "name", "price", "duration", "branch_id").
		From("services").
		Where(squirrel.Eq{"id": ids})

	if branchID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Or{
			squirrel.Eq{"branch_id": *branchID},
			squirrel.Eq{"branch_id": nil},
		})
	}

	query, args, err := selectBuilder.OrderBy("id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetServicesByIDs - build select query: %v", ErrBuildQuery, err)
	}

	return r.queryServices(ctx, executor, "GetServicesByIDs", query, args)
}

func (r *Repository) queryServices(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) ([]*domain.Service, error) {
	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	services := make([]*domain.Service, 0)
	for rows.Next() {
		var (
			s        domain.Service
			branchID sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.Name, &s.Price, &s.Duration, &branchID); err != nil {
			return nil, fmt.Errorf("%w: %s - scan service: %v", ErrScanRow, op, err)
		}
		if branchID.Valid {
			id := branchID.Int64
			s.BranchID = &id
		}
		services = append(services, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - iterate rows: %v", ErrExecQuery, op, err)
	}

	return services, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCapster(row rowScanner) (*domain.Capster, error) {
	var (
		c     domain.Capster
		image sql.NullString
	)
	if err := row.Scan(&c.ID, &c.Name, &image, &c.BranchID); err != nil {
		return nil, err
	}
	if image.Valid {
		img := image.String
		c.Image = &img
	}
	return &c, nil
}
