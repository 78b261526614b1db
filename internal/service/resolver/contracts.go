package resolver

import (
	"context"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// CatalogRepository интерфейс справочников, используемых при проверке ссылок
type CatalogRepository interface {
	GetBranchByID(ctx context.Context, id int64) (*domain.Branch, error)
	GetCapsterInBranch(ctx context.Context, capsterID, branchID int64) (*domain.Capster, error)
	GetServicesByIDs(ctx context.Context, ids []int64, branchID *int64) ([]*domain.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
