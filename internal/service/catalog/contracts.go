package catalog

import (
	"context"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// CatalogRepository интерфейс репозитория справочников
type CatalogRepository interface {
	ListBranches(ctx context.Context) ([]*domain.Branch, error)
	GetBranchByID(ctx context.Context, id int64) (*domain.Branch, error)
	ListCapstersByBranch(ctx context.Context, branchID int64) ([]*domain.Capster, error)
	ListServicesByBranch(ctx context.Context, branchID int64) ([]*domain.Service, error)
}

// Cache интерфейс кэша справочников
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// Metrics интерфейс для учёта обращений к кэшу
type Metrics interface {
	ObserveCache(result string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
