package availability

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository интерфейс репозитория бронирований для проверки занятости
type BookingRepository interface {
	CountActiveAt(ctx context.Context, capsterID int64, schedule time.Time, excludeGroup *uuid.UUID) (int, error)
	CountActiveGroupsSince(ctx context.Context, userID uuid.UUID, since time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
