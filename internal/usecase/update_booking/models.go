package update_booking

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request запрос на изменение бронирования.
// Непереданные поля (nil) не меняются; Date и Time передаются вместе.
type Request struct {
	UserID     string          // UUID пользователя из токена
	BookingID  string          // ID любой строки бронирования
	CapsterID  *string         // новый мастер того же филиала
	ServiceIDs json.RawMessage // новый набор услуг
	Date       *string         // "2025-03-01"
	Time       *string         // "2:00 PM"
}

// patch проверенные изменения
type patch struct {
	userID     uuid.UUID
	bookingID  int64
	capsterID  *int64
	serviceIDs []int64
	schedule   *time.Time
}
