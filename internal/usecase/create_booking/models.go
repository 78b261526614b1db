package create_booking

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Request сырые данные запроса на создание бронирования
type Request struct {
	UserID     string          // UUID пользователя из токена
	CapsterID  string          // ID мастера
	BranchID   string          // ID филиала
	ServiceIDs json.RawMessage // список ID услуг или строка с JSON списком
	Date       string          // "2025-03-01"
	Time       string          // "2:00 PM"
}

// validated проверенные и приведённые к типам поля запроса
type validated struct {
	userID     uuid.UUID
	capsterID  int64
	branchID   int64
	serviceIDs []int64
	schedule   time.Time
}
