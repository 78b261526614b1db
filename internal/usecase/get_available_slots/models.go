package get_available_slots

import "github.com/m04kA/SMC-BarberBooking/pkg/types"

// Request модель запроса на получение свободных слотов
type Request struct {
	CapsterID string // ID мастера
	BranchID  string // ID филиала
	Date      string // "2025-03-01"
}

// Response модель ответа со списком свободных слотов
type Response struct {
	Date           string `json:"date"`
	CapsterID      int64  `json:"capster_id"`
	BranchID       int64  `json:"branch_id"`
	CapsterName    string `json:"capster_name"`
	AvailableSlots []Slot `json:"available_slots"`
}

// Slot свободный часовой слот
type Slot struct {
	Time    types.TimeString `json:"time"`    // "15:00"
	Display string           `json:"display"` // "3:00 PM"
}
