package create_booking

import (
	"encoding/json"

	"github.com/google/uuid"

	createBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// CreateBookingRequest HTTP request model.
// capster_id и branch_id принимаются числом или строкой, service_ids списком или строкой с JSON списком
type CreateBookingRequest struct {
	CapsterID  types.Scalar    `json:"capster_id"`
	BranchID   types.Scalar    `json:"branch_id"`
	ServiceIDs json.RawMessage `json:"service_ids"`
	Date       string          `json:"date"` // "2025-03-01"
	Time       string          `json:"time"` // "2:00 PM"
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID uuid.UUID) *createBooking.Request {
	return &createBooking.Request{
		UserID:     userID.String(),
		CapsterID:  r.CapsterID.String(),
		BranchID:   r.BranchID.String(),
		ServiceIDs: r.ServiceIDs,
		Date:       r.Date,
		Time:       r.Time,
	}
}
