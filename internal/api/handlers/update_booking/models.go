package update_booking

import (
	"encoding/json"

	"github.com/google/uuid"

	updateBooking "github.com/m04kA/SMC-BarberBooking/internal/usecase/update_booking"
	"github.com/m04kA/SMC-BarberBooking/pkg/ptr"
	"github.com/m04kA/SMC-BarberBooking/pkg/types"
)

// UpdateBookingRequest HTTP request model; отсутствующие поля не меняются
type UpdateBookingRequest struct {
	CapsterID  *types.Scalar   `json:"capster_id,omitempty"`
	ServiceIDs json.RawMessage `json:"service_ids,omitempty"`
	Date       *string         `json:"date,omitempty"`
	Time       *string         `json:"time,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(userID uuid.UUID, bookingID string) *updateBooking.Request {
	req := &updateBooking.Request{
		UserID:    userID.String(),
		BookingID: bookingID,
		Date:      r.Date,
		Time:      r.Time,
	}
	if r.CapsterID != nil && !r.CapsterID.IsEmpty() {
		req.CapsterID = ptr.Ptr(r.CapsterID.String())
	}
	if len(r.ServiceIDs) > 0 && string(r.ServiceIDs) != "null" {
		req.ServiceIDs = r.ServiceIDs
	}
	return req
}
