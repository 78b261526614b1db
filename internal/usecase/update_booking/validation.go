package update_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// validateRequest проверяет идентификаторы и переданные поля
func validateRequest(req *Request, loc *time.Location, now time.Time) (*patch, error) {
	userID, err := domain.ParseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	bookingID, err := domain.ParseID("booking_id", req.BookingID)
	if err != nil {
		return nil, err
	}

	p := &patch{userID: userID, bookingID: bookingID}

	if req.CapsterID == nil && len(req.ServiceIDs) == 0 && req.Date == nil && req.Time == nil {
		return nil, errEmptyPatch
	}

	if req.CapsterID != nil {
		id, err := domain.ParseID("capster_id", *req.CapsterID)
		if err != nil {
			return nil, err
		}
		p.capsterID = &id
	}

	if len(req.ServiceIDs) > 0 {
		ids, err := domain.ParseServiceIDs(req.ServiceIDs)
		if err != nil {
			return nil, err
		}
		p.serviceIDs = ids
	}

	if (req.Date == nil) != (req.Time == nil) {
		return nil, errDateTimePair
	}
	if req.Date != nil {
		schedule, err := domain.ParseSchedule(*req.Date, *req.Time, loc, now)
		if err != nil {
			return nil, err
		}
		p.schedule = &schedule
	}

	return p, nil
}
