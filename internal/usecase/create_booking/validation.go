package create_booking

import (
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// validateRequest проверяет поля запроса и останавливается на первой ошибке
func validateRequest(req *Request, loc *time.Location, now time.Time) (*validated, error) {
	capsterID, err := domain.ParseID("capster_id", req.CapsterID)
	if err != nil {
		return nil, err
	}

	branchID, err := domain.ParseID("branch_id", req.BranchID)
	if err != nil {
		return nil, err
	}

	serviceIDs, err := domain.ParseServiceIDs(req.ServiceIDs)
	if err != nil {
		return nil, err
	}

	userID, err := domain.ParseUserID(req.UserID)
	if err != nil {
		return nil, err
	}

	schedule, err := domain.ParseSchedule(req.Date, req.Time, loc, now)
	if err != nil {
		return nil, err
	}

	return &validated{
		userID:     userID,
		capsterID:  capsterID,
		branchID:   branchID,
		serviceIDs: serviceIDs,
		schedule:   schedule,
	}, nil
}
