package get_available_slots

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

// validated проверенные параметры запроса
type validated struct {
	capsterID int64
	branchID  int64
	day       time.Time
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request, loc *time.Location) (*validated, error) {
	if strings.TrimSpace(req.CapsterID) == "" {
		return nil, errMissingParam("capster_id")
	}
	if strings.TrimSpace(req.BranchID) == "" {
		return nil, errMissingParam("branch_id")
	}
	if strings.TrimSpace(req.Date) == "" {
		return nil, errMissingParam("date")
	}

	capsterID, err := domain.ParseID("capster_id", req.CapsterID)
	if err != nil {
		return nil, err
	}

	branchID, err := domain.ParseID("branch_id", req.BranchID)
	if err != nil {
		return nil, err
	}

	day, err := domain.ParseDate(req.Date, loc)
	if err != nil {
		return nil, err
	}

	return &validated{capsterID: capsterID, branchID: branchID, day: day}, nil
}
