package get_available_slots

import (
	"net/http"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-BarberBooking/internal/usecase/get_available_slots"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/available-schedules
// Query params: capster_id, branch_id, date (YYYY-MM-DD), все обязательные
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := &getAvailableSlots.Request{
		CapsterID: query.Get("capster_id"),
		BranchID:  query.Get("branch_id"),
		Date:      query.Get("date"),
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err, "GET /available-schedules - Failed to get slots: capster_id=%s, branch_id=%s, date=%s",
			req.CapsterID, req.BranchID, req.Date)
		return
	}

	h.logger.Info("GET /available-schedules - Slots retrieved successfully: capster_id=%d, branch_id=%d, date=%s, slots_count=%d",
		result.CapsterID, result.BranchID, result.Date, len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, result)
}
