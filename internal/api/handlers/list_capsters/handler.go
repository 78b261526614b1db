package list_capsters

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

type Handler struct {
	service CatalogService
	logger  Logger
}

func NewHandler(service CatalogService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/capsters
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	branchID, err := domain.ParseID("branch_id", mux.Vars(r)["branchId"])
	if err != nil {
		h.logger.Warn("GET /branches/{id}/capsters - Invalid branch ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	result, err := h.service.ListCapsters(r.Context(), branchID)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err, "GET /branches/{id}/capsters - Failed to list capsters: branch_id=%d", branchID)
		return
	}

	h.logger.Info("GET /branches/{id}/capsters - Capsters retrieved successfully: branch_id=%d, count=%d", branchID, len(result))
	handlers.RespondJSON(w, http.StatusOK, result)
}
