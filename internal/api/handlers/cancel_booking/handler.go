package cancel_booking

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-BarberBooking/internal/api/handlers"
	"github.com/m04kA/SMC-BarberBooking/internal/api/middleware"
	"github.com/m04kA/SMC-BarberBooking/internal/domain"
)

const msgMissingUserID = "missing user id"

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/bookings/{bookingId}
// Бронирование не удаляется, а помечается отменённым вместе со всеми слотами группы
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID, err := domain.ParseID("booking_id", mux.Vars(r)["bookingId"])
	if err != nil {
		h.logger.Warn("DELETE /bookings/{id} - Invalid booking ID: %v", err)
		handlers.RespondDomainError(w, err)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /bookings/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, userID)
	if err != nil {
		handlers.RespondFailure(w, h.logger, err, "DELETE /bookings/{id} - Failed to cancel booking: booking_id=%d, user_id=%s",
			bookingID, userID)
		return
	}

	h.logger.Info("DELETE /bookings/{id} - Booking cancelled successfully: booking_id=%d, group_id=%s, slots=%d",
		bookingID, result.GroupID, result.CancelledSlots)
	handlers.RespondJSON(w, http.StatusOK, result)
}
