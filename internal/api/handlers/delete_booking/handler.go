package delete_booking

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations"
)

const msgBookingNotFound = "booking not found"

type Handler struct {
	reservationsService ReservationsService
	logger              Logger
}

func NewHandler(reservationsService ReservationsService, logger Logger) *Handler {
	return &Handler{
		reservationsService: reservationsService,
		logger:              logger,
	}
}

// Handle DELETE /api/v1/admin/bookings/{bookingId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	bookingID := mux.Vars(r)["bookingId"]

	err := h.reservationsService.Delete(r.Context(), bookingID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgBookingNotFound)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /admin/bookings - Failed to delete: booking_id=%s, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/bookings - Booking removed: booking_id=%s", bookingID)
	w.WriteHeader(http.StatusNoContent)
}
