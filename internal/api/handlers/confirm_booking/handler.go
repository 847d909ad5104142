package confirm_booking

import (
	"errors"
	"net/http"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	confirmBooking "github.com/SyahmiDin/app-raya-studio/internal/usecase/confirm_booking"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgSessionNotFound     = "payment session not found"
	msgPaymentNotVerified  = "payment is not completed yet"
	msgReservationExpired  = "your reservation expired before payment completed, please contact the studio for a refund"
	msgMissingSessionID    = "sessionId is required"
)

type Handler struct {
	useCase ConfirmBookingUseCase
	logger  Logger
}

func NewHandler(useCase ConfirmBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/confirm
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req ConfirmRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &confirmBooking.Request{SessionID: req.SessionID})
	if err != nil {
		switch {
		case errors.Is(err, confirmBooking.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgMissingSessionID)

		case errors.Is(err, confirmBooking.ErrSessionNotFound):
			handlers.RespondNotFound(w, msgSessionNotFound)

		case errors.Is(err, confirmBooking.ErrPaymentNotVerified):
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentNotVerified)

		case errors.Is(err, confirmBooking.ErrReservationExpired):
			handlers.RespondError(w, http.StatusConflict, msgReservationExpired)

		default:
			h.logger.Error("POST /bookings/confirm - Failed to confirm: session_id=%s, error=%v", req.SessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/confirm - Booking confirmed: reservation_id=%s", result.ReservationID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
