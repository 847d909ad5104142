package create_checkout

import (
	"errors"
	"net/http"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	createCheckout "github.com/SyahmiDin/app-raya-studio/internal/usecase/create_checkout"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDateOrTime    = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgServiceNotFound      = "service not found"
	msgReferralNotFound     = "referral code not found"
	msgInvalidTimeSlot      = "selected time is not a valid slot"
	msgSlotAlreadyConfirmed = "this slot is already booked"
	msgSlotHeldByOther      = "this slot is being paid for by another customer, try again in a few minutes"
	msgRaceLost             = "this slot was just taken, please pick another one"
	msgInvalidDate          = "invalid booking date"
	msgPaymentGateway       = "payment service is temporarily unavailable, please try again"
)

type Handler struct {
	useCase CreateCheckoutUseCase
	logger  Logger
}

func NewHandler(useCase CreateCheckoutUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/checkout
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CheckoutRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /checkout - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /checkout - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createCheckout.ErrServiceNotFound):
			h.logger.Warn("POST /checkout - Service not found: service_id=%s", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createCheckout.ErrReferralNotFound):
			handlers.RespondNotFound(w, msgReferralNotFound)

		case errors.Is(err, createCheckout.ErrInvalidTimeSlot):
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createCheckout.ErrSlotAlreadyConfirmed):
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyConfirmed)

		case errors.Is(err, createCheckout.ErrSlotHeldByOther):
			handlers.RespondError(w, http.StatusConflict, msgSlotHeldByOther)

		case errors.Is(err, createCheckout.ErrRaceLost):
			handlers.RespondError(w, http.StatusConflict, msgRaceLost)

		case errors.Is(err, createCheckout.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createCheckout.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, createCheckout.ErrPaymentGateway):
			h.logger.Error("POST /checkout - Payment gateway error: %v", err)
			handlers.RespondError(w, http.StatusBadGateway, msgPaymentGateway)

		default:
			h.logger.Error("POST /checkout - Failed to create checkout: service_id=%s, error=%v", req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /checkout - Reservation held: reservation_id=%s, session_id=%s",
		result.ReservationID, result.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
