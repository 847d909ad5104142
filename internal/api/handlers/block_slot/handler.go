package block_slot

import (
	"errors"
	"net/http"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	blockSlot "github.com/SyahmiDin/app-raya-studio/internal/usecase/block_slot"
)

const (
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidDateOrTime    = "invalid date or time format, expected YYYY-MM-DD and HH:MM"
	msgSlotAlreadyConfirmed = "interval overlaps an existing booking"
	msgSlotHeldByOther      = "a customer is currently paying for this slot"
	msgRaceLost             = "this slot was just taken, please retry"
)

type Handler struct {
	useCase BlockSlotUseCase
	logger  Logger
}

func NewHandler(useCase BlockSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req BlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /admin/blocks - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, blockSlot.ErrSlotAlreadyConfirmed):
			handlers.RespondError(w, http.StatusConflict, msgSlotAlreadyConfirmed)

		case errors.Is(err, blockSlot.ErrSlotHeldByOther):
			handlers.RespondError(w, http.StatusConflict, msgSlotHeldByOther)

		case errors.Is(err, blockSlot.ErrRaceLost):
			handlers.RespondError(w, http.StatusConflict, msgRaceLost)

		case errors.Is(err, blockSlot.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/blocks - Failed to block slot: error=%v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/blocks - Block created: block_id=%s", result.BlockID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
