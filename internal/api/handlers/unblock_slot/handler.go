package unblock_slot

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations"
)

const (
	msgBlockNotFound = "block not found"
	msgNotABlock     = "reservation is a customer booking, not a block"
)

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

// Handle DELETE /api/v1/admin/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	blockID := mux.Vars(r)["blockId"]

	err := h.reservationsService.Unblock(r.Context(), blockID)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgBlockNotFound)

		case errors.Is(err, reservations.ErrNotABlock):
			handlers.RespondError(w, http.StatusConflict, msgNotABlock)

		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /admin/blocks - Failed to unblock: block_id=%s, error=%v", blockID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/blocks - Block removed: block_id=%s", blockID)
	w.WriteHeader(http.StatusNoContent)
}
