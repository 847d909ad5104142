package get_bookings

import (
	"errors"
	"net/http"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations"
	"github.com/SyahmiDin/app-raya-studio/internal/service/reservations/models"
)

const (
	msgInvalidDate   = "invalid date format, expected YYYY-MM-DD"
	msgInvalidFilter = "invalid filter parameters"
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

// Handle GET /api/v1/admin/bookings?date=YYYY-MM-DD&status=...&kind=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.GetReservationsRequest{}

	if rawDate := r.URL.Query().Get("date"); rawDate != "" {
		date, err := time.Parse(domain.DateFormat, rawDate)
		if err != nil {
			h.logger.Warn("GET /admin/bookings - Invalid date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = &date
	}

	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		req.Kind = &kind
	}

	result, err := h.reservationsService.List(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /admin/bookings - Failed to list reservations: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
