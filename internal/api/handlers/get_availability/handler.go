package get_availability

import (
	"errors"
	"net/http"
	"time"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	"github.com/SyahmiDin/app-raya-studio/internal/domain"
	getAvailability "github.com/SyahmiDin/app-raya-studio/internal/usecase/get_availability"
)

const (
	msgMissingServiceID  = "serviceId query parameter is required"
	msgInvalidDate       = "invalid date format, expected YYYY-MM-DD"
	msgServiceNotFound   = "service not found"
	msgDateInPast        = "date must not be in the past"
	msgInvalidParameters = "invalid query parameters"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?serviceId=...&date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	serviceID := r.URL.Query().Get("serviceId")
	if serviceID == "" {
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, r.URL.Query().Get("date"))
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailability.Request{
		ServiceID: serviceID,
		Date:      date,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrServiceNotFound):
			h.logger.Warn("GET /availability - Service not found: service_id=%s", serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailability.ErrInvalidDate):
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidParameters)

		default:
			h.logger.Error("GET /availability - Failed to get availability: service_id=%s, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
