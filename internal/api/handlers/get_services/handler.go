package get_services

import (
	"net/http"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
)

type Handler struct {
	catalogService CatalogService
	logger         Logger
}

func NewHandler(catalogService CatalogService, logger Logger) *Handler {
	return &Handler{
		catalogService: catalogService,
		logger:         logger,
	}
}

// Handle GET /api/v1/services
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.catalogService.List(r.Context())
	if err != nil {
		h.logger.Error("GET /services - Failed to list services: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
