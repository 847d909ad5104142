package referrals

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/SyahmiDin/app-raya-studio/internal/api/handlers"
	referralsService "github.com/SyahmiDin/app-raya-studio/internal/service/referrals"
	"github.com/SyahmiDin/app-raya-studio/internal/service/referrals/models"
)

const (
	msgInvalidRequestBody = "invalid request body"
	msgCodeNotFound       = "referral code not found"
	msgDuplicateCode      = "referral code already exists"
)

type Handler struct {
	referralsService ReferralsService
	logger           Logger
}

func NewHandler(referralsService ReferralsService, logger Logger) *Handler {
	return &Handler{
		referralsService: referralsService,
		logger:           logger,
	}
}

// HandleCreate POST /api/v1/admin/referrals
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateReferralRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/referrals - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.referralsService.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, referralsService.ErrDuplicateCode):
			handlers.RespondError(w, http.StatusConflict, msgDuplicateCode)

		case errors.Is(err, referralsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /admin/referrals - Failed to create code: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/referrals - Code created: code=%s", result.Code)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/admin/referrals
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.referralsService.List(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/referrals - Failed to list codes: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/admin/referrals/{code}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]

	err := h.referralsService.Delete(r.Context(), code)
	if err != nil {
		switch {
		case errors.Is(err, referralsService.ErrCodeNotFound):
			handlers.RespondNotFound(w, msgCodeNotFound)

		case errors.Is(err, referralsService.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("DELETE /admin/referrals - Failed to delete code=%s: %v", code, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/referrals - Code removed: code=%s", code)
	w.WriteHeader(http.StatusNoContent)
}

// HandleReport GET /api/v1/admin/referrals/report
func (h *Handler) HandleReport(w http.ResponseWriter, r *http.Request) {
	result, err := h.referralsService.Report(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/referrals/report - Failed to build report: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
