package handler

import (
	"net/http"
	"strconv"

	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/response"
)

type AuditLogHandler struct {
	auditLogUsecase usecase.AuditLogUsecase
}

func NewAuditLogHandler(auditLogUsecase usecase.AuditLogUsecase) *AuditLogHandler {
	return &AuditLogHandler{
		auditLogUsecase: auditLogUsecase,
	}
}

// ListForHospital pages through ?limit= and ?offset=. Malformed values fall
// back to the defaults.
func (h *AuditLogHandler) ListForHospital(w http.ResponseWriter, r *http.Request) {
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		response.Forbidden(w, "")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	page, err := h.auditLogUsecase.ListForHospital(r.Context(), hospitalID, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to get audit logs")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Audit logs retrieved successfully", page.Logs, response.NewMeta(page.Limit, page.Offset, page.Total))
}
