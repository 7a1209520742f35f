package handler

import (
	"net/http"

	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/internal/service"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// pathUUID parses a route variable as a UUID.
func pathUUID(r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// auditActor describes the hospital administrator behind the request.
func auditActor(r *http.Request) (service.AuditActor, bool) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		return service.AuditActor{}, false
	}
	hospitalID, ok := middleware.GetHospitalIDFromContext(r.Context())
	if !ok {
		return service.AuditActor{}, false
	}
	return service.AuditActor{
		UserID:     userID,
		HospitalID: hospitalID,
		IPAddress:  middleware.ClientIP(r),
		UserAgent:  r.UserAgent(),
	}, true
}
