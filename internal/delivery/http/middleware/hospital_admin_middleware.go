package middleware

import (
	"context"
	"errors"
	"net/http"

	"digique-backend/internal/usecase"
	"digique-backend/pkg/response"

	"github.com/sirupsen/logrus"
)

// HospitalAdminMiddleware resolves the hospital managed by the authenticated
// HOSPITAL user and stores its id in the request context.
type HospitalAdminMiddleware struct {
	userUsecase usecase.UserUsecase
	log         *logrus.Logger
}

func NewHospitalAdminMiddleware(userUsecase usecase.UserUsecase, log *logrus.Logger) *HospitalAdminMiddleware {
	return &HospitalAdminMiddleware{
		userUsecase: userUsecase,
		log:         log,
	}
}

func (m *HospitalAdminMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := GetUserIDFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "User not authenticated")
			return
		}

		hospitalID, err := m.userUsecase.ResolveManagedHospital(r.Context(), userID)
		if err != nil {
			switch {
			case errors.Is(err, usecase.ErrUserNotFound):
				response.Unauthorized(w, "User not found")
			case errors.Is(err, usecase.ErrNotHospitalAdmin):
				response.Forbidden(w, err.Error())
			case errors.Is(err, usecase.ErrNoManagedHospital):
				response.BadRequest(w, err.Error())
			default:
				m.log.Warnf("Failed to resolve managed hospital: %+v", err)
				response.InternalServerError(w, "Failed to resolve hospital")
			}
			return
		}

		ctx := context.WithValue(r.Context(), HospitalIDKey, hospitalID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
