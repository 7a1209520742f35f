package http

import (
	"net/http"

	"digique-backend/internal/delivery/http/handler"
	"digique-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                  *mux.Router
	authHandler             *handler.AuthHandler
	userHandler             *handler.UserHandler
	hospitalHandler         *handler.HospitalHandler
	doctorHandler           *handler.DoctorHandler
	appointmentHandler      *handler.AppointmentHandler
	feedbackHandler         *handler.FeedbackHandler
	auditLogHandler         *handler.AuditLogHandler
	authMiddleware          *middleware.AuthMiddleware
	hospitalAdminMiddleware *middleware.HospitalAdminMiddleware
	corsMiddleware          *middleware.CORSMiddleware
	loggingMiddleware       *middleware.LoggingMiddleware
	rateLimitMiddleware     *middleware.RateLimitMiddleware
	realIPMiddleware        *middleware.RealIPMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	hospitalHandler *handler.HospitalHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	feedbackHandler *handler.FeedbackHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	hospitalAdminMiddleware *middleware.HospitalAdminMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
	realIPMiddleware *middleware.RealIPMiddleware,
) *Router {
	return &Router{
		router:                  mux.NewRouter(),
		authHandler:             authHandler,
		userHandler:             userHandler,
		hospitalHandler:         hospitalHandler,
		doctorHandler:           doctorHandler,
		appointmentHandler:      appointmentHandler,
		feedbackHandler:         feedbackHandler,
		auditLogHandler:         auditLogHandler,
		authMiddleware:          authMiddleware,
		hospitalAdminMiddleware: hospitalAdminMiddleware,
		corsMiddleware:          corsMiddleware,
		loggingMiddleware:       loggingMiddleware,
		rateLimitMiddleware:     rateLimitMiddleware,
		realIPMiddleware:        realIPMiddleware,
	}
}

// Setup registers every route and returns the router wrapped in the global
// middleware chain. CORS sits outside the mux so preflight requests are
// answered even for routes that only accept other methods.
func (r *Router) Setup() http.Handler {
	api := r.router.PathPrefix("/api").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/change-password", r.authHandler.ChangePassword).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Users
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/me/history", r.userHandler.GetHistory).Methods(http.MethodGet)

	// Public catalogue
	api.HandleFunc("/hospitals", r.hospitalHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/hospitals/{id}", r.hospitalHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/doctors", r.doctorHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}", r.doctorHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/doctors/{id}/availability", r.doctorHandler.GetAvailability).Methods(http.MethodGet)

	// Patient appointments
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.Handle("", middleware.RequirePatient(http.HandlerFunc(r.appointmentHandler.Create))).Methods(http.MethodPost)
	appointments.HandleFunc("/me", r.appointmentHandler.ListMine).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.UpdateByPatient).Methods(http.MethodPut)

	feedback := api.PathPrefix("/feedback").Subrouter()
	feedback.Use(r.authMiddleware.Authenticate)
	feedback.HandleFunc("", r.feedbackHandler.Create).Methods(http.MethodPost)

	// Hospital administration (HOSPITAL role with a managed hospital)
	admin := api.PathPrefix("/hospital").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireHospital)
	admin.Use(r.hospitalAdminMiddleware.Handle)

	admin.HandleFunc("/overview-summary", r.hospitalHandler.OverviewSummary).Methods(http.MethodGet)
	admin.HandleFunc("/my-profile", r.hospitalHandler.GetMyProfile).Methods(http.MethodGet)
	admin.HandleFunc("/my-profile", r.hospitalHandler.UpdateMyProfile).Methods(http.MethodPut)

	admin.HandleFunc("/my-doctors", r.doctorHandler.ListMine).Methods(http.MethodGet)
	admin.HandleFunc("/my-doctors", r.doctorHandler.Create).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{doctorId}", r.doctorHandler.Update).Methods(http.MethodPut)
	admin.HandleFunc("/doctors/{doctorId}", r.doctorHandler.Delete).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{doctorId}/schedule", r.doctorHandler.UpdateSchedule).Methods(http.MethodPut)

	admin.HandleFunc("/my-appointments", r.appointmentHandler.ListForHospital).Methods(http.MethodGet)
	admin.HandleFunc("/appointments/{id}/status", r.appointmentHandler.UpdateStatus).Methods(http.MethodPut)

	admin.HandleFunc("/feedback", r.feedbackHandler.ListForHospital).Methods(http.MethodGet)
	admin.HandleFunc("/feedback/{id}/status", r.feedbackHandler.UpdateStatus).Methods(http.MethodPut)

	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListForHospital).Methods(http.MethodGet)

	var h http.Handler = r.router
	h = r.rateLimitMiddleware.Handle(h)
	h = r.loggingMiddleware.Handle(h)
	h = r.realIPMiddleware.Handle(h)
	h = r.corsMiddleware.Handle(h)
	return h
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
