package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"digique-backend/config"
	deliveryHttp "digique-backend/internal/delivery/http"
	"digique-backend/internal/delivery/http/handler"
	"digique-backend/internal/delivery/http/middleware"
	"digique-backend/internal/infrastructure/cache"
	"digique-backend/internal/infrastructure/database"
	"digique-backend/internal/repository"
	"digique-backend/internal/service"
	"digique-backend/internal/usecase"
	"digique-backend/pkg/jwt"
	"digique-backend/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// NewLogger builds the JSON logger shared by every layer.
func NewLogger(cfg config.LogConfig) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config, log *logrus.Logger) (*App, error) {
	app := &App{Config: cfg, Log: log}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsProduction(), log)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis, log)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	app.Server = initializeServer(cfg, log, db, redisClient)

	return app, nil
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Repositories
	userRepo := repository.NewUserRepository()
	hospitalRepo := repository.NewHospitalRepository()
	doctorRepo := repository.NewDoctorRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	feedbackRepo := repository.NewFeedbackRepository()
	historyRepo := repository.NewUpdateHistoryRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Services
	tokenStore := service.NewRedisTokenStore(redisClient)
	slotLocker := service.NewRedisSlotLocker(redisClient, log, cfg.Booking.SlotLockTTL)
	availabilityService := service.NewAvailabilityService(db, log, doctorRepo, appointmentRepo)
	auditService := service.NewAuditService(log, auditLogRepo)
	historyService := service.NewHistoryService(log, historyRepo)

	// Usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, hospitalRepo, jwtService, tokenStore)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, historyRepo, historyService)
	hospitalUsecase := usecase.NewHospitalUsecase(db, log, hospitalRepo, doctorRepo, appointmentRepo, auditService)
	doctorUsecase := usecase.NewDoctorUsecase(db, log, doctorRepo, availabilityService, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, availabilityService, slotLocker, auditService)
	feedbackUsecase := usecase.NewFeedbackUsecase(db, log, feedbackRepo, hospitalRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	hospitalHandler := handler.NewHospitalHandler(hospitalUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorUsecase, customValidator, log)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator, log)
	feedbackHandler := handler.NewFeedbackHandler(feedbackUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, tokenStore, log)
	hospitalAdminMiddleware := middleware.NewHospitalAdminMiddleware(userUsecase, log)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.FrontendURL)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit, log)
	realIPMiddleware := middleware.NewRealIPMiddleware(cfg.App.TrustedProxies, log)

	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		hospitalHandler,
		doctorHandler,
		appointmentHandler,
		feedbackHandler,
		auditLogHandler,
		authMiddleware,
		hospitalAdminMiddleware,
		corsMiddleware,
		loggingMiddleware,
		rateLimitMiddleware,
		realIPMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and blocks until SIGINT or SIGTERM.
func (app *App) Run() error {
	errCh := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	return app.waitForShutdown(errCh)
}

func (app *App) waitForShutdown(errCh <-chan error) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		app.Close()
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
	return nil
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
