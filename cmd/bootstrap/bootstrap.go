package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hd-clinic-api/config"
	deliveryHttp "hd-clinic-api/internal/delivery/http"
	"hd-clinic-api/internal/delivery/http/handler"
	"hd-clinic-api/internal/delivery/http/middleware"
	"hd-clinic-api/internal/infrastructure/cache"
	"hd-clinic-api/internal/infrastructure/database"
	"hd-clinic-api/internal/repository"
	"hd-clinic-api/internal/service"
	"hd-clinic-api/internal/usecase"
	"hd-clinic-api/pkg/jwt"
	"hd-clinic-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Sweeper     *service.SweepService
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Migrate schema and seed reference data
	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	if err := database.Seed(db, repository.NewRoleRepository(), repository.NewSlotRepository()); err != nil {
		return nil, fmt.Errorf("failed to seed database: %w", err)
	}

	// Initialize all layers
	server, sweeper := initializeServer(cfg, db, redisClient)
	app.Server = server
	app.Sweeper = sweeper

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer creates and configures the HTTP server and the background
// sweep service
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*http.Server, *service.SweepService) {
	// Initialize JWT service
	jwtService := jwt.NewJWTService(cfg.JWT)

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	patientRepo := repository.NewPatientRepository()
	slotRepo := repository.NewSlotRepository()
	sessionRepo := repository.NewSessionRepository()
	monitoringRepo := repository.NewMonitoringRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	availabilityCache := service.NewAvailabilityCache(redisClient, log)
	sweeper := service.NewSweepService(db, log, sessionRepo, cfg.Schedule)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, jwtService, redisClient, auditService)
	patientUsecase := usecase.NewPatientUsecase(db, log, patientRepo, auditService)
	scheduleUsecase := usecase.NewScheduleUsecase(db, log, sessionRepo, slotRepo, patientRepo, auditService, availabilityCache)
	phaseUsecase := usecase.NewSessionPhaseUsecase(db, log, sessionRepo, auditService, availabilityCache)
	monitoringUsecase := usecase.NewMonitoringUsecase(db, log, sessionRepo, monitoringRepo, auditService)
	missedUsecase := usecase.NewMissedAppointmentUsecase(db, log, sessionRepo, auditService, cfg.Schedule)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientUsecase, customValidator)
	scheduleHandler := handler.NewScheduleHandler(scheduleUsecase, customValidator)
	sessionHandler := handler.NewSessionHandler(phaseUsecase, customValidator)
	monitoringHandler := handler.NewMonitoringHandler(monitoringUsecase, customValidator)
	missedHandler := handler.NewMissedAppointmentHandler(missedUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		patientHandler,
		scheduleHandler,
		sessionHandler,
		monitoringHandler,
		missedHandler,
		auditLogHandler,
		authMiddleware,
		corsMiddleware,
	)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	server := &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}

	return server, sweeper
}

// Run starts the HTTP server and the sweep loop and handles graceful shutdown
func (app *App) Run() {
	app.Sweeper.Start()

	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Stop the sweep loop before closing connections
	app.Sweeper.Stop()

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
