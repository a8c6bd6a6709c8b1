package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinic-portal-backend/config"
	_ "clinic-portal-backend/docs" // Important for Swagger
	v1 "clinic-portal-backend/internal/delivery/http/v1"
	"clinic-portal-backend/internal/repository/postgres"
	"clinic-portal-backend/internal/usecase"
	"clinic-portal-backend/pkg/auth"
	"clinic-portal-backend/pkg/database"
	"clinic-portal-backend/pkg/email"
	"clinic-portal-backend/pkg/logger"
	"clinic-portal-backend/pkg/redis"
	"clinic-portal-backend/pkg/storage"
	"clinic-portal-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

// @title           Clinic Portal API
// @version         1.0
// @description     Backend for the clinic job portal using Clean Architecture.
// @host            localhost:8080
// @BasePath        /v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting clinic portal backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (token revocation + rate limiting; optional)
	if err := redis.Initialize(redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword}); err != nil {
		logger.Log.Warn("Redis unavailable, degrading to in-memory fallbacks", "error", err)
	}
	revoker := auth.NewRevoker(redis.Client())

	// 5. Setup Repositories
	accountRepo := postgres.NewAccountRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	jobRepo := postgres.NewJobRepository(dbPool)
	applicationRepo := postgres.NewApplicationRepository(dbPool)
	adminRepo := postgres.NewAdminRepository(dbPool)

	// 6. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form will be unavailable")
	}

	// 7. Setup Upload Storage
	uploader, err := storage.NewUploader(context.Background(), cfg)
	if err != nil {
		logger.Log.Error("Failed to build upload storage client", "error", err)
		os.Exit(1)
	}
	if uploader == nil {
		logger.Log.Warn("Upload storage not configured - file uploads will be unavailable")
	}

	// 8. Setup UseCases
	validate := validator.New()
	validation.RegisterValidators(validate)

	authUC := usecase.NewAuthUsecase(accountRepo, revoker, cfg.JWTSecret, cfg.JWTIssuer, cfg.TokenTTL())
	profileUC := usecase.NewProfileUsecase(profileRepo, validate)
	jobUC := usecase.NewJobUsecase(jobRepo)
	applicationUC := usecase.NewApplicationUsecase(applicationRepo, jobRepo)
	adminUC := usecase.NewAdminUsecase(adminRepo, accountRepo, profileUC, cfg.StatsCacheTTL())
	contactUC := usecase.NewContactUsecase(emailService)

	// 9. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:        authUC,
		ProfileUC:     profileUC,
		JobUC:         jobUC,
		ApplicationUC: applicationUC,
		AdminUC:       adminUC,
		ContactUC:     contactUC,
		Uploader:      uploader,
		Revoker:       revoker,
		Config:        cfg,
	})

	// 10. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
