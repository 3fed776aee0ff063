package app

import (
	"context"
	"fmt"

	"bloocareer_backend/database"
	"bloocareer_backend/internal/config"
	"bloocareer_backend/internal/email"
	"bloocareer_backend/internal/handlers"
	"bloocareer_backend/internal/logger"
	"bloocareer_backend/internal/middleware"
	"bloocareer_backend/internal/repositories"
	"bloocareer_backend/internal/routes"
	"bloocareer_backend/internal/services"
	"bloocareer_backend/internal/storage"
	"bloocareer_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("logger initialized", "env", cfg.Server.Env)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	logger.Info("connecting to database...")
	gormDB, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	logger.Info("database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("migration failed", "error", err)
	}

	ginRouter := SetupRouter(cfg, gormDB)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "address", address)
	if err := ginRouter.Run(address); err != nil {
		logger.Fatal("server startup error", "error", err)
	}
}

func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	var fileStorage storage.Storage
	var uploadsDir string

	// The inline attachment mode keeps bytes in the record and needs no
	// file backend at all.
	if cfg.Storage.AttachmentMode == services.AttachmentModeReference {
		var err error
		fileStorage, err = storage.NewStorage(storage.Config{
			Type:      cfg.Storage.Type,
			BasePath:  cfg.Storage.BasePath,
			BaseURL:   cfg.Storage.BaseURL,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Endpoint:  cfg.Storage.Endpoint,
		})
		if err != nil {
			logger.Fatal("failed to initialize storage", "error", err)
		}
		logger.Info("storage initialized", "type", cfg.Storage.Type)

		if local, ok := fileStorage.(*storage.LocalStorage); ok {
			uploadsDir = local.BasePath()
		}
	}

	provider, err := email.NewProvider(email.Config{
		Provider:     cfg.Email.Provider,
		FromEmail:    cfg.Email.FromEmail,
		FromName:     cfg.Email.FromName,
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		BrevoAPIKey:  cfg.Email.BrevoAPIKey,
		BrevoBaseURL: cfg.Email.BrevoBaseURL,
		SESRegion:    cfg.Email.SESRegion,
	})
	if err != nil {
		logger.Fatal("failed to initialize email provider", "error", err)
	}
	logger.Info("email provider initialized", "provider", provider.Name())

	templates, err := email.NewTemplateManager()
	if err != nil {
		logger.Fatal("failed to load email templates", "error", err)
	}

	candidateRepo := repositories.NewCandidateRepository(gormDB)
	candidateService := services.NewCandidateService(
		candidateRepo,
		fileStorage,
		provider,
		templates,
		services.CandidateServiceConfig{
			MaxFileSize:    cfg.Upload.MaxSize,
			AllowedTypes:   cfg.Upload.AllowedTypes,
			AttachmentMode: cfg.Storage.AttachmentMode,
			FromEmail:      cfg.Email.FromEmail,
			FromName:       cfg.Email.FromName,
			StaffEmail:     cfg.Email.StaffEmail,
			StaffName:      cfg.Email.StaffName,
		},
	)

	// The original backend fired a boot email to prove the provider
	// credentials before accepting traffic; keep it opt-in.
	if cfg.Email.SendStartupTest {
		if err := candidateService.SendTestEmail(context.Background()); err != nil {
			logger.Warn("startup test email failed", "error", err)
		} else {
			logger.Info("startup test email sent", "to", cfg.Email.StaffEmail)
		}
	}

	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	appHandlers := &handlers.AppHandlers{
		CandidateHandler: handlers.NewCandidateHandler(baseHandler, candidateService, cfg.Upload.MaxSize),
		HealthHandler:    handlers.NewHealthHandler(provider.Name()),
	}

	ginRouter := initializeGinRouter(cfg)
	routes.RegisterRoutes(ginRouter, appHandlers, uploadsDir)

	return ginRouter
}

func initializeGinRouter(cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	return router
}
