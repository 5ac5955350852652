package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/disasterwatch/backend/internal/apperrors"
	"github.com/disasterwatch/backend/internal/auth"
	"github.com/disasterwatch/backend/internal/blobstore"
	"github.com/disasterwatch/backend/internal/config"
	"github.com/disasterwatch/backend/internal/handlers"
	"github.com/disasterwatch/backend/internal/logger"
	"github.com/disasterwatch/backend/internal/middlewares"
	"github.com/disasterwatch/backend/internal/models"
	"github.com/disasterwatch/backend/internal/repositories"
	"github.com/disasterwatch/backend/internal/services"

	_ "github.com/disasterwatch/backend/docs"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// @title Post-Disaster Damage Assessment API
// @version 1.0
// @description API for submitting and triaging geotagged disaster damage reports

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v\n", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level); err != nil {
		log.Fatalf("Failed to initialize logger: %v\n", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting Damage Assessment API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to blob store
	imageStore, err := blobstore.NewGCSStore(context.Background(), cfg.Blob.Bucket, cfg.Blob.Folder, logger.Logger)
	if err != nil {
		logger.Logger.Fatal("Failed to connect to blob store", zap.Error(err))
	}
	defer imageStore.Close()

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	reportRepo := repositories.NewReportRepository(db, logger.Logger)

	// Seed the default admin account
	if err := seedAdmin(context.Background(), userRepo, cfg.Admin); err != nil {
		logger.Logger.Fatal("Failed to seed admin user", zap.Error(err))
	}

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	reportService := services.NewReportService(reportRepo, imageStore, cfg.Blob.UploadTimeout, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	reportHandler := handlers.NewReportHandler(reportService, logger.Logger)

	// Initialize auth middlewares
	authMiddleware := middlewares.AuthMiddleware(tokenGenerator)
	adminMiddleware := middlewares.AdminMiddleware

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middlewares.RequestIDMiddleware)
	r.Use(middlewares.LoggerMiddleware(logger.Logger))
	r.Use(middlewares.RecoveryMiddleware(logger.Logger))
	r.Use(middlewares.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middlewares.RequestSizeLimitMiddleware(20 * 1024 * 1024)) // 20MB, multipart image uploads

	// Service banner
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message":"Post-Disaster Damage Assessment API","version":"1.0.0","status":"running"}`))
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api
	r.Route("/api", func(r chi.Router) {
		authHandler.RegisterRoutes(r, authMiddleware)
		reportHandler.RegisterRoutes(r, authMiddleware, adminMiddleware)
	})

	// Start server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB) error {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Get the working directory or use migrations folder relative to the binary
	migrationPath := "file://migrations"
	if _, err := os.Stat("migrations"); os.IsNotExist(err) {
		// Try parent directory if running from cmd
		if _, err := os.Stat("../migrations"); err == nil {
			migrationPath = "file://../migrations"
		}
	}

	m, err := migrate.NewWithDatabaseInstance(
		migrationPath,
		"mysql",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// seedAdmin creates the default administrator account if it does not exist.
// Skipped when no admin password is configured.
func seedAdmin(ctx context.Context, userRepo services.UserRepository, admin config.AdminConfig) error {
	if admin.Password == "" {
		logger.Logger.Warn("ADMIN_PASSWORD not set, skipping default admin creation")
		return nil
	}

	exists, err := userRepo.ExistsByUsername(ctx, admin.Username)
	if err != nil {
		return fmt.Errorf("failed to check admin user: %w", err)
	}
	if exists {
		return nil
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	user := &models.User{
		Username:     admin.Username,
		Email:        admin.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleAdmin,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		// A concurrent boot may have created it first
		if errors.Is(err, apperrors.Conflict("")) {
			return nil
		}
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Logger.Info("default admin user created", zap.String("username", admin.Username))
	return nil
}
