package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dsareminder/backend/docs"
	"github.com/dsareminder/backend/internal/auth"
	"github.com/dsareminder/backend/internal/config"
	"github.com/dsareminder/backend/internal/handlers"
	"github.com/dsareminder/backend/internal/leetcode"
	"github.com/dsareminder/backend/internal/logger"
	"github.com/dsareminder/backend/internal/mailer"
	"github.com/dsareminder/backend/internal/middleware"
	"github.com/dsareminder/backend/internal/repositories"
	"github.com/dsareminder/backend/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-redis/redis/v8"
	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

// @title DSA Reminder API
// @version 1.0
// @description API for daily LeetCode question reminders by email

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
// @description API key for operator and scheduler endpoints
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token
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

	logger.Logger.Info("Starting DSA Reminder API")

	// Connect to database
	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Logger.Fatal("Failed to connect to database", zap.Error(err))
		os.Exit(1)
	}
	defer db.Close()

	// Run migrations
	if err := runMigrations(db); err != nil {
		logger.Logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer rdb.Close()

	// Test Redis connection
	ctx := context.Background()
	if err := rdb.Ping(ctx).Err(); err != nil {
		logger.Logger.Fatal("Failed to connect to Redis", zap.Error(err))
		os.Exit(1)
	}

	// Initialize JWT token generator
	tokenGenerator := auth.NewTokenGenerator(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	emailLogRepo := repositories.NewEmailLogRepository(db, logger.Logger)

	// Initialize LeetCode upstream and question cache
	leetcodeClient := leetcode.NewClient(cfg.LeetCode.BaseURL, cfg.LeetCode.Timeout, logger.Logger)
	questionFetcher := leetcode.NewFetcher(leetcodeClient, logger.Logger)

	// Initialize mailer
	questionMailer := mailer.NewMailer(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.From,
		logger.Logger,
	)

	// Initialize services
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	preferencesService := services.NewPreferencesService(userRepo, logger.Logger)
	historyService := services.NewHistoryService(emailLogRepo, logger.Logger)
	statsService := services.NewStatsService(userRepo, leetcodeClient, logger.Logger)
	dispatchService := services.NewDispatchService(userRepo, emailLogRepo, questionFetcher, questionMailer, logger.Logger)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger.Logger)
	preferencesHandler := handlers.NewPreferencesHandler(preferencesService, logger.Logger)
	historyHandler := handlers.NewHistoryHandler(historyService, logger.Logger)
	leetcodeHandler := handlers.NewLeetCodeHandler(statsService, logger.Logger)
	dispatchHandler := handlers.NewDispatchHandler(dispatchService, userRepo, logger.Logger)

	// Initialize auth middleware
	apiKeyMiddleware := middleware.APIKeyMiddleware(cfg.APIKey)
	authMiddleware := middleware.AuthMiddleware(tokenGenerator)

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.LoggerMiddleware(logger.Logger))
	r.Use(middleware.RecoveryMiddleware(logger.Logger))
	r.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(100, time.Minute))
	r.Use(middleware.RequestSizeLimitMiddleware(1 * 1024 * 1024)) // 1MB

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Scope router to /api/v1
	r.Route("/api/v1", func(r chi.Router) {
		// User-facing endpoints (JWT protected) plus login (API key protected)
		authHandler.RegisterRoutes(r, apiKeyMiddleware, authMiddleware)
		preferencesHandler.RegisterRoutes(r, authMiddleware)
		historyHandler.RegisterRoutes(r, authMiddleware)
		leetcodeHandler.RegisterRoutes(r, authMiddleware)

		// Operator endpoints (API key protected)
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			dispatchHandler.RegisterRoutes(r)
		})
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
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
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
	driver, err := mysql.WithInstance(db, &mysql.Config{
		MigrationsTable: "reminder_schema_migrations",
	})
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
