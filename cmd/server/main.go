package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "homestay-backend/internal/api/http"
	"homestay-backend/internal/config"
	"homestay-backend/internal/logger"
	"homestay-backend/internal/notify"
	"homestay-backend/internal/repository/postgres"
	"homestay-backend/internal/security"
	"homestay-backend/internal/service"
	"homestay-backend/internal/storage"
	"homestay-backend/internal/validation"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	envFile := flag.String("env", ".env", "Optional dotenv file with environment overrides")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Failed to load %s: %v", *envFile, err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Homestay Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress(), "public_url", cfg.Server.PublicURL)
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		logger.Error("Failed to apply schema", "error", err)
		log.Fatalf("Failed to apply schema: %v", err)
	}

	// Initialize Storage
	logger.Info("Using local image storage", "upload_dir", cfg.Storage.UploadDir)
	images, err := storage.NewLocalStore(storage.Config{
		Dir:          cfg.Storage.UploadDir,
		BaseURL:      cfg.Server.PublicURL,
		MaxFileSize:  cfg.Storage.MaxFileSize << 20,
		AllowedTypes: cfg.Storage.AllowedTypes,
	})
	if err != nil {
		logger.Error("Failed to initialize image storage", "error", err)
		log.Fatalf("Failed to initialize image storage: %v", err)
	}

	// Initialize Notifications
	notifier, err := notify.FromConfig(context.Background(), cfg.Notification)
	if err != nil {
		logger.Error("Failed to initialize notifications", "error", err)
		log.Fatalf("Failed to initialize notifications: %v", err)
	}

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute)
	validator := validation.New()

	// Initialize Services
	repos := store.Repositories
	userSvc := service.NewUserService(repos, store, images, tokenManager, validator)
	apartmentSvc := service.NewApartmentService(repos, store, images, validator)
	reservationSvc := service.NewReservationService(repos, store, images, notifier)
	wishListSvc := service.NewWishListService(repos, images)
	reviewSvc := service.NewReviewService(repos, images, validator)
	feedbackSvc := service.NewFeedbackService(repos, validator)

	// Initialize HTTP handlers
	router := httpapi.NewRouter(httpapi.Handlers{
		Users:        httpapi.NewUserHandler(userSvc),
		Apartments:   httpapi.NewApartmentHandler(apartmentSvc),
		Reservations: httpapi.NewReservationHandler(reservationSvc),
		WishLists:    httpapi.NewWishListHandler(wishListSvc),
		Reviews:      httpapi.NewReviewHandler(reviewSvc),
		Feedbacks:    httpapi.NewFeedbackHandler(feedbackSvc),
		Images:       httpapi.NewImageHandler(images),
		Health:       httpapi.NewHealthHandler(store),
	}, tokenManager, cfg.CORS.AllowedOrigins)

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}
