package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"fulfillment/cmd"
	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/carrier"
	"fulfillment/internal/adapters/out/postgres/emailrepo"
	"fulfillment/internal/adapters/out/postgres/noterepo"
	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	db, err := openDatabase(configs)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort, logger)
}

func getConfigs() cmd.Config {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}

	return cmd.Config{
		HTTPPort:        envOr("HTTP_PORT", "8080"),
		DBHost:          os.Getenv("DB_HOST"),
		DBPort:          envOr("DB_PORT", "5432"),
		DBUser:          os.Getenv("DB_USER"),
		DBPassword:      os.Getenv("DB_PASSWORD"),
		DBName:          os.Getenv("DB_NAME"),
		DBSslMode:       envOr("DB_SSLMODE", "disable"),
		LogLevel:        envOr("LOG_LEVEL", "info"),
		PublicBaseURL:   os.Getenv("PUBLIC_BASE_URL"),
		ConfirmationTTL: time.Duration(envInt("CONFIRMATION_TTL_DAYS", 14)) * 24 * time.Hour,
		Backfill: jobs.BackfillConfig{
			Schedule:    envOr("BACKFILL_SCHEDULE", jobs.DefaultBackfillSchedule),
			BatchSize:   envInt("BACKFILL_BATCH_SIZE", jobs.DefaultBackfillBatchSize),
			Concurrency: envInt("BACKFILL_CONCURRENCY", jobs.DefaultBackfillConcurrency),
		},
		DHL: carrier.DHLConfig{
			BaseURL:       os.Getenv("DHL_API_URL"),
			APIKey:        os.Getenv("DHL_API_KEY"),
			APISecret:     os.Getenv("DHL_API_SECRET"),
			AccountNumber: os.Getenv("DHL_ACCOUNT_NUMBER"),
		},
		PostNord: carrier.PostNordConfig{
			BaseURL:        os.Getenv("POSTNORD_API_URL"),
			APIKey:         os.Getenv("POSTNORD_API_KEY"),
			CustomerNumber: os.Getenv("POSTNORD_CUSTOMER_NUMBER"),
		},
		Shipper: carrier.Shipper{
			Name:  os.Getenv("SHIPPER_NAME"),
			Email: os.Getenv("SHIPPER_EMAIL"),
			Address: kernel.Address{
				Street:     os.Getenv("SHIPPER_STREET"),
				PostalCode: os.Getenv("SHIPPER_POSTAL_CODE"),
				City:       os.Getenv("SHIPPER_CITY"),
				Country:    envOr("SHIPPER_COUNTRY", "SE"),
				Phone:      os.Getenv("SHIPPER_PHONE"),
			},
		},
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", key, v)
	}
	return n
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func openDatabase(c cmd.Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err = db.AutoMigrate(&orderrepo.OrderDTO{}, &noterepo.NoteDTO{}, &emailrepo.CustomerEmailDTO{}); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func startWebServer(app cmd.CompositionRoot, port string, logger *slog.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	doc, err := httpin.LoadSpec(ctx)
	if err != nil {
		log.Fatalf("Invalid OpenAPI document: %v", err)
	}

	e, err := httpin.NewEcho(httpin.NewServer(app.CreateHTTPHandlers(), logger), doc)
	if err != nil {
		log.Fatalf("Failed to build HTTP server: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", startErr)
		}
	}()
	logger.Info("HTTP server started", "port", port)

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown failed", "error", err)
	}
}
