// Package main is the entry point for the travel journal API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/tripjournal/backend/internal/auth"
	"github.com/tripjournal/backend/internal/cascade"
	"github.com/tripjournal/backend/internal/config"
	"github.com/tripjournal/backend/internal/docstore"
	"github.com/tripjournal/backend/internal/event"
	"github.com/tripjournal/backend/internal/handler"
	"github.com/tripjournal/backend/internal/middleware"
	"github.com/tripjournal/backend/internal/repo"
	"github.com/tripjournal/backend/internal/service"
	"github.com/tripjournal/backend/migrations"
)

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// goose runs over database/sql; borrow a handle backed by the same pool.
	sqlDB := stdlib.OpenDBFromPool(pool)
	applied, err := migrations.Up(context.Background(), sqlDB)
	_ = sqlDB.Close()
	if err != nil {
		slog.Error("failed to apply migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "count", applied)

	// --- Child document storage -------------------------------------------
	// Trips always live in Postgres. Daily entries and photos live either in
	// Postgres or in the DynamoDB documents table; the cleanup job drains
	// whichever store they were written to.
	var awsCfg aws.Config
	if cfg.StoreBackend == config.BackendDynamoDB || cfg.EventBusName != "" {
		awsCfg, err = awsconfig.LoadDefaultConfig(context.Background())
		if err != nil {
			slog.Error("failed to load AWS configuration", "error", err)
			os.Exit(1)
		}
	}

	var (
		entryRepo    repo.EntryRepo
		photoRepo    repo.PhotoRepo
		cleanupStore cascade.Store
	)
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		ddb := dynamodb.NewFromConfig(awsCfg)
		entryRepo = docstore.NewEntryRepo(ddb, cfg.DocumentsTable)
		photoRepo = docstore.NewPhotoRepo(ddb, cfg.DocumentsTable)
		cleanupStore = docstore.NewDynamoStore(ddb, cfg.DocumentsTable)
		slog.Info("child documents stored in DynamoDB", "table", cfg.DocumentsTable)
	default:
		entryRepo = repo.NewEntryRepo(pool)
		photoRepo = repo.NewPhotoRepo(pool)
		cleanupStore = repo.NewCollectionStore(pool)
	}

	// --- Trip deletion fan-out ----------------------------------------------
	// With an event bus the trip-cleanup Lambda drains child collections;
	// without one the API drains them itself in the background.
	var (
		publisher event.Publisher
		inProcess *event.InProcessPublisher
	)
	if cfg.EventBusName != "" {
		publisher = event.NewEventBridgePublisher(eventbridge.NewFromConfig(awsCfg), cfg.EventBusName)
		slog.Info("trip deletions published to EventBridge", "bus", cfg.EventBusName)
	} else {
		inProcess = event.NewInProcessPublisher(cascade.NewJob(cleanupStore, logger))
		publisher = inProcess
		slog.Info("trip deletions cleaned up in-process")
	}

	// --- Services -----------------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)

	server := handler.NewServer(
		service.NewTripService(tripRepo, publisher, logger),
		service.NewEntryService(tripRepo, entryRepo),
		service.NewPhotoService(tripRepo, photoRepo),
		service.NewExportService(tripRepo, entryRepo),
		logger,
	)
	verifier := auth.NewVerifier([]byte(cfg.AuthSecret), cfg.TenantID)

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer → CORS → body limit.
	// RequestID generates a unique trace ID per request.
	// RealIP sets r.RemoteAddr from X-Forwarded-For / X-Real-IP (safe behind a proxy).
	// SlogLogger writes one structured JSON log line per request.
	// Recoverer catches panics and returns HTTP 500 instead of crashing.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	// Routes adapts the strict server through gen.NewStrictHandlerWithOptions
	// and guards every bearer-auth operation with the authenticator.
	r.Mount("/", server.Routes(middleware.NewAuthenticator(verifier)))

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}

	// No new deletions can arrive now. Running cleanups share the same
	// deadline; a cleanup still running when it expires is cancelled and its
	// trip can be drained later with the trip-cleanup command.
	if inProcess != nil {
		if err := inProcess.Shutdown(ctx); err != nil {
			slog.Warn("trip cleanups cancelled at shutdown", "error", err)
		}
	}
	slog.Info("server stopped")
}
