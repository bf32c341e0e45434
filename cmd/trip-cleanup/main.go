// Package main is the trip-cleanup Lambda. It is subscribed to TripDeleted
// events on EventBridge and drains the deleted trip's daily entries and photos.
//
// Run with a trip path argument to clean up a single trip by hand, e.g. after
// a failed invocation:
//
//	trip-cleanup default/users/u-123/trips/8f0c...
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambda"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tripjournal/backend/internal/cascade"
	"github.com/tripjournal/backend/internal/config"
	"github.com/tripjournal/backend/internal/docstore"
	"github.com/tripjournal/backend/internal/domain"
	"github.com/tripjournal/backend/internal/event"
	"github.com/tripjournal/backend/internal/repo"
)

func main() {
	cfg, err := config.LoadCleanup()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// Clients are built once per container and reused across invocations.
	store, closeStore, err := newStore(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to initialise document store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	job := cascade.NewJob(store, logger)

	if len(os.Args) > 1 {
		trip, err := domain.ParseTripPath(os.Args[1])
		if err != nil {
			slog.Error("invalid trip path", "error", err)
			os.Exit(2)
		}
		if err := job.Run(context.Background(), trip); err != nil {
			closeStore()
			os.Exit(1)
		}
		return
	}

	slog.Info("trip cleanup handler initialised", "backend", cfg.StoreBackend)
	lambda.Start(event.NewHandler(job, logger).HandleEvent)
}

// newStore opens the configured document store. The returned func releases it.
func newStore(ctx context.Context, cfg config.CleanupConfig) (cascade.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendDynamoDB:
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("load AWS configuration: %w", err)
		}
		return docstore.NewDynamoStore(dynamodb.NewFromConfig(awsCfg), cfg.DocumentsTable), func() {}, nil
	default:
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("create database pool: %w", err)
		}
		return repo.NewCollectionStore(pool), pool.Close, nil
	}
}
