// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// AuthSecret is the HMAC key used to verify bearer tokens. Required.
	AuthSecret string

	// TenantID scopes every document this deployment owns. Defaults to "default".
	TenantID string

	// StoreBackend selects where daily entries and photos live: "postgres"
	// (default) or "dynamodb". The trip-cleanup function must use the same one.
	StoreBackend string

	// DocumentsTable is the DynamoDB table for child documents, required when
	// StoreBackend is "dynamodb".
	DocumentsTable string

	// EventBusName is the EventBridge bus that receives TripDeleted events.
	// When empty, the cleanup job runs in-process after each trip deletion.
	EventBusName string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		TenantID:       getEnv("TENANT_ID", "default"),
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DocumentsTable: os.Getenv("DOCUMENTS_TABLE"),
		EventBusName:   os.Getenv("EVENT_BUS_NAME"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}
	if err := checkBackend(cfg.StoreBackend); err != nil {
		return Config{}, err
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}
	cfg.MaxBodyBytes = maxBody

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	cfg.AuthSecret = os.Getenv("AUTH_SECRET")
	if cfg.AuthSecret == "" {
		missing = append(missing, "AUTH_SECRET")
	}

	if cfg.StoreBackend == BackendDynamoDB && cfg.DocumentsTable == "" {
		missing = append(missing, "DOCUMENTS_TABLE")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// Store backends for daily entries and photos. Trips always live in Postgres.
const (
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

// CleanupConfig holds the configuration of the trip-cleanup function.
type CleanupConfig struct {
	// StoreBackend selects where child documents live: "postgres" (default) or "dynamodb".
	StoreBackend string

	// DatabaseURL is required when StoreBackend is "postgres".
	DatabaseURL string

	// DocumentsTable is the DynamoDB table name, required when StoreBackend is "dynamodb".
	DocumentsTable string

	LogLevel string
}

// LoadCleanup reads the trip-cleanup function's configuration.
func LoadCleanup() (CleanupConfig, error) {
	cfg := CleanupConfig{
		StoreBackend:   strings.ToLower(getEnv("STORE_BACKEND", BackendPostgres)),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DocumentsTable: os.Getenv("DOCUMENTS_TABLE"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if err := checkBackend(cfg.StoreBackend); err != nil {
		return CleanupConfig{}, err
	}

	var missing []string
	switch cfg.StoreBackend {
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	case BackendDynamoDB:
		if cfg.DocumentsTable == "" {
			missing = append(missing, "DOCUMENTS_TABLE")
		}
	}

	if len(missing) > 0 {
		return CleanupConfig{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	return cfg, nil
}

func checkBackend(backend string) error {
	switch backend {
	case BackendPostgres, BackendDynamoDB:
		return nil
	}
	return fmt.Errorf("unsupported STORE_BACKEND %q (want %s or %s)", backend, BackendPostgres, BackendDynamoDB)
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
