// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends selectable with STORE_BACKEND.
const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MapboxAPIKey is the access token for the geocoding provider. Required.
	MapboxAPIKey string

	// MapboxBaseURL is the provider endpoint. Defaults to https://api.mapbox.com.
	MapboxBaseURL string

	// GeocoderTimeout bounds each provider request. Defaults to 10s.
	GeocoderTimeout time.Duration

	// StoreBackend is "csv" (default) or "postgres".
	StoreBackend string

	// TripsFile and UsersFile are the CSV store paths.
	TripsFile string
	UsersFile string

	// ChartDir receives the rendered charts. Defaults to "charts".
	ChartDir string

	// DatabaseURL is the Postgres connection string.
	// Required only when StoreBackend is "postgres".
	DatabaseURL string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or the
// first variable with an unusable value.
func Load() (Config, error) {
	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		MapboxBaseURL: getEnv("MAPBOX_BASE_URL", "https://api.mapbox.com"),
		StoreBackend:  strings.ToLower(getEnv("STORE_BACKEND", BackendCSV)),
		TripsFile:     getEnv("TRIPS_FILE", "traffic_diary.csv"),
		UsersFile:     getEnv("USERS_FILE", "users.csv"),
		ChartDir:      getEnv("CHART_DIR", "charts"),
	}

	var err error
	cfg.GeocoderTimeout, err = time.ParseDuration(getEnv("GEOCODER_TIMEOUT", "10s"))
	if err != nil || cfg.GeocoderTimeout <= 0 {
		return Config{}, fmt.Errorf("GEOCODER_TIMEOUT must be a positive duration, got %q", os.Getenv("GEOCODER_TIMEOUT"))
	}

	cfg.MaxBodyBytes, err = strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || cfg.MaxBodyBytes <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", os.Getenv("MAX_BODY_BYTES"))
	}

	switch cfg.StoreBackend {
	case BackendCSV, BackendPostgres:
	default:
		return Config{}, fmt.Errorf("STORE_BACKEND must be %q or %q, got %q", BackendCSV, BackendPostgres, cfg.StoreBackend)
	}

	var missing []string

	cfg.MapboxAPIKey = strings.TrimSpace(os.Getenv("MAPBOX_API_KEY"))
	if cfg.MapboxAPIKey == "" {
		missing = append(missing, "MAPBOX_API_KEY")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.StoreBackend == BackendPostgres && cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LoadDotEnv reads KEY=VALUE pairs from the given files (default ".env") into
// the process environment. Variables that are already set win. A missing
// file is not an error; it reports loaded=false.
func LoadDotEnv(files ...string) (loaded bool, err error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return loaded, fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
		loaded = true
	}
	return loaded, nil
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
