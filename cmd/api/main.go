// Package main is the entry point for the traffic diary API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/chart"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/config"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/geo"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/handler"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/middleware"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/migrations"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/spec"
)

func main() {
	// --- Config -----------------------------------------------------------
	if loaded, err := config.LoadDotEnv(); err != nil {
		slog.Error("failed to read .env file", "error", err)
		os.Exit(1)
	} else if !loaded {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		// The default logger writes to stderr before ours is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	// --- Stores -----------------------------------------------------------
	trips, users, closeStore, err := openStores(context.Background(), cfg)
	if err != nil {
		slog.Error("failed to open store", "backend", cfg.StoreBackend, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// --- Geocoding --------------------------------------------------------
	geocoder, err := geo.NewMapboxGeocoder(cfg.MapboxAPIKey, cfg.MapboxBaseURL, cfg.GeocoderTimeout)
	if err != nil {
		slog.Error("failed to create geocoder", "error", err)
		os.Exit(1)
	}
	resolver := geo.NewResolver(geocoder, logger)
	calculator := geo.NewCalculator(resolver)

	// --- Services ---------------------------------------------------------
	server := handler.NewServer(handler.Deps{
		Users:    service.NewUserService(users),
		Trips:    service.NewTripService(trips, users, calculator, logger),
		Analysis: service.NewAnalysisService(trips, chart.NewPieWriter(cfg.ChartDir), logger),
		Reset:    service.NewResetService(trips, users, logger),
		Distance: calculator,
		Resolver: resolver,
		OpenAPI:  spec.OpenAPI,
		Log:      logger,
	})

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	// Writes wait on up to two geocoding requests plus chart rendering.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 2*cfg.GeocoderTimeout + 10*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr, "store", cfg.StoreBackend)
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
	slog.Info("server stopped")
}

// openStores builds the trip and user repos for the configured backend.
// The returned func releases any connections.
func openStores(ctx context.Context, cfg config.Config) (repo.TripRepo, repo.UserRepo, func(), error) {
	if cfg.StoreBackend != config.BackendPostgres {
		slog.Info("using csv store", "trips_file", cfg.TripsFile, "users_file", cfg.UsersFile)
		return repo.NewCSVTripRepo(cfg.TripsFile), repo.NewCSVUserRepo(cfg.UsersFile), func() {}, nil
	}

	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately; the first query does.
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	slog.Info("database connection established")

	// goose needs a *sql.DB; open a short-lived one through the pgx driver.
	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	results, err := migrations.Up(ctx, db)
	db.Close()
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	slog.Info("migrations applied", "count", len(results))

	return repo.NewPGTripRepo(pool), repo.NewPGUserRepo(pool), pool.Close, nil
}
