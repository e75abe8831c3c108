// Package handler implements the HTTP handlers for the traffic diary API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, trip.go, etc.) but share the same Server struct so they
// can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
)

// UserServicer defines the profile operations the user handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching the file system.
type UserServicer interface {
	Add(ctx context.Context, firstName, lastName string) (domain.UserProfile, error)
	List(ctx context.Context) ([]domain.UserProfile, error)
}

// TripServicer defines the diary operations the trip handlers depend on.
type TripServicer interface {
	Record(ctx context.Context, in service.TripInput) (domain.TripRecord, error)
	List(ctx context.Context) ([]domain.TripRecord, error)
}

// AnalysisServicer produces the modal split and its charts.
type AnalysisServicer interface {
	Analyze(ctx context.Context) (domain.Analysis, error)
}

// ResetServicer wipes the diary.
type ResetServicer interface {
	Reset(ctx context.Context) error
}

// DistanceCalculator previews the distance between two locations.
type DistanceCalculator interface {
	Distance(ctx context.Context, a, b string) (float64, error)
}

// LocationResolver turns free text into a coordinate.
type LocationResolver interface {
	Resolve(ctx context.Context, input string) (domain.Coordinate, error)
}

// Deps are the collaborators of Server. Nil fields are allowed in tests that
// do not exercise the corresponding routes.
type Deps struct {
	Users    UserServicer
	Trips    TripServicer
	Analysis AnalysisServicer
	Reset    ResetServicer
	Distance DistanceCalculator
	Resolver LocationResolver
	OpenAPI  []byte
	Log      *slog.Logger
}

// Server serves every API endpoint.
// Methods are in domain-specific files but all operate on this struct.
type Server struct {
	users    UserServicer
	trips    TripServicer
	analysis AnalysisServicer
	reset    ResetServicer
	distance DistanceCalculator
	resolver LocationResolver
	openAPI  []byte
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(d Deps) *Server {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		users:    d.Users,
		trips:    d.Trips,
		analysis: d.Analysis,
		reset:    d.Reset,
		distance: d.Distance,
		resolver: d.Resolver,
		openAPI:  d.OpenAPI,
		log:      log,
	}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(Deps{})
}

// Routes registers every endpoint on a new chi router.
// Mount it under the router that carries the middleware stack.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/options", s.GetOptions)

	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.ListUsers)
		r.Post("/", s.CreateUser)
	})
	r.Route("/trips", func(r chi.Router) {
		r.Get("/", s.ListTrips)
		r.Post("/", s.CreateTrip)
	})

	r.Get("/distance", s.GetDistance)
	r.Get("/geocode", s.GetGeocode)
	r.Post("/analysis", s.CreateAnalysis)
	r.Delete("/diary", s.DeleteDiary)

	return r
}
