// Package service contains the business logic of the traffic diary.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No file or SQL access lives here; services depend on repo interfaces.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
)

// DistanceCalculator returns the geodesic distance in kilometres between two
// free-text locations. Failures wrap domain.ErrNotComputable.
type DistanceCalculator interface {
	Distance(ctx context.Context, a, b string) (float64, error)
}

// TripInput is an unvalidated diary entry as submitted by a client.
type TripInput struct {
	User       string
	StartDate  time.Time
	StartTime  string
	EndDate    time.Time
	EndTime    string
	StartPoint string
	EndPoint   string
	Mode       string
	Purpose    string
}

// TripService records and lists trips.
// It holds the user repo because a trip may only be recorded for a
// registered profile.
type TripService struct {
	trips    repo.TripRepo
	users    repo.UserRepo
	distance DistanceCalculator
	log      *slog.Logger
}

// NewTripService constructs a TripService.
func NewTripService(trips repo.TripRepo, users repo.UserRepo, d DistanceCalculator, log *slog.Logger) *TripService {
	return &TripService{trips: trips, users: users, distance: d, log: log}
}

// Record validates in, computes the distance between its start and end
// points, and appends the resulting record.
// Returns domain.ErrValidation for invalid input and domain.ErrNotComputable
// when the distance cannot be computed. Nothing is written on failure.
func (s *TripService) Record(ctx context.Context, in TripInput) (domain.TripRecord, error) {
	rec, err := validateTrip(in)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Record: %w", err)
	}

	user, err := s.registeredUser(ctx, rec.User)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Record: %w", err)
	}
	rec.User = user.DisplayName()

	km, err := s.distance.Distance(ctx, rec.StartPoint, rec.EndPoint)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Record: %w", err)
	}
	rec.DistanceKM = &km

	if err := s.trips.Append(ctx, rec); err != nil {
		return domain.TripRecord{}, fmt.Errorf("service.TripService.Record: %w", err)
	}

	s.log.InfoContext(ctx, "trip recorded",
		"user", rec.User,
		"mode", string(rec.Mode),
		"purpose", string(rec.Purpose),
		"distance_km", km,
	)
	return rec, nil
}

// List returns every recorded trip in file order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.TripRecord, error) {
	records, err := s.trips.LoadAll(ctx)
	if errors.Is(err, domain.ErrStoreEmpty) {
		return []domain.TripRecord{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if records == nil {
		return []domain.TripRecord{}, nil
	}
	return records, nil
}

// registeredUser finds the profile whose display name matches name,
// ignoring case.
func (s *TripService) registeredUser(ctx context.Context, name string) (domain.UserProfile, error) {
	users, err := s.users.LoadAll(ctx)
	if err != nil && !errors.Is(err, domain.ErrStoreEmpty) {
		return domain.UserProfile{}, err
	}
	key := strings.ToLower(name)
	for _, u := range users {
		if u.Key() == key {
			return u, nil
		}
	}
	return domain.UserProfile{}, fmt.Errorf("%w: user %q is not registered", domain.ErrValidation, name)
}

// validateTrip enforces the entry rules in the order a user fixes them:
//   - every field is present,
//   - both times are well-formed HH:MM,
//   - mode and purpose are known values,
//   - the trip does not end before it starts.
func validateTrip(in TripInput) (domain.TripRecord, error) {
	in.User = strings.TrimSpace(in.User)
	in.StartTime = strings.TrimSpace(in.StartTime)
	in.EndTime = strings.TrimSpace(in.EndTime)
	in.StartPoint = strings.TrimSpace(in.StartPoint)
	in.EndPoint = strings.TrimSpace(in.EndPoint)
	in.Mode = strings.TrimSpace(in.Mode)
	in.Purpose = strings.TrimSpace(in.Purpose)

	if in.User == "" || in.StartDate.IsZero() || in.StartTime == "" ||
		in.EndDate.IsZero() || in.EndTime == "" || in.StartPoint == "" ||
		in.EndPoint == "" || in.Mode == "" || in.Purpose == "" {
		return domain.TripRecord{}, fmt.Errorf("%w: all fields are required", domain.ErrValidation)
	}

	start, err := domain.ParseClockTime(in.StartTime)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("%w: start time: %w", domain.ErrValidation, err)
	}
	end, err := domain.ParseClockTime(in.EndTime)
	if err != nil {
		return domain.TripRecord{}, fmt.Errorf("%w: end time: %w", domain.ErrValidation, err)
	}

	mode := domain.Mode(in.Mode)
	if !mode.Valid() {
		return domain.TripRecord{}, fmt.Errorf("%w: unknown mode %q", domain.ErrValidation, in.Mode)
	}
	purpose := domain.Purpose(in.Purpose)
	if !purpose.Valid() {
		return domain.TripRecord{}, fmt.Errorf("%w: unknown purpose %q", domain.ErrValidation, in.Purpose)
	}

	rec := domain.TripRecord{
		User:       in.User,
		StartDate:  dateOnly(in.StartDate),
		StartTime:  start,
		EndDate:    dateOnly(in.EndDate),
		EndTime:    end,
		StartPoint: in.StartPoint,
		EndPoint:   in.EndPoint,
		Mode:       mode,
		Purpose:    purpose,
	}
	if rec.EndsAt().Before(rec.StartsAt()) {
		return domain.TripRecord{}, fmt.Errorf("%w: end must not be before start", domain.ErrValidation)
	}
	return rec, nil
}

// dateOnly drops the clock part and location of t.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
