// Package repo contains all persistence logic for the traffic diary.
// Each entity has an interface and two implementations: a flat CSV file (the
// default store) and Postgres. No business logic lives here; only encoding,
// SQL and type mapping.
package repo

import (
	"context"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// TripRepo is the append-only store of diary entries.
// The service layer depends on this interface, not on a concrete backend,
// which allows the service to be unit-tested with a mock.
type TripRepo interface {
	// Append persists one record after all previously appended records.
	Append(ctx context.Context, rec domain.TripRecord) error

	// LoadAll returns every record in append order.
	// Returns domain.ErrStoreEmpty if the store does not exist.
	LoadAll(ctx context.Context) ([]domain.TripRecord, error)

	// Reset removes the whole store. A later LoadAll reports domain.ErrStoreEmpty.
	Reset(ctx context.Context) error
}

// UserRepo is the store of user profiles.
type UserRepo interface {
	// Create persists a new profile. Returns domain.ErrDuplicate if a profile
	// with the same first and last name (case-insensitive) already exists.
	Create(ctx context.Context, u domain.UserProfile) (domain.UserProfile, error)

	// LoadAll returns every profile in creation order.
	// Returns domain.ErrStoreEmpty if the store does not exist.
	LoadAll(ctx context.Context) ([]domain.UserProfile, error)

	// Reset removes the whole store.
	Reset(ctx context.Context) error
}
