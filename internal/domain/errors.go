package domain

import "errors"

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing required field, malformed time of day).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrDuplicate is returned when a user profile with the same first and last
// name (compared case-insensitively) already exists.
// Handlers should map this to HTTP 409 Conflict.
var ErrDuplicate = errors.New("already exists")

// ErrLocationNotFound is returned by the location resolver when an input
// string cannot be turned into a coordinate. Every resolver error wraps it.
var ErrLocationNotFound = errors.New("location not found")

// ErrProviderUnavailable marks resolver failures caused by the geocoding
// provider itself (network error, bad status, malformed response) rather than
// by an address that simply has no match. It is always wrapped together with
// ErrLocationNotFound.
var ErrProviderUnavailable = errors.New("geocoding provider unavailable")

// ErrNotComputable is returned by the distance calculator when either
// endpoint could not be resolved.
var ErrNotComputable = errors.New("distance not computable")

// ErrStoreEmpty is returned by repo LoadAll functions when the backing store
// does not exist yet. It means "no data", not an I/O failure.
var ErrStoreEmpty = errors.New("store is empty")

// ErrInsufficientData is returned by the aggregator when there are no records
// or the total distance is zero, so no modal split can be produced.
var ErrInsufficientData = errors.New("insufficient data")
