// Package geo turns free-form location strings into coordinates and computes
// geodesic distances between them. The geocoding provider is injected as a
// Geocoder so the resolution rules can be tested without network access.
package geo

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// Place is a single geocoding match.
type Place struct {
	Name       string
	Coordinate domain.Coordinate
}

// Geocoder is the external geocoding provider.
// Both methods report found=false with a nil error when the provider answered
// but had no match; a non-nil error means the provider itself failed.
type Geocoder interface {
	// Forward returns the best match for a free-text address.
	Forward(ctx context.Context, query string) (Place, bool, error)

	// Reverse returns the place at a coordinate.
	Reverse(ctx context.Context, c domain.Coordinate) (Place, bool, error)
}

// Resolver implements the location resolution rules on top of a Geocoder.
// Construct one at startup and pass it to whatever needs it.
type Resolver struct {
	geocoder Geocoder
	log      *slog.Logger
}

// NewResolver constructs a Resolver backed by the provided Geocoder.
func NewResolver(g Geocoder, log *slog.Logger) *Resolver {
	return &Resolver{geocoder: g, log: log}
}

// Resolve interprets input either as a "lat, lon" pair or as an address.
//
// A parsable pair is only checked for existence with a reverse lookup and is
// returned exactly as the user typed it; the provider's coordinate is
// discarded. Anything else is forward-geocoded.
//
// Every returned error wraps domain.ErrLocationNotFound. Provider failures
// additionally wrap domain.ErrProviderUnavailable.
func (r *Resolver) Resolve(ctx context.Context, input string) (domain.Coordinate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return domain.Coordinate{}, fmt.Errorf("geo.Resolver.Resolve: empty input: %w", domain.ErrLocationNotFound)
	}

	if c, ok := parseCoordinatePair(input); ok {
		if !c.Valid() {
			return domain.Coordinate{}, fmt.Errorf("geo.Resolver.Resolve: %q out of range: %w", input, domain.ErrLocationNotFound)
		}
		_, found, err := r.geocoder.Reverse(ctx, c)
		if err != nil {
			return domain.Coordinate{}, r.providerFailure(ctx, input, err)
		}
		if !found {
			return domain.Coordinate{}, fmt.Errorf("geo.Resolver.Resolve: no place at %q: %w", input, domain.ErrLocationNotFound)
		}
		return c, nil
	}

	place, found, err := r.geocoder.Forward(ctx, input)
	if err != nil {
		return domain.Coordinate{}, r.providerFailure(ctx, input, err)
	}
	if !found {
		return domain.Coordinate{}, fmt.Errorf("geo.Resolver.Resolve: no match for %q: %w", input, domain.ErrLocationNotFound)
	}
	return place.Coordinate, nil
}

func (r *Resolver) providerFailure(ctx context.Context, input string, err error) error {
	r.log.WarnContext(ctx, "geocoding provider failed", "input", input, "error", err)
	return fmt.Errorf("geo.Resolver.Resolve: %q: %w: %w: %w",
		input, domain.ErrLocationNotFound, domain.ErrProviderUnavailable, err)
}

// parseCoordinatePair parses "<float>, <float>". It reports false unless the
// input has exactly one comma with a valid float on each side.
func parseCoordinatePair(s string) (domain.Coordinate, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return domain.Coordinate{}, false
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return domain.Coordinate{}, false
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return domain.Coordinate{}, false
	}
	return domain.Coordinate{Lat: lat, Lon: lon}, true
}
