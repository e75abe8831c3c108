package geo

import (
	"context"
	"fmt"
	"math"

	"github.com/tidwall/geodesic"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// LocationResolver resolves a user-supplied location string.
// *Resolver satisfies it; tests substitute a fake.
type LocationResolver interface {
	Resolve(ctx context.Context, input string) (domain.Coordinate, error)
}

// Calculator computes trip distances between two location strings.
// One best-effort attempt per call: no caching, no retry.
type Calculator struct {
	resolver LocationResolver
}

// NewCalculator constructs a Calculator backed by the provided resolver.
func NewCalculator(r LocationResolver) *Calculator {
	return &Calculator{resolver: r}
}

// Distance resolves a and b and returns the geodesic distance between them
// in kilometres. Any failure wraps domain.ErrNotComputable together with the
// resolver's cause.
func (c *Calculator) Distance(ctx context.Context, a, b string) (float64, error) {
	from, err := c.resolver.Resolve(ctx, a)
	if err != nil {
		return 0, fmt.Errorf("geo.Calculator.Distance: start: %w: %w", domain.ErrNotComputable, err)
	}
	to, err := c.resolver.Resolve(ctx, b)
	if err != nil {
		return 0, fmt.Errorf("geo.Calculator.Distance: end: %w: %w", domain.ErrNotComputable, err)
	}

	km := GeodesicKM(from, to)
	if math.IsNaN(km) || math.IsInf(km, 0) || km < 0 {
		return 0, fmt.Errorf("geo.Calculator.Distance: invalid result %v: %w", km, domain.ErrNotComputable)
	}
	return km, nil
}

// GeodesicKM returns the distance between a and b on the WGS-84 ellipsoid
// in kilometres.
func GeodesicKM(a, b domain.Coordinate) float64 {
	var metres float64
	geodesic.WGS84.Inverse(a.Lat, a.Lon, b.Lat, b.Lon, &metres, nil, nil)
	return metres / 1000
}
