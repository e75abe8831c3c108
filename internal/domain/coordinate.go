package domain

import "fmt"

// Coordinate is a WGS-84 position in decimal degrees.
// It is derived from user input and never persisted directly.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Valid reports whether the latitude is within [-90, 90] and the longitude
// within [-180, 180].
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// String formats the coordinate the way the map picker fills the point fields.
func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lon)
}
