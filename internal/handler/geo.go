package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// DistanceResponse is the body of GET /distance.
type DistanceResponse struct {
	From       string  `json:"from"`
	To         string  `json:"to"`
	DistanceKM float64 `json:"distance_km"`
}

// GeocodeResponse is the body of GET /geocode.
type GeocodeResponse struct {
	Query string  `json:"query"`
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
}

// GetDistance handles GET /distance?from=&to=.
// It previews the distance a trip between the two points would get.
func (s *Server) GetDistance(w http.ResponseWriter, r *http.Request) {
	from := strings.TrimSpace(r.URL.Query().Get("from"))
	to := strings.TrimSpace(r.URL.Query().Get("to"))
	if from == "" || to == "" {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "query parameters from and to are required")
		return
	}

	km, err := s.distance.Distance(r.Context(), from, to)
	if err != nil {
		if errors.Is(err, domain.ErrNotComputable) {
			writeError(w, http.StatusUnprocessableEntity, codeResolutionFailed, resolutionMessage(err))
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, DistanceResponse{From: from, To: to, DistanceKM: km})
}

// GetGeocode handles GET /geocode?q=.
// It resolves a single point, e.g. for a map search box.
func (s *Server) GetGeocode(w http.ResponseWriter, r *http.Request) {
	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if q == "" {
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "query parameter q is required")
		return
	}

	c, err := s.resolver.Resolve(r.Context(), q)
	if err != nil {
		switch {
		// Checked first: provider failures also wrap ErrLocationNotFound.
		case errors.Is(err, domain.ErrProviderUnavailable):
			writeError(w, http.StatusServiceUnavailable, codeProviderUnavailable, "geocoding provider unavailable")
		case errors.Is(err, domain.ErrLocationNotFound):
			writeError(w, http.StatusNotFound, codeNotFound, "location not found")
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, GeocodeResponse{Query: q, Lat: c.Lat, Lon: c.Lon})
}
