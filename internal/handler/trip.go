package handler

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
)

// CreateTripRequest is the body of POST /trips. Times are "HH:MM".
type CreateTripRequest struct {
	User       string              `json:"user"`
	StartDate  *openapi_types.Date `json:"start_date"`
	StartTime  string              `json:"start_time"`
	EndDate    *openapi_types.Date `json:"end_date"`
	EndTime    string              `json:"end_time"`
	StartPoint string              `json:"start_point"`
	EndPoint   string              `json:"end_point"`
	Mode       string              `json:"mode"`
	Purpose    string              `json:"purpose"`
}

// Trip is one recorded diary entry. DistanceKM is null when the stored value
// could not be read.
type Trip struct {
	User       string             `json:"user"`
	StartDate  openapi_types.Date `json:"start_date"`
	StartTime  string             `json:"start_time"`
	EndDate    openapi_types.Date `json:"end_date"`
	EndTime    string             `json:"end_time"`
	StartPoint string             `json:"start_point"`
	EndPoint   string             `json:"end_point"`
	DistanceKM *float64           `json:"distance_km"`
	Mode       string             `json:"mode"`
	Purpose    string             `json:"purpose"`
}

// CreateTrip handles POST /trips.
// The start and end points are resolved and the distance is computed before
// anything is stored.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var body CreateTripRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.trips.Record(r.Context(), requestToTripInput(body))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
		case errors.Is(err, domain.ErrNotComputable):
			writeError(w, http.StatusUnprocessableEntity, codeResolutionFailed, resolutionMessage(err))
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, tripToResponse(created))
}

// ListTrips handles GET /trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]Trip, len(trips))
	for i, t := range trips {
		out[i] = tripToResponse(t)
	}
	writeJSON(w, http.StatusOK, out)
}

// --- mapping helpers --------------------------------------------------------

// requestToTripInput converts the request body into a service.TripInput.
// Absent dates stay zero so the service reports them as missing.
func requestToTripInput(body CreateTripRequest) service.TripInput {
	in := service.TripInput{
		User:       body.User,
		StartTime:  body.StartTime,
		EndTime:    body.EndTime,
		StartPoint: body.StartPoint,
		EndPoint:   body.EndPoint,
		Mode:       body.Mode,
		Purpose:    body.Purpose,
	}
	if body.StartDate != nil {
		in.StartDate = body.StartDate.Time
	}
	if body.EndDate != nil {
		in.EndDate = body.EndDate.Time
	}
	return in
}

// tripToResponse maps a domain.TripRecord to its JSON shape.
func tripToResponse(t domain.TripRecord) Trip {
	return Trip{
		User:       t.User,
		StartDate:  openapi_types.Date{Time: t.StartDate},
		StartTime:  t.StartTime.String(),
		EndDate:    openapi_types.Date{Time: t.EndDate},
		EndTime:    t.EndTime.String(),
		StartPoint: t.StartPoint,
		EndPoint:   t.EndPoint,
		DistanceKM: t.DistanceKM,
		Mode:       string(t.Mode),
		Purpose:    string(t.Purpose),
	}
}
