package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// Error codes returned in the "code" field of an error body.
const (
	codeValidation          = "validation_error"
	codeDuplicate           = "duplicate"
	codeResolutionFailed    = "resolution_failed"
	codeNotFound            = "not_found"
	codeProviderUnavailable = "provider_unavailable"
	codeInsufficientData    = "insufficient_data"
	codeTooLarge            = "request_too_large"
	codeInternal            = "internal_error"
)

// ErrorDetail is the machine code and human message of a failed request.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// writeJSON encodes v as the response body with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes an ErrorResponse.
func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

// internalError logs err and answers 500 without leaking its text.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.log.ErrorContext(r.Context(), "request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, codeInternal, "internal server error")
}

// decodeJSON reads the request body into v. It answers the request itself and
// returns false when the body is missing, malformed or too large.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, codeTooLarge, "request body too large")
			return false
		}
		writeError(w, http.StatusUnprocessableEntity, codeValidation, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// resolutionMessage explains a domain.ErrNotComputable without exposing
// provider internals.
func resolutionMessage(err error) string {
	if errors.Is(err, domain.ErrProviderUnavailable) {
		return "distance could not be computed: geocoding provider unavailable"
	}
	return "distance could not be computed: location not found"
}

// unwrapMessage extracts the human-readable part that follows sentinel in a
// wrapped error.
// e.g. "service.TripService.Record: validation error: all fields are required"
// → "all fields are required"
func unwrapMessage(err, sentinel error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return msg
}
