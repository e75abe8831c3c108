package handler

import (
	"errors"
	"net/http"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// User is a registered diary participant.
type User struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DisplayName string `json:"display_name"`
}

// CreateUser handles POST /users.
func (s *Server) CreateUser(w http.ResponseWriter, r *http.Request) {
	var body CreateUserRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	created, err := s.users.Add(r.Context(), body.FirstName, body.LastName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, codeValidation, unwrapMessage(err, domain.ErrValidation))
		case errors.Is(err, domain.ErrDuplicate):
			writeError(w, http.StatusConflict, codeDuplicate, "a user with this name already exists")
		default:
			s.internalError(w, r, err)
		}
		return
	}

	writeJSON(w, http.StatusCreated, userToResponse(created))
}

// ListUsers handles GET /users.
func (s *Server) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.users.List(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}

	out := make([]User, len(users))
	for i, u := range users {
		out[i] = userToResponse(u)
	}
	writeJSON(w, http.StatusOK, out)
}

func userToResponse(u domain.UserProfile) User {
	return User{FirstName: u.FirstName, LastName: u.LastName, DisplayName: u.DisplayName()}
}
