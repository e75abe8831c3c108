package handler

import "net/http"

// DeleteDiary handles DELETE /diary.
// It removes every trip and every user profile.
func (s *Server) DeleteDiary(w http.ResponseWriter, r *http.Request) {
	if err := s.reset.Reset(r.Context()); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
