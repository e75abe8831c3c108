package handler

import (
	"net/http"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// Option is one selectable value with its help text.
type Option struct {
	Value       string `json:"value"`
	Description string `json:"description,omitempty"`
}

// OptionsResponse is the body of GET /options.
type OptionsResponse struct {
	Modes       []Option `json:"modes"`
	Purposes    []Option `json:"purposes"`
	PurposeRule string   `json:"purpose_rule"`
}

// GetOptions handles GET /options.
// It lists the modes and purposes a trip may carry, in display order.
func (s *Server) GetOptions(w http.ResponseWriter, _ *http.Request) {
	resp := OptionsResponse{PurposeRule: domain.PurposeRule}
	for _, m := range domain.Modes() {
		resp.Modes = append(resp.Modes, Option{Value: string(m), Description: m.Description()})
	}
	for _, p := range domain.Purposes() {
		resp.Purposes = append(resp.Purposes, Option{Value: string(p), Description: p.Description()})
	}
	writeJSON(w, http.StatusOK, resp)
}
