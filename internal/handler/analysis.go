package handler

import (
	"errors"
	"net/http"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// ChartFiles are the paths of the rendered charts.
type ChartFiles struct {
	Ways       string `json:"ways"`
	Kilometres string `json:"kilometres"`
}

// AnalysisResponse is the body of POST /analysis. Shares are percentages
// keyed by mode.
type AnalysisResponse struct {
	ByCount    map[string]float64 `json:"by_count"`
	ByDistance map[string]float64 `json:"by_distance"`
	Charts     ChartFiles         `json:"charts"`
}

// CreateAnalysis handles POST /analysis.
// It summarizes every recorded trip and rewrites both chart files.
func (s *Server) CreateAnalysis(w http.ResponseWriter, r *http.Request) {
	a, err := s.analysis.Analyze(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientData) {
			writeError(w, http.StatusUnprocessableEntity, codeInsufficientData, "no trips with a distance to analyze")
			return
		}
		s.internalError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, AnalysisResponse{
		ByCount:    sharesToResponse(a.Split.ByCount),
		ByDistance: sharesToResponse(a.Split.ByDistance),
		Charts:     ChartFiles{Ways: a.Charts.Ways, Kilometres: a.Charts.Kilometres},
	})
}

func sharesToResponse(shares map[domain.Mode]float64) map[string]float64 {
	out := make(map[string]float64, len(shares))
	for m, v := range shares {
		out[string(m)] = v
	}
	return out
}
