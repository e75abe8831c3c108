package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
)

// ChartWriter renders a modal split to image files.
type ChartWriter interface {
	Write(split domain.ModalSplit) (domain.ChartFiles, error)
}

// AnalysisService computes the modal split of all recorded trips and writes
// the charts.
type AnalysisService struct {
	trips  repo.TripRepo
	charts ChartWriter
	log    *slog.Logger
}

// NewAnalysisService constructs an AnalysisService.
func NewAnalysisService(trips repo.TripRepo, charts ChartWriter, log *slog.Logger) *AnalysisService {
	return &AnalysisService{trips: trips, charts: charts, log: log}
}

// Analyze loads every record, summarizes it, and writes both charts.
// Returns domain.ErrInsufficientData when there is nothing to analyze; no
// chart is written in that case.
func (s *AnalysisService) Analyze(ctx context.Context) (domain.Analysis, error) {
	records, err := s.trips.LoadAll(ctx)
	if errors.Is(err, domain.ErrStoreEmpty) {
		return domain.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w: no diary file", domain.ErrInsufficientData)
	}
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w", err)
	}

	split, err := Summarize(records)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w", err)
	}

	files, err := s.charts.Write(split)
	if err != nil {
		return domain.Analysis{}, fmt.Errorf("service.AnalysisService.Analyze: %w", err)
	}

	s.log.InfoContext(ctx, "analysis written",
		"trips", len(records),
		"ways_chart", files.Ways,
		"km_chart", files.Kilometres,
	)
	return domain.Analysis{Split: split, Charts: files}, nil
}

// Summarize computes the share of each mode by number of trips and by
// kilometres. Records without a distance (or with a negative one) count
// towards the trip share only; records without a mode are ignored.
// Returns domain.ErrInsufficientData for zero records or zero total distance.
func Summarize(records []domain.TripRecord) (domain.ModalSplit, error) {
	if len(records) == 0 {
		return domain.ModalSplit{}, fmt.Errorf("service.Summarize: %w: no trips recorded", domain.ErrInsufficientData)
	}

	counts := make(map[domain.Mode]int)
	distances := make(map[domain.Mode]float64)
	var total int
	var totalKM float64
	for _, r := range records {
		// Rows without a mode belong to no slice.
		if r.Mode == "" {
			continue
		}
		counts[r.Mode]++
		total++
		if r.DistanceKM == nil || *r.DistanceKM < 0 {
			continue
		}
		distances[r.Mode] += *r.DistanceKM
		totalKM += *r.DistanceKM
	}
	if total == 0 {
		return domain.ModalSplit{}, fmt.Errorf("service.Summarize: %w: no trips with a mode", domain.ErrInsufficientData)
	}
	if totalKM == 0 {
		return domain.ModalSplit{}, fmt.Errorf("service.Summarize: %w: total distance is zero", domain.ErrInsufficientData)
	}

	split := domain.ModalSplit{
		ByCount:    make(map[domain.Mode]float64, len(counts)),
		ByDistance: make(map[domain.Mode]float64, len(distances)),
	}
	for mode, n := range counts {
		split.ByCount[mode] = float64(n) / float64(total) * 100
	}
	for mode, km := range distances {
		split.ByDistance[mode] = km / totalKM * 100
	}
	return split, nil
}
