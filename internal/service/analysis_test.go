package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
)

type mockChartWriter struct {
	write func(split domain.ModalSplit) (domain.ChartFiles, error)
}

func (m *mockChartWriter) Write(split domain.ModalSplit) (domain.ChartFiles, error) {
	return m.write(split)
}

var _ service.ChartWriter = (*mockChartWriter)(nil)

func km(v float64) *float64 { return &v }

func trip(mode domain.Mode, distance *float64) domain.TripRecord {
	return domain.TripRecord{Mode: mode, DistanceKM: distance}
}

// ---- Summarize tests -------------------------------------------------------

func TestSummarize_CountAndDistanceShares(t *testing.T) {
	records := []domain.TripRecord{
		trip(domain.ModeCar, km(10)),
		trip(domain.ModeCar, km(10)),
		trip(domain.ModeCar, km(10)),
		trip(domain.ModeBicycle, km(20)),
	}

	got, err := service.Summarize(records)

	require.NoError(t, err)
	assert.InDelta(t, 75.0, got.ByCount[domain.ModeCar], 1e-9)
	assert.InDelta(t, 25.0, got.ByCount[domain.ModeBicycle], 1e-9)
	assert.InDelta(t, 60.0, got.ByDistance[domain.ModeCar], 1e-9)
	assert.InDelta(t, 40.0, got.ByDistance[domain.ModeBicycle], 1e-9)
}

func TestSummarize_SharesAddUpToHundred(t *testing.T) {
	records := []domain.TripRecord{
		trip(domain.ModeWalk, km(0.7)),
		trip(domain.ModePublicTransport, km(12.3)),
		trip(domain.ModeCarPassenger, km(41)),
		trip(domain.ModeOther, km(3.3)),
		trip(domain.ModeWalk, km(1.1)),
		trip(domain.ModePublicTransport, km(8)),
	}

	got, err := service.Summarize(records)

	require.NoError(t, err)
	var byCount, byDistance float64
	for _, v := range got.ByCount {
		byCount += v
	}
	for _, v := range got.ByDistance {
		byDistance += v
	}
	assert.InDelta(t, 100.0, byCount, 1e-9)
	assert.InDelta(t, 100.0, byDistance, 1e-9)
}

func TestSummarize_MissingDistanceCountsOnlyTowardsTrips(t *testing.T) {
	records := []domain.TripRecord{
		trip(domain.ModeWalk, nil),
		trip(domain.ModeCar, km(5)),
	}

	got, err := service.Summarize(records)

	require.NoError(t, err)
	assert.InDelta(t, 50.0, got.ByCount[domain.ModeWalk], 1e-9)
	assert.InDelta(t, 100.0, got.ByDistance[domain.ModeCar], 1e-9)
	_, ok := got.ByDistance[domain.ModeWalk]
	assert.False(t, ok)
}

func TestSummarize_IgnoresEmptyModeAndNegativeDistance(t *testing.T) {
	records := []domain.TripRecord{
		trip(domain.ModeCar, km(10)),
		trip(domain.ModeBicycle, km(-5)),
		trip("", km(7)),
	}

	got, err := service.Summarize(records)

	require.NoError(t, err)
	assert.InDelta(t, 50.0, got.ByCount[domain.ModeCar], 1e-9)
	assert.InDelta(t, 50.0, got.ByCount[domain.ModeBicycle], 1e-9)
	assert.InDelta(t, 100.0, got.ByDistance[domain.ModeCar], 1e-9)
	assert.NotContains(t, got.ByCount, domain.Mode(""))
	assert.NotContains(t, got.ByDistance, domain.Mode(""))
	for mode, pct := range got.ByDistance {
		assert.GreaterOrEqual(t, pct, 0.0, mode)
	}
}

func TestSummarize_InsufficientData(t *testing.T) {
	tests := []struct {
		name    string
		records []domain.TripRecord
	}{
		{"no records", nil},
		{"zero distance", []domain.TripRecord{trip(domain.ModeWalk, km(0))}},
		{"no distances", []domain.TripRecord{trip(domain.ModeWalk, nil)}},
		{"no modes", []domain.TripRecord{trip("", km(7))}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Summarize(tt.records)

			assert.ErrorIs(t, err, domain.ErrInsufficientData)
		})
	}
}

// ---- Analyze tests ---------------------------------------------------------

func TestAnalysisService_Analyze(t *testing.T) {
	trips := &mockTripRepo{
		loadAll: func(_ context.Context) ([]domain.TripRecord, error) {
			return []domain.TripRecord{trip(domain.ModeCar, km(10)), trip(domain.ModeBicycle, km(30))}, nil
		},
	}
	var rendered domain.ModalSplit
	charts := &mockChartWriter{
		write: func(split domain.ModalSplit) (domain.ChartFiles, error) {
			rendered = split
			return domain.ChartFiles{Ways: "charts/modal_split_ways.png", Kilometres: "charts/modal_split_km.png"}, nil
		},
	}
	svc := service.NewAnalysisService(trips, charts, discardLogger())

	got, err := svc.Analyze(context.Background())

	require.NoError(t, err)
	assert.Equal(t, rendered, got.Split)
	assert.InDelta(t, 75.0, got.Split.ByDistance[domain.ModeBicycle], 1e-9)
	assert.Equal(t, "charts/modal_split_km.png", got.Charts.Kilometres)
}

func TestAnalysisService_Analyze_NothingToAnalyze(t *testing.T) {
	tests := []struct {
		name    string
		loadAll func(ctx context.Context) ([]domain.TripRecord, error)
	}{
		{"store missing", func(_ context.Context) ([]domain.TripRecord, error) { return nil, domain.ErrStoreEmpty }},
		{"store empty", func(_ context.Context) ([]domain.TripRecord, error) { return []domain.TripRecord{}, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			charts := &mockChartWriter{
				write: func(_ domain.ModalSplit) (domain.ChartFiles, error) {
					t.Fatal("no chart should be written")
					return domain.ChartFiles{}, nil
				},
			}
			svc := service.NewAnalysisService(&mockTripRepo{loadAll: tt.loadAll}, charts, discardLogger())

			_, err := svc.Analyze(context.Background())

			assert.ErrorIs(t, err, domain.ErrInsufficientData)
		})
	}
}

func TestAnalysisService_Analyze_ChartError(t *testing.T) {
	chartErr := errors.New("read-only file system")
	trips := &mockTripRepo{
		loadAll: func(_ context.Context) ([]domain.TripRecord, error) {
			return []domain.TripRecord{trip(domain.ModeCar, km(10))}, nil
		},
	}
	charts := &mockChartWriter{
		write: func(_ domain.ModalSplit) (domain.ChartFiles, error) { return domain.ChartFiles{}, chartErr },
	}
	svc := service.NewAnalysisService(trips, charts, discardLogger())

	_, err := svc.Analyze(context.Background())

	assert.ErrorIs(t, err, chartErr)
}
