package repo

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// Trip file column names, in the order they are written.
const (
	ColUser          = "Benutzer/in"
	ColStartDate     = "Startdatum"
	ColStartTime     = "Startzeit"
	ColEndDate       = "Enddatum"
	ColEndTime       = "Endzeit"
	ColStartCombined = "Startzeit_kombiniert"
	ColEndCombined   = "Endzeit_kombiniert"
	ColStartPoint    = "Startpunkt"
	ColEndPoint      = "Endpunkt"
	ColDistance      = "Distanz (km)"
	ColMode          = "Modus"
	ColPurpose       = "Wegezweck"
)

// TripColumns is the header row of the trip file.
var TripColumns = []string{
	ColUser, ColStartDate, ColStartTime, ColEndDate, ColEndTime,
	ColStartCombined, ColEndCombined, ColStartPoint, ColEndPoint,
	ColDistance, ColMode, ColPurpose,
}

// csvTripRepo is the flat-file implementation of TripRepo.
type csvTripRepo struct {
	mu   sync.Mutex
	file csvFile
}

// NewCSVTripRepo constructs a TripRepo backed by the CSV file at path.
// The file is created on the first Append.
func NewCSVTripRepo(path string) TripRepo {
	return &csvTripRepo{file: csvFile{path: path, header: TripColumns}}
}

// Append writes rec as one row.
func (r *csvTripRepo) Append(_ context.Context, rec domain.TripRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.file.appendRow(tripToRow(rec)); err != nil {
		return fmt.Errorf("repo.TripRepo.Append: %w", err)
	}
	return nil
}

// LoadAll reads every row in file order.
func (r *csvTripRepo) LoadAll(_ context.Context) ([]domain.TripRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.file.readRows()
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.LoadAll: %w", err)
	}

	out := make([]domain.TripRecord, 0, len(rows))
	for _, row := range rows {
		out = append(out, rowToTrip(row))
	}
	return out, nil
}

// Reset deletes the trip file.
func (r *csvTripRepo) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.file.remove(); err != nil {
		return fmt.Errorf("repo.TripRepo.Reset: %w", err)
	}
	return nil
}

// tripToRow encodes a record in TripColumns order.
func tripToRow(rec domain.TripRecord) []string {
	distance := ""
	if rec.DistanceKM != nil {
		distance = strconv.FormatFloat(*rec.DistanceKM, 'f', -1, 64)
	}
	return []string{
		rec.User,
		rec.StartDate.Format(domain.DateLayout),
		rec.StartTime.String(),
		rec.EndDate.Format(domain.DateLayout),
		rec.EndTime.String(),
		rec.StartsAt().Format(domain.DateTimeLayout),
		rec.EndsAt().Format(domain.DateTimeLayout),
		rec.StartPoint,
		rec.EndPoint,
		distance,
		string(rec.Mode),
		string(rec.Purpose),
	}
}

// rowToTrip decodes one row. Only the distance is coerced: a value that is
// not a finite, non-negative number becomes nil. Unreadable dates and times decode to their
// zero values.
func rowToTrip(row csvRow) domain.TripRecord {
	return domain.TripRecord{
		User:       row.get(ColUser),
		StartDate:  parseDate(row.get(ColStartDate)),
		StartTime:  parseClock(row.get(ColStartTime)),
		EndDate:    parseDate(row.get(ColEndDate)),
		EndTime:    parseClock(row.get(ColEndTime)),
		StartPoint: row.get(ColStartPoint),
		EndPoint:   row.get(ColEndPoint),
		DistanceKM: parseDistance(row.get(ColDistance)),
		Mode:       domain.Mode(row.get(ColMode)),
		Purpose:    domain.Purpose(row.get(ColPurpose)),
	}
}

func parseDate(s string) time.Time {
	t, err := time.Parse(domain.DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}
	}
	return t
}

func parseClock(s string) domain.ClockTime {
	c, err := domain.ParseClockTime(strings.TrimSpace(s))
	if err != nil {
		return domain.ClockTime{}
	}
	return c
}

func parseDistance(s string) *float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}
