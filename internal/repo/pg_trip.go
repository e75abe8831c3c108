package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// pgTripRepo is the Postgres implementation of TripRepo.
// Append order is kept by the seq column.
type pgTripRepo struct {
	db db
}

// NewPGTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPGTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

// Append inserts one record.
func (r *pgTripRepo) Append(ctx context.Context, rec domain.TripRecord) error {
	const q = `
		INSERT INTO trip_records (
			id, user_name, start_date, start_time, end_date, end_time,
			start_point, end_point, distance_km, mode, purpose)
		VALUES (
			@id, @user_name, @start_date, @start_time, @end_date, @end_time,
			@start_point, @end_point, @distance_km, @mode, @purpose)`

	args := pgx.NamedArgs{
		"id":          uuid.New(),
		"user_name":   rec.User,
		"start_date":  rec.StartDate,
		"start_time":  rec.StartTime.String(),
		"end_date":    rec.EndDate,
		"end_time":    rec.EndTime.String(),
		"start_point": rec.StartPoint,
		"end_point":   rec.EndPoint,
		"distance_km": rec.DistanceKM, // nil becomes NULL
		"mode":        string(rec.Mode),
		"purpose":     string(rec.Purpose),
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.TripRepo.Append: %w", err)
	}
	return nil
}

// LoadAll returns all records ordered by insertion.
func (r *pgTripRepo) LoadAll(ctx context.Context) ([]domain.TripRecord, error) {
	const q = `
		SELECT user_name, start_date, start_time, end_date, end_time,
		       start_point, end_point, distance_km, mode, purpose
		FROM trip_records
		ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.TripRepo.LoadAll: %w", err)
	}
	defer rows.Close()

	var records []domain.TripRecord
	for rows.Next() {
		rec, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TripRepo.LoadAll: scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TripRepo.LoadAll: rows: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("repo.TripRepo.LoadAll: %w", domain.ErrStoreEmpty)
	}
	return records, nil
}

// Reset deletes every record.
func (r *pgTripRepo) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM trip_records`); err != nil {
		return fmt.Errorf("repo.TripRepo.Reset: %w", err)
	}
	return nil
}

// scanTrip maps a single database row into a domain.TripRecord.
func scanTrip(s scanner) (domain.TripRecord, error) {
	var (
		rec                domain.TripRecord
		startDate, endDate pgtype.Date
		startTime, endTime string
		distance           pgtype.Float8
		mode, purpose      string
	)

	err := s.Scan(&rec.User, &startDate, &startTime, &endDate, &endTime,
		&rec.StartPoint, &rec.EndPoint, &distance, &mode, &purpose)
	if err != nil {
		return domain.TripRecord{}, err
	}

	rec.StartDate = startDate.Time
	rec.EndDate = endDate.Time
	rec.StartTime = parseClock(startTime)
	rec.EndTime = parseClock(endTime)
	if distance.Valid {
		km := distance.Float64
		rec.DistanceKM = &km
	}
	rec.Mode = domain.Mode(mode)
	rec.Purpose = domain.Purpose(purpose)
	return rec, nil
}
