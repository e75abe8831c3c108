package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// pgUserRepo is the Postgres implementation of UserRepo.
// Case-insensitive uniqueness is enforced by a unique index on
// lower(first_name || ' ' || last_name), matching domain.UserProfile.Key.
type pgUserRepo struct {
	db db
}

// NewPGUserRepo constructs a UserRepo backed by the provided db connection.
func NewPGUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Create inserts a profile and maps a unique violation to domain.ErrDuplicate.
func (r *pgUserRepo) Create(ctx context.Context, u domain.UserProfile) (domain.UserProfile, error) {
	const q = `
		INSERT INTO user_profiles (id, first_name, last_name)
		VALUES (@id, @first_name, @last_name)
		RETURNING first_name, last_name`

	args := pgx.NamedArgs{
		"id":         uuid.New(),
		"first_name": u.FirstName,
		"last_name":  u.LastName,
	}

	var out domain.UserProfile
	err := r.db.QueryRow(ctx, q, args).Scan(&out.FirstName, &out.LastName)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %q: %w", u.DisplayName(), domain.ErrDuplicate)
		}
		return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return out, nil
}

// LoadAll returns all profiles ordered by creation.
func (r *pgUserRepo) LoadAll(ctx context.Context) ([]domain.UserProfile, error) {
	const q = `SELECT first_name, last_name FROM user_profiles ORDER BY seq`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.LoadAll: %w", err)
	}
	defer rows.Close()

	var users []domain.UserProfile
	for rows.Next() {
		var u domain.UserProfile
		if err := rows.Scan(&u.FirstName, &u.LastName); err != nil {
			return nil, fmt.Errorf("repo.UserRepo.LoadAll: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.UserRepo.LoadAll: rows: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("repo.UserRepo.LoadAll: %w", domain.ErrStoreEmpty)
	}
	return users, nil
}

// Reset deletes every profile.
func (r *pgUserRepo) Reset(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM user_profiles`); err != nil {
		return fmt.Errorf("repo.UserRepo.Reset: %w", err)
	}
	return nil
}
