package repo

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// User file column names.
const (
	ColFirstName = "Vorname"
	ColLastName  = "Nachname"
)

// UserColumns is the header row of the user file.
var UserColumns = []string{ColFirstName, ColLastName}

// csvUserRepo is the flat-file implementation of UserRepo.
type csvUserRepo struct {
	mu   sync.Mutex
	file csvFile
}

// NewCSVUserRepo constructs a UserRepo backed by the CSV file at path.
func NewCSVUserRepo(path string) UserRepo {
	return &csvUserRepo{file: csvFile{path: path, header: UserColumns}}
}

// Create checks for a case-insensitive duplicate and appends the profile.
// The check and the write happen under one lock.
func (r *csvUserRepo) Create(_ context.Context, u domain.UserProfile) (domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.load()
	if err != nil && !errors.Is(err, domain.ErrStoreEmpty) {
		return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	for _, e := range existing {
		if e.Key() == u.Key() {
			return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %q: %w", u.DisplayName(), domain.ErrDuplicate)
		}
	}

	if err := r.file.appendRow([]string{u.FirstName, u.LastName}); err != nil {
		return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %w", err)
	}
	return u, nil
}

// LoadAll reads every profile in file order.
func (r *csvUserRepo) LoadAll(_ context.Context) ([]domain.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.load()
	if err != nil {
		return nil, fmt.Errorf("repo.UserRepo.LoadAll: %w", err)
	}
	return users, nil
}

// Reset deletes the user file.
func (r *csvUserRepo) Reset(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.file.remove(); err != nil {
		return fmt.Errorf("repo.UserRepo.Reset: %w", err)
	}
	return nil
}

func (r *csvUserRepo) load() ([]domain.UserProfile, error) {
	rows, err := r.file.readRows()
	if err != nil {
		return nil, err
	}
	users := make([]domain.UserProfile, 0, len(rows))
	for _, row := range rows {
		users = append(users, domain.UserProfile{
			FirstName: row.get(ColFirstName),
			LastName:  row.get(ColLastName),
		})
	}
	return users, nil
}
