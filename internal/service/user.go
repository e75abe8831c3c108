package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
)

// UserService registers and lists diary participants.
type UserService struct {
	users repo.UserRepo
}

// NewUserService constructs a UserService backed by the provided UserRepo.
func NewUserService(users repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Add registers a new profile.
// Returns domain.ErrValidation if a name is blank and domain.ErrDuplicate if
// the same name (ignoring case) is already registered.
func (s *UserService) Add(ctx context.Context, firstName, lastName string) (domain.UserProfile, error) {
	u := domain.UserProfile{
		FirstName: strings.TrimSpace(firstName),
		LastName:  strings.TrimSpace(lastName),
	}
	if u.FirstName == "" || u.LastName == "" {
		return domain.UserProfile{}, fmt.Errorf("%w: first and last name are required", domain.ErrValidation)
	}

	created, err := s.users.Create(ctx, u)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("service.UserService.Add: %w", err)
	}
	return created, nil
}

// List returns all profiles sorted by display name.
// Always returns a non-nil slice.
func (s *UserService) List(ctx context.Context) ([]domain.UserProfile, error) {
	users, err := s.users.LoadAll(ctx)
	if errors.Is(err, domain.ErrStoreEmpty) {
		return []domain.UserProfile{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("service.UserService.List: %w", err)
	}

	out := slices.Clone(users)
	if out == nil {
		out = []domain.UserProfile{}
	}
	slices.SortStableFunc(out, func(a, b domain.UserProfile) int {
		return strings.Compare(a.DisplayName(), b.DisplayName())
	})
	return out, nil
}
