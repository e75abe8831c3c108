package service_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/service"
)

// mockUserRepo is a hand-written test double for repo.UserRepo.
type mockUserRepo struct {
	create  func(ctx context.Context, u domain.UserProfile) (domain.UserProfile, error)
	loadAll func(ctx context.Context) ([]domain.UserProfile, error)
	reset   func(ctx context.Context) error
}

func (m *mockUserRepo) Create(ctx context.Context, u domain.UserProfile) (domain.UserProfile, error) {
	return m.create(ctx, u)
}
func (m *mockUserRepo) LoadAll(ctx context.Context) ([]domain.UserProfile, error) {
	return m.loadAll(ctx)
}
func (m *mockUserRepo) Reset(ctx context.Context) error {
	return m.reset(ctx)
}

var _ repo.UserRepo = (*mockUserRepo)(nil)

func echoUsers() *mockUserRepo {
	return &mockUserRepo{
		create: func(_ context.Context, u domain.UserProfile) (domain.UserProfile, error) { return u, nil },
	}
}

func TestUserService_Add_TrimsNames(t *testing.T) {
	svc := service.NewUserService(echoUsers())

	got, err := svc.Add(context.Background(), "  Anna ", " Muster")

	require.NoError(t, err)
	assert.Equal(t, domain.UserProfile{FirstName: "Anna", LastName: "Muster"}, got)
}

func TestUserService_Add_MissingName(t *testing.T) {
	tests := []struct {
		name        string
		first, last string
	}{
		{"missing first", "", "Muster"},
		{"missing last", "Anna", "   "},
		{"both blank", " ", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &mockUserRepo{
				create: func(_ context.Context, _ domain.UserProfile) (domain.UserProfile, error) {
					t.Fatal("Create must not be called")
					return domain.UserProfile{}, nil
				},
			}
			svc := service.NewUserService(users)

			_, err := svc.Add(context.Background(), tt.first, tt.last)

			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

func TestUserService_Add_Duplicate(t *testing.T) {
	users := &mockUserRepo{
		create: func(_ context.Context, u domain.UserProfile) (domain.UserProfile, error) {
			return domain.UserProfile{}, fmt.Errorf("repo.UserRepo.Create: %w", domain.ErrDuplicate)
		},
	}
	svc := service.NewUserService(users)

	_, err := svc.Add(context.Background(), "Anna", "Muster")

	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserService_List_SortedByDisplayName(t *testing.T) {
	users := &mockUserRepo{
		loadAll: func(_ context.Context) ([]domain.UserProfile, error) {
			return []domain.UserProfile{
				{FirstName: "Carla", LastName: "Zeh"},
				{FirstName: "Anna", LastName: "Muster"},
				{FirstName: "Bernd", LastName: "Beispiel"},
			}, nil
		},
	}
	svc := service.NewUserService(users)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	names := make([]string, 0, len(got))
	for _, u := range got {
		names = append(names, u.DisplayName())
	}
	assert.Equal(t, []string{"Anna Muster", "Bernd Beispiel", "Carla Zeh"}, names)
}

func TestUserService_List_StoreEmpty(t *testing.T) {
	users := &mockUserRepo{
		loadAll: func(_ context.Context) ([]domain.UserProfile, error) {
			return nil, domain.ErrStoreEmpty
		},
	}
	svc := service.NewUserService(users)

	got, err := svc.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
