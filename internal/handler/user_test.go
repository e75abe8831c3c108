package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/handler"
)

func TestCreateUser_Created(t *testing.T) {
	var gotFirst, gotLast string
	svc := &mockUserServicer{
		add: func(_ context.Context, first, last string) (domain.UserProfile, error) {
			gotFirst, gotLast = first, last
			return domain.UserProfile{FirstName: first, LastName: last}, nil
		},
	}
	h := newHTTPHandler(handler.Deps{Users: svc})

	rec := do(h, http.MethodPost, "/users", jsonBody(t, handler.CreateUserRequest{FirstName: "Anna", LastName: "Muster"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "Anna", gotFirst)
	assert.Equal(t, "Muster", gotLast)
	var body handler.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Anna Muster", body.DisplayName)
}

func TestCreateUser_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantErr  string
		wantMsg  string
	}{
		{
			name:     "validation",
			err:      fmt.Errorf("%w: first and last name are required", domain.ErrValidation),
			wantCode: http.StatusUnprocessableEntity,
			wantErr:  "validation_error",
			wantMsg:  "first and last name are required",
		},
		{
			name:     "duplicate",
			err:      fmt.Errorf("service.UserService.Add: %w", domain.ErrDuplicate),
			wantCode: http.StatusConflict,
			wantErr:  "duplicate",
		},
		{
			name:     "unexpected",
			err:      errors.New("disk on fire"),
			wantCode: http.StatusInternalServerError,
			wantErr:  "internal_error",
			wantMsg:  "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockUserServicer{
				add: func(_ context.Context, _, _ string) (domain.UserProfile, error) {
					return domain.UserProfile{}, tt.err
				},
			}
			h := newHTTPHandler(handler.Deps{Users: svc})

			rec := do(h, http.MethodPost, "/users", jsonBody(t, handler.CreateUserRequest{FirstName: "Anna", LastName: "Muster"}))

			require.Equal(t, tt.wantCode, rec.Code)
			detail := decodeError(t, rec)
			assert.Equal(t, tt.wantErr, detail.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, detail.Message)
			}
		})
	}
}

func TestCreateUser_MalformedBody(t *testing.T) {
	h := newHTTPHandler(handler.Deps{Users: &mockUserServicer{}})

	rec := do(h, http.MethodPost, "/users", strings.NewReader(`{"first_name":`))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "validation_error", decodeError(t, rec).Code)
}

func TestListUsers(t *testing.T) {
	svc := &mockUserServicer{
		list: func(_ context.Context) ([]domain.UserProfile, error) {
			return []domain.UserProfile{{FirstName: "Anna", LastName: "Muster"}}, nil
		},
	}
	h := newHTTPHandler(handler.Deps{Users: svc})

	rec := do(h, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var body []handler.User
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, []handler.User{{FirstName: "Anna", LastName: "Muster", DisplayName: "Anna Muster"}}, body)
}

func TestListUsers_EmptyIsArray(t *testing.T) {
	svc := &mockUserServicer{
		list: func(_ context.Context) ([]domain.UserProfile, error) { return []domain.UserProfile{}, nil },
	}
	h := newHTTPHandler(handler.Deps{Users: svc})

	rec := do(h, http.MethodGet, "/users", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
