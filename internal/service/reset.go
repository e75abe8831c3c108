package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/repo"
)

// ResetService wipes the diary.
type ResetService struct {
	trips repo.TripRepo
	users repo.UserRepo
	log   *slog.Logger
}

// NewResetService constructs a ResetService.
func NewResetService(trips repo.TripRepo, users repo.UserRepo, log *slog.Logger) *ResetService {
	return &ResetService{trips: trips, users: users, log: log}
}

// Reset removes all trips, then all user profiles.
func (s *ResetService) Reset(ctx context.Context) error {
	if err := s.trips.Reset(ctx); err != nil {
		return fmt.Errorf("service.ResetService.Reset: %w", err)
	}
	if err := s.users.Reset(ctx); err != nil {
		return fmt.Errorf("service.ResetService.Reset: %w", err)
	}
	s.log.InfoContext(ctx, "diary reset")
	return nil
}
