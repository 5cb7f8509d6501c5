package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

// PreferencesUserRepository is the interface that wraps user data access for preference management
type PreferencesUserRepository interface {
	// GetByID retrieves a user by ID together with their selected topics
	//
	// "id" parameter is used to retrieve a user by their ID.
	//
	// If the user is not found, repositories.ErrUserNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// UpdateDifficulty updates a user's difficulty preference
	//
	// "userID" parameter identifies the user, "difficulty" is the new preference.
	//
	// If some error occurs during data update, the error will be returned.
	UpdateDifficulty(ctx context.Context, userID int, difficulty models.Difficulty) error
	// ReplaceTopics replaces a user's topic selection with the given set
	//
	// "userID" parameter identifies the user, "topics" is the full new selection.
	//
	// If some error occurs during data update, the error will be returned.
	ReplaceTopics(ctx context.Context, userID int, topics []string) error
}

// preferencesService implements preference management
type preferencesService struct {
	repo   PreferencesUserRepository
	logger *zap.Logger
}

// NewPreferencesService creates a new preferences service
func NewPreferencesService(repo PreferencesUserRepository, logger *zap.Logger) *preferencesService {
	return &preferencesService{
		repo:   repo,
		logger: logger,
	}
}

// GetPreferences retrieves a user's difficulty and topic preferences
func (s *preferencesService) GetPreferences(ctx context.Context, userID int) (*models.PreferencesResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.PreferencesResponse{
		Difficulty: user.Difficulty,
		Topics:     user.Topics,
	}, nil
}

// UpdatePreferences updates a user's preferences with validation.
//
// At least one of difficulty or topics must be provided. Difficulty must be
// one of EASY, MEDIUM, HARD. Topic names are trimmed and empty names dropped.
func (s *preferencesService) UpdatePreferences(ctx context.Context, userID int, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error) {
	if req.Difficulty == nil && req.Topics == nil {
		return nil, fmt.Errorf("at least one of difficulty or topics must be provided")
	}

	if req.Difficulty != nil && !req.Difficulty.Valid() {
		return nil, fmt.Errorf("invalid difficulty: %s, must be EASY, MEDIUM or HARD", *req.Difficulty)
	}

	if req.Topics != nil {
		topics := normalizeTopics(req.Topics)
		if err := s.repo.ReplaceTopics(ctx, userID, topics); err != nil {
			return nil, err
		}
	}

	if req.Difficulty != nil {
		if err := s.repo.UpdateDifficulty(ctx, userID, *req.Difficulty); err != nil {
			return nil, err
		}
	}

	s.logger.Info("preferences updated", zap.Int("user_id", userID))

	return s.GetPreferences(ctx, userID)
}

// normalizeTopics trims names, drops empties and removes duplicates
// while preserving order
func normalizeTopics(topics []string) []string {
	seen := make(map[string]struct{}, len(topics))
	out := make([]string, 0, len(topics))
	for _, t := range topics {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
