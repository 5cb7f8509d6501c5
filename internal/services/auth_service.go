package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dsareminder/backend/internal/auth"
	"github.com/dsareminder/backend/internal/models"
	"github.com/dsareminder/backend/internal/repositories"
	"go.uber.org/zap"
)

// AuthUserRepository is the interface that wraps user data access for authentication
type AuthUserRepository interface {
	// GetByEmail retrieves a user by email together with their selected topics
	//
	// "email" parameter is used to retrieve a user by their email.
	//
	// If the user is not found, repositories.ErrUserNotFound is returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID retrieves a user by ID together with their selected topics
	GetByID(ctx context.Context, id int) (*models.User, error)
	// Create inserts a new user into the database
	//
	// "user" parameter is used to insert a new user; its ID is set on success.
	//
	// If some error occurs during user creation, the error will be returned.
	Create(ctx context.Context, user *models.User) error
}

// authService implements login and user provisioning.
// The OAuth handshake itself happens at the gateway; this service trusts the
// verified identity it forwards and issues this API's own tokens.
type authService struct {
	repo   AuthUserRepository
	tokens *auth.TokenGenerator
	logger *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(repo AuthUserRepository, tokens *auth.TokenGenerator, logger *zap.Logger) *authService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		logger: logger,
	}
}

// Login resolves the user for a verified identity, creating the user on
// first login, and returns fresh access and refresh tokens
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, err
		}

		// First login: provision the user with defaults
		user = &models.User{
			Email:      email,
			Name:       strings.TrimSpace(req.Name),
			Difficulty: models.DifficultyEasy,
			Topics:     []string{},
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("user created on first login", zap.Int("user_id", user.ID))
	}

	accessToken, refreshToken, err := s.tokens.GenerateTokens(user.ID)
	if err != nil {
		return nil, err
	}

	return &models.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User:         user,
	}, nil
}

// GetMe retrieves the authenticated user's record
func (s *authService) GetMe(ctx context.Context, userID int) (*models.User, error) {
	return s.repo.GetByID(ctx, userID)
}
