package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dsareminder/backend/internal/auth"
	"github.com/dsareminder/backend/internal/handlers"
	"github.com/dsareminder/backend/internal/middleware"
	"github.com/dsareminder/backend/internal/models"
	"github.com/dsareminder/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testAPIKey = "integration-test-api-key"

// stubAuthService backs the auth handler without a database
type stubAuthService struct {
	user *models.User
}

func (s *stubAuthService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("invalid email address")
	}
	return &models.LoginResponse{
		AccessToken:  "stub-access",
		RefreshToken: "stub-refresh",
		User:         s.user,
	}, nil
}

func (s *stubAuthService) GetMe(ctx context.Context, userID int) (*models.User, error) {
	return s.user, nil
}

// stubPreferencesService backs the preferences handler without a database
type stubPreferencesService struct {
	prefs *models.PreferencesResponse
}

func (s *stubPreferencesService) GetPreferences(ctx context.Context, userID int) (*models.PreferencesResponse, error) {
	return s.prefs, nil
}

func (s *stubPreferencesService) UpdatePreferences(ctx context.Context, userID int, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error) {
	if req.Difficulty == nil && req.Topics == nil {
		return nil, fmt.Errorf("at least one of difficulty or topics must be provided")
	}
	if req.Difficulty != nil {
		s.prefs.Difficulty = *req.Difficulty
	}
	if req.Topics != nil {
		s.prefs.Topics = req.Topics
	}
	return s.prefs, nil
}

// stubDispatchService backs the dispatch handler without a database
type stubDispatchService struct {
	forced bool
}

func (s *stubDispatchService) DispatchToUser(ctx context.Context, userID int) *models.DispatchResult {
	return &models.DispatchResult{Outcome: models.DispatchSent, Question: "Two Sum"}
}

func (s *stubDispatchService) ForceDispatchToUser(ctx context.Context, userID int) *models.DispatchResult {
	s.forced = true
	return &models.DispatchResult{Outcome: models.DispatchSent, Question: "Two Sum"}
}

func (s *stubDispatchService) DispatchAll(ctx context.Context, force bool) (*models.BatchDispatchResult, error) {
	return &models.BatchDispatchResult{Processed: 2, Sent: 1, Skipped: 1}, nil
}

// stubUserLookup resolves a single known email
type stubUserLookup struct {
	user *models.User
}

func (s *stubUserLookup) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.user != nil && s.user.Email == email {
		return s.user, nil
	}
	return nil, repositories.ErrUserNotFound
}

// setupTestRouter builds the API router the way cmd/api/main.go does,
// with stub services in place of the database-backed ones
func setupTestRouter(t *testing.T, dispatch *stubDispatchService) (chi.Router, *auth.TokenGenerator) {
	t.Helper()
	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	tokenGen := auth.NewTokenGenerator("test-secret-key-for-integration-tests", time.Hour, 7*24*time.Hour)

	user := &models.User{
		ID:         1,
		Email:      "alice@example.com",
		Name:       "Alice",
		Difficulty: models.DifficultyEasy,
		Topics:     []string{"arrays"},
	}

	authHandler := handlers.NewAuthHandler(&stubAuthService{user: user}, logger)
	preferencesHandler := handlers.NewPreferencesHandler(&stubPreferencesService{prefs: &models.PreferencesResponse{
		Difficulty: models.DifficultyEasy,
		Topics:     []string{"arrays"},
	}}, logger)
	dispatchHandler := handlers.NewDispatchHandler(dispatch, &stubUserLookup{user: user}, logger)

	apiKeyMiddleware := middleware.APIKeyMiddleware(testAPIKey)
	authMiddleware := middleware.AuthMiddleware(tokenGen)

	r := chi.NewRouter()
	r.Use(middleware.RequestIDMiddleware)
	r.Route("/api/v1", func(r chi.Router) {
		authHandler.RegisterRoutes(r, apiKeyMiddleware, authMiddleware)
		preferencesHandler.RegisterRoutes(r, authMiddleware)
		r.Group(func(r chi.Router) {
			r.Use(apiKeyMiddleware)
			dispatchHandler.RegisterRoutes(r)
		})
	})

	return r, tokenGen
}

func bearerToken(t *testing.T, tokenGen *auth.TokenGenerator, userID int) string {
	t.Helper()
	access, _, err := tokenGen.GenerateTokens(userID)
	require.NoError(t, err)
	return "Bearer " + access
}

func TestLoginRequiresAPIKey(t *testing.T) {
	router, _ := setupTestRouter(t, &stubDispatchService{})

	body := bytes.NewBufferString(`{"email": "alice@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginWithAPIKey(t *testing.T) {
	router, _ := setupTestRouter(t, &stubDispatchService{})

	body := bytes.NewBufferString(`{"email": "alice@example.com"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", body)
	req.Header.Set("X-API-Key", testAPIKey)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "alice@example.com", resp.User.Email)
}

func TestPreferencesRequireBearerToken(t *testing.T) {
	router, _ := setupTestRouter(t, &stubDispatchService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPreferencesRoundTrip(t *testing.T) {
	router, tokenGen := setupTestRouter(t, &stubDispatchService{})
	token := bearerToken(t, tokenGen, 1)

	// Read current preferences
	req := httptest.NewRequest(http.MethodGet, "/api/v1/preferences", nil)
	req.Header.Set("Authorization", token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var prefs models.PreferencesResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&prefs))
	assert.Equal(t, models.DifficultyEasy, prefs.Difficulty)

	// Update them
	body := bytes.NewBufferString(`{"difficulty": "HARD", "topics": ["graphs", "dp"]}`)
	req = httptest.NewRequest(http.MethodPut, "/api/v1/preferences", body)
	req.Header.Set("Authorization", token)
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.NewDecoder(w.Body).Decode(&prefs))
	assert.Equal(t, models.DifficultyHard, prefs.Difficulty)
	assert.Equal(t, []string{"graphs", "dp"}, prefs.Topics)
}

func TestUpdatePreferencesRejectsEmptyBody(t *testing.T) {
	router, tokenGen := setupTestRouter(t, &stubDispatchService{})

	body := bytes.NewBufferString(`{}`)
	req := httptest.NewRequest(http.MethodPut, "/api/v1/preferences", body)
	req.Header.Set("Authorization", bearerToken(t, tokenGen, 1))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDispatchRun(t *testing.T) {
	router, _ := setupTestRouter(t, &stubDispatchService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/run", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var batch models.BatchDispatchResult
	require.NoError(t, json.NewDecoder(w.Body).Decode(&batch))
	assert.Equal(t, 2, batch.Processed)
	assert.Equal(t, 1, batch.Sent)
}

func TestDispatchUserForce(t *testing.T) {
	dispatch := &stubDispatchService{}
	router, _ := setupTestRouter(t, dispatch)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/users/1?force=true", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, dispatch.forced)
}

func TestDispatchEmailUnknownUser(t *testing.T) {
	router, _ := setupTestRouter(t, &stubDispatchService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/email?email=nobody%40example.com", nil)
	req.Header.Set("X-API-Key", testAPIKey)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDispatchRejectsBearerOnlyRequests(t *testing.T) {
	router, tokenGen := setupTestRouter(t, &stubDispatchService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dispatch/run", nil)
	req.Header.Set("Authorization", bearerToken(t, tokenGen, 1))
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
