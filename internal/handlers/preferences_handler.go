package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dsareminder/backend/internal/middleware"
	"github.com/dsareminder/backend/internal/models"
	"github.com/dsareminder/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// PreferencesService is the interface that wraps preference management
type PreferencesService interface {
	// GetPreferences retrieves a user's difficulty and topic preferences
	GetPreferences(ctx context.Context, userID int) (*models.PreferencesResponse, error)
	// UpdatePreferences updates a user's preferences with validation
	UpdatePreferences(ctx context.Context, userID int, req *models.UpdatePreferencesRequest) (*models.PreferencesResponse, error)
}

// PreferencesHandler handles preference HTTP requests
type PreferencesHandler struct {
	BaseHandler
	service PreferencesService
}

// NewPreferencesHandler creates a new preferences handler
func NewPreferencesHandler(service PreferencesService, logger *zap.Logger) *PreferencesHandler {
	return &PreferencesHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all preferences handler routes
func (h *PreferencesHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/preferences", func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/", h.GetPreferences)
		r.Put("/", h.UpdatePreferences)
	})
}

// GetPreferences handles GET /api/v1/preferences
// @Summary Get user preferences
// @Description Get topic and difficulty preferences for the authenticated user.
// @Tags preferences
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PreferencesResponse "Preferences"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/preferences [get]
func (h *PreferencesHandler) GetPreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	prefs, err := h.service.GetPreferences(r.Context(), userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			h.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to get preferences", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, prefs)
}

// UpdatePreferences handles PUT /api/v1/preferences
// @Summary Update user preferences
// @Description Update topic and difficulty preferences for the authenticated user.
// @Tags preferences
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param preferences body models.UpdatePreferencesRequest true "Preferences to update"
// @Success 200 {object} models.PreferencesResponse "Updated preferences"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/preferences [put]
func (h *PreferencesHandler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdatePreferencesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	prefs, err := h.service.UpdatePreferences(r.Context(), userID, &req)
	if err != nil {
		h.Logger.Error("failed to update preferences", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, prefs)
}
