package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dsareminder/backend/internal/middleware"
	"github.com/dsareminder/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// StatsService is the interface that wraps LeetCode profile and activity stats
type StatsService interface {
	// GetUsername retrieves the user's stored LeetCode handle
	GetUsername(ctx context.Context, userID int) (*models.LeetCodeUsernameResponse, error)
	// UpdateUsername sets the user's LeetCode handle
	UpdateUsername(ctx context.Context, userID int, username string) error
	// Stats retrieves profile and solved counters from the upstream API
	Stats(ctx context.Context, userID int) (*models.LeetCodeStatsResponse, error)
	// Streak computes the user's current submission streak
	Streak(ctx context.Context, userID int) (*models.StreakResponse, error)
	// Practice computes the user's practice rate over the last 30 days
	Practice(ctx context.Context, userID int) (*models.PracticeResponse, error)
}

// LeetCodeHandler handles LeetCode profile HTTP requests
type LeetCodeHandler struct {
	BaseHandler
	service StatsService
}

// NewLeetCodeHandler creates a new LeetCode profile handler
func NewLeetCodeHandler(service StatsService, logger *zap.Logger) *LeetCodeHandler {
	return &LeetCodeHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all LeetCode profile handler routes
func (h *LeetCodeHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)
		r.Get("/leetcode", h.GetUsername)
		r.Post("/leetcode", h.UpdateUsername)
		r.Get("/leetcode/stats", h.Stats)
		r.Get("/streak", h.Streak)
		r.Get("/practice", h.Practice)
	})
}

// GetUsername handles GET /api/v1/leetcode
// @Summary Get the stored LeetCode handle
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LeetCodeUsernameResponse "Handle, null when unset"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/leetcode [get]
func (h *LeetCodeHandler) GetUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	resp, err := h.service.GetUsername(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get leetcode username", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// UpdateUsername handles POST /api/v1/leetcode
// @Summary Set the LeetCode handle
// @Tags leetcode
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param handle body models.UpdateLeetCodeUsernameRequest true "LeetCode handle"
// @Success 204 "No Content"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/v1/leetcode [post]
func (h *LeetCodeHandler) UpdateUsername(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	var req models.UpdateLeetCodeUsernameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.service.UpdateUsername(r.Context(), userID, req.Username); err != nil {
		h.Logger.Error("failed to update leetcode username", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Stats handles GET /api/v1/leetcode/stats
// @Summary Get LeetCode profile stats
// @Description Fetch ranking and solved counters from the upstream API.
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.LeetCodeStatsResponse "Stats"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 502 {object} map[string]string "Upstream unavailable"
// @Router /api/v1/leetcode/stats [get]
func (h *LeetCodeHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	stats, err := h.service.Stats(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to fetch leetcode stats", zap.Error(err))
		h.RespondError(w, http.StatusBadGateway, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, stats)
}

// Streak handles GET /api/v1/streak
// @Summary Get the current submission streak
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.StreakResponse "Streak"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/streak [get]
func (h *LeetCodeHandler) Streak(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	streak, err := h.service.Streak(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to compute streak", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, streak)
}

// Practice handles GET /api/v1/practice
// @Summary Get the 30-day practice rate
// @Tags leetcode
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.PracticeResponse "Practice rate"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/practice [get]
func (h *LeetCodeHandler) Practice(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	practice, err := h.service.Practice(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to compute practice rate", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, practice)
}
