package handlers

import (
	"context"
	"net/http"

	"github.com/dsareminder/backend/internal/middleware"
	"github.com/dsareminder/backend/internal/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// HistoryService is the interface that wraps email history retrieval
type HistoryService interface {
	// ListHistory retrieves the user's most recent question sends
	ListHistory(ctx context.Context, userID int) ([]models.EmailLogListItem, error)
}

// HistoryHandler handles email history HTTP requests
type HistoryHandler struct {
	BaseHandler
	service HistoryService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service HistoryService, logger *zap.Logger) *HistoryHandler {
	return &HistoryHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers all history handler routes
func (h *HistoryHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/history", h.ListHistory)
}

// ListHistory handles GET /api/v1/history
// @Summary Get question email history
// @Description Get the 10 most recent question emails sent to the authenticated user.
// @Tags history
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.EmailLogListItem "Email history"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/history [get]
func (h *HistoryHandler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	items, err := h.service.ListHistory(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to list history", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, items)
}
