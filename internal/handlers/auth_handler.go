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

// AuthService is the interface that wraps login and user provisioning
type AuthService interface {
	// Login resolves the user for a verified identity, creating the user on
	// first login, and returns fresh access and refresh tokens
	Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error)
	// GetMe retrieves the authenticated user's record
	GetMe(ctx context.Context, userID int) (*models.User, error)
}

// AuthHandler handles authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
	}
}

// RegisterRoutes registers auth routes. Login is mounted behind the API key
// middleware (the OAuth gateway calls it), me behind user auth.
func (h *AuthHandler) RegisterRoutes(r chi.Router, apiKeyMiddleware, authMiddleware func(http.Handler) http.Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.With(apiKeyMiddleware).Post("/login", h.Login)
		r.With(authMiddleware).Get("/me", h.GetMe)
	})
}

// Login handles POST /api/v1/auth/login
// @Summary Log a user in
// @Description Exchange a gateway-verified identity for API tokens. Creates the user on first login.
// @Tags auth
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param login body models.LoginRequest true "Verified identity"
// @Success 200 {object} models.LoginResponse "Tokens and user"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/v1/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.Logger.Error("login failed", zap.Error(err))
		h.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, resp)
}

// GetMe handles GET /api/v1/auth/me
// @Summary Get the authenticated user
// @Description Get the authenticated user's record including preferences.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.User "User"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/auth/me [get]
func (h *AuthHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, "user ID not found in context")
		return
	}

	user, err := h.service.GetMe(r.Context(), userID)
	if err != nil {
		h.Logger.Error("failed to get user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, user)
}
