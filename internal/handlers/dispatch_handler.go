package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/dsareminder/backend/internal/models"
	"github.com/dsareminder/backend/internal/repositories"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// DispatchService is the interface that wraps daily question dispatching
type DispatchService interface {
	// DispatchToUser sends today's question to a single user
	DispatchToUser(ctx context.Context, userID int) *models.DispatchResult
	// ForceDispatchToUser sends a question ignoring the already-sent check
	ForceDispatchToUser(ctx context.Context, userID int) *models.DispatchResult
	// DispatchAll dispatches to every user with preferences
	DispatchAll(ctx context.Context, force bool) (*models.BatchDispatchResult, error)
}

// DispatchUserLookup resolves users for the send-to-specific endpoint
type DispatchUserLookup interface {
	// GetByEmail retrieves a user by email
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// DispatchHandler handles operator dispatch HTTP requests
type DispatchHandler struct {
	BaseHandler
	service DispatchService
	users   DispatchUserLookup
}

// NewDispatchHandler creates a new dispatch handler
func NewDispatchHandler(service DispatchService, users DispatchUserLookup, logger *zap.Logger) *DispatchHandler {
	return &DispatchHandler{
		BaseHandler: BaseHandler{Logger: logger},
		service:     service,
		users:       users,
	}
}

// RegisterRoutes registers all dispatch handler routes
func (h *DispatchHandler) RegisterRoutes(r chi.Router) {
	r.Route("/dispatch", func(r chi.Router) {
		r.Post("/run", h.Run)
		r.Post("/users/{id}", h.DispatchUser)
		r.Post("/email", h.DispatchEmail)
	})
}

// Run handles POST /api/v1/dispatch/run
// @Summary Dispatch questions to all users with preferences
// @Description Run a batch dispatch over every user that has selected topics. With force=true the already-sent check is skipped.
// @Tags dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param force query bool false "Skip the already-sent check"
// @Success 200 {object} models.BatchDispatchResult "Batch summary"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /api/v1/dispatch/run [post]
func (h *DispatchHandler) Run(w http.ResponseWriter, r *http.Request) {
	force := r.URL.Query().Get("force") == "true"

	batch, err := h.service.DispatchAll(r.Context(), force)
	if err != nil {
		h.Logger.Error("batch dispatch failed", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.RespondJSON(w, http.StatusOK, batch)
}

// DispatchUser handles POST /api/v1/dispatch/users/{id}
// @Summary Dispatch a question to one user by ID
// @Tags dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "User ID"
// @Param force query bool false "Skip the already-sent check"
// @Success 200 {object} models.DispatchResult "Dispatch result"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /api/v1/dispatch/users/{id} [post]
func (h *DispatchHandler) DispatchUser(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID <= 0 {
		h.RespondError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	h.respondDispatch(w, r, userID)
}

// DispatchEmail handles POST /api/v1/dispatch/email
// @Summary Dispatch a question to one user by email
// @Tags dispatch
// @Produce json
// @Security ApiKeyAuth
// @Param email query string true "User email"
// @Param force query bool false "Skip the already-sent check"
// @Success 200 {object} models.DispatchResult "Dispatch result"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 404 {object} map[string]string "User not found"
// @Router /api/v1/dispatch/email [post]
func (h *DispatchHandler) DispatchEmail(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		h.RespondError(w, http.StatusBadRequest, "email parameter is required")
		return
	}

	user, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			h.RespondError(w, http.StatusNotFound, "user not found")
			return
		}
		h.Logger.Error("failed to look up user", zap.Error(err))
		h.RespondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.respondDispatch(w, r, user.ID)
}

// respondDispatch runs one dispatch and writes the result
func (h *DispatchHandler) respondDispatch(w http.ResponseWriter, r *http.Request, userID int) {
	var result *models.DispatchResult
	if r.URL.Query().Get("force") == "true" {
		result = h.service.ForceDispatchToUser(r.Context(), userID)
	} else {
		result = h.service.DispatchToUser(r.Context(), userID)
	}

	h.RespondJSON(w, http.StatusOK, result)
}
