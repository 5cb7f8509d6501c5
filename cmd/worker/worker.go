package main

import (
	"context"
	"fmt"

	"github.com/dsareminder/backend/internal/models"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const dispatchTaskType = "dispatch:user"

// DispatchService sends the daily question to a single user
type DispatchService interface {
	// DispatchToUser sends today's question to a single user
	DispatchToUser(ctx context.Context, userID int) *models.DispatchResult
}

// Worker handles dispatch task processing
type Worker struct {
	logger   *zap.Logger
	dispatch DispatchService
}

// NewWorker creates a new worker instance
func NewWorker(logger *zap.Logger, dispatch DispatchService) *Worker {
	return &Worker{
		logger:   logger,
		dispatch: dispatch,
	}
}

// HandleDispatchUser handles a per-user dispatch task
func (w *Worker) HandleDispatchUser(ctx context.Context, t *asynq.Task) error {
	// Parse user ID from payload
	userIDStr := string(t.Payload())
	userID := 0
	if _, err := fmt.Sscanf(userIDStr, "%d", &userID); err != nil {
		return fmt.Errorf("failed to parse user ID: %w: %w", err, asynq.SkipRetry)
	}

	result := w.dispatch.DispatchToUser(ctx, userID)

	switch result.Outcome {
	case models.DispatchSent:
		w.logger.Info("Dispatched daily question",
			zap.Int("user_id", userID),
			zap.String("question", result.Question))
		return nil
	case models.DispatchAlreadySent:
		w.logger.Info("Question already sent today, skipping",
			zap.Int("user_id", userID))
		return nil
	default:
		// The user was deleted between enqueue and processing, nothing to retry
		if result.Reason == "user not found" {
			w.logger.Warn("Dispatch target no longer exists",
				zap.Int("user_id", userID))
			return nil
		}
		// Transient failures go back to the queue. The already-sent check
		// keeps retries from producing a second email.
		return fmt.Errorf("dispatch failed for user %d: %s", userID, result.Reason)
	}
}
