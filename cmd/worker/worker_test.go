package main

import (
	"context"
	"testing"

	"github.com/dsareminder/backend/internal/models"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockDispatchService struct {
	result *models.DispatchResult
	calls  []int
}

func (m *mockDispatchService) DispatchToUser(ctx context.Context, userID int) *models.DispatchResult {
	m.calls = append(m.calls, userID)
	return m.result
}

func newTestWorker(result *models.DispatchResult) (*Worker, *mockDispatchService) {
	logger, _ := zap.NewDevelopment()
	dispatch := &mockDispatchService{result: result}
	return NewWorker(logger, dispatch), dispatch
}

func TestWorker_HandleDispatchUser(t *testing.T) {
	t.Run("sent returns nil", func(t *testing.T) {
		w, dispatch := newTestWorker(&models.DispatchResult{
			Outcome:  models.DispatchSent,
			Question: "Two Sum",
		})

		err := w.HandleDispatchUser(context.Background(), asynq.NewTask(dispatchTaskType, []byte("42")))

		assert.NoError(t, err)
		assert.Equal(t, []int{42}, dispatch.calls)
	})

	t.Run("already sent returns nil", func(t *testing.T) {
		w, _ := newTestWorker(&models.DispatchResult{Outcome: models.DispatchAlreadySent})

		err := w.HandleDispatchUser(context.Background(), asynq.NewTask(dispatchTaskType, []byte("7")))

		assert.NoError(t, err)
	})

	t.Run("deleted user returns nil", func(t *testing.T) {
		w, _ := newTestWorker(&models.DispatchResult{
			Outcome: models.DispatchFailed,
			Reason:  "user not found",
		})

		err := w.HandleDispatchUser(context.Background(), asynq.NewTask(dispatchTaskType, []byte("7")))

		assert.NoError(t, err)
	})

	t.Run("transient failure returns error for retry", func(t *testing.T) {
		w, _ := newTestWorker(&models.DispatchResult{
			Outcome: models.DispatchFailed,
			Reason:  "failed to fetch problems: upstream returned 429",
		})

		err := w.HandleDispatchUser(context.Background(), asynq.NewTask(dispatchTaskType, []byte("7")))

		require.Error(t, err)
		assert.NotErrorIs(t, err, asynq.SkipRetry)
		assert.Contains(t, err.Error(), "dispatch failed for user 7")
	})

	t.Run("unparsable payload skips retry", func(t *testing.T) {
		w, dispatch := newTestWorker(&models.DispatchResult{Outcome: models.DispatchSent})

		err := w.HandleDispatchUser(context.Background(), asynq.NewTask(dispatchTaskType, []byte("not-a-number")))

		require.Error(t, err)
		assert.ErrorIs(t, err, asynq.SkipRetry)
		assert.Empty(t, dispatch.calls)
	})
}
