package main

import (
	"context"
	"strconv"

	"github.com/dsareminder/backend/internal/models"
	"github.com/hibiken/asynq"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const dispatchTaskType = "dispatch:user"

// DispatchCandidateRepository lists users eligible for the daily dispatch
type DispatchCandidateRepository interface {
	// ListWithPreferences retrieves all users that have selected at least one topic
	ListWithPreferences(ctx context.Context) ([]models.UserListItem, error)
}

// TaskEnqueuer enqueues tasks for the worker, satisfied by asynq.Client
type TaskEnqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// Scheduler enqueues one dispatch task per eligible user on each cron tick
type Scheduler struct {
	cron        *cron.Cron
	cronSpec    string
	asynqClient TaskEnqueuer
	userRepo    DispatchCandidateRepository
	logger      *zap.Logger
}

// NewScheduler creates a new scheduler instance
func NewScheduler(cronSpec string, asynqClient TaskEnqueuer, userRepo DispatchCandidateRepository, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		cronSpec:    cronSpec,
		asynqClient: asynqClient,
		userRepo:    userRepo,
		logger:      logger,
	}
}

// Start registers the cron entry and starts the cron loop
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.cronSpec, s.enqueueDailyDispatch); err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("Scheduler started", zap.String("cron", s.cronSpec))
	return nil
}

// Stop stops the cron loop and waits for a running tick to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

// enqueueDailyDispatch fans the daily send out into per-user queue tasks.
// A user whose enqueue fails is skipped until the next tick; the worker's
// already-sent check keeps reruns from double-sending.
func (s *Scheduler) enqueueDailyDispatch() {
	ctx := context.Background()

	users, err := s.userRepo.ListWithPreferences(ctx)
	if err != nil {
		s.logger.Error("Failed to list dispatch candidates", zap.Error(err))
		return
	}

	if len(users) == 0 {
		s.logger.Info("No users with preferences, nothing to dispatch")
		return
	}

	enqueued := 0
	for _, user := range users {
		payload := []byte(strconv.Itoa(user.ID))
		task := asynq.NewTask(dispatchTaskType, payload)

		if _, err := s.asynqClient.Enqueue(task, asynq.Queue("default")); err != nil {
			s.logger.Error("Failed to enqueue dispatch task",
				zap.Int("user_id", user.ID),
				zap.Error(err))
			continue
		}
		enqueued++
	}

	s.logger.Info("Enqueued daily dispatch tasks",
		zap.Int("candidates", len(users)),
		zap.Int("enqueued", enqueued))
}
