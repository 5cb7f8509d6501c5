// Package services implements the application's business logic
package services

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/dsareminder/backend/internal/models"
	"github.com/dsareminder/backend/internal/repositories"
	"go.uber.org/zap"
)

// DispatchUserRepository is the interface that wraps user data access needed for dispatching
type DispatchUserRepository interface {
	// GetByID retrieves a user by ID together with their selected topics
	//
	// "id" parameter is used to retrieve a user by their ID.
	//
	// If the user is not found, repositories.ErrUserNotFound is returned together with "nil" value.
	GetByID(ctx context.Context, id int) (*models.User, error)
	// ListWithPreferences retrieves all users that have selected at least one topic
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListWithPreferences(ctx context.Context) ([]models.UserListItem, error)
}

// DispatchEmailLogRepository is the interface that wraps email log data access needed for dispatching
type DispatchEmailLogRepository interface {
	// Create inserts a new email log row
	//
	// "log" parameter is used to insert a new email log row.
	//
	// If the row violates the one-send-per-day constraint,
	// repositories.ErrDuplicateSendDay is returned.
	Create(ctx context.Context, log *models.EmailLog) error
	// DeleteSince removes the user's email logs at or after the given time
	//
	// "userID" and "since" parameters bound the deletion.
	//
	// If some error occurs during the deletion, the error will be returned.
	DeleteSince(ctx context.Context, userID int, since time.Time) error
	// ExistsSince checks if any email log exists for the user at or after the given time
	//
	// "userID" and "since" parameters bound the existence check.
	//
	// If some error occurs during the check, the error will be returned together with "false" value.
	ExistsSince(ctx context.Context, userID int, since time.Time) (bool, error)
}

// QuestionFetcher resolves candidate problems for a topics/difficulty pair
type QuestionFetcher interface {
	// Fetch returns the candidate problem list for the given topics and difficulty
	Fetch(ctx context.Context, topics []string, difficulty models.Difficulty) ([]models.Problem, error)
}

// QuestionMailer sends the daily question email
type QuestionMailer interface {
	// SendQuestion sends the daily question email to a user
	SendQuestion(to, name string, problem models.Problem, link string) error
}

// dispatchService orchestrates daily question sends
type dispatchService struct {
	users     DispatchUserRepository
	emailLogs DispatchEmailLogRepository
	fetcher   QuestionFetcher
	mailer    QuestionMailer
	logger    *zap.Logger

	// injected for deterministic tests
	now  func() time.Time
	pick func(n int) int
}

// NewDispatchService creates a new dispatch service
func NewDispatchService(
	users DispatchUserRepository,
	emailLogs DispatchEmailLogRepository,
	fetcher QuestionFetcher,
	mailer QuestionMailer,
	logger *zap.Logger,
) *dispatchService {
	return &dispatchService{
		users:     users,
		emailLogs: emailLogs,
		fetcher:   fetcher,
		mailer:    mailer,
		logger:    logger,
		now:       time.Now,
		pick:      rand.Intn,
	}
}

// DispatchToUser sends today's question to a single user. At most one email
// log row is created and at most one email goes out per invocation. All
// failures are reported through the returned result, never as errors.
func (s *dispatchService) DispatchToUser(ctx context.Context, userID int) *models.DispatchResult {
	return s.dispatch(ctx, userID, false)
}

// ForceDispatchToUser sends a question to a user even if one was already
// sent today. Used by the operator force-send endpoints.
func (s *dispatchService) ForceDispatchToUser(ctx context.Context, userID int) *models.DispatchResult {
	return s.dispatch(ctx, userID, true)
}

func (s *dispatchService) dispatch(ctx context.Context, userID int, force bool) *models.DispatchResult {
	// Day boundary: local midnight of the current day
	if force {
		// Clear today's send marker so the insert below can succeed under
		// the one-send-per-day constraint
		if err := s.emailLogs.DeleteSince(ctx, userID, s.startOfToday()); err != nil {
			return s.failed(userID, "failed to clear send history: "+err.Error())
		}
	} else {
		sent, err := s.emailLogs.ExistsSince(ctx, userID, s.startOfToday())
		if err != nil {
			return s.failed(userID, "failed to check send history: "+err.Error())
		}
		if sent {
			s.logger.Debug("question already sent today", zap.Int("user_id", userID))
			return &models.DispatchResult{Outcome: models.DispatchAlreadySent}
		}
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return s.failed(userID, "user not found")
		}
		return s.failed(userID, "failed to load user: "+err.Error())
	}
	if user.Email == "" {
		return s.failed(userID, "user has no email address")
	}

	if len(user.Topics) == 0 {
		return s.failed(userID, "user has no selected topics")
	}

	problems, err := s.fetcher.Fetch(ctx, user.Topics, user.Difficulty)
	if err != nil {
		return s.failed(userID, "failed to fetch questions: "+err.Error())
	}
	if len(problems) == 0 {
		return s.failed(userID, "no questions found for user preferences")
	}

	// Select one candidate uniformly at random
	selected := problems[s.pick(len(problems))]
	link := selected.Link()

	// Persist the send record first; it is the idempotence marker for the day
	emailLog := &models.EmailLog{
		UserID:       user.ID,
		QuestionLink: link,
		SentAt:       s.now(),
	}
	if err := s.emailLogs.Create(ctx, emailLog); err != nil {
		if errors.Is(err, repositories.ErrDuplicateSendDay) {
			// A concurrent dispatch won the day, treat as already sent
			s.logger.Info("lost dispatch race, send record already exists", zap.Int("user_id", userID))
			return &models.DispatchResult{Outcome: models.DispatchAlreadySent}
		}
		return s.failed(userID, "failed to persist send record: "+err.Error())
	}

	// The record stays even if the email send fails; a user may then show
	// "sent" in history without having received mail
	if err := s.mailer.SendQuestion(user.Email, user.Name, selected, link); err != nil {
		result := s.failed(userID, "failed to send email: "+err.Error())
		result.EmailLog = emailLog
		return result
	}

	s.logger.Info("question dispatched",
		zap.Int("user_id", user.ID),
		zap.String("question", selected.Title),
	)

	return &models.DispatchResult{
		Outcome:  models.DispatchSent,
		Question: selected.Title,
		EmailLog: emailLog,
	}
}

// DispatchAll dispatches to every user with preferences. Users are processed
// concurrently; per-user failures are collected, never propagated.
func (s *dispatchService) DispatchAll(ctx context.Context, force bool) (*models.BatchDispatchResult, error) {
	users, err := s.users.ListWithPreferences(ctx)
	if err != nil {
		return nil, err
	}

	batch := &models.BatchDispatchResult{Processed: len(users)}

	var wg sync.WaitGroup
	var mu sync.Mutex
	for _, u := range users {
		wg.Add(1)
		go func(u models.UserListItem) {
			defer wg.Done()

			result := s.dispatch(ctx, u.ID, force)

			mu.Lock()
			defer mu.Unlock()
			switch result.Outcome {
			case models.DispatchSent:
				batch.Sent++
			case models.DispatchAlreadySent:
				batch.Skipped++
			default:
				batch.Failed++
				batch.Errors = append(batch.Errors, models.BatchDispatchItem{
					UserID: u.ID,
					Email:  u.Email,
					Reason: result.Reason,
				})
			}
		}(u)
	}
	wg.Wait()

	s.logger.Info("batch dispatch finished",
		zap.Int("processed", batch.Processed),
		zap.Int("sent", batch.Sent),
		zap.Int("skipped", batch.Skipped),
		zap.Int("failed", batch.Failed),
	)

	return batch, nil
}

// startOfToday returns local midnight of the current day
func (s *dispatchService) startOfToday() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// failed builds a failure result and logs it
func (s *dispatchService) failed(userID int, reason string) *models.DispatchResult {
	s.logger.Warn("dispatch failed", zap.Int("user_id", userID), zap.String("reason", reason))
	return &models.DispatchResult{Outcome: models.DispatchFailed, Reason: reason}
}
