package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dsareminder/backend/internal/leetcode"
	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

// StatsUserRepository is the interface that wraps user data access for profile stats
type StatsUserRepository interface {
	// GetByID retrieves a user by ID together with their selected topics
	GetByID(ctx context.Context, id int) (*models.User, error)
	// UpdateLeetCodeUsername updates a user's LeetCode handle
	UpdateLeetCodeUsername(ctx context.Context, userID int, username string) error
}

// ProfileClient is the slice of the upstream API client used for profile stats
type ProfileClient interface {
	// Profile fetches a user's public profile including the submission calendar
	Profile(ctx context.Context, username string) (*leetcode.Profile, error)
	// SolvedStats fetches a user's solved-problem counters
	SolvedStats(ctx context.Context, username string) (json.RawMessage, error)
}

// statsService implements LeetCode profile and activity stats
type statsService struct {
	repo   StatsUserRepository
	client ProfileClient
	logger *zap.Logger

	now func() time.Time
}

// NewStatsService creates a new stats service
func NewStatsService(repo StatsUserRepository, client ProfileClient, logger *zap.Logger) *statsService {
	return &statsService{
		repo:   repo,
		client: client,
		logger: logger,
		now:    time.Now,
	}
}

// GetUsername retrieves the user's stored LeetCode handle
func (s *statsService) GetUsername(ctx context.Context, userID int) (*models.LeetCodeUsernameResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &models.LeetCodeUsernameResponse{Username: user.LeetCodeUsername}, nil
}

// UpdateUsername sets the user's LeetCode handle. The handle is stored
// without upstream validation; the API is too flaky to gate on.
func (s *statsService) UpdateUsername(ctx context.Context, userID int, username string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return fmt.Errorf("username must not be empty")
	}

	if err := s.repo.UpdateLeetCodeUsername(ctx, userID, username); err != nil {
		return err
	}

	s.logger.Info("leetcode username updated", zap.Int("user_id", userID), zap.String("username", username))
	return nil
}

// Stats retrieves profile and solved counters from the upstream API
func (s *statsService) Stats(ctx context.Context, userID int) (*models.LeetCodeStatsResponse, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.LeetCodeUsername == nil || *user.LeetCodeUsername == "" {
		return nil, fmt.Errorf("leetcode username not set")
	}

	profile, err := s.client.Profile(ctx, *user.LeetCodeUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	solved, err := s.client.SolvedStats(ctx, *user.LeetCodeUsername)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch solved stats: %w", err)
	}

	return &models.LeetCodeStatsResponse{
		Username: *user.LeetCodeUsername,
		Ranking:  profile.Ranking,
		Solved:   solved,
	}, nil
}

// Streak computes the user's current submission streak from the upstream
// calendar. Missing handle or upstream failure degrades to the zero value
// rather than failing the request.
func (s *statsService) Streak(ctx context.Context, userID int) (*models.StreakResponse, error) {
	calendar, err := s.calendar(ctx, userID)
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return &models.StreakResponse{CurrentStreak: 0, LastSubmission: "Never"}, nil
	}

	streak := calculateStreak(calendar, s.today())
	return &streak, nil
}

// Practice computes the user's practice rate over the last 30 days.
// Missing handle or upstream failure degrades to the zero value.
func (s *statsService) Practice(ctx context.Context, userID int) (*models.PracticeResponse, error) {
	calendar, err := s.calendar(ctx, userID)
	if err != nil {
		return nil, err
	}
	if calendar == nil {
		return &models.PracticeResponse{}, nil
	}

	practice := calculatePracticeRate(calendar, s.today())
	return &practice, nil
}

// calendar loads the user's submission calendar, returning nil (no error)
// when the handle is unset or the upstream is unavailable
func (s *statsService) calendar(ctx context.Context, userID int) (leetcode.SubmissionCalendar, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.LeetCodeUsername == nil || *user.LeetCodeUsername == "" {
		return nil, nil
	}

	profile, err := s.client.Profile(ctx, *user.LeetCodeUsername)
	if err != nil {
		s.logger.Warn("failed to fetch submission calendar",
			zap.String("username", *user.LeetCodeUsername),
			zap.Error(err),
		)
		return nil, nil
	}

	return profile.SubmissionCalendar, nil
}

// today returns local midnight of the current day
func (s *statsService) today() time.Time {
	t := s.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// calculateStreak computes the consecutive-day submission streak ending at
// today. A streak is only current when the latest submission is from today;
// a gap of more than one day breaks it.
func calculateStreak(calendar leetcode.SubmissionCalendar, today time.Time) models.StreakResponse {
	days := calendarDays(calendar, today.Location())
	if len(days) == 0 {
		return models.StreakResponse{CurrentStreak: 0, LastSubmission: "Never"}
	}

	last := days[0]
	lastSubmission := last.Format("Jan 2")

	diffDays := int(today.Sub(last).Hours() / 24)
	if diffDays > 1 {
		return models.StreakResponse{CurrentStreak: 0, LastSubmission: lastSubmission}
	}

	streak := 1
	current := today.AddDate(0, 0, -1)
	if diffDays != 0 {
		current = today.AddDate(0, 0, -2)
	}

	for _, day := range days[1:] {
		diff := int(current.Sub(day).Hours() / 24)
		if diff == 0 {
			streak++
			current = current.AddDate(0, 0, -1)
		} else if diff == 1 {
			streak++
			current = day
		} else {
			break
		}
	}

	if diffDays != 0 {
		// Last submission was yesterday: the streak is not current
		streak = 0
	}

	return models.StreakResponse{CurrentStreak: streak, LastSubmission: lastSubmission}
}

// calculatePracticeRate computes the share of the last 30 days with at least
// one submission, plus submission totals
func calculatePracticeRate(calendar leetcode.SubmissionCalendar, today time.Time) models.PracticeResponse {
	thirtyDaysAgo := today.AddDate(0, 0, -30)

	total := 0
	last30 := 0
	daysWithSubmissions := 0
	for ts, count := range calendar {
		total += count

		unix, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			continue
		}
		day := time.Unix(unix, 0).In(today.Location())
		if !day.Before(thirtyDaysAgo) && !day.After(today) {
			last30 += count
			daysWithSubmissions++
		}
	}

	rate := int(float64(daysWithSubmissions)/30.0*100.0 + 0.5)

	return models.PracticeResponse{
		Rate:       rate,
		Total:      total,
		Last30Days: last30,
	}
}

// calendarDays converts calendar keys to midnight-aligned dates sorted
// newest first, dropping unparsable keys
func calendarDays(calendar leetcode.SubmissionCalendar, loc *time.Location) []time.Time {
	days := make([]time.Time, 0, len(calendar))
	for ts := range calendar {
		unix, err := strconv.ParseInt(ts, 10, 64)
		if err != nil {
			continue
		}
		t := time.Unix(unix, 0).In(loc)
		days = append(days, time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc))
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })
	return days
}
