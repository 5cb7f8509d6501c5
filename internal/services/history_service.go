package services

import (
	"context"
	"regexp"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

// historyLimit is how many recent sends the history endpoint returns
const historyLimit = 10

// slugPattern extracts the problem slug from a stored question link
var slugPattern = regexp.MustCompile(`problems/([^/]+)`)

// HistoryEmailLogRepository is the interface that wraps email log data access for history
type HistoryEmailLogRepository interface {
	// ListByUser retrieves the most recent email logs for a user, newest first
	//
	// "userID" parameter identifies the user, "limit" bounds the result count.
	//
	// If some error occurs during data retrieve, the error will be returned together with "nil" value.
	ListByUser(ctx context.Context, userID, limit int) ([]models.EmailLog, error)
}

// historyService implements email history retrieval
type historyService struct {
	repo   HistoryEmailLogRepository
	logger *zap.Logger
}

// NewHistoryService creates a new history service
func NewHistoryService(repo HistoryEmailLogRepository, logger *zap.Logger) *historyService {
	return &historyService{
		repo:   repo,
		logger: logger,
	}
}

// ListHistory retrieves the user's most recent question sends with the
// problem slug extracted from each stored link
func (s *historyService) ListHistory(ctx context.Context, userID int) ([]models.EmailLogListItem, error) {
	logs, err := s.repo.ListByUser(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}

	items := make([]models.EmailLogListItem, 0, len(logs))
	for _, l := range logs {
		items = append(items, models.EmailLogListItem{
			ID:           l.ID,
			QuestionLink: l.QuestionLink,
			TitleSlug:    extractSlug(l.QuestionLink),
			SentAt:       l.SentAt,
		})
	}

	return items, nil
}

// extractSlug pulls the problem slug out of a question link,
// returning "" when the link doesn't match the expected shape
func extractSlug(link string) string {
	match := slugPattern.FindStringSubmatch(link)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
