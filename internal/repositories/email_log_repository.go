package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dsareminder/backend/internal/models"
	"github.com/go-sql-driver/mysql"
	"go.uber.org/zap"
)

// mysqlDuplicateEntry is the MySQL error number for unique key violations
const mysqlDuplicateEntry = 1062

// emailLogRepository implements email log data access
type emailLogRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewEmailLogRepository creates a new email log repository
func NewEmailLogRepository(db *sql.DB, logger *zap.Logger) *emailLogRepository {
	return &emailLogRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new email log row. The table carries a uniqueness
// constraint on (user_id, sent_on); a violation is reported as
// ErrDuplicateSendDay so callers can treat a lost race as "already sent".
func (r *emailLogRepository) Create(ctx context.Context, log *models.EmailLog) error {
	query := `
		INSERT INTO email_logs (user_id, question_link, sent_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query, log.UserID, log.QuestionLink, log.SentAt)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateSendDay
		}
		r.logger.Error("failed to create email log", zap.Error(err), zap.Int("user_id", log.UserID))
		return fmt.Errorf("failed to create email log: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	log.ID = int(id)
	return nil
}

// DeleteSince removes the user's email logs at or after the given time.
// Force dispatch uses it to clear today's send marker so a fresh row can
// be inserted under the one-send-per-day constraint.
func (r *emailLogRepository) DeleteSince(ctx context.Context, userID int, since time.Time) error {
	query := `DELETE FROM email_logs WHERE user_id = ? AND sent_at >= ?`

	if _, err := r.db.ExecContext(ctx, query, userID, since); err != nil {
		r.logger.Error("failed to delete email logs", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to delete email logs: %w", err)
	}

	return nil
}

// ExistsSince checks if any email log exists for the user at or after the given time
func (r *emailLogRepository) ExistsSince(ctx context.Context, userID int, since time.Time) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM email_logs WHERE user_id = ? AND sent_at >= ?)`

	var exists bool
	err := r.db.QueryRowContext(ctx, query, userID, since).Scan(&exists)
	if err != nil {
		r.logger.Error("failed to check email log existence", zap.Error(err), zap.Int("user_id", userID))
		return false, fmt.Errorf("failed to check email log existence: %w", err)
	}

	return exists, nil
}

// ListByUser retrieves the most recent email logs for a user, newest first
func (r *emailLogRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.EmailLog, error) {
	query := `
		SELECT id, user_id, question_link, sent_at
		FROM email_logs
		WHERE user_id = ?
		ORDER BY sent_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		r.logger.Error("failed to list email logs", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to list email logs: %w", err)
	}
	defer rows.Close()

	logs := []models.EmailLog{}
	for rows.Next() {
		var l models.EmailLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.QuestionLink, &l.SentAt); err != nil {
			return nil, fmt.Errorf("failed to scan email log: %w", err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate email logs: %w", err)
	}

	return logs, nil
}
