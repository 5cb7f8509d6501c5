// Package repositories provides MySQL data access for the application
package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

// userRepository implements user data access
type userRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB, logger *zap.Logger) *userRepository {
	return &userRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, name, difficulty)
		VALUES (?, ?, ?)
	`

	if user.Difficulty == "" {
		user.Difficulty = models.DifficultyEasy
	}

	result, err := r.db.ExecContext(ctx, query, user.Email, user.Name, user.Difficulty)
	if err != nil {
		r.logger.Error("failed to create user", zap.Error(err))
		return fmt.Errorf("failed to create user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		r.logger.Error("failed to get last insert id", zap.Error(err))
		return fmt.Errorf("failed to get last insert id: %w", err)
	}

	user.ID = int(id)
	return nil
}

// GetByID retrieves a user by ID together with their selected topics
func (r *userRepository) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT id, email, name, difficulty, leetcode_username, created_at
		FROM users
		WHERE id = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Difficulty,
		&user.LeetCodeUsername,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by id", zap.Error(err), zap.Int("user_id", id))
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	topics, err := r.loadTopics(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Topics = topics

	return user, nil
}

// GetByEmail retrieves a user by email together with their selected topics
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, email, name, difficulty, leetcode_username, created_at
		FROM users
		WHERE email = ?
		LIMIT 1
	`

	user := &models.User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.Difficulty,
		&user.LeetCodeUsername,
		&user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		r.logger.Error("failed to get user by email", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	topics, err := r.loadTopics(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	user.Topics = topics

	return user, nil
}

// loadTopics retrieves the topic names selected by a user
func (r *userRepository) loadTopics(ctx context.Context, userID int) ([]string, error) {
	query := `
		SELECT t.name
		FROM topics t
		JOIN user_topics ut ON ut.topic_id = t.id
		WHERE ut.user_id = ?
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		r.logger.Error("failed to load user topics", zap.Error(err), zap.Int("user_id", userID))
		return nil, fmt.Errorf("failed to load user topics: %w", err)
	}
	defer rows.Close()

	topics := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan topic name: %w", err)
		}
		topics = append(topics, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user topics: %w", err)
	}

	return topics, nil
}

// UpdateDifficulty updates a user's difficulty preference
func (r *userRepository) UpdateDifficulty(ctx context.Context, userID int, difficulty models.Difficulty) error {
	query := `UPDATE users SET difficulty = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, difficulty, userID)
	if err != nil {
		r.logger.Error("failed to update difficulty", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to update difficulty: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		// Difficulty may be unchanged, verify the user exists
		exists, err := r.existsByID(ctx, userID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrUserNotFound
		}
	}

	return nil
}

// ReplaceTopics replaces a user's topic selection with the given set.
// Topic rows are created on first use.
func (r *userRepository) ReplaceTopics(ctx context.Context, userID int, topics []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_topics WHERE user_id = ?`, userID); err != nil {
		r.logger.Error("failed to clear user topics", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to clear user topics: %w", err)
	}

	for _, name := range topics {
		// Upsert the topic and resolve its id in one statement
		result, err := tx.ExecContext(ctx,
			`INSERT INTO topics (name) VALUES (?) ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id)`,
			name,
		)
		if err != nil {
			r.logger.Error("failed to upsert topic", zap.Error(err), zap.String("topic", name))
			return fmt.Errorf("failed to upsert topic: %w", err)
		}

		topicID, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to get topic id: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO user_topics (user_id, topic_id) VALUES (?, ?)`,
			userID, topicID,
		); err != nil {
			r.logger.Error("failed to link user topic", zap.Error(err), zap.Int("user_id", userID))
			return fmt.Errorf("failed to link user topic: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit topics update: %w", err)
	}

	return nil
}

// UpdateLeetCodeUsername updates a user's LeetCode handle
func (r *userRepository) UpdateLeetCodeUsername(ctx context.Context, userID int, username string) error {
	query := `UPDATE users SET leetcode_username = ? WHERE id = ?`

	if _, err := r.db.ExecContext(ctx, query, username, userID); err != nil {
		r.logger.Error("failed to update leetcode username", zap.Error(err), zap.Int("user_id", userID))
		return fmt.Errorf("failed to update leetcode username: %w", err)
	}

	return nil
}

// ListWithPreferences retrieves all users that have selected at least one topic
func (r *userRepository) ListWithPreferences(ctx context.Context) ([]models.UserListItem, error) {
	query := `
		SELECT DISTINCT u.id, u.email, u.name
		FROM users u
		JOIN user_topics ut ON ut.user_id = u.id
		ORDER BY u.id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		r.logger.Error("failed to list users with preferences", zap.Error(err))
		return nil, fmt.Errorf("failed to list users with preferences: %w", err)
	}
	defer rows.Close()

	users := []models.UserListItem{}
	for rows.Next() {
		var u models.UserListItem
		if err := rows.Scan(&u.ID, &u.Email, &u.Name); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return users, nil
}

// existsByID checks if a user exists with the given ID
func (r *userRepository) existsByID(ctx context.Context, userID int) (bool, error) {
	query := `SELECT EXISTS(SELECT * FROM users WHERE id = ?)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}

	return exists, nil
}
