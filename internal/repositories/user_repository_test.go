package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dsareminder/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// setupUserTestRepository creates a user repository with a mock database
func setupUserTestRepository(t *testing.T) (*userRepository, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	logger, err := zap.NewDevelopment()
	require.NoError(t, err)

	repo := NewUserRepository(db, logger)

	cleanup := func() {
		db.Close()
	}

	return repo, mock, cleanup
}

func TestNewUserRepository(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	db := &sql.DB{}

	repo := NewUserRepository(db, logger)

	assert.NotNil(t, repo)
	assert.Equal(t, db, repo.db)
	assert.Equal(t, logger, repo.logger)
}

func TestUserRepository_Create(t *testing.T) {
	tests := []struct {
		name          string
		user          *models.User
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedID    int
		expectedDiff  models.Difficulty
	}{
		{
			name: "success",
			user: &models.User{Email: "alice@example.com", Name: "Alice", Difficulty: models.DifficultyMedium},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("alice@example.com", "Alice", models.DifficultyMedium).
					WillReturnResult(sqlmock.NewResult(7, 1))
			},
			expectedError: false,
			expectedID:    7,
			expectedDiff:  models.DifficultyMedium,
		},
		{
			name: "defaults missing difficulty to easy",
			user: &models.User{Email: "bob@example.com", Name: "Bob"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("bob@example.com", "Bob", models.DifficultyEasy).
					WillReturnResult(sqlmock.NewResult(8, 1))
			},
			expectedError: false,
			expectedID:    8,
			expectedDiff:  models.DifficultyEasy,
		},
		{
			name: "database error",
			user: &models.User{Email: "carol@example.com", Name: "Carol"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO users`).
					WithArgs("carol@example.com", "Carol", models.DifficultyEasy).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.Create(context.Background(), tt.user)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedID, tt.user.ID)
				assert.Equal(t, tt.expectedDiff, tt.user.Difficulty)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name           string
		userID         int
		setupMock      func(sqlmock.Sqlmock)
		expectedError  bool
		notFound       bool
		expectedTopics []string
	}{
		{
			name:   "success with topics",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				userRows := sqlmock.NewRows([]string{"id", "email", "name", "difficulty", "leetcode_username", "created_at"}).
					AddRow(1, "alice@example.com", "Alice", "MEDIUM", nil, createdAt)
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(userRows)

				topicRows := sqlmock.NewRows([]string{"name"}).
					AddRow("arrays").
					AddRow("graphs")
				mock.ExpectQuery(`SELECT t.name FROM topics t JOIN user_topics ut`).
					WithArgs(1).
					WillReturnRows(topicRows)
			},
			expectedError:  false,
			expectedTopics: []string{"arrays", "graphs"},
		},
		{
			name:   "success without topics",
			userID: 2,
			setupMock: func(mock sqlmock.Sqlmock) {
				userRows := sqlmock.NewRows([]string{"id", "email", "name", "difficulty", "leetcode_username", "created_at"}).
					AddRow(2, "bob@example.com", "Bob", "EASY", nil, createdAt)
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE id = \?`).
					WithArgs(2).
					WillReturnRows(userRows)

				mock.ExpectQuery(`SELECT t.name FROM topics t JOIN user_topics ut`).
					WithArgs(2).
					WillReturnRows(sqlmock.NewRows([]string{"name"}))
			},
			expectedError:  false,
			expectedTopics: []string{},
		},
		{
			name:   "user not found",
			userID: 99,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE id = \?`).
					WithArgs(99).
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name:   "database error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE id = \?`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
		{
			name:   "topics query error",
			userID: 1,
			setupMock: func(mock sqlmock.Sqlmock) {
				userRows := sqlmock.NewRows([]string{"id", "email", "name", "difficulty", "leetcode_username", "created_at"}).
					AddRow(1, "alice@example.com", "Alice", "MEDIUM", nil, createdAt)
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE id = \?`).
					WithArgs(1).
					WillReturnRows(userRows)

				mock.ExpectQuery(`SELECT t.name FROM topics t JOIN user_topics ut`).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByID(context.Background(), tt.userID)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.notFound {
					assert.ErrorIs(t, err, ErrUserNotFound)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.userID, user.ID)
				assert.Equal(t, tt.expectedTopics, user.Topics)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_GetByEmail(t *testing.T) {
	createdAt := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		email         string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:  "success",
			email: "alice@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				userRows := sqlmock.NewRows([]string{"id", "email", "name", "difficulty", "leetcode_username", "created_at"}).
					AddRow(1, "alice@example.com", "Alice", "HARD", "alice_lc", createdAt)
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE email = \?`).
					WithArgs("alice@example.com").
					WillReturnRows(userRows)

				mock.ExpectQuery(`SELECT t.name FROM topics t JOIN user_topics ut`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("dp"))
			},
			expectedError: false,
		},
		{
			name:  "user not found",
			email: "nobody@example.com",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT id, email, name, difficulty, leetcode_username, created_at FROM users WHERE email = \?`).
					WithArgs("nobody@example.com").
					WillReturnError(sql.ErrNoRows)
			},
			expectedError: true,
			notFound:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			user, err := repo.GetByEmail(context.Background(), tt.email)

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, user)
				if tt.notFound {
					assert.ErrorIs(t, err, ErrUserNotFound)
				}
			} else {
				require.NoError(t, err)
				require.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				require.NotNil(t, user.LeetCodeUsername)
				assert.Equal(t, "alice_lc", *user.LeetCodeUsername)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateDifficulty(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		difficulty    models.Difficulty
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		notFound      bool
	}{
		{
			name:       "success",
			userID:     1,
			difficulty: models.DifficultyHard,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET difficulty = \? WHERE id = \?`).
					WithArgs(models.DifficultyHard, 1).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
			expectedError: false,
		},
		{
			name:       "unchanged value for existing user",
			userID:     1,
			difficulty: models.DifficultyEasy,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET difficulty = \? WHERE id = \?`).
					WithArgs(models.DifficultyEasy, 1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE id = \?\)`).
					WithArgs(1).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
			},
			expectedError: false,
		},
		{
			name:       "user not found",
			userID:     99,
			difficulty: models.DifficultyEasy,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET difficulty = \? WHERE id = \?`).
					WithArgs(models.DifficultyEasy, 99).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectQuery(`SELECT EXISTS\(SELECT \* FROM users WHERE id = \?\)`).
					WithArgs(99).
					WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedError: true,
			notFound:      true,
		},
		{
			name:       "database error",
			userID:     1,
			difficulty: models.DifficultyMedium,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`UPDATE users SET difficulty = \? WHERE id = \?`).
					WithArgs(models.DifficultyMedium, 1).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.UpdateDifficulty(context.Background(), tt.userID, tt.difficulty)

			if tt.expectedError {
				assert.Error(t, err)
				if tt.notFound {
					assert.ErrorIs(t, err, ErrUserNotFound)
				}
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ReplaceTopics(t *testing.T) {
	tests := []struct {
		name          string
		userID        int
		topics        []string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
	}{
		{
			name:   "success",
			userID: 1,
			topics: []string{"arrays", "graphs"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM user_topics WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectExec(`INSERT INTO topics \(name\) VALUES \(\?\) ON DUPLICATE KEY UPDATE`).
					WithArgs("arrays").
					WillReturnResult(sqlmock.NewResult(10, 1))
				mock.ExpectExec(`INSERT INTO user_topics \(user_id, topic_id\) VALUES \(\?, \?\)`).
					WithArgs(1, 10).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec(`INSERT INTO topics \(name\) VALUES \(\?\) ON DUPLICATE KEY UPDATE`).
					WithArgs("graphs").
					WillReturnResult(sqlmock.NewResult(11, 1))
				mock.ExpectExec(`INSERT INTO user_topics \(user_id, topic_id\) VALUES \(\?, \?\)`).
					WithArgs(1, 11).
					WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			expectedError: false,
		},
		{
			name:   "empty set clears selection",
			userID: 1,
			topics: []string{},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM user_topics WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 2))
				mock.ExpectCommit()
			},
			expectedError: false,
		},
		{
			name:   "upsert error rolls back",
			userID: 1,
			topics: []string{"arrays"},
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec(`DELETE FROM user_topics WHERE user_id = \?`).
					WithArgs(1).
					WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec(`INSERT INTO topics \(name\) VALUES \(\?\) ON DUPLICATE KEY UPDATE`).
					WithArgs("arrays").
					WillReturnError(errors.New("database error"))
				mock.ExpectRollback()
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			err := repo.ReplaceTopics(context.Background(), tt.userID, tt.topics)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_ListWithPreferences(t *testing.T) {
	tests := []struct {
		name          string
		setupMock     func(sqlmock.Sqlmock)
		expectedError bool
		expectedCount int
	}{
		{
			name: "success",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{"id", "email", "name"}).
					AddRow(1, "alice@example.com", "Alice").
					AddRow(2, "bob@example.com", "Bob")
				mock.ExpectQuery(`SELECT DISTINCT u.id, u.email, u.name FROM users u JOIN user_topics ut`).
					WillReturnRows(rows)
			},
			expectedError: false,
			expectedCount: 2,
		},
		{
			name: "no users with topics",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT DISTINCT u.id, u.email, u.name FROM users u JOIN user_topics ut`).
					WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name"}))
			},
			expectedError: false,
			expectedCount: 0,
		},
		{
			name: "database error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT DISTINCT u.id, u.email, u.name FROM users u JOIN user_topics ut`).
					WillReturnError(errors.New("database error"))
			},
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock, cleanup := setupUserTestRepository(t)
			defer cleanup()

			tt.setupMock(mock)

			users, err := repo.ListWithPreferences(context.Background())

			if tt.expectedError {
				assert.Error(t, err)
				assert.Nil(t, users)
			} else {
				require.NoError(t, err)
				assert.Len(t, users, tt.expectedCount)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepository_UpdateLeetCodeUsername(t *testing.T) {
	repo, mock, cleanup := setupUserTestRepository(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE users SET leetcode_username = \? WHERE id = \?`).
		WithArgs("alice_lc", 1).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateLeetCodeUsername(context.Background(), 1, "alice_lc")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
