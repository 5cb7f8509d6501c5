package models

import "time"

// Difficulty is a user's preferred problem difficulty
type Difficulty string

// Difficulty constants, matching the upstream problem API labels
const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyMedium Difficulty = "MEDIUM"
	DifficultyHard   Difficulty = "HARD"
)

// Valid reports whether d is one of the known difficulty values
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// User represents a registered user in the system
type User struct {
	ID               int        `json:"id"`
	Email            string     `json:"email"`
	Name             string     `json:"name"`
	Difficulty       Difficulty `json:"difficulty"`
	LeetCodeUsername *string    `json:"leetcode_username,omitempty"`
	Topics           []string   `json:"topics"`
	CreatedAt        time.Time  `json:"created_at"`
}

// UserListItem represents a user in dispatch candidate listings
type UserListItem struct {
	ID    int    `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginRequest represents a login request forwarded by the OAuth gateway
// after it has verified the user's identity
type LoginRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// LoginResponse represents a successful login response
type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user"`
}

// PreferencesResponse represents a user's saved preferences
type PreferencesResponse struct {
	Difficulty Difficulty `json:"difficulty"`
	Topics     []string   `json:"topics"`
}

// UpdatePreferencesRequest represents a request to update preferences.
// Nil fields are left unchanged.
type UpdatePreferencesRequest struct {
	Difficulty *Difficulty `json:"difficulty,omitempty"`
	Topics     []string    `json:"topics,omitempty"`
}

// UpdateLeetCodeUsernameRequest represents a request to set the LeetCode handle
type UpdateLeetCodeUsernameRequest struct {
	Username string `json:"username"`
}
