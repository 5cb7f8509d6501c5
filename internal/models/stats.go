package models

import "encoding/json"

// StreakResponse reports a user's current LeetCode submission streak
type StreakResponse struct {
	CurrentStreak  int    `json:"current_streak"`
	LastSubmission string `json:"last_submission"`
}

// PracticeResponse reports a user's practice rate over the last 30 days
type PracticeResponse struct {
	Rate       int `json:"rate"`
	Total      int `json:"total"`
	Last30Days int `json:"last_30_days"`
}

// LeetCodeUsernameResponse reports the user's stored LeetCode handle
type LeetCodeUsernameResponse struct {
	Username *string `json:"username"`
}

// LeetCodeStatsResponse combines profile and solved counters from the upstream API
type LeetCodeStatsResponse struct {
	Username string          `json:"username"`
	Ranking  int             `json:"ranking"`
	Solved   json.RawMessage `json:"solved"`
}
