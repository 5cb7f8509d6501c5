package models

import "time"

// EmailLog is the durable marker that a question email was sent to a user.
// At most one row exists per user per calendar day.
type EmailLog struct {
	ID           int       `json:"id"`
	UserID       int       `json:"user_id"`
	QuestionLink string    `json:"question_link"`
	SentAt       time.Time `json:"sent_at"`
}

// EmailLogListItem represents an email log in the history response
type EmailLogListItem struct {
	ID           int       `json:"id"`
	QuestionLink string    `json:"question_link"`
	TitleSlug    string    `json:"title_slug"`
	SentAt       time.Time `json:"sent_at"`
}
