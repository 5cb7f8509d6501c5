package models

// DispatchOutcome classifies the result of a single dispatch attempt
type DispatchOutcome string

// Dispatch outcome constants
const (
	// DispatchSent means a record was persisted and the email went out
	DispatchSent DispatchOutcome = "sent"
	// DispatchAlreadySent means the user already received a question today;
	// this is a benign skip, not an error
	DispatchAlreadySent DispatchOutcome = "already_sent"
	// DispatchFailed means the dispatch did not complete
	DispatchFailed DispatchOutcome = "failed"
)

// DispatchResult is the structured outcome of one dispatch attempt.
// Failures never cross the dispatcher boundary as errors.
type DispatchResult struct {
	Outcome  DispatchOutcome `json:"outcome"`
	Question string          `json:"question,omitempty"`
	EmailLog *EmailLog       `json:"email_log,omitempty"`
	// Reason carries a human-readable failure description when Outcome is failed.
	// When EmailLog is also set, the record was persisted but the email send failed.
	Reason string `json:"reason,omitempty"`
}

// Sent reports whether the dispatch completed fully
func (r *DispatchResult) Sent() bool {
	return r.Outcome == DispatchSent
}

// BatchDispatchResult summarizes a dispatch run over many users
type BatchDispatchResult struct {
	Processed int                 `json:"processed"`
	Sent      int                 `json:"sent"`
	Skipped   int                 `json:"skipped"`
	Failed    int                 `json:"failed"`
	Errors    []BatchDispatchItem `json:"errors,omitempty"`
}

// BatchDispatchItem describes a single failed user in a batch run
type BatchDispatchItem struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Reason string `json:"reason"`
}
