// Package leetcode provides the upstream question API client and the
// cached problem fetcher built on top of it.
package leetcode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

// ErrRateLimited is returned when the upstream API responds with HTTP 429.
// It is the only failure the fetcher retries.
var ErrRateLimited = errors.New("upstream rate limited")

// Client is an HTTP client for the alfa-leetcode-api service
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a new upstream API client with a bounded per-call timeout
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// problemListResponse mirrors the upstream /problems payload
type problemListResponse struct {
	ProblemsetQuestionList []models.Problem `json:"problemsetQuestionList"`
}

// dailyResponse mirrors the upstream /daily payload
type dailyResponse struct {
	Question *models.Problem `json:"question"`
}

// Profile is the subset of the upstream user profile this service consumes
type Profile struct {
	Username           string             `json:"username"`
	Ranking            int                `json:"ranking"`
	SubmissionCalendar SubmissionCalendar `json:"submissionCalendar"`
}

// SubmissionCalendar maps unix-day timestamps (as decimal strings) to
// submission counts. The upstream API serves it either as a JSON object or
// as a JSON-encoded string of that object.
type SubmissionCalendar map[string]int

// UnmarshalJSON accepts both encodings of the calendar
func (s *SubmissionCalendar) UnmarshalJSON(data []byte) error {
	// String-encoded variant first
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		if raw == "" {
			*s = SubmissionCalendar{}
			return nil
		}
		data = []byte(raw)
	}

	var m map[string]int
	if err := json.Unmarshal(data, &m); err != nil {
		return fmt.Errorf("failed to decode submission calendar: %w", err)
	}
	*s = m
	return nil
}

// ListProblems fetches problems matching the given topics and difficulty,
// limited to the given result count
func (c *Client) ListProblems(ctx context.Context, topics []string, difficulty models.Difficulty, limit int) ([]models.Problem, error) {
	// The upstream expects tags joined with literal '+' separators
	url := fmt.Sprintf("%s/problems?tags=%s&difficulty=%s&limit=%d",
		c.baseURL, strings.Join(topics, "+"), difficulty, limit)

	var resp problemListResponse
	if err := c.getJSON(ctx, url, &resp); err != nil {
		return nil, err
	}

	return resp.ProblemsetQuestionList, nil
}

// DailyProblem fetches the daily featured problem
func (c *Client) DailyProblem(ctx context.Context) (*models.Problem, error) {
	var resp dailyResponse
	if err := c.getJSON(ctx, c.baseURL+"/daily", &resp); err != nil {
		return nil, err
	}

	if resp.Question == nil {
		return nil, fmt.Errorf("daily response contained no question")
	}

	return resp.Question, nil
}

// Profile fetches a user's public profile including the submission calendar
func (c *Client) Profile(ctx context.Context, username string) (*Profile, error) {
	var profile Profile
	if err := c.getJSON(ctx, c.baseURL+"/"+username, &profile); err != nil {
		return nil, err
	}

	return &profile, nil
}

// SolvedStats fetches a user's solved-problem counters as an opaque payload
func (c *Client) SolvedStats(ctx context.Context, username string) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := c.getJSON(ctx, c.baseURL+"/"+username+"/solved", &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// getJSON performs a GET request and decodes the JSON response into out
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("upstream request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("upstream returned 429: %w", ErrRateLimited)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("upstream returned non-200",
			zap.String("url", url),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("upstream returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode upstream response: %w", err)
	}

	return nil
}
