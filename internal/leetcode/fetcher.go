package leetcode

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dsareminder/backend/internal/models"
	"go.uber.org/zap"
)

const (
	// cacheTTL is how long a cache entry stays fresh
	cacheTTL = 24 * time.Hour
	// maxAttempts bounds the upstream retry loop
	maxAttempts = 3
	// listLimit is the candidate count requested from the upstream
	listLimit = 5
)

// Upstream is the slice of the API client the fetcher depends on
type Upstream interface {
	// ListProblems fetches problems matching topics and difficulty
	ListProblems(ctx context.Context, topics []string, difficulty models.Difficulty, limit int) ([]models.Problem, error)
	// DailyProblem fetches the daily featured problem
	DailyProblem(ctx context.Context) (*models.Problem, error)
}

// cacheEntry holds one cached candidate list with its creation time
type cacheEntry struct {
	fetchedAt time.Time
	problems  []models.Problem
}

// Fetcher resolves candidate problem lists for (topics, difficulty) pairs.
// It is a read-through cache with bounded retry against the upstream and
// stale-entry fallback when retries are exhausted. Concurrent refreshes of
// the same key may duplicate upstream calls; the last writer wins.
type Fetcher struct {
	upstream Upstream
	logger   *zap.Logger

	mu    sync.RWMutex
	cache map[string]cacheEntry

	// injected for deterministic tests
	now   func() time.Time
	sleep func(time.Duration)
}

// NewFetcher creates a new cached problem fetcher
func NewFetcher(upstream Upstream, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		upstream: upstream,
		logger:   logger,
		cache:    make(map[string]cacheEntry),
		now:      time.Now,
		sleep:    time.Sleep,
	}
}

// cacheKey builds the deterministic cache key for a topics/difficulty pair
func cacheKey(topics []string, difficulty models.Difficulty) string {
	return strings.Join(topics, "+") + "-" + string(difficulty)
}

// Fetch returns the candidate problem list for the given topics and difficulty.
//
// A fresh cache hit returns immediately. On miss or expiry the upstream is
// queried up to maxAttempts times with exponential backoff, retrying only on
// rate-limit failures; any other failure aborts the loop. When the problem
// list call fails, the daily featured problem is tried as a one-element
// substitute before giving up on the attempt. After exhausted retries an
// expired cache entry, if present, is returned as a stale fallback; only
// with no entry at all does the last error propagate.
func (f *Fetcher) Fetch(ctx context.Context, topics []string, difficulty models.Difficulty) ([]models.Problem, error) {
	key := cacheKey(topics, difficulty)

	f.mu.RLock()
	entry, ok := f.cache[key]
	f.mu.RUnlock()

	if ok && f.now().Sub(entry.fetchedAt) < cacheTTL {
		f.logger.Debug("question cache hit", zap.String("key", key))
		return entry.problems, nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		// Exponential backoff before each retry: 2s, 4s, ...
		if attempt > 1 {
			f.sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}

		problems, err := f.lookup(ctx, topics, difficulty)
		if err == nil {
			f.mu.Lock()
			f.cache[key] = cacheEntry{fetchedAt: f.now(), problems: problems}
			f.mu.Unlock()
			return problems, nil
		}

		lastErr = err
		f.logger.Warn("upstream lookup failed",
			zap.String("key", key),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", maxAttempts),
			zap.Error(err),
		)

		// Only rate limiting is worth retrying
		if !errors.Is(err, ErrRateLimited) {
			break
		}
	}

	// Fall back to an expired entry rather than failing outright
	if ok {
		f.logger.Warn("returning expired cache entry after failed refresh", zap.String("key", key))
		return entry.problems, nil
	}

	return nil, fmt.Errorf("failed to fetch questions: %w", lastErr)
}

// lookup performs one upstream attempt: the problem list first, the daily
// problem as a substitute when the list call fails
func (f *Fetcher) lookup(ctx context.Context, topics []string, difficulty models.Difficulty) ([]models.Problem, error) {
	problems, err := f.upstream.ListProblems(ctx, topics, difficulty, listLimit)
	if err == nil {
		return problems, nil
	}

	daily, dailyErr := f.upstream.DailyProblem(ctx)
	if dailyErr != nil {
		// Report the original failure, its kind drives the retry decision
		return nil, err
	}

	f.logger.Info("using daily problem as fallback candidate")
	return []models.Problem{*daily}, nil
}
