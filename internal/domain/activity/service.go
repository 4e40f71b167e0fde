package activity

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"
)

// Service records activity and rejects bursts.
type Service struct {
	repo   Repository
	logger *slog.Logger
	window Window
	now    func() time.Time

	// mu holds check and append together so concurrent Records cannot both
	// pass the check on the same history.
	mu sync.Mutex
}

// NewService creates a new activity service.
func NewService(repo Repository, logger *slog.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	s := &Service{
		repo:   repo,
		logger: logger,
		window: DefaultWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Record appends the current time to the identity's history unless the
// identity is suspicious. The returned Result is always populated; the error
// is non-nil for rejections and storage failures.
func (s *Service) Record(ctx context.Context, identity string) (Result, error) {
	res := Result{Identity: identity}

	s.mu.Lock()
	defer s.mu.Unlock()

	history, err := s.repo.History(ctx, identity)
	if err != nil {
		s.logger.Error("failed to load activity history", "identity", identity, "error", err)
		return s.fail(res, fmt.Errorf("loading history: %w", err))
	}

	now := s.now()
	if s.suspicious(identity, history, now) {
		res.Outcome = OutcomeRejected
		res.Err = ErrRateLimitExceeded
		s.logger.Warn("activity rejected", "identity", identity, "recent", s.window.Count, "span", s.window.Span)
		return res, ErrRateLimitExceeded
	}

	ts := NewTimestamp(now)
	if err := s.repo.Append(ctx, identity, ts); err != nil {
		s.logger.Error("failed to record activity", "identity", identity, "error", err)
		return s.fail(res, fmt.Errorf("recording activity: %w", err))
	}

	res.Outcome = OutcomeRecorded
	res.Timestamp = ts
	s.logger.Debug("activity recorded", "identity", identity, "timestamp", ts, "count", len(history)+1)
	return res, nil
}

// Check reports whether the identity is currently suspicious without recording.
// On storage failure the verdict is false.
func (s *Service) Check(ctx context.Context, identity string) (bool, error) {
	history, err := s.repo.History(ctx, identity)
	if err != nil {
		return false, fmt.Errorf("loading history: %w", err)
	}
	return s.suspicious(identity, history, s.now()), nil
}

// History returns the identity's timestamps, oldest first.
func (s *Service) History(ctx context.Context, identity string) ([]Timestamp, error) {
	history, err := s.repo.History(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("loading history: %w", err)
	}
	if history == nil {
		history = []Timestamp{}
	}
	return history, nil
}

func (s *Service) suspicious(identity string, history []Timestamp, now time.Time) bool {
	if len(history) < s.window.Count {
		return false
	}
	if bad := unparseable(history, s.window); len(bad) > 0 {
		s.logger.Warn("unparseable timestamps in history, not throttling", "identity", identity, "invalid", len(bad))
		return false
	}
	return IsSuspicious(history, now, s.window)
}

func (s *Service) fail(res Result, err error) (Result, error) {
	res.Outcome = OutcomeStorageFailed
	res.Err = err
	return res, err
}
