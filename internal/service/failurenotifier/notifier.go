package failurenotifier

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/nftheater/admin-api/internal/observability/notify"
)

// SinkRegistration pairs a sink implementation with a human-readable name for logging.
type SinkRegistration struct {
	Name string
	Sink notify.Sink
}

// Options configures the failure notifier service.
type Options struct {
	Logger *slog.Logger
	Sinks  []SinkRegistration

	// Threshold is the number of failures for the same email within Window
	// that triggers a notification. Zero disables thresholding and every
	// failure is delivered.
	Threshold int
	Window    time.Duration

	// Now overrides the clock in tests.
	Now func() time.Time
}

// Service tracks sign-in failures per email and dispatches an alert to all
// registered sinks once the threshold is crossed within the window.
type Service struct {
	logger    *slog.Logger
	sinks     []SinkRegistration
	threshold int
	window    time.Duration
	now       func() time.Time

	mu       sync.Mutex
	failures map[string][]time.Time
}

// NewService constructs a failure notifier.
func NewService(opts Options) *Service {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "failure_notifier")
	}

	var sinks []SinkRegistration
	for _, entry := range opts.Sinks {
		if entry.Sink == nil {
			continue
		}
		name := entry.Name
		if name == "" {
			name = "sink"
		}
		sinks = append(sinks, SinkRegistration{
			Name: name,
			Sink: entry.Sink,
		})
	}

	window := opts.Window
	if window <= 0 {
		window = 10 * time.Minute
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Service{
		logger:    logger,
		sinks:     sinks,
		threshold: opts.Threshold,
		window:    window,
		now:       now,
		failures:  make(map[string][]time.Time),
	}
}

// RecordSignInFailure registers a failed sign-in attempt. When the attempt
// count for the email crosses the threshold within the window, the payload is
// fanned out to all sinks and the counter resets so a sustained attack alerts
// once per threshold batch.
func (s *Service) RecordSignInFailure(ctx context.Context, payload notify.SignInFailurePayload) {
	if len(s.sinks) == 0 {
		return
	}

	count, triggered := s.track(payload.Email)
	if !triggered {
		s.logger.DebugContext(ctx, "sign-in failure below alert threshold",
			"email", payload.Email,
			"count", count,
			"threshold", s.threshold,
		)
		return
	}

	payload.Failures = count
	payload.Window = s.window
	if payload.Severity == "" {
		payload.Severity = notify.SeverityWarning
	}
	if payload.OccurredAt.IsZero() {
		payload.OccurredAt = s.now()
	}

	var wg sync.WaitGroup
	for _, entry := range s.sinks {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := entry.Sink.SendSignInFailure(ctx, payload); err != nil {
				s.logger.Error("failure notifier delivery error",
					"sink", entry.Name,
					"email", payload.Email,
					"error", err,
				)
			}
		}()
	}
	wg.Wait()
}

// track appends an attempt for the email and reports whether the threshold
// was crossed. Attempts older than the window are discarded first.
func (s *Service) track(email string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	cutoff := now.Add(-s.window)

	kept := s.failures[email][:0]
	for _, ts := range s.failures[email] {
		if ts.After(cutoff) {
			kept = append(kept, ts)
		}
	}
	kept = append(kept, now)

	if s.threshold <= 0 || len(kept) >= s.threshold {
		delete(s.failures, email)
		return len(kept), true
	}
	s.failures[email] = kept
	return len(kept), false
}

// Reset clears the failure counter for an email, typically after a
// successful sign-in.
func (s *Service) Reset(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.failures, email)
}

// Enabled reports whether the notifier has any active sinks.
func (s *Service) Enabled() bool {
	return s != nil && len(s.sinks) > 0
}
