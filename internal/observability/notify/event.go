package notify

import (
	"context"
	"time"
)

// Severity constants recognised by downstream sinks.
const (
	SeverityCritical = "critical"
	SeverityWarning  = "warning"
)

// SignInFailurePayload captures the canonical data we emit when repeated
// sign-in failures cross the alerting threshold.
type SignInFailurePayload struct {
	Email      string
	Reason     string
	Code       string
	RemoteAddr string
	Failures   int
	Window     time.Duration
	Severity   string
	OccurredAt time.Time
	Metadata   map[string]string
}

// Sink describes a destination capable of consuming sign-in failure notifications.
type Sink interface {
	SendSignInFailure(ctx context.Context, payload SignInFailurePayload) error
}

// SinkFunc adapts a function to the Sink interface (useful for tests).
type SinkFunc func(ctx context.Context, payload SignInFailurePayload) error

// SendSignInFailure implements the Sink interface.
func (f SinkFunc) SendSignInFailure(ctx context.Context, payload SignInFailurePayload) error {
	if f == nil {
		return nil
	}
	return f(ctx, payload)
}
