package otp

import (
	"context"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
)

// CredentialStore is keyed storage of at most one live Record per
// destination. Implementations must serialize operations per destination so
// a Get-then-act sequence is never observed as torn by a concurrent Put or
// Delete; a single mutex over the whole map satisfies this.
type CredentialStore interface {
	// Get returns the record for a destination, if any. No side effects.
	Get(ctx context.Context, destination kernel.Destination) (Record, bool, error)

	// Put unconditionally upserts, replacing any existing record.
	Put(ctx context.Context, record Record) error

	// Delete removes the record. Idempotent: absent records are no error.
	Delete(ctx context.Context, destination kernel.Destination) error

	// UpdateAttempts sets the attempt counter in place. A record that was
	// concurrently deleted makes this a no-op, not an error.
	UpdateAttempts(ctx context.Context, destination kernel.Destination, attempts int) error
}

// Notifier delivers a code out of band. It is fallible and possibly slow,
// and makes no idempotency promise, so the service calls it at most once per
// accepted request.
type Notifier interface {
	Send(ctx context.Context, destination kernel.Destination, code string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock returns wall-clock time.
func SystemClock() Clock {
	return ClockFunc(time.Now)
}

// AuditEvent names a state transition worth a trail entry.
type AuditEvent string

const (
	AuditCodeRequested    AuditEvent = "code_requested"
	AuditRateLimited      AuditEvent = "rate_limited"
	AuditDeliveryFailed   AuditEvent = "delivery_failed"
	AuditCodeVerified     AuditEvent = "code_verified"
	AuditVerifyRejected   AuditEvent = "verify_rejected"
	AuditChallengeExpired AuditEvent = "challenge_expired"
	AuditAttemptsExceeded AuditEvent = "attempts_exceeded"
)

// AuditService records authentication events. Implementations must never be
// handed the code value.
type AuditService interface {
	Record(ctx context.Context, event AuditEvent, destination kernel.Destination, details map[string]interface{})
}
