package otpsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/otp"
)

// Service implements passcode issuance and verification over an injected
// CredentialStore and Notifier. One instance serves every channel; the
// Notifier decides how a given destination is reached.
type Service struct {
	store    otp.CredentialStore
	notifier otp.Notifier
	policy   otp.Policy
	clock    otp.Clock
	audit    otp.AuditService
}

// Option customizes a Service.
type Option func(*Service)

// WithClock injects a clock, used by tests to simulate time.
func WithClock(c otp.Clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithAudit injects an audit trail for issuance and verification events.
func WithAudit(a otp.AuditService) Option {
	return func(s *Service) { s.audit = a }
}

// NewService creates an OTP service with the given policy. Zero policy
// fields fall back to the reference defaults.
func NewService(store otp.CredentialStore, notifier otp.Notifier, policy otp.Policy, opts ...Option) *Service {
	s := &Service{
		store:    store,
		notifier: notifier,
		policy:   policy.Normalize(),
		clock:    otp.SystemClock(),
		audit:    nopAudit{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Policy returns the active policy.
func (s *Service) Policy() otp.Policy { return s.policy }

// RequestResult is the caller-visible outcome of an accepted request. The
// code itself is never part of it.
type RequestResult struct {
	ExpiresIn time.Duration
}

// RequestCode issues a fresh code for the destination and delivers it via
// the Notifier. An existing record inside the cooldown window rejects the
// request; a delivery failure leaves any prior record untouched. The new
// record is committed only after delivery succeeds, so no record ever exists
// for a code the user could not have received.
func (s *Service) RequestCode(ctx context.Context, destination kernel.Destination) (RequestResult, error) {
	if !destination.Valid() {
		return RequestResult{}, otp.ErrInvalidDestination()
	}

	now := s.clock.Now()

	existing, found, err := s.store.Get(ctx, destination)
	if err != nil {
		return RequestResult{}, otp.ErrStoreFailure(err)
	}
	if found {
		if elapsed := now.Sub(existing.LastSentAt); elapsed < s.policy.Cooldown {
			retryAfter := ceilSeconds(s.policy.Cooldown - elapsed)
			s.audit.Record(ctx, otp.AuditRateLimited, destination, map[string]interface{}{
				"retry_after_seconds": retryAfter,
			})
			return RequestResult{}, otp.ErrRateLimited().
				WithDetail("retry_after_seconds", retryAfter)
		}
	}

	code, err := otp.GenerateCode(s.policy.CodeLength)
	if err != nil {
		return RequestResult{}, err
	}

	// Deliver before committing. A failed send must not clear the prior
	// record either: it stays valid until its own expiry.
	if err := s.notifier.Send(ctx, destination, code); err != nil {
		s.audit.Record(ctx, otp.AuditDeliveryFailed, destination, nil)
		return RequestResult{}, otp.ErrRegistry.NewWithCause(otp.CodeDeliveryFailed, err)
	}

	record := otp.Record{
		Destination: destination,
		Code:        code,
		IssuedAt:    now,
		ExpiresAt:   now.Add(s.policy.TTL),
		Attempts:    0,
		LastSentAt:  now,
	}
	if err := s.store.Put(ctx, record); err != nil {
		return RequestResult{}, otp.ErrStoreFailure(err)
	}

	s.audit.Record(ctx, otp.AuditCodeRequested, destination, map[string]interface{}{
		"expires_in_seconds": int(s.policy.TTL / time.Second),
	})
	return RequestResult{ExpiresIn: s.policy.TTL}, nil
}

// VerifyCode checks a submitted code against the destination's outstanding
// record. Expiry and an exhausted attempt budget are terminal: the record is
// deleted and only a new RequestCode can recover. A match also deletes the
// record, so a code verifies successfully exactly once.
func (s *Service) VerifyCode(ctx context.Context, destination kernel.Destination, submitted string) error {
	if !otp.ValidCodeFormat(submitted, s.policy.CodeLength) {
		return otp.ErrInvalidFormat()
	}

	record, found, err := s.store.Get(ctx, destination)
	if err != nil {
		return otp.ErrStoreFailure(err)
	}
	if !found {
		s.audit.Record(ctx, otp.AuditVerifyRejected, destination, map[string]interface{}{
			"reason": "not_found",
		})
		return otp.ErrNotFound()
	}

	now := s.clock.Now()
	if record.Expired(now) {
		if err := s.store.Delete(ctx, destination); err != nil {
			return otp.ErrStoreFailure(err)
		}
		s.audit.Record(ctx, otp.AuditChallengeExpired, destination, nil)
		return otp.ErrExpired()
	}

	// Count the attempt before comparing, so an attempt that dies
	// mid-comparison still burned budget.
	record.Attempts++
	if err := s.store.UpdateAttempts(ctx, destination, record.Attempts); err != nil {
		return otp.ErrStoreFailure(err)
	}

	if record.Attempts > s.policy.MaxAttempts {
		if err := s.store.Delete(ctx, destination); err != nil {
			return otp.ErrStoreFailure(err)
		}
		s.audit.Record(ctx, otp.AuditAttemptsExceeded, destination, nil)
		return otp.ErrTooManyAttempts()
	}

	// Plain equality is enough at this entropy with a 3-attempt budget.
	if submitted != record.Code {
		if record.Exhausted(s.policy.MaxAttempts) {
			// This failure spent the last attempt; the record is done.
			if err := s.store.Delete(ctx, destination); err != nil {
				return otp.ErrStoreFailure(err)
			}
			s.audit.Record(ctx, otp.AuditAttemptsExceeded, destination, nil)
			return otp.ErrTooManyAttempts()
		}
		remaining := s.policy.MaxAttempts - record.Attempts
		s.audit.Record(ctx, otp.AuditVerifyRejected, destination, map[string]interface{}{
			"reason":             "code_mismatch",
			"attempts_remaining": remaining,
		})
		return otp.ErrInvalidCode().WithDetail("attempts_remaining", remaining)
	}

	if err := s.store.Delete(ctx, destination); err != nil {
		return otp.ErrStoreFailure(err)
	}
	s.audit.Record(ctx, otp.AuditCodeVerified, destination, nil)
	return nil
}

// ceilSeconds rounds a duration up to whole seconds.
func ceilSeconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}

type nopAudit struct{}

func (nopAudit) Record(context.Context, otp.AuditEvent, kernel.Destination, map[string]interface{}) {
}
