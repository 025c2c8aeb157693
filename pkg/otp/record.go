package otp

import (
	"crypto/rand"
	"math/big"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
)

// Record is the single outstanding passcode challenge for one destination.
// At most one live Record exists per destination; a new send replaces it.
// The Code value must never leave the process except through a Notifier.
type Record struct {
	Destination kernel.Destination
	Code        string
	IssuedAt    time.Time
	ExpiresAt   time.Time
	// Attempts counts failed verifications. It only grows; the sole reset
	// is issuing a fresh Record.
	Attempts int
	// LastSentAt drives the resend cooldown. Distinct from IssuedAt: a
	// resend rejected inside the cooldown never creates a new Record.
	LastSentAt time.Time
}

// Expired reports whether the record is past its TTL at the given instant.
func (r Record) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// Exhausted reports whether the record's failed attempts have used up the
// allowed budget. An exhausted record must be deleted, never matched.
func (r Record) Exhausted(maxAttempts int) bool {
	return r.Attempts >= maxAttempts
}

// GenerateCode draws a numeric code of the given length, uniform over the
// full-length range (for length 6: [100000, 999999]). The first digit is
// never zero, so every code is exactly length digits. The draw uses
// crypto/rand; big.Int keeps it exact with no modulo bias.
func GenerateCode(length int) (string, error) {
	if length < 1 || length > 18 {
		return "", ErrCodeGeneration().WithDetail("length", length)
	}

	low := int64(1)
	for i := 1; i < length; i++ {
		low *= 10
	}
	span := low*10 - low // 9 * 10^(length-1) possible codes

	n, err := rand.Int(rand.Reader, big.NewInt(span))
	if err != nil {
		return "", ErrCodeGeneration().WithDetail("cause", err.Error())
	}
	return big.NewInt(low + n.Int64()).String(), nil
}

// ValidCodeFormat reports whether submitted is exactly length ASCII digits.
// Malformed input is rejected before any store access.
func ValidCodeFormat(submitted string, length int) bool {
	if len(submitted) != length {
		return false
	}
	for i := 0; i < len(submitted); i++ {
		if submitted[i] < '0' || submitted[i] > '9' {
			return false
		}
	}
	return true
}
