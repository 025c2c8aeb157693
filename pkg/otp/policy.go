package otp

import "time"

// Policy holds the issuance and verification constants. One Policy drives
// every channel, so email and sms behavior cannot drift apart.
type Policy struct {
	// TTL is how long an issued code stays acceptable.
	TTL time.Duration
	// Cooldown is the minimum wait between two sends to one destination.
	Cooldown time.Duration
	// MaxAttempts is the failed-verification budget per record.
	MaxAttempts int
	// CodeLength is the number of digits in a generated code.
	CodeLength int
}

// DefaultPolicy returns the reference values: 5 minute TTL, 60 second
// cooldown, 3 attempts, 6 digits.
func DefaultPolicy() Policy {
	return Policy{
		TTL:         5 * time.Minute,
		Cooldown:    60 * time.Second,
		MaxAttempts: 3,
		CodeLength:  6,
	}
}

// Normalize fills zero fields with the reference defaults.
func (p Policy) Normalize() Policy {
	def := DefaultPolicy()
	if p.TTL <= 0 {
		p.TTL = def.TTL
	}
	if p.Cooldown <= 0 {
		p.Cooldown = def.Cooldown
	}
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = def.MaxAttempts
	}
	if p.CodeLength <= 0 {
		p.CodeLength = def.CodeLength
	}
	return p
}
