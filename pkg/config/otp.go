package config

import "time"

// OTPConfig configures passcode policy and the credential store backend.
// Store: "memory" (single process), "redis" (multi-instance) or "postgres"
// (durable). Policy values apply to every channel so email and sms can never
// drift apart.
type OTPConfig struct {
	Store         string
	TTL           time.Duration
	Cooldown      time.Duration
	MaxAttempts   int
	CodeLength    int
	SweepInterval time.Duration
}

func loadOTPConfig() OTPConfig {
	return OTPConfig{
		Store:         getEnv("OTP_STORE", "memory"),
		TTL:           getEnvDuration("OTP_TTL", 5*time.Minute),
		Cooldown:      getEnvDuration("OTP_COOLDOWN", 60*time.Second),
		MaxAttempts:   getEnvInt("OTP_MAX_ATTEMPTS", 3),
		CodeLength:    getEnvInt("OTP_CODE_LENGTH", 6),
		SweepInterval: getEnvDuration("OTP_SWEEP_INTERVAL", 10*time.Minute),
	}
}
