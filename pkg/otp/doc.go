// Package otp implements one-time-passcode issuance and verification for
// proving control of an email address or phone number before a session is
// created.
//
// # Overview
//
// The package is organized the same way as every bounded context in this
// codebase:
//
//   - otp              — domain: Record, Policy, ports, error registry
//   - otp/otpsrv       — the RequestCode/VerifyCode state machine
//   - otp/otpinfra     — credential stores (memory/redis/postgres), channel
//     notifiers, audit trail
//   - otp/otpapi       — Fiber HTTP handlers
//   - otp/otpcontainer — dependency wiring
//
// # Lifecycle
//
// RequestCode generates a 6-digit code (uniform over [100000, 999999]),
// delivers it through the injected Notifier, and only then commits a Record
// to the CredentialStore — so a record never exists for a code the user
// could not have received. A destination holds at most one live record; a
// later successful send replaces it, and a send inside the 60-second
// cooldown is rejected with a retry hint instead.
//
// VerifyCode consumes the record: success deletes it, expiry deletes it, and
// spending the third failed attempt deletes it. Failed attempts are counted
// before the code comparison so an attempt that dies mid-flight still burns
// budget. The only recovery from a terminal state is a new RequestCode.
//
// # Security posture
//
// Code values flow exactly one way: generator → Notifier. They are never
// logged, never audited, never returned to API callers, and never echoed in
// error messages. Callers get retry hints (seconds to wait, attempts left),
// nothing more.
package otp
