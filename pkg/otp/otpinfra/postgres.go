package otpinfra

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/otp"
	"github.com/jmoiron/sqlx"
)

// Schema for the credential table. Applied by EnsureSchema; kept here so a
// deployment can also run it through its own migration tooling.
const credentialSchema = `
CREATE TABLE IF NOT EXISTS otp_credentials (
    destination  TEXT PRIMARY KEY,
    code         TEXT NOT NULL,
    issued_at    TIMESTAMPTZ NOT NULL,
    expires_at   TIMESTAMPTZ NOT NULL,
    attempts     INTEGER NOT NULL DEFAULT 0,
    last_sent_at TIMESTAMPTZ NOT NULL
)`

type credentialRow struct {
	Destination string    `db:"destination"`
	Code        string    `db:"code"`
	IssuedAt    time.Time `db:"issued_at"`
	ExpiresAt   time.Time `db:"expires_at"`
	Attempts    int       `db:"attempts"`
	LastSentAt  time.Time `db:"last_sent_at"`
}

// PostgresStore is a CredentialStore on Postgres, for deployments that want
// outstanding challenges to survive restarts. The destination primary key
// plus single-row statements give the per-destination serialization the
// contract requires.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Postgres-backed store.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the credential table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, credentialSchema)
	return err
}

// Get fetches the record for a destination.
func (s *PostgresStore) Get(ctx context.Context, destination kernel.Destination) (otp.Record, bool, error) {
	var row credentialRow
	err := s.db.GetContext(ctx, &row,
		`SELECT destination, code, issued_at, expires_at, attempts, last_sent_at
		   FROM otp_credentials WHERE destination = $1`,
		destination.String())
	if errors.Is(err, sql.ErrNoRows) {
		return otp.Record{}, false, nil
	}
	if err != nil {
		return otp.Record{}, false, err
	}

	return otp.Record{
		Destination: kernel.Destination(row.Destination),
		Code:        row.Code,
		IssuedAt:    row.IssuedAt,
		ExpiresAt:   row.ExpiresAt,
		Attempts:    row.Attempts,
		LastSentAt:  row.LastSentAt,
	}, true, nil
}

// Put upserts the record for its destination.
func (s *PostgresStore) Put(ctx context.Context, record otp.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO otp_credentials (destination, code, issued_at, expires_at, attempts, last_sent_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (destination) DO UPDATE SET
		     code = EXCLUDED.code,
		     issued_at = EXCLUDED.issued_at,
		     expires_at = EXCLUDED.expires_at,
		     attempts = EXCLUDED.attempts,
		     last_sent_at = EXCLUDED.last_sent_at`,
		record.Destination.String(), record.Code, record.IssuedAt,
		record.ExpiresAt, record.Attempts, record.LastSentAt)
	return err
}

// Delete removes the record; deleting an absent row is not an error.
func (s *PostgresStore) Delete(ctx context.Context, destination kernel.Destination) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM otp_credentials WHERE destination = $1`, destination.String())
	return err
}

// UpdateAttempts sets the attempt counter; zero rows affected means the
// record was concurrently deleted, which is fine.
func (s *PostgresStore) UpdateAttempts(ctx context.Context, destination kernel.Destination, attempts int) error {
	_, err := s.db.ExecContext(ctx,
		`UPDATE otp_credentials SET attempts = $2 WHERE destination = $1`,
		destination.String(), attempts)
	return err
}

// Ping verifies the database connection, for health checks.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Sweep removes expired rows, returning how many were dropped.
func (s *PostgresStore) Sweep(ctx context.Context, now time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM otp_credentials WHERE expires_at < $1`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
