package otpinfra

import (
	"context"
	"sync"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/logx"
	"github.com/Abraxas-365/passgate/pkg/otp"
)

// MemoryStore is the in-process CredentialStore: a map guarded by one mutex,
// which gives the per-destination serialization the store contract asks for.
// Suitable for tests and single-instance deployments.
type MemoryStore struct {
	mu      sync.Mutex
	records map[kernel.Destination]otp.Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[kernel.Destination]otp.Record)}
}

// Get returns the stored record for a destination, if any.
func (s *MemoryStore) Get(_ context.Context, destination kernel.Destination) (otp.Record, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[destination]
	return r, ok, nil
}

// Put upserts the record, replacing any existing one for the destination.
func (s *MemoryStore) Put(_ context.Context, record otp.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[record.Destination] = record
	return nil
}

// Delete removes the record. Removing an absent record is not an error.
func (s *MemoryStore) Delete(_ context.Context, destination kernel.Destination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, destination)
	return nil
}

// UpdateAttempts sets the attempt counter if the record is still present.
// A concurrently deleted record makes this a no-op.
func (s *MemoryStore) UpdateAttempts(_ context.Context, destination kernel.Destination, attempts int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.records[destination]; ok {
		r.Attempts = attempts
		s.records[destination] = r
	}
	return nil
}

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Sweep removes records whose expiry has passed and returns how many were
// dropped. Pure memory hygiene: expiry is enforced lazily on access, so
// correctness never depends on sweeping.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for dest, r := range s.records {
		if r.Expired(now) {
			delete(s.records, dest)
			removed++
		}
	}
	return removed
}

// Sweeper periodically evicts expired records from a MemoryStore.
type Sweeper struct {
	store    *MemoryStore
	clock    otp.Clock
	interval time.Duration
}

// NewSweeper creates a sweeper running at the given interval.
func NewSweeper(store *MemoryStore, clock otp.Clock, interval time.Duration) *Sweeper {
	return &Sweeper{store: store, clock: clock, interval: interval}
}

// Start runs the sweep loop until the context is canceled.
func (s *Sweeper) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if removed := s.store.Sweep(s.clock.Now()); removed > 0 {
				logx.WithField("removed", removed).Debug("otp: swept expired records")
			}
		}
	}
}
