package otpinfra

import (
	"context"
	"strconv"
	"time"

	"github.com/Abraxas-365/passgate/pkg/kernel"
	"github.com/Abraxas-365/passgate/pkg/otp"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "passgate:otp:"

// updateAttemptsScript sets the attempt counter only while the record still
// exists; touching an absent key would resurrect a partial record.
var updateAttemptsScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 1 then
  redis.call('HSET', KEYS[1], 'attempts', ARGV[1])
  return 1
end
return 0
`)

// RedisStore is a CredentialStore backed by a Redis hash per destination.
// Redis serializes commands per key, which covers the store's ordering
// contract across multiple service instances. Keys carry a server-side
// expiry matching the record TTL as a hygiene layer; the service still
// checks expiry itself.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a redis-backed store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(destination kernel.Destination) string {
	return redisKeyPrefix + destination.String()
}

// Get fetches and decodes the record for a destination.
func (s *RedisStore) Get(ctx context.Context, destination kernel.Destination) (otp.Record, bool, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(destination)).Result()
	if err != nil {
		return otp.Record{}, false, err
	}
	if len(fields) == 0 {
		return otp.Record{}, false, nil
	}

	record := otp.Record{
		Destination: destination,
		Code:        fields["code"],
	}
	record.IssuedAt = parseUnixNano(fields["issued_at"])
	record.ExpiresAt = parseUnixNano(fields["expires_at"])
	record.LastSentAt = parseUnixNano(fields["last_sent_at"])
	record.Attempts, _ = strconv.Atoi(fields["attempts"])
	return record, true, nil
}

// Put upserts the record and aligns the key's server-side expiry with the
// record's.
func (s *RedisStore) Put(ctx context.Context, record otp.Record) error {
	key := redisKey(record.Destination)

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"code":         record.Code,
		"issued_at":    record.IssuedAt.UnixNano(),
		"expires_at":   record.ExpiresAt.UnixNano(),
		"attempts":     record.Attempts,
		"last_sent_at": record.LastSentAt.UnixNano(),
	})
	pipe.PExpireAt(ctx, key, record.ExpiresAt)
	_, err := pipe.Exec(ctx)
	return err
}

// Delete removes the record. Absent keys are no error.
func (s *RedisStore) Delete(ctx context.Context, destination kernel.Destination) error {
	return s.client.Del(ctx, redisKey(destination)).Err()
}

// UpdateAttempts sets the attempt counter if the record still exists.
func (s *RedisStore) UpdateAttempts(ctx context.Context, destination kernel.Destination, attempts int) error {
	return updateAttemptsScript.Run(ctx, s.client, []string{redisKey(destination)}, attempts).Err()
}

// Ping verifies the redis connection, for health checks.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func parseUnixNano(v string) time.Time {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, n)
}
