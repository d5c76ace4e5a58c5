// Package verifycache caches a snapshot of a record's status and expiration
// in Redis for the verification read path. Validity is always recomputed
// against the current height on a hit, so a cached snapshot can never report
// a credential valid past its expiration; mutations delete the snapshot so
// it can never outlive a revocation.
package verifycache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"

	"attest/internal/certification/models"
	"attest/pkg/domain"
)

var cacheLookupDurationMs = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "attest_verify_cache_lookup_duration_ms",
	Help:    "Latency of verification cache lookups in milliseconds",
	Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 25},
})

const snapshotKeyPrefix = "attest:verify:"

// Snapshot is the cached slice of a certification record that verification
// needs.
type Snapshot struct {
	Status         models.Status `json:"status"`
	ExpirationDate domain.Height `json:"expiration_date"`
}

// RedisStore is a Redis-backed snapshot cache.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedis(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// Get returns the cached snapshot, or nil on a miss.
func (s *RedisStore) Get(ctx context.Context, id domain.CertificationID) (*Snapshot, error) {
	start := time.Now()
	defer func() {
		cacheLookupDurationMs.Observe(float64(time.Since(start).Microseconds()) / 1000.0)
	}()

	raw, err := s.client.Get(ctx, snapshotKeyPrefix+id.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		// A corrupt entry reads as a miss; the next Set repairs it.
		return nil, nil
	}
	return &snap, nil
}

// Set stores the snapshot with the configured TTL.
func (s *RedisStore) Set(ctx context.Context, id domain.CertificationID, snap Snapshot) error {
	raw, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, snapshotKeyPrefix+id.String(), raw, s.ttl).Err()
}

// Invalidate drops the snapshot. Called on every mutation of the record.
func (s *RedisStore) Invalidate(ctx context.Context, id domain.CertificationID) error {
	return s.client.Del(ctx, snapshotKeyPrefix+id.String()).Err()
}
