package question

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const DefaultCacheTTL = 5 * time.Minute

// ErrCacheMiss is returned by a CacheBackend when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

type CacheBackend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RedisBackend adapts a redis client to CacheBackend.
type RedisBackend struct {
	client *redis.Client
}

func NewRedisBackend(client *redis.Client) *RedisBackend {
	return &RedisBackend{client: client}
}

func (b *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := b.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	return v, err
}

func (b *RedisBackend) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return b.client.Set(ctx, key, value, ttl).Err()
}

// CachedStore serves ListByTest from the cache and fills it from the inner
// store on a miss. A failing cache never fails a lookup.
type CachedStore struct {
	inner   Store
	backend CacheBackend
	ttl     time.Duration
	logger  *zap.Logger
}

func NewCachedStore(inner Store, backend CacheBackend, ttl time.Duration, logger *zap.Logger) *CachedStore {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedStore{inner: inner, backend: backend, ttl: ttl, logger: logger}
}

func cacheKey(testID int64) string {
	return fmt.Sprintf("worldtests:test:%d:questions", testID)
}

func (s *CachedStore) ListByTest(ctx context.Context, testID int64) ([]Record, error) {
	key := cacheKey(testID)

	raw, err := s.backend.Get(ctx, key)
	switch {
	case err == nil:
		var recs []Record
		if jerr := json.Unmarshal(raw, &recs); jerr == nil && len(recs) > 0 {
			return recs, nil
		}
		s.logger.Warn("discarding undecodable cache entry", zap.String("key", key))
	case errors.Is(err, ErrCacheMiss):
	default:
		s.logger.Warn("question cache read failed", zap.String("key", key), zap.Error(err))
	}

	recs, err := s.inner.ListByTest(ctx, testID)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(recs)
	if err != nil {
		s.logger.Warn("encode question cache entry", zap.Int64("test_id", testID), zap.Error(err))
		return recs, nil
	}
	if err := s.backend.Set(ctx, key, payload, s.ttl); err != nil {
		s.logger.Warn("question cache write failed", zap.String("key", key), zap.Error(err))
	}
	return recs, nil
}
