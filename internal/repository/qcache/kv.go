package qcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/querylens/internal/db"
	"github.com/kailas-cloud/querylens/internal/domain"
)

var cacheKeyPrefix = domain.KeyPrefix + "query_cache:"

// DefaultTTL bounds how long a shared cache entry stays valid.
const DefaultTTL = 24 * time.Hour

// store is the consumer interface for the shared cache backend.
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// KV caches processed queries in a key-value store shared between
// replicas. Values are JSON; backend failures degrade to misses.
type KV struct {
	store      store
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// NewKV creates a shared cache over the given store. A non-positive
// ttl falls back to DefaultTTL.
func NewKV(s store, ttl time.Duration, cacheTotal *prometheus.CounterVec, logger *zap.Logger) *KV {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &KV{store: s, ttl: ttl, cacheTotal: cacheTotal, logger: logger}
}

// Get returns the cached result for the (language, normalized text)
// pair. Any backend or decode failure reads as a miss.
func (c *KV) Get(ctx context.Context, lang domain.Language, text string) (domain.VoiceSearchResult, bool) {
	key := c.cacheKey(lang, text)

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached query result", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return domain.VoiceSearchResult{}, false
	}

	var result domain.VoiceSearchResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.logger.Warn("Failed to decode cached query result", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return domain.VoiceSearchResult{}, false
	}

	c.incCache("hit")
	return result, true
}

// Put stores a result with the configured TTL. Failures are logged and
// otherwise ignored; the cache is best effort.
func (c *KV) Put(ctx context.Context, lang domain.Language, text string, result domain.VoiceSearchResult) {
	key := c.cacheKey(lang, text)

	data, err := json.Marshal(result)
	if err != nil {
		c.logger.Warn("Failed to encode query result for cache", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache query result", zap.String("key", key), zap.Error(err))
	}
}

func (c *KV) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *KV) cacheKey(lang domain.Language, text string) string {
	h := sha256.Sum256([]byte(entryKey(lang, text)))
	return cacheKeyPrefix + hex.EncodeToString(h[:])
}
