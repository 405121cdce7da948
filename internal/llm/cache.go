package llm

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// DefaultEmbeddingCacheTTL is how long cached sentence vectors live.
const DefaultEmbeddingCacheTTL = 24 * time.Hour

// CachedEmbedder stores sentence vectors in Redis keyed by model and text.
// Cache failures never fail an embedding request; the inner embedder is
// called for every text the cache could not serve.
type CachedEmbedder struct {
	inner  Embedder
	rdb    *redis.Client
	model  string
	ttl    time.Duration
	logger *zap.Logger
}

// NewCachedEmbedder wraps inner with a Redis cache. A zero ttl uses
// DefaultEmbeddingCacheTTL; a nil logger disables logging.
func NewCachedEmbedder(inner Embedder, rdb *redis.Client, model string, ttl time.Duration, logger *zap.Logger) *CachedEmbedder {
	if ttl <= 0 {
		ttl = DefaultEmbeddingCacheTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedEmbedder{inner: inner, rdb: rdb, model: model, ttl: ttl, logger: logger}
}

// NewRedisClient parses redisURL and verifies the server answers a ping.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	rdb := redis.NewClient(opts)
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis unreachable: %w", err)
	}
	return rdb, nil
}

// EmbeddingCacheKey builds the deterministic cache key of one text.
func EmbeddingCacheKey(model, text string) string {
	hash := sha256.Sum256([]byte(model + "|" + text))
	return fmt.Sprintf("emb:%x", hash[:16])
}

// EmbedStrings implements Embedder
func (c *CachedEmbedder) EmbedStrings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	vectors := make([][]float64, len(texts))
	keys := make([]string, len(texts))
	for i, text := range texts {
		keys[i] = EmbeddingCacheKey(c.model, text)
	}

	cached, err := c.rdb.MGet(ctx, keys...).Result()
	if err != nil {
		c.logger.Warn("embedding cache read failed", zap.Error(err))
		cached = nil
	}

	var missIdx []int
	var missTexts []string
	for i := range texts {
		if i < len(cached) {
			if raw, ok := cached[i].(string); ok {
				var vec []float64
				if json.Unmarshal([]byte(raw), &vec) == nil {
					vectors[i] = vec
					continue
				}
			}
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, texts[i])
	}

	c.logger.Debug("embedding cache lookup",
		zap.Int("hits", len(texts)-len(missIdx)),
		zap.Int("misses", len(missIdx)),
	)
	if len(missIdx) == 0 {
		return vectors, nil
	}

	fresh, err := c.inner.EmbedStrings(ctx, missTexts)
	if err != nil {
		return nil, err
	}
	if len(fresh) != len(missTexts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(missTexts), len(fresh))
	}

	pipe := c.rdb.Pipeline()
	for j, i := range missIdx {
		vectors[i] = fresh[j]
		data, err := json.Marshal(fresh[j])
		if err != nil {
			continue
		}
		pipe.Set(ctx, keys[i], data, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("embedding cache write failed", zap.Error(err))
	}

	return vectors, nil
}
