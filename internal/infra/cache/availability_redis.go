package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/vehicle-maintenance/internal/domain/appointment"
)

const (
	defaultTTL    = 30 * time.Second
	generationTTL = 24 * time.Hour
)

// setIfGenerationScript stores the grid only while the date's generation
// counter still holds the value read before resolving.
var setIfGenerationScript = redis.NewScript(`
local current = redis.call("GET", KEYS[1]) or "0"
if current ~= ARGV[1] then
  return 0
end
redis.call("SET", KEYS[2], ARGV[2], "PX", ARGV[3])
return 1
`)

// AvailabilityRedisCache stores resolved availability maps per calendar date.
// Redis failures degrade to cache misses; they never fail a request.
type AvailabilityRedisCache struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

func NewAvailabilityRedisCache(rdb *redis.Client, ttl time.Duration, log *zap.Logger) *AvailabilityRedisCache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &AvailabilityRedisCache{
		rdb:    rdb,
		ttl:    ttl,
		prefix: "availability:",
		log:    log,
	}
}

func (c *AvailabilityRedisCache) key(date string) string {
	return c.prefix + date
}

func (c *AvailabilityRedisCache) generationKey(date string) string {
	return c.prefix + "gen:" + date
}

func (c *AvailabilityRedisCache) Get(ctx context.Context, date string) (domain.Availability, bool) {
	raw, err := c.rdb.Get(ctx, c.key(date)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("availability cache read failed", zap.String("date", date), zap.Error(err))
		}
		return domain.Availability{}, false
	}

	var a domain.Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		c.log.Warn("availability cache entry corrupt", zap.String("date", date), zap.Error(err))
		return domain.Availability{}, false
	}
	return a, true
}

// Generation returns -1 when Redis cannot be read; Set then skips the write.
func (c *AvailabilityRedisCache) Generation(ctx context.Context, date string) int64 {
	gen, err := c.rdb.Get(ctx, c.generationKey(date)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0
		}
		c.log.Warn("availability cache generation read failed", zap.String("date", date), zap.Error(err))
		return -1
	}
	return gen
}

func (c *AvailabilityRedisCache) Set(ctx context.Context, date string, gen int64, a domain.Availability) {
	if gen < 0 {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	keys := []string{c.generationKey(date), c.key(date)}
	err = setIfGenerationScript.Run(ctx, c.rdb, keys, gen, raw, c.ttl.Milliseconds()).Err()
	if err != nil {
		c.log.Warn("availability cache write failed", zap.String("date", date), zap.Error(err))
	}
}

func (c *AvailabilityRedisCache) Invalidate(ctx context.Context, date string) {
	_, err := c.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.generationKey(date))
		pipe.Expire(ctx, c.generationKey(date), generationTTL)
		pipe.Del(ctx, c.key(date))
		return nil
	})
	if err != nil {
		c.log.Warn("availability cache invalidation failed", zap.String("date", date), zap.Error(err))
	}
}

// Ping is used by the readiness probe.
func (c *AvailabilityRedisCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
