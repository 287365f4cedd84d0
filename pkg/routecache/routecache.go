package routecache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	redisstore "github.com/eko/gocache/store/redis/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/travigo/railrouter/pkg/routing"
	"github.com/travigo/railrouter/pkg/timetable"
)

const DefaultExpiration = 6 * time.Hour

// Key identifies one routing query
type Key struct {
	DayType         timetable.DayType
	Origin          string
	Time            int
	Destination     string
	TransferPenalty int
}

func (k Key) GetCacheKey() string {
	return fmt.Sprintf("route:%s:%s:%d:%s:%d", k.DayType, k.Origin, k.Time, k.Destination, k.TransferPenalty)
}

// Cache keeps computed routes in Redis. Lookups never fail the caller, a broken
// Redis just means every query is computed.
type Cache struct {
	routes *cache.Cache[string]
}

func New(client *redis.Client, expiration time.Duration) *Cache {
	if expiration <= 0 {
		expiration = DefaultExpiration
	}

	redisStore := redisstore.NewRedis(client, store.WithExpiration(expiration))

	return &Cache{
		routes: cache.New[string](redisStore),
	}
}

func (c *Cache) Get(ctx context.Context, key Key) (*routing.Result, bool) {
	if c == nil {
		return nil, false
	}

	cached, err := c.routes.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, store.NotFound{}) {
			log.Warn().Err(err).Str("key", key.GetCacheKey()).Msg("Failed to read cached route")
		}
		return nil, false
	}

	var result routing.Result
	if err := json.Unmarshal([]byte(cached), &result); err != nil {
		log.Warn().Err(err).Str("key", key.GetCacheKey()).Msg("Discarding unreadable cached route")
		return nil, false
	}

	return &result, true
}

func (c *Cache) Set(ctx context.Context, key Key, result *routing.Result) {
	if c == nil || result == nil {
		return
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode route")
		return
	}

	if err := c.routes.Set(ctx, key, string(encoded)); err != nil {
		log.Warn().Err(err).Str("key", key.GetCacheKey()).Msg("Failed to cache route")
	}
}
