package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/customerbridge-backend/internal/logger"
	"github.com/yungbote/customerbridge-backend/internal/types"
)

// ErrCacheMiss means the profile is not cached; callers fall through to the
// store.
var ErrCacheMiss = errors.New("profile cache miss")

type ProfileCache interface {
	Get(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error)
	Set(ctx context.Context, profile *types.UnifiedCustomerProfile) error
	Invalidate(ctx context.Context, email string) error
	Close() error
}

type profileCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

// NewProfileCache connects to Redis from REDIS_ADDR. The cache holds the
// serialized unified profile per join key; every upsert invalidates the key,
// so a cached read is never older than the last completed batch.
func NewProfileCache(log *logger.Logger) (ProfileCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 15 * time.Minute
	if v := strings.TrimSpace(os.Getenv("PROFILE_CACHE_TTL_SECONDS")); v != "" {
		var secs int
		if _, err := fmt.Sscanf(v, "%d", &secs); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &profileCache{
		log: log.With("service", "RedisProfileCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(email string) string {
	return "profile:" + email
}

func (c *profileCache) Get(ctx context.Context, email string) (*types.UnifiedCustomerProfile, error) {
	if c == nil || c.rdb == nil {
		return nil, ErrCacheMiss
	}
	raw, err := c.rdb.Get(ctx, cacheKey(email)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, err
	}
	var profile types.UnifiedCustomerProfile
	if err := json.Unmarshal(raw, &profile); err != nil {
		// A corrupt entry behaves like a miss; the next Set repairs it.
		c.log.Warn("dropping unreadable cache entry", "email", email, "error", err)
		_ = c.rdb.Del(ctx, cacheKey(email)).Err()
		return nil, ErrCacheMiss
	}
	return &profile, nil
}

func (c *profileCache) Set(ctx context.Context, profile *types.UnifiedCustomerProfile) error {
	if c == nil || c.rdb == nil || profile == nil {
		return nil
	}
	raw, err := json.Marshal(profile)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(profile.Email), raw, c.ttl).Err()
}

func (c *profileCache) Invalidate(ctx context.Context, email string) error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, cacheKey(email)).Err()
}

func (c *profileCache) Close() error {
	if c == nil || c.rdb == nil {
		return nil
	}
	return c.rdb.Close()
}
