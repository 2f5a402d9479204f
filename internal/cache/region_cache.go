package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"insight-console/internal/region"
)

// sequenceKey never expires, so a token is never handed out twice even
// after a region's own keys expire.
const sequenceKey = "console:region:sequence"

var beginScript = redisv9.NewScript(`
local token = redis.call('INCR', KEYS[1])
redis.call('SET', KEYS[2], token, 'EX', ARGV[2])
redis.call('SET', KEYS[3], ARGV[1], 'EX', ARGV[2])
return token
`)

var commitScript = redisv9.NewScript(`
if redis.call('GET', KEYS[1]) ~= ARGV[1] then
  return 0
end
redis.call('EXPIRE', KEYS[1], ARGV[3])
redis.call('SET', KEYS[2], ARGV[2], 'EX', ARGV[3])
return 1
`)

// RegionCache keeps region tokens and content in redis so every console
// replica sees the same regions.
type RegionCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewRegionCache(client *redisv9.Client, ttl time.Duration) *RegionCache {
	if ttl < time.Second {
		ttl = time.Hour
	}
	return &RegionCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *RegionCache) Region(workspaceID, name string) region.Region {
	return &redisRegion{
		cache:      c,
		tokenKey:   fmt.Sprintf("console:region:%s:%s:token", workspaceID, name),
		contentKey: fmt.Sprintf("console:region:%s:%s:content", workspaceID, name),
	}
}

func (c *RegionCache) ttlSeconds() int {
	return int(c.ttl / time.Second)
}

type redisRegion struct {
	cache      *RegionCache
	tokenKey   string
	contentKey string
}

func (r *redisRegion) Begin(ctx context.Context, placeholder string) (uint64, error) {
	token, err := beginScript.Run(ctx, r.cache.client,
		[]string{sequenceKey, r.tokenKey, r.contentKey},
		placeholder, r.cache.ttlSeconds(),
	).Int64()
	if err != nil {
		return 0, fmt.Errorf("redis begin region failed: %w", err)
	}
	return uint64(token), nil
}

func (r *redisRegion) Commit(ctx context.Context, token uint64, content string) (bool, error) {
	written, err := commitScript.Run(ctx, r.cache.client,
		[]string{r.tokenKey, r.contentKey},
		strconv.FormatUint(token, 10), content, r.cache.ttlSeconds(),
	).Int64()
	if err != nil {
		return false, fmt.Errorf("redis commit region failed: %w", err)
	}
	return written == 1, nil
}

func (r *redisRegion) Get(ctx context.Context) (string, error) {
	raw, err := r.cache.client.Get(ctx, r.contentKey).Result()
	if err == redisv9.Nil {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("redis get region failed: %w", err)
	}
	return raw, nil
}
