package cache

import (
	"context"
	"encoding/json"
	"time"

	"shipvoid-backend/internal/config"
	"shipvoid-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// ResultKey is where the last successful result for a DC is kept. Keys are
// per DC so an instance never serves another DC's containers.
func ResultKey(dc string) string {
	return "reports:shipvoid:" + dc + ":latest"
}

var client *redis.Client

// Init initializes the Redis connection. On failure the client stays nil
// and every cache call becomes a no-op.
func Init(cfg config.RedisConfig) error {
	c := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		// Close the failed client for graceful degradation
		c.Close()
		return err
	}
	client = c
	return nil
}

// SetClient replaces the shared client
func SetClient(c *redis.Client) {
	client = c
}

// GetClient returns the Redis client
func GetClient() *redis.Client {
	return client
}

// Close releases the connection
func Close() {
	if client != nil {
		client.Close()
		client = nil
	}
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// GetCachedResult returns the last result any instance wrote for dc
func GetCachedResult(ctx context.Context, dc string) (*models.LoadResult, bool) {
	data, ok := GetCached(ctx, ResultKey(dc))
	if !ok {
		return nil, false
	}
	return decodeResult(data, dc)
}

// decodeResult rejects payloads that fail to parse or belong to another DC
func decodeResult(data []byte, dc string) (*models.LoadResult, bool) {
	var r models.LoadResult
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, false
	}
	if r.DC != dc {
		return nil, false
	}
	return &r, true
}

// CacheResult writes a result through to Redis
func CacheResult(ctx context.Context, r *models.LoadResult, ttl time.Duration) {
	if client == nil || r == nil {
		return
	}
	data, err := json.Marshal(r)
	if err != nil {
		return
	}
	SetCached(ctx, ResultKey(r.DC), data, ttl)
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
