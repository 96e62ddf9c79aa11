package cache

import (
	"context"
	"encoding/json"

	"linkstats/models"

	"github.com/redis/go-redis/v9"
)

// LinkCache sits in front of the link table on the redirect hot path.
type LinkCache interface {
	Set(key string, value models.Link) error
	Get(key string) (models.Link, error)
	Delete(key string) error
	Close() error
}

// RedisStore is the LinkCache used in production. Client and Ctx are
// exported because the rate limiter and the pub/sub bus share the same
// connection.
type RedisStore struct {
	Client *redis.Client
	Ctx    context.Context
}

// NewRedisStore initializes a new RedisStore instance.
func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx := context.Background()
	// Ping Redis to ensure connectivity.
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{
		Client: rdb,
		Ctx:    ctx,
	}, nil
}

// Set stores a link in Redis with no expiration. Stale entries are
// deleted explicitly when a link changes, not aged out.
func (r *RedisStore) Set(key string, value models.Link) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return r.Client.Set(r.Ctx, key, data, 0).Err()
}

// Get retrieves a link from Redis.
func (r *RedisStore) Get(key string) (models.Link, error) {
	var result models.Link
	data, err := r.Client.Get(r.Ctx, key).Result()
	if err != nil {
		return result, err
	}
	err = json.Unmarshal([]byte(data), &result)
	return result, err
}

// Delete removes a link from Redis.
func (r *RedisStore) Delete(key string) error {
	return r.Client.Del(r.Ctx, key).Err()
}

// Close closes the Redis client.
func (r *RedisStore) Close() error {
	return r.Client.Close()
}
