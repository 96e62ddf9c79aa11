package cache

import (
	"encoding/json"
	"time"

	"linkstats/models"

	"github.com/allegro/bigcache"
)

// BigCacheStore is an in-process LinkCache. Tests and single-node
// setups use it so they don't need a Redis.
type BigCacheStore struct {
	cache *bigcache.BigCache
}

// NewBigCacheStore initializes a new BigCacheStore.
func NewBigCacheStore() (*BigCacheStore, error) {
	config := bigcache.Config{
		Shards:           1024,
		LifeWindow:       10 * time.Minute,
		CleanWindow:      5 * time.Minute,
		MaxEntrySize:     500,
		HardMaxCacheSize: 8192,
		Verbose:          false,
	}
	bc, err := bigcache.NewBigCache(config)
	if err != nil {
		return nil, err
	}
	return &BigCacheStore{
		cache: bc,
	}, nil
}

// Set stores a link in the cache.
func (b *BigCacheStore) Set(key string, value models.Link) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return b.cache.Set(key, data)
}

// Get retrieves a link from the cache.
func (b *BigCacheStore) Get(key string) (models.Link, error) {
	data, err := b.cache.Get(key)
	if err != nil {
		return models.Link{}, err
	}
	var value models.Link
	err = json.Unmarshal(data, &value)
	if err != nil {
		return models.Link{}, err
	}
	return value, nil
}

// Delete removes a link from the cache.
func (b *BigCacheStore) Delete(key string) error {
	return b.cache.Delete(key)
}

// Close stops the cache (BigCache doesn't need explicit closing, so we return nil).
func (b *BigCacheStore) Close() error {
	return nil
}
