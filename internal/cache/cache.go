// Package cache keeps public product listings in Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kamaltrader/luxecraft/internal/models"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const (
	keyPrefix     = "luxecraft:products:"
	generationKey = "luxecraft:products-gen"
)

// ProductCache stores product listings by query key. Entries belong to a
// generation; Invalidate starts a new one so fills from an older generation
// are never served.
type ProductCache interface {
	Generation(ctx context.Context) (uint64, error)
	GetProducts(ctx context.Context, gen uint64, key string) ([]models.Product, bool)
	SetProducts(ctx context.Context, gen uint64, key string, products []models.Product)
	Invalidate(ctx context.Context)
}

// ListKey returns the cache key of a product listing.
func ListKey(keyword, category string) string {
	switch {
	case category != "":
		return "category:" + category
	case keyword != "":
		return "q:" + keyword
	default:
		return "all"
	}
}

// Products returns the cached listing for key or loads and caches it.
func Products(ctx context.Context, c ProductCache, key string, load func(context.Context) ([]models.Product, error)) ([]models.Product, error) {
	if c == nil {
		return load(ctx)
	}
	// Read the generation before loading; a concurrent Invalidate strands this fill.
	gen, errGen := c.Generation(ctx)
	if errGen != nil {
		log.WithError(errGen).Warn("cache: read generation failed")
		return load(ctx)
	}
	if products, ok := c.GetProducts(ctx, gen, key); ok {
		return products, nil
	}
	products, err := load(ctx)
	if err != nil {
		return nil, err
	}
	c.SetProducts(ctx, gen, key, products)
	return products, nil
}

// Noop never caches.
type Noop struct{}

// Generation implements ProductCache.
func (Noop) Generation(context.Context) (uint64, error) { return 0, nil }

// GetProducts implements ProductCache.
func (Noop) GetProducts(context.Context, uint64, string) ([]models.Product, bool) { return nil, false }

// SetProducts implements ProductCache.
func (Noop) SetProducts(context.Context, uint64, string, []models.Product) {}

// Invalidate implements ProductCache.
func (Noop) Invalidate(context.Context) {}

// RedisCache is a ProductCache backed by Redis strings holding JSON.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// RedisOptions configures NewRedis.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and verifies the connection.
func NewRedis(ctx context.Context, opts RedisOptions) (*RedisCache, error) {
	if opts.Addr == "" {
		return nil, errors.New("cache: redis address is required")
	}
	rdb := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: ping redis %s: %w", opts.Addr, err)
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &RedisCache{rdb: rdb, ttl: ttl}, nil
}

// Close releases the Redis connection pool.
func (c *RedisCache) Close() error { return c.rdb.Close() }

// entryKey is the Redis key of a listing in generation gen.
func entryKey(gen uint64, key string) string {
	return keyPrefix + strconv.FormatUint(gen, 10) + ":" + key
}

// Generation implements ProductCache. A missing counter is generation 0.
func (c *RedisCache) Generation(ctx context.Context) (uint64, error) {
	gen, err := c.rdb.Get(ctx, generationKey).Uint64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache: get generation: %w", err)
	}
	return gen, nil
}

// GetProducts implements ProductCache.
func (c *RedisCache) GetProducts(ctx context.Context, gen uint64, key string) ([]models.Product, bool) {
	raw, err := c.rdb.Get(ctx, entryKey(gen, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.WithError(err).Warn("cache: redis get failed")
		}
		return nil, false
	}
	var products []models.Product
	if errDecode := json.Unmarshal(raw, &products); errDecode != nil {
		log.WithError(errDecode).Warn("cache: discard undecodable entry")
		c.rdb.Del(ctx, entryKey(gen, key))
		return nil, false
	}
	return products, true
}

// SetProducts implements ProductCache.
func (c *RedisCache) SetProducts(ctx context.Context, gen uint64, key string, products []models.Product) {
	raw, err := json.Marshal(products)
	if err != nil {
		log.WithError(err).Warn("cache: encode products")
		return
	}
	if errSet := c.rdb.Set(ctx, entryKey(gen, key), raw, c.ttl).Err(); errSet != nil {
		log.WithError(errSet).Warn("cache: redis set failed")
	}
}

// Invalidate moves to a new generation and drops the listings cached so far.
func (c *RedisCache) Invalidate(ctx context.Context) {
	if err := c.rdb.Incr(ctx, generationKey).Err(); err != nil {
		log.WithError(err).Warn("cache: redis incr generation failed")
	}
	iter := c.rdb.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.WithError(err).Warn("cache: redis scan failed")
	}
	if len(keys) == 0 {
		return
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		log.WithError(err).Warn("cache: redis delete failed")
	}
}
