package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"storefront/search/internal/client"
	"storefront/search/internal/domain"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const keyPrefix = "storefront:catalog:products:"

// CachedCatalog serves product lists from Redis and falls back to the wrapped
// client on a miss. Redis failures never fail a request.
type CachedCatalog struct {
	redisClient *redis.Client
	next        client.CatalogClient
	ttl         time.Duration
}

var _ client.CatalogClient = (*CachedCatalog)(nil)

func NewCachedCatalog(redisClient *redis.Client, next client.CatalogClient, ttl time.Duration) *CachedCatalog {
	return &CachedCatalog{
		redisClient: redisClient,
		next:        next,
		ttl:         ttl,
	}
}

func (c *CachedCatalog) GetProducts(ctx context.Context, filter client.ProductFilter) ([]domain.Product, error) {
	key := cacheKey(filter)

	products, err := c.get(ctx, key)
	switch {
	case err == nil:
		log.Debugf("Catalog cache hit for %s (%d products)", filter.Key(), len(products))
		return products, nil
	case !errors.Is(err, redis.Nil):
		log.Warnf("⚠️ Catalog cache read failed for %s: %v", key, err)
	}

	products, err = c.next.GetProducts(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := c.set(ctx, key, products); err != nil {
		log.Warnf("⚠️ Catalog cache write failed for %s: %v", key, err)
	}

	return products, nil
}

// Invalidate drops the cached list for filter.
func (c *CachedCatalog) Invalidate(ctx context.Context, filter client.ProductFilter) error {
	return c.redisClient.Del(ctx, cacheKey(filter)).Err()
}

func (c *CachedCatalog) get(ctx context.Context, key string) ([]domain.Product, error) {
	val, err := c.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(val, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *CachedCatalog) set(ctx context.Context, key string, products []domain.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return err
	}
	return c.redisClient.Set(ctx, key, data, c.ttl).Err()
}

func cacheKey(filter client.ProductFilter) string {
	return keyPrefix + filter.Key()
}
