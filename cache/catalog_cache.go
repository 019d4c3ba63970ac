package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

const productsKeyPrefix = "catalog:products:"

var cacheLookups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_catalog_cache_lookups_total",
		Help: "Product listing cache lookups by result",
	},
	[]string{"result"},
)

// CatalogCache memoizes product listing pages keyed by their catalog query.
type CatalogCache struct {
	store Store
	ttl   time.Duration
}

func NewCatalogCache(store Store, ttl time.Duration) *CatalogCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &CatalogCache{store: store, ttl: ttl}
}

// ProductsKey is the cache key for a catalog-encoded query.
func ProductsKey(query string) string {
	return productsKeyPrefix + query
}

// Products returns the cached page for query or calls fetch and stores the
// result. The boolean reports a cache hit. Store failures degrade to fetch.
func (c *CatalogCache) Products(
	ctx context.Context,
	query string,
	fetch func(context.Context) (*models.ProductPage, error),
) (*models.ProductPage, bool, error) {
	key := ProductsKey(query)

	raw, err := c.store.Get(ctx, key)
	switch {
	case err == nil:
		var page models.ProductPage
		if jsonErr := json.Unmarshal(raw, &page); jsonErr == nil {
			cacheLookups.WithLabelValues("hit").Inc()
			return &page, true, nil
		}
		config.Log.Warn("⚠️  Dropping undecodable cache entry", zap.String("key", key))
		_ = c.store.Delete(ctx, key)
		cacheLookups.WithLabelValues("miss").Inc()
	case errors.Is(err, ErrMiss):
		cacheLookups.WithLabelValues("miss").Inc()
	default:
		config.Log.Warn("⚠️  Catalog cache read failed", zap.String("key", key), zap.Error(err))
		cacheLookups.WithLabelValues("error").Inc()
	}

	page, err := fetch(ctx)
	if err != nil {
		return nil, false, err
	}

	if encoded, err := json.Marshal(page); err == nil {
		if err := c.store.Set(ctx, key, encoded, c.ttl); err != nil {
			config.Log.Warn("⚠️  Catalog cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return page, false, nil
}

// Forget drops cached pages for the given catalog queries.
func (c *CatalogCache) Forget(ctx context.Context, queries ...string) error {
	keys := make([]string, len(queries))
	for i, q := range queries {
		keys[i] = ProductsKey(q)
	}
	return c.store.Delete(ctx, keys...)
}

var (
	catalogMu    sync.RWMutex
	catalogCache *CatalogCache
)

// InitCatalogCache picks Redis when connected and the in-process store otherwise.
func InitCatalogCache(ttl time.Duration) {
	var store Store
	if config.RedisClient != nil {
		store = NewRedisStore(config.RedisClient)
		config.Log.Info("✅ Catalog cache backed by Redis", zap.Duration("ttl", ttl))
	} else {
		store = NewMemoryStore()
		config.Log.Info("✅ Catalog cache in memory", zap.Duration("ttl", ttl))
	}
	SetCatalogCache(NewCatalogCache(store, ttl))
}

func SetCatalogCache(c *CatalogCache) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogCache = c
}

// Catalog returns the shared cache, creating an in-memory one on first use.
func Catalog() *CatalogCache {
	catalogMu.RLock()
	c := catalogCache
	catalogMu.RUnlock()
	if c != nil {
		return c
	}
	catalogMu.Lock()
	defer catalogMu.Unlock()
	if catalogCache == nil {
		catalogCache = NewCatalogCache(NewMemoryStore(), time.Minute)
	}
	return catalogCache
}
