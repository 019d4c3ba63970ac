package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errors.New("down") }
func (failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return errors.New("down")
}
func (failingStore) Delete(context.Context, ...string) error { return nil }

func pageFetcher(calls *int, page *models.ProductPage, err error) func(context.Context) (*models.ProductPage, error) {
	return func(context.Context) (*models.ProductPage, error) {
		*calls++
		return page, err
	}
}

func TestCatalogCacheHitAfterMiss(t *testing.T) {
	ctx := context.Background()
	c := NewCatalogCache(NewMemoryStore(), time.Minute)
	want := &models.ProductPage{
		Count:   1,
		Results: []models.Product{{ID: "7", Name: "Runner", Variants: []models.ProductVariant{{ID: "70", Price: 120}}}},
	}
	calls := 0

	got, hit, err := c.Products(ctx, "size=9,10", pageFetcher(&calls, want, nil))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, want, got)

	got, hit, err = c.Products(ctx, "size=9,10", pageFetcher(&calls, want, nil))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, calls)
	assert.Equal(t, "Runner", got.Results[0].Name)
	assert.Equal(t, models.Money(120), got.Results[0].Variants[0].Price)

	_, hit, _ = c.Products(ctx, "size=9", pageFetcher(&calls, want, nil))
	assert.False(t, hit, "different query, different key")
	assert.Equal(t, 2, calls)
}

func TestCatalogCacheDoesNotStoreFailures(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	c := NewCatalogCache(store, time.Minute)
	calls := 0
	boom := errors.New("upstream down")

	_, _, err := c.Products(ctx, "", pageFetcher(&calls, nil, boom))
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 0, store.Len())
}

func TestCatalogCacheDegradesWhenStoreFails(t *testing.T) {
	c := NewCatalogCache(failingStore{}, time.Minute)
	calls := 0

	page, hit, err := c.Products(context.Background(), "gender=men", pageFetcher(&calls, &models.ProductPage{Count: 3}, nil))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3, page.Count)
}

func TestCatalogCacheDropsCorruptEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Set(ctx, ProductsKey("color=red"), []byte("{not json"), 0))
	c := NewCatalogCache(store, time.Minute)
	calls := 0

	_, hit, err := c.Products(ctx, "color=red", pageFetcher(&calls, &models.ProductPage{}, nil))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 1, calls)
}

func TestCatalogCacheForget(t *testing.T) {
	ctx := context.Background()
	c := NewCatalogCache(NewMemoryStore(), time.Minute)
	calls := 0
	_, _, _ = c.Products(ctx, "q=1", pageFetcher(&calls, &models.ProductPage{}, nil))

	require.NoError(t, c.Forget(ctx, "q=1"))
	_, hit, _ := c.Products(ctx, "q=1", pageFetcher(&calls, &models.ProductPage{}, nil))
	assert.False(t, hit)
	assert.Equal(t, 2, calls)
}

func TestFacetCacheTTL(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock = func() time.Time { return now }
	t.Cleanup(func() {
		clock = time.Now
		Invalidate()
	})

	SetFacetOptions(FacetOptions{Genders: []models.Gender{{Slug: "men"}}})
	SetCategories([]models.Category{{ID: "1", Name: "Shoes"}})

	opts, ok := GetFacetOptions()
	require.True(t, ok)
	assert.Equal(t, "men", opts.Genders[0].Slug)

	now = now.Add(TTL)
	_, ok = GetFacetOptions()
	assert.False(t, ok)
	_, ok = GetCategories()
	assert.False(t, ok)

	now = now.Add(-time.Minute)
	_, ok = GetCategories()
	assert.True(t, ok)
	Invalidate()
	_, ok = GetCategories()
	assert.False(t, ok)
}
