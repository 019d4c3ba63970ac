package cache

import (
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
)

const TTL = 5 * time.Minute

// ── Facet option lists ───────────────────────────────────────────────────────
// Genders, colours and sizes as served by the catalog. The filter panel and
// the metadata endpoint both read from this.

type FacetOptions struct {
	Genders []models.Gender
	Colors  []models.Color
	Sizes   []models.Size
}

type facetEntry struct {
	data      FacetOptions
	fetchedAt time.Time
}

var (
	facetMu    sync.RWMutex
	facetCache *facetEntry
	clock      = time.Now
)

func GetFacetOptions() (FacetOptions, bool) {
	facetMu.RLock()
	defer facetMu.RUnlock()
	if facetCache != nil && clock().Sub(facetCache.fetchedAt) < TTL {
		return facetCache.data, true
	}
	return FacetOptions{}, false
}

func SetFacetOptions(data FacetOptions) {
	facetMu.Lock()
	defer facetMu.Unlock()
	facetCache = &facetEntry{data: data, fetchedAt: clock()}
}

// ── Category tree ────────────────────────────────────────────────────────────

type categoryEntry struct {
	data      []models.Category
	fetchedAt time.Time
}

var (
	categoryMu    sync.RWMutex
	categoryCache *categoryEntry
)

func GetCategories() ([]models.Category, bool) {
	categoryMu.RLock()
	defer categoryMu.RUnlock()
	if categoryCache != nil && clock().Sub(categoryCache.fetchedAt) < TTL {
		return categoryCache.data, true
	}
	return nil, false
}

func SetCategories(data []models.Category) {
	categoryMu.Lock()
	defer categoryMu.Unlock()
	categoryCache = &categoryEntry{data: data, fetchedAt: clock()}
}

// ── Invalidate everything (facet table reload, tests) ────────────────────────

func Invalidate() {
	facetMu.Lock()
	facetCache = nil
	facetMu.Unlock()

	categoryMu.Lock()
	categoryCache = nil
	categoryMu.Unlock()
}
