package config

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"go.uber.org/zap"
)

// CatalogSettings describes the remote catalog API.
type CatalogSettings struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	CacheTTL time.Duration
}

// Catalog reads the catalog API settings from the environment.
func Catalog() (CatalogSettings, error) {
	s := CatalogSettings{
		BaseURL:  getEnv("CATALOG_API_URL", ""),
		Token:    getEnv("CATALOG_API_TOKEN", ""),
		Timeout:  getDuration("CATALOG_TIMEOUT", 10*time.Second),
		CacheTTL: getDuration("CATALOG_CACHE_TTL", time.Minute),
	}
	if s.BaseURL == "" {
		return s, errors.New("CATALOG_API_URL environment variable not set")
	}
	return s, nil
}

var (
	queryMu       sync.RWMutex
	facets        = querystate.DefaultFacets()
	pageCodec     = querystate.NewCodec(querystate.EncodingRepeated, facets)
	upstreamCodec = querystate.NewCodec(querystate.EncodingComma, facets)
)

// InitFacets loads FACETS_FILE when set; otherwise the embedded table stays.
func InitFacets() error {
	path := getEnv("FACETS_FILE", "")
	if path == "" {
		Log.Info("✅ Using built-in facet table")
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open facets file: %w", err)
	}
	defer f.Close()

	table, err := querystate.LoadFacets(f)
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	SetFacets(table)
	Log.Info("✅ Facet table loaded", zap.String("path", path), zap.Strings("facets", table.Keys()))
	return nil
}

// SetFacets swaps the facet table and rebuilds both codecs.
func SetFacets(table querystate.Facets) {
	queryMu.Lock()
	defer queryMu.Unlock()
	facets = table
	pageCodec = querystate.NewCodec(querystate.EncodingRepeated, table)
	upstreamCodec = querystate.NewCodec(querystate.EncodingComma, table)
}

func Facets() querystate.Facets {
	queryMu.RLock()
	defer queryMu.RUnlock()
	return facets
}

// PageCodec encodes browser-facing URLs with repeated keys.
func PageCodec() *querystate.Codec {
	queryMu.RLock()
	defer queryMu.RUnlock()
	return pageCodec
}

// UpstreamCodec encodes catalog API queries with comma-joined lists.
func UpstreamCodec() *querystate.Codec {
	queryMu.RLock()
	defer queryMu.RUnlock()
	return upstreamCodec
}
