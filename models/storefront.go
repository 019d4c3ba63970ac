// ════════════════════════════════════════════════════════════
// STOREFRONT VIEW MODELS
// File: models/storefront.go
// ════════════════════════════════════════════════════════════

package models

// ProductCard is one tile of the product grid.
type ProductCard struct {
	ID        string   `json:"id"`
	Slug      string   `json:"slug"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	SalePrice *float64 `json:"sale_price,omitempty"`
	Href      string   `json:"href"`
}

// ProductListing is the product browse page.
type ProductListing struct {
	Query     string        `json:"query"`
	Count     int           `json:"count"`
	Cards     []ProductCard `json:"cards"`
	Filters   FilterPanel   `json:"filters"`
	Sort      SortSelector  `json:"sort"`
	NextHref  string        `json:"next_href,omitempty"`
	PrevHref  string        `json:"prev_href,omitempty"`
	CacheHit  bool          `json:"cache_hit"`
	Canonical string        `json:"canonical_href"`
}

// SortSelector lists the sort options with the link that selects each one.
type SortSelector struct {
	Selected string       `json:"selected"`
	Options  []SortOption `json:"options"`
}

type SortOption struct {
	Label    string `json:"label"`
	Value    string `json:"value"`
	Selected bool   `json:"selected"`
	Href     string `json:"href"`
}

// GalleryVariant groups product images by colour.
type GalleryVariant struct {
	Color  string   `json:"color"`
	Swatch string   `json:"swatch"`
	Images []string `json:"images"`
}

// ProductDetail is the product page.
type ProductDetail struct {
	ID              string           `json:"id"`
	Slug            string           `json:"slug"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Brand           string           `json:"brand,omitempty"`
	Category        string           `json:"category,omitempty"`
	Price           float64          `json:"price"`
	CompareAt       float64          `json:"compare_at"`
	DiscountPercent int              `json:"discount_percent"`
	Gallery         []GalleryVariant `json:"gallery"`
	Sizes           []string         `json:"sizes"`
	Variants        []ProductVariant `json:"variants"`
	InStock         bool             `json:"in_stock"`
}

// StorefrontCategory is a node of the category tree.
type StorefrontCategory struct {
	ID            string               `json:"id"`
	Name          string               `json:"name"`
	Slug          string               `json:"slug"`
	Href          string               `json:"href"`
	Subcategories []StorefrontCategory `json:"subcategories,omitempty"`
}

// NormalizedQuery is the answer of the query normalization endpoint.
type NormalizedQuery struct {
	Query string              `json:"query"`
	Href  string              `json:"href"`
	State map[string][]string `json:"state"`
}
