// models/filters.go
package models

// FilterPanel is the set of facet controls shown next to the product grid.
type FilterPanel struct {
	Facets   []FacetView `json:"facets"`
	ClearAll string      `json:"clear_all_href"`
	Active   int         `json:"active"`
}

// FacetView is one facet with its options and the link each option leads to.
type FacetView struct {
	Key         string            `json:"key"`
	Label       string            `json:"label"`
	Cardinality string            `json:"cardinality"`
	Options     []FacetOptionView `json:"options"`
	ClearHref   string            `json:"clear_href,omitempty"`
}

type FacetOptionView struct {
	Value    string `json:"value"`
	Label    string `json:"label"`
	Selected bool   `json:"selected"`
	Href     string `json:"href"`
	Swatch   string `json:"swatch,omitempty"`
}

// FilterMetadata represents all filter data for the storefront
type FilterMetadata struct {
	Facets     []FacetView          `json:"facets"`
	Categories []StorefrontCategory `json:"categories"`
	Ordering   []SortOption         `json:"ordering"`
}
