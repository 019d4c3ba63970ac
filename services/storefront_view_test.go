package services

import (
	"testing"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageCodec() *querystate.Codec {
	return querystate.NewCodec(querystate.EncodingRepeated, querystate.DefaultFacets())
}

func money(f float64) *models.Money {
	m := models.Money(f)
	return &m
}

func facetView(t *testing.T, panel models.FilterPanel, key string) models.FacetView {
	t.Helper()
	for _, f := range panel.Facets {
		if f.Key == key {
			return f
		}
	}
	t.Fatalf("facet %q missing", key)
	return models.FacetView{}
}

func option(t *testing.T, f models.FacetView, value string) models.FacetOptionView {
	t.Helper()
	for _, o := range f.Options {
		if o.Value == value {
			return o
		}
	}
	t.Fatalf("option %q missing in %s", value, f.Key)
	return models.FacetOptionView{}
}

func TestBuildFilterPanelLinks(t *testing.T) {
	codec := pageCodec()
	state := codec.Decode("gender=men&size=M&size=L&page=3")

	panel := BuildFilterPanel(codec, state, "/products", CatalogChoices(nil,
		[]models.Color{{Slug: "red", Name: "Red", HexCode: "#f00"}}, nil))

	assert.Equal(t, 3, panel.Active)
	assert.Equal(t, "/products", panel.ClearAll)

	size := facetView(t, panel, "size")
	assert.Equal(t, "multi", size.Cardinality)
	assert.True(t, option(t, size, "M").Selected)
	assert.Equal(t, "/products?gender=men&size=L", option(t, size, "M").Href)
	assert.Equal(t, "/products?gender=men&size=M&size=L&size=XL", option(t, size, "XL").Href)
	assert.Equal(t, "/products?gender=men", size.ClearHref)

	gender := facetView(t, panel, "gender")
	assert.Equal(t, "/products?gender=women&size=M&size=L", option(t, gender, "women").Href)
	assert.Equal(t, "/products?gender=men&size=M&size=L", option(t, gender, "men").Href, "set keeps the current value")

	color := facetView(t, panel, "color")
	assert.Equal(t, "#f00", option(t, color, "red").Swatch)
	assert.Empty(t, color.ClearHref)
}

func TestBuildFilterPanelKeepsUnlistedSelections(t *testing.T) {
	codec := pageCodec()
	state := codec.Decode("size=XXL")

	size := facetView(t, BuildFilterPanel(codec, state, "/products", nil), "size")
	xxl := option(t, size, "XXL")
	assert.True(t, xxl.Selected)
	assert.Equal(t, "/products", xxl.Href)
}

func TestBuildFilterPanelCaseMismatchedSelectionCanBeRemoved(t *testing.T) {
	codec := pageCodec()
	state := codec.Decode("size=m&color=red")

	size := facetView(t, BuildFilterPanel(codec, state, "/products", nil), "size")
	require.Len(t, size.Options, 5)

	lower := option(t, size, "m")
	assert.True(t, lower.Selected)
	assert.Equal(t, "/products?color=red", lower.Href)

	upper := option(t, size, "M")
	assert.False(t, upper.Selected)
	assert.Equal(t, "/products?color=red&size=m&size=M", upper.Href)
}

func TestBuildSortSelector(t *testing.T) {
	codec := pageCodec()
	state := codec.Decode("ordering=-created_at&color=red&page=2")

	sel := BuildSortSelector(codec, state, "/products")
	require.Len(t, sel.Options, 4)
	assert.Equal(t, "-created_at", sel.Selected)

	want := []string{
		"/products?color=red",
		"/products?color=red&ordering=-created_at",
		"/products?color=red&ordering=variants__price",
		"/products?color=red&ordering=-variants__price",
	}
	got := make([]string, len(sel.Options))
	for i, o := range sel.Options {
		got[i] = o.Href
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sort hrefs (-want +got):\n%s", diff)
	}
	assert.True(t, sel.Options[1].Selected)
}

func TestBuildListingPagination(t *testing.T) {
	codec := pageCodec()
	next := "http://catalog/api/catalog/products/?page=3"
	page := &models.ProductPage{
		Count: 30,
		Next:  &next,
		Results: []models.Product{{
			ID:   "7",
			Name: "Runner",
			Images: []models.ProductImage{
				{URL: "a.jpg"},
				{URL: "b.jpg", IsPrimary: true},
			},
			Variants: []models.ProductVariant{{Price: 120, SalePrice: money(90)}},
		}},
	}

	listing := BuildListing(codec, codec.Decode("size=M&page=2"), page, "/products", nil)

	assert.Equal(t, "page=2&size=M", listing.Query)
	assert.Equal(t, "/products?page=3&size=M", listing.NextHref)
	assert.Equal(t, "/products?size=M", listing.PrevHref)
	assert.Equal(t, "/products?page=2&size=M", listing.Canonical)

	require.Len(t, listing.Cards, 1)
	card := listing.Cards[0]
	assert.Equal(t, "b.jpg", card.Image)
	assert.Equal(t, "/products/7", card.Href)
	assert.Equal(t, 120.0, *card.Price)
	assert.Equal(t, 90.0, *card.SalePrice)
}

func TestBuildListingFirstPageHasNoPrev(t *testing.T) {
	codec := pageCodec()
	listing := BuildListing(codec, querystate.State{}, &models.ProductPage{}, "/products", nil)

	assert.Empty(t, listing.PrevHref)
	assert.Empty(t, listing.NextHref)
	assert.Equal(t, "/products", listing.Canonical)
	assert.NotNil(t, listing.Cards)
}

func TestBuildProductDetail(t *testing.T) {
	product := models.Product{
		ID:     "7",
		Name:   "Runner",
		Brand:  &models.Brand{Name: "Modeva"},
		Images: []models.ProductImage{{URL: "a.jpg"}, {URL: "b.jpg", IsPrimary: true}},
	}
	variants := []models.ProductVariant{
		{ID: "1", Price: 200, SalePrice: money(150), Color: &models.Color{Slug: "red", Name: "Red", HexCode: "#f00"}, Size: &models.Size{Name: "L", SortOrder: 3}},
		{ID: "2", Price: 200, Color: &models.Color{Slug: "red", Name: "Red"}, Size: &models.Size{Name: "S", SortOrder: 1}, InStock: 4},
		{ID: "3", Price: 210, Color: &models.Color{Slug: "black", Name: "Black"}, Size: &models.Size{Name: "L", SortOrder: 3}},
	}

	detail, err := BuildProductDetail(product, variants)
	require.NoError(t, err)

	assert.Equal(t, 150.0, detail.Price)
	assert.Equal(t, 200.0, detail.CompareAt)
	assert.Equal(t, 25, detail.DiscountPercent)
	assert.Equal(t, []string{"S", "L"}, detail.Sizes)
	assert.True(t, detail.InStock)
	assert.Equal(t, "Modeva", detail.Brand)

	want := []models.GalleryVariant{
		{Color: "Red", Swatch: "#f00", Images: []string{"b.jpg", "a.jpg"}},
		{Color: "Black", Swatch: "#000", Images: []string{"b.jpg", "a.jpg"}},
	}
	if diff := cmp.Diff(want, detail.Gallery); diff != "" {
		t.Errorf("gallery (-want +got):\n%s", diff)
	}
}

func TestBuildProductDetailWithoutSale(t *testing.T) {
	detail, err := BuildProductDetail(models.Product{ID: "1"}, []models.ProductVariant{{Price: 80}})
	require.NoError(t, err)
	assert.Equal(t, 80.0, detail.Price)
	assert.Zero(t, detail.DiscountPercent)
	require.Len(t, detail.Gallery, 1)
	assert.False(t, detail.InStock)
}

func TestBuildProductDetailNeedsVariants(t *testing.T) {
	_, err := BuildProductDetail(models.Product{ID: "1"}, nil)
	assert.ErrorIs(t, err, ErrNoVariants)
}

func TestBuildCategoryTree(t *testing.T) {
	shoes := models.FlexibleID("1")
	tree := BuildCategoryTree(pageCodec(), []models.Category{
		{ID: "1", Name: "Shoes", Slug: "shoes"},
		{ID: "2", Name: "Running", Slug: "running", Parent: &shoes},
		{ID: "3", Name: "Bags", Slug: "bags"},
	}, "/products")

	require.Len(t, tree, 2)
	assert.Equal(t, "/products?category=shoes", tree[0].Href)
	require.Len(t, tree[0].Subcategories, 1)
	assert.Equal(t, "Running", tree[0].Subcategories[0].Name)
	assert.Empty(t, tree[1].Subcategories)
}

func TestCatalogChoicesOrdersSizes(t *testing.T) {
	choices := CatalogChoices(
		[]models.Gender{{Label: "Men", Slug: "men"}},
		nil,
		[]models.Size{{Name: "L", SortOrder: 3}, {Name: "S", SortOrder: 1}},
	)
	assert.Equal(t, []FacetChoice{{Value: "men", Label: "Men"}}, choices["gender"])
	assert.Equal(t, "S", choices["size"][0].Value)
}

func TestCanonicalSearchQuery(t *testing.T) {
	q, err := CanonicalSearchQuery(pageCodec(), "size=M&page=4&gender=men&size=M")
	require.NoError(t, err)
	assert.Equal(t, "gender=men&size=M", q)

	_, err = CanonicalSearchQuery(pageCodec(), "page=2")
	assert.ErrorIs(t, err, ErrEmptySearch)
}
