package services

import (
	"errors"
	"math"
	"net/url"
	"slices"
	"sort"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
)

// ErrNoVariants marks a product that cannot be shown because it has nothing to sell.
var ErrNoVariants = errors.New("product has no variants")

const defaultSwatch = "#000"

// SortOptions are the orderings the catalog understands. The empty value is
// the catalog's default order.
var SortOptions = []models.SortOption{
	{Label: "Featured", Value: ""},
	{Label: "Newest", Value: "-created_at"},
	{Label: "Price: Low to High", Value: "variants__price"},
	{Label: "Price: High to Low", Value: "-variants__price"},
}

// FacetChoice is one selectable value offered for a facet.
type FacetChoice struct {
	Value  string
	Label  string
	Swatch string
}

// CatalogChoices turns the catalog's option lists into choices keyed by facet.
func CatalogChoices(genders []models.Gender, colors []models.Color, sizes []models.Size) map[string][]FacetChoice {
	out := make(map[string][]FacetChoice, 3)

	for _, g := range genders {
		out["gender"] = append(out["gender"], FacetChoice{Value: firstNonEmpty(g.Slug, g.Label), Label: firstNonEmpty(g.Label, g.Slug)})
	}
	for _, c := range colors {
		out["color"] = append(out["color"], FacetChoice{
			Value:  firstNonEmpty(c.Slug, c.Name),
			Label:  firstNonEmpty(c.Name, c.Slug),
			Swatch: c.HexCode,
		})
	}

	ordered := append([]models.Size(nil), sizes...)
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].SortOrder < ordered[j].SortOrder })
	for _, s := range ordered {
		out["size"] = append(out["size"], FacetChoice{Value: firstNonEmpty(s.Name, s.Slug), Label: firstNonEmpty(s.Name, s.Slug)})
	}
	return out
}

// BuildFilterPanel renders every facet of the codec's table against state.
// Each option links to the state its click produces; path is the products page.
func BuildFilterPanel(codec *querystate.Codec, state querystate.State, path string, catalog map[string][]FacetChoice) models.FilterPanel {
	facets := codec.Facets()
	panel := models.FilterPanel{
		Facets:   make([]models.FacetView, 0, len(facets.Keys())),
		ClearAll: codec.Href(path, querystate.ClearFilters(state, facets)),
	}

	for _, def := range facets.Definitions() {
		selected := state.Get(def.Key)
		view := models.FacetView{
			Key:         def.Key,
			Label:       def.Label,
			Cardinality: string(def.Cardinality),
			Options:     make([]models.FacetOptionView, 0),
		}

		for _, choice := range facetChoices(def, catalog[def.Key], selected) {
			view.Options = append(view.Options, models.FacetOptionView{
				Value:    choice.Value,
				Label:    choice.Label,
				Swatch:   choice.Swatch,
				Selected: selected.Contains(choice.Value),
				Href:     codec.Href(path, querystate.Apply(state, facets, def.Key, choice.Value)),
			})
		}
		if !selected.IsAbsent() {
			view.ClearHref = codec.Href(path, querystate.ClearFacet(state, def.Key))
			panel.Active += selected.Len()
		}
		panel.Facets = append(panel.Facets, view)
	}
	return panel
}

// facetChoices lists a facet's options: the table's own when it defines any,
// the catalog's otherwise. Selected values missing from both are appended so
// they can still be deselected.
func facetChoices(def querystate.FacetDefinition, catalog []FacetChoice, selected querystate.Value) []FacetChoice {
	var choices []FacetChoice
	if len(def.Options) > 0 {
		choices = make([]FacetChoice, 0, len(def.Options))
		for _, opt := range def.Options {
			choice := FacetChoice{Value: opt.Value, Label: firstNonEmpty(opt.Label, opt.Value)}
			if match, ok := findChoice(catalog, opt.Value); ok {
				choice.Swatch = match.Swatch
			}
			choices = append(choices, choice)
		}
	} else {
		choices = append(choices, catalog...)
	}

	// Exact match: a selection differing only in case still needs its own
	// option, since Selected and the toggle compare values exactly.
	for _, v := range selected.Values() {
		if !slices.ContainsFunc(choices, func(c FacetChoice) bool { return c.Value == v }) {
			choices = append(choices, FacetChoice{Value: v, Label: v})
		}
	}
	return choices
}

func findChoice(choices []FacetChoice, value string) (FacetChoice, bool) {
	for _, c := range choices {
		if strings.EqualFold(c.Value, value) || strings.EqualFold(c.Label, value) {
			return c, true
		}
	}
	return FacetChoice{}, false
}

// BuildSortSelector links every sort option from the current state.
func BuildSortSelector(codec *querystate.Codec, state querystate.State, path string) models.SortSelector {
	current := state.Ordering()
	sel := models.SortSelector{Selected: current, Options: make([]models.SortOption, 0, len(SortOptions))}
	for _, opt := range SortOptions {
		opt.Selected = opt.Value == current
		opt.Href = codec.Href(path, querystate.SetSingleValue(state, querystate.KeyOrdering, opt.Value))
		sel.Options = append(sel.Options, opt)
	}
	return sel
}

// BuildProductCards maps catalog products to grid tiles. Cards link to
// detailPath + "/" + id.
func BuildProductCards(products []models.Product, detailPath string) []models.ProductCard {
	cards := make([]models.ProductCard, 0, len(products))
	for _, p := range products {
		card := models.ProductCard{
			ID:   p.ID.String(),
			Slug: p.Slug,
			Name: p.Name,
			Href: strings.TrimRight(detailPath, "/") + "/" + url.PathEscape(p.ID.String()),
		}
		if img, ok := p.PrimaryImage(); ok {
			card.Image = img.URL
		}
		if len(p.Variants) > 0 {
			v := p.Variants[0]
			price := float64(v.Price)
			card.Price = &price
			if v.SalePrice != nil {
				sale := float64(*v.SalePrice)
				card.SalePrice = &sale
			}
		}
		cards = append(cards, card)
	}
	return cards
}

// BuildListing assembles the browse page for one catalog page.
func BuildListing(
	codec *querystate.Codec,
	state querystate.State,
	page *models.ProductPage,
	productsPath string,
	catalog map[string][]FacetChoice,
) models.ProductListing {
	current := state.Page()
	listing := models.ProductListing{
		Query:     codec.Encode(state),
		Count:     page.Count,
		Cards:     BuildProductCards(page.Results, productsPath),
		Filters:   BuildFilterPanel(codec, state, productsPath, catalog),
		Sort:      BuildSortSelector(codec, state, productsPath),
		Canonical: codec.Href(productsPath, state),
	}
	if page.Next != nil && *page.Next != "" {
		listing.NextHref = codec.Href(productsPath, querystate.SetPage(state, current+1))
	}
	if current > 1 {
		listing.PrevHref = codec.Href(productsPath, querystate.SetPage(state, current-1))
	}
	return listing
}

// BuildProductDetail derives the product page. variants override the ones
// embedded in product when non-empty.
func BuildProductDetail(product models.Product, variants []models.ProductVariant) (models.ProductDetail, error) {
	if len(variants) == 0 {
		variants = product.Variants
	}
	if len(variants) == 0 {
		return models.ProductDetail{}, ErrNoVariants
	}

	def := variants[0]
	compareAt := float64(def.Price)
	price := compareAt
	discount := 0
	if def.SalePrice != nil {
		price = float64(*def.SalePrice)
		if compareAt > 0 {
			discount = int(math.Round((compareAt - price) / compareAt * 100))
		}
	}

	detail := models.ProductDetail{
		ID:              product.ID.String(),
		Slug:            product.Slug,
		Name:            product.Name,
		Description:     product.Description,
		Price:           price,
		CompareAt:       compareAt,
		DiscountPercent: discount,
		Gallery:         buildGallery(product, variants),
		Sizes:           variantSizes(variants),
		Variants:        variants,
	}
	if product.Brand != nil {
		detail.Brand = product.Brand.Name
	}
	if product.Category != nil {
		detail.Category = product.Category.Name
	}
	for _, v := range variants {
		if v.InStock > 0 {
			detail.InStock = true
			break
		}
	}
	return detail, nil
}

// buildGallery yields one entry per distinct variant colour, each showing
// the product's images.
func buildGallery(product models.Product, variants []models.ProductVariant) []models.GalleryVariant {
	images := make([]string, 0, len(product.Images))
	if primary, ok := product.PrimaryImage(); ok {
		images = append(images, primary.URL)
	}
	for _, img := range product.Images {
		if len(images) > 0 && img.URL == images[0] {
			continue
		}
		images = append(images, img.URL)
	}

	gallery := make([]models.GalleryVariant, 0)
	seen := make(map[string]bool)
	for _, v := range variants {
		if v.Color == nil {
			continue
		}
		key := firstNonEmpty(v.Color.Slug, v.Color.Name)
		if seen[key] {
			continue
		}
		seen[key] = true
		gallery = append(gallery, models.GalleryVariant{
			Color:  v.Color.Name,
			Swatch: firstNonEmpty(v.Color.HexCode, defaultSwatch),
			Images: images,
		})
	}
	if len(gallery) == 0 {
		gallery = append(gallery, models.GalleryVariant{Swatch: defaultSwatch, Images: images})
	}
	return gallery
}

func variantSizes(variants []models.ProductVariant) []string {
	type entry struct {
		name  string
		order int
	}
	seen := make(map[string]bool)
	sizes := make([]entry, 0)
	for _, v := range variants {
		if v.Size == nil || v.Size.Name == "" || seen[v.Size.Name] {
			continue
		}
		seen[v.Size.Name] = true
		sizes = append(sizes, entry{name: v.Size.Name, order: v.Size.SortOrder})
	}
	sort.SliceStable(sizes, func(i, j int) bool { return sizes[i].order < sizes[j].order })

	out := make([]string, len(sizes))
	for i, s := range sizes {
		out[i] = s.name
	}
	return out
}

// BuildCategoryTree nests categories under their parents. Each node links to
// the products page filtered by its slug.
func BuildCategoryTree(codec *querystate.Codec, categories []models.Category, productsPath string) []models.StorefrontCategory {
	children := make(map[string][]models.Category)
	roots := make([]models.Category, 0)
	known := make(map[string]bool, len(categories))
	for _, c := range categories {
		known[c.ID.String()] = true
	}
	for _, c := range categories {
		if c.Parent == nil || *c.Parent == "" || !known[c.Parent.String()] {
			roots = append(roots, c)
			continue
		}
		children[c.Parent.String()] = append(children[c.Parent.String()], c)
	}

	var build func(c models.Category, depth int) models.StorefrontCategory
	build = func(c models.Category, depth int) models.StorefrontCategory {
		node := models.StorefrontCategory{
			ID:   c.ID.String(),
			Name: c.Name,
			Slug: c.Slug,
			Href: codec.Href(productsPath, querystate.New(map[string]querystate.Value{
				"category": querystate.Scalar(firstNonEmpty(c.Slug, c.ID.String())),
			})),
		}
		if depth > 8 {
			return node
		}
		for _, child := range children[c.ID.String()] {
			node.Subcategories = append(node.Subcategories, build(child, depth+1))
		}
		return node
	}

	tree := make([]models.StorefrontCategory, 0, len(roots))
	for _, r := range roots {
		tree = append(tree, build(r, 0))
	}
	return tree
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
