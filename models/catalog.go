// ════════════════════════════════════════════════════════════
// CATALOG API MODELS
// File: models/catalog.go
// Shapes returned by the remote catalog API.
// ════════════════════════════════════════════════════════════

package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FlexibleID accepts both numeric and string identifiers.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("id: %w", err)
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) String() string { return string(id) }

// Money is a decimal amount. The catalog sends decimals as strings ("1299.00").
type Money float64

func (m *Money) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*m = 0
		return nil
	}
	raw := strings.Trim(string(b), `"`)
	if raw == "" {
		*m = 0
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("money %q: %w", raw, err)
	}
	*m = Money(f)
	return nil
}

type Gender struct {
	ID    FlexibleID `json:"id"`
	Label string     `json:"label"`
	Slug  string     `json:"slug"`
}

type Color struct {
	ID      FlexibleID `json:"id"`
	Name    string     `json:"name"`
	Slug    string     `json:"slug"`
	HexCode string     `json:"hex_code"`
}

type Size struct {
	ID        FlexibleID `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug"`
	SortOrder int        `json:"sort_order"`
}

type Brand struct {
	ID      FlexibleID `json:"id"`
	Name    string     `json:"name"`
	Slug    string     `json:"slug"`
	LogoURL string     `json:"logo_url,omitempty"`
}

type Category struct {
	ID     FlexibleID  `json:"id"`
	Name   string      `json:"name"`
	Slug   string      `json:"slug"`
	Parent *FlexibleID `json:"parent"`
}

type ProductImage struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
	SortOrder int    `json:"sort_order"`
}

type ProductVariant struct {
	ID        FlexibleID `json:"id"`
	ProductID FlexibleID `json:"product_id"`
	SKU       string     `json:"sku"`
	Price     Money      `json:"price"`
	SalePrice *Money     `json:"sale_price"`
	Color     *Color     `json:"color"`
	Size      *Size      `json:"size"`
	InStock   int        `json:"in_stock"`
}

type Product struct {
	ID          FlexibleID       `json:"id"`
	Name        string           `json:"name"`
	Slug        string           `json:"slug"`
	Description string           `json:"description"`
	Category    *Category        `json:"category"`
	Gender      *Gender          `json:"gender"`
	Brand       *Brand           `json:"brand"`
	IsPublished bool             `json:"is_published"`
	Variants    []ProductVariant `json:"variants"`
	Images      []ProductImage   `json:"images"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// PrimaryImage returns the image flagged primary, else the first one.
func (p Product) PrimaryImage() (ProductImage, bool) {
	for _, img := range p.Images {
		if img.IsPrimary {
			return img, true
		}
	}
	if len(p.Images) > 0 {
		return p.Images[0], true
	}
	return ProductImage{}, false
}

// ProductPage is one page of catalog products.
type ProductPage struct {
	Count    int       `json:"count"`
	Next     *string   `json:"next"`
	Previous *string   `json:"previous"`
	Results  []Product `json:"results"`
}

// ParseProductPage accepts either a paginated object or a bare array.
func ParseProductPage(b []byte) (*ProductPage, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var products []Product
		if err := json.Unmarshal(b, &products); err != nil {
			return nil, err
		}
		return &ProductPage{Count: len(products), Results: products}, nil
	}

	var raw struct {
		Count    *int      `json:"count"`
		Next     *string   `json:"next"`
		Previous *string   `json:"previous"`
		Results  []Product `json:"results"`
	}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, err
	}
	page := &ProductPage{
		Next:     raw.Next,
		Previous: raw.Previous,
		Results:  raw.Results,
	}
	if page.Results == nil {
		page.Results = []Product{}
	}
	if raw.Count != nil {
		page.Count = *raw.Count
	} else {
		page.Count = len(page.Results)
	}
	return page, nil
}

// AuthResult is the catalog's answer to sign-in and sign-up.
type AuthResult struct {
	Message string `json:"message"`
	UserID  string `json:"user_id,omitempty"`
	Error   string `json:"error,omitempty"`
}
