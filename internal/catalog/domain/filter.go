package domain

import (
	"sort"
	"strings"
)

type SortKey string

const (
	SortFeatured  SortKey = "featured"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a user-supplied sort name onto a SortKey, defaulting to
// featured for anything it does not recognize.
func ParseSortKey(s string) SortKey {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "price-asc", "price_asc", "pricelowtohigh":
		return SortPriceAsc
	case "price-desc", "price_desc", "pricehightolow":
		return SortPriceDesc
	case "newest":
		return SortNewest
	default:
		return SortFeatured
	}
}

const (
	PriceFloor   = 0
	PriceCeiling = 200
)

// Criteria is the full filter/sort state for a product listing. The zero
// value is not useful; construct with NewCriteria.
type Criteria struct {
	Categories []string
	Materials  []string
	Color      string
	PriceMin   float64
	PriceMax   float64
	Sort       SortKey
}

func NewCriteria() Criteria {
	return Criteria{
		PriceMin: PriceFloor,
		PriceMax: PriceCeiling,
		Sort:     SortFeatured,
	}
}

// SetPriceMin clamps the lower bound into the configured window while keeping
// at least a one-unit gap below the upper bound.
func (c *Criteria) SetPriceMin(v float64) {
	v = clampPrice(v)
	if v > c.PriceMax-1 {
		v = c.PriceMax - 1
	}
	c.PriceMin = v
}

// SetPriceMax clamps the upper bound into the configured window while keeping
// at least a one-unit gap above the lower bound.
func (c *Criteria) SetPriceMax(v float64) {
	v = clampPrice(v)
	if v < c.PriceMin+1 {
		v = c.PriceMin + 1
	}
	c.PriceMax = v
}

// Reset clears every filter field and restores the full price window. The
// sort key is deliberately left alone.
func (c *Criteria) Reset() {
	c.Categories = nil
	c.Materials = nil
	c.Color = ""
	c.PriceMin = PriceFloor
	c.PriceMax = PriceCeiling
}

// ToggleCategory adds the category to the set, or removes it when already
// present.
func (c *Criteria) ToggleCategory(category string) {
	c.Categories = toggle(c.Categories, category)
}

func (c *Criteria) ToggleMaterial(material string) {
	c.Materials = toggle(c.Materials, material)
}

// Matches reports whether a single product passes every active filter.
func (c Criteria) Matches(p Product) bool {
	if p.Price < c.PriceMin || p.Price > c.PriceMax {
		return false
	}
	if len(c.Categories) > 0 && !contains(c.Categories, p.Category) {
		return false
	}
	if len(c.Materials) > 0 && !contains(c.Materials, p.Material) {
		return false
	}
	if c.Color != "" && p.Color != c.Color {
		return false
	}
	return true
}

// Apply filters and sorts a product list into a fresh slice. The input is
// never mutated and equal-rank products keep their input order.
func (c Criteria) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if c.Matches(p) {
			out = append(out, p)
		}
	}

	switch c.Sort {
	case SortPriceAsc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	case SortPriceDesc:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price > out[j].Price })
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	}

	return out
}

func clampPrice(v float64) float64 {
	if v < PriceFloor {
		return PriceFloor
	}
	if v > PriceCeiling {
		return PriceCeiling
	}
	return v
}

func toggle(set []string, value string) []string {
	for i, v := range set {
		if v == value {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, value)
}

func contains(set []string, value string) bool {
	for _, v := range set {
		if v == value {
			return true
		}
	}
	return false
}
