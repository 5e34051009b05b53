package domain

import (
	"fmt"
	"math"

	catalog "github.com/clothstore/storefront/internal/catalog/domain"
)

// Item is one cart line. Display fields are denormalized copies of the
// product so the cart renders without a catalog round trip; they get patched
// by hydration when missing.
type Item struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	ImageURL  string  `json:"imageUrl"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
	SKU       string  `json:"sku"`
	Quantity  int     `json:"quantity"`
}

// Matches reports whether the item is addressed by the given identifier,
// which may be either the line id or the product id.
func (it Item) Matches(identifier string) bool {
	if identifier == "" {
		return false
	}
	return it.ID == identifier || it.ProductID == identifier
}

// Normalize repairs an item loaded from untrusted storage: a synthetic local
// id when none survives, price clamped to a non-negative finite number, and
// quantity floored to an integer of at least 1.
func Normalize(it Item, index int) Item {
	if it.ProductID == "" {
		it.ProductID = it.ID
	}
	if it.ID == "" {
		if it.ProductID != "" {
			it.ID = it.ProductID
		} else {
			it.ID = fmt.Sprintf("local-%d", index)
		}
	}
	if it.Price < 0 || math.IsNaN(it.Price) || math.IsInf(it.Price, 0) {
		it.Price = 0
	}
	if it.Quantity < 1 {
		it.Quantity = 1
	}
	return it
}

// FromProduct builds a cart line out of a catalog product.
func FromProduct(p catalog.Product, quantity int) Item {
	if quantity < 1 {
		quantity = 1
	}
	return Item{
		ID:        p.ID,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     math.Max(0, p.Price),
		ImageURL:  p.ImageURL,
		Size:      p.Size,
		Color:     p.Color,
		Category:  p.Category,
		SKU:       p.SKU,
		Quantity:  quantity,
	}
}

// Refresh patches the item's display fields from the product. Populated
// fields are never overwritten with empty ones, and a chosen size or color
// on the line wins over the product default.
func (it Item) Refresh(p catalog.Product) Item {
	if p.Name != "" {
		it.Name = p.Name
	}
	if p.Price > 0 {
		it.Price = p.Price
	}
	if p.ImageURL != "" {
		it.ImageURL = p.ImageURL
	}
	if it.Size == "" {
		it.Size = p.Size
	}
	if it.Color == "" {
		it.Color = p.Color
	}
	if p.Category != "" {
		it.Category = p.Category
	}
	if p.SKU != "" {
		it.SKU = p.SKU
	}
	return it
}

// NeedsHydration reports whether the line is missing display data that the
// catalog can supply.
func (it Item) NeedsHydration() bool {
	return it.ProductID != "" && (it.Name == "" || it.Price == 0)
}
