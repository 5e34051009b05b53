// Package pricing derives the printable order summary from the cart ledger
// and the currently applied coupon. Everything here is a pure function of
// its inputs; nothing is cached between calls.
package pricing

import (
	"math"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
)

const (
	// orders at or above this subtotal ship free
	FreeShippingThreshold = 200
	FlatShippingFee       = 9.99
)

type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Discount float64 `json:"discount"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

// Compute walks the ledger once. An empty cart yields all zeroes regardless
// of any coupon still held in memory.
func Compute(items []cartdomain.Item, coupon *Coupon) Totals {
	var subtotal float64
	for _, it := range items {
		price := it.Price
		if price < 0 || math.IsNaN(price) {
			price = 0
		}
		subtotal += price * float64(it.Quantity)
	}

	var discount float64
	if coupon != nil {
		discount = subtotal * coupon.Rate
	}

	var shipping float64
	if subtotal > 0 && subtotal < FreeShippingThreshold {
		shipping = FlatShippingFee
	}

	total := subtotal - discount + shipping
	if total < 0 {
		total = 0
	}

	return Totals{
		Subtotal: subtotal,
		Discount: discount,
		Shipping: shipping,
		Total:    total,
	}
}
