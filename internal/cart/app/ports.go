package app

import (
	"context"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
	catalogdomain "github.com/clothstore/storefront/internal/catalog/domain"
)

// Store is the persisted mirror of the ledger. Load must treat malformed or
// missing state as an empty cart.
type Store interface {
	Load() ([]cartdomain.Item, error)
	Save(items []cartdomain.Item) error
}

// CatalogReader supplies product data for quick-add and hydration.
type CatalogReader interface {
	GetProduct(ctx context.Context, id string) (catalogdomain.Product, error)
}
