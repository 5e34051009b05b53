package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
	catalogdomain "github.com/clothstore/storefront/internal/catalog/domain"
)

var ErrProductNotFound = errors.New("product not found")

// Service is the cart ledger: the ordered list of items a shopper intends to
// purchase, kept in sync with its persisted mirror on every mutation.
type Service struct {
	store   Store
	catalog CatalogReader

	items []cartdomain.Item

	// product ids already hydrated this session, looked up at most once
	hydrated map[string]struct{}

	maxConcurrent int

	onClear  func()
	onChange func([]cartdomain.Item)
}

type Option func(*Service)

// WithOnClear registers a hook fired when the cart is emptied, used to drop
// an applied coupon along with the items.
func WithOnClear(fn func()) Option {
	return func(s *Service) { s.onClear = fn }
}

// WithOnChange registers a hook fired with the new snapshot after every
// mutation; the caller owns re-rendering.
func WithOnChange(fn func([]cartdomain.Item)) Option {
	return func(s *Service) { s.onChange = fn }
}

func WithMaxConcurrent(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxConcurrent = n
		}
	}
}

// NewService restores the ledger from the store. A load failure starts an
// empty cart rather than failing startup.
func NewService(store Store, catalog CatalogReader, opts ...Option) *Service {
	s := &Service{
		store:         store,
		catalog:       catalog,
		hydrated:      make(map[string]struct{}),
		maxConcurrent: 4,
	}
	for _, opt := range opts {
		opt(s)
	}

	loaded, err := store.Load()
	if err != nil {
		loaded = nil
	}
	for i, it := range loaded {
		s.items = append(s.items, cartdomain.Normalize(it, i))
	}

	return s
}

// Items returns a copy of the current ledger.
func (s *Service) Items() []cartdomain.Item {
	out := make([]cartdomain.Item, len(s.items))
	copy(out, s.items)
	return out
}

func (s *Service) Len() int { return len(s.items) }

// AddItem merges a product into the ledger. An existing line for the same
// product gets its quantity incremented and its display fields refreshed;
// otherwise a new line is appended.
func (s *Service) AddItem(p catalogdomain.Product, quantity int) ([]cartdomain.Item, error) {
	if quantity < 1 {
		quantity = 1
	}

	merged := false
	for i, it := range s.items {
		if it.Matches(p.ID) {
			next := it.Refresh(p)
			next.Quantity = it.Quantity + quantity
			s.items[i] = next
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, cartdomain.FromProduct(p, quantity))
	}

	return s.snapshot(s.persist())
}

// AddByID is the quick-add path: look the product up, then merge it in.
func (s *Service) AddByID(ctx context.Context, productID string, quantity int) ([]cartdomain.Item, error) {
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return s.Items(), err
	}
	if p.ID == "" {
		return s.Items(), ErrProductNotFound
	}
	return s.AddItem(p, quantity)
}

// ChangeQuantity applies a delta to the matching line, floored at 1. Taking
// the quantity below 1 never removes the line; removal is its own operation.
func (s *Service) ChangeQuantity(identifier string, delta int) ([]cartdomain.Item, error) {
	for i, it := range s.items {
		if it.Matches(identifier) {
			next := it.Quantity + delta
			if next < 1 {
				next = 1
			}
			s.items[i].Quantity = next
		}
	}
	return s.snapshot(s.persist())
}

// SetQuantity replaces the quantity outright. Non-finite or sub-1 values are
// silently ignored; fractional values are floored.
func (s *Service) SetQuantity(identifier string, value float64) ([]cartdomain.Item, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 1 {
		return s.Items(), nil
	}
	q := int(math.Floor(value))
	for i, it := range s.items {
		if it.Matches(identifier) {
			s.items[i].Quantity = q
		}
	}
	return s.snapshot(s.persist())
}

// RemoveItem deletes the lines addressed by the identifier.
func (s *Service) RemoveItem(identifier string) ([]cartdomain.Item, error) {
	kept := s.items[:0]
	for _, it := range s.items {
		if !it.Matches(identifier) {
			kept = append(kept, it)
		}
	}
	s.items = kept
	return s.snapshot(s.persist())
}

// Clear empties the ledger. Any applied coupon goes with it via the OnClear
// hook, since a discount without items is meaningless.
func (s *Service) Clear() ([]cartdomain.Item, error) {
	s.items = nil
	if s.onClear != nil {
		s.onClear()
	}
	return s.snapshot(s.persist())
}

// HydrateMissing patches lines that are missing a name or carry a zero price
// by querying the catalog. Each product id is looked up at most once per
// session, failed lookups surface without blocking the rest, and existing
// cart contents survive every failure.
func (s *Service) HydrateMissing(ctx context.Context) ([]cartdomain.Item, error) {
	pending := make([]string, 0)
	seen := make(map[string]struct{})
	for _, it := range s.items {
		if !it.NeedsHydration() {
			continue
		}
		if _, done := s.hydrated[it.ProductID]; done {
			continue
		}
		if _, dup := seen[it.ProductID]; dup {
			continue
		}
		seen[it.ProductID] = struct{}{}
		pending = append(pending, it.ProductID)
	}
	sort.Strings(pending)

	if len(pending) == 0 {
		return s.Items(), nil
	}

	var mu sync.Mutex
	fetched := make(map[string]catalogdomain.Product, len(pending))
	var failures []error

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.maxConcurrent)
	for _, id := range pending {
		id := id
		s.hydrated[id] = struct{}{}
		g.Go(func() error {
			p, err := s.catalog.GetProduct(gctx, id)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failures = append(failures, fmt.Errorf("hydrate %s: %w", id, err))
				return nil
			}
			fetched[id] = p
			return nil
		})
	}
	// goroutines never return errors; Wait only propagates ctx problems
	_ = g.Wait()

	for i, it := range s.items {
		if p, ok := fetched[it.ProductID]; ok {
			s.items[i] = it.Refresh(p)
		}
	}

	if err := s.persist(); err != nil {
		failures = append(failures, err)
	}
	return s.snapshot(errors.Join(failures...))
}

func (s *Service) persist() error {
	items := s.items
	if items == nil {
		items = []cartdomain.Item{}
	}
	return s.store.Save(items)
}

func (s *Service) snapshot(err error) ([]cartdomain.Item, error) {
	items := s.Items()
	if s.onChange != nil {
		s.onChange(items)
	}
	return items, err
}
