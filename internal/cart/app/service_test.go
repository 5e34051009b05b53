package app

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	cartdomain "github.com/clothstore/storefront/internal/cart/domain"
	catalogdomain "github.com/clothstore/storefront/internal/catalog/domain"
)

type memStore struct {
	items   []cartdomain.Item
	loadErr error
	saveErr error
	saves   int
}

func (m *memStore) Load() ([]cartdomain.Item, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items, nil
}

func (m *memStore) Save(items []cartdomain.Item) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.items = append([]cartdomain.Item(nil), items...)
	return nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]catalogdomain.Product
	errs     map[string]error
	lookups  map[string]int
	delay    time.Duration
	active   int
	peak     int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: make(map[string]catalogdomain.Product),
		errs:     make(map[string]error),
		lookups:  make(map[string]int),
	}
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id string) (catalogdomain.Product, error) {
	f.mu.Lock()
	f.lookups[id]++
	f.active++
	if f.active > f.peak {
		f.peak = f.active
	}
	delay := f.delay
	f.mu.Unlock()

	if delay > 0 {
		time.Sleep(delay)
	}

	f.mu.Lock()
	f.active--
	err, failed := f.errs[id]
	p, ok := f.products[id]
	f.mu.Unlock()

	if failed {
		return catalogdomain.Product{}, err
	}
	if !ok {
		return catalogdomain.Product{}, errors.New("no such product")
	}
	return p, nil
}

func shirt() catalogdomain.Product {
	return catalogdomain.Product{ID: "p1", Name: "Linen Shirt", Price: 25, Category: "Shirts", Color: "white", SKU: "LN-1"}
}

func TestAddItemMergesOnProductID(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, newFakeCatalog())

	if _, err := svc.AddItem(shirt(), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(shirt(), 3); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.AddItem(shirt(), 0); err != nil { // clamped to 1
		t.Fatalf("add: %v", err)
	}

	items := svc.Items()
	if len(items) != 1 {
		t.Fatalf("expected one line per product, got %d", len(items))
	}
	if items[0].Quantity != 6 {
		t.Fatalf("expected quantity 6, got %d", items[0].Quantity)
	}
}

func TestAddItemRefreshesWithoutErasing(t *testing.T) {
	store := &memStore{items: []cartdomain.Item{{ID: "p1", ProductID: "p1", Name: "Old", Size: "M", Quantity: 1}}}
	svc := NewService(store, newFakeCatalog())

	p := shirt()
	p.Size = "L"
	if _, err := svc.AddItem(p, 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	it := svc.Items()[0]
	if it.Name != "Linen Shirt" {
		t.Fatalf("expected refreshed name, got %q", it.Name)
	}
	if it.Size != "M" {
		t.Fatalf("expected chosen size to survive, got %q", it.Size)
	}
}

func TestChangeQuantityFloorsAtOne(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, newFakeCatalog())
	svc.AddItem(shirt(), 3)

	svc.ChangeQuantity("p1", -100)
	if q := svc.Items()[0].Quantity; q != 1 {
		t.Fatalf("expected floor at 1, got %d", q)
	}

	svc.ChangeQuantity("p1", 2)
	if q := svc.Items()[0].Quantity; q != 3 {
		t.Fatalf("expected 3, got %d", q)
	}
}

func TestSetQuantityIgnoresInvalidInput(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, newFakeCatalog())
	svc.AddItem(shirt(), 4)

	svc.SetQuantity("p1", -3)
	svc.SetQuantity("p1", math.NaN())
	svc.SetQuantity("p1", math.Inf(1))
	svc.SetQuantity("p1", 0.2)

	if q := svc.Items()[0].Quantity; q != 4 {
		t.Fatalf("invalid input must be a no-op, got %d", q)
	}

	svc.SetQuantity("p1", 7.9)
	if q := svc.Items()[0].Quantity; q != 7 {
		t.Fatalf("expected floored 7, got %d", q)
	}
}

func TestRemoveMatchesEitherIdentifier(t *testing.T) {
	store := &memStore{items: []cartdomain.Item{
		{ID: "line-1", ProductID: "p1", Name: "A", Quantity: 1},
		{ID: "line-2", ProductID: "p2", Name: "B", Quantity: 1},
	}}
	svc := NewService(store, newFakeCatalog())

	svc.RemoveItem("p1")
	if svc.Len() != 1 {
		t.Fatalf("expected removal by product id, got %d lines", svc.Len())
	}
	svc.RemoveItem("line-2")
	if svc.Len() != 0 {
		t.Fatalf("expected removal by line id, got %d lines", svc.Len())
	}
}

func TestClearFiresCouponHook(t *testing.T) {
	cleared := false
	store := &memStore{items: []cartdomain.Item{{ID: "p1", ProductID: "p1", Quantity: 2}}}
	svc := NewService(store, newFakeCatalog(), WithOnClear(func() { cleared = true }))

	items, err := svc.Clear()
	if err != nil {
		t.Fatalf("clear: %v", err)
	}
	if len(items) != 0 || !cleared {
		t.Fatalf("expected empty ledger and fired hook, got %d items, cleared=%v", len(items), cleared)
	}
}

func TestOnChangeFiresOncePerMutation(t *testing.T) {
	var fired int
	var last []cartdomain.Item
	svc := NewService(&memStore{}, newFakeCatalog(), WithOnChange(func(items []cartdomain.Item) {
		fired++
		last = append([]cartdomain.Item(nil), items...)
	}))

	svc.AddItem(shirt(), 2)
	if fired != 1 {
		t.Fatalf("expected one invocation after add, got %d", fired)
	}
	if len(last) != 1 || last[0].Quantity != 2 {
		t.Fatalf("hook must receive the new snapshot, got %+v", last)
	}

	svc.ChangeQuantity("p1", 1)
	svc.SetQuantity("p1", 5)
	svc.RemoveItem("p1")
	svc.Clear()
	if fired != 5 {
		t.Fatalf("expected one invocation per mutation, got %d", fired)
	}
	if len(last) != 0 {
		t.Fatalf("expected the cleared snapshot last, got %+v", last)
	}
}

func TestOnChangeSkipsReadOnlyPaths(t *testing.T) {
	var fired int
	svc := NewService(&memStore{}, newFakeCatalog(), WithOnChange(func([]cartdomain.Item) { fired++ }))
	svc.AddItem(shirt(), 1)

	before := fired
	svc.Items()
	svc.SetQuantity("p1", math.NaN())
	svc.SetQuantity("p1", 0)
	svc.HydrateMissing(context.Background()) // nothing pending, nothing to render
	if fired != before {
		t.Fatalf("reads and rejected input must not fire the hook, got %d extra", fired-before)
	}
}

func TestMutationsPersistFullLedger(t *testing.T) {
	store := &memStore{}
	svc := NewService(store, newFakeCatalog())

	svc.AddItem(shirt(), 1)
	svc.ChangeQuantity("p1", 1)
	svc.RemoveItem("p1")

	if store.saves != 3 {
		t.Fatalf("expected a save per mutation, got %d", store.saves)
	}
	if len(store.items) != 0 {
		t.Fatalf("expected persisted mirror to match, got %+v", store.items)
	}
}

func TestCorruptStoreStartsEmpty(t *testing.T) {
	store := &memStore{loadErr: errors.New("corrupt")}
	svc := NewService(store, newFakeCatalog())
	if svc.Len() != 0 {
		t.Fatalf("expected empty ledger on load failure")
	}
}

func TestHydrateDeduplicatesLookups(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products["p1"] = shirt()

	store := &memStore{items: []cartdomain.Item{
		{ID: "line-a", ProductID: "p1", Quantity: 1},
		{ID: "line-b", ProductID: "p1", Quantity: 2},
	}}
	svc := NewService(store, catalog)

	if _, err := svc.HydrateMissing(context.Background()); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if catalog.lookups["p1"] != 1 {
		t.Fatalf("expected exactly one lookup, got %d", catalog.lookups["p1"])
	}

	for _, it := range svc.Items() {
		if it.Name != "Linen Shirt" || it.Price != 25 {
			t.Fatalf("expected both lines patched, got %+v", it)
		}
	}

	// a second run must not refetch
	svc.HydrateMissing(context.Background())
	if catalog.lookups["p1"] != 1 {
		t.Fatalf("expected session-level dedup, got %d lookups", catalog.lookups["p1"])
	}
}

func TestHydratePartialFailureKeepsGoing(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products["ok"] = catalogdomain.Product{ID: "ok", Name: "Coat", Price: 90}
	catalog.errs["bad"] = errors.New("catalog exploded")

	store := &memStore{items: []cartdomain.Item{
		{ID: "bad", ProductID: "bad", Quantity: 1},
		{ID: "ok", ProductID: "ok", Quantity: 1},
	}}
	svc := NewService(store, catalog)

	items, err := svc.HydrateMissing(context.Background())
	if err == nil {
		t.Fatalf("expected the failure to surface")
	}
	if len(items) != 2 {
		t.Fatalf("failures must not discard cart contents, got %d items", len(items))
	}

	var patched bool
	for _, it := range items {
		if it.ProductID == "ok" && it.Name == "Coat" {
			patched = true
		}
	}
	if !patched {
		t.Fatalf("expected healthy line to hydrate, got %+v", items)
	}
}

func TestHydrateHonorsConcurrencyLimit(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.delay = 20 * time.Millisecond

	var lines []cartdomain.Item
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("p%d", i)
		catalog.products[id] = catalogdomain.Product{ID: id, Name: "Item " + id, Price: 10}
		lines = append(lines, cartdomain.Item{ID: "line-" + id, ProductID: id, Quantity: 1})
	}

	svc := NewService(&memStore{items: lines}, catalog, WithMaxConcurrent(2))

	items, err := svc.HydrateMissing(context.Background())
	if err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	for _, it := range items {
		if it.Name == "" {
			t.Fatalf("expected every line hydrated, got %+v", it)
		}
	}

	catalog.mu.Lock()
	peak := catalog.peak
	catalog.mu.Unlock()
	if peak > 2 {
		t.Fatalf("expected at most 2 in-flight lookups, saw %d", peak)
	}
}

func TestAddByIDQuickAdd(t *testing.T) {
	catalog := newFakeCatalog()
	catalog.products["p1"] = shirt()
	svc := NewService(&memStore{}, catalog)

	items, err := svc.AddByID(context.Background(), "p1", 2)
	if err != nil {
		t.Fatalf("quick add: %v", err)
	}
	if len(items) != 1 || items[0].Quantity != 2 {
		t.Fatalf("unexpected ledger %+v", items)
	}

	if _, err := svc.AddByID(context.Background(), "missing", 1); err == nil {
		t.Fatalf("expected lookup failure to surface")
	}
	if svc.Len() != 1 {
		t.Fatalf("failed quick-add must not touch the ledger")
	}
}
