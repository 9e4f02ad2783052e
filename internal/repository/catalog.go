package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// SortDirection orders a price sort.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ProductPatch carries a partial update; nil fields are left untouched.
type ProductPatch struct {
	Name        *string
	Description *string
	Price       *decimal.Decimal
	Category    *string
	Image       *string
	Stars       *int
}

// Catalog is the product store. IDs are assigned from a monotonic counter
// recovered as highest-used+1 when reloading persisted data.
type Catalog struct {
	mu       sync.RWMutex
	kv       localstore.Store
	log      *slog.Logger
	products []domain.Product
	nextID   int64
}

// NewCatalog loads the persisted catalog, or seeds the default one (and
// persists it immediately) when none exists. A catalog that fails to parse
// is logged and replaced by the default seed.
func NewCatalog(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Catalog, error) {
	c := &Catalog{kv: kv, log: orDefault(log), nextID: 1}
	data, ok, err := kv.Get(ctx, keyCatalog)
	if err != nil {
		return nil, err
	}
	if !ok {
		if err := c.seed(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
	if err := json.Unmarshal(data, &c.products); err != nil {
		c.log.Error("discarding malformed catalog data", "key", keyCatalog, "err", err)
		c.products = nil
		if err := c.seed(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
	for _, p := range c.products {
		if p.ID >= c.nextID {
			c.nextID = p.ID + 1
		}
	}
	return c, nil
}

func (c *Catalog) seed(ctx context.Context) error {
	for _, p := range defaultCatalog() {
		p.ID = c.nextID
		c.nextID++
		c.products = append(c.products, p)
	}
	return persist(ctx, c.kv, keyCatalog, c.products)
}

// Insert appends a product, assigning a fresh ID when none is given, and
// persists. Explicit IDs at or above the counter advance it.
func (c *Catalog) Insert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p.ID == 0 {
		p.ID = c.nextID
		c.nextID++
	} else if p.ID >= c.nextID {
		c.nextID = p.ID + 1
	}
	c.products = append(c.products, p)
	if err := persist(ctx, c.kv, keyCatalog, c.products); err != nil {
		return nil, err
	}
	cp := p
	return &cp, nil
}

// Update merges the given fields into the stored record. Fields not supplied
// keep their current values.
func (c *Catalog) Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	p := &c.products[i]
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.Stars != nil {
		p.Stars = *patch.Stars
	}
	if err := persist(ctx, c.kv, keyCatalog, c.products); err != nil {
		return nil, err
	}
	cp := *p
	return &cp, nil
}

// Remove deletes the product and returns the removed record.
func (c *Catalog) Remove(ctx context.Context, id int64) (*domain.Product, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	removed := c.products[i]
	c.products = append(c.products[:i], c.products[i+1:]...)
	if err := persist(ctx, c.kv, keyCatalog, c.products); err != nil {
		return nil, err
	}
	return &removed, nil
}

func (c *Catalog) ByID(id int64) (*domain.Product, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	i := c.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	cp := c.products[i]
	return &cp, nil
}

// All returns a copy of the catalog in insertion order.
func (c *Catalog) All() []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Search matches the term case-insensitively against name and description,
// preserving catalog order.
func (c *Catalog) Search(term string) []domain.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if containsIgnoreCase(p.Name, term) || containsIgnoreCase(p.Description, term) {
			out = append(out, p)
		}
	}
	return out
}

// ByCategory filters by exact category; an empty category returns everything.
func (c *Catalog) ByCategory(category string) []domain.Product {
	if category == "" {
		return c.All()
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.Product, 0)
	for _, p := range c.products {
		if p.Category == category {
			out = append(out, p)
		}
	}
	return out
}

// SortedByPrice returns a price-sorted copy; the stored order is untouched.
// The sort is stable, so equal prices keep their catalog order.
func (c *Catalog) SortedByPrice(dir SortDirection) []domain.Product {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		if dir == SortDesc {
			return out[i].Price.GreaterThan(out[j].Price)
		}
		return out[i].Price.LessThan(out[j].Price)
	})
	return out
}

// indexOf must be called with the lock held.
func (c *Catalog) indexOf(id int64) int {
	for i, p := range c.products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func defaultCatalog() []domain.Product {
	kz := decimal.NewFromInt
	return []domain.Product{
		{Name: "Ventiladores CPU", Description: "Ventiladores de alta performance para refrigeração de CPU", Price: kz(74000), Category: "eletronicos", Image: "images/product-5.png", Stars: 4},
		{Name: "Essenciais Game", Description: "Kit essencial para gamers profissionais", Price: kz(299000), Category: "eletronicos", Image: "images/product-4.png", Stars: 5},
		{Name: "Playstation", Description: "Console Playstation última geração", Price: kz(456000), Category: "eletronicos", Image: "images/product-14.png", Stars: 4},
		{Name: "iPhone 17 Pro Max", Description: "Smartphone Apple iPhone 17 Pro Max", Price: kz(2400000), Category: "eletronicos", Image: "images/product-8.png", Stars: 4},
		{Name: "Cadeira Ergonômica Gamer", Description: "Cadeira gamer com suporte ergonômico premium", Price: kz(185000), Category: "moda", Image: "images/product-7.png", Stars: 5},
		{Name: "Teclado Mecânico RGB", Description: "Teclado mecânico com iluminação RGB customizável", Price: kz(95000), Category: "eletronicos", Image: "images/product-1.png", Stars: 4},
		{Name: "Mouse Gamer Pro", Description: "Mouse gamer com sensor de alta precisão", Price: kz(68000), Category: "eletronicos", Image: "images/product-2.png", Stars: 5},
		{Name: "Headset Premium", Description: "Fones de ouvido com cancelamento de ruído", Price: kz(125000), Category: "eletronicos", Image: "images/product-3.png", Stars: 4},
	}
}
