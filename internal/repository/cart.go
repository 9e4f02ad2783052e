package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// deliveryFeeRate is the 5% surcharge applied to a non-empty cart.
var deliveryFeeRate = decimal.New(5, -2)

type cartState struct {
	Items []domain.CartItem `json:"itens"`
}

// Cart is the session's ordered line list. Lines keep insertion order and
// there is at most one line per product ID. Every mutation persists the
// whole list.
type Cart struct {
	mu    sync.RWMutex
	kv    localstore.Store
	log   *slog.Logger
	items []domain.CartItem
}

// NewCart loads the persisted cart. Data that fails to parse is logged, the
// corrupt entry is removed from storage and the cart starts empty; data of
// the wrong shape is overwritten with an empty cart.
func NewCart(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Cart, error) {
	c := &Cart{kv: kv, log: orDefault(log)}
	data, ok, err := kv.Get(ctx, keyCart)
	if err != nil {
		return nil, err
	}
	if !ok {
		return c, nil
	}
	var state cartState
	if err := json.Unmarshal(data, &state); err != nil {
		c.log.Error("discarding malformed cart data", "key", keyCart, "err", err)
		if err := kv.Delete(ctx, keyCart); err != nil {
			return nil, err
		}
		return c, nil
	}
	if state.Items == nil {
		c.log.Error("discarding cart data with unexpected shape", "key", keyCart)
		if err := c.persist(ctx); err != nil {
			return nil, err
		}
		return c, nil
	}
	c.items = state.Items
	return c, nil
}

// AddProduct merges the product into the cart: an existing line for the same
// product ID accumulates quantity, otherwise a new line is appended. A
// quantity below one counts as one.
func (c *Cart) AddProduct(ctx context.Context, p domain.Product, quantity int64) error {
	if quantity < 1 {
		quantity = 1
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == p.ID {
			c.items[i].Quantity += quantity
			return c.persist(ctx)
		}
	}
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: quantity})
	return c.persist(ctx)
}

// RemoveProduct drops the line for the product, if any.
func (c *Cart) RemoveProduct(ctx context.Context, productID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			break
		}
	}
	return c.persist(ctx)
}

// SetQuantity overwrites the line's quantity in place; zero or less removes
// the line.
func (c *Cart) SetQuantity(ctx context.Context, productID, quantity int64) error {
	if quantity <= 0 {
		return c.RemoveProduct(ctx, productID)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.items[i].Product.ID == productID {
			c.items[i].Quantity = quantity
			return c.persist(ctx)
		}
	}
	return nil
}

// Clear empties the cart.
func (c *Cart) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
	return c.persist(ctx)
}

// Items returns a copy of the lines in insertion order. Mutating the copy
// does not touch the cart; changes go through SetQuantity/RemoveProduct.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.CartItem, len(c.items))
	copy(out, c.items)
	return out
}

// TotalItemCount sums the quantities over all lines.
func (c *Cart) TotalItemCount() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var n int64
	for _, it := range c.items {
		n += it.Quantity
	}
	return n
}

// Subtotal is Σ(price × quantity), recomputed on every call.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.subtotalLocked()
}

func (c *Cart) subtotalLocked() decimal.Decimal {
	sum := decimal.Zero
	for _, it := range c.items {
		sum = sum.Add(it.Product.Price.Mul(decimal.NewFromInt(it.Quantity)))
	}
	return sum
}

// DeliveryFee is 5% of the subtotal, zero when the subtotal is zero.
func (c *Cart) DeliveryFee() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deliveryFee(c.subtotalLocked())
}

// Total is subtotal plus delivery fee.
func (c *Cart) Total() decimal.Decimal {
	c.mu.RLock()
	defer c.mu.RUnlock()
	sub := c.subtotalLocked()
	return sub.Add(deliveryFee(sub))
}

func deliveryFee(subtotal decimal.Decimal) decimal.Decimal {
	if !subtotal.IsPositive() {
		return decimal.Zero
	}
	return subtotal.Mul(deliveryFeeRate)
}

// persist must be called with the write lock held.
func (c *Cart) persist(ctx context.Context) error {
	items := c.items
	if items == nil {
		items = []domain.CartItem{}
	}
	return persist(ctx, c.kv, keyCart, cartState{Items: items})
}
