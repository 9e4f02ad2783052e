package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"ombela/internal/domain"
	"ombela/internal/localstore"
)

// Statistics summarizes the order book for the admin panel. Revenue counts
// approved orders only.
type Statistics struct {
	Total    int             `json:"total"`
	Pending  int             `json:"pendentes"`
	Approved int             `json:"aprovados"`
	Rejected int             `json:"rejeitados"`
	Revenue  decimal.Decimal `json:"valorTotal"`
}

// Orders is the order store. Orders are created from cart snapshots, change
// only via one-way status transitions and are never deleted.
type Orders struct {
	mu     sync.RWMutex
	kv     localstore.Store
	log    *slog.Logger
	orders []domain.Order
	nextID int64
}

// NewOrders loads persisted orders; malformed data is logged and the
// collection reset to empty.
func NewOrders(ctx context.Context, kv localstore.Store, log *slog.Logger) (*Orders, error) {
	o := &Orders{kv: kv, log: orDefault(log), nextID: 1}
	data, ok, err := kv.Get(ctx, keyOrders)
	if err != nil {
		return nil, err
	}
	if !ok {
		return o, nil
	}
	if err := json.Unmarshal(data, &o.orders); err != nil {
		o.log.Error("discarding malformed order data", "key", keyOrders, "err", err)
		o.orders = nil
		return o, nil
	}
	for _, ord := range o.orders {
		if ord.ID >= o.nextID {
			o.nextID = ord.ID + 1
		}
	}
	return o, nil
}

// CreateFromCart snapshots the cart's lines and current totals into a new
// pending order. The caller is responsible for not checking out an empty
// cart (TotalItemCount() > 0); the store does not enforce it.
func (o *Orders) CreateFromCart(ctx context.Context, cart *Cart) (*domain.Order, error) {
	order := domain.Order{
		Items:       cart.Items(),
		Subtotal:    cart.Subtotal(),
		DeliveryFee: cart.DeliveryFee(),
		Total:       cart.Total(),
		CreatedAt:   time.Now().UTC(),
		Status:      domain.OrderStatusPending,
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	order.ID = o.nextID
	o.nextID++
	o.orders = append(o.orders, order)
	if err := persist(ctx, o.kv, keyOrders, o.orders); err != nil {
		return nil, err
	}
	return cloneOrder(order), nil
}

// Approve moves a pending order to approved.
func (o *Orders) Approve(ctx context.Context, id int64) error {
	return o.transition(ctx, id, domain.OrderStatusApproved)
}

// Reject moves a pending order to rejected.
func (o *Orders) Reject(ctx context.Context, id int64) error {
	return o.transition(ctx, id, domain.OrderStatusRejected)
}

// transition enforces the one-way lifecycle: only pending orders move, and
// only once.
func (o *Orders) transition(ctx context.Context, id int64, to domain.OrderStatus) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	for i := range o.orders {
		if o.orders[i].ID != id {
			continue
		}
		if o.orders[i].Status != domain.OrderStatusPending {
			return ErrNotPending
		}
		o.orders[i].Status = to
		return persist(ctx, o.kv, keyOrders, o.orders)
	}
	return ErrNotFound
}

// All returns a copy of every order in creation order.
func (o *Orders) All() []domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]domain.Order, 0, len(o.orders))
	for _, ord := range o.orders {
		out = append(out, *cloneOrder(ord))
	}
	return out
}

func (o *Orders) ByID(id int64) (*domain.Order, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, ord := range o.orders {
		if ord.ID == id {
			return cloneOrder(ord), nil
		}
	}
	return nil, ErrNotFound
}

func (o *Orders) ByStatus(status domain.OrderStatus) []domain.Order {
	o.mu.RLock()
	defer o.mu.RUnlock()
	out := make([]domain.Order, 0)
	for _, ord := range o.orders {
		if ord.Status == status {
			out = append(out, *cloneOrder(ord))
		}
	}
	return out
}

// GetStatistics counts orders per status and sums the total of approved ones.
func (o *Orders) GetStatistics() Statistics {
	o.mu.RLock()
	defer o.mu.RUnlock()
	stats := Statistics{Total: len(o.orders), Revenue: decimal.Zero}
	for _, ord := range o.orders {
		switch ord.Status {
		case domain.OrderStatusPending:
			stats.Pending++
		case domain.OrderStatusApproved:
			stats.Approved++
			stats.Revenue = stats.Revenue.Add(ord.Total)
		case domain.OrderStatusRejected:
			stats.Rejected++
		}
	}
	return stats
}

// cloneOrder deep-copies the line items so callers cannot alias the stored
// snapshot.
func cloneOrder(ord domain.Order) *domain.Order {
	cp := ord
	cp.Items = make([]domain.CartItem, len(ord.Items))
	copy(cp.Items, ord.Items)
	return &cp
}
