package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"ombela/internal/domain"
	"ombela/internal/localstore"
	"ombela/internal/repository"
)

func setup(t *testing.T) (*CatalogService, *OrderService, *repository.Cart) {
	t.Helper()
	ctx := context.Background()
	kv := localstore.NewMemory()
	catalog, err := repository.NewCatalog(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new catalog: %v", err)
	}
	cart, err := repository.NewCart(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new cart: %v", err)
	}
	orders, err := repository.NewOrders(ctx, kv, nil)
	if err != nil {
		t.Fatalf("new orders: %v", err)
	}
	return NewCatalogService(catalog), NewOrderService(cart, orders), cart
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	_, os, _ := setup(t)
	if _, err := os.PlaceOrder(context.Background()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("expected ErrEmptyCart, got %v", err)
	}
}

func TestPlaceOrder_ClearsCart(t *testing.T) {
	ctx := context.Background()
	cs, os, cart := setup(t)

	p, err := cs.ByID(1)
	if err != nil {
		t.Fatalf("seeded product missing: %v", err)
	}
	if err := cart.AddProduct(ctx, *p, 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	order, err := os.PlaceOrder(ctx)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if order.Status != domain.OrderStatusPending {
		t.Fatalf("expected pending order, got %s", order.Status)
	}
	wantSubtotal := p.Price.Mul(decimal.NewFromInt(2))
	if !order.Subtotal.Equal(wantSubtotal) {
		t.Fatalf("subtotal: want %s, got %s", wantSubtotal, order.Subtotal)
	}
	if cart.TotalItemCount() != 0 {
		t.Fatalf("cart not cleared after checkout")
	}
}

func TestApproveReject_Validation(t *testing.T) {
	ctx := context.Background()
	cs, os, cart := setup(t)

	if err := os.Approve(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for id 0, got %v", err)
	}
	if err := os.Approve(ctx, 42); !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	p, _ := cs.ByID(1)
	_ = cart.AddProduct(ctx, *p, 1)
	order, err := os.PlaceOrder(ctx)
	if err != nil {
		t.Fatalf("place order: %v", err)
	}
	if err := os.Reject(ctx, order.ID); err != nil {
		t.Fatalf("reject: %v", err)
	}
	if err := os.Approve(ctx, order.ID); !errors.Is(err, repository.ErrNotPending) {
		t.Fatalf("expected ErrNotPending on rejected order, got %v", err)
	}
}

func TestStatistics_CountsApprovedRevenue(t *testing.T) {
	ctx := context.Background()
	cs, os, cart := setup(t)

	p, _ := cs.ByID(1)
	_ = cart.AddProduct(ctx, *p, 1)
	o1, _ := os.PlaceOrder(ctx)
	_ = cart.AddProduct(ctx, *p, 1)
	_, _ = os.PlaceOrder(ctx)

	_ = os.Approve(ctx, o1.ID)

	stats := os.Statistics()
	if stats.Total != 2 || stats.Approved != 1 || stats.Pending != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	wantRevenue := o1.Total
	if !stats.Revenue.Equal(wantRevenue) {
		t.Fatalf("revenue: want %s, got %s", wantRevenue, stats.Revenue)
	}
}
