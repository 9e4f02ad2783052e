package service

import (
	"context"
	"errors"

	"ombela/internal/domain"
	"ombela/internal/repository"
)

// OrderService implements the checkout and admin flows over the cart and
// order stores.
type OrderService struct {
	cart   *repository.Cart
	orders *repository.Orders
}

func NewOrderService(cart *repository.Cart, orders *repository.Orders) *OrderService {
	return &OrderService{cart: cart, orders: orders}
}

var ErrEmptyCart = errors.New("cart is empty")

// PlaceOrder snapshots the cart into a pending order and clears the cart,
// the same flow the storefront's checkout runs.
func (s *OrderService) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	if s.cart.TotalItemCount() == 0 {
		return nil, ErrEmptyCart
	}
	order, err := s.orders.CreateFromCart(ctx, s.cart)
	if err != nil {
		return nil, err
	}
	if err := s.cart.Clear(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Approve(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.orders.Approve(ctx, id)
}

func (s *OrderService) Reject(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	return s.orders.Reject(ctx, id)
}

func (s *OrderService) Get(id int64) (*domain.Order, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.orders.ByID(id)
}

func (s *OrderService) List() []domain.Order { return s.orders.All() }

func (s *OrderService) ListByStatus(status domain.OrderStatus) []domain.Order {
	return s.orders.ByStatus(status)
}

func (s *OrderService) Statistics() repository.Statistics {
	return s.orders.GetStatistics()
}
