// Package order turns carts into orders and lets administrators move them
// through the delivery and payment states.
package order

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Service implements order operations.
type Service struct {
	storage Storage
	carts   Carts
	foods   FoodLookup
	logger  *slog.Logger
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewService creates the order service.
func NewService(storage Storage, carts Carts, foods FoodLookup, opts ...Option) *Service {
	s := &Service{storage: storage, carts: carts, foods: foods, logger: logger.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Place creates an order from the user's cart at current menu prices and
// empties the cart.
func (s *Service) Place(ctx context.Context, userID string) (*Order, error) {
	c, err := s.carts.Get(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if len(c.Items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		UserID:        userID,
		Items:         make([]Item, 0, len(c.Items)),
		Status:        StatusPending,
		PaymentStatus: PaymentUnpaid,
	}
	for _, it := range c.Items {
		food, err := s.foods.GetFood(ctx, it.FoodID)
		if err != nil {
			if errors.Is(err, catalog.ErrFoodNotFound) {
				return nil, ErrFoodNotFound
			}
			return nil, fmt.Errorf("failed to get food: %w", err)
		}
		o.Items = append(o.Items, Item{FoodID: it.FoodID, Quantity: it.Quantity, Price: food.Price})
		o.TotalPrice += food.Price * float64(it.Quantity)
	}
	o.TotalPrice = math.Round(o.TotalPrice*100) / 100

	if err := s.storage.CreateOrder(ctx, o); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	// The order stands even when the cart cannot be emptied.
	if err := s.carts.Clear(ctx, userID); err != nil {
		s.logger.WarnContext(ctx, "failed to clear cart after order",
			logger.UserID(userID), slog.String("order_id", o.ID), logger.Error(err))
	}

	s.logger.InfoContext(ctx, "order placed",
		logger.UserID(userID), slog.String("order_id", o.ID), slog.Float64("total", o.TotalPrice))
	return o, nil
}

// ListMine returns the user's orders, newest first.
func (s *Service) ListMine(ctx context.Context, userID string) ([]*Order, error) {
	orders, err := s.storage.ListOrdersByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// ListAll returns every order, newest first.
func (s *Service) ListAll(ctx context.Context) ([]*Order, error) {
	orders, err := s.storage.ListOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, nil
}

// Update changes the status and/or payment status of an order.
func (s *Service) Update(ctx context.Context, id string, upd Update) (*Order, error) {
	if upd.Status == nil && upd.PaymentStatus == nil {
		return nil, ErrNothingToUpdate
	}
	if err := validator.Apply(
		validator.When(upd.Status != nil, validator.InList("status", deref(upd.Status), statuses)),
		validator.When(upd.PaymentStatus != nil, validator.InList("paymentStatus", deref(upd.PaymentStatus), paymentStatuses)),
	); err != nil {
		return nil, err
	}
	if validator.Apply(validator.ObjectID("id", id)) != nil {
		return nil, ErrOrderNotFound
	}

	o, err := s.storage.UpdateOrder(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrOrderNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	return o, nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
