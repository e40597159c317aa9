// Package cart keeps one shopping cart per user.
package cart

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Service implements cart operations.
type Service struct {
	storage Storage
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

// NewService creates the cart service.
func NewService(storage Storage, foods FoodLookup, opts ...Option) *Service {
	s := &Service{storage: storage, foods: foods, logger: logger.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add puts qty of a food into the user's cart, adding to an existing line
// for the same food. The cart is created on first use.
func (s *Service) Add(ctx context.Context, userID, foodID string, qty int) (*Cart, error) {
	if err := validator.Apply(
		validator.ObjectID("foodId", foodID),
		validator.Positive("quantity", qty),
	); err != nil {
		return nil, err
	}
	if err := s.checkFood(ctx, foodID); err != nil {
		return nil, err
	}

	c, err := s.storage.GetCart(ctx, userID)
	switch {
	case errors.Is(err, ErrCartNotFound):
		c = &Cart{UserID: userID}
	case err != nil:
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	if i := c.indexOf(foodID); i >= 0 {
		c.Items[i].Quantity += qty
	} else {
		c.Items = append(c.Items, Item{FoodID: foodID, Quantity: qty})
	}

	if err := s.storage.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}

// Get returns the user's cart with food details. A user without a cart
// gets an empty one. Lines whose food was removed from the menu are
// returned without details.
func (s *Service) Get(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.storage.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return &Cart{UserID: userID, Items: []Item{}}, nil
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	if c.Items == nil {
		c.Items = []Item{}
	}

	for i := range c.Items {
		food, err := s.foods.GetFood(ctx, c.Items[i].FoodID)
		if err != nil {
			if !errors.Is(err, catalog.ErrFoodNotFound) {
				return nil, fmt.Errorf("failed to get food: %w", err)
			}
			s.logger.DebugContext(ctx, "cart references a missing food",
				logger.UserID(userID), slog.String("food_id", c.Items[i].FoodID), logger.Component("cart"))
			continue
		}
		c.Items[i].Food = food
	}
	return c, nil
}

// Update sets the quantity of a line. A quantity of zero or less removes
// the line.
func (s *Service) Update(ctx context.Context, userID, foodID string, qty int) (*Cart, error) {
	if err := validator.Apply(validator.Required("foodId", foodID)); err != nil {
		return nil, err
	}

	c, err := s.existing(ctx, userID)
	if err != nil {
		return nil, err
	}
	i := c.indexOf(foodID)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	if qty <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	} else {
		c.Items[i].Quantity = qty
	}

	if err := s.storage.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}

// Remove drops a line from the cart. Removing a food that is not in the
// cart is not an error.
func (s *Service) Remove(ctx context.Context, userID, foodID string) (*Cart, error) {
	if err := validator.Apply(validator.Required("foodId", foodID)); err != nil {
		return nil, err
	}

	c, err := s.existing(ctx, userID)
	if err != nil {
		return nil, err
	}
	if i := c.indexOf(foodID); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}

	if err := s.storage.SaveCart(ctx, c); err != nil {
		return nil, fmt.Errorf("failed to save cart: %w", err)
	}
	return c, nil
}

// Clear empties the user's cart. A missing cart is already empty.
func (s *Service) Clear(ctx context.Context, userID string) error {
	c, err := s.storage.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil
		}
		return fmt.Errorf("failed to get cart: %w", err)
	}
	c.Items = []Item{}
	if err := s.storage.SaveCart(ctx, c); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

func (s *Service) existing(ctx context.Context, userID string) (*Cart, error) {
	c, err := s.storage.GetCart(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCartNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return c, nil
}

func (s *Service) checkFood(ctx context.Context, foodID string) error {
	if _, err := s.foods.GetFood(ctx, foodID); err != nil {
		if errors.Is(err, catalog.ErrFoodNotFound) {
			return ErrFoodNotFound
		}
		return fmt.Errorf("failed to get food: %w", err)
	}
	return nil
}
