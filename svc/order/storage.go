package order

import (
	"context"

	"github.com/dmitrymomot/foodorder/svc/cart"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Storage persists orders. Lookups report ErrOrderNotFound.
type Storage interface {
	CreateOrder(ctx context.Context, order *Order) error
	ListOrdersByUser(ctx context.Context, userID string) ([]*Order, error)
	ListOrders(ctx context.Context) ([]*Order, error)
	UpdateOrder(ctx context.Context, id string, upd Update) (*Order, error)
}

// Carts is the part of the cart service an order is placed from.
type Carts interface {
	Get(ctx context.Context, userID string) (*cart.Cart, error)
	Clear(ctx context.Context, userID string) error
}

// FoodLookup resolves current prices.
type FoodLookup interface {
	GetFood(ctx context.Context, id string) (*catalog.Food, error)
}
