package cart

import (
	"context"

	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Storage persists carts keyed by user id.
type Storage interface {
	// GetCart reports ErrCartNotFound when the user has no cart.
	GetCart(ctx context.Context, userID string) (*Cart, error)
	// SaveCart upserts the cart by user id.
	SaveCart(ctx context.Context, cart *Cart) error
}

// FoodLookup resolves foods referenced by cart lines.
type FoodLookup interface {
	GetFood(ctx context.Context, id string) (*catalog.Food, error)
}
