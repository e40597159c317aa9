package review

import (
	"context"

	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// Storage persists reviews. Lookups report ErrReviewNotFound; a second
// review by the same user for the same food reports ErrAlreadyReviewed.
type Storage interface {
	ListReviewsByFood(ctx context.Context, foodID string) ([]*Review, error)
	GetReview(ctx context.Context, id string) (*Review, error)
	CreateReview(ctx context.Context, review *Review) error
	SaveReview(ctx context.Context, review *Review) error
	DeleteReview(ctx context.Context, id string) (*Review, error)

	// RatingStats aggregates the reviews of a food.
	RatingStats(ctx context.Context, foodID string) (Stats, error)
	// SetFoodRating stores the aggregate on the food document.
	SetFoodRating(ctx context.Context, foodID string, stats Stats) error
}

// FoodLookup checks that a reviewed food exists.
type FoodLookup interface {
	GetFood(ctx context.Context, id string) (*catalog.Food, error)
}
