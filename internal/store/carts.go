package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/svc/cart"
)

func (s *Store) GetCart(ctx context.Context, userID string) (*cart.Cart, error) {
	c, err := findOne[cart.Cart](ctx, s.col(ColCarts), bson.D{{Key: "user_id", Value: userID}})
	return c, translate(err, cart.ErrCartNotFound, nil)
}

// SaveCart upserts by user id. The document id and creation time are only
// written on insert, so concurrent first saves converge on one cart.
func (s *Store) SaveCart(ctx context.Context, c *cart.Cart) error {
	items := make([]cart.Item, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cart.Item{FoodID: it.FoodID, Quantity: it.Quantity})
	}

	now := s.timestamp()
	update := bson.D{
		{Key: "$set", Value: bson.D{
			{Key: "items", Value: items},
			{Key: "updated_at", Value: now},
		}},
		{Key: "$setOnInsert", Value: bson.D{
			{Key: "_id", Value: newID()},
			{Key: "created_at", Value: now},
		}},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved cart.Cart
	err := s.col(ColCarts).FindOneAndUpdate(ctx, bson.D{{Key: "user_id", Value: c.UserID}}, update, opts).Decode(&saved)
	if err != nil {
		return wrapError(err)
	}
	c.ID, c.CreatedAt, c.UpdatedAt = saved.ID, saved.CreatedAt, saved.UpdatedAt
	return nil
}

var _ cart.Storage = (*Store)(nil)
