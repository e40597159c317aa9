package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/svc/order"
)

func (s *Store) CreateOrder(ctx context.Context, o *order.Order) error {
	if o.ID == "" {
		o.ID = newID()
	}
	now := s.timestamp()
	o.CreatedAt, o.UpdatedAt = now, now
	return insertOne(ctx, s.col(ColOrders), o)
}

func (s *Store) ListOrdersByUser(ctx context.Context, userID string) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[order.Order](ctx, s.col(ColOrders), bson.D{{Key: "user_id", Value: userID}}, opts)
}

func (s *Store) ListOrders(ctx context.Context) ([]*order.Order, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[order.Order](ctx, s.col(ColOrders), bson.D{}, opts)
}

func (s *Store) UpdateOrder(ctx context.Context, id string, upd order.Update) (*order.Order, error) {
	set := bson.D{{Key: "updated_at", Value: s.timestamp()}}
	if upd.Status != nil {
		set = append(set, bson.E{Key: "status", Value: *upd.Status})
	}
	if upd.PaymentStatus != nil {
		set = append(set, bson.E{Key: "payment_status", Value: *upd.PaymentStatus})
	}

	o, err := findOneAndUpdate[order.Order](ctx, s.col(ColOrders), byID(id), bson.D{{Key: "$set", Value: set}})
	return o, translate(err, order.ErrOrderNotFound, nil)
}

var _ order.Storage = (*Store)(nil)
