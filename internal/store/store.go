// Package store implements the service storage contracts on MongoDB.
//
// Documents use string ids (hex ObjectIDs) so the domain types stay free of
// driver types. Collection names and indexes are managed in one place,
// EnsureIndexes.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/pkg/logger"
)

// Collection names.
const (
	ColUsers      = "users"
	ColFoods      = "foods"
	ColCategories = "categories"
	ColCarts      = "carts"
	ColOrders     = "orders"
	ColReviews    = "reviews"
)

// Store implements auth.Storage, catalog.Storage, cart.Storage,
// order.Storage and review.Storage.
type Store struct {
	db     *mongo.Database
	logger *slog.Logger
	now    func() time.Time
}

// Option configures Store.
type Option func(*Store)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store on db.
func New(db *mongo.Database, opts ...Option) *Store {
	s := &Store{
		db:     db,
		logger: logger.Noop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) col(name string) *mongo.Collection {
	return s.db.Collection(name)
}

// timestamp is the current time truncated to what BSON dates can hold.
func (s *Store) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

// EnsureIndexes creates the indexes the services rely on, unique
// constraints included. Safe to call on every start.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	type idx struct {
		col    string
		keys   bson.D
		unique bool
	}

	indexes := []idx{
		// users
		{ColUsers, bson.D{{Key: "email", Value: 1}}, true},
		{ColUsers, bson.D{{Key: "google_id", Value: 1}}, false},

		// foods
		{ColFoods, bson.D{{Key: "name", Value: 1}}, true},
		{ColFoods, bson.D{{Key: "created_at", Value: -1}}, false},
		{ColFoods, bson.D{{Key: "category_id", Value: 1}}, false},

		// categories
		{ColCategories, bson.D{{Key: "name", Value: 1}}, true},

		// carts
		{ColCarts, bson.D{{Key: "user_id", Value: 1}}, true},

		// orders
		{ColOrders, bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}, false},
		{ColOrders, bson.D{{Key: "created_at", Value: -1}}, false},

		// reviews
		{ColReviews, bson.D{{Key: "food_id", Value: 1}, {Key: "user_id", Value: 1}}, true},
	}

	for _, i := range indexes {
		model := mongo.IndexModel{Keys: i.keys}
		if i.unique {
			model.Options = options.Index().SetUnique(true)
		}
		if _, err := s.col(i.col).Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", i.col, err)
		}
	}

	s.logger.DebugContext(ctx, "indexes ensured", logger.Component("store"), slog.Int("count", len(indexes)))
	return nil
}
