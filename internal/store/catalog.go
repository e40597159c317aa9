package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/svc/catalog"
	"github.com/dmitrymomot/foodorder/svc/review"
)

func foodErr(err error) error {
	return translate(err, catalog.ErrFoodNotFound, catalog.ErrFoodExists)
}

func categoryErr(err error) error {
	return translate(err, catalog.ErrCategoryNotFound, catalog.ErrCategoryExists)
}

// ListFoods returns foods newest first.
func (s *Store) ListFoods(ctx context.Context, offset, limit int) ([]*catalog.Food, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
	return findMany[catalog.Food](ctx, s.col(ColFoods), bson.D{}, opts)
}

func (s *Store) GetFood(ctx context.Context, id string) (*catalog.Food, error) {
	food, err := findOne[catalog.Food](ctx, s.col(ColFoods), byID(id))
	return food, foodErr(err)
}

func (s *Store) GetFoodByName(ctx context.Context, name string) (*catalog.Food, error) {
	food, err := findOne[catalog.Food](ctx, s.col(ColFoods), bson.D{{Key: "name", Value: name}})
	return food, foodErr(err)
}

func (s *Store) CreateFood(ctx context.Context, food *catalog.Food) error {
	if food.ID == "" {
		food.ID = newID()
	}
	now := s.timestamp()
	food.CreatedAt, food.UpdatedAt = now, now
	return foodErr(insertOne(ctx, s.col(ColFoods), food))
}

func (s *Store) UpdateFood(ctx context.Context, id string, upd catalog.FoodUpdate) (*catalog.Food, error) {
	if upd.IsEmpty() {
		return s.GetFood(ctx, id)
	}

	set := bson.D{{Key: "updated_at", Value: s.timestamp()}}
	if upd.Name != nil {
		set = append(set, bson.E{Key: "name", Value: *upd.Name})
	}
	if upd.Description != nil {
		set = append(set, bson.E{Key: "description", Value: *upd.Description})
	}
	if upd.Price != nil {
		set = append(set, bson.E{Key: "price", Value: *upd.Price})
	}
	if upd.CategoryID != nil {
		set = append(set, bson.E{Key: "category_id", Value: *upd.CategoryID})
	}
	if upd.Available != nil {
		set = append(set, bson.E{Key: "available", Value: *upd.Available})
	}
	if upd.ImageURL != nil {
		set = append(set, bson.E{Key: "image_url", Value: *upd.ImageURL})
	}
	if upd.ImageKey != nil {
		set = append(set, bson.E{Key: "image_key", Value: *upd.ImageKey})
	}

	food, err := findOneAndUpdate[catalog.Food](ctx, s.col(ColFoods), byID(id), bson.D{{Key: "$set", Value: set}})
	return food, foodErr(err)
}

func (s *Store) DeleteFood(ctx context.Context, id string) (*catalog.Food, error) {
	food, err := findOneAndDelete[catalog.Food](ctx, s.col(ColFoods), byID(id))
	return food, foodErr(err)
}

// SetFoodRating stores the review aggregate on a food.
func (s *Store) SetFoodRating(ctx context.Context, foodID string, stats review.Stats) error {
	err := updateFields(ctx, s.col(ColFoods), foodID, bson.D{
		{Key: "num_reviews", Value: stats.Count},
		{Key: "average_rating", Value: stats.Average},
		{Key: "updated_at", Value: s.timestamp()},
	})
	return translate(err, review.ErrFoodNotFound, nil)
}

func (s *Store) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	return findMany[catalog.Category](ctx, s.col(ColCategories), bson.D{}, opts)
}

func (s *Store) GetCategory(ctx context.Context, id string) (*catalog.Category, error) {
	category, err := findOne[catalog.Category](ctx, s.col(ColCategories), byID(id))
	return category, categoryErr(err)
}

func (s *Store) CreateCategory(ctx context.Context, category *catalog.Category) error {
	if category.ID == "" {
		category.ID = newID()
	}
	now := s.timestamp()
	category.CreatedAt, category.UpdatedAt = now, now
	return categoryErr(insertOne(ctx, s.col(ColCategories), category))
}

func (s *Store) RenameCategory(ctx context.Context, id, name string) (*catalog.Category, error) {
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "name", Value: name},
		{Key: "updated_at", Value: s.timestamp()},
	}}}
	category, err := findOneAndUpdate[catalog.Category](ctx, s.col(ColCategories), byID(id), update)
	return category, categoryErr(err)
}

func (s *Store) DeleteCategory(ctx context.Context, id string) error {
	return categoryErr(deleteByID(ctx, s.col(ColCategories), id))
}

var _ catalog.Storage = (*Store)(nil)
