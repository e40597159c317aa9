package store

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/dmitrymomot/foodorder/svc/review"
)

func reviewErr(err error) error {
	return translate(err, review.ErrReviewNotFound, review.ErrAlreadyReviewed)
}

func (s *Store) ListReviewsByFood(ctx context.Context, foodID string) ([]*review.Review, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	return findMany[review.Review](ctx, s.col(ColReviews), bson.D{{Key: "food_id", Value: foodID}}, opts)
}

func (s *Store) GetReview(ctx context.Context, id string) (*review.Review, error) {
	r, err := findOne[review.Review](ctx, s.col(ColReviews), byID(id))
	return r, reviewErr(err)
}

func (s *Store) CreateReview(ctx context.Context, r *review.Review) error {
	if r.ID == "" {
		r.ID = newID()
	}
	now := s.timestamp()
	r.CreatedAt, r.UpdatedAt = now, now
	return reviewErr(insertOne(ctx, s.col(ColReviews), r))
}

// SaveReview writes the editable fields of r.
func (s *Store) SaveReview(ctx context.Context, r *review.Review) error {
	r.UpdatedAt = s.timestamp()
	return reviewErr(updateFields(ctx, s.col(ColReviews), r.ID, bson.D{
		{Key: "rating", Value: r.Rating},
		{Key: "comment", Value: r.Comment},
		{Key: "title", Value: r.Title},
		{Key: "updated_at", Value: r.UpdatedAt},
	}))
}

func (s *Store) DeleteReview(ctx context.Context, id string) (*review.Review, error) {
	r, err := findOneAndDelete[review.Review](ctx, s.col(ColReviews), byID(id))
	return r, reviewErr(err)
}

// RatingStats counts and averages the ratings of a food server-side.
func (s *Store) RatingStats(ctx context.Context, foodID string) (review.Stats, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "food_id", Value: foodID}}}},
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: nil},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
			{Key: "average", Value: bson.D{{Key: "$avg", Value: "$rating"}}},
		}}},
	}

	cursor, err := s.col(ColReviews).Aggregate(ctx, pipeline)
	if err != nil {
		return review.Stats{}, wrapError(err)
	}

	var rows []struct {
		Count   int     `bson:"count"`
		Average float64 `bson:"average"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return review.Stats{}, err
	}
	if len(rows) == 0 {
		return review.Stats{}, nil
	}
	return review.Stats{Count: rows[0].Count, Average: rows[0].Average}, nil
}

var _ review.Storage = (*Store)(nil)
