// Package review stores user reviews of foods and keeps each food's rating
// aggregate in step with them.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

const (
	minRating     = 1
	maxRating     = 5
	maxCommentLen = 2000
	maxTitleLen   = 100
)

// Input carries the reviewer-editable fields. On update a zero Rating and
// empty Comment or Title keep the stored values.
type Input struct {
	Rating  int
	Comment string
	Title   string
}

// Service implements review operations.
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

// NewService creates the review service.
func NewService(storage Storage, foods FoodLookup, opts ...Option) *Service {
	s := &Service{storage: storage, foods: foods, logger: logger.Noop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListByFood returns the reviews of a food, newest first.
func (s *Service) ListByFood(ctx context.Context, foodID string) ([]*Review, error) {
	if !validID(foodID) {
		return nil, ErrFoodNotFound
	}
	reviews, err := s.storage.ListReviewsByFood(ctx, foodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// Create adds the user's review of a food. Each user reviews a food once.
func (s *Service) Create(ctx context.Context, userID, foodID string, in Input) (*Review, error) {
	in = clean(in)
	if err := validator.Apply(
		validator.Between("rating", in.Rating, minRating, maxRating),
		validator.Required("comment", in.Comment),
		validator.MaxLen("comment", in.Comment, maxCommentLen),
		validator.MaxLen("title", in.Title, maxTitleLen),
	); err != nil {
		return nil, err
	}
	if !validID(foodID) {
		return nil, ErrFoodNotFound
	}
	if _, err := s.foods.GetFood(ctx, foodID); err != nil {
		if errors.Is(err, catalog.ErrFoodNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to get food: %w", err)
	}

	r := &Review{
		FoodID:  foodID,
		UserID:  userID,
		Rating:  in.Rating,
		Comment: in.Comment,
		Title:   in.Title,
	}
	if err := s.storage.CreateReview(ctx, r); err != nil {
		if errors.Is(err, ErrAlreadyReviewed) {
			return nil, ErrAlreadyReviewed
		}
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	s.refreshRating(ctx, foodID)
	return r, nil
}

// Update edits a review. Only its author may do so.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (*Review, error) {
	in = clean(in)
	if err := validator.Apply(
		validator.When(in.Rating != 0, validator.Between("rating", in.Rating, minRating, maxRating)),
		validator.MaxLen("comment", in.Comment, maxCommentLen),
		validator.MaxLen("title", in.Title, maxTitleLen),
	); err != nil {
		return nil, err
	}

	r, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, ErrNotReviewAuthor
	}

	ratingChanged := in.Rating != 0 && in.Rating != r.Rating
	if in.Rating != 0 {
		r.Rating = in.Rating
	}
	if in.Comment != "" {
		r.Comment = in.Comment
	}
	if in.Title != "" {
		r.Title = in.Title
	}

	if err := s.storage.SaveReview(ctx, r); err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	if ratingChanged {
		s.refreshRating(ctx, r.FoodID)
	}
	return r, nil
}

// Delete removes a review and recomputes its food's rating.
func (s *Service) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrReviewNotFound
	}
	r, err := s.storage.DeleteReview(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return ErrReviewNotFound
		}
		return fmt.Errorf("failed to delete review: %w", err)
	}

	s.refreshRating(ctx, r.FoodID)
	return nil
}

func (s *Service) get(ctx context.Context, id string) (*Review, error) {
	if !validID(id) {
		return nil, ErrReviewNotFound
	}
	r, err := s.storage.GetReview(ctx, id)
	if err != nil {
		if errors.Is(err, ErrReviewNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return r, nil
}

// refreshRating recomputes the food's aggregate. The review change has
// already been stored, so failures are logged rather than returned.
func (s *Service) refreshRating(ctx context.Context, foodID string) {
	stats, err := s.storage.RatingStats(ctx, foodID)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to aggregate ratings",
			slog.String("food_id", foodID), logger.Component("review"), logger.Error(err))
		return
	}
	stats.Average = math.Round(stats.Average*10) / 10

	if err := s.storage.SetFoodRating(ctx, foodID, stats); err != nil {
		s.logger.ErrorContext(ctx, "failed to store food rating",
			slog.String("food_id", foodID), logger.Component("review"), logger.Error(err))
	}
}

func clean(in Input) Input {
	in.Comment = sanitizer.MultiLine(in.Comment)
	in.Title = sanitizer.SingleLine(in.Title)
	return in
}

func validID(id string) bool {
	return validator.Apply(validator.ObjectID("id", id)) == nil
}
