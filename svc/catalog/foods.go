package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/dmitrymomot/foodorder/pkg/file"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

const (
	minFoodNameLen    = 3
	minDescriptionLen = 10
)

// FoodInput is the payload of CreateFood.
type FoodInput struct {
	Name        string
	Description string
	Price       float64
	CategoryID  string
	// Available defaults to true.
	Available *bool
}

// FoodPatch is the payload of UpdateFood. Nil fields are kept.
type FoodPatch struct {
	Name        *string
	Description *string
	Price       *float64
	CategoryID  *string
	Available   *bool
}

func (p FoodPatch) isEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Price == nil && p.CategoryID == nil && p.Available == nil
}

// ListFoods returns a page of foods, newest first. Pages start at 1;
// smaller values are treated as 1.
func (s *Service) ListFoods(ctx context.Context, page int) ([]*Food, error) {
	if page < 1 {
		page = 1
	}
	foods, err := s.storage.ListFoods(ctx, (page-1)*s.pageSize, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to list foods: %w", err)
	}
	return foods, nil
}

// GetFood returns the food with id.
func (s *Service) GetFood(ctx context.Context, id string) (*Food, error) {
	if !validID(id) {
		return nil, ErrFoodNotFound
	}
	food, err := s.storage.GetFood(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, ErrFoodNotFound, "failed to get food")
	}
	return food, nil
}

// CreateFood adds a food created by creatorID with the uploaded image.
func (s *Service) CreateFood(ctx context.Context, creatorID string, in FoodInput, image *multipart.FileHeader) (*Food, error) {
	in.Name = sanitizer.SingleLine(in.Name)
	in.Description = sanitizer.MultiLine(in.Description)
	in.CategoryID = strings.TrimSpace(in.CategoryID)

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.MinLen("name", in.Name, minFoodNameLen),
		validator.Required("description", in.Description),
		validator.MinLen("description", in.Description, minDescriptionLen),
		validator.Positive("price", in.Price),
		validator.Required("category", in.CategoryID),
		validator.ObjectID("category", in.CategoryID),
	); err != nil {
		return nil, err
	}

	if _, err := s.storage.GetFoodByName(ctx, in.Name); err == nil {
		return nil, ErrFoodExists
	} else if !errors.Is(err, ErrFoodNotFound) {
		return nil, fmt.Errorf("failed to check food name: %w", err)
	}

	if image == nil {
		return nil, ErrImageRequired
	}
	if err := file.ValidateImage(image, s.maxImageSize); err != nil {
		return nil, err
	}
	if err := s.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}

	stored, err := s.saveImage(ctx, image)
	if err != nil {
		return nil, err
	}

	food := &Food{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		CategoryID:  in.CategoryID,
		ImageURL:    s.files.URL(stored.Key),
		ImageKey:    stored.Key,
		UserID:      creatorID,
		Available:   in.Available == nil || *in.Available,
	}
	if err := s.storage.CreateFood(ctx, food); err != nil {
		s.deleteImage(ctx, stored.Key)
		if errors.Is(err, ErrFoodExists) {
			return nil, ErrFoodExists
		}
		return nil, fmt.Errorf("failed to create food: %w", err)
	}

	s.logger.InfoContext(ctx, "food created",
		slog.String("food_id", food.ID), logger.UserID(creatorID), logger.Component("catalog"))
	return food, nil
}

// UpdateFood changes fields of a food and optionally replaces its image.
// Only the user who created the food may update it. A replaced image is
// removed from storage. An empty category keeps the current one.
func (s *Service) UpdateFood(ctx context.Context, actorID, id string, patch FoodPatch, image *multipart.FileHeader) (*Food, error) {
	if patch.CategoryID != nil && strings.TrimSpace(*patch.CategoryID) == "" {
		patch.CategoryID = nil
	}
	if patch.isEmpty() && image == nil {
		return nil, ErrNothingToUpdate
	}

	var upd FoodUpdate
	if patch.Name != nil {
		name := sanitizer.SingleLine(*patch.Name)
		upd.Name = &name
	}
	if patch.Description != nil {
		desc := sanitizer.MultiLine(*patch.Description)
		upd.Description = &desc
	}
	if patch.CategoryID != nil {
		categoryID := strings.TrimSpace(*patch.CategoryID)
		upd.CategoryID = &categoryID
	}
	upd.Price = patch.Price
	upd.Available = patch.Available

	if err := validator.Apply(
		validator.When(upd.Name != nil, validator.MinLen("name", deref(upd.Name), minFoodNameLen)),
		validator.When(upd.Description != nil, validator.MinLen("description", deref(upd.Description), minDescriptionLen)),
		validator.When(upd.Price != nil, validator.Positive("price", deref(upd.Price))),
		validator.When(upd.CategoryID != nil, validator.ObjectID("category", deref(upd.CategoryID))),
	); err != nil {
		return nil, err
	}
	if image != nil {
		if err := file.ValidateImage(image, s.maxImageSize); err != nil {
			return nil, err
		}
	}

	food, err := s.GetFood(ctx, id)
	if err != nil {
		return nil, err
	}
	if food.UserID != actorID {
		return nil, ErrNotFoodOwner
	}

	if upd.Name != nil && *upd.Name != food.Name {
		if other, err := s.storage.GetFoodByName(ctx, *upd.Name); err == nil && other.ID != food.ID {
			return nil, ErrFoodExists
		} else if err != nil && !errors.Is(err, ErrFoodNotFound) {
			return nil, fmt.Errorf("failed to check food name: %w", err)
		}
	}
	if upd.CategoryID != nil && *upd.CategoryID != food.CategoryID {
		if err := s.ensureCategory(ctx, *upd.CategoryID); err != nil {
			return nil, err
		}
	}

	var newKey string
	if image != nil {
		stored, err := s.saveImage(ctx, image)
		if err != nil {
			return nil, err
		}
		newKey = stored.Key
		url := s.files.URL(stored.Key)
		upd.ImageURL = &url
		upd.ImageKey = &newKey
	}

	updated, err := s.storage.UpdateFood(ctx, food.ID, upd)
	if err != nil {
		if newKey != "" {
			s.deleteImage(ctx, newKey)
		}
		switch {
		case errors.Is(err, ErrFoodExists):
			return nil, ErrFoodExists
		case errors.Is(err, ErrFoodNotFound):
			return nil, ErrFoodNotFound
		}
		return nil, fmt.Errorf("failed to update food: %w", err)
	}

	if newKey != "" && food.ImageKey != "" && food.ImageKey != newKey {
		s.deleteImage(ctx, food.ImageKey)
	}
	return updated, nil
}

// DeleteFood removes a food and its image.
func (s *Service) DeleteFood(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrFoodNotFound
	}
	food, err := s.storage.DeleteFood(ctx, id)
	if err != nil {
		return notFoundOr(err, ErrFoodNotFound, "failed to delete food")
	}
	if food.ImageKey != "" {
		s.deleteImage(ctx, food.ImageKey)
	}
	return nil
}

func (s *Service) ensureCategory(ctx context.Context, id string) error {
	if _, err := s.storage.GetCategory(ctx, id); err != nil {
		return notFoundOr(err, ErrCategoryNotFound, "failed to get category")
	}
	return nil
}

func (s *Service) saveImage(ctx context.Context, image *multipart.FileHeader) (*file.File, error) {
	key := fmt.Sprintf("%s/food-%d%s", imagePrefix, s.now().UnixNano(), strings.ToLower(file.GetExtension(image)))
	stored, err := s.files.Save(ctx, image, key)
	if err != nil {
		return nil, errors.Join(ErrFailedToStoreImage, err)
	}
	return stored, nil
}

// deleteImage removes a stored image. Failures leave an orphaned file and
// are only logged.
func (s *Service) deleteImage(ctx context.Context, key string) {
	if err := s.files.Delete(ctx, key); err != nil && !errors.Is(err, file.ErrFileNotFound) {
		s.logger.WarnContext(ctx, "failed to delete food image",
			slog.String("key", key), logger.Error(err), logger.Component("catalog"))
	}
}

func notFoundOr(err, notFound error, msg string) error {
	if errors.Is(err, notFound) {
		return notFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func validID(id string) bool {
	return validator.Apply(validator.ObjectID("id", id)) == nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
