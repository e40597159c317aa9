package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

const maxCategoryNameLen = 50

// ListCategories returns all categories by name.
func (s *Service) ListCategories(ctx context.Context) ([]*Category, error) {
	categories, err := s.storage.ListCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory adds a category. Names are unique.
func (s *Service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	name = sanitizer.SingleLine(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category := &Category{Name: name}
	if err := s.storage.CreateCategory(ctx, category); err != nil {
		if errors.Is(err, ErrCategoryExists) {
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

// UpdateCategory renames a category.
func (s *Service) UpdateCategory(ctx context.Context, id, name string) (*Category, error) {
	if !validID(id) {
		return nil, ErrCategoryNotFound
	}
	name = sanitizer.SingleLine(name)
	if err := validateCategoryName(name); err != nil {
		return nil, err
	}

	category, err := s.storage.RenameCategory(ctx, id, name)
	if err != nil {
		switch {
		case errors.Is(err, ErrCategoryNotFound):
			return nil, ErrCategoryNotFound
		case errors.Is(err, ErrCategoryExists):
			return nil, ErrCategoryExists
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	return category, nil
}

// DeleteCategory removes a category. Foods keep their category id.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	if !validID(id) {
		return ErrCategoryNotFound
	}
	if err := s.storage.DeleteCategory(ctx, id); err != nil {
		return notFoundOr(err, ErrCategoryNotFound, "failed to delete category")
	}
	return nil
}

func validateCategoryName(name string) error {
	return validator.Apply(
		validator.Required("name", name),
		validator.MaxLen("name", name, maxCategoryNameLen),
	)
}
