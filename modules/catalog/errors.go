package catalog

import (
	"errors"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/pkg/file"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

func mapError(err error) error {
	switch {
	case errors.Is(err, catalog.ErrFoodNotFound):
		return handler.ErrNotFound.WithMessage("No food found with that ID")
	case errors.Is(err, catalog.ErrCategoryNotFound):
		return handler.ErrNotFound.WithMessage("No category found with that ID")
	case errors.Is(err, catalog.ErrFoodExists):
		return handler.ErrConflict.WithMessage("Food item already exists")
	case errors.Is(err, catalog.ErrCategoryExists):
		return handler.ErrConflict.WithMessage("Category already exists")
	case errors.Is(err, catalog.ErrNotFoodOwner):
		return handler.ErrForbidden.WithMessage("You are not authorized to update this food item")
	case errors.Is(err, catalog.ErrImageRequired):
		return handler.ErrBadRequest.WithMessage("Image file is required")
	case errors.Is(err, catalog.ErrNothingToUpdate):
		return handler.ErrBadRequest.WithMessage("At least one field must be provided for update")
	case errors.Is(err, file.ErrNotAnImage):
		return handler.ErrBadRequest.WithMessage("Only image files are allowed")
	case errors.Is(err, file.ErrFileTooLarge):
		return handler.ErrRequestEntityTooLarge.WithMessage("Image is too large")
	}
	return err
}
