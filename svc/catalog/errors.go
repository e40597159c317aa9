package catalog

import "errors"

var (
	ErrFoodNotFound       = errors.New("food not found")
	ErrFoodExists         = errors.New("food item already exists")
	ErrCategoryNotFound   = errors.New("category not found")
	ErrCategoryExists     = errors.New("category already exists")
	ErrNotFoodOwner       = errors.New("you are not authorized to update this food item")
	ErrImageRequired      = errors.New("image file is required")
	ErrNothingToUpdate    = errors.New("at least one field must be provided for update")
	ErrFailedToStoreImage = errors.New("failed to store image")
)
