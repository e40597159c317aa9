package catalog

import "context"

// Storage persists foods and categories. Lookups report ErrFoodNotFound or
// ErrCategoryNotFound; unique-name violations report ErrFoodExists or
// ErrCategoryExists.
type Storage interface {
	ListFoods(ctx context.Context, offset, limit int) ([]*Food, error)
	GetFood(ctx context.Context, id string) (*Food, error)
	GetFoodByName(ctx context.Context, name string) (*Food, error)
	CreateFood(ctx context.Context, food *Food) error
	UpdateFood(ctx context.Context, id string, upd FoodUpdate) (*Food, error)
	// DeleteFood removes the food and returns it as it was.
	DeleteFood(ctx context.Context, id string) (*Food, error)

	ListCategories(ctx context.Context) ([]*Category, error)
	GetCategory(ctx context.Context, id string) (*Category, error)
	CreateCategory(ctx context.Context, category *Category) error
	RenameCategory(ctx context.Context, id, name string) (*Category, error)
	DeleteCategory(ctx context.Context, id string) error
}
