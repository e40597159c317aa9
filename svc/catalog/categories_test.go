package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

func TestService_Categories(t *testing.T) {
	t.Parallel()

	t.Run("create", func(t *testing.T) {
		t.Parallel()
		svc, storage, _ := newService(t)
		ctx := context.Background()

		storage.On("CreateCategory", ctx, mock.MatchedBy(func(c *catalog.Category) bool {
			return c.Name == "Pizza"
		})).Return(nil).Once()

		c, err := svc.CreateCategory(ctx, "  Pizza ")
		require.NoError(t, err)
		assert.Equal(t, "Pizza", c.Name)
	})

	t.Run("create duplicate", func(t *testing.T) {
		t.Parallel()
		svc, storage, _ := newService(t)
		ctx := context.Background()

		storage.On("CreateCategory", ctx, mock.Anything).Return(catalog.ErrCategoryExists).Once()

		_, err := svc.CreateCategory(ctx, "Pizza")
		assert.ErrorIs(t, err, catalog.ErrCategoryExists)
	})

	t.Run("create without name", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newService(t)

		_, err := svc.CreateCategory(context.Background(), "   ")
		assert.True(t, validator.IsValidationError(err))
	})

	t.Run("rename", func(t *testing.T) {
		t.Parallel()
		svc, storage, _ := newService(t)
		ctx := context.Background()

		storage.On("RenameCategory", ctx, categoryID, "Pasta").Return(&catalog.Category{ID: categoryID, Name: "Pasta"}, nil).Once()

		c, err := svc.UpdateCategory(ctx, categoryID, "Pasta")
		require.NoError(t, err)
		assert.Equal(t, "Pasta", c.Name)
	})

	t.Run("rename unknown", func(t *testing.T) {
		t.Parallel()
		svc, storage, _ := newService(t)
		ctx := context.Background()

		storage.On("RenameCategory", ctx, categoryID, "Pasta").Return(nil, catalog.ErrCategoryNotFound).Once()

		_, err := svc.UpdateCategory(ctx, categoryID, "Pasta")
		assert.ErrorIs(t, err, catalog.ErrCategoryNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		t.Parallel()
		svc, storage, _ := newService(t)
		ctx := context.Background()

		storage.On("DeleteCategory", ctx, categoryID).Return(nil).Once()
		storage.On("DeleteCategory", ctx, foodID).Return(catalog.ErrCategoryNotFound).Once()

		require.NoError(t, svc.DeleteCategory(ctx, categoryID))
		assert.ErrorIs(t, svc.DeleteCategory(ctx, foodID), catalog.ErrCategoryNotFound)
	})
}
