package catalog

import (
	"net/http"

	"github.com/dmitrymomot/foodorder/handler"
)

type categoryRequest struct {
	ID   string `path:"id" json:"-" form:"-"`
	Name string `json:"name" form:"name"`
}

func (m *Module) listCategories(ctx handler.Context, _ struct{}) handler.Response {
	categories, err := m.svc.ListCategories(ctx)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(categories, handler.WithJSONMeta(map[string]any{"results": len(categories)}))
}

func (m *Module) createCategory(ctx handler.Context, req categoryRequest) handler.Response {
	category, err := m.svc.CreateCategory(ctx, req.Name)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(category,
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMessage("Category created successfully"),
	)
}

func (m *Module) updateCategory(ctx handler.Context, req categoryRequest) handler.Response {
	category, err := m.svc.UpdateCategory(ctx, req.ID, req.Name)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(category, handler.WithJSONMessage("Category updated successfully"))
}

func (m *Module) deleteCategory(ctx handler.Context, req categoryRequest) handler.Response {
	if err := m.svc.DeleteCategory(ctx, req.ID); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Category deleted successfully")
}
