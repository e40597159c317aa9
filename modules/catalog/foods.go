package catalog

import (
	"mime/multipart"
	"net/http"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

type listFoodsRequest struct {
	Page int `query:"page"`
}

type foodIDRequest struct {
	ID string `path:"id"`
}

type createFoodRequest struct {
	Name        string                `form:"name"`
	Description string                `form:"description"`
	Price       float64               `form:"price"`
	Category    string                `form:"category"`
	Available   *bool                 `form:"available"`
	Image       *multipart.FileHeader `file:"image"`
}

type updateFoodRequest struct {
	ID          string                `path:"id" json:"-"`
	Name        *string               `form:"name" json:"name"`
	Description *string               `form:"description" json:"description"`
	Price       *float64              `form:"price" json:"price"`
	Category    *string               `form:"category" json:"category"`
	Available   *bool                 `form:"available" json:"available"`
	Image       *multipart.FileHeader `file:"image" json:"-"`
}

func (m *Module) listFoods(ctx handler.Context, req listFoodsRequest) handler.Response {
	page := max(req.Page, 1)
	foods, err := m.svc.ListFoods(ctx, page)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(foods, handler.WithJSONMeta(map[string]any{
		"results": len(foods),
		"page":    page,
		"limit":   m.svc.PageSize(),
	}))
}

func (m *Module) getFood(ctx handler.Context, req foodIDRequest) handler.Response {
	food, err := m.svc.GetFood(ctx, req.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(food)
}

func (m *Module) createFood(ctx handler.Context, req createFoodRequest) handler.Response {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	food, err := m.svc.CreateFood(ctx, user.ID, catalog.FoodInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.Category,
		Available:   req.Available,
	}, req.Image)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(food,
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMessage("Food created successfully"),
	)
}

func (m *Module) updateFood(ctx handler.Context, req updateFoodRequest) handler.Response {
	user, ok := auth.UserFromContext(ctx)
	if !ok {
		return handler.Error(handler.ErrUnauthorized)
	}
	food, err := m.svc.UpdateFood(ctx, user.ID, req.ID, catalog.FoodPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.Category,
		Available:   req.Available,
	}, req.Image)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(food, handler.WithJSONMessage("Food updated successfully"))
}

func (m *Module) deleteFood(ctx handler.Context, req foodIDRequest) handler.Response {
	if err := m.svc.DeleteFood(ctx, req.ID); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Food deleted successfully")
}
