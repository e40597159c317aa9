// Package cart serves the signed-in user's cart under /cart.
package cart

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/cart"
)

// Service is the part of cart.Service the module calls.
type Service interface {
	Add(ctx context.Context, userID, foodID string, qty int) (*cart.Cart, error)
	Get(ctx context.Context, userID string) (*cart.Cart, error)
	Update(ctx context.Context, userID, foodID string, qty int) (*cart.Cart, error)
	Remove(ctx context.Context, userID, foodID string) (*cart.Cart, error)
}

// Module holds the cart handlers.
type Module struct {
	svc          Service
	protect      func(http.Handler) http.Handler
	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the cart module. protect authenticates every route.
func New(svc Service, protect func(http.Handler) http.Handler, errorHandler handler.ErrorHandler[handler.Context]) *Module {
	return &Module{svc: svc, protect: protect, errorHandler: errorHandler}
}

// Handle returns the router to mount at /cart.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(m.protect)

	r.Post("/add", handler.Wrap(m.add,
		handler.WithBinders[handler.Context, itemRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, itemRequest](m.errorHandler),
	))
	r.Get("/", handler.Wrap(m.get,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Patch("/update", handler.Wrap(m.update,
		handler.WithBinders[handler.Context, itemRequest](binder.JSON()),
		handler.WithErrorHandler[handler.Context, itemRequest](m.errorHandler),
	))
	r.Delete("/remove", handler.Wrap(m.remove,
		handler.WithBinders[handler.Context, itemRequest](binder.Query(), binder.JSON()),
		handler.WithErrorHandler[handler.Context, itemRequest](m.errorHandler),
	))

	return r
}

type itemRequest struct {
	FoodID   string `json:"foodId" query:"foodId"`
	Quantity int    `json:"quantity"`
}

func (m *Module) add(ctx handler.Context, req itemRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	c, err := m.svc.Add(ctx, user.ID, req.FoodID, req.Quantity)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(c, handler.WithJSONMessage("Item added to cart"))
}

func (m *Module) get(ctx handler.Context, _ struct{}) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	c, err := m.svc.Get(ctx, user.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(c)
}

func (m *Module) update(ctx handler.Context, req itemRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	c, err := m.svc.Update(ctx, user.ID, req.FoodID, req.Quantity)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(c, handler.WithJSONMessage("Cart updated"))
}

func (m *Module) remove(ctx handler.Context, req itemRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	c, err := m.svc.Remove(ctx, user.ID, req.FoodID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(c, handler.WithJSONMessage("Item removed from cart"))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, cart.ErrCartNotFound):
		return handler.ErrNotFound.WithMessage("Cart not found")
	case errors.Is(err, cart.ErrItemNotFound):
		return handler.ErrNotFound.WithMessage("Item not found in cart")
	case errors.Is(err, cart.ErrFoodNotFound):
		return handler.ErrNotFound.WithMessage("Food item not found")
	}
	return err
}
