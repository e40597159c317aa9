// Package order serves /orders: placing an order from the cart, listing
// orders and the administrative status updates.
package order

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/order"
)

// Service is the part of order.Service the module calls.
type Service interface {
	Place(ctx context.Context, userID string) (*order.Order, error)
	ListMine(ctx context.Context, userID string) ([]*order.Order, error)
	ListAll(ctx context.Context) ([]*order.Order, error)
	Update(ctx context.Context, id string, upd order.Update) (*order.Order, error)
}

// Guard provides the access middlewares.
type Guard interface {
	Protect(next http.Handler) http.Handler
	Admin(next http.Handler) http.Handler
}

// Module holds the order handlers.
type Module struct {
	svc          Service
	guard        Guard
	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the order module.
func New(svc Service, guard Guard, errorHandler handler.ErrorHandler[handler.Context]) *Module {
	return &Module{svc: svc, guard: guard, errorHandler: errorHandler}
}

// Handle returns the router to mount at /orders.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	r.Use(m.guard.Protect)

	r.Post("/place", handler.Wrap(m.place,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))
	r.Get("/my-orders", handler.Wrap(m.listMine,
		handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(m.guard.Admin)
		r.Get("/", handler.Wrap(m.listAll,
			handler.WithErrorHandler[handler.Context, struct{}](m.errorHandler),
		))
		r.Patch("/{id}", handler.Wrap(m.update,
			handler.WithBinders[handler.Context, updateRequest](binder.Path(chi.URLParam), binder.JSON()),
			handler.WithErrorHandler[handler.Context, updateRequest](m.errorHandler),
		))
	})

	return r
}

func (m *Module) place(ctx handler.Context, _ struct{}) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	o, err := m.svc.Place(ctx, user.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(o,
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMessage("Order placed successfully"),
	)
}

func (m *Module) listMine(ctx handler.Context, _ struct{}) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	orders, err := m.svc.ListMine(ctx, user.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(orders, handler.WithJSONMeta(map[string]any{"results": len(orders)}))
}

func (m *Module) listAll(ctx handler.Context, _ struct{}) handler.Response {
	orders, err := m.svc.ListAll(ctx)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(orders, handler.WithJSONMeta(map[string]any{"results": len(orders)}))
}

type updateRequest struct {
	ID            string  `path:"id" json:"-"`
	Status        *string `json:"status"`
	PaymentStatus *string `json:"paymentStatus"`
}

func (m *Module) update(ctx handler.Context, req updateRequest) handler.Response {
	o, err := m.svc.Update(ctx, req.ID, order.Update{
		Status:        req.Status,
		PaymentStatus: req.PaymentStatus,
	})
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(o, handler.WithJSONMessage("Order updated successfully"))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, order.ErrOrderNotFound):
		return handler.ErrNotFound.WithMessage("No order found with that ID")
	case errors.Is(err, order.ErrEmptyCart):
		return handler.ErrBadRequest.WithMessage("Cart is empty")
	case errors.Is(err, order.ErrFoodNotFound):
		return handler.ErrBadRequest.WithMessage("A food item in your cart is no longer available")
	case errors.Is(err, order.ErrNothingToUpdate):
		return handler.ErrBadRequest.WithMessage("Status or payment status is required")
	}
	return err
}
