// Package review serves /reviews.
package review

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/review"
)

// Service is the part of review.Service the module calls.
type Service interface {
	ListByFood(ctx context.Context, foodID string) ([]*review.Review, error)
	Create(ctx context.Context, userID, foodID string, in review.Input) (*review.Review, error)
	Update(ctx context.Context, userID, id string, in review.Input) (*review.Review, error)
	Delete(ctx context.Context, id string) error
}

// Guard provides the access middlewares.
type Guard interface {
	Protect(next http.Handler) http.Handler
	Admin(next http.Handler) http.Handler
}

// Module holds the review handlers.
type Module struct {
	svc          Service
	guard        Guard
	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the review module.
func New(svc Service, guard Guard, errorHandler handler.ErrorHandler[handler.Context]) *Module {
	return &Module{svc: svc, guard: guard, errorHandler: errorHandler}
}

// Handle returns the router to mount at /reviews. The {id} of POST is the
// reviewed food; for PUT and DELETE it is the review.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Get("/food/{id}", handler.Wrap(m.listByFood,
		handler.WithBinders[handler.Context, idRequest](path),
		handler.WithErrorHandler[handler.Context, idRequest](m.errorHandler),
	))

	r.Group(func(r chi.Router) {
		r.Use(m.guard.Protect)
		r.Post("/{id}", handler.Wrap(m.create,
			handler.WithBinders[handler.Context, reviewRequest](path, binder.JSON()),
			handler.WithErrorHandler[handler.Context, reviewRequest](m.errorHandler),
		))
		r.Put("/{id}", handler.Wrap(m.update,
			handler.WithBinders[handler.Context, reviewRequest](path, binder.JSON()),
			handler.WithErrorHandler[handler.Context, reviewRequest](m.errorHandler),
		))
		r.With(m.guard.Admin).Delete("/{id}", handler.Wrap(m.delete,
			handler.WithBinders[handler.Context, idRequest](path),
			handler.WithErrorHandler[handler.Context, idRequest](m.errorHandler),
		))
	})

	return r
}

type idRequest struct {
	ID string `path:"id"`
}

type reviewRequest struct {
	ID      string `path:"id" json:"-"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	Title   string `json:"title"`
}

func (r reviewRequest) input() review.Input {
	return review.Input{Rating: r.Rating, Comment: r.Comment, Title: r.Title}
}

func (m *Module) listByFood(ctx handler.Context, req idRequest) handler.Response {
	reviews, err := m.svc.ListByFood(ctx, req.ID)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(reviews, handler.WithJSONMeta(map[string]any{"results": len(reviews)}))
}

func (m *Module) create(ctx handler.Context, req reviewRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	rv, err := m.svc.Create(ctx, user.ID, req.ID, req.input())
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(rv,
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMessage("Review added successfully"),
	)
}

func (m *Module) update(ctx handler.Context, req reviewRequest) handler.Response {
	user, _ := auth.UserFromContext(ctx)
	rv, err := m.svc.Update(ctx, user.ID, req.ID, req.input())
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(rv, handler.WithJSONMessage("Review updated successfully"))
}

func (m *Module) delete(ctx handler.Context, req idRequest) handler.Response {
	if err := m.svc.Delete(ctx, req.ID); err != nil {
		return handler.Error(mapError(err))
	}
	return handler.Message("Review deleted successfully")
}

func mapError(err error) error {
	switch {
	case errors.Is(err, review.ErrReviewNotFound):
		return handler.ErrNotFound.WithMessage("Review not found")
	case errors.Is(err, review.ErrFoodNotFound):
		return handler.ErrNotFound.WithMessage("Food item not found")
	case errors.Is(err, review.ErrAlreadyReviewed):
		return handler.ErrConflict.WithMessage("You have already reviewed this food item")
	case errors.Is(err, review.ErrNotReviewAuthor):
		return handler.ErrForbidden.WithMessage("Not authorized to update this review")
	}
	return err
}
