// Package catalog serves the /foods and /categories APIs.
package catalog

import (
	"context"
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/catalog"
)

// uploadOverhead is the room left for form fields next to the image.
const uploadOverhead = 1 << 20

// Service is the part of catalog.Service the module calls.
type Service interface {
	PageSize() int
	ListFoods(ctx context.Context, page int) ([]*catalog.Food, error)
	GetFood(ctx context.Context, id string) (*catalog.Food, error)
	CreateFood(ctx context.Context, creatorID string, in catalog.FoodInput, image *multipart.FileHeader) (*catalog.Food, error)
	UpdateFood(ctx context.Context, actorID, id string, patch catalog.FoodPatch, image *multipart.FileHeader) (*catalog.Food, error)
	DeleteFood(ctx context.Context, id string) error

	ListCategories(ctx context.Context) ([]*catalog.Category, error)
	CreateCategory(ctx context.Context, name string) (*catalog.Category, error)
	UpdateCategory(ctx context.Context, id, name string) (*catalog.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// Guard provides the access middlewares.
type Guard interface {
	Protect(next http.Handler) http.Handler
	Admin(next http.Handler) http.Handler
}

// Module holds the catalog handlers.
type Module struct {
	svc          Service
	guard        Guard
	maxUpload    int64
	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the catalog module. maxImageSize bounds multipart bodies.
func New(svc Service, guard Guard, maxImageSize int64, errorHandler handler.ErrorHandler[handler.Context]) *Module {
	return &Module{
		svc:          svc,
		guard:        guard,
		maxUpload:    maxImageSize + uploadOverhead,
		errorHandler: errorHandler,
	}
}

// HandleFoods returns the router to mount at /foods.
func (m *Module) HandleFoods() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Get("/", wrap(m, m.listFoods, binder.Query()))
	r.Get("/{id}", wrap(m, m.getFood, path))

	r.Group(func(r chi.Router) {
		r.Use(m.guard.Protect, m.guard.Admin, middleware.RequestSize(m.maxUpload))
		r.Post("/create-food", wrap(m, m.createFood, binder.Form()))
		r.Put("/{id}", wrap(m, m.updateFood, path, binder.JSON(), binder.Form()))
		r.Delete("/{id}", wrap(m, m.deleteFood, path))
	})

	return r
}

// HandleCategories returns the router to mount at /categories.
func (m *Module) HandleCategories() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Get("/", wrap(m, m.listCategories))

	r.Group(func(r chi.Router) {
		r.Use(m.guard.Protect, m.guard.Admin)
		r.Post("/add-category", wrap(m, m.createCategory, binder.JSON(), binder.Form()))
		r.Put("/{id}", wrap(m, m.updateCategory, path, binder.JSON(), binder.Form()))
		r.Delete("/{id}", wrap(m, m.deleteCategory, path))
	})

	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](m.errorHandler),
	)
}
