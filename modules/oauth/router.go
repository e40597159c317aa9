// Package oauth serves the browser side of provider sign-in under
// /auth/google.
package oauth

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/pkg/logger"
)

// Bridge is the part of auth.OAuthBridge the module calls.
type Bridge interface {
	AuthURL(adminIntent bool, returnPath string) (string, error)
	Callback(ctx context.Context, code, state string) (string, error)
}

// Module holds the OAuth handlers.
type Module struct {
	bridge       Bridge
	logger       *slog.Logger
	errorHandler handler.ErrorHandler[handler.Context]
}

// Option configures Module.
type Option func(*Module)

// WithLogger sets the logger used for failed callbacks.
func WithLogger(l *slog.Logger) Option {
	return func(m *Module) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithErrorHandler sets the error handler for failed starts.
func WithErrorHandler(h handler.ErrorHandler[handler.Context]) Option {
	return func(m *Module) {
		m.errorHandler = h
	}
}

// New creates the OAuth module.
func New(bridge Bridge, opts ...Option) *Module {
	m := &Module{bridge: bridge, logger: logger.Noop()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Handle returns the router to mount at /auth/google.
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()

	r.Get("/", handler.Wrap(m.start,
		handler.WithBinders[handler.Context, startRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, startRequest](m.errorHandler),
	))
	r.Get("/callback", handler.Wrap(m.callback,
		handler.WithBinders[handler.Context, callbackRequest](binder.Query()),
		handler.WithErrorHandler[handler.Context, callbackRequest](m.errorHandler),
	))
	r.Get("/failure", handler.Wrap(m.failure))

	return r
}

type startRequest struct {
	Admin    bool   `query:"admin"`
	ReturnTo string `query:"returnTo"`
}

func (m *Module) start(_ handler.Context, req startRequest) handler.Response {
	target, err := m.bridge.AuthURL(req.Admin, req.ReturnTo)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Redirect(target)
}

type callbackRequest struct {
	Code  string `query:"code"`
	State string `query:"state"`
	Error string `query:"error"`
}

// callback always redirects to one of the client apps; failures are
// reported there through the error query parameter.
func (m *Module) callback(ctx handler.Context, req callbackRequest) handler.Response {
	target, err := m.bridge.Callback(ctx, req.Code, req.State)
	if err != nil {
		m.logger.WarnContext(ctx, "oauth callback failed",
			logger.Error(err),
			slog.String("provider_error", req.Error),
			logger.Component("oauth"),
		)
	}
	return handler.Redirect(target)
}

func (m *Module) failure(_ handler.Context, _ struct{}) handler.Response {
	return handler.JSONError(http.StatusUnauthorized, &handler.ErrorDetail{
		Code:    handler.ErrUnauthorized.Key,
		Message: "Google authentication failed",
	})
}
