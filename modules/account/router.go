// Package account serves the /users API: sign-up, sign-in, email
// verification, password recovery and user administration.
package account

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/foodorder/binder"
	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

// Service is the part of auth.Service the module calls.
type Service interface {
	Register(ctx context.Context, in auth.RegisterInput) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)

	SendVerificationCode(ctx context.Context, email string) error
	VerifyVerificationCode(ctx context.Context, email, code string) error
	ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ForgotPasswordByCode(ctx context.Context, email string) error
	VerifyForgotPasswordCode(ctx context.Context, email, code, newPassword string) error
	ContactMessage(ctx context.Context, in auth.ContactInput) error

	Me(ctx context.Context, userID string) (*auth.User, error)
	ListUsers(ctx context.Context) ([]*auth.User, error)
	GetUser(ctx context.Context, id string) (*auth.User, error)
	UpdateUser(ctx context.Context, actor *auth.User, id string, patch auth.UserPatch) (*auth.User, error)
	DeleteUser(ctx context.Context, id string) error
}

// Guard provides the access middlewares.
type Guard interface {
	Protect(next http.Handler) http.Handler
	Admin(next http.Handler) http.Handler
	Verified(next http.Handler) http.Handler
}

// Config controls the session cookie set on sign-in.
type Config struct {
	CookieTTL    time.Duration
	SecureCookie bool
}

// Module holds the /users handlers.
type Module struct {
	cfg          Config
	svc          Service
	guard        Guard
	errorHandler handler.ErrorHandler[handler.Context]
}

// New creates the account module. A nil errorHandler falls back to the
// handler package default.
func New(cfg Config, svc Service, guard Guard, errorHandler handler.ErrorHandler[handler.Context]) *Module {
	return &Module{cfg: cfg, svc: svc, guard: guard, errorHandler: errorHandler}
}

// Handle returns the router to mount at /users.
//
//	r.Mount("/users", account.New(cfg, authSvc, guard, errorHandler).Handle())
func (m *Module) Handle() http.Handler {
	r := chi.NewRouter()
	path := binder.Path(chi.URLParam)

	r.Post("/register", wrap(m, m.register, binder.JSON()))
	r.Post("/login", wrap(m, m.login, binder.JSON()))
	r.With(m.guard.Protect).Post("/signout", wrap(m, m.signout))

	r.With(m.guard.Protect).Patch("/send-verification-code", wrap(m, m.sendVerificationCode, binder.JSON()))
	r.Patch("/verify-verification-code", wrap(m, m.verifyVerificationCode, binder.JSON()))
	r.With(m.guard.Protect, m.guard.Verified).Patch("/reset-password", wrap(m, m.changePassword, binder.JSON()))
	r.Patch("/send-forgot-password", wrap(m, m.forgotPassword, binder.JSON()))
	r.Patch("/confirm-forgot-password", wrap(m, m.resetPassword, binder.JSON()))
	r.Patch("/send-forgot-password-code", wrap(m, m.forgotPasswordByCode, binder.JSON()))
	r.Patch("/verify-forgot-password-code", wrap(m, m.verifyForgotPasswordCode, binder.JSON()))
	r.Post("/contact-email", wrap(m, m.contact, binder.JSON()))

	r.Group(func(r chi.Router) {
		r.Use(m.guard.Protect)
		r.Get("/me", wrap(m, m.me))
		r.With(m.guard.Admin).Get("/", wrap(m, m.listUsers))
		r.Get("/{id}", wrap(m, m.getUser, path))
		r.Put("/{id}", wrap(m, m.updateUser, path, binder.JSON()))
		r.With(m.guard.Admin).Delete("/{id}", wrap(m, m.deleteUser, path))
	})

	return r
}

func wrap[R any](m *Module, h handler.HandlerFunc[handler.Context, R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(h,
		handler.WithBinders[handler.Context, R](binders...),
		handler.WithErrorHandler[handler.Context, R](m.errorHandler),
	)
}

type noRequest struct{}
