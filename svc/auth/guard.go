package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/logger"
)

// SessionCookie is the cookie holding the session token for browser clients.
const SessionCookie = "jwt"

// Guard authenticates requests and enforces role and verification checks.
type Guard struct {
	tokens    Tokens
	storage   Storage
	extractor jwt.Extractor
	logger    *slog.Logger
}

// GuardOption configures Guard.
type GuardOption func(*Guard)

// WithGuardLogger sets the logger.
func WithGuardLogger(l *slog.Logger) GuardOption {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// NewGuard creates a Guard reading the token from the Authorization header
// and falling back to the session cookie.
func NewGuard(tokens Tokens, storage Storage, opts ...GuardOption) *Guard {
	g := &Guard{
		tokens:    tokens,
		storage:   storage,
		extractor: jwt.ChainExtractors(jwt.BearerExtractor, jwt.CookieExtractor(SessionCookie)),
		logger:    logger.Noop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Protect rejects requests without a valid session token for an existing
// account, and stores the account and claims in the request context.
// The account is loaded on every request, so deleting it cuts off tokens
// issued earlier.
func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := g.extractor(r)
		if err != nil {
			deny(w, r, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		claims, err := g.tokens.VerifyPurpose(token, jwt.PurposeSession)
		if err != nil {
			msg := "Not authorized, token failed"
			if errors.Is(err, jwt.ErrExpiredToken) {
				msg = "Not authorized, token expired"
			}
			deny(w, r, http.StatusUnauthorized, msg)
			return
		}

		user, err := g.storage.GetUserByID(r.Context(), claims.Subject)
		if err != nil {
			if !errors.Is(err, ErrUserNotFound) {
				g.logger.ErrorContext(r.Context(), "failed to load user for token",
					logger.UserID(claims.Subject), logger.Error(err), logger.Component("guard"))
			}
			deny(w, r, http.StatusUnauthorized, "Not authorized, user not found")
			return
		}

		ctx := SetUserToContext(r.Context(), user)
		ctx = jwt.SetClaims(ctx, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Admin requires Protect to have run and the user to be an admin.
func (g *Guard) Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			deny(w, r, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !user.IsAdmin() {
			deny(w, r, http.StatusForbidden, "Not authorized as an admin")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Verified requires Protect to have run and the user email to be verified.
func (g *Guard) Verified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			deny(w, r, http.StatusUnauthorized, "Not authorized")
			return
		}
		if !user.Verified {
			deny(w, r, http.StatusForbidden, "Please verify your email first")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func deny(w http.ResponseWriter, r *http.Request, status int, msg string) {
	key := handler.ErrUnauthorized.Key
	if status == http.StatusForbidden {
		key = handler.ErrForbidden.Key
	}
	_ = handler.JSONError(status, &handler.ErrorDetail{Code: key, Message: msg}).Render(w, r)
}
