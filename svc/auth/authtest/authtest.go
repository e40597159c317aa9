// Package authtest provides a stand-in for auth.Guard in handler tests.
//
// The fake Guard authenticates "Authorization: Bearer <user id>" against a
// fixed set of users and applies the same role and verification checks as
// the real one.
package authtest

import (
	"net/http"
	"strings"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

// Guard authenticates requests by user id.
type Guard struct {
	users map[string]*auth.User
}

// NewGuard creates a Guard that knows users.
func NewGuard(users ...*auth.User) *Guard {
	g := &Guard{users: make(map[string]*auth.User, len(users))}
	for _, u := range users {
		g.users[u.ID] = u
	}
	return g
}

// Authorize sets the header Guard.Protect accepts for user.
func Authorize(r *http.Request, user *auth.User) *http.Request {
	r.Header.Set("Authorization", "Bearer "+user.ID)
	return r
}

func (g *Guard) Protect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
		user := g.users[id]
		if !ok || user == nil {
			deny(w, r, handler.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.SetUserToContext(r.Context(), user)))
	})
}

func (g *Guard) Admin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		switch {
		case !ok:
			deny(w, r, handler.ErrUnauthorized)
		case !user.IsAdmin():
			deny(w, r, handler.ErrForbidden)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func (g *Guard) Verified(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		switch {
		case !ok:
			deny(w, r, handler.ErrUnauthorized)
		case !user.Verified:
			deny(w, r, handler.ErrForbidden)
		default:
			next.ServeHTTP(w, r)
		}
	})
}

func deny(w http.ResponseWriter, r *http.Request, e handler.HTTPError) {
	_ = handler.JSONError(e.Code, &handler.ErrorDetail{Code: e.Key, Message: e.Error()}).Render(w, r)
}
