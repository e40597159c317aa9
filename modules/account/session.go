package account

import (
	"net/http"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

type registerRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	BiometricEnabled bool   `json:"biometricEnabled"`
}

type sessionResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
	Token  string `json:"token"`
}

func newSessionResponse(s *auth.Session) sessionResponse {
	return sessionResponse{
		ID:     s.User.ID,
		Name:   s.User.Name,
		Email:  s.User.Email,
		Role:   s.User.Role,
		Avatar: s.User.Avatar,
		Token:  s.Token,
	}
}

func (m *Module) register(ctx handler.Context, req registerRequest) handler.Response {
	session, err := m.svc.Register(ctx, auth.RegisterInput{
		Name:             req.Name,
		Email:            req.Email,
		Password:         req.Password,
		Role:             req.Role,
		BiometricEnabled: req.BiometricEnabled,
	})
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(newSessionResponse(session),
		handler.WithJSONStatus(http.StatusCreated),
		handler.WithJSONMessage("User registered successfully"),
		handler.WithJSONCookie(m.sessionCookie(session.Token)),
	)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (m *Module) login(ctx handler.Context, req loginRequest) handler.Response {
	session, err := m.svc.Login(ctx, req.Email, req.Password)
	if err != nil {
		return handler.Error(mapError(err))
	}
	return handler.JSON(newSessionResponse(session),
		handler.WithJSONMessage("User logged in successfully"),
		handler.WithJSONCookie(m.sessionCookie(session.Token)),
	)
}

// signout only drops the cookie: issued tokens stay valid until they expire.
func (m *Module) signout(_ handler.Context, _ noRequest) handler.Response {
	return handler.Message("You have been signed out successfully.",
		handler.WithJSONCookie(m.expiredCookie()),
	)
}

func (m *Module) sessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     auth.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(m.cfg.CookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	}
}

func (m *Module) expiredCookie() *http.Cookie {
	c := m.sessionCookie("")
	c.MaxAge = -1
	return c
}
