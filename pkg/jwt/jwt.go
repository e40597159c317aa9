// Package jwt issues and verifies HS256 signed tokens carrying the caller's
// identity. Tokens are stateless: nothing is stored server-side, so a token
// stays valid until it expires.
package jwt

import (
	"errors"
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// Token purposes. A token minted for one purpose never verifies for another.
const (
	PurposeSession    = "session"
	PurposeOAuthState = "oauth_state"
)

// Config holds signing settings.
type Config struct {
	Secret string `env:"JWT_SECRET,required"`
	Issuer string `env:"JWT_ISSUER" envDefault:"foodorder"`
}

// Claims is the payload of every token issued by Service.
// Subject holds the user id for session tokens.
type Claims struct {
	gojwt.RegisteredClaims
	Purpose string `json:"purpose"`
	Role    string `json:"role,omitempty"`
	Name    string `json:"name,omitempty"`
	Email   string `json:"email,omitempty"`
	Avatar  string `json:"avatar,omitempty"`

	// OAuth continuation fields, only set on PurposeOAuthState tokens.
	Admin    bool   `json:"admin,omitempty"`
	ReturnTo string `json:"return_to,omitempty"`
}

// Service signs and verifies tokens with a shared HMAC secret.
type Service struct {
	key    []byte
	issuer string
	now    func() time.Time
}

// Option configures Service.
type Option func(*Service)

// WithClock overrides the time source. Used in tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Service from cfg.
func New(cfg Config, opts ...Option) (*Service, error) {
	if cfg.Secret == "" {
		return nil, ErrMissingSigningKey
	}
	s := &Service{
		key:    []byte(cfg.Secret),
		issuer: cfg.Issuer,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs claims valid for ttl. IssuedAt, ExpiresAt and Issuer are
// overwritten; Purpose defaults to PurposeSession.
func (s *Service) Issue(claims Claims, ttl time.Duration) (string, error) {
	now := s.now()
	claims.IssuedAt = gojwt.NewNumericDate(now)
	claims.ExpiresAt = gojwt.NewNumericDate(now.Add(ttl))
	claims.Issuer = s.issuer
	if claims.Purpose == "" {
		claims.Purpose = PurposeSession
	}

	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("jwt: sign token: %w", err)
	}
	return token, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims.
func (s *Service) Verify(token string) (*Claims, error) {
	if token == "" {
		return nil, ErrMissingToken
	}

	parserOpts := []gojwt.ParserOption{
		gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}),
		gojwt.WithTimeFunc(s.now),
		gojwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, gojwt.WithIssuer(s.issuer))
	}

	claims := &Claims{}
	parsed, err := gojwt.ParseWithClaims(token, claims, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.key, nil
	}, parserOpts...)
	if err != nil {
		if errors.Is(err, gojwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// VerifyPurpose is Verify plus a check that the token was minted for purpose.
func (s *Service) VerifyPurpose(token, purpose string) (*Claims, error) {
	claims, err := s.Verify(token)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purpose {
		return nil, ErrWrongPurpose
	}
	return claims, nil
}
