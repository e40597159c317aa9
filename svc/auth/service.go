// Package auth owns accounts: registration, sign-in, email verification,
// password recovery, Google sign-in and the request guard.
//
// Verification codes and reset tokens are never stored in clear text. A
// pending secret is kept as a digest with an expiry and is cleared by the
// same write that redeems it.
package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/pkg/hasher"
	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/logger"
)

// Hasher produces password and one-time code digests.
type Hasher interface {
	HashPassword(plain string) (string, error)
	VerifyPassword(plain, digest string) bool
	HMAC(value any) string
	VerifyHMAC(value any, digest string) bool
}

// Tokens issues and verifies signed tokens.
type Tokens interface {
	Issue(claims jwt.Claims, ttl time.Duration) (string, error)
	VerifyPurpose(token, purpose string) (*jwt.Claims, error)
}

// EventRecorder receives the outcome of auth operations, e.g. for metrics.
type EventRecorder func(event, outcome string)

// Auth events passed to EventRecorder.
const (
	EventRegister         = "register"
	EventLogin            = "login"
	EventVerificationSent = "verification_code_sent"
	EventVerified         = "verified"
	EventResetRequested   = "password_reset_requested"
	EventPasswordReset    = "password_reset"
	EventPasswordChanged  = "password_changed"
	EventOAuthLogin       = "oauth_login"

	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Service implements the account operations.
type Service struct {
	cfg     Config
	storage Storage
	hasher  Hasher
	tokens  Tokens
	mailer  email.EmailSender
	logger  *slog.Logger
	record  EventRecorder
	now     func() time.Time

	newToken func() (string, error)
	newCode  func() (string, error)
}

// Option configures Service.
type Option func(*Service)

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithEventRecorder sets the recorder notified about every auth outcome.
func WithEventRecorder(r EventRecorder) Option {
	return func(s *Service) {
		if r != nil {
			s.record = r
		}
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithSecretGenerators overrides how reset tokens and numeric codes are
// generated. Used in tests.
func WithSecretGenerators(token, code func() (string, error)) Option {
	return func(s *Service) {
		if token != nil {
			s.newToken = token
		}
		if code != nil {
			s.newCode = code
		}
	}
}

// NewService creates the auth service.
func NewService(cfg Config, storage Storage, hasher Hasher, tokens Tokens, mailer email.EmailSender, opts ...Option) *Service {
	s := &Service{
		cfg:      cfg,
		storage:  storage,
		hasher:   hasher,
		tokens:   tokens,
		mailer:   mailer,
		logger:   logger.Noop(),
		record:   func(string, string) {},
		now:      time.Now,
		newToken: defaultResetToken,
		newCode:  defaultCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) outcome(event string, err error) {
	if err != nil {
		s.record(event, OutcomeFailure)
		return
	}
	s.record(event, OutcomeSuccess)
}

// issueSession signs a session token for user.
func (s *Service) issueSession(user *User, ttl time.Duration) (string, error) {
	claims := jwt.Claims{
		Purpose: jwt.PurposeSession,
		Role:    user.Role,
		Name:    user.Name,
		Email:   user.Email,
		Avatar:  user.Avatar,
	}
	claims.Subject = user.ID
	return s.tokens.Issue(claims, ttl)
}

// resetTokenBytes is the entropy of a password reset link token.
const resetTokenBytes = 32

func defaultResetToken() (string, error) {
	return hasher.RandomToken(resetTokenBytes)
}

func defaultCode() (string, error) {
	return hasher.NumericCode()
}

func (s *Service) log(ctx context.Context, level slog.Level, msg string, attrs ...slog.Attr) {
	s.logger.LogAttrs(ctx, level, msg, append(attrs, logger.Component("auth"))...)
}
