package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

// RegisterInput is the payload of Register.
type RegisterInput struct {
	Name             string
	Email            string
	Password         string
	Role             string
	BiometricEnabled bool
}

// Register creates a local account and signs it in.
func (s *Service) Register(ctx context.Context, in RegisterInput) (_ *Session, err error) {
	defer func() { s.outcome(EventRegister, err) }()

	in.Name = sanitizer.SingleLine(in.Name)
	in.Email = sanitizer.NormalizeEmail(in.Email)
	in.Role = strings.TrimSpace(in.Role)
	if in.Role == "" {
		in.Role = RoleUser
	}

	if err := apply(
		[]validator.Rule{
			validator.Required("name", in.Name),
			validator.MinLen("name", in.Name, minNameLen),
		},
		s.emailRules("email", in.Email),
		[]validator.Rule{
			validator.Required("password", in.Password),
			passwordRule("password", in.Password),
			validator.InList("role", in.Role, roles),
		},
	); err != nil {
		return nil, err
	}

	_, err = s.storage.GetUserByEmail(ctx, in.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	hash, err := s.hasher.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &User{
		Name:             in.Name,
		Email:            in.Email,
		Role:             in.Role,
		PasswordHash:     hash,
		Provider:         ProviderLocal,
		BiometricEnabled: in.BiometricEnabled,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueSession(user, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	s.log(ctx, slog.LevelInfo, "user registered", logger.UserID(user.ID), logger.Role(user.Role))
	return &Session{User: user, Token: token}, nil
}

// Login checks a local password. Every failure after validation is the
// same ErrInvalidCredentials so callers cannot learn which emails exist.
func (s *Service) Login(ctx context.Context, email, password string) (_ *Session, err error) {
	defer func() { s.outcome(EventLogin, err) }()

	email = sanitizer.NormalizeEmail(email)
	if err := validator.Apply(
		validator.Required("email", email),
		validator.ValidEmail("email", email),
		validator.Required("password", password),
		validator.MinLen("password", password, minPasswordLen),
	); err != nil {
		return nil, err
	}

	user, err := s.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user.PasswordHash == "" || !s.hasher.VerifyPassword(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueSession(user, s.cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}
	return &Session{User: user, Token: token}, nil
}
