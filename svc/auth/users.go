package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

// UserPatch is the payload of UpdateUser. Nil fields are left untouched.
type UserPatch struct {
	Name             *string
	Avatar           *string
	Role             *string
	BiometricEnabled *bool
	Password         *string
}

// ContactInput is a message from a site visitor to the support inbox.
type ContactInput struct {
	Name    string
	Email   string
	Subject string
	Message string
}

// ChangePassword replaces the password of a verified account after
// checking the current one.
func (s *Service) ChangePassword(ctx context.Context, userID, oldPassword, newPassword string) (err error) {
	defer func() { s.outcome(EventPasswordChanged, err) }()

	if err := validator.Apply(
		validator.Required("oldPassword", oldPassword),
		validator.Required("newPassword", newPassword),
		passwordRule("newPassword", newPassword),
	); err != nil {
		return err
	}

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if !user.Verified {
		return ErrNotVerified
	}
	if user.PasswordHash == "" || !s.hasher.VerifyPassword(oldPassword, user.PasswordHash) {
		return ErrInvalidCredentials
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	local := ProviderLocal
	if _, err := s.storage.UpdateUser(ctx, user.ID, UserUpdate{PasswordHash: &hash, Provider: &local}); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.log(ctx, slog.LevelInfo, "password changed", logger.UserID(user.ID))
	return nil
}

// Me returns the account of the signed-in user.
func (s *Service) Me(ctx context.Context, userID string) (*User, error) {
	return s.GetUser(ctx, userID)
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]*User, error) {
	users, err := s.storage.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser returns the account with id.
func (s *Service) GetUser(ctx context.Context, id string) (*User, error) {
	if err := validator.Apply(validator.ObjectID("id", id)); err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.storage.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateUser applies patch to the account id on behalf of actor. Users may
// update themselves; admins may update anyone and are the only ones
// allowed to change a role.
func (s *Service) UpdateUser(ctx context.Context, actor *User, id string, patch UserPatch) (*User, error) {
	if actor == nil {
		return nil, ErrUnauthorized
	}
	if actor.ID != id && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	if patch.Role != nil && !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	var upd UserUpdate
	if patch.Name != nil {
		name := sanitizer.SingleLine(*patch.Name)
		upd.Name = &name
	}
	if patch.Avatar != nil {
		avatar := sanitizer.SingleLine(*patch.Avatar)
		upd.Avatar = &avatar
	}
	upd.Role = patch.Role
	upd.BiometricEnabled = patch.BiometricEnabled

	if err := validator.Apply(
		validator.When(upd.Name != nil, validator.MinLen("name", deref(upd.Name), minNameLen)),
		validator.When(upd.Role != nil, validator.InList("role", deref(upd.Role), roles)),
		validator.When(patch.Password != nil, passwordRule("password", deref(patch.Password))),
	); err != nil {
		return nil, err
	}

	if patch.Password != nil {
		hash, err := s.hasher.HashPassword(*patch.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		local := ProviderLocal
		upd.PasswordHash = &hash
		upd.Provider = &local
	}
	if upd.IsEmpty() {
		return nil, ErrNothingToUpdate
	}

	user, err := s.storage.UpdateUser(ctx, id, upd)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// DeleteUser removes the account id. Tokens issued to it stop working at
// the guard because the account can no longer be loaded.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	if err := s.storage.DeleteUser(ctx, id); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	s.log(ctx, slog.LevelInfo, "user deleted", logger.UserID(id))
	return nil
}

// ContactMessage relays a visitor message to the support inbox.
func (s *Service) ContactMessage(ctx context.Context, in ContactInput) error {
	in.Name = sanitizer.SingleLine(in.Name)
	in.Email = sanitizer.NormalizeEmail(in.Email)
	in.Subject = sanitizer.SingleLine(in.Subject)
	in.Message = sanitizer.MultiLine(in.Message)

	if err := validator.Apply(
		validator.Required("name", in.Name),
		validator.Required("email", in.Email),
		validator.ValidEmail("email", in.Email),
		validator.Required("subject", in.Subject),
		validator.MaxLen("subject", in.Subject, 200),
		validator.Required("message", in.Message),
		validator.MaxLen("message", in.Message, 5000),
	); err != nil {
		return err
	}

	if _, err := s.send(ctx, s.contactMessage(in)); err != nil {
		s.log(ctx, slog.LevelError, "failed to relay contact message", logger.Error(err))
		return errors.Join(ErrMailDeliveryFailure, err)
	}
	return nil
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
