package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/foodorder/pkg/hasher"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

// ForgotPassword mails a reset link to the account owner. The raw token
// only travels in the link; the account keeps its SHA-256 digest. Each call
// supersedes the previous pending reset.
func (s *Service) ForgotPassword(ctx context.Context, addr string) (err error) {
	defer func() { s.outcome(EventResetRequested, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(addressRules("email", addr)); err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, addr)
	if err != nil {
		return err
	}

	token, err := s.newToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	secret := Secret{
		Digest:    hasher.SHA256(token),
		ExpiresAt: s.now().Add(s.cfg.ResetTokenTTL),
		Method:    ResetMethodLink,
	}
	if err := s.storage.SetPasswordReset(ctx, user.ID, secret); err != nil {
		return fmt.Errorf("failed to store password reset: %w", err)
	}

	if _, err := s.send(ctx, s.resetLinkMessage(user, token)); err != nil {
		s.log(ctx, slog.LevelError, "failed to send reset link", logger.UserID(user.ID), logger.Error(err))
		return errors.Join(ErrMailDeliveryFailure, err)
	}
	return nil
}

// ResetPassword redeems a reset link token. Unknown email, wrong token and
// expiry are indistinguishable to the caller. The token works once.
func (s *Service) ResetPassword(ctx context.Context, addr, token, newPassword string) (err error) {
	defer func() { s.outcome(EventPasswordReset, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(
		addressRules("email", addr),
		[]validator.Rule{
			validator.Required("token", token),
			validator.Required("newPassword", newPassword),
			passwordRule("newPassword", newPassword),
		},
	); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.storage.ConsumePasswordReset(ctx, ConsumeReset{
		Email:        addr,
		Digest:       hasher.SHA256(token),
		Method:       ResetMethodLink,
		Now:          s.now(),
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidOrExpired
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.log(ctx, slog.LevelInfo, "password reset", logger.UserID(user.ID), logger.Event("reset_link"))
	if _, err := s.send(ctx, s.resetCompleteMessage(user)); err != nil {
		s.log(ctx, slog.LevelWarn, "failed to send password change confirmation", logger.UserID(user.ID), logger.Error(err))
	}
	return nil
}

// SendVerificationCode mails a six digit code. The code digest is stored
// only after the transport confirms it accepted the message for the
// account address.
func (s *Service) SendVerificationCode(ctx context.Context, addr string) (err error) {
	defer func() { s.outcome(EventVerificationSent, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(s.emailRules("email", addr)); err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, addr)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}

	digest, err := s.deliverCode(ctx, user, s.verificationMessage)
	if err != nil {
		return err
	}

	secret := Secret{Digest: digest, ExpiresAt: s.now().Add(s.cfg.CodeTTL)}
	if err := s.storage.SetVerification(ctx, user.ID, secret); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}
	return nil
}

// VerifyVerificationCode marks the account verified. Failures are checked
// in order: unknown user, already verified, no pending code, wrong code,
// expired code.
func (s *Service) VerifyVerificationCode(ctx context.Context, addr, code string) (err error) {
	defer func() { s.outcome(EventVerified, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(
		addressRules("email", addr),
		codeRules(code),
	); err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, addr)
	if err != nil {
		return err
	}
	if user.Verified {
		return ErrAlreadyVerified
	}
	if err := s.checkCode(user.Verification, code); err != nil {
		return err
	}

	if err := s.storage.MarkVerified(ctx, user.ID, user.Verification.Digest); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			// Superseded or redeemed since it was read.
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	s.log(ctx, slog.LevelInfo, "email verified", logger.UserID(user.ID))
	return nil
}

// ForgotPasswordByCode mails a six digit password reset code, with the
// same delivery gate as SendVerificationCode.
func (s *Service) ForgotPasswordByCode(ctx context.Context, addr string) (err error) {
	defer func() { s.outcome(EventResetRequested, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(s.emailRules("email", addr)); err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, addr)
	if err != nil {
		return err
	}

	digest, err := s.deliverCode(ctx, user, s.resetCodeMessage)
	if err != nil {
		return err
	}

	secret := Secret{
		Digest:    digest,
		ExpiresAt: s.now().Add(s.cfg.CodeTTL),
		Method:    ResetMethodCode,
	}
	if err := s.storage.SetPasswordReset(ctx, user.ID, secret); err != nil {
		return fmt.Errorf("failed to store password reset code: %w", err)
	}
	return nil
}

// VerifyForgotPasswordCode replaces the password when code matches the
// pending reset code. A pending reset link does not count as a code.
func (s *Service) VerifyForgotPasswordCode(ctx context.Context, addr, code, newPassword string) (err error) {
	defer func() { s.outcome(EventPasswordReset, err) }()

	addr = sanitizer.NormalizeEmail(addr)
	if err := apply(
		addressRules("email", addr),
		codeRules(code),
		[]validator.Rule{
			validator.Required("newPassword", newPassword),
			passwordRule("newPassword", newPassword),
		},
	); err != nil {
		return err
	}

	user, err := s.userByEmail(ctx, addr)
	if err != nil {
		return err
	}
	pending := user.PasswordReset
	if pending != nil && pending.Method != ResetMethodCode {
		pending = nil
	}
	if err := s.checkCode(pending, code); err != nil {
		return err
	}

	hash, err := s.hasher.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	if _, err := s.storage.ConsumePasswordReset(ctx, ConsumeReset{
		Email:        user.Email,
		Digest:       pending.Digest,
		Method:       ResetMethodCode,
		Now:          s.now(),
		PasswordHash: hash,
	}); err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrInvalidCode
		}
		return fmt.Errorf("failed to reset password: %w", err)
	}

	s.log(ctx, slog.LevelInfo, "password reset", logger.UserID(user.ID), logger.Event("reset_code"))
	return nil
}

func (s *Service) userByEmail(ctx context.Context, addr string) (*User, error) {
	user, err := s.storage.GetUserByEmail(ctx, addr)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// deliverCode generates a code, mails it with compose and returns its
// digest once the transport accepted the message for the user.
func (s *Service) deliverCode(ctx context.Context, user *User, compose func(*User, string) message) (string, error) {
	code, err := s.newCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	receipt, err := s.send(ctx, compose(user, code))
	if err != nil {
		s.log(ctx, slog.LevelError, "failed to send code", logger.UserID(user.ID), logger.Error(err))
		return "", errors.Join(ErrCodeNotDelivered, err)
	}
	if !receipt.AcceptedFor(user.Email) {
		s.log(ctx, slog.LevelWarn, "code was not accepted for recipient", logger.UserID(user.ID), logger.MessageID(receipt.MessageID))
		return "", ErrCodeNotDelivered
	}
	return s.hasher.HMAC(code), nil
}

func (s *Service) checkCode(pending *Secret, code string) error {
	switch {
	case pending == nil || pending.Digest == "":
		return ErrMissingCode
	case !s.hasher.VerifyHMAC(code, pending.Digest):
		return ErrInvalidCode
	case pending.ExpiredAt(s.now()):
		return ErrCodeExpired
	}
	return nil
}
