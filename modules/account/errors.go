package account

import (
	"errors"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

// mapError turns auth errors into client-facing HTTP errors. Anything it
// does not know is returned as is and reported as internal.
func mapError(err error) error {
	switch {
	case errors.Is(err, auth.ErrUserNotFound):
		return handler.ErrNotFound.WithMessage("User not found")
	case errors.Is(err, auth.ErrEmailTaken):
		return handler.ErrConflict.WithMessage("User already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return handler.ErrBadRequest.WithMessage("Invalid email or password")
	case errors.Is(err, auth.ErrAlreadyVerified):
		return handler.ErrBadRequest.WithMessage("User is already verified")
	case errors.Is(err, auth.ErrNotVerified):
		return handler.ErrForbidden.WithMessage("Please verify your email first")
	case errors.Is(err, auth.ErrMissingCode):
		return handler.ErrBadRequest.WithMessage("No code found, please request a new one")
	case errors.Is(err, auth.ErrInvalidCode):
		return handler.ErrBadRequest.WithMessage("Invalid code")
	case errors.Is(err, auth.ErrCodeExpired):
		return handler.ErrBadRequest.WithMessage("Code has expired")
	case errors.Is(err, auth.ErrInvalidOrExpired):
		return handler.ErrBadRequest.WithMessage("Token is invalid or has expired")
	case errors.Is(err, auth.ErrNothingToUpdate):
		return handler.ErrBadRequest.WithMessage("At least one field must be provided for update")
	case errors.Is(err, auth.ErrForbidden):
		return handler.ErrForbidden.WithMessage("Not authorized to perform this action")
	case errors.Is(err, auth.ErrUnauthorized):
		return handler.ErrUnauthorized.WithMessage("Not authorized")
	case errors.Is(err, auth.ErrCodeNotDelivered), errors.Is(err, auth.ErrMailDeliveryFailure):
		return handler.ErrServiceUnavailable.WithMessage("Failed to send email, please try again")
	}
	return err
}
