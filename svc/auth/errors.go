package auth

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAlreadyVerified    = errors.New("user is already verified")
	ErrNotVerified        = errors.New("user is not verified")
	ErrForbidden          = errors.New("not allowed to perform this action")
	ErrUnauthorized       = errors.New("not authorized")
	ErrNothingToUpdate    = errors.New("nothing to update")
)

// Recovery flow errors, reported in this order of precedence.
var (
	ErrMissingCode         = errors.New("no pending code")
	ErrInvalidCode         = errors.New("invalid code")
	ErrCodeExpired         = errors.New("code has expired")
	ErrInvalidOrExpired    = errors.New("token is invalid or has expired")
	ErrCodeNotDelivered    = errors.New("code could not be delivered")
	ErrMailDeliveryFailure = errors.New("failed to send email")
)

// OAuth errors.
var (
	ErrInvalidState      = errors.New("invalid oauth state")
	ErrInvalidOAuthCode  = errors.New("invalid oauth code")
	ErrNoPrimaryEmail    = errors.New("no email from provider")
	ErrUnverifiedEmail   = errors.New("email not verified by provider")
	ErrProviderNotSet    = errors.New("oauth provider is not configured")
	ErrAdminNotPermitted = errors.New("account is not an administrator")
)
