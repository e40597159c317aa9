package jwt

import (
	"errors"
	"fmt"
)

var (
	ErrMissingSigningKey = errors.New("jwt: missing signing key")
	ErrInvalidToken      = errors.New("jwt: invalid token")
	// ErrExpiredToken also matches ErrInvalidToken with errors.Is.
	ErrExpiredToken = fmt.Errorf("%w: token is expired", ErrInvalidToken)
	// ErrWrongPurpose also matches ErrInvalidToken with errors.Is.
	ErrWrongPurpose = fmt.Errorf("%w: unexpected token purpose", ErrInvalidToken)
	ErrMissingToken = errors.New("jwt: token not found in request")
)
