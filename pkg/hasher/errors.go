package hasher

import "errors"

var (
	ErrHashFailed      = errors.New("hasher: failed to hash secret")
	ErrRandomFailed    = errors.New("hasher: failed to read random bytes")
	ErrEmptyHMACSecret = errors.New("hasher: empty HMAC secret")
)
