// Package hasher turns secrets into storable digests.
//
// Passwords go through bcrypt. One-time verification codes are keyed with
// HMAC-SHA256 and password-reset link tokens are stored as plain SHA-256 hex,
// so only the user ever sees the plaintext value.
package hasher

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for new password digests.
const DefaultCost = 10

// Hasher hashes and verifies secrets. The zero value is not usable, use New.
type Hasher struct {
	cost       int
	hmacSecret []byte
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithCost overrides the bcrypt cost. Values outside bcrypt's range are ignored.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		if cost >= bcrypt.MinCost && cost <= bcrypt.MaxCost {
			h.cost = cost
		}
	}
}

// New creates a Hasher keyed with hmacSecret for verification-code digests.
func New(hmacSecret string, opts ...Option) (*Hasher, error) {
	if hmacSecret == "" {
		return nil, ErrEmptyHMACSecret
	}
	h := &Hasher{cost: DefaultCost, hmacSecret: []byte(hmacSecret)}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

// HashPassword returns a bcrypt digest of plain.
func (h *Hasher) HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", errors.Join(ErrHashFailed, err)
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches the bcrypt digest.
func (h *Hasher) VerifyPassword(plain, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}

// HMAC returns the hex HMAC-SHA256 of value's string form under the hasher key.
func (h *Hasher) HMAC(value any) string {
	mac := hmac.New(sha256.New, h.hmacSecret)
	mac.Write([]byte(fmt.Sprint(value)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyHMAC compares value against a digest produced by HMAC in constant time.
func (h *Hasher) VerifyHMAC(value any, digest string) bool {
	return Equal(h.HMAC(value), digest)
}

// SHA256 returns the hex SHA-256 of value.
func SHA256(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}

// Equal compares two digests in constant time.
func Equal(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// RandomToken returns n random bytes hex encoded.
func RandomToken(n int) (string, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Join(ErrRandomFailed, err)
	}
	return hex.EncodeToString(buf), nil
}

// NumericCode returns a uniformly random six digit code in [100000, 999999].
func NumericCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", errors.Join(ErrRandomFailed, err)
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
