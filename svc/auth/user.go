package auth

import "time"

// Roles.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Account providers. A password digest exists only for ProviderLocal.
const (
	ProviderLocal  = "local"
	ProviderGoogle = "google"
)

// Reset methods recorded on a pending password reset.
const (
	ResetMethodLink = "link"
	ResetMethodCode = "code"
)

// User is an account. Secrets never leave the server: they are excluded
// from JSON.
type User struct {
	ID               string    `bson:"_id" json:"id"`
	Name             string    `bson:"name" json:"name"`
	Email            string    `bson:"email" json:"email"`
	Role             string    `bson:"role" json:"role"`
	PasswordHash     string    `bson:"password_hash,omitempty" json:"-"`
	Provider         string    `bson:"provider" json:"provider"`
	GoogleID         string    `bson:"google_id,omitempty" json:"-"`
	Avatar           string    `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Verified         bool      `bson:"verified" json:"verified"`
	BiometricEnabled bool      `bson:"biometric_enabled" json:"biometric_enabled"`
	Verification     *Secret   `bson:"verification,omitempty" json:"-"`
	PasswordReset    *Secret   `bson:"password_reset,omitempty" json:"-"`
	CreatedAt        time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time `bson:"updated_at" json:"updated_at"`
}

// IsAdmin reports whether the user has the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Secret is the stored half of a one-time code or reset token: only its
// digest and expiry are kept.
type Secret struct {
	Digest    string    `bson:"digest"`
	ExpiresAt time.Time `bson:"expires_at"`
	// Method is set on password resets only.
	Method string `bson:"method,omitempty"`
}

// ExpiredAt reports whether the secret is no longer valid at now.
func (s *Secret) ExpiredAt(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Session is the result of a successful sign-in.
type Session struct {
	User  *User
	Token string
}

// UserUpdate lists the fields to overwrite. Nil fields are left untouched.
type UserUpdate struct {
	Name             *string
	Avatar           *string
	Role             *string
	BiometricEnabled *bool
	PasswordHash     *string
	Provider         *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.Name == nil && u.Avatar == nil && u.Role == nil &&
		u.BiometricEnabled == nil && u.PasswordHash == nil && u.Provider == nil
}

// ConsumeReset describes a pending password reset to redeem. The store
// applies it only when the user's pending reset has the same digest and
// method and expires after Now.
type ConsumeReset struct {
	Email        string
	Digest       string
	Method       string
	Now          time.Time
	PasswordHash string
}
