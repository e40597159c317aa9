package auth

import "context"

// Storage is the credential store. Lookups report ErrUserNotFound and
// inserts or unique-index violations report ErrEmailTaken.
type Storage interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByID(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, id string, upd UserUpdate) (*User, error)
	DeleteUser(ctx context.Context, id string) error

	// SetVerification replaces any pending verification code.
	SetVerification(ctx context.Context, id string, secret Secret) error
	// SetPasswordReset replaces any pending reset, link or code.
	SetPasswordReset(ctx context.Context, id string, secret Secret) error

	// MarkVerified flips verified to true and clears the pending code in
	// one write, provided the stored digest still equals digest.
	// ErrUserNotFound means nothing matched.
	MarkVerified(ctx context.Context, id, digest string) error
	// ConsumePasswordReset replaces the password and clears the pending
	// reset in one write. ErrUserNotFound means nothing matched.
	ConsumePasswordReset(ctx context.Context, req ConsumeReset) (*User, error)

	// LinkGoogle sets the Google subject id on an account that has none,
	// and the avatar when avatar is non-empty.
	LinkGoogle(ctx context.Context, id, googleID, avatar string) (*User, error)
}
