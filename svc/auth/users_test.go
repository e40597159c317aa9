package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

func ptr[T any](v T) *T { return &v }

func TestService_ChangePassword(t *testing.T) {
	t.Parallel()

	t.Run("verified user with the right password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		user := f.localUser(t)
		user.Verified = true

		f.storage.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()
		f.storage.On("UpdateUser", ctx, testUserID, mock.MatchedBy(func(upd auth.UserUpdate) bool {
			return upd.PasswordHash != nil && f.hasher.VerifyPassword(newPassword, *upd.PasswordHash) &&
				upd.Provider != nil && *upd.Provider == auth.ProviderLocal &&
				upd.Name == nil && upd.Role == nil
		})).Return(user, nil).Once()

		require.NoError(t, f.svc.ChangePassword(ctx, testUserID, testPassword, newPassword))
		assert.Equal(t, []string{"password_changed:success"}, *f.events)
	})

	t.Run("unverified user", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByID", ctx, testUserID).Return(f.localUser(t), nil).Once()

		assert.ErrorIs(t, f.svc.ChangePassword(ctx, testUserID, testPassword, newPassword), auth.ErrNotVerified)
	})

	t.Run("wrong old password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		user := f.localUser(t)
		user.Verified = true

		f.storage.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()

		assert.ErrorIs(t, f.svc.ChangePassword(ctx, testUserID, "Wrong1234", newPassword), auth.ErrInvalidCredentials)
	})
}

func TestService_GetUser(t *testing.T) {
	t.Parallel()

	t.Run("malformed id is not found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.GetUser(context.Background(), "nope")
		assert.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		user := f.localUser(t)

		f.storage.On("GetUserByID", ctx, testUserID).Return(user, nil).Once()

		got, err := f.svc.Me(ctx, testUserID)
		require.NoError(t, err)
		assert.Equal(t, user, got)
	})
}

func TestService_UpdateUser(t *testing.T) {
	t.Parallel()

	self := &auth.User{ID: testUserID, Role: auth.RoleUser}
	admin := &auth.User{ID: testAdminID, Role: auth.RoleAdmin}

	t.Run("self update", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		updated := &auth.User{ID: testUserID, Name: "Jane Roe"}

		f.storage.On("UpdateUser", ctx, testUserID, auth.UserUpdate{
			Name:             ptr("Jane Roe"),
			BiometricEnabled: ptr(true),
		}).Return(updated, nil).Once()

		got, err := f.svc.UpdateUser(ctx, self, testUserID, auth.UserPatch{
			Name:             ptr(" Jane  Roe "),
			BiometricEnabled: ptr(true),
		})
		require.NoError(t, err)
		assert.Equal(t, updated, got)
	})

	t.Run("password is hashed and makes the account local", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("UpdateUser", ctx, testUserID, mock.MatchedBy(func(upd auth.UserUpdate) bool {
			return upd.PasswordHash != nil && f.hasher.VerifyPassword(newPassword, *upd.PasswordHash) &&
				*upd.Provider == auth.ProviderLocal
		})).Return(self, nil).Once()

		_, err := f.svc.UpdateUser(ctx, self, testUserID, auth.UserPatch{Password: ptr(newPassword)})
		require.NoError(t, err)
	})

	t.Run("other user is forbidden", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.UpdateUser(context.Background(), self, testAdminID, auth.UserPatch{Name: ptr("Other")})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("role change requires admin", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.UpdateUser(context.Background(), self, testUserID, auth.UserPatch{Role: ptr(auth.RoleAdmin)})
		assert.ErrorIs(t, err, auth.ErrForbidden)
	})

	t.Run("admin updates anyone", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("UpdateUser", ctx, testUserID, auth.UserUpdate{Role: ptr(auth.RoleAdmin)}).Return(self, nil).Once()

		_, err := f.svc.UpdateUser(ctx, admin, testUserID, auth.UserPatch{Role: ptr(auth.RoleAdmin)})
		require.NoError(t, err)
	})

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.UpdateUser(context.Background(), self, testUserID, auth.UserPatch{})
		assert.ErrorIs(t, err, auth.ErrNothingToUpdate)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.UpdateUser(context.Background(), nil, testUserID, auth.UserPatch{Name: ptr("Jane")})
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})
}

func TestService_DeleteUser(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.storage.On("DeleteUser", ctx, testUserID).Return(nil).Once()
	f.storage.On("DeleteUser", ctx, testAdminID).Return(auth.ErrUserNotFound).Once()

	assert.NoError(t, f.svc.DeleteUser(ctx, testUserID))
	assert.ErrorIs(t, f.svc.DeleteUser(ctx, testAdminID), auth.ErrUserNotFound)
}

func TestService_ContactMessage(t *testing.T) {
	t.Parallel()

	t.Run("relays to the support inbox", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.mailer.On("SendEmail", ctx, mock.MatchedBy(func(p email.SendEmailParams) bool {
			return p.SendTo == "support@example.com" &&
				p.Subject == "[Contact] Late delivery" &&
				p.Tag == "contact"
		})).Return(accepted("support@example.com"), nil).Once()

		require.NoError(t, f.svc.ContactMessage(ctx, auth.ContactInput{
			Name:    "Jane",
			Email:   testEmail,
			Subject: "Late delivery",
			Message: "My order took two hours.",
		}))
	})

	t.Run("missing message", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		err := f.svc.ContactMessage(context.Background(), auth.ContactInput{Name: "Jane", Email: testEmail, Subject: "Hi"})
		assert.Error(t, err)
	})
}
