package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

func TestService_Register(t *testing.T) {
	t.Parallel()

	t.Run("creates a local user and issues a session", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(nil, auth.ErrUserNotFound).Once()
		f.storage.On("CreateUser", ctx, mock.AnythingOfType("*auth.User")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*auth.User).ID = testUserID
			}).
			Return(nil).Once()

		session, err := f.svc.Register(ctx, auth.RegisterInput{
			Name:     "  Jane   Doe ",
			Email:    " Jane@Example.com ",
			Password: testPassword,
		})
		require.NoError(t, err)

		assert.Equal(t, testUserID, session.User.ID)
		assert.Equal(t, "Jane Doe", session.User.Name)
		assert.Equal(t, testEmail, session.User.Email)
		assert.Equal(t, auth.RoleUser, session.User.Role)
		assert.Equal(t, auth.ProviderLocal, session.User.Provider)
		assert.False(t, session.User.Verified)
		assert.True(t, f.hasher.VerifyPassword(testPassword, session.User.PasswordHash))

		claims, err := f.tokens.VerifyPurpose(session.Token, jwt.PurposeSession)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.Subject)
		assert.Equal(t, auth.RoleUser, claims.Role)
		assert.Equal(t, testNow.Add(auth.DefaultConfig().SessionTTL).Unix(), claims.ExpiresAt.Unix())
		assert.Equal(t, []string{"register:success"}, *f.events)
	})

	t.Run("accepts admin role", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(nil, auth.ErrUserNotFound).Once()
		f.storage.On("CreateUser", ctx, mock.MatchedBy(func(u *auth.User) bool {
			return u.Role == auth.RoleAdmin
		})).Return(nil).Once()

		session, err := f.svc.Register(ctx, auth.RegisterInput{
			Name: "Jane Doe", Email: testEmail, Password: testPassword, Role: auth.RoleAdmin,
		})
		require.NoError(t, err)
		assert.True(t, session.User.IsAdmin())
	})

	t.Run("duplicate email", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(f.localUser(t), nil).Once()

		_, err := f.svc.Register(ctx, auth.RegisterInput{Name: "Jane Doe", Email: testEmail, Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
		assert.Equal(t, []string{"register:failure"}, *f.events)
	})

	t.Run("duplicate email detected by unique index", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(nil, auth.ErrUserNotFound).Once()
		f.storage.On("CreateUser", ctx, mock.Anything).Return(auth.ErrEmailTaken).Once()

		_, err := f.svc.Register(ctx, auth.RegisterInput{Name: "Jane Doe", Email: testEmail, Password: testPassword})
		assert.ErrorIs(t, err, auth.ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name  string
			in    auth.RegisterInput
			field string
		}{
			{"short name", auth.RegisterInput{Name: "Jo", Email: testEmail, Password: testPassword}, "name"},
			{"invalid email", auth.RegisterInput{Name: "Jane", Email: "jane@", Password: testPassword}, "email"},
			{"disallowed tld", auth.RegisterInput{Name: "Jane", Email: "jane@example.org", Password: testPassword}, "email"},
			{"weak password", auth.RegisterInput{Name: "Jane", Email: testEmail, Password: "secret1"}, "password"},
			{"symbols in password", auth.RegisterInput{Name: "Jane", Email: testEmail, Password: "Secret12!"}, "password"},
			{"unknown role", auth.RegisterInput{Name: "Jane", Email: testEmail, Password: testPassword, Role: "owner"}, "role"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()
				f := newFixture(t)

				_, err := f.svc.Register(context.Background(), tt.in)
				require.Error(t, err)
				assert.True(t, validator.ExtractValidationErrors(err).Has(tt.field), err.Error())
			})
		}
	})
}

func TestService_Login(t *testing.T) {
	t.Parallel()

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		user := f.localUser(t)

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(user, nil).Once()

		session, err := f.svc.Login(ctx, "JANE@example.com", testPassword)
		require.NoError(t, err)
		assert.Equal(t, user, session.User)

		claims, err := f.tokens.VerifyPurpose(session.Token, jwt.PurposeSession)
		require.NoError(t, err)
		assert.Equal(t, testUserID, claims.Subject)
		assert.Equal(t, testEmail, claims.Email)
		assert.Equal(t, []string{"login:success"}, *f.events)
	})

	t.Run("unknown email and wrong password look the same", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()

		f.storage.On("GetUserByEmail", ctx, "ghost@example.com").Return(nil, auth.ErrUserNotFound).Once()
		f.storage.On("GetUserByEmail", ctx, testEmail).Return(f.localUser(t), nil).Once()

		_, errUnknown := f.svc.Login(ctx, "ghost@example.com", testPassword)
		_, errWrong := f.svc.Login(ctx, testEmail, "Wrong1234")

		assert.ErrorIs(t, errUnknown, auth.ErrInvalidCredentials)
		assert.ErrorIs(t, errWrong, auth.ErrInvalidCredentials)
		assert.Equal(t, errUnknown.Error(), errWrong.Error())
	})

	t.Run("google account without password", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		user := &auth.User{ID: testUserID, Email: testEmail, Role: auth.RoleUser, Provider: auth.ProviderGoogle}

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(user, nil).Once()

		_, err := f.svc.Login(ctx, testEmail, testPassword)
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("storage failure is not reported as invalid credentials", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)
		ctx := context.Background()
		boom := errors.New("connection reset")

		f.storage.On("GetUserByEmail", ctx, testEmail).Return(nil, boom).Once()

		_, err := f.svc.Login(ctx, testEmail, testPassword)
		assert.ErrorIs(t, err, boom)
		assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("validation", func(t *testing.T) {
		t.Parallel()
		f := newFixture(t)

		_, err := f.svc.Login(context.Background(), "not-an-email", "")
		ve := validator.ExtractValidationErrors(err)
		assert.True(t, ve.Has("email"))
		assert.True(t, ve.Has("password"))
	})
}
