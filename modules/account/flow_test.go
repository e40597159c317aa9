package account_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/foodorder/handler"
	"github.com/dmitrymomot/foodorder/modules/account"
	"github.com/dmitrymomot/foodorder/pkg/hasher"
	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) user(args mock.Arguments) (*auth.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, email string) (*auth.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockStorage) ListUsers(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auth.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	return m.user(m.Called(ctx, id, upd))
}

func (m *MockStorage) DeleteUser(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockStorage) SetVerification(ctx context.Context, id string, secret auth.Secret) error {
	return m.Called(ctx, id, secret).Error(0)
}

func (m *MockStorage) SetPasswordReset(ctx context.Context, id string, secret auth.Secret) error {
	return m.Called(ctx, id, secret).Error(0)
}

func (m *MockStorage) MarkVerified(ctx context.Context, id, digest string) error {
	return m.Called(ctx, id, digest).Error(0)
}

func (m *MockStorage) ConsumePasswordReset(ctx context.Context, req auth.ConsumeReset) (*auth.User, error) {
	return m.user(m.Called(ctx, req))
}

func (m *MockStorage) LinkGoogle(ctx context.Context, id, googleID, avatar string) (*auth.User, error) {
	return m.user(m.Called(ctx, id, googleID, avatar))
}

// newAuthServer wires the account module to the real auth service and guard.
func newAuthServer(t *testing.T) (http.Handler, *MockStorage) {
	t.Helper()

	h, err := hasher.New("test-hmac-secret", hasher.WithCost(bcrypt.MinCost))
	require.NoError(t, err)
	tokens, err := jwt.New(jwt.Config{Secret: "test-jwt-secret", Issuer: "foodorder"})
	require.NoError(t, err)

	storage := &MockStorage{}
	t.Cleanup(func() { storage.AssertExpectations(t) })

	svc := auth.NewService(auth.DefaultConfig(), storage, h, tokens, nil)
	m := account.New(
		account.Config{CookieTTL: time.Hour},
		svc,
		auth.NewGuard(tokens, storage),
		handler.NewErrorHandler(logger.Noop(), handler.ErrorHandlerConfig{}),
	)
	return m.Handle(), storage
}

func withToken(h http.Handler, method, target, body, token string) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func sessionData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	data, ok := decode(t, rec).Data.(map[string]any)
	require.True(t, ok, rec.Body.String())
	return data
}

func TestAccountLifecycle(t *testing.T) {
	t.Parallel()

	const (
		janeID  = "64b7f0c2a1b2c3d4e5f60711"
		adminID = "64b7f0c2a1b2c3d4e5f60712"
	)
	h, storage := newAuthServer(t)

	byEmail := func(addr string) any {
		return mock.MatchedBy(func(u *auth.User) bool { return u.Email == addr })
	}

	// Sign-up stores the account and hands back a session.
	var jane, root *auth.User
	storage.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(nil, auth.ErrUserNotFound).Once()
	storage.On("CreateUser", mock.Anything, byEmail("jane@example.com")).
		Run(func(args mock.Arguments) {
			jane = args.Get(1).(*auth.User)
			jane.ID = janeID
		}).
		Return(nil).Once()

	rec := withToken(h, http.MethodPost, "/register", `{"name":"Jane","email":"Jane@Example.com","password":"Secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	registered := sessionData(t, rec)
	assert.Equal(t, janeID, registered["id"])
	assert.Equal(t, "jane@example.com", registered["email"])
	assert.NotEmpty(t, registered["token"])

	storage.On("GetUserByEmail", mock.Anything, "root@example.com").Return(nil, auth.ErrUserNotFound).Once()
	storage.On("CreateUser", mock.Anything, byEmail("root@example.com")).
		Run(func(args mock.Arguments) {
			root = args.Get(1).(*auth.User)
			root.ID = adminID
		}).
		Return(nil).Once()

	rec = withToken(h, http.MethodPost, "/register", `{"name":"Root","email":"root@example.com","password":"Secret123","role":"admin"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	adminToken, _ := sessionData(t, rec)["token"].(string)
	require.NotEmpty(t, adminToken)

	// Sign-in checks the stored digest.
	storage.On("GetUserByEmail", mock.Anything, "jane@example.com").Return(jane, nil).Once()

	rec = withToken(h, http.MethodPost, "/login", `{"email":"jane@example.com","password":"Secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := sessionData(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	// The guard and the handler both load the account behind the token.
	storage.On("GetUserByID", mock.Anything, janeID).Return(jane, nil).Twice()

	rec = withToken(h, http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	me := sessionData(t, rec)
	assert.Equal(t, registered["id"], me["id"])
	assert.Equal(t, registered["email"], me["email"])
	assert.Equal(t, auth.RoleUser, me["role"])

	storage.On("GetUserByID", mock.Anything, adminID).Return(root, nil).Once()
	storage.On("DeleteUser", mock.Anything, janeID).Return(nil).Once()

	rec = withToken(h, http.MethodDelete, "/"+janeID, "", adminToken)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	// The token is still signed and unexpired, but its account is gone.
	storage.On("GetUserByID", mock.Anything, janeID).Return(nil, auth.ErrUserNotFound).Once()

	rec = withToken(h, http.MethodGet, "/me", "", token)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, handler.ErrUnauthorized.Key, env.Error.Code)
	assert.Equal(t, "Not authorized, user not found", env.Error.Message)
}
