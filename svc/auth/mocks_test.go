package auth_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

// MockStorage is a mock implementation of auth.Storage.
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateUser(ctx context.Context, user *auth.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(ctx context.Context, id string) (*auth.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) GetUserByEmail(ctx context.Context, addr string) (*auth.User, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) ListUsers(ctx context.Context) ([]*auth.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*auth.User), args.Error(1)
}

func (m *MockStorage) UpdateUser(ctx context.Context, id string, upd auth.UserUpdate) (*auth.User, error) {
	args := m.Called(ctx, id, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockStorage) SetVerification(ctx context.Context, id string, secret auth.Secret) error {
	args := m.Called(ctx, id, secret)
	return args.Error(0)
}

func (m *MockStorage) SetPasswordReset(ctx context.Context, id string, secret auth.Secret) error {
	args := m.Called(ctx, id, secret)
	return args.Error(0)
}

func (m *MockStorage) MarkVerified(ctx context.Context, id, digest string) error {
	args := m.Called(ctx, id, digest)
	return args.Error(0)
}

func (m *MockStorage) ConsumePasswordReset(ctx context.Context, req auth.ConsumeReset) (*auth.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

func (m *MockStorage) LinkGoogle(ctx context.Context, id, googleID, avatar string) (*auth.User, error) {
	args := m.Called(ctx, id, googleID, avatar)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.User), args.Error(1)
}

// MockMailer is a mock implementation of email.EmailSender.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendEmail(ctx context.Context, params email.SendEmailParams) (email.Receipt, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(email.Receipt), args.Error(1)
}

// MockProvider is a mock implementation of auth.ProviderAdapter.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) AuthURL(state string) (string, error) {
	args := m.Called(state)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) ResolveProfile(ctx context.Context, code string) (auth.ProviderProfile, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(auth.ProviderProfile), args.Error(1)
}
