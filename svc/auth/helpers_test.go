package auth_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/foodorder/pkg/email"
	"github.com/dmitrymomot/foodorder/pkg/hasher"
	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/svc/auth"
)

const (
	testUserID   = "64b7f0c2a1b2c3d4e5f60718"
	testAdminID  = "64b7f0c2a1b2c3d4e5f60719"
	testEmail    = "jane@example.com"
	testPassword = "Secret123"
	testCode     = "123456"
	testToken    = "0f0e0d0c0b0a09080706050403020100"
)

var testNow = time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc     *auth.Service
	storage *MockStorage
	mailer  *MockMailer
	hasher  *hasher.Hasher
	tokens  *jwt.Service
	events  *[]string
}

func newFixture(t *testing.T, opts ...auth.Option) fixture {
	t.Helper()

	h, err := hasher.New("test-hmac-secret", hasher.WithCost(bcrypt.MinCost))
	require.NoError(t, err)
	tokens, err := jwt.New(jwt.Config{Secret: "test-jwt-secret", Issuer: "foodorder"}, jwt.WithClock(func() time.Time { return testNow }))
	require.NoError(t, err)

	events := &[]string{}
	storage := &MockStorage{}
	mailer := &MockMailer{}

	base := []auth.Option{
		auth.WithClock(func() time.Time { return testNow }),
		auth.WithSecretGenerators(
			func() (string, error) { return testToken, nil },
			func() (string, error) { return testCode, nil },
		),
		auth.WithEventRecorder(func(event, outcome string) {
			*events = append(*events, event+":"+outcome)
		}),
	}
	svc := auth.NewService(auth.DefaultConfig(), storage, h, tokens, mailer, append(base, opts...)...)

	t.Cleanup(func() {
		storage.AssertExpectations(t)
		mailer.AssertExpectations(t)
	})

	return fixture{svc: svc, storage: storage, mailer: mailer, hasher: h, tokens: tokens, events: events}
}

func (f fixture) passwordHash(t *testing.T, plain string) string {
	t.Helper()
	digest, err := f.hasher.HashPassword(plain)
	require.NoError(t, err)
	return digest
}

func (f fixture) localUser(t *testing.T) *auth.User {
	t.Helper()
	return &auth.User{
		ID:           testUserID,
		Name:         "Jane Doe",
		Email:        testEmail,
		Role:         auth.RoleUser,
		PasswordHash: f.passwordHash(t, testPassword),
		Provider:     auth.ProviderLocal,
	}
}

func accepted(addr string) email.Receipt {
	return email.Receipt{Accepted: []string{addr}, MessageID: "msg-1"}
}

func sentTo(addr, tag string) any {
	return mock.MatchedBy(func(p email.SendEmailParams) bool {
		return p.SendTo == addr && p.Tag == tag && p.BodyHTML != "" && p.BodyText != ""
	})
}
