package cart_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/dmitrymomot/foodorder/handler"
	cartmod "github.com/dmitrymomot/foodorder/modules/cart"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/validator"
	"github.com/dmitrymomot/foodorder/svc/auth"
	"github.com/dmitrymomot/foodorder/svc/auth/authtest"
	"github.com/dmitrymomot/foodorder/svc/cart"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Add(ctx context.Context, userID, foodID string, qty int) (*cart.Cart, error) {
	args := m.Called(ctx, userID, foodID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockService) Get(ctx context.Context, userID string) (*cart.Cart, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, userID, foodID string, qty int) (*cart.Cart, error) {
	args := m.Called(ctx, userID, foodID, qty)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

func (m *MockService) Remove(ctx context.Context, userID, foodID string) (*cart.Cart, error) {
	args := m.Called(ctx, userID, foodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.Cart), args.Error(1)
}

const foodID = "64b7f0c2a1b2c3d4e5f60711"

var member = &auth.User{ID: "64b7f0c2a1b2c3d4e5f60701", Role: auth.RoleUser}

func newServer(t *testing.T) (http.Handler, *MockService) {
	t.Helper()
	svc := &MockService{}
	t.Cleanup(func() { svc.AssertExpectations(t) })
	m := cartmod.New(svc, authtest.NewGuard(member).Protect,
		handler.NewErrorHandler(logger.Noop(), handler.ErrorHandlerConfig{}))
	return m.Handle(), svc
}

func do(h http.Handler, method, target, body string, user *auth.User) *httptest.ResponseRecorder {
	r := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}
	if user != nil {
		authtest.Authorize(r, user)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

func TestCartRoutes(t *testing.T) {
	t.Parallel()

	t.Run("requires a session", func(t *testing.T) {
		t.Parallel()
		h, _ := newServer(t)

		assert.Equal(t, http.StatusUnauthorized, do(h, http.MethodGet, "/", "", nil).Code)
	})

	t.Run("add", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Add", mock.Anything, member.ID, foodID, 2).
			Return(&cart.Cart{UserID: member.ID, Items: []cart.Item{{FoodID: foodID, Quantity: 2}}}, nil).Once()

		rec := do(h, http.MethodPost, "/add", `{"foodId":"`+foodID+`","quantity":2}`, member)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("add with bad quantity", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Add", mock.Anything, member.ID, foodID, 0).
			Return(nil, validator.NewError("quantity", "must be positive")).Once()

		rec := do(h, http.MethodPost, "/add", `{"foodId":"`+foodID+`"}`, member)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("get", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Get", mock.Anything, member.ID).Return(&cart.Cart{UserID: member.ID, Items: []cart.Item{}}, nil).Once()

		rec := do(h, http.MethodGet, "/", "", member)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("update missing line", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Update", mock.Anything, member.ID, foodID, 3).Return(nil, cart.ErrItemNotFound).Once()

		rec := do(h, http.MethodPatch, "/update", `{"foodId":"`+foodID+`","quantity":3}`, member)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("remove by query", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Remove", mock.Anything, member.ID, foodID).Return(&cart.Cart{UserID: member.ID}, nil).Once()

		rec := do(h, http.MethodDelete, "/remove?foodId="+foodID, "", member)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("remove without cart", func(t *testing.T) {
		t.Parallel()
		h, svc := newServer(t)

		svc.On("Remove", mock.Anything, member.ID, foodID).Return(nil, cart.ErrCartNotFound).Once()

		rec := do(h, http.MethodDelete, "/remove", `{"foodId":"`+foodID+`"}`, member)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
