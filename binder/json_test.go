package binder_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/binder"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func jsonRequest(body string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/users/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json; charset=utf-8")
	return r
}

func TestJSON(t *testing.T) {
	t.Parallel()

	bind := binder.JSON()

	t.Run("valid body", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		require.NoError(t, bind(jsonRequest(`{"email":"a@b.com","password":"Secret1"}`), &req))
		assert.Equal(t, loginRequest{Email: "a@b.com", Password: "Secret1"}, req)
	})

	t.Run("empty body binds nothing", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		r := httptest.NewRequest(http.MethodPost, "/", nil)
		require.NoError(t, bind(r, &req))
		assert.Empty(t, req.Email)
	})

	t.Run("form body is not applicable", func(t *testing.T) {
		t.Parallel()
		var req loginRequest
		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("email=a%40b.com"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		assert.ErrorIs(t, bind(r, &req), binder.ErrBinderNotApplicable)
	})

	tests := []struct {
		name    string
		request func() *http.Request
		wantErr error
	}{
		{
			name:    "malformed",
			request: func() *http.Request { return jsonRequest(`{"email":`) },
			wantErr: binder.ErrInvalidJSON,
		},
		{
			name:    "wrong type",
			request: func() *http.Request { return jsonRequest(`{"email":42}`) },
			wantErr: binder.ErrInvalidJSON,
		},
		{
			name:    "unknown field",
			request: func() *http.Request { return jsonRequest(`{"admin":true}`) },
			wantErr: binder.ErrInvalidJSON,
		},
		{
			name:    "trailing data",
			request: func() *http.Request { return jsonRequest(`{"email":"a@b.com"} {}`) },
			wantErr: binder.ErrInvalidJSON,
		},
		{
			name: "missing content type",
			request: func() *http.Request {
				return httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
			},
			wantErr: binder.ErrMissingContentType,
		},
		{
			name: "wrong content type",
			request: func() *http.Request {
				r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
				r.Header.Set("Content-Type", "text/plain")
				return r
			},
			wantErr: binder.ErrUnsupportedMediaType,
		},
		{
			name: "too large",
			request: func() *http.Request {
				return jsonRequest(`{"email":"` + strings.Repeat("a", binder.DefaultMaxJSONBytes) + `"}`)
			},
			wantErr: binder.ErrRequestTooLarge,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var req loginRequest
			err := bind(tt.request(), &req)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.True(t, binder.IsBindError(err))
		})
	}
}
