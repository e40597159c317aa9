package jwt_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/foodorder/pkg/jwt"
)

func TestBearerExtractor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid", header: "Bearer abc.def", want: "abc.def"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "missing", header: "", wantErr: true},
		{name: "basic scheme", header: "Basic dXNlcg==", wantErr: true},
		{name: "empty token", header: "Bearer   ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			got, err := jwt.BearerExtractor(r)
			if tt.wantErr {
				assert.ErrorIs(t, err, jwt.ErrMissingToken)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestChainExtractors(t *testing.T) {
	t.Parallel()

	extract := jwt.ChainExtractors(jwt.BearerExtractor, jwt.CookieExtractor("jwt"))

	t.Run("header wins", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?token=q", nil)
		r.Header.Set("Authorization", "Bearer h")
		r.AddCookie(&http.Cookie{Name: "jwt", Value: "c"})
		got, err := extract(r)
		require.NoError(t, err)
		assert.Equal(t, "h", got)
	})

	t.Run("cookie fallback", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodGet, "/?token=q", nil)
		r.AddCookie(&http.Cookie{Name: "jwt", Value: "c"})
		got, err := extract(r)
		require.NoError(t, err)
		assert.Equal(t, "c", got)
	})

	t.Run("query is ignored", func(t *testing.T) {
		t.Parallel()
		_, err := extract(httptest.NewRequest(http.MethodGet, "/?token=q", nil))
		assert.ErrorIs(t, err, jwt.ErrMissingToken)
	})
}

func TestClaimsContext(t *testing.T) {
	t.Parallel()

	_, ok := jwt.GetClaims(context.Background())
	assert.False(t, ok)

	claims := &jwt.Claims{Role: "admin"}
	got, ok := jwt.GetClaims(jwt.SetClaims(context.Background(), claims))
	require.True(t, ok)
	assert.Same(t, claims, got)
}
