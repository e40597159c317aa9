package hasher_test

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/foodorder/pkg/hasher"
)

func newHasher(t *testing.T) *hasher.Hasher {
	t.Helper()
	h, err := hasher.New("test-hmac-secret", hasher.WithCost(bcrypt.MinCost))
	require.NoError(t, err)
	return h
}

func TestNew(t *testing.T) {
	t.Parallel()

	_, err := hasher.New("")
	assert.ErrorIs(t, err, hasher.ErrEmptyHMACSecret)
}

func TestHasher_Password(t *testing.T) {
	t.Parallel()

	h := newHasher(t)

	digest, err := h.HashPassword("Secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret123", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)

	assert.True(t, h.VerifyPassword("Secret123", digest))
	assert.False(t, h.VerifyPassword("secret123", digest))
	assert.False(t, h.VerifyPassword("Secret123", ""))
	assert.False(t, h.VerifyPassword("Secret123", "not-a-bcrypt-digest"))
}

func TestHasher_DefaultCost(t *testing.T) {
	t.Parallel()

	h, err := hasher.New("k", hasher.WithCost(99))
	require.NoError(t, err)

	digest, err := h.HashPassword("Secret123")
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, hasher.DefaultCost, cost)
}

func TestHasher_HMAC(t *testing.T) {
	t.Parallel()

	h := newHasher(t)
	other, err := hasher.New("another-secret")
	require.NoError(t, err)

	digest := h.HMAC(123456)
	assert.Len(t, digest, 64)
	assert.Equal(t, digest, h.HMAC("123456"), "numbers and their string form share a digest")
	assert.NotEqual(t, digest, other.HMAC(123456))
	assert.True(t, h.VerifyHMAC("123456", digest))
	assert.False(t, h.VerifyHMAC("654321", digest))
}

func TestSHA256(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824",
		hasher.SHA256("hello"),
	)
}

func TestEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, hasher.Equal("abc", "abc"))
	assert.False(t, hasher.Equal("abc", "abd"))
	assert.False(t, hasher.Equal("", ""))
}

func TestRandomToken(t *testing.T) {
	t.Parallel()

	a, err := hasher.RandomToken(32)
	require.NoError(t, err)
	b, err := hasher.RandomToken(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
}

func TestNumericCode(t *testing.T) {
	t.Parallel()

	for range 200 {
		code, err := hasher.NumericCode()
		require.NoError(t, err)
		require.Len(t, code, 6)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, 100000)
		assert.LessOrEqual(t, n, 999999)
	}
}
