package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/foodorder/pkg/validator"
)

func check(r validator.Rule) bool { return r.Check() }

func TestStringRules(t *testing.T) {
	t.Parallel()

	assert.True(t, check(validator.Required("f", "x")))
	assert.False(t, check(validator.Required("f", "  \t")))

	assert.True(t, check(validator.MinLen("f", "héé", 3)), "counts runes")
	assert.False(t, check(validator.MinLen("f", "ab", 3)))
	assert.True(t, check(validator.MaxLen("f", "abc", 3)))
	assert.False(t, check(validator.MaxLen("f", "abcd", 3)))
}

func TestValidEmail(t *testing.T) {
	t.Parallel()

	valid := []string{"jane@example.com", "j.doe+tag@mail.example.net", "a@b.co"}
	invalid := []string{"", "jane", "jane@", "@example.com", "jane@example", "Jane <jane@example.com>", "jane@.com", "jane@example..com"}

	for _, v := range valid {
		assert.True(t, check(validator.ValidEmail("email", v)), v)
	}
	for _, v := range invalid {
		assert.False(t, check(validator.ValidEmail("email", v)), v)
	}
}

func TestEmailTLD(t *testing.T) {
	t.Parallel()

	allowed := []string{"com", "net"}
	assert.True(t, check(validator.EmailTLD("email", "jane@example.com", allowed)))
	assert.True(t, check(validator.EmailTLD("email", "jane@example.NET", allowed)))
	assert.False(t, check(validator.EmailTLD("email", "jane@example.org", allowed)))
	assert.False(t, check(validator.EmailTLD("email", "jane", allowed)))
	assert.True(t, check(validator.EmailTLD("email", "jane@example.org", nil)))
}

func TestPassword(t *testing.T) {
	t.Parallel()

	tests := []struct {
		value string
		ok    bool
	}{
		{"Secret1", true},
		{"Abc123", true},
		{"Ab1", false},
		{"secret123", false},
		{"SECRET123", false},
		{"SecretPass", false},
		{"Secret 123", false},
		{"Secret123!", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, check(validator.Password("password", tt.value, 6)), tt.value)
	}
}

func TestDigitsAndIDs(t *testing.T) {
	t.Parallel()

	assert.True(t, check(validator.Digits("code", "123456")))
	assert.False(t, check(validator.Digits("code", "12a456")))
	assert.False(t, check(validator.Digits("code", "")))

	assert.True(t, check(validator.ObjectID("id", "65f0c0ffee0123456789abcd")))
	assert.False(t, check(validator.ObjectID("id", "65f0c0ffee")))
	assert.False(t, check(validator.ObjectID("id", "zzzzzzzzzzzzzzzzzzzzzzzz")))
}

func TestNumericRules(t *testing.T) {
	t.Parallel()

	assert.True(t, check(validator.Positive("price", 0.5)))
	assert.False(t, check(validator.Positive("price", 0.0)))
	assert.False(t, check(validator.Positive("price", -3)))

	assert.True(t, check(validator.Between("rating", 1, 1, 5)))
	assert.True(t, check(validator.Between("rating", 5, 1, 5)))
	assert.False(t, check(validator.Between("rating", 6, 1, 5)))
	assert.False(t, check(validator.Between("rating", 0, 1, 5)))
}

func TestInList(t *testing.T) {
	t.Parallel()

	roles := []string{"user", "admin"}
	assert.True(t, check(validator.InList("role", "admin", roles)))
	assert.False(t, check(validator.InList("role", "root", roles)))
	assert.True(t, check(validator.RequiredFile("image", true)))
	assert.False(t, check(validator.RequiredFile("image", false)))
}
