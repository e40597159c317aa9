package validator

import (
	"fmt"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

func Required(field, value string) Rule {
	return Rule{
		Check: func() bool { return strings.TrimSpace(value) != "" },
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

// MinLen counts runes, not bytes.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) >= min },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at least %d characters long", min)},
	}
}

func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool { return utf8.RuneCountInString(value) <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters long", max)},
	}
}

// ValidEmail accepts bare addresses with a dotted domain; display-name forms
// like "Jane <jane@example.com>" are rejected.
func ValidEmail(field, value string) Rule {
	return Rule{
		Check: func() bool {
			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}
			local, domain, ok := strings.Cut(value, "@")
			if !ok || local == "" || len(value) > 254 {
				return false
			}
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			return !strings.Contains(domain, "..")
		},
		Error: ValidationError{Field: field, Message: "must be a valid email address"},
	}
}

// EmailTLD restricts the top-level domain of an address to allowed, e.g.
// []string{"com", "net"}. An empty allow-list accepts any TLD.
func EmailTLD(field, value string, allowed []string) Rule {
	return Rule{
		Check: func() bool {
			if len(allowed) == 0 {
				return true
			}
			at := strings.LastIndex(value, "@")
			dot := strings.LastIndex(value, ".")
			if at < 0 || dot < at {
				return false
			}
			tld := strings.ToLower(value[dot+1:])
			return slices.ContainsFunc(allowed, func(a string) bool { return strings.EqualFold(a, tld) })
		},
		Error: ValidationError{
			Field:   field,
			Message: fmt.Sprintf("email domain must end with one of: %s", strings.Join(allowed, ", ")),
		},
	}
}

var alnumRegex = regexp.MustCompile(`^[a-zA-Z0-9]+$`)

// Password requires at least min ASCII letters or digits, with at least one
// lowercase letter, one uppercase letter and one digit.
func Password(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			if len(value) < min || !alnumRegex.MatchString(value) {
				return false
			}
			var lower, upper, digit bool
			for _, r := range value {
				switch {
				case unicode.IsLower(r):
					lower = true
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsDigit(r):
					digit = true
				}
			}
			return lower && upper && digit
		},
		Error: ValidationError{
			Field: field,
			Message: fmt.Sprintf(
				"must be at least %d letters or digits and contain an uppercase letter, a lowercase letter and a number", min),
		},
	}
}

var digitsRegex = regexp.MustCompile(`^[0-9]+$`)

// Digits accepts a non-empty string of ASCII digits.
func Digits(field, value string) Rule {
	return Rule{
		Check: func() bool { return digitsRegex.MatchString(value) },
		Error: ValidationError{Field: field, Message: "must be a number"},
	}
}

var objectIDRegex = regexp.MustCompile(`^[0-9a-fA-F]{24}$`)

// ObjectID accepts a 24 character hex identifier.
func ObjectID(field, value string) Rule {
	return Rule{
		Check: func() bool { return objectIDRegex.MatchString(value) },
		Error: ValidationError{Field: field, Message: "must be a valid identifier"},
	}
}

func Positive[T Numeric](field string, value T) Rule {
	var zero T
	return Rule{
		Check: func() bool { return value > zero },
		Error: ValidationError{Field: field, Message: "must be a positive number"},
	}
}

// Between checks min <= value <= max.
func Between[T Numeric](field string, value, min, max T) Rule {
	return Rule{
		Check: func() bool { return value >= min && value <= max },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be between %v and %v", min, max)},
	}
}

func InList[T comparable](field string, value T, allowed []T) Rule {
	return Rule{
		Check: func() bool { return slices.Contains(allowed, value) },
		Error: ValidationError{Field: field, Message: fmt.Sprintf("must be one of: %v", allowed)},
	}
}

// RequiredFile fails when present is false. Used for mandatory uploads.
func RequiredFile(field string, present bool) Rule {
	return Rule{
		Check: func() bool { return present },
		Error: ValidationError{Field: field, Message: "file is required"},
	}
}
