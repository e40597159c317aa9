package auth

import (
	"github.com/dmitrymomot/foodorder/pkg/validator"
)

const (
	minNameLen     = 3
	minPasswordLen = 6
)

var roles = []string{RoleUser, RoleAdmin}

// emailRules also enforces the configured domain allow-list.
func (s *Service) emailRules(field, email string) []validator.Rule {
	return append(addressRules(field, email), validator.EmailTLD(field, email, s.cfg.EmailTLDs))
}

// addressRules only checks the shape, for flows that address existing
// accounts whatever their domain.
func addressRules(field, email string) []validator.Rule {
	return []validator.Rule{
		validator.Required(field, email),
		validator.ValidEmail(field, email),
	}
}

func passwordRule(field, password string) validator.Rule {
	return validator.Password(field, password, minPasswordLen)
}

func codeRules(code string) []validator.Rule {
	return []validator.Rule{
		validator.Required("providedCode", code),
		validator.Digits("providedCode", code),
	}
}

func apply(groups ...[]validator.Rule) error {
	var rules []validator.Rule
	for _, g := range groups {
		rules = append(rules, g...)
	}
	return validator.Apply(rules...)
}
