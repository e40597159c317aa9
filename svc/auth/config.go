package auth

import "time"

// Config holds auth settings. Session and OAuth token lifetimes differ by
// issuing flow.
type Config struct {
	SessionTTL    time.Duration `env:"SESSION_TOKEN_TTL" envDefault:"720h"`
	OAuthTokenTTL time.Duration `env:"OAUTH_TOKEN_TTL" envDefault:"168h"`
	CodeTTL       time.Duration `env:"AUTH_CODE_TTL" envDefault:"10m"`
	ResetTokenTTL time.Duration `env:"AUTH_RESET_TOKEN_TTL" envDefault:"10m"`
	StateTTL      time.Duration `env:"AUTH_OAUTH_STATE_TTL" envDefault:"10m"`

	// EmailTLDs restricts the top-level domains accepted at registration
	// and in recovery flows. Empty accepts any.
	EmailTLDs []string `env:"AUTH_EMAIL_TLDS" envSeparator:"," envDefault:"com,net"`

	AppName      string `env:"APP_NAME" envDefault:"FoodOrder"`
	ResetURL     string `env:"AUTH_RESET_URL" envDefault:"http://localhost:3000/reset-password"`
	UserAppURL   string `env:"USER_APP_URL" envDefault:"http://localhost:3000"`
	AdminAppURL  string `env:"ADMIN_APP_URL" envDefault:"http://localhost:3001"`
	SupportEmail string `env:"SUPPORT_EMAIL,required"`
}

// DefaultConfig returns the defaults of Config without reading the
// environment. Used in tests.
func DefaultConfig() Config {
	return Config{
		SessionTTL:    720 * time.Hour,
		OAuthTokenTTL: 168 * time.Hour,
		CodeTTL:       10 * time.Minute,
		ResetTokenTTL: 10 * time.Minute,
		StateTTL:      10 * time.Minute,
		EmailTLDs:     []string{"com", "net"},
		AppName:       "FoodOrder",
		ResetURL:      "http://localhost:3000/reset-password",
		UserAppURL:    "http://localhost:3000",
		AdminAppURL:   "http://localhost:3001",
		SupportEmail:  "support@example.com",
	}
}
