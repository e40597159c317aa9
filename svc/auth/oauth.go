package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/foodorder/pkg/jwt"
	"github.com/dmitrymomot/foodorder/pkg/logger"
	"github.com/dmitrymomot/foodorder/pkg/sanitizer"
)

// Error markers appended to OAuth redirect targets.
const (
	RedirectErrAuthFailed    = "auth_failed"
	RedirectErrNotAuthorized = "not_authorized"
	RedirectErrServer        = "server_error"
)

// ProviderProfile is the identity asserted by an OAuth provider.
type ProviderProfile struct {
	ProviderUserID string
	Email          string
	EmailVerified  bool
	Name           string
	AvatarURL      string
}

// ProviderAdapter hides provider specifics from OAuthBridge.
type ProviderAdapter interface {
	// AuthURL returns the consent page URL carrying state.
	AuthURL(state string) (string, error)
	// ResolveProfile exchanges code and fetches the profile. An invalid or
	// already used code reports ErrInvalidOAuthCode.
	ResolveProfile(ctx context.Context, code string) (ProviderProfile, error)
}

// OAuthBridge maps provider identities onto local accounts.
//
// Nothing is stored between AuthURL and Callback: the sign-in intent
// travels in the state parameter as a short-lived signed token.
type OAuthBridge struct {
	svc          *Service
	adapter      ProviderAdapter
	verifiedOnly bool
}

// OAuthOption configures OAuthBridge.
type OAuthOption func(*OAuthBridge)

// WithVerifiedOnly rejects provider emails the provider did not verify.
func WithVerifiedOnly(verifiedOnly bool) OAuthOption {
	return func(b *OAuthBridge) {
		b.verifiedOnly = verifiedOnly
	}
}

// NewOAuthBridge creates the bridge. Verified provider emails are required
// unless WithVerifiedOnly(false) is passed.
func NewOAuthBridge(svc *Service, adapter ProviderAdapter, opts ...OAuthOption) *OAuthBridge {
	b := &OAuthBridge{svc: svc, adapter: adapter, verifiedOnly: true}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// AuthURL returns the provider consent URL. adminIntent selects the admin
// app as the final redirect target. returnPath, when a relative path, is
// appended to that target.
func (b *OAuthBridge) AuthURL(adminIntent bool, returnPath string) (string, error) {
	if b.adapter == nil {
		return "", ErrProviderNotSet
	}

	claims := jwt.Claims{
		Purpose:  jwt.PurposeOAuthState,
		Admin:    adminIntent,
		ReturnTo: safeReturnPath(returnPath),
	}
	claims.ID = uuid.NewString()

	state, err := b.svc.tokens.Issue(claims, b.svc.cfg.StateTTL)
	if err != nil {
		return "", fmt.Errorf("failed to sign oauth state: %w", err)
	}
	authURL, err := b.adapter.AuthURL(state)
	if err != nil {
		return "", fmt.Errorf("failed to build auth url: %w", err)
	}
	return authURL, nil
}

// Callback completes a provider sign-in and returns where to send the
// browser. The redirect is always set, even when err is not nil: err is
// for logging only and never reaches the redirect.
func (b *OAuthBridge) Callback(ctx context.Context, code, state string) (redirect string, err error) {
	defer func() { b.svc.outcome(EventOAuthLogin, err) }()

	cfg := b.svc.cfg
	if b.adapter == nil {
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrServer), ErrProviderNotSet
	}

	intent, err := b.svc.tokens.VerifyPurpose(state, jwt.PurposeOAuthState)
	if err != nil {
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), errors.Join(ErrInvalidState, err)
	}
	if strings.TrimSpace(code) == "" {
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), ErrInvalidOAuthCode
	}

	profile, err := b.adapter.ResolveProfile(ctx, code)
	if err != nil {
		if errors.Is(err, ErrInvalidOAuthCode) || errors.Is(err, ErrNoPrimaryEmail) {
			return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), err
		}
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrServer), fmt.Errorf("failed to resolve provider profile: %w", err)
	}

	profile.Email = sanitizer.NormalizeEmail(profile.Email)
	switch {
	case profile.Email == "":
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), ErrNoPrimaryEmail
	case profile.ProviderUserID == "":
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), ErrInvalidOAuthCode
	case b.verifiedOnly && !profile.EmailVerified:
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrAuthFailed), ErrUnverifiedEmail
	}

	user, err := b.findOrCreate(ctx, profile)
	if err != nil {
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrServer), err
	}

	if intent.Admin && !user.IsAdmin() {
		b.svc.log(ctx, slog.LevelWarn, "admin sign-in refused", logger.UserID(user.ID), logger.Role(user.Role))
		return withQuery(cfg.AdminAppURL, "", "error", RedirectErrNotAuthorized), ErrAdminNotPermitted
	}

	token, err := b.svc.issueSession(user, cfg.OAuthTokenTTL)
	if err != nil {
		return withQuery(cfg.UserAppURL, "", "error", RedirectErrServer), fmt.Errorf("failed to issue session token: %w", err)
	}

	target := cfg.UserAppURL
	if intent.Admin {
		target = cfg.AdminAppURL
	}
	return withQuery(target, intent.ReturnTo, "token", token), nil
}

// findOrCreate resolves profile to a local account, creating it on first
// sign-in and linking the provider id to an existing account otherwise.
// Linking never touches the password or the role.
func (b *OAuthBridge) findOrCreate(ctx context.Context, profile ProviderProfile) (*User, error) {
	s := b.svc

	user, err := s.storage.GetUserByEmail(ctx, profile.Email)
	switch {
	case err == nil:
		if user.GoogleID != "" {
			return user, nil
		}
		avatar := ""
		if user.Avatar == "" {
			avatar = profile.AvatarURL
		}
		linked, err := s.storage.LinkGoogle(ctx, user.ID, profile.ProviderUserID, avatar)
		if err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		s.log(ctx, slog.LevelInfo, "google account linked", logger.UserID(linked.ID))
		return linked, nil
	case !errors.Is(err, ErrUserNotFound):
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	name := sanitizer.SingleLine(profile.Name)
	if name == "" {
		name, _, _ = strings.Cut(profile.Email, "@")
	}
	user = &User{
		Name:     name,
		Email:    profile.Email,
		Role:     RoleUser,
		Provider: ProviderGoogle,
		GoogleID: profile.ProviderUserID,
		Avatar:   profile.AvatarURL,
		Verified: profile.EmailVerified,
	}
	if err := s.storage.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			// Lost a race with a concurrent first sign-in.
			return s.storage.GetUserByEmail(ctx, profile.Email)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	s.log(ctx, slog.LevelInfo, "user registered", logger.UserID(user.ID), logger.Event("google"))
	return user, nil
}

// safeReturnPath keeps only same-origin relative paths.
func safeReturnPath(p string) string {
	p = strings.TrimSpace(p)
	if !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") || strings.Contains(p, `\`) {
		return ""
	}
	u, err := url.Parse(p)
	if err != nil || u.IsAbs() || u.Host != "" {
		return ""
	}
	return u.Path
}

func withQuery(base, path, key, value string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	if path != "" {
		u.Path = strings.TrimSuffix(u.Path, "/") + path
	}
	q := u.Query()
	q.Set(key, value)
	u.RawQuery = q.Encode()
	return u.String()
}
