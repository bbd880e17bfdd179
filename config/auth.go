package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModePassword uses the hosted identity backend (email/password REST API).
	AuthModePassword AuthMode = "password"
	// AuthModeMock uses mock/dev authentication (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "password", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: password, mock)", v)
	}
}

// IdentityConfig contains the hosted identity backend configuration.
// The backend exposes a REST credential API plus an OIDC discovery
// document used for ID token verification and refresh.
type IdentityConfig struct {
	// BaseURL is the root of the identity REST API
	// (e.g., "https://identitytoolkit.example.com/v1").
	BaseURL string `env:"BASE_URL"`

	// APIKey authenticates this backend against the identity API.
	APIKey string `env:"API_KEY"`

	// IssuerURL is the OIDC issuer used to verify ID tokens
	// (e.g., "https://securetoken.example.com/nftheater").
	IssuerURL string `env:"ISSUER_URL"`

	// ClientID is the audience claim expected on ID tokens.
	ClientID string `env:"CLIENT_ID" envDefault:"nftheater"`

	// TokenURL is the refresh-token exchange endpoint.
	TokenURL string `env:"TOKEN_URL"`

	// Timeout bounds each identity API call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// DevAuthConfig controls mock/dev authentication identity.
// Used when AUTH_MODE=mock for development and testing.
type DevAuthConfig struct {
	Email      string   `env:"EMAIL"       envDefault:"dev@nftheater.example"`
	Password   string   `env:"PASSWORD"    envDefault:"dev-password"`
	UserID     string   `env:"USER_ID"     envDefault:"dev-user"`
	AdminName  string   `env:"ADMIN_NAME"  envDefault:"Dev Admin"`
	Account    string   `env:"ACCOUNT"     envDefault:"nftheater"`
	Role       string   `env:"ROLE"        envDefault:"SUPER_ADMIN"`
	Privileges []string `env:"PRIVILEGES"  envDefault:"ALL"          envSeparator:";"`
}

// SessionConfig controls server-side session lifetimes.
type SessionConfig struct {
	// TTL is the session lifetime when "remember me" is not requested.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// RememberMeTTL is the session lifetime for remembered sign-ins.
	RememberMeTTL time.Duration `env:"REMEMBER_ME_TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to session lifetimes.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.RememberMeTTL < s.TTL {
		s.RememberMeTTL = s.TTL
	}
}

// RemoteConfigConfig controls the best-effort feature flag fetch.
// The fetch never blocks sign-in; failures are logged and ignored.
type RemoteConfigConfig struct {
	Enabled bool          `env:"ENABLED" envDefault:"false"`
	URL     string        `env:"URL"`
	Timeout time.Duration `env:"TIMEOUT" envDefault:"5s"`

	// RefreshInterval is how often the background refresher re-fetches
	// the feature-flag document.
	RefreshInterval time.Duration `env:"REFRESH_INTERVAL" envDefault:"5m"`
}

func (r *RemoteConfigConfig) sanitize() {
	r.URL = strings.TrimSpace(r.URL)
	if r.URL == "" {
		r.Enabled = false
	}
	if r.Timeout <= 0 {
		r.Timeout = 5 * time.Second
	}
	if r.RefreshInterval <= 0 {
		r.RefreshInterval = 5 * time.Minute
	}
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which identity provider to use.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"password"`

	// Identity backend configuration (used when Mode=password).
	Identity IdentityConfig `envPrefix:"IDENTITY_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`

	// Session lifetimes.
	Session SessionConfig `envPrefix:"SESSION_"`

	// RemoteConfig fetch settings.
	RemoteConfig RemoteConfigConfig `envPrefix:"REMOTE_CONFIG_"`
}

// Sanitize applies guardrails to authentication configuration.
func (a *AuthConfig) Sanitize() {
	a.Session.Sanitize()
	a.RemoteConfig.sanitize()
}
