package devauth

// Package devauth provides a simple, config-driven IdentityProvider for local
// development. It accepts a single configured email/password pair and mints
// opaque local tokens.

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/ports"
)

// Config controls the dev auth provider behavior.
type Config struct {
	Email         string
	Password      string
	UserID        string
	DisplayName   string
	TokenDuration time.Duration // default 1h when zero
}

// Provider implements ports.IdentityProvider for local development.
type Provider struct {
	cfg Config

	mu       sync.Mutex
	password string
	tokens   map[string]string // refresh token -> uid
}

// NewProvider constructs a dev auth provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.Email == "" {
		return nil, errors.New("dev auth: Email is required")
	}
	if cfg.Password == "" {
		return nil, errors.New("dev auth: Password is required")
	}
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.TokenDuration == 0 {
		cfg.TokenDuration = time.Hour
	}
	return &Provider{
		cfg:      cfg,
		password: cfg.Password,
		tokens:   make(map[string]string),
	}, nil
}

func (p *Provider) SignIn(_ context.Context, in ports.SignInInput) (domainauth.Principal, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if in.Email != p.cfg.Email {
		return domainauth.Principal{}, domainauth.NewProviderError(domainauth.CodeUserNotFound, "no dev user with that email")
	}
	if in.Password != p.password {
		return domainauth.Principal{}, domainauth.NewProviderError(domainauth.CodeWrongPassword, "dev password mismatch")
	}

	idToken, err := randomString(32)
	if err != nil {
		return domainauth.Principal{}, fmt.Errorf("generate id token: %w", err)
	}
	refreshToken, err := randomString(32)
	if err != nil {
		return domainauth.Principal{}, fmt.Errorf("generate refresh token: %w", err)
	}
	p.tokens[refreshToken] = p.cfg.UserID

	now := time.Now()
	return domainauth.Principal{
		UID:          p.cfg.UserID,
		Email:        p.cfg.Email,
		DisplayName:  p.cfg.DisplayName,
		ProviderID:   "password",
		CreatedAt:    now,
		LastSignInAt: now,
		IDToken:      idToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(p.cfg.TokenDuration),
	}, nil
}

func (p *Provider) SignOut(_ context.Context, refreshToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.tokens, refreshToken)
	return nil
}

func (p *Provider) UpdatePassword(_ context.Context, in ports.UpdatePasswordInput) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if in.Email != p.cfg.Email {
		return domainauth.NewProviderError(domainauth.CodeUserMismatch, "no dev user with that email")
	}
	if in.CurrentPassword != p.password {
		return domainauth.NewProviderError(domainauth.CodeWrongPassword, "dev password mismatch")
	}
	if len(in.NewPassword) < 6 {
		return domainauth.NewProviderError(domainauth.CodeWeakPassword, "password too short")
	}
	p.password = in.NewPassword
	return nil
}

func (p *Provider) RefreshIDToken(_ context.Context, refreshToken string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.tokens[refreshToken]; !ok {
		return "", domainauth.NewProviderError(domainauth.CodeUserTokenExpired, "unknown refresh token")
	}
	return randomString(32)
}

func (p *Provider) VerifyIDToken(_ context.Context, rawToken string) (ports.TokenClaims, error) {
	if rawToken == "" {
		return ports.TokenClaims{}, domainauth.NewProviderError(domainauth.CodeUserTokenExpired, "empty token")
	}
	// Dev tokens are opaque; any non-empty token verifies as the dev user.
	return ports.TokenClaims{
		Subject: p.cfg.UserID,
		Email:   p.cfg.Email,
		Expiry:  time.Now().Add(p.cfg.TokenDuration).Unix(),
	}, nil
}

func randomString(n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	// Compute number of random bytes needed to produce at least n base64 URL chars
	bLen := (n*3 + 3) / 4
	b := make([]byte, bLen)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	s := base64.RawURLEncoding.EncodeToString(b)
	if len(s) < n {
		// pad
		extra := make([]byte, 1)
		if _, err := rand.Read(extra); err != nil {
			return "", err
		}
		s += base64.RawURLEncoding.EncodeToString(extra)
	}
	return s[:n], nil
}
