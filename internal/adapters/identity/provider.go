package identity

// Package identity implements ports.IdentityProvider against the hosted
// identity REST backend (email/password credential API plus an OIDC issuer
// for ID token verification and refresh).

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/ports"
	"golang.org/x/oauth2"
)

// Provider implements the IdentityProvider interface over the REST API.
type Provider struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client

	oauthConfig *oauth2.Config
	verifier    *gooidc.IDTokenVerifier
}

// ProviderConfig holds configuration for the identity provider.
type ProviderConfig struct {
	BaseURL    string
	APIKey     string
	IssuerURL  string
	ClientID   string
	TokenURL   string
	Timeout    time.Duration
	HTTPClient *http.Client // Optional, defaults to a timeout-bounded client
}

// NewProvider creates a new identity provider. IssuerURL is optional; without
// it VerifyIDToken reports an error and the API bearer path is unavailable.
func NewProvider(ctx context.Context, config ProviderConfig) (*Provider, error) {
	if config.BaseURL == "" {
		return nil, errors.New("base URL is required")
	}
	if config.APIKey == "" {
		return nil, errors.New("API key is required")
	}
	if config.TokenURL == "" {
		return nil, errors.New("token URL is required")
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	p := &Provider{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		apiKey:     config.APIKey,
		httpClient: httpClient,
		oauthConfig: &oauth2.Config{
			ClientID: config.ClientID,
			Endpoint: oauth2.Endpoint{TokenURL: config.TokenURL},
		},
	}

	if config.IssuerURL != "" {
		octx := context.WithValue(ctx, oauth2.HTTPClient, httpClient)
		op, err := gooidc.NewProvider(octx, strings.TrimSuffix(config.IssuerURL, "/"))
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		p.verifier = op.Verifier(&gooidc.Config{ClientID: config.ClientID})
	}

	return p, nil
}

// signInResponse is the backend payload for a successful credential check.
type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	DisplayName  string `json:"displayName"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

// accountInfo is one user record from the accounts:lookup endpoint.
type accountInfo struct {
	LocalID       string `json:"localId"`
	Email         string `json:"email"`
	DisplayName   string `json:"displayName"`
	PhoneNumber   string `json:"phoneNumber"`
	PhotoURL      string `json:"photoUrl"`
	CreatedAt     string `json:"createdAt"`
	LastLoginAt   string `json:"lastLoginAt"`
	ProviderInfos []struct {
		ProviderID string `json:"providerId"`
	} `json:"providerUserInfo"`
}

func (p *Provider) SignIn(ctx context.Context, in ports.SignInInput) (domainauth.Principal, error) {
	if in.Email == "" || in.Password == "" {
		return domainauth.Principal{}, domainauth.NewProviderError(domainauth.CodeInvalidCredential, "missing email or password")
	}

	var resp signInResponse
	err := p.post(ctx, "accounts:signInWithPassword", map[string]any{
		"email":             in.Email,
		"password":          in.Password,
		"returnSecureToken": true,
	}, &resp)
	if err != nil {
		return domainauth.Principal{}, err
	}

	principal := domainauth.Principal{
		UID:          resp.LocalID,
		Email:        resp.Email,
		DisplayName:  resp.DisplayName,
		IDToken:      resp.IDToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    expiryFromSeconds(resp.ExpiresIn),
	}

	// Lookup fills the profile attributes the sign-in payload omits. A
	// failure here degrades the principal, not the sign-in.
	if info, lookupErr := p.lookup(ctx, resp.IDToken); lookupErr == nil {
		principal.PhoneNumber = info.PhoneNumber
		principal.PhotoURL = info.PhotoURL
		principal.CreatedAt = timeFromMillis(info.CreatedAt)
		principal.LastSignInAt = timeFromMillis(info.LastLoginAt)
		if len(info.ProviderInfos) > 0 {
			principal.ProviderID = info.ProviderInfos[0].ProviderID
		}
	}

	return principal, nil
}

func (p *Provider) lookup(ctx context.Context, idToken string) (accountInfo, error) {
	var resp struct {
		Users []accountInfo `json:"users"`
	}
	if err := p.post(ctx, "accounts:lookup", map[string]any{"idToken": idToken}, &resp); err != nil {
		return accountInfo{}, err
	}
	if len(resp.Users) == 0 {
		return accountInfo{}, domainauth.NewProviderError(domainauth.CodeUserNotFound, "account lookup returned no users")
	}
	return resp.Users[0], nil
}

func (p *Provider) SignOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return p.post(ctx, "accounts:revokeToken", map[string]any{"token": refreshToken}, nil)
}

func (p *Provider) UpdatePassword(ctx context.Context, in ports.UpdatePasswordInput) error {
	// Re-authenticate with the current password first; a stale credential
	// surfaces as auth/wrong-password from the backend.
	principal, err := p.SignIn(ctx, ports.SignInInput{Email: in.Email, Password: in.CurrentPassword})
	if err != nil {
		return err
	}

	return p.post(ctx, "accounts:update", map[string]any{
		"idToken":           principal.IDToken,
		"password":          in.NewPassword,
		"returnSecureToken": false,
	}, nil)
}

func (p *Provider) RefreshIDToken(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", domainauth.NewProviderError(domainauth.CodeUserTokenExpired, "missing refresh token")
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	src := p.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) {
			return "", translateBackendError(string(retrieveErr.Body))
		}
		return "", fmt.Errorf("refresh token: %w", err)
	}

	// The token endpoint returns the ID token alongside the access token.
	if raw, ok := tok.Extra("id_token").(string); ok && raw != "" {
		return raw, nil
	}
	return tok.AccessToken, nil
}

func (p *Provider) VerifyIDToken(ctx context.Context, rawToken string) (ports.TokenClaims, error) {
	if p.verifier == nil {
		return ports.TokenClaims{}, errors.New("id token verification not configured")
	}
	idTok, err := p.verifier.Verify(ctx, rawToken)
	if err != nil {
		return ports.TokenClaims{}, domainauth.NewProviderError(domainauth.CodeUserTokenExpired, err.Error())
	}

	var claims struct {
		Email string `json:"email"`
	}
	if claimsErr := idTok.Claims(&claims); claimsErr != nil {
		return ports.TokenClaims{}, fmt.Errorf("parse id token claims: %w", claimsErr)
	}

	return ports.TokenClaims{
		Subject: idTok.Subject,
		Email:   claims.Email,
		Expiry:  idTok.Expiry.Unix(),
	}, nil
}

// post issues a JSON request against the given API action and decodes the
// response into out when non-nil. Backend error payloads are translated into
// ProviderError values.
func (p *Provider) post(ctx context.Context, action string, body map[string]any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	url := p.baseURL + "/" + action + "?key=" + p.apiKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("identity request: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return translateBackendError(string(data))
	}

	if out != nil {
		if decodeErr := json.Unmarshal(data, out); decodeErr != nil {
			return fmt.Errorf("decode response: %w", decodeErr)
		}
	}
	return nil
}

func expiryFromSeconds(s string) time.Time {
	secs, err := strconv.Atoi(s)
	if err != nil || secs <= 0 {
		secs = 3600
	}
	return time.Now().Add(time.Duration(secs) * time.Second)
}

func timeFromMillis(s string) time.Time {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil || ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
