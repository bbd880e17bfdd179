package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
)

// SignInInput carries inputs for an email/password sign-in.
type SignInInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// UpdatePasswordInput groups parameters for a credential change.
// The current password re-authenticates the user before the change.
type UpdatePasswordInput struct {
	Email           string
	CurrentPassword string
	NewPassword     string
}

// TokenClaims are the verified claims of an ID token.
type TokenClaims struct {
	Subject string
	Email   string
	Expiry  int64
}

// IdentityProvider authenticates users against the identity backend.
type IdentityProvider interface {
	// SignIn verifies the credentials and returns the authenticated principal
	// with fresh ID and refresh tokens.
	SignIn(ctx context.Context, in SignInInput) (domainauth.Principal, error)

	// SignOut revokes the refresh token, ending the provider-side session.
	SignOut(ctx context.Context, refreshToken string) error

	// UpdatePassword re-authenticates and changes the user's credential.
	UpdatePassword(ctx context.Context, in UpdatePasswordInput) error

	// RefreshIDToken exchanges a refresh token for a new ID token.
	RefreshIDToken(ctx context.Context, refreshToken string) (string, error)

	// VerifyIDToken validates a raw ID token and returns its claims.
	VerifyIDToken(ctx context.Context, rawToken string) (TokenClaims, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// KeyValueStore is a small persistent KV surface for per-user values such as
// the cached ID token. Implementations degrade silently: Get reports absence
// rather than failing, and Set failures are logged but never surfaced.
type KeyValueStore interface {
	Set(ctx context.Context, key, value string)
	Get(ctx context.Context, key string) (string, bool)
	Delete(ctx context.Context, keys ...string)
}

// ProfileDirectory resolves the administrative profile for a signed-in
// principal.
type ProfileDirectory interface {
	ProfileByUID(ctx context.Context, uid string) (domainauth.Profile, error)
}

// RemoteConfig exposes best-effort feature flags. Fetch refreshes the local
// snapshot; Get answers from the snapshot and returns "" for absent keys.
type RemoteConfig interface {
	Fetch(ctx context.Context) error
	Get(key string) string
}
