package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/observability/notify"
	"github.com/nftheater/admin-api/internal/observability/statsd"
	"github.com/nftheater/admin-api/internal/ports"
	"github.com/nftheater/admin-api/internal/service/failurenotifier"
)

// Persistent per-user keys mirrored into the key-value store on sign-in.
// Clients read these between sessions; all of them are cleared on sign-out.
const (
	kvKeyUserToken    = "user_token"
	kvKeyUserRole     = "user_role"
	kvKeyUserID       = "user_id"
	kvKeyAccount      = "account"
	kvKeyUsername     = "username"
	kvKeyRefreshToken = "refresh_token"
)

var persistentKeys = []string{
	kvKeyUserToken,
	kvKeyUserRole,
	kvKeyUserID,
	kvKeyAccount,
	kvKeyUsername,
	kvKeyRefreshToken,
}

// AuthServiceOptions groups dependencies for AuthService.
// Provider, Sessions, Profiles and KV are required; the rest are optional
// and degrade to no-ops when absent.
type AuthServiceOptions struct {
	Provider     ports.IdentityProvider
	Sessions     ports.SessionStore
	Profiles     ports.ProfileDirectory
	KV           ports.KeyValueStore
	RemoteConfig ports.RemoteConfig
	Metrics      statsd.Sink
	Notifier     *failurenotifier.Service
	Translate    domainauth.Translator
	Logger       *slog.Logger

	SessionTTL    time.Duration
	RememberMeTTL time.Duration
}

// AuthService orchestrates sign-in flows by coordinating the identity
// provider, the admin-user directory, session persistence, and the
// persistent key-value store.
type AuthService struct {
	provider     ports.IdentityProvider
	sessions     ports.SessionStore
	profiles     ports.ProfileDirectory
	kv           ports.KeyValueStore
	remoteConfig ports.RemoteConfig
	metrics      statsd.Sink
	notifier     *failurenotifier.Service
	translate    domainauth.Translator
	logger       *slog.Logger

	sessionTTL    time.Duration
	rememberMeTTL time.Duration
}

var errSessionExpired = errors.New("session expired")

// ErrSessionExpired reports whether the error marks an expired session.
func ErrSessionExpired(err error) bool {
	return errors.Is(err, errSessionExpired)
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default().With("component", "auth_service")
	}
	sessionTTL := opts.SessionTTL
	if sessionTTL <= 0 {
		sessionTTL = 12 * time.Hour
	}
	rememberMeTTL := opts.RememberMeTTL
	if rememberMeTTL < sessionTTL {
		rememberMeTTL = sessionTTL
	}
	return &AuthService{
		provider:      opts.Provider,
		sessions:      opts.Sessions,
		profiles:      opts.Profiles,
		kv:            opts.KV,
		remoteConfig:  opts.RemoteConfig,
		metrics:       opts.Metrics,
		notifier:      opts.Notifier,
		translate:     opts.Translate,
		logger:        logger,
		sessionTTL:    sessionTTL,
		rememberMeTTL: rememberMeTTL,
	}
}

// SignInResult contains the result of a completed sign-in.
type SignInResult struct {
	Session domainauth.Session
	Profile domainauth.Profile
	IDToken string
}

// SignIn authenticates the credentials against the identity provider,
// resolves the administrative profile, persists the per-user values, and
// creates a session. The remote-config refresh is best effort and never
// fails the sign-in.
func (s *AuthService) SignIn(ctx context.Context, input ports.SignInInput) (*SignInResult, error) {
	start := time.Now()
	if input.Email == "" {
		return nil, errors.New("email is required")
	}
	if input.Password == "" {
		return nil, errors.New("password is required")
	}

	principal, err := s.provider.SignIn(ctx, input)
	if err != nil {
		s.recordSignInFailure(ctx, input.Email, err)
		return nil, s.wrapAuthError(err)
	}

	s.refreshRemoteConfig(ctx)

	// The token is persisted before the profile lookup so a directory
	// outage still leaves a usable credential behind.
	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyUserToken), principal.IDToken)
	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyRefreshToken), principal.RefreshToken)

	profile, err := s.profiles.ProfileByUID(ctx, principal.UID)
	if err != nil {
		s.recordSignInFailure(ctx, input.Email, err)
		s.kv.Delete(ctx, s.userKey(principal.UID, kvKeyUserToken), s.userKey(principal.UID, kvKeyRefreshToken))
		return nil, s.profileError(err)
	}

	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyUserRole), string(profile.Role))
	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyUserID), principal.UID)
	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyAccount), profile.Account)
	s.kv.Set(ctx, s.userKey(principal.UID, kvKeyUsername), profile.AdminName)

	ttl := s.sessionTTL
	if input.RememberMe {
		ttl = s.rememberMeTTL
	}

	session := domainauth.Session{
		ID:         uuid.New().String(),
		UserID:     principal.UID,
		Email:      principal.Email,
		Username:   profile.AdminName,
		Account:    profile.Account,
		Role:       profile.Role,
		Privileges: profile.Privileges,
		RememberMe: input.RememberMe,
		ExpiresAt:  time.Now().Add(ttl),
	}
	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	s.count("auth.signin.success", map[string]string{"role": string(profile.Role)})
	s.timing("auth.signin.duration", time.Since(start))
	if s.notifier != nil {
		s.notifier.Reset(input.Email)
	}

	return &SignInResult{
		Session: session,
		Profile: profile,
		IDToken: principal.IDToken,
	}, nil
}

// SignOut ends the session. The session record, every persistent per-user
// key, and the provider-side refresh token are all cleared; each step is
// attempted regardless of earlier failures so no partial state survives.
func (s *AuthService) SignOut(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	session, getErr := s.sessions.Get(ctx, sessionID)

	var errs []error
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		errs = append(errs, fmt.Errorf("delete session: %w", err))
	}

	if getErr == nil && session.UserID != "" {
		refreshToken, _ := s.kv.Get(ctx, s.userKey(session.UserID, kvKeyRefreshToken))

		keys := make([]string, len(persistentKeys))
		for i, k := range persistentKeys {
			keys[i] = s.userKey(session.UserID, k)
		}
		s.kv.Delete(ctx, keys...)

		if refreshToken != "" {
			if err := s.provider.SignOut(ctx, refreshToken); err != nil {
				errs = append(errs, fmt.Errorf("revoke refresh token: %w", err))
			}
		}
	}

	s.count("auth.signout", nil)
	return errors.Join(errs...)
}

// UpdatePassword re-authenticates with the current password and applies the
// new one.
func (s *AuthService) UpdatePassword(ctx context.Context, input ports.UpdatePasswordInput) error {
	if input.Email == "" {
		return errors.New("email is required")
	}
	if input.CurrentPassword == "" || input.NewPassword == "" {
		return errors.New("current and new passwords are required")
	}
	if err := s.provider.UpdatePassword(ctx, input); err != nil {
		return s.wrapAuthError(err)
	}
	return nil
}

// RefreshPersistentToken exchanges the stored refresh token for a fresh ID
// token and writes it back to the key-value store.
func (s *AuthService) RefreshPersistentToken(ctx context.Context, uid string) (string, error) {
	if uid == "" {
		return "", errors.New("uid is required")
	}

	refreshToken, ok := s.kv.Get(ctx, s.userKey(uid, kvKeyRefreshToken))
	if !ok || refreshToken == "" {
		return "", s.wrapAuthError(
			domainauth.NewProviderError(domainauth.CodeUserTokenExpired, "no refresh token on record"),
		)
	}

	idToken, err := s.provider.RefreshIDToken(ctx, refreshToken)
	if err != nil {
		return "", s.wrapAuthError(err)
	}

	s.kv.Set(ctx, s.userKey(uid, kvKeyUserToken), idToken)
	return idToken, nil
}

// GetSession retrieves a session by ID, deleting it when expired.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	if time.Now().After(session.ExpiresAt) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Per-key accessors below are thin pass-throughs over the persistent store.
// Set never validates; Get reports absence as an empty string.

// UserToken returns the cached ID token for a user.
func (s *AuthService) UserToken(ctx context.Context, uid string) string {
	return s.persistentValue(ctx, uid, kvKeyUserToken)
}

// SetUserToken caches the ID token for a user.
func (s *AuthService) SetUserToken(ctx context.Context, uid, token string) {
	s.kv.Set(ctx, s.userKey(uid, kvKeyUserToken), token)
}

// UserRole returns the persisted role string for a user.
func (s *AuthService) UserRole(ctx context.Context, uid string) string {
	return s.persistentValue(ctx, uid, kvKeyUserRole)
}

// SetUserRole persists the role string for a user.
func (s *AuthService) SetUserRole(ctx context.Context, uid, role string) {
	s.kv.Set(ctx, s.userKey(uid, kvKeyUserRole), role)
}

// UserAccount returns the persisted account for a user.
func (s *AuthService) UserAccount(ctx context.Context, uid string) string {
	return s.persistentValue(ctx, uid, kvKeyAccount)
}

// SetUserAccount persists the account for a user.
func (s *AuthService) SetUserAccount(ctx context.Context, uid, account string) {
	s.kv.Set(ctx, s.userKey(uid, kvKeyAccount), account)
}

// Username returns the persisted display name for a user.
func (s *AuthService) Username(ctx context.Context, uid string) string {
	return s.persistentValue(ctx, uid, kvKeyUsername)
}

// SetUsername persists the display name for a user.
func (s *AuthService) SetUsername(ctx context.Context, uid, name string) {
	s.kv.Set(ctx, s.userKey(uid, kvKeyUsername), name)
}

func (s *AuthService) persistentValue(ctx context.Context, uid, key string) string {
	value, _ := s.kv.Get(ctx, s.userKey(uid, key))
	return value
}

// RoleDisplayName resolves the display label for a role. Unknown roles echo
// their raw value.
func (s *AuthService) RoleDisplayName(role domainauth.Role) string {
	return domainauth.RoleLabel(role, s.translate)
}

// RemoteConfigValue answers a feature flag from the current snapshot.
// Returns "" when remote config is not configured or the key is absent.
func (s *AuthService) RemoteConfigValue(key string) string {
	if s.remoteConfig == nil {
		return ""
	}
	return s.remoteConfig.Get(key)
}

// RefreshRemoteConfig forces a snapshot refresh. Used by the periodic
// refresher in bootstrap; sign-in calls the silent variant.
func (s *AuthService) RefreshRemoteConfig(ctx context.Context) error {
	if s.remoteConfig == nil {
		return nil
	}
	return s.remoteConfig.Fetch(ctx)
}

func (s *AuthService) refreshRemoteConfig(ctx context.Context) {
	if s.remoteConfig == nil {
		return
	}
	if err := s.remoteConfig.Fetch(ctx); err != nil {
		s.logger.WarnContext(ctx, "remote config refresh failed", "error", err)
	}
}

func (s *AuthService) recordSignInFailure(ctx context.Context, email string, err error) {
	code := ""
	var perr *domainauth.ProviderError
	if errors.As(err, &perr) {
		code = string(perr.Code)
	}
	s.count("auth.signin.failure", map[string]string{"code": code})
	if s.notifier != nil {
		s.notifier.RecordSignInFailure(ctx, notify.SignInFailurePayload{
			Email:      email,
			Reason:     err.Error(),
			Code:       code,
			OccurredAt: time.Now(),
		})
	}
}

func (s *AuthService) count(name string, tags map[string]string) {
	if s.metrics == nil {
		return
	}
	s.metrics.Count(name, 1, tags)
}

func (s *AuthService) timing(name string, d time.Duration) {
	if s.metrics == nil {
		return
	}
	s.metrics.Timing(name, d, nil)
}

// userKey scopes a persistent key to a user.
func (s *AuthService) userKey(uid, key string) string {
	return "user:" + uid + ":" + key
}
