package service

import (
	"context"
	"errors"
	"testing"
	"time"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	apperrors "github.com/nftheater/admin-api/internal/errors"
	mockauth "github.com/nftheater/admin-api/internal/mocks/auth"
	"github.com/nftheater/admin-api/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixture struct {
	provider     *mockauth.FakeIdentityProvider
	sessions     *mockauth.MemorySessionStore
	kv           *mockauth.MemoryKeyValueStore
	profiles     *mockauth.StaticProfileDirectory
	remoteConfig *mockauth.StaticRemoteConfig
	svc          *AuthService
}

func newAuthFixture(t *testing.T, mutate func(*AuthServiceOptions)) *authFixture {
	t.Helper()

	f := &authFixture{
		provider: mockauth.NewFakeIdentityProvider(),
		sessions: mockauth.NewMemorySessionStore(),
		kv:       mockauth.NewMemoryKeyValueStore(),
		remoteConfig: &mockauth.StaticRemoteConfig{
			Values: map[string]string{"maintenance": "false"},
		},
	}
	f.profiles = mockauth.NewStaticProfileDirectory(domainauth.Profile{
		UserID:     f.provider.UID,
		Email:      f.provider.Email,
		AdminName:  "Admin One",
		Account:    "BKK-01",
		Role:       domainauth.RoleNetflixAdmin,
		Privileges: []domainauth.Privilege{domainauth.PrivilegeNetflix},
	})

	opts := AuthServiceOptions{
		Provider:      f.provider,
		Sessions:      f.sessions,
		Profiles:      f.profiles,
		KV:            f.kv,
		RemoteConfig:  f.remoteConfig,
		SessionTTL:    12 * time.Hour,
		RememberMeTTL: 720 * time.Hour,
	}
	if mutate != nil {
		mutate(&opts)
	}
	f.svc = NewAuthService(opts)
	return f
}

func (f *authFixture) signIn(t *testing.T, rememberMe bool) *SignInResult {
	t.Helper()
	res, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Email:      f.provider.Email,
		Password:   f.provider.Password,
		RememberMe: rememberMe,
	})
	require.NoError(t, err)
	return res
}

func TestAuthService_SignIn_Success(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	res := f.signIn(t, false)

	assert.NotEmpty(t, res.Session.ID)
	assert.Equal(t, f.provider.UID, res.Session.UserID)
	assert.Equal(t, "Admin One", res.Session.Username)
	assert.Equal(t, "BKK-01", res.Session.Account)
	assert.Equal(t, domainauth.RoleNetflixAdmin, res.Session.Role)
	assert.Equal(t, []domainauth.Privilege{domainauth.PrivilegeNetflix}, res.Session.Privileges)
	assert.Equal(t, "id-token-1", res.IDToken)

	// Session persisted and retrievable.
	stored, err := f.svc.GetSession(ctx, res.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, res.Session.ID, stored.ID)

	// Persistent values mirrored to the KV store.
	for key, want := range map[string]string{
		"user_token":    "id-token-1",
		"refresh_token": "refresh-token-1",
		"user_role":     "NETFLIX_ADMIN",
		"user_id":       f.provider.UID,
		"account":       "BKK-01",
		"username":      "Admin One",
	} {
		got, ok := f.kv.Get(ctx, "user:"+f.provider.UID+":"+key)
		require.True(t, ok, "missing key %s", key)
		assert.Equal(t, want, got, "key %s", key)
	}

	// Remote config was refreshed once as part of the flow.
	assert.Equal(t, 1, f.remoteConfig.FetchCalls)
}

func TestAuthService_SignIn_RememberMeExtendsTTL(t *testing.T) {
	f := newAuthFixture(t, nil)

	short := f.signIn(t, false)
	long := f.signIn(t, true)

	assert.True(t, long.Session.RememberMe)
	assert.True(t, long.Session.ExpiresAt.After(short.Session.ExpiresAt.Add(24*time.Hour)))
}

func TestAuthService_SignIn_WrongPassword(t *testing.T) {
	f := newAuthFixture(t, nil)

	_, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Email:    f.provider.Email,
		Password: "wrong",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "The password is incorrect.", appErr.Message)

	var perr *domainauth.ProviderError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, domainauth.CodeWrongPassword, perr.Code)

	assert.Equal(t, 0, f.sessions.Len())
	assert.Equal(t, 0, f.kv.Len())
}

func TestAuthService_SignIn_MissingCredentials(t *testing.T) {
	f := newAuthFixture(t, nil)

	_, err := f.svc.SignIn(context.Background(), ports.SignInInput{Password: "x"})
	require.Error(t, err)
	_, err = f.svc.SignIn(context.Background(), ports.SignInInput{Email: "x@y.z"})
	require.Error(t, err)
	assert.Equal(t, 0, f.provider.SignInCalls)
}

func TestAuthService_SignIn_ProfileNotFound(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.profiles.Profiles = map[string]domainauth.Profile{}

	_, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Email:    f.provider.Email,
		Password: f.provider.Password,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "User not found.", appErr.Message)

	// No session and no leftover credentials.
	assert.Equal(t, 0, f.sessions.Len())
	assert.Equal(t, 0, f.kv.Len())
}

func TestAuthService_SignIn_RemoteConfigFailureIsNonFatal(t *testing.T) {
	f := newAuthFixture(t, nil)
	f.remoteConfig.FetchErr = errors.New("upstream down")

	res := f.signIn(t, false)
	assert.NotEmpty(t, res.Session.ID)
	assert.Equal(t, 1, f.remoteConfig.FetchCalls)
}

func TestAuthService_SignIn_WithoutRemoteConfig(t *testing.T) {
	f := newAuthFixture(t, func(opts *AuthServiceOptions) {
		opts.RemoteConfig = nil
	})

	res := f.signIn(t, false)
	assert.NotEmpty(t, res.Session.ID)
	assert.Equal(t, "", f.svc.RemoteConfigValue("maintenance"))
}

func TestAuthService_SignIn_SessionSaveFailure(t *testing.T) {
	f := newAuthFixture(t, func(opts *AuthServiceOptions) {
		opts.Sessions = failingSessionStore{}
	})

	_, err := f.svc.SignIn(context.Background(), ports.SignInInput{
		Email:    f.provider.Email,
		Password: f.provider.Password,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

// failingSessionStore always errors on Save.
type failingSessionStore struct{}

func (failingSessionStore) Save(context.Context, domainauth.Session) error {
	return errors.New("redis unavailable")
}

func (failingSessionStore) Get(context.Context, string) (domainauth.Session, error) {
	return domainauth.Session{}, errors.New("redis unavailable")
}

func (failingSessionStore) Delete(context.Context, string) error {
	return errors.New("redis unavailable")
}

func TestAuthService_SignOut_ClearsEverything(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	res := f.signIn(t, false)
	require.Positive(t, f.kv.Len())

	err := f.svc.SignOut(ctx, res.Session.ID)
	require.NoError(t, err)

	_, err = f.svc.GetSession(ctx, res.Session.ID)
	require.Error(t, err)
	assert.Equal(t, 0, f.kv.Len())
	assert.Equal(t, 1, f.provider.SignOutCalls)
	assert.Equal(t, "refresh-token-1", f.provider.RevokedToken)
}

func TestAuthService_SignOut_EmptySessionID(t *testing.T) {
	f := newAuthFixture(t, nil)
	require.NoError(t, f.svc.SignOut(context.Background(), ""))
	assert.Equal(t, 0, f.provider.SignOutCalls)
}

func TestAuthService_SignOut_UnknownSessionStillSucceeds(t *testing.T) {
	f := newAuthFixture(t, nil)
	require.NoError(t, f.svc.SignOut(context.Background(), "no-such-session"))
}

func TestAuthService_SignOut_RevocationFailureStillClearsLocalState(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	res := f.signIn(t, false)
	f.provider.SignOutFunc = func(context.Context, string) error {
		return errors.New("provider unreachable")
	}

	err := f.svc.SignOut(ctx, res.Session.ID)
	require.Error(t, err)

	// Local state is gone even though the provider call failed.
	assert.Equal(t, 0, f.kv.Len())
	_, err = f.sessions.Get(ctx, res.Session.ID)
	assert.Equal(t, mockauth.ErrNotFound, err)
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	sess := domainauth.Session{
		ID:        "expired-1",
		UserID:    "uid-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	require.NoError(t, f.sessions.Save(ctx, sess))

	_, err := f.svc.GetSession(ctx, "expired-1")
	require.Error(t, err)
	assert.True(t, ErrSessionExpired(err))

	// Expired session was cleaned up.
	_, err = f.sessions.Get(ctx, "expired-1")
	assert.Equal(t, mockauth.ErrNotFound, err)
}

func TestAuthService_RefreshPersistentToken(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	f.signIn(t, false)

	token, err := f.svc.RefreshPersistentToken(ctx, f.provider.UID)
	require.NoError(t, err)
	assert.Equal(t, "refreshed-id-token-1", token)

	stored, ok := f.kv.Get(ctx, "user:"+f.provider.UID+":user_token")
	require.True(t, ok)
	assert.Equal(t, token, stored)
}

func TestAuthService_RefreshPersistentToken_NoTokenOnRecord(t *testing.T) {
	f := newAuthFixture(t, nil)

	_, err := f.svc.RefreshPersistentToken(context.Background(), "unknown-uid")
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, 0, f.provider.RefreshCalls)
}

func TestAuthService_UpdatePassword(t *testing.T) {
	f := newAuthFixture(t, nil)
	ctx := context.Background()

	err := f.svc.UpdatePassword(ctx, ports.UpdatePasswordInput{
		Email:           f.provider.Email,
		CurrentPassword: "wrong",
		NewPassword:     "brand-new-password",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))

	err = f.svc.UpdatePassword(ctx, ports.UpdatePasswordInput{
		Email:           f.provider.Email,
		CurrentPassword: f.provider.Password,
		NewPassword:     "brand-new-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "brand-new-password", f.provider.Password)
}

func TestAuthService_UpdatePassword_Validation(t *testing.T) {
	f := newAuthFixture(t, nil)

	err := f.svc.UpdatePassword(context.Background(), ports.UpdatePasswordInput{})
	require.Error(t, err)
}

func TestAuthService_RoleDisplayName(t *testing.T) {
	catalog := map[string]string{
		"role.netflixAdmin": "Netflix Administrator",
	}
	f := newAuthFixture(t, func(opts *AuthServiceOptions) {
		opts.Translate = func(id string) string { return catalog[id] }
	})

	assert.Equal(t, "Netflix Administrator", f.svc.RoleDisplayName(domainauth.RoleNetflixAdmin))
	assert.Equal(t, "WAREHOUSE_MANAGER", f.svc.RoleDisplayName(domainauth.Role("WAREHOUSE_MANAGER")))
}

func TestAuthService_RemoteConfigValue(t *testing.T) {
	f := newAuthFixture(t, nil)
	require.NoError(t, f.svc.RefreshRemoteConfig(context.Background()))
	assert.Equal(t, "false", f.svc.RemoteConfigValue("maintenance"))
	assert.Equal(t, "", f.svc.RemoteConfigValue("absent"))
}
