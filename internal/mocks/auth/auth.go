package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*FakeIdentityProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.KeyValueStore    = (*MemoryKeyValueStore)(nil)
	_ ports.ProfileDirectory = (*StaticProfileDirectory)(nil)
	_ ports.RemoteConfig     = (*StaticRemoteConfig)(nil)
)

// FakeIdentityProvider simulates the identity backend with deterministic
// tokens. Individual funcs can be overridden per test; otherwise the fake
// authenticates Email/Password and mints "id-token-N"/"refresh-token-N".
type FakeIdentityProvider struct {
	SignInFunc         func(ctx context.Context, in ports.SignInInput) (domainauth.Principal, error)
	SignOutFunc        func(ctx context.Context, refreshToken string) error
	UpdatePasswordFunc func(ctx context.Context, in ports.UpdatePasswordInput) error
	RefreshFunc        func(ctx context.Context, refreshToken string) (string, error)
	VerifyFunc         func(ctx context.Context, rawToken string) (ports.TokenClaims, error)

	Email    string
	Password string
	UID      string

	// Call tracking for assertions.
	SignInCalls  int
	SignOutCalls int
	RefreshCalls int
	RevokedToken string
}

// NewFakeIdentityProvider creates a fake with a single known user.
func NewFakeIdentityProvider() *FakeIdentityProvider {
	return &FakeIdentityProvider{
		Email:    "admin@nftheater.test",
		Password: "secret-password",
		UID:      "fake-uid-1",
	}
}

func (f *FakeIdentityProvider) SignIn(ctx context.Context, in ports.SignInInput) (domainauth.Principal, error) {
	f.SignInCalls++
	if f.SignInFunc != nil {
		return f.SignInFunc(ctx, in)
	}
	if in.Email != f.Email {
		return domainauth.Principal{}, domainauth.NewProviderError(domainauth.CodeUserNotFound, "EMAIL_NOT_FOUND")
	}
	if in.Password != f.Password {
		return domainauth.Principal{}, domainauth.NewProviderError(domainauth.CodeWrongPassword, "INVALID_PASSWORD")
	}
	return domainauth.Principal{
		UID:          f.UID,
		Email:        f.Email,
		IDToken:      fmt.Sprintf("id-token-%d", f.SignInCalls),
		RefreshToken: fmt.Sprintf("refresh-token-%d", f.SignInCalls),
		ExpiresAt:    time.Now().Add(time.Hour),
	}, nil
}

func (f *FakeIdentityProvider) SignOut(ctx context.Context, refreshToken string) error {
	f.SignOutCalls++
	f.RevokedToken = refreshToken
	if f.SignOutFunc != nil {
		return f.SignOutFunc(ctx, refreshToken)
	}
	return nil
}

func (f *FakeIdentityProvider) UpdatePassword(ctx context.Context, in ports.UpdatePasswordInput) error {
	if f.UpdatePasswordFunc != nil {
		return f.UpdatePasswordFunc(ctx, in)
	}
	if in.Email != f.Email || in.CurrentPassword != f.Password {
		return domainauth.NewProviderError(domainauth.CodeWrongPassword, "INVALID_PASSWORD")
	}
	if len(in.NewPassword) < 6 {
		return domainauth.NewProviderError(domainauth.CodeWeakPassword, "WEAK_PASSWORD")
	}
	f.Password = in.NewPassword
	return nil
}

func (f *FakeIdentityProvider) RefreshIDToken(ctx context.Context, refreshToken string) (string, error) {
	f.RefreshCalls++
	if f.RefreshFunc != nil {
		return f.RefreshFunc(ctx, refreshToken)
	}
	if refreshToken == "" {
		return "", domainauth.NewProviderError(domainauth.CodeUserTokenExpired, "TOKEN_EXPIRED")
	}
	return fmt.Sprintf("refreshed-id-token-%d", f.RefreshCalls), nil
}

func (f *FakeIdentityProvider) VerifyIDToken(ctx context.Context, rawToken string) (ports.TokenClaims, error) {
	if f.VerifyFunc != nil {
		return f.VerifyFunc(ctx, rawToken)
	}
	if rawToken == "" {
		return ports.TokenClaims{}, errors.New("empty token")
	}
	return ports.TokenClaims{Subject: f.UID, Email: f.Email, Expiry: time.Now().Add(time.Hour).Unix()}, nil
}

// MemorySessionStore is an in-memory session store for unit tests.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) error {
	if sess.ID == "" {
		return errors.New("session ID cannot be empty")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ErrNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// ErrNotFound is returned by mocks when an entity is not present.
type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

var ErrNotFound error = notFoundError{}

// MemoryKeyValueStore is an in-memory key-value store for unit tests.
// A FailWrites toggle simulates a degraded backend: writes are dropped
// and reads miss, without any error surfacing.
type MemoryKeyValueStore struct {
	mu         sync.Mutex
	values     map[string]string
	FailWrites bool
}

// NewMemoryKeyValueStore creates a new in-memory key-value store.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: make(map[string]string)}
}

func (m *MemoryKeyValueStore) Set(_ context.Context, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailWrites || key == "" {
		return
	}
	m.values[key] = value
}

func (m *MemoryKeyValueStore) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok
}

func (m *MemoryKeyValueStore) Delete(_ context.Context, keys ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
}

// Len reports the number of stored keys.
func (m *MemoryKeyValueStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.values)
}

// StaticProfileDirectory serves profiles from a fixed map keyed by UID.
type StaticProfileDirectory struct {
	Profiles map[string]domainauth.Profile
	Err      error
}

// NewStaticProfileDirectory creates a directory serving the given profiles.
func NewStaticProfileDirectory(profiles ...domainauth.Profile) *StaticProfileDirectory {
	d := &StaticProfileDirectory{Profiles: make(map[string]domainauth.Profile, len(profiles))}
	for _, p := range profiles {
		d.Profiles[p.UserID] = p
	}
	return d
}

func (d *StaticProfileDirectory) ProfileByUID(_ context.Context, uid string) (domainauth.Profile, error) {
	if d.Err != nil {
		return domainauth.Profile{}, d.Err
	}
	p, ok := d.Profiles[uid]
	if !ok {
		return domainauth.Profile{}, ErrNotFound
	}
	return p, nil
}

// StaticRemoteConfig returns fixed values and optionally fails Fetch.
type StaticRemoteConfig struct {
	Values     map[string]string
	FetchErr   error
	FetchCalls int
}

func (c *StaticRemoteConfig) Fetch(_ context.Context) error {
	c.FetchCalls++
	return c.FetchErr
}

func (c *StaticRemoteConfig) Get(key string) string {
	return c.Values[key]
}
