package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	apperrors "github.com/nftheater/admin-api/internal/errors"
	"github.com/nftheater/admin-api/internal/ports"
	"github.com/nftheater/admin-api/internal/service"
)

// mockAuthService is a configurable test double for AuthServiceInterface.
type mockAuthService struct {
	signInFunc         func(ctx context.Context, input ports.SignInInput) (*service.SignInResult, error)
	signOutFunc        func(ctx context.Context, sessionID string) error
	updatePasswordFunc func(ctx context.Context, input ports.UpdatePasswordInput) error
	refreshFunc        func(ctx context.Context, uid string) (string, error)
	getSessionFunc     func(ctx context.Context, sessionID string) (*domainauth.Session, error)
}

func (m *mockAuthService) SignIn(ctx context.Context, input ports.SignInInput) (*service.SignInResult, error) {
	if m.signInFunc != nil {
		return m.signInFunc(ctx, input)
	}
	return nil, errors.New("not implemented")
}

func (m *mockAuthService) SignOut(ctx context.Context, sessionID string) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) UpdatePassword(ctx context.Context, input ports.UpdatePasswordInput) error {
	if m.updatePasswordFunc != nil {
		return m.updatePasswordFunc(ctx, input)
	}
	return nil
}

func (m *mockAuthService) RefreshPersistentToken(ctx context.Context, uid string) (string, error) {
	if m.refreshFunc != nil {
		return m.refreshFunc(ctx, uid)
	}
	return "", errors.New("not implemented")
}

func (m *mockAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if m.getSessionFunc != nil {
		return m.getSessionFunc(ctx, sessionID)
	}
	return nil, errors.New("session not found")
}

func (m *mockAuthService) RoleDisplayName(role domainauth.Role) string {
	return string(role)
}

func validSession() domainauth.Session {
	return domainauth.Session{
		ID:         "sess-1",
		UserID:     "uid-1",
		Email:      "admin@nftheater.test",
		Username:   "Admin One",
		Account:    "NF-001",
		Role:       domainauth.RoleAdmin,
		Privileges: []domainauth.Privilege{domainauth.PrivilegeAll},
		ExpiresAt:  time.Now().Add(time.Hour),
	}
}

func TestLogin_Success(t *testing.T) {
	session := validSession()
	handlers := &AuthHandlers{Svc: &mockAuthService{
		signInFunc: func(_ context.Context, input ports.SignInInput) (*service.SignInResult, error) {
			assert.Equal(t, "admin@nftheater.test", input.Email)
			assert.True(t, input.RememberMe)
			return &service.SignInResult{Session: session}, nil
		},
	}}

	body := `{"email":"admin@nftheater.test","password":"secret","rememberMe":true}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Authenticated bool           `json:"authenticated"`
		User          map[string]any `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.True(t, resp.Authenticated)
	assert.Equal(t, "uid-1", resp.User["id"])
	assert.Equal(t, "Admin One", resp.User["adminName"])
	assert.Equal(t, "ADMIN", resp.User["role"])

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Equal(t, "sess-1", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Positive(t, cookies[0].MaxAge)
}

func TestLogin_MissingCredentials(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"","password":""}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "validation_failed")
}

func TestLogin_BadCredentialsReturns401(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{
		signInFunc: func(_ context.Context, _ ports.SignInInput) (*service.SignInResult, error) {
			return nil, apperrors.Unauthorized("invalid email or password")
		},
	}}

	body := `{"email":"admin@nftheater.test","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "sign_in_failed")
	assert.Empty(t, w.Result().Cookies())
}

func TestLogin_UnknownUserReturns404(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{
		signInFunc: func(_ context.Context, _ ports.SignInInput) (*service.SignInResult, error) {
			return nil, apperrors.NotFound("no administrator profile for this account")
		},
	}}

	body := `{"email":"ghost@nftheater.test","password":"secret"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Login(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user_not_found")
}

func TestLogout_ClearsCookieAndRevokesSession(t *testing.T) {
	var revoked string
	handlers := &AuthHandlers{Svc: &mockAuthService{
		signOutFunc: func(_ context.Context, sessionID string) error {
			revoked = sessionID
			return nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	handlers.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "sess-1", revoked)
	assert.Contains(t, w.Body.String(), `"redirect_to":"/login"`)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "session_id", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestLogout_RevocationFailureStillClearsCookie(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{
		signOutFunc: func(_ context.Context, _ string) error {
			return errors.New("store unreachable")
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	handlers.Logout(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestStatus_NoCookie(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	w := httptest.NewRecorder()
	handlers.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
}

func TestStatus_InvalidSessionClearsCookie(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "stale"})
	w := httptest.NewRecorder()
	handlers.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":false`)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestStatus_ValidSession(t *testing.T) {
	session := validSession()
	handlers := &AuthHandlers{Svc: &mockAuthService{
		getSessionFunc: func(_ context.Context, sessionID string) (*domainauth.Session, error) {
			assert.Equal(t, "sess-1", sessionID)
			return &session, nil
		},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "sess-1"})
	w := httptest.NewRecorder()
	handlers.Status(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"authenticated":true`)
	assert.Contains(t, w.Body.String(), "admin@nftheater.test")
}

func TestPassword_RequiresSession(t *testing.T) {
	handlers := &AuthHandlers{Svc: &mockAuthService{}}

	body := `{"currentPassword":"old","newPassword":"new"}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handlers.Password(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPassword_Success(t *testing.T) {
	session := validSession()
	var gotInput ports.UpdatePasswordInput
	handlers := &AuthHandlers{Svc: &mockAuthService{
		updatePasswordFunc: func(_ context.Context, input ports.UpdatePasswordInput) error {
			gotInput = input
			return nil
		},
	}}

	body := `{"currentPassword":"old-secret","newPassword":"new-secret"}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(SetSessionInContext(req.Context(), &session))
	w := httptest.NewRecorder()
	handlers.Password(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, session.Email, gotInput.Email)
	assert.Equal(t, "old-secret", gotInput.CurrentPassword)
	assert.Equal(t, "new-secret", gotInput.NewPassword)
}

func TestPassword_WrongCurrentPassword(t *testing.T) {
	session := validSession()
	handlers := &AuthHandlers{Svc: &mockAuthService{
		updatePasswordFunc: func(_ context.Context, _ ports.UpdatePasswordInput) error {
			return apperrors.Unauthorized("current password is incorrect")
		},
	}}

	body := `{"currentPassword":"wrong","newPassword":"new-secret"}`
	req := httptest.NewRequest(http.MethodPut, "/api/auth/password", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req = req.WithContext(SetSessionInContext(req.Context(), &session))
	w := httptest.NewRecorder()
	handlers.Password(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "password_change_failed")
}

func TestRefresh_Success(t *testing.T) {
	session := validSession()
	handlers := &AuthHandlers{Svc: &mockAuthService{
		refreshFunc: func(_ context.Context, uid string) (string, error) {
			assert.Equal(t, "uid-1", uid)
			return "fresh-token", nil
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), &session))
	w := httptest.NewRecorder()
	handlers.Refresh(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"idToken":"fresh-token"`)
}

func TestRefresh_NoStoredToken(t *testing.T) {
	session := validSession()
	handlers := &AuthHandlers{Svc: &mockAuthService{
		refreshFunc: func(_ context.Context, _ string) (string, error) {
			return "", apperrors.Unauthorized("no refresh token on record")
		},
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req = req.WithContext(SetSessionInContext(req.Context(), &session))
	w := httptest.NewRecorder()
	handlers.Refresh(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "token_refresh_failed")
}

func TestSafeRedirectPath(t *testing.T) {
	assert.Equal(t, "/", safeRedirectPath(""))
	assert.Equal(t, "/", safeRedirectPath("https://evil.example/phish"))
	assert.Equal(t, "/", safeRedirectPath("//evil.example"))
	assert.Equal(t, "/netflix", safeRedirectPath("/netflix"))
	assert.Equal(t, "/booking?page=2", safeRedirectPath("/booking?page=2"))
}
