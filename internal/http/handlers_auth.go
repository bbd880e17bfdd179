package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	apperrors "github.com/nftheater/admin-api/internal/errors"
	"github.com/nftheater/admin-api/internal/ports"
	"github.com/nftheater/admin-api/internal/service"
)

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	SignIn(ctx context.Context, input ports.SignInInput) (*service.SignInResult, error)
	SignOut(ctx context.Context, sessionID string) error
	UpdatePassword(ctx context.Context, input ports.UpdatePasswordInput) error
	RefreshPersistentToken(ctx context.Context, uid string) (string, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	RoleDisplayName(role domainauth.Role) string
}

// AuthHandlers provides HTTP handlers for authentication operations.
type AuthHandlers struct {
	Svc          AuthServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// loginRequest carries the credentials posted by the login form.
type loginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// Login handles the credential sign-in endpoint.
// POST /api/auth/login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("email and password are required"),
		})
		return
	}

	result, err := h.Svc.SignIn(r.Context(), ports.SignInInput{
		Email:      req.Email,
		Password:   req.Password,
		RememberMe: req.RememberMe,
	})
	if err != nil {
		h.writeSignInError(w, r, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          h.sessionUser(result.Session),
		"expiresAt":     result.Session.ExpiresAt,
	})
}

// writeSignInError maps service errors to HTTP responses. The message carried
// by the error is already localized and safe to show to the user.
func (h *AuthHandlers) writeSignInError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case apperrors.IsUnauthorized(err):
		WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "sign_in_failed", Err: err})
	case apperrors.IsNotFound(err):
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "user_not_found", Err: err})
	default:
		h.logger().ErrorContext(r.Context(), "sign-in failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "sign_in_failed", Err: err})
	}
}

// Logout handles the logout endpoint.
// POST /api/auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	// Invalidate the server-side session if present. Sign-out is best effort:
	// the cookie is cleared even when revocation fails upstream.
	if sessionCookie, err := r.Cookie("session_id"); err == nil {
		if logoutErr := h.Svc.SignOut(r.Context(), sessionCookie.Value); logoutErr != nil {
			h.logger().WarnContext(r.Context(), "logout failed", "error", logoutErr)
		}
	}

	h.clearCookie(w, r, "session_id")

	redirectURI := r.URL.Query().Get("redirect_uri")
	if redirectURI == "" {
		redirectURI = "/login"
	}
	redirectURI = safeRedirectPath(redirectURI)
	if redirectURI == "/" {
		redirectURI = "/login"
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"status":      "success",
		"redirect_to": redirectURI,
	})
}

// Status returns the current authentication status.
// GET /api/auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sessionCookie, err := r.Cookie("session_id")
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	session, err := h.Svc.GetSession(r.Context(), sessionCookie.Value)
	if err != nil {
		// Session is invalid or expired, clear the cookie
		h.clearCookie(w, r, "session_id")
		WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": false,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user":          h.sessionUser(*session),
		"expiresAt":     session.ExpiresAt,
	})
}

// passwordRequest carries the payload for a credential change.
type passwordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// Password handles the password-change endpoint for the signed-in user.
// PUT /api/auth/password.
func (h *AuthHandlers) Password(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	var req passwordRequest
	if !DecodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "validation_failed",
			Err:     errors.New("current and new password are required"),
		})
		return
	}

	err := h.Svc.UpdatePassword(r.Context(), ports.UpdatePasswordInput{
		Email:           session.Email,
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	})
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "password_change_failed", Err: err})
			return
		}
		h.logger().ErrorContext(r.Context(), "password change failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "password_change_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Refresh exchanges the stored refresh token for a fresh ID token.
// POST /api/auth/refresh.
func (h *AuthHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	token, err := h.Svc.RefreshPersistentToken(r.Context(), session.UserID)
	if err != nil {
		if apperrors.IsUnauthorized(err) {
			WriteError(w, ErrorParams{Code: http.StatusUnauthorized, ErrCode: "token_refresh_failed", Err: err})
			return
		}
		h.logger().ErrorContext(r.Context(), "token refresh failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "token_refresh_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"idToken": token})
}

// sessionUser shapes the session for JSON responses, including the display
// label for the role.
func (h *AuthHandlers) sessionUser(s domainauth.Session) map[string]any {
	return map[string]any{
		"id":         s.UserID,
		"email":      s.Email,
		"adminName":  s.Username,
		"account":    s.Account,
		"role":       s.Role,
		"roleLabel":  h.Svc.RoleDisplayName(s.Role),
		"privileges": s.Privileges,
	}
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting cookies
// to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// setSessionCookie writes the session cookie based on the session's expiry.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, s domainauth.Session) {
	isSecure := r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
	cd := h.CookieDomain
	http.SetCookie(w, &http.Cookie{
		Name:     "session_id",
		Value:    s.ID,
		Path:     "/",
		Domain:   cd,
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(time.Until(s.ExpiresAt).Seconds()),
	})
}

// safeRedirectPath ensures the provided redirect is a same-origin relative path
// starting with "/" and not an absolute URL. Returns "/" when invalid.
func safeRedirectPath(candidate string) string {
	if candidate == "" {
		return "/"
	}
	u, err := url.Parse(candidate)
	if err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(u.Path, "/") {
		return "/"
	}
	return candidate
}
