package service

import (
	"errors"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	apperrors "github.com/nftheater/admin-api/internal/errors"
)

// authMessage pairs a translation catalog ID with its English fallback.
type authMessage struct {
	id       string
	fallback string
}

// providerMessages maps identity provider error codes to user-facing
// messages. Anything outside the map falls through to the generic entry so
// backend internals never leak to the client.
var providerMessages = map[string]authMessage{
	domainauth.CodeWrongPassword:       {"auth.wrongPassword", "The password is incorrect."},
	domainauth.CodeUserNotFound:        {"auth.userNotFound", "User not found."},
	domainauth.CodeUserDisabled:        {"auth.userDisabled", "This account has been disabled."},
	domainauth.CodeInvalidEmail:        {"auth.invalidEmail", "The email address is not valid."},
	domainauth.CodeWeakPassword:        {"auth.weakPassword", "The new password is too weak."},
	domainauth.CodeRequiresRecentLogin: {"auth.requiresRecentLogin", "Please sign in again before retrying this change."},
	domainauth.CodeUserMismatch:        {"auth.userMismatch", "The credential does not match the signed-in user."},
	domainauth.CodeUserTokenExpired:    {"auth.tokenExpired", "Your session has expired. Please sign in again."},
	domainauth.CodeTooManyRequests:     {"auth.tooManyRequests", "Too many attempts. Please try again later."},
	domainauth.CodeInvalidCredential:   {"auth.invalidCredential", "The credentials are invalid."},
}

var genericAuthMessage = authMessage{"auth.failed", "Sign-in failed. Please try again."}

// wrapAuthError converts a provider error into an unauthorized AppError with
// a localized user-facing message. Non-provider errors keep the generic
// message while preserving the cause for logs.
func (s *AuthService) wrapAuthError(err error) error {
	if err == nil {
		return nil
	}

	msg := genericAuthMessage
	var perr *domainauth.ProviderError
	if errors.As(err, &perr) {
		if m, ok := providerMessages[perr.Code]; ok {
			msg = m
		}
	}

	return &apperrors.AppError{
		Code:    apperrors.ErrCodeUnauthorized,
		Message: s.localize(msg),
		Cause:   err,
	}
}

// profileError maps a directory lookup failure to the canonical
// "User not found" response regardless of the underlying cause. A principal
// without an admin profile must not learn whether the row is missing or the
// directory is down.
func (s *AuthService) profileError(err error) error {
	return &apperrors.AppError{
		Code:    apperrors.ErrCodeNotFound,
		Message: s.localize(authMessage{"auth.userNotFound", "User not found."}),
		Cause:   err,
	}
}

func (s *AuthService) localize(msg authMessage) string {
	if s.translate == nil {
		return msg.fallback
	}
	if out := s.translate(msg.id); out != "" && out != msg.id {
		return out
	}
	return msg.fallback
}
