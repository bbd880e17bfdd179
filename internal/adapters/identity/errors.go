package identity

import (
	"encoding/json"
	"strings"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
)

// backendErrorBody is the error envelope the identity REST API returns.
type backendErrorBody struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// backendCodes maps the backend's SCREAMING_SNAKE reason strings onto the
// stable auth/* taxonomy. Reasons sometimes carry a suffix
// ("TOO_MANY_ATTEMPTS_TRY_LATER : ..."), so matching is on the first token.
var backendCodes = map[string]string{
	"INVALID_PASSWORD":               domainauth.CodeWrongPassword,
	"EMAIL_NOT_FOUND":                domainauth.CodeUserNotFound,
	"USER_DISABLED":                  domainauth.CodeUserDisabled,
	"INVALID_EMAIL":                  domainauth.CodeInvalidEmail,
	"WEAK_PASSWORD":                  domainauth.CodeWeakPassword,
	"CREDENTIAL_TOO_OLD_LOGIN_AGAIN": domainauth.CodeRequiresRecentLogin,
	"USER_MISMATCH":                  domainauth.CodeUserMismatch,
	"INVALID_LOGIN_CREDENTIALS":      domainauth.CodeInvalidCredential,
	"INVALID_CREDENTIAL":             domainauth.CodeInvalidCredential,
	"TOKEN_EXPIRED":                  domainauth.CodeUserTokenExpired,
	"INVALID_ID_TOKEN":               domainauth.CodeUserTokenExpired,
	"INVALID_REFRESH_TOKEN":          domainauth.CodeUserTokenExpired,
	"TOO_MANY_ATTEMPTS_TRY_LATER":    domainauth.CodeTooManyRequests,
}

// translateBackendError converts a raw backend error body into a
// ProviderError. Unrecognized payloads map to auth/invalid-credential so the
// caller always sees a taxonomy code.
func translateBackendError(body string) error {
	var envelope backendErrorBody
	message := strings.TrimSpace(body)
	if err := json.Unmarshal([]byte(body), &envelope); err == nil && envelope.Error.Message != "" {
		message = envelope.Error.Message
	}

	reason := message
	if idx := strings.IndexAny(reason, " :"); idx > 0 {
		reason = reason[:idx]
	}

	if code, ok := backendCodes[reason]; ok {
		return domainauth.NewProviderError(code, message)
	}
	return domainauth.NewProviderError(domainauth.CodeInvalidCredential, message)
}
