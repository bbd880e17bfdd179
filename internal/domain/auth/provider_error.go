package auth

// Provider error codes shared by every identity adapter. The strings follow
// the backend's own taxonomy so raw provider payloads map one-to-one.
const (
	CodeWrongPassword       = "auth/wrong-password"
	CodeUserNotFound        = "auth/user-not-found"
	CodeUserDisabled        = "auth/user-disabled"
	CodeInvalidEmail        = "auth/invalid-email"
	CodeWeakPassword        = "auth/weak-password"
	CodeRequiresRecentLogin = "auth/requires-recent-login"
	CodeUserMismatch        = "auth/user-mismatch"
	CodeInvalidCredential   = "auth/invalid-credential"
	CodeUserTokenExpired    = "auth/user-token-expired"
	CodeTooManyRequests     = "auth/too-many-requests"
)

// ProviderError is a failure reported by the identity provider. Code carries
// the stable taxonomy value; Message is the provider's raw description and is
// never shown to end users.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewProviderError builds a ProviderError for the given code.
func NewProviderError(code, message string) *ProviderError {
	return &ProviderError{Code: code, Message: message}
}
