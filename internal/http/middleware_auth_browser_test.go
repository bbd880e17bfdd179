package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
)

func TestRequireAuthBrowser_APIRequestGets401(t *testing.T) {
	middleware := RequireAuthBrowser(noSession())
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := BrowserDetection()(middleware(testHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/admins", nil)
	req.Header.Set("Accept", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")
}

func TestRequireAuthBrowser_BrowserRequestRedirects(t *testing.T) {
	middleware := RequireAuthBrowser(noSession())
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := BrowserDetection()(middleware(testHandler))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fsettings", w.Header().Get("Location"))
}

func TestRequireRolesBrowser_DeniedBrowserRedirectsToAccessDenied(t *testing.T) {
	middleware := RequireRolesBrowser(sessionWith(domainauth.RoleOperation), domainauth.RoleSuperAdmin)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := BrowserDetection()(middleware(testHandler))

	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.Header.Set("Accept", "text/html")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/403", w.Header().Get("Location"))
}

func TestRequireRolesBrowser_DeniedAPIGets403(t *testing.T) {
	middleware := RequireRolesBrowser(sessionWith(domainauth.RoleOperation), domainauth.RoleSuperAdmin)
	testHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handler := BrowserDetection()(middleware(testHandler))

	req := httptest.NewRequest(http.MethodGet, "/api/admins", nil)
	req.Header.Set("Accept", "application/json")
	req.AddCookie(&http.Cookie{Name: "session_id", Value: "s"})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "insufficient_permissions")
}

func TestRedirectToLoginPreservesQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/booking?page=2", nil)
	w := httptest.NewRecorder()
	redirectToLogin(w, req)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login?redirect_uri=%2Fbooking%3Fpage%3D2", w.Header().Get("Location"))
}
