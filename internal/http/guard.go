package httpx

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/observability/statsd"
)

// RouteGuardConfig groups dependencies for the route guard middleware.
type RouteGuardConfig struct {
	Auth    AuthServiceInterface
	Table   []RouteDescriptor
	Metrics statsd.Sink
}

// RouteGuard enforces the route table on dashboard navigations. API paths
// pass through untouched; they carry their own per-route middleware.
//
// Guard outcomes are terminal for one navigation:
//   - public route: serve, except the login route which redirects to "/" when
//     a valid session already exists
//   - private route without a session: redirect browsers to
//     /login?redirect_uri=<attempted>, 401 JSON otherwise
//   - session present but not allowed: redirect browsers to /403, 403 JSON
//     otherwise
//   - allowed, or the path is not in the table: serve
func RouteGuard(cfg RouteGuardConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.HasPrefix(r.URL.Path, "/api/") || cfg.Auth == nil {
				next.ServeHTTP(w, r)
				return
			}

			route, found := matchRoute(cfg.Table, r.URL.Path)
			if !found {
				next.ServeHTTP(w, r)
				return
			}

			session := getSessionFromRequest(r, cfg.Auth)

			if route.Public {
				if route.Path == "/login" && session != nil {
					http.Redirect(w, r, "/", http.StatusSeeOther)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			if session == nil {
				if IsBrowserRequest(r) {
					redirectToLogin(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !routeAllows(route, session.Role, session.Privileges) {
				countGuardDenied(cfg.Metrics, route.Path, session.Role)
				if IsBrowserRequest(r) {
					showAccessDenied(w, r)
					return
				}
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}

			ctx := SetSessionInContext(r.Context(), session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// matchRoute finds the table entry for a path. The root entry matches only
// exactly; other entries also cover their subpaths ("/car" covers "/car/42").
func matchRoute(table []RouteDescriptor, path string) (RouteDescriptor, bool) {
	for _, route := range table {
		if route.Path == path {
			return route, true
		}
		if route.Path != "/" && strings.HasPrefix(path, route.Path+"/") {
			return route, true
		}
	}
	return RouteDescriptor{}, false
}

// routeAllows applies the same role-or-privilege rule as the sidebar: the
// role allow-list decides, and a non-empty privilege list can grant access a
// role alone would not.
func routeAllows(route RouteDescriptor, role domainauth.Role, privileges []domainauth.Privilege) bool {
	if domainauth.HasAllowedRole(role, route.AllowedRoles) {
		return true
	}
	if len(route.AllowedPrivileges) == 0 {
		return false
	}
	return domainauth.HasAllowedPrivilege(privileges, route.AllowedPrivileges)
}

func countGuardDenied(metrics statsd.Sink, path string, role domainauth.Role) {
	if metrics == nil {
		return
	}
	metrics.Count("guard.denied", 1, map[string]string{"path": path, "role": string(role)})
}

// dashboardShell is served for guarded navigations when no SPA handler is
// configured, keeping the guard testable without frontend assets.
const dashboardShell = `<!doctype html><html><head><title>NF Theater Admin</title></head><body></body></html>`

// SPAFallback serves the single-page-app entry for anything the API mux does
// not own. Unknown API paths get a JSON 404 instead of the HTML shell.
func SPAFallback(spa http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "not_found",
				Err:     errors.New("no such endpoint: " + r.URL.Path),
			})
			return
		}
		if spa != nil {
			spa.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dashboardShell))
	})
}

// LoginRedirectURL builds the login URL carrying the attempted path, shared by
// the guard and by handlers that need to send a browser back through sign-in.
func LoginRedirectURL(attempted string) string {
	return "/login?redirect_uri=" + url.QueryEscape(safeRedirectPath(attempted))
}
