package httpx

import (
	"log/slog"
	"net/http"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
	"github.com/nftheater/admin-api/internal/domain/menu"
	"github.com/nftheater/admin-api/internal/observability/statsd"
	"github.com/nftheater/admin-api/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth         *service.AuthService
	Admins       *service.AdminUserService
	CookieDomain string
	// Optional: sidebar override. If nil, menu.Default() is used.
	Menu []menu.Section
	// Optional: handler for dashboard navigations (the SPA entry point).
	SPA     http.Handler
	Health  *HealthHandlers
	Metrics statsd.Sink
	Logger  *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	var authHandlers *AuthHandlers
	if services.Auth != nil {
		authHandlers = &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: services.Logger}
	}

	if authHandlers != nil {
		registerAuthRoutes(mux, authHandlers, services.Auth)
		registerMenuRoutes(mux, &MenuHandlers{Sections: services.Menu}, services.Auth)
		registerRemoteConfigRoutes(mux, &RemoteConfigHandlers{Svc: services.Auth, Logger: services.Logger}, services.Auth)
	}
	if services.Admins != nil {
		registerAdminRoutes(mux, &AdminUserHandlers{Svc: services.Admins}, services.Auth)
	}

	mux.Handle("GET /api/routes", http.HandlerFunc(routesHandler))

	health := services.Health
	if health == nil {
		health = &HealthHandlers{}
	}
	mux.Handle("GET /healthz", http.HandlerFunc(health.Health))
	mux.Handle("HEAD /healthz", http.HandlerFunc(health.Health))

	// Dashboard navigations fall through the API mux into the guarded SPA.
	guard := RouteGuard(RouteGuardConfig{Auth: guardAuth(services.Auth), Table: routeTable(), Metrics: services.Metrics})
	mux.Handle("GET /", guard(SPAFallback(services.SPA)))

	return BrowserDetection()(mux)
}

// guardAuth keeps the guard nil-safe when no auth service is wired.
func guardAuth(auth *service.AuthService) AuthServiceInterface {
	if auth == nil {
		return nil
	}
	return auth
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, auth *service.AuthService) {
	mux.HandleFunc("POST /api/auth/login", h.Login)
	mux.HandleFunc("POST /api/auth/logout", h.Logout)
	mux.HandleFunc("GET /api/auth/status", h.Status)

	authed := requireAuthWrap(auth)
	mux.Handle("PUT /api/auth/password", authed(http.HandlerFunc(h.Password)))
	mux.Handle("POST /api/auth/refresh", authed(http.HandlerFunc(h.Refresh)))
}

func registerMenuRoutes(mux *http.ServeMux, h *MenuHandlers, auth *service.AuthService) {
	mux.Handle("GET /api/menu", requireAuthWrap(auth)(http.HandlerFunc(h.Get)))
}

func registerRemoteConfigRoutes(
	mux *http.ServeMux,
	h *RemoteConfigHandlers,
	auth *service.AuthService,
) {
	mux.Handle("GET /api/remote-config/{key}", requireAuthWrap(auth)(http.HandlerFunc(h.Get)))

	adminOnly := requireRolesWrap(auth, domainauth.RoleSuperAdmin, domainauth.RoleAdmin)
	mux.Handle("POST /api/remote-config/refresh", adminOnly(http.HandlerFunc(h.Refresh)))
}

func registerAdminRoutes(mux *http.ServeMux, h *AdminUserHandlers, auth *service.AuthService) {
	superAdminOnly := requireRolesWrap(auth, domainauth.RoleSuperAdmin)

	registerCRUD(mux, crudRoutes{
		Base:       "/api/admins",
		Param:      "uid",
		Create:     h.Create,
		List:       h.List,
		GetByID:    h.GetByUID,
		Update:     h.Update,
		Delete:     h.Delete,
		Middleware: superAdminOnly,
	})

	mux.Handle("POST /api/admins/{uid}/deactivate", superAdminOnly(http.HandlerFunc(h.Deactivate)))
}

// requireAuthWrap returns a no-op wrapper when auth is nil, otherwise RequireAuth.
func requireAuthWrap(auth *service.AuthService) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireAuth(auth)
}

// requireRolesWrap returns a no-op wrapper when auth is nil, otherwise RequireRoles.
func requireRolesWrap(auth *service.AuthService, roles ...domainauth.Role) func(http.Handler) http.Handler {
	if auth == nil {
		return func(h http.Handler) http.Handler { return h }
	}
	return RequireRoles(auth, roles...)
}

// crudRoutes registers standard CRUD routes for a resource base path, applying Middleware if non-nil.
type crudRoutes struct {
	Base       string
	Param      string // path parameter name for item routes, defaults to "id"
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux *http.ServeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}
	param := cfg.Param
	if param == "" {
		param = "id"
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.Handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.Handle("GET "+cfg.Base, wrap(cfg.List))
	mux.Handle("GET "+cfg.Base+"/{"+param+"}", wrap(cfg.GetByID))
	mux.Handle("PUT "+cfg.Base+"/{"+param+"}", wrap(cfg.Update))
	mux.Handle("DELETE "+cfg.Base+"/{"+param+"}", wrap(cfg.Delete))
}

// RouteDescriptor describes one front-end route and its access policy so the
// client-side guard and the server agree on a single table.
type RouteDescriptor struct {
	Path              string                 `json:"path"`
	Public            bool                   `json:"public,omitempty"`
	AllowedRoles      []domainauth.Role      `json:"allowedRoles,omitempty"`
	AllowedPrivileges []domainauth.Privilege `json:"allowedPrivileges,omitempty"`
}

// routeTable is the canonical dashboard route list. Public entries render
// without a session; entries with an empty role list are open to any signed-in
// user; the rest follow the same role-or-privilege rule as the sidebar.
func routeTable() []RouteDescriptor {
	openRoles := []domainauth.Role{
		domainauth.RoleSuperAdmin, domainauth.RoleAdmin, domainauth.RoleCustomerSupport,
		domainauth.RoleOperation, domainauth.RoleBranchManager, domainauth.RoleBranchOfficer,
	}

	return []RouteDescriptor{
		{Path: "/login", Public: true},
		{Path: "/403", Public: true},
		{Path: "/"},
		{Path: "/car", AllowedRoles: openRoles},
		{Path: "/booking", AllowedRoles: openRoles},
		{Path: "/customer", AllowedRoles: openRoles},
		{Path: "/staff", AllowedRoles: []domainauth.Role{
			domainauth.RoleSuperAdmin, domainauth.RoleAdmin, domainauth.RoleBranchManager,
		}},
		{Path: "/voucher", AllowedRoles: []domainauth.Role{
			domainauth.RoleSuperAdmin, domainauth.RoleAdmin, domainauth.RoleCustomerSupport,
		}},
		{
			Path: "/netflix",
			AllowedRoles: []domainauth.Role{
				domainauth.RoleSuperAdmin, domainauth.RoleNetflixAdmin, domainauth.RoleNetflixAuthor,
			},
			AllowedPrivileges: []domainauth.Privilege{domainauth.PrivilegeAll, domainauth.PrivilegeNetflix},
		},
		{
			Path: "/youtube",
			AllowedRoles: []domainauth.Role{
				domainauth.RoleSuperAdmin, domainauth.RoleYoutubeAdmin, domainauth.RoleYoutubeAuthor,
			},
			AllowedPrivileges: []domainauth.Privilege{domainauth.PrivilegeAll, domainauth.PrivilegeYoutube},
		},
		{Path: "/consent-log", AllowedRoles: []domainauth.Role{
			domainauth.RoleSuperAdmin, domainauth.RoleAdmin,
		}},
		{Path: "/admin", AllowedRoles: []domainauth.Role{domainauth.RoleSuperAdmin}},
		{Path: "/settings", AllowedRoles: []domainauth.Role{
			domainauth.RoleSuperAdmin, domainauth.RoleAdmin,
		}},
	}
}

// routesHandler serves the route table.
// GET /api/routes.
func routesHandler(w http.ResponseWriter, _ *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]any{"routes": routeTable()})
}
