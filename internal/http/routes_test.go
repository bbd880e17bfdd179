package httpx

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRouterHealthz(t *testing.T) {
	router := NewRouter(RouterServices{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestNewRouterServesRouteTable(t *testing.T) {
	router := NewRouter(RouterServices{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/routes", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"/netflix"`)
	assert.Contains(t, body, `"/admin"`)
	assert.Contains(t, body, `"public":true`)
}

func TestNewRouterUnknownAPIPathIs404JSON(t *testing.T) {
	router := NewRouter(RouterServices{})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/does-not-exist", nil))

	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "application/json")
	assert.Contains(t, w.Body.String(), "not_found")
}

func TestNewRouterDashboardFallsThroughToShell(t *testing.T) {
	router := NewRouter(RouterServices{})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
}

func TestNewRouterCustomSPAHandler(t *testing.T) {
	spa := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("spa-entry"))
	})
	router := NewRouter(RouterServices{SPA: spa})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	req.Header.Set("Accept", "text/html")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "spa-entry", w.Body.String())
}

func TestRouteTableCoversSidebarPaths(t *testing.T) {
	table := routeTable()

	byPath := make(map[string]RouteDescriptor, len(table))
	for _, route := range table {
		byPath[route.Path] = route
	}

	for _, path := range []string{"/login", "/403", "/", "/car", "/netflix", "/youtube", "/admin", "/settings"} {
		_, ok := byPath[path]
		assert.True(t, ok, "route table missing %s", path)
	}
	assert.True(t, byPath["/login"].Public)
	assert.False(t, byPath["/admin"].Public)
	assert.NotEmpty(t, byPath["/netflix"].AllowedPrivileges)
}

func TestRegisterCRUDPanicsOnMissingHandler(t *testing.T) {
	noop := func(http.ResponseWriter, *http.Request) {}

	assert.Panics(t, func() {
		registerCRUD(http.NewServeMux(), crudRoutes{
			Base:   "/api/things",
			Create: noop,
			List:   noop,
			// GetByID intentionally missing
			Update: noop,
			Delete: noop,
		})
	})

	assert.Panics(t, func() {
		registerCRUD(http.NewServeMux(), crudRoutes{})
	})
}

func TestRegisterCRUDItemRoutesUseConfiguredParam(t *testing.T) {
	mux := http.NewServeMux()
	var gotUID string
	capture := func(_ http.ResponseWriter, r *http.Request) { gotUID = r.PathValue("uid") }
	noop := func(http.ResponseWriter, *http.Request) {}

	registerCRUD(mux, crudRoutes{
		Base:    "/api/admins",
		Param:   "uid",
		Create:  noop,
		List:    noop,
		GetByID: capture,
		Update:  noop,
		Delete:  noop,
	})

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admins/uid-42", nil))

	assert.Equal(t, "uid-42", gotUID)
}
