package httpx

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubRemoteConfig is a test double for RemoteConfigService.
type stubRemoteConfig struct {
	values     map[string]string
	refreshErr error
	refreshed  bool
}

func (s *stubRemoteConfig) RemoteConfigValue(key string) string {
	return s.values[key]
}

func (s *stubRemoteConfig) RefreshRemoteConfig(_ context.Context) error {
	s.refreshed = true
	return s.refreshErr
}

func TestRemoteConfigGet_KnownKey(t *testing.T) {
	handlers := &RemoteConfigHandlers{Svc: &stubRemoteConfig{
		values: map[string]string{"maintenance_banner": "off"},
	}}

	req := httptest.NewRequest(http.MethodGet, "/api/remote-config/maintenance_banner", nil)
	req.SetPathValue("key", "maintenance_banner")
	w := httptest.NewRecorder()
	handlers.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"maintenance_banner"`)
	assert.Contains(t, w.Body.String(), `"value":"off"`)
}

func TestRemoteConfigGet_AbsentKeyYieldsEmptyValue(t *testing.T) {
	handlers := &RemoteConfigHandlers{Svc: &stubRemoteConfig{}}

	req := httptest.NewRequest(http.MethodGet, "/api/remote-config/unknown", nil)
	req.SetPathValue("key", "unknown")
	w := httptest.NewRecorder()
	handlers.Get(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"value":""`)
}

func TestRemoteConfigRefresh_Success(t *testing.T) {
	stub := &stubRemoteConfig{}
	handlers := &RemoteConfigHandlers{Svc: stub}

	req := httptest.NewRequest(http.MethodPost, "/api/remote-config/refresh", nil)
	w := httptest.NewRecorder()
	handlers.Refresh(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.refreshed)
	assert.Contains(t, w.Body.String(), `"status":"success"`)
}

func TestRemoteConfigRefresh_UpstreamFailureIs502(t *testing.T) {
	handlers := &RemoteConfigHandlers{Svc: &stubRemoteConfig{
		refreshErr: errors.New("fetch remote config: upstream timeout"),
	}}

	req := httptest.NewRequest(http.MethodPost, "/api/remote-config/refresh", nil)
	w := httptest.NewRecorder()
	handlers.Refresh(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), "refresh_failed")
}
