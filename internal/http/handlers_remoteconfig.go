package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
)

// RemoteConfigService exposes the remote-config snapshot held by the auth
// service.
type RemoteConfigService interface {
	RemoteConfigValue(key string) string
	RefreshRemoteConfig(ctx context.Context) error
}

// RemoteConfigHandlers provides HTTP handlers for feature-flag lookups.
type RemoteConfigHandlers struct {
	Svc    RemoteConfigService
	Logger *slog.Logger
}

func (h *RemoteConfigHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Get returns the value for a single key from the local snapshot.
// Absent keys yield an empty value rather than an error.
// GET /api/remote-config/{key}.
func (h *RemoteConfigHandlers) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")
	if key == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("config key is required")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"key":   key,
		"value": h.Svc.RemoteConfigValue(key),
	})
}

// Refresh re-fetches the remote snapshot on demand.
// POST /api/remote-config/refresh.
func (h *RemoteConfigHandlers) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.Svc.RefreshRemoteConfig(r.Context()); err != nil {
		h.logger().WarnContext(r.Context(), "remote config refresh failed", "error", err)
		WriteError(w, ErrorParams{Code: http.StatusBadGateway, ErrCode: "refresh_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}
