package httpx

import (
	"errors"
	"net/http"

	"github.com/nftheater/admin-api/internal/domain/menu"
)

// MenuHandlers serves the sidebar navigation filtered for the signed-in user.
type MenuHandlers struct {
	Sections []menu.Section
}

// Get returns the navigation sections visible to the current session.
// GET /api/menu.
func (h *MenuHandlers) Get(w http.ResponseWriter, r *http.Request) {
	session := GetSessionFromContext(r.Context())
	if session == nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusUnauthorized,
			ErrCode: "authentication_required",
			Err:     errors.New("authentication required"),
		})
		return
	}

	sections := h.Sections
	if sections == nil {
		sections = menu.Default()
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"sections": menu.Build(sections, session.Role, session.Privileges),
	})
}
