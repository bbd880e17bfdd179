package httpx

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/nftheater/admin-api/internal/data"
	"github.com/nftheater/admin-api/internal/domain/model"
	"github.com/nftheater/admin-api/internal/service"
)

// AdminUserHandlers provides HTTP handlers for administrator account management.
type AdminUserHandlers struct {
	Svc *service.AdminUserService
}

const (
	maxAdminListLimit = 100 // Maximum number of administrators that can be requested in one call
)

// Create handles HTTP requests to register a new administrator.
func (h *AdminUserHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req model.CreateAdminUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAdminUserExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "admin_exists", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "create_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusCreated, user)
}

// List handles HTTP requests to list administrators with filters and pagination.
func (h *AdminUserHandlers) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, 50, maxAdminListLimit)

	opts := model.AdminUsersListOptions{
		Limit:  limit,
		Offset: offset,
		Sort:   r.URL.Query().Get("sort"),
		Dir:    r.URL.Query().Get("dir"),
	}
	if q := r.URL.Query().Get("q"); q != "" {
		opts.Q = &q
	}
	if role := r.URL.Query().Get("role"); role != "" {
		opts.Role = &role
	}
	if raw := r.URL.Query().Get("isActive"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "invalid_query",
				Err:     errors.New("isActive must be a boolean"),
			})
			return
		}
		opts.IsActive = &active
	}

	users, err := h.Svc.ListWithOptions(r.Context(), opts)
	if err != nil {
		if isValidationError(err) {
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_query", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "list_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"admins": users,
		"limit":  limit,
		"offset": offset,
	})
}

// GetByUID handles HTTP requests to get an administrator by provider UID.
func (h *AdminUserHandlers) GetByUID(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("admin uid is required")},
		)
		return
	}

	user, err := h.Svc.GetByUID(r.Context(), uid)
	if err != nil {
		if errors.Is(err, data.ErrAdminUserNotFound) {
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_not_found", Err: err})
			return
		}
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "get_failed", Err: err})
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Update handles HTTP requests to update an administrator.
func (h *AdminUserHandlers) Update(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("admin uid is required")},
		)
		return
	}

	var req model.UpdateAdminUserRequest
	if !DecodeJSON(w, r, &req) {
		return
	}

	user, err := h.Svc.Update(r.Context(), uid, req)
	if err != nil {
		switch {
		case errors.Is(err, data.ErrAdminUserNotFound):
			WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_not_found", Err: err})
		case errors.Is(err, data.ErrAdminUserExists):
			WriteError(w, ErrorParams{Code: http.StatusConflict, ErrCode: "admin_exists", Err: err})
		case isValidationError(err):
			WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "validation_failed", Err: err})
		default:
			WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "update_failed", Err: err})
		}
		return
	}

	WriteJSON(w, http.StatusOK, user)
}

// Deactivate handles HTTP requests to disable an administrator account.
func (h *AdminUserHandlers) Deactivate(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("admin uid is required")},
		)
		return
	}

	done, err := h.Svc.Deactivate(r.Context(), uid)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "deactivate_failed", Err: err})
		return
	}
	if !done {
		WriteError(
			w,
			ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "admin_not_found",
				Err:     errors.New("administrator not found or already inactive"),
			},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deactivated": true})
}

// Delete handles HTTP requests to remove an administrator.
func (h *AdminUserHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	uid := r.PathValue("uid")
	if uid == "" {
		WriteError(
			w,
			ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_path", Err: errors.New("admin uid is required")},
		)
		return
	}

	deleted, err := h.Svc.Delete(r.Context(), uid)
	if err != nil {
		WriteError(w, ErrorParams{Code: http.StatusInternalServerError, ErrCode: "delete_failed", Err: err})
		return
	}
	if !deleted {
		WriteError(
			w,
			ErrorParams{Code: http.StatusNotFound, ErrCode: "admin_not_found", Err: errors.New("administrator not found")},
		)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
