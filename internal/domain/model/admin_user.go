//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/nftheater/admin-api/internal/domain/auth"
)

const maxAdminNameLen = 255

// AdminUser represents a back office administrator record. UID is the stable
// identity provider identifier; ID is our own row key.
type AdminUser struct {
	ID         string    `json:"id"         db:"id"`
	UID        string    `json:"uid"        db:"uid"`
	Email      string    `json:"email"      db:"email"`
	AdminName  string    `json:"adminName"  db:"admin_name"`
	Account    string    `json:"account"    db:"account"`
	Role       string    `json:"role"       db:"role"`
	Privileges []string  `json:"privileges" db:"privileges"`
	IsActive   bool      `json:"isActive"   db:"is_active"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt"  db:"updated_at"`
}

// Profile converts the row into the domain profile handed to the auth layer.
func (u AdminUser) Profile() domainauth.Profile {
	privileges := make([]domainauth.Privilege, len(u.Privileges))
	for i, p := range u.Privileges {
		privileges[i] = domainauth.Privilege(p)
	}
	return domainauth.Profile{
		UserID:     u.UID,
		Email:      u.Email,
		AdminName:  u.AdminName,
		Account:    u.Account,
		Role:       domainauth.NormalizeRole(u.Role),
		Privileges: privileges,
	}
}

// CreateAdminUserRequest carries inputs for creating an administrator.
type CreateAdminUserRequest struct {
	UID        string   `json:"uid"`
	Email      string   `json:"email"`
	AdminName  string   `json:"adminName"`
	Account    string   `json:"account"`
	Role       string   `json:"role"`
	Privileges []string `json:"privileges"`
}

// Validate checks required fields and the role enumeration.
func (r *CreateAdminUserRequest) Validate() error {
	if strings.TrimSpace(r.UID) == "" {
		return errors.New("uid is required and cannot be empty")
	}
	if strings.TrimSpace(r.Email) == "" {
		return errors.New("email is required and cannot be empty")
	}
	name := strings.TrimSpace(r.AdminName)
	if name == "" {
		return errors.New("adminName is required and cannot be empty")
	}
	if len(name) > maxAdminNameLen {
		return errors.New("adminName cannot exceed 255 characters")
	}
	if !domainauth.NormalizeRole(r.Role).IsKnown() {
		return errors.New("role must be one of: " + knownRoleList())
	}
	return nil
}

// UpdateAdminUserRequest carries optional updates for an administrator.
// Nil fields are left unchanged.
type UpdateAdminUserRequest struct {
	AdminName  *string   `json:"adminName,omitempty"`
	Account    *string   `json:"account,omitempty"`
	Role       *string   `json:"role,omitempty"`
	Privileges *[]string `json:"privileges,omitempty"`
	IsActive   *bool     `json:"isActive,omitempty"`
}

// Validate checks the optional fields that carry constraints.
func (r *UpdateAdminUserRequest) Validate() error {
	if r.AdminName != nil {
		name := strings.TrimSpace(*r.AdminName)
		if name == "" {
			return errors.New("adminName cannot be empty")
		}
		if len(name) > maxAdminNameLen {
			return errors.New("adminName cannot exceed 255 characters")
		}
	}
	if r.Role != nil && !domainauth.NormalizeRole(*r.Role).IsKnown() {
		return errors.New("role must be one of: " + knownRoleList())
	}
	return nil
}

// knownRoleList renders the role enumeration for validation messages.
func knownRoleList() string {
	roles := domainauth.KnownRoles()
	out := make([]string, len(roles))
	for i, role := range roles {
		out[i] = string(role)
	}
	return strings.Join(out, ", ")
}

// AdminUsersListOptions controls paging and filtering for listing administrators.
// Notes:
// - Sort supports: "created_at", "admin_name", "email" (case-insensitive).
// - Dir supports: "asc", "desc" (case-insensitive); values are normalized internally.
// - Q matches admin_name or email via ILIKE substring.
// - Role and IsActive match exactly.
type AdminUsersListOptions struct {
	Limit    int
	Offset   int
	Q        *string
	Role     *string
	IsActive *bool
	Sort     string
	Dir      string
}
