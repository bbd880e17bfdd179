package auth

// Package auth contains domain-level types for authentication, sessions,
// and role policy. It is pure and free of framework/adapter concerns.

import (
	"strings"
	"time"
)

// Role represents an administrator's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleSuperAdmin      Role = "SUPER_ADMIN"
	RoleAdmin           Role = "ADMIN"
	RoleNetflixAdmin    Role = "NETFLIX_ADMIN"
	RoleNetflixAuthor   Role = "NETFLIX_AUTHOR"
	RoleYoutubeAdmin    Role = "YOUTUBE_ADMIN"
	RoleYoutubeAuthor   Role = "YOUTUBE_AUTHOR"
	RoleCustomerSupport Role = "CUSTOMER_SUPPORT"
	RoleOperation       Role = "OPERATION"
	RoleBranchManager   Role = "BRANCH_MANAGER"
	RoleBranchOfficer   Role = "BRANCH_OFFICER"
)

// knownRoles is the closed set of roles the application understands.
var knownRoles = map[Role]struct{}{
	RoleSuperAdmin:      {},
	RoleAdmin:           {},
	RoleNetflixAdmin:    {},
	RoleNetflixAuthor:   {},
	RoleYoutubeAdmin:    {},
	RoleYoutubeAuthor:   {},
	RoleCustomerSupport: {},
	RoleOperation:       {},
	RoleBranchManager:   {},
	RoleBranchOfficer:   {},
}

// NormalizeRole canonicalizes a raw role string at the system boundary.
// Casing and surrounding whitespace are the only things normalized; an
// unrecognized value survives as-is so that label lookups can echo it and
// access checks simply never match it.
func NormalizeRole(raw string) Role {
	return Role(strings.ToUpper(strings.TrimSpace(raw)))
}

// IsKnown reports whether the role is part of the closed enumeration.
func (r Role) IsKnown() bool {
	_, ok := knownRoles[r]
	return ok
}

// KnownRoles returns the closed role enumeration in declaration order.
func KnownRoles() []Role {
	return []Role{
		RoleSuperAdmin,
		RoleAdmin,
		RoleNetflixAdmin,
		RoleNetflixAuthor,
		RoleYoutubeAdmin,
		RoleYoutubeAuthor,
		RoleCustomerSupport,
		RoleOperation,
		RoleBranchManager,
		RoleBranchOfficer,
	}
}

// Privilege represents a product-line privilege attached to an admin user,
// orthogonal to Role.
type Privilege string

const (
	PrivilegeAll     Privilege = "ALL"
	PrivilegeNetflix Privilege = "NETFLIX"
	PrivilegeYoutube Privilege = "YOUTUBE"
)

// Principal represents the authenticated user returned by the identity
// provider. Adapters map provider-specific payloads into this shape.
type Principal struct {
	UID          string
	Email        string
	DisplayName  string
	PhoneNumber  string
	PhotoURL     string
	ProviderID   string
	CreatedAt    time.Time
	LastSignInAt time.Time

	// IDToken is the short-lived bearer credential for downstream APIs.
	IDToken string
	// RefreshToken renews the IDToken without re-entering credentials.
	RefreshToken string
	// ExpiresAt is the absolute IDToken expiry.
	ExpiresAt time.Time
}

// Profile is the administrative profile attached to a principal, resolved
// from the admin-user directory after sign-in.
type Profile struct {
	UserID     string      `json:"userId"`
	Email      string      `json:"email"`
	AdminName  string      `json:"adminName"`
	Account    string      `json:"account"`
	Role       Role        `json:"role"`
	Privileges []Privilege `json:"privileges"`
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier (e.g., random URL-safe string).
type Session struct {
	ID         string      `json:"id"`
	UserID     string      `json:"user_id"`
	Email      string      `json:"email"`
	Username   string      `json:"username"`
	Account    string      `json:"account"`
	Role       Role        `json:"role"`
	Privileges []Privilege `json:"privileges"`
	RememberMe bool        `json:"remember_me"`
	ExpiresAt  time.Time   `json:"expires_at"`
}
