package menu

// Package menu defines the static sidebar navigation and the role/privilege
// filter applied per signed-in user. It is pure; handlers serve the result.

import "github.com/nftheater/admin-api/internal/domain/auth"

// Item is one navigation entry. Access is granted when the user's role is in
// AllowedRoles OR any of the user's privileges is in AllowedPrivileges. An
// empty list places no restriction on its axis.
type Item struct {
	Title             string           `json:"title"`
	Path              string           `json:"path"`
	Icon              string           `json:"icon,omitempty"`
	AllowedRoles      []auth.Role      `json:"-"`
	AllowedPrivileges []auth.Privilege `json:"-"`
}

// Section groups items under a sidebar header.
type Section struct {
	Header string `json:"header,omitempty"`
	Items  []Item `json:"items"`
}

// Build filters sections for the given role and privileges. Declared order is
// preserved, sections left with no visible items are dropped, and the result
// is computed fresh on every call.
func Build(sections []Section, role auth.Role, privileges []auth.Privilege) []Section {
	out := make([]Section, 0, len(sections))
	for _, section := range sections {
		items := make([]Item, 0, len(section.Items))
		for _, item := range section.Items {
			if auth.HasAllowedRole(role, item.AllowedRoles) || hasPrivilegeGrant(privileges, item.AllowedPrivileges) {
				items = append(items, item)
			}
		}
		if len(items) == 0 {
			continue
		}
		out = append(out, Section{Header: section.Header, Items: items})
	}
	return out
}

// hasPrivilegeGrant mirrors auth.HasAllowedPrivilege but treats an empty
// allow-list as no grant. Without this the OR with the role check would make
// every unrestricted-privilege item visible regardless of role.
func hasPrivilegeGrant(privileges []auth.Privilege, allowed []auth.Privilege) bool {
	if len(allowed) == 0 {
		return false
	}
	return auth.HasAllowedPrivilege(privileges, allowed)
}

// fleet administration is open to every signed-in back office role
var fleetRoles = []auth.Role{
	auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleCustomerSupport,
	auth.RoleOperation, auth.RoleBranchManager, auth.RoleBranchOfficer,
}

// Default is the full sidebar before per-user filtering.
func Default() []Section {
	return []Section{
		{
			Header: "menu.fleet",
			Items: []Item{
				{Title: "menu.cars", Path: "/car", Icon: "car", AllowedRoles: fleetRoles},
				{Title: "menu.bookings", Path: "/booking", Icon: "calendar", AllowedRoles: fleetRoles},
				{Title: "menu.customers", Path: "/customer", Icon: "users", AllowedRoles: fleetRoles},
				{Title: "menu.staff", Path: "/staff", Icon: "badge", AllowedRoles: []auth.Role{
					auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleBranchManager,
				}},
				{Title: "menu.vouchers", Path: "/voucher", Icon: "ticket", AllowedRoles: []auth.Role{
					auth.RoleSuperAdmin, auth.RoleAdmin, auth.RoleCustomerSupport,
				}},
			},
		},
		{
			Header: "menu.reselling",
			Items: []Item{
				{
					Title:        "menu.netflix",
					Path:         "/netflix",
					Icon:         "tv",
					AllowedRoles: []auth.Role{auth.RoleSuperAdmin, auth.RoleNetflixAdmin, auth.RoleNetflixAuthor},
					AllowedPrivileges: []auth.Privilege{
						auth.PrivilegeAll, auth.PrivilegeNetflix,
					},
				},
				{
					Title:        "menu.youtube",
					Path:         "/youtube",
					Icon:         "play",
					AllowedRoles: []auth.Role{auth.RoleSuperAdmin, auth.RoleYoutubeAdmin, auth.RoleYoutubeAuthor},
					AllowedPrivileges: []auth.Privilege{
						auth.PrivilegeAll, auth.PrivilegeYoutube,
					},
				},
			},
		},
		{
			Header: "menu.compliance",
			Items: []Item{
				{Title: "menu.consentLogs", Path: "/consent-log", Icon: "clipboard", AllowedRoles: []auth.Role{
					auth.RoleSuperAdmin, auth.RoleAdmin,
				}},
			},
		},
		{
			Header: "menu.administration",
			Items: []Item{
				{Title: "menu.adminUsers", Path: "/admin", Icon: "shield", AllowedRoles: []auth.Role{
					auth.RoleSuperAdmin,
				}},
				{Title: "menu.settings", Path: "/settings", Icon: "gear", AllowedRoles: []auth.Role{
					auth.RoleSuperAdmin, auth.RoleAdmin,
				}},
			},
		},
	}
}
