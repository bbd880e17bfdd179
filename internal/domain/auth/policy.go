package auth

// HasAllowedRole reports whether the given role grants access under the
// allow-list. An empty allow-list means the resource is unrestricted and any
// role (including none) passes. A non-empty allow-list requires membership;
// an empty role never matches one.
func HasAllowedRole(role Role, allowed []Role) bool {
	if len(allowed) == 0 {
		return true
	}
	if role == "" {
		return false
	}
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// HasAllowedPrivilege reports whether any of the user's privileges overlaps
// the allow-list. An empty allow-list means unrestricted.
func HasAllowedPrivilege(privileges []Privilege, allowed []Privilege) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, p := range privileges {
		for _, a := range allowed {
			if p == a {
				return true
			}
		}
	}
	return false
}

// Translator resolves a message ID into a localized string.
type Translator func(messageID string) string

// roleMessageIDs maps known roles to their translation catalog IDs.
var roleMessageIDs = map[Role]string{
	RoleSuperAdmin:      "role.superAdmin",
	RoleAdmin:           "role.admin",
	RoleNetflixAdmin:    "role.netflixAdmin",
	RoleNetflixAuthor:   "role.netflixAuthor",
	RoleYoutubeAdmin:    "role.youtubeAdmin",
	RoleYoutubeAuthor:   "role.youtubeAuthor",
	RoleCustomerSupport: "role.customerSupport",
	RoleOperation:       "role.operation",
	RoleBranchManager:   "role.branchManager",
	RoleBranchOfficer:   "role.branchOfficer",
}

// RoleLabel returns the display label for a role. Known roles resolve
// through the translator; unknown roles echo the raw value unchanged.
// The function is total and never panics on any input.
func RoleLabel(role Role, translate Translator) string {
	id, ok := roleMessageIDs[role]
	if !ok || translate == nil {
		return string(role)
	}
	return translate(id)
}
