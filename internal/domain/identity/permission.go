package identity

// Permission is an enumerated capability tag checked against an admin's
// role-derived or explicit permission set.
type Permission string

const (
	PermUsersRead      Permission = "USERS_READ"
	PermUsersWrite     Permission = "USERS_WRITE"
	PermNotesRead      Permission = "NOTES_READ"
	PermNotesWrite     Permission = "NOTES_WRITE"
	PermTagsWrite      Permission = "TAGS_WRITE"
	PermSegmentsWrite  Permission = "SEGMENTS_WRITE"
	PermFinanceRead    Permission = "FINANCE_READ"
	PermActionsExecute Permission = "ACTIONS_EXECUTE"
	PermSettingsRead   Permission = "SETTINGS_READ"
	PermSettingsWrite  Permission = "SETTINGS_WRITE"
	PermRolesWrite     Permission = "ROLES_WRITE"
	PermSessionsWrite  Permission = "SESSIONS_WRITE"
)

// AllPermissions lists every known permission tag
var AllPermissions = []Permission{
	PermUsersRead,
	PermUsersWrite,
	PermNotesRead,
	PermNotesWrite,
	PermTagsWrite,
	PermSegmentsWrite,
	PermFinanceRead,
	PermActionsExecute,
	PermSettingsRead,
	PermSettingsWrite,
	PermRolesWrite,
	PermSessionsWrite,
}

// PermissionSet is a set of permission tags with membership lookup
type PermissionSet map[Permission]struct{}

// NewPermissionSet builds a set from the given permissions
func NewPermissionSet(perms ...Permission) PermissionSet {
	set := make(PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// Has reports whether the set contains the permission
func (s PermissionSet) Has(p Permission) bool {
	_, ok := s[p]
	return ok
}

// List returns the permissions in the set
func (s PermissionSet) List() []Permission {
	out := make([]Permission, 0, len(s))
	for p := range s {
		out = append(out, p)
	}
	return out
}

// IsValidPermission reports whether the tag is a known permission
func IsValidPermission(p Permission) bool {
	for _, known := range AllPermissions {
		if known == p {
			return true
		}
	}
	return false
}

// rolePermissions maps each role to its fixed permission bundle.
// SUPER_ADMIN is intentionally absent: it bypasses explicit checks.
var rolePermissions = map[Role]PermissionSet{
	RoleAdmin: NewPermissionSet(
		PermUsersRead, PermUsersWrite,
		PermNotesRead, PermNotesWrite,
		PermTagsWrite, PermSegmentsWrite,
		PermFinanceRead, PermActionsExecute,
		PermSettingsRead, PermSettingsWrite,
		PermSessionsWrite,
	),
	RoleManager: NewPermissionSet(
		PermUsersRead, PermUsersWrite,
		PermNotesRead, PermNotesWrite,
		PermTagsWrite, PermSegmentsWrite,
		PermFinanceRead, PermActionsExecute,
		PermSettingsRead,
	),
	RoleSupport: NewPermissionSet(
		PermUsersRead,
		PermNotesRead, PermNotesWrite,
		PermTagsWrite, PermActionsExecute,
	),
	RoleViewer: NewPermissionSet(
		PermUsersRead,
	),
}

// PermissionsForRole returns the fixed permission bundle implied by a role
func PermissionsForRole(role Role) PermissionSet {
	if perms, ok := rolePermissions[role]; ok {
		return perms
	}
	return NewPermissionSet()
}
