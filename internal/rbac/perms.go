package rbac

// Core platform permissions.
const (
	PermUsersView = "users.view"
	PermUsersEdit = "users.edit"

	PermRolesView = "roles.view"
	PermRolesEdit = "roles.edit"

	PermPermissionsView = "permissions.view"
	PermPermissionsEdit = "permissions.edit"
)

// CoreScopes lists all permissions related to the core platform.
func CoreScopes() []string {
	return []string{
		PermUsersView,
		PermUsersEdit,
		PermRolesView,
		PermRolesEdit,
		PermPermissionsView,
		PermPermissionsEdit,
	}
}

// StaticGrants is the compile-time role table used before role and
// permission rows exist in the store. Strictly additive: a role only
// ever contributes permissions, never removes them.
func StaticGrants() map[string][]string {
	return map[string][]string{
		RoleUser: {},
		RoleAdmin: {
			PermUsersView,
			PermRolesView,
			PermPermissionsView,
		},
		RoleSuperAdmin: CoreScopes(),
	}
}
