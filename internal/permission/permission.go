// Package permission holds the static role→permission table consumed by
// the route middleware and, for ownership checks, by the services.
package permission

import "asso-portal/internal/model"

// Permission names an action a role may perform.
type Permission string

const (
	ManageEvents   Permission = "manage_events"
	ManageOrders   Permission = "manage_orders"
	ManageUsers    Permission = "manage_users"
	ManagePages    Permission = "manage_pages"
	ManageSettings Permission = "manage_settings"
	ManageMedia    Permission = "manage_media"
	ViewStats      Permission = "view_stats"
	ViewDashboard  Permission = "view_dashboard"
	RegisterEvents Permission = "register_events"
	CreateOrders   Permission = "create_orders"
)

var rolePermissions = map[string][]Permission{
	model.RoleAdmin: {
		ManageEvents,
		ManageOrders,
		ManageUsers,
		ManagePages,
		ManageSettings,
		ManageMedia,
		ViewStats,
		ViewDashboard,
		RegisterEvents,
		CreateOrders,
	},
	model.RoleMember: {
		ViewDashboard,
		RegisterEvents,
		CreateOrders,
	},
}

// Has reports whether the role is granted the permission.
func Has(role string, p Permission) bool {
	for _, granted := range rolePermissions[role] {
		if granted == p {
			return true
		}
	}
	return false
}

// HasAny reports whether the role is granted at least one of the permissions.
func HasAny(role string, perms ...Permission) bool {
	for _, p := range perms {
		if Has(role, p) {
			return true
		}
	}
	return false
}

// HasAll reports whether the role is granted every one of the permissions.
func HasAll(role string, perms ...Permission) bool {
	for _, p := range perms {
		if !Has(role, p) {
			return false
		}
	}
	return true
}

// IsAdmin is a shortcut for the full-access role.
func IsAdmin(role string) bool { return role == model.RoleAdmin }
