package permission

import (
	"testing"

	"asso-portal/internal/model"
)

func TestAdminHasFullPermissionSet(t *testing.T) {
	all := []Permission{
		ManageEvents, ManageOrders, ManageUsers, ManagePages,
		ManageSettings, ManageMedia, ViewStats, ViewDashboard,
		RegisterEvents, CreateOrders,
	}
	for _, p := range all {
		if !Has(model.RoleAdmin, p) {
			t.Errorf("ADMIN should have %s", p)
		}
	}
	if !HasAll(model.RoleAdmin, all...) {
		t.Error("HasAll should be true for ADMIN over the full set")
	}
}

func TestMemberIsSelfServiceOnly(t *testing.T) {
	granted := []Permission{ViewDashboard, RegisterEvents, CreateOrders}
	denied := []Permission{
		ManageEvents, ManageOrders, ManageUsers, ManagePages,
		ManageSettings, ManageMedia, ViewStats,
	}

	for _, p := range granted {
		if !Has(model.RoleMember, p) {
			t.Errorf("MEMBER should have %s", p)
		}
	}
	for _, p := range denied {
		if Has(model.RoleMember, p) {
			t.Errorf("MEMBER must not have %s", p)
		}
	}
}

func TestUnknownRoleHasNothing(t *testing.T) {
	if Has("", CreateOrders) {
		t.Error("empty role must not have permissions")
	}
	if Has("GUEST", ViewDashboard) {
		t.Error("unknown role must not have permissions")
	}
	if HasAny("GUEST", ViewDashboard, CreateOrders) {
		t.Error("HasAny must be false for an unknown role")
	}
}

func TestIsAdmin(t *testing.T) {
	if !IsAdmin(model.RoleAdmin) {
		t.Error("ADMIN should be admin")
	}
	if IsAdmin(model.RoleMember) {
		t.Error("MEMBER should not be admin")
	}
}
