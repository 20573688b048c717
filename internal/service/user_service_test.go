package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
)

func setupTestUserService() (UserService, *mocks) {
	repo, m := newTestRepository()
	svc := NewUserService(repo, zap.NewNop())
	return svc, m
}

func TestUserService_UpdateRole(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "admin-1", "admin@asso.fr", "x", model.RoleAdmin, true)
	seedUser(m, "user-1", "member@asso.fr", "x", model.RoleMember, true)

	if err := svc.UpdateRole(context.Background(), "user-1", model.RoleAdmin, "admin-1"); err != nil {
		t.Fatalf("UpdateRole should succeed: %v", err)
	}
	if m.users.users["user-1"].Role != model.RoleAdmin {
		t.Error("role not persisted")
	}

	// Self-demotion is refused.
	if err := svc.UpdateRole(context.Background(), "admin-1", model.RoleMember, "admin-1"); !errors.Is(err, ErrSelfDemote) {
		t.Errorf("expected ErrSelfDemote, got %v", err)
	}
}

func TestUserService_SetActive(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "admin-1", "admin@asso.fr", "x", model.RoleAdmin, true)
	seedUser(m, "user-1", "member@asso.fr", "x", model.RoleMember, true)

	if err := svc.SetActive(context.Background(), "user-1", false, "admin-1"); err != nil {
		t.Fatalf("SetActive should succeed: %v", err)
	}
	if m.users.users["user-1"].IsActive {
		t.Error("user should be disabled")
	}

	if err := svc.SetActive(context.Background(), "admin-1", false, "admin-1"); !errors.Is(err, ErrSelfDemote) {
		t.Errorf("expected ErrSelfDemote on self-deactivation, got %v", err)
	}
}

func TestUserService_Delete_SelfRefused(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "admin-1", "admin@asso.fr", "x", model.RoleAdmin, true)

	if err := svc.Delete(context.Background(), "admin-1", "admin-1"); !errors.Is(err, ErrSelfDelete) {
		t.Errorf("expected ErrSelfDelete, got %v", err)
	}
}

func TestUserService_UpdateProfile_EmailConflict(t *testing.T) {
	svc, m := setupTestUserService()
	seedUser(m, "user-1", "one@asso.fr", "x", model.RoleMember, true)
	seedUser(m, "user-2", "two@asso.fr", "x", model.RoleMember, true)

	_, err := svc.UpdateProfile(context.Background(), "user-1", &dto.UpdateProfileRequest{
		Name: "One", Email: "two@asso.fr",
	})
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("expected ErrEmailTaken, got %v", err)
	}

	// Keeping one's own email is fine.
	updated, err := svc.UpdateProfile(context.Background(), "user-1", &dto.UpdateProfileRequest{
		Name: "Renamed", Email: "one@asso.fr",
	})
	if err != nil {
		t.Fatalf("UpdateProfile should succeed: %v", err)
	}
	if updated.Name != "Renamed" {
		t.Errorf("expected renamed user, got %+v", updated)
	}
}
