package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
)

func setupTestPageService() (PageService, *mocks) {
	repo, m := newTestRepository()
	svc := NewPageService(repo, zap.NewNop())
	return svc, m
}

func TestPageService_Create_SlugRules(t *testing.T) {
	svc, _ := setupTestPageService()

	page, err := svc.Create(context.Background(), &dto.PageRequest{
		Title: "Nos partenaires", Slug: "partenaires", Content: "...", IsPublished: true,
	})
	if err != nil {
		t.Fatalf("Create should succeed: %v", err)
	}
	if page.Slug != "partenaires" {
		t.Errorf("unexpected slug %s", page.Slug)
	}

	// Same slug again is a conflict.
	_, err = svc.Create(context.Background(), &dto.PageRequest{
		Title: "Doublon", Slug: "partenaires", Content: "...",
	})
	if !errors.Is(err, ErrSlugTaken) {
		t.Errorf("expected ErrSlugTaken, got %v", err)
	}

	// Uppercase and spaces are rejected.
	_, err = svc.Create(context.Background(), &dto.PageRequest{
		Title: "Bad", Slug: "Not A Slug", Content: "...",
	})
	if !errors.Is(err, ErrInvalidSlug) {
		t.Errorf("expected ErrInvalidSlug, got %v", err)
	}
}

func TestPageService_SystemPageProtection(t *testing.T) {
	svc, m := setupTestPageService()
	m.pages.pages["page-home"] = &model.Page{
		ID: "page-home", Slug: "home", Title: "Accueil", Content: "...", IsPublished: true,
	}

	if err := svc.Delete(context.Background(), "page-home"); !errors.Is(err, ErrSystemPage) {
		t.Errorf("expected ErrSystemPage on delete, got %v", err)
	}

	// Content edits stay allowed, slug changes do not.
	_, err := svc.Update(context.Background(), "page-home", &dto.PageRequest{
		Title: "Accueil", Slug: "home", Content: "updated", IsPublished: true,
	})
	if err != nil {
		t.Errorf("editing a system page should succeed: %v", err)
	}
	_, err = svc.Update(context.Background(), "page-home", &dto.PageRequest{
		Title: "Accueil", Slug: "accueil", Content: "updated", IsPublished: true,
	})
	if !errors.Is(err, ErrSystemPage) {
		t.Errorf("expected ErrSystemPage on slug change, got %v", err)
	}
}

func TestPageService_PublicLookup(t *testing.T) {
	svc, m := setupTestPageService()
	m.pages.pages["page-1"] = &model.Page{
		ID: "page-1", Slug: "draft", Title: "Brouillon", Content: "...", IsPublished: false,
	}
	m.pages.pages["page-2"] = &model.Page{
		ID: "page-2", Slug: "live", Title: "En ligne", Content: "...", IsPublished: true,
	}

	if _, err := svc.GetPublishedBySlug(context.Background(), "live"); err != nil {
		t.Errorf("published page should resolve: %v", err)
	}
	// Drafts look exactly like missing pages from outside.
	if _, err := svc.GetPublishedBySlug(context.Background(), "draft"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound for a draft, got %v", err)
	}
	if _, err := svc.GetPublishedBySlug(context.Background(), "nope"); !errors.Is(err, ErrPageNotFound) {
		t.Errorf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageService_DeleteRegularPage(t *testing.T) {
	svc, m := setupTestPageService()
	m.pages.pages["page-1"] = &model.Page{ID: "page-1", Slug: "extra", Title: "Extra", Content: "..."}

	if err := svc.Delete(context.Background(), "page-1"); err != nil {
		t.Fatalf("Delete should succeed: %v", err)
	}
	if _, ok := m.pages.pages["page-1"]; ok {
		t.Error("page should be gone")
	}
}
