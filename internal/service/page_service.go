package service

import (
	"context"
	"errors"
	"regexp"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Page business errors ──

var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("slug already in use")
	ErrInvalidSlug  = errors.New("slug must be lowercase letters, digits and hyphens")
	ErrSystemPage   = errors.New("system pages cannot be deleted")
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// PageService manages editable content pages.
type PageService interface {
	Create(ctx context.Context, req *dto.PageRequest) (*model.Page, error)
	Get(ctx context.Context, id string) (*model.Page, error)
	// GetPublishedBySlug serves the public site; unpublished pages are
	// indistinguishable from missing ones.
	GetPublishedBySlug(ctx context.Context, slug string) (*model.Page, error)
	Update(ctx context.Context, id string, req *dto.PageRequest) (*model.Page, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]model.Page, error)
}

type pageService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewPageService creates a PageService.
func NewPageService(repo *repository.Repository, logger *zap.Logger) PageService {
	return &pageService{repo: repo, logger: logger}
}

func (s *pageService) checkSlug(ctx context.Context, slug, excludeID string) error {
	if !slugPattern.MatchString(slug) {
		return ErrInvalidSlug
	}
	taken, err := s.repo.Page.SlugExists(ctx, slug, excludeID)
	if err != nil {
		s.logger.Error("failed to check slug", zap.Error(err))
		return err
	}
	if taken {
		return ErrSlugTaken
	}
	return nil
}

func (s *pageService) Create(ctx context.Context, req *dto.PageRequest) (*model.Page, error) {
	if err := s.checkSlug(ctx, req.Slug, ""); err != nil {
		return nil, err
	}
	page := &model.Page{
		Slug:            req.Slug,
		Title:           req.Title,
		Content:         req.Content,
		MetaTitle:       req.MetaTitle,
		MetaDescription: req.MetaDescription,
		IsPublished:     req.IsPublished,
	}
	if err := s.repo.Page.Create(ctx, page); err != nil {
		s.logger.Error("failed to create page", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *pageService) Get(ctx context.Context, id string) (*model.Page, error) {
	page, err := s.repo.Page.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		s.logger.Error("failed to look up page", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *pageService) GetPublishedBySlug(ctx context.Context, slug string) (*model.Page, error) {
	page, err := s.repo.Page.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		s.logger.Error("failed to look up page", zap.Error(err))
		return nil, err
	}
	if !page.IsPublished {
		return nil, ErrPageNotFound
	}
	return page, nil
}

func (s *pageService) Update(ctx context.Context, id string, req *dto.PageRequest) (*model.Page, error) {
	page, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	// System pages keep their slug; everything else about them is editable.
	if page.IsSystem() && req.Slug != page.Slug {
		return nil, ErrSystemPage
	}
	if req.Slug != page.Slug {
		if err := s.checkSlug(ctx, req.Slug, page.ID); err != nil {
			return nil, err
		}
	}
	page.Slug = req.Slug
	page.Title = req.Title
	page.Content = req.Content
	page.MetaTitle = req.MetaTitle
	page.MetaDescription = req.MetaDescription
	page.IsPublished = req.IsPublished
	if err := s.repo.Page.Update(ctx, page); err != nil {
		s.logger.Error("failed to update page", zap.Error(err))
		return nil, err
	}
	return page, nil
}

func (s *pageService) Delete(ctx context.Context, id string) error {
	page, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if page.IsSystem() {
		return ErrSystemPage
	}
	return s.repo.Page.Delete(ctx, id)
}

func (s *pageService) List(ctx context.Context) ([]model.Page, error) {
	return s.repo.Page.List(ctx)
}
