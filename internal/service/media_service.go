package service

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"asso-portal/config"
	"asso-portal/internal/dto"
	"asso-portal/internal/model"
	"asso-portal/internal/repository"
)

// ── Media business errors ──

var (
	ErrMediaNotFound   = errors.New("media not found")
	ErrFileTooLarge    = errors.New("file exceeds the size limit")
	ErrUnsupportedType = errors.New("unsupported file type")
)

// allowedMimeTypes maps every accepted upload type to its stored category
// and canonical extension.
var allowedMimeTypes = map[string]struct {
	category  string
	extension string
}{
	"image/jpeg":      {"image", ".jpg"},
	"image/png":       {"image", ".png"},
	"image/gif":       {"image", ".gif"},
	"image/webp":      {"image", ".webp"},
	"image/svg+xml":   {"image", ".svg"},
	"application/pdf": {"document", ".pdf"},
}

// UploadInput is one file from a multipart upload.
type UploadInput struct {
	FileName    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// UploadResult pairs an input file name with its outcome: either the stored
// record or the reason it was skipped.
type UploadResult struct {
	FileName string             `json:"file_name"`
	Media    *dto.MediaResponse `json:"media,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// MediaService stores uploaded files on disk under random names and tracks
// them in the media table.
type MediaService interface {
	// Upload stores a batch. Files failing validation are reported in the
	// result and skipped; they never abort the rest of the batch.
	Upload(ctx context.Context, files []UploadInput) ([]UploadResult, error)
	List(ctx context.Context, page *dto.PaginationRequest) ([]dto.MediaResponse, int64, error)
	UpdateAlt(ctx context.Context, id, alt string) error
	Delete(ctx context.Context, id string) error
}

type mediaService struct {
	repo   *repository.Repository
	cfg    *config.UploadConfig
	logger *zap.Logger
}

// NewMediaService creates a MediaService.
func NewMediaService(repo *repository.Repository, cfg *config.UploadConfig, logger *zap.Logger) MediaService {
	return &mediaService{repo: repo, cfg: cfg, logger: logger}
}

func toMediaResponse(media *model.Media) dto.MediaResponse {
	return dto.MediaResponse{
		ID:        media.ID,
		Name:      media.Name,
		URL:       media.URL,
		Type:      media.Type,
		MimeType:  media.MimeType,
		Size:      media.Size,
		Alt:       media.Alt,
		CreatedAt: media.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func (s *mediaService) storeOne(ctx context.Context, file UploadInput) (*dto.MediaResponse, error) {
	kind, ok := allowedMimeTypes[strings.ToLower(file.ContentType)]
	if !ok {
		return nil, ErrUnsupportedType
	}
	if file.Size > s.cfg.MaxSizeBytes {
		return nil, ErrFileTooLarge
	}

	name := uuid.NewString() + kind.extension
	path := filepath.Join(s.cfg.Dir, name)

	dst, err := os.Create(path)
	if err != nil {
		s.logger.Error("failed to create upload file", zap.Error(err))
		return nil, err
	}
	// LimitReader guards against a lying Content-Length.
	written, err := io.Copy(dst, io.LimitReader(file.Reader, s.cfg.MaxSizeBytes+1))
	dst.Close()
	if err != nil {
		os.Remove(path)
		s.logger.Error("failed to write upload", zap.Error(err))
		return nil, err
	}
	if written > s.cfg.MaxSizeBytes {
		os.Remove(path)
		return nil, ErrFileTooLarge
	}

	media := &model.Media{
		Name:     file.FileName,
		URL:      s.cfg.PublicPrefix + "/" + name,
		Type:     kind.category,
		MimeType: strings.ToLower(file.ContentType),
		Size:     written,
	}
	if err := s.repo.Media.Create(ctx, media); err != nil {
		os.Remove(path)
		s.logger.Error("failed to record media", zap.Error(err))
		return nil, err
	}
	resp := toMediaResponse(media)
	return &resp, nil
}

func (s *mediaService) Upload(ctx context.Context, files []UploadInput) ([]UploadResult, error) {
	if err := os.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		s.logger.Error("failed to create upload dir", zap.Error(err))
		return nil, err
	}

	results := make([]UploadResult, 0, len(files))
	for _, file := range files {
		media, err := s.storeOne(ctx, file)
		result := UploadResult{FileName: file.FileName, Media: media}
		if err != nil {
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results, nil
}

func (s *mediaService) List(ctx context.Context, page *dto.PaginationRequest) ([]dto.MediaResponse, int64, error) {
	items, total, err := s.repo.Media.List(ctx, page.GetOffset(), page.GetPageSize())
	if err != nil {
		s.logger.Error("failed to list media", zap.Error(err))
		return nil, 0, err
	}
	out := make([]dto.MediaResponse, 0, len(items))
	for i := range items {
		out = append(out, toMediaResponse(&items[i]))
	}
	return out, total, nil
}

func (s *mediaService) UpdateAlt(ctx context.Context, id, alt string) error {
	if _, err := s.repo.Media.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		s.logger.Error("failed to look up media", zap.Error(err))
		return err
	}
	return s.repo.Media.UpdateAlt(ctx, id, alt)
}

// Delete removes the row and then the file. A missing file on disk is
// logged, not surfaced: the row is the source of truth.
func (s *mediaService) Delete(ctx context.Context, id string) error {
	media, err := s.repo.Media.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMediaNotFound
		}
		s.logger.Error("failed to look up media", zap.Error(err))
		return err
	}
	if err := s.repo.Media.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete media", zap.Error(err))
		return err
	}

	name := filepath.Base(media.URL)
	if err := os.Remove(filepath.Join(s.cfg.Dir, name)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("failed to remove media file", zap.String("file", name), zap.Error(err))
	}
	return nil
}
