package handler

import (
	"errors"
	"mime/multipart"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// MediaHandler serves the admin media library.
type MediaHandler struct {
	mediaSvc service.MediaService
}

// NewMediaHandler creates a MediaHandler.
func NewMediaHandler(mediaSvc service.MediaService) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// Upload handles POST /api/v1/admin/media.
//
// Accepts one or more files under the "files" multipart field. Invalid files
// are reported per file without failing the whole batch.
func (h *MediaHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		response.BadRequest(c, 10001, "invalid multipart form")
		return
	}

	files := form.File["files"]
	if len(files) == 0 {
		response.BadRequest(c, 18001, "no files provided")
		return
	}

	inputs := make([]service.UploadInput, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			f.Close()
		}
	}()

	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, 18002, "could not read uploaded file")
			return
		}
		opened = append(opened, f)
		inputs = append(inputs, service.UploadInput{
			FileName:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Reader:      f,
		})
	}

	results, err := h.mediaSvc.Upload(c.Request.Context(), inputs)
	if err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.Created(c, results)
}

// ListMedia handles GET /api/v1/admin/media.
func (h *MediaHandler) ListMedia(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid pagination parameters")
		return
	}

	media, total, err := h.mediaSvc.List(c.Request.Context(), &page)
	if err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OKPage(c, media, total, page.GetPage(), page.GetPageSize())
}

// UpdateAlt handles PUT /api/v1/admin/media/:id/alt.
func (h *MediaHandler) UpdateAlt(c *gin.Context) {
	var req dto.UpdateAltRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.mediaSvc.UpdateAlt(c.Request.Context(), c.Param("id"), req.Alt); err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OK(c, nil)
}

// DeleteMedia handles DELETE /api/v1/admin/media/:id.
func (h *MediaHandler) DeleteMedia(c *gin.Context) {
	if err := h.mediaSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleMediaError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *MediaHandler) handleMediaError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMediaNotFound):
		response.NotFound(c, 18003, "media not found")
	case errors.Is(err, service.ErrFileTooLarge):
		response.BadRequest(c, 18004, "file exceeds the size limit")
	case errors.Is(err, service.ErrUnsupportedType):
		response.BadRequest(c, 18005, "unsupported file type")
	default:
		response.InternalError(c)
	}
}
