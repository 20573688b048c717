package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// EventHandler serves event endpoints: the public agenda, the admin CRUD
// and the calendar feed.
type EventHandler struct {
	eventSvc service.EventService
}

// NewEventHandler creates an EventHandler.
func NewEventHandler(eventSvc service.EventService) *EventHandler {
	return &EventHandler{eventSvc: eventSvc}
}

// ListPublished handles GET /api/v1/events.
func (h *EventHandler) ListPublished(c *gin.Context) {
	events, err := h.eventSvc.ListPublished(c.Request.Context())
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, events)
}

// GetEvent handles GET /api/v1/events/:id.
func (h *EventHandler) GetEvent(c *gin.Context) {
	event, err := h.eventSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	// The public route never exposes drafts.
	if !event.IsPublished && !CallerIsAdmin(c) {
		response.NotFound(c, 13001, "event not found")
		return
	}
	response.OK(c, event)
}

// CalendarFeed handles GET /api/v1/events/calendar.ics.
func (h *EventHandler) CalendarFeed(c *gin.Context) {
	feed, err := h.eventSvc.CalendarFeed(c.Request.Context())
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="events.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}

// ListAll handles GET /api/v1/admin/events.
func (h *EventHandler) ListAll(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid pagination parameters")
		return
	}

	events, total, err := h.eventSvc.List(c.Request.Context(), &page)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OKPage(c, events, total, page.GetPage(), page.GetPageSize())
}

// CreateEvent handles POST /api/v1/admin/events.
func (h *EventHandler) CreateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.Created(c, event)
}

// UpdateEvent handles PUT /api/v1/admin/events/:id.
func (h *EventHandler) UpdateEvent(c *gin.Context) {
	var req dto.CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	event, err := h.eventSvc.Update(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, event)
}

// DeleteEvent handles DELETE /api/v1/admin/events/:id.
func (h *EventHandler) DeleteEvent(c *gin.Context) {
	if err := h.eventSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetPublished handles PUT /api/v1/admin/events/:id/published.
func (h *EventHandler) SetPublished(c *gin.Context) {
	var req dto.SetPublishedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.eventSvc.SetPublished(c.Request.Context(), c.Param("id"), *req.IsPublished); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

// AddPhoto handles POST /api/v1/admin/events/:id/photos.
func (h *EventHandler) AddPhoto(c *gin.Context) {
	var req dto.AddPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	photo, err := h.eventSvc.AddPhoto(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.handleEventError(c, err)
		return
	}
	response.Created(c, photo)
}

// DeletePhoto handles DELETE /api/v1/admin/events/photos/:photoID.
func (h *EventHandler) DeletePhoto(c *gin.Context) {
	if err := h.eventSvc.DeletePhoto(c.Request.Context(), c.Param("photoID")); err != nil {
		h.handleEventError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *EventHandler) handleEventError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 13001, "event not found")
	case errors.Is(err, service.ErrEventHasRegistration):
		response.Conflict(c, 13002, "event still has registrations")
	case errors.Is(err, service.ErrPhotoNotFound):
		response.NotFound(c, 13003, "photo not found")
	default:
		response.InternalError(c)
	}
}
