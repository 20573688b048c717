package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// RegistrationHandler serves event registration endpoints.
type RegistrationHandler struct {
	regSvc service.RegistrationService
}

// NewRegistrationHandler creates a RegistrationHandler.
func NewRegistrationHandler(regSvc service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{regSvc: regSvc}
}

// Register handles POST /api/v1/events/:id/register.
func (h *RegistrationHandler) Register(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	reg, err := h.regSvc.Register(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.Created(c, reg)
}

// Unregister handles DELETE /api/v1/events/:id/register.
func (h *RegistrationHandler) Unregister(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.regSvc.Unregister(c.Request.Context(), userID, c.Param("id")); err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.OK(c, nil)
}

// Status handles GET /api/v1/events/:id/registration.
func (h *RegistrationHandler) Status(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	status, err := h.regSvc.Status(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.OK(c, status)
}

// ListMine handles GET /api/v1/registrations.
func (h *RegistrationHandler) ListMine(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	regs, err := h.regSvc.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.OK(c, regs)
}

// ListByEvent handles GET /api/v1/admin/events/:id/registrations.
func (h *RegistrationHandler) ListByEvent(c *gin.Context) {
	regs, err := h.regSvc.ListByEvent(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.OK(c, regs)
}

// Remove handles DELETE /api/v1/admin/registrations/:id.
func (h *RegistrationHandler) Remove(c *gin.Context) {
	if err := h.regSvc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		h.handleRegistrationError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *RegistrationHandler) handleRegistrationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		response.NotFound(c, 13001, "event not found")
	case errors.Is(err, service.ErrRegistrationNotFound):
		response.NotFound(c, 13004, "registration not found")
	case errors.Is(err, service.ErrAlreadyRegistered):
		response.Conflict(c, 13005, "already registered for this event")
	case errors.Is(err, service.ErrEventNotOpen):
		response.Conflict(c, 13006, "event is not open for registration")
	case errors.Is(err, service.ErrEventPassed):
		response.Conflict(c, 13007, "event has already taken place")
	case errors.Is(err, service.ErrRegistrationsDisabled):
		response.Forbidden(c, 13008, "event registrations are disabled")
	default:
		response.InternalError(c)
	}
}
