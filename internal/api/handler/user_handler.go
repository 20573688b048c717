package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// UserHandler serves member administration and profile endpoints.
type UserHandler struct {
	userSvc service.UserService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *UserHandler) ListUsers(c *gin.Context) {
	var page dto.PaginationRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		response.BadRequest(c, 10001, "invalid pagination parameters")
		return
	}

	users, total, err := h.userSvc.List(c.Request.Context(), &page)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OKPage(c, users, total, page.GetPage(), page.GetPageSize())
}

// GetUser handles GET /api/v1/admin/users/:id.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.userSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

// UpdateRole handles PUT /api/v1/admin/users/:id/role.
func (h *UserHandler) UpdateRole(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.userSvc.UpdateRole(c.Request.Context(), c.Param("id"), req.Role, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, nil)
}

// SetActive handles PUT /api/v1/admin/users/:id/active.
func (h *UserHandler) SetActive(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.SetActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.userSvc.SetActive(c.Request.Context(), c.Param("id"), *req.IsActive, callerID); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, nil)
}

// DeleteUser handles DELETE /api/v1/admin/users/:id.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	if err := h.userSvc.Delete(c.Request.Context(), c.Param("id"), callerID); err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateProfile handles PUT /api/v1/profile.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	user, err := h.userSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleUserError(c, err)
		return
	}
	response.OK(c, user)
}

func (h *UserHandler) handleUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	case errors.Is(err, service.ErrSelfDelete):
		response.Conflict(c, 12002, "cannot delete your own account")
	case errors.Is(err, service.ErrSelfDemote):
		response.Conflict(c, 12003, "cannot change your own role or status")
	case errors.Is(err, service.ErrUserHasRecords):
		response.Conflict(c, 12004, "user still owns orders or registrations")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11002, "email already in use")
	default:
		response.InternalError(c)
	}
}
