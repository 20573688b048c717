package handler

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// AuthHandler serves session and credential endpoints.
type AuthHandler struct {
	authSvc service.AuthService
	userSvc service.UserService
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc service.AuthService, userSvc service.UserService) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, userSvc: userSvc}
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	tokens, err := h.authSvc.Login(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	resp, err := h.authSvc.Register(c.Request.Context(), &req)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.Created(c, resp)
}

// RefreshToken handles POST /api/v1/auth/refresh.
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	tokens, err := h.authSvc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, tokens)
}

// Logout handles POST /api/v1/auth/logout.
func (h *AuthHandler) Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		// Blacklisting failures are swallowed; logout always succeeds.
		_ = h.authSvc.Logout(c.Request.Context(), parts[1])
	}
	response.OK(c, nil)
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	user, err := h.userSvc.Get(c.Request.Context(), userID)
	if err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, user)
}

// ChangePassword handles PUT /api/v1/auth/password.
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	var req dto.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.authSvc.ChangePassword(c.Request.Context(), userID, &req); err != nil {
		h.handleAuthError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *AuthHandler) handleAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, 11001, "invalid email or password")
	case errors.Is(err, service.ErrAccountDisabled):
		response.Forbidden(c, 10006, "account disabled")
	case errors.Is(err, service.ErrEmailTaken):
		response.Conflict(c, 11002, "email already in use")
	case errors.Is(err, service.ErrRegistrationClosed):
		response.Forbidden(c, 11003, "registration is closed")
	case errors.Is(err, service.ErrInvalidRefreshToken):
		response.Unauthorized(c, 11004, "invalid refresh token")
	case errors.Is(err, service.ErrWrongPassword):
		response.BadRequest(c, 11005, "current password is incorrect")
	case errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, 12001, "user not found")
	default:
		response.InternalError(c)
	}
}
