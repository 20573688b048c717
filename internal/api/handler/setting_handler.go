package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"asso-portal/internal/dto"
	"asso-portal/internal/service"
	"asso-portal/pkg/response"
)

// SettingHandler serves site settings and feature flags.
type SettingHandler struct {
	settingsSvc service.SettingsService
}

// NewSettingHandler creates a SettingHandler.
func NewSettingHandler(settingsSvc service.SettingsService) *SettingHandler {
	return &SettingHandler{settingsSvc: settingsSvc}
}

// PublicFlags handles GET /api/v1/settings/flags.
//
// Exposes only the feature switches the frontend needs before login.
func (h *SettingHandler) PublicFlags(c *gin.Context) {
	ctx := c.Request.Context()
	response.OK(c, gin.H{
		"maintenance_mode":      h.settingsSvc.IsMaintenanceMode(ctx),
		"orders_enabled":        h.settingsSvc.IsOrdersEnabled(ctx),
		"registrations_enabled": h.settingsSvc.IsRegistrationsEnabled(ctx),
		"registration_open":     h.settingsSvc.IsRegistrationOpen(ctx),
	})
}

// ── Admin ──

// ListSettings handles GET /api/v1/admin/settings.
//
// An optional ?group= query narrows the listing to one settings group.
func (h *SettingHandler) ListSettings(c *gin.Context) {
	var (
		settings []dto.SettingResponse
		err      error
	)
	if group := c.Query("group"); group != "" {
		settings, err = h.settingsSvc.ListByGroup(c.Request.Context(), group)
	} else {
		settings, err = h.settingsSvc.List(c.Request.Context())
	}
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, settings)
}

// GetSetting handles GET /api/v1/admin/settings/:key.
func (h *SettingHandler) GetSetting(c *gin.Context) {
	setting, err := h.settingsSvc.Get(c.Request.Context(), c.Param("key"))
	if err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, setting)
}

// UpdateSetting handles PUT /api/v1/admin/settings/:key.
func (h *SettingHandler) UpdateSetting(c *gin.Context) {
	var req dto.UpdateSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.settingsSvc.Update(c.Request.Context(), c.Param("key"), req.Value); err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, nil)
}

// UpdateSettings handles PUT /api/v1/admin/settings.
//
// Applies a batch of key/value updates in one call.
func (h *SettingHandler) UpdateSettings(c *gin.Context) {
	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	if err := h.settingsSvc.UpdateMany(c.Request.Context(), req.Settings); err != nil {
		h.handleSettingError(c, err)
		return
	}
	response.OK(c, nil)
}

func (h *SettingHandler) handleSettingError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSettingNotFound):
		response.NotFound(c, 17001, "setting not found")
	default:
		response.InternalError(c)
	}
}
