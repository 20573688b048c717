package dto

// ── Settings DTOs ──

// UpdateSettingRequest writes a single setting.
type UpdateSettingRequest struct {
	Value string `json:"value"`
}

// UpdateSettingsRequest writes several settings at once
// (the admin settings form submits a whole group).
type UpdateSettingsRequest struct {
	Settings map[string]string `json:"settings" binding:"required,min=1"`
}

// SettingResponse is one configuration entry.
type SettingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	Label     string `json:"label"`
	Group     string `json:"group"`
	Type      string `json:"type"`
	UpdatedAt string `json:"updated_at"`
}
