package dto

// ── Media DTOs ──

// UpdateAltRequest changes the alt text of an uploaded file.
type UpdateAltRequest struct {
	Alt string `json:"alt" binding:"max=255"`
}

// MediaResponse describes one stored file.
type MediaResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	URL       string  `json:"url"`
	Type      string  `json:"type"`
	MimeType  string  `json:"mime_type"`
	Size      int64   `json:"size"`
	Alt       *string `json:"alt,omitempty"`
	CreatedAt string  `json:"created_at"`
}
