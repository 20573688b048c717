package dto

// ── Page DTOs ──

// PageRequest creates or fully updates a content page.
type PageRequest struct {
	Title           string  `json:"title"            binding:"required,min=1,max=200"`
	Slug            string  `json:"slug"             binding:"required,min=1,max=100,lowercase"`
	Content         string  `json:"content"          binding:"required"`
	MetaTitle       *string `json:"meta_title"       binding:"omitempty,max=200"`
	MetaDescription *string `json:"meta_description" binding:"omitempty,max=500"`
	IsPublished     bool    `json:"is_published"`
}
