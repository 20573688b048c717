package dto

// ── Shared responses ──

// UserResponse is the sanitized user payload returned to clients.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at,omitempty"`
}

// TokenResponse is the token pair returned by login and refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token lifetime in seconds
	User         UserResponse `json:"user"`
}

// ── Pagination ──

// PaginationRequest carries the shared page/page_size query parameters.
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage returns the page number with its default.
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize returns the page size with its default.
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset computes the query offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}

// DateRangeRequest carries the shared from/to query parameters
// (YYYY-MM-DD, inclusive).
type DateRangeRequest struct {
	From string `form:"from" binding:"required,datetime=2006-01-02"`
	To   string `form:"to"   binding:"required,datetime=2006-01-02"`
}
