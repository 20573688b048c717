package dto

// ── User admin DTOs ──

// UpdateRoleRequest changes a user's role.
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=ADMIN MEMBER"`
}

// SetActiveRequest toggles a user's active flag.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// ── Member self-service DTOs ──

// UpdateProfileRequest changes the caller's own name and email.
type UpdateProfileRequest struct {
	Name  string `json:"name"  binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}
