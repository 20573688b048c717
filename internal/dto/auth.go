package dto

// ── Auth DTOs ──

// LoginRequest is the credential login payload.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the self-service signup payload.
type RegisterRequest struct {
	Name     string `json:"name"     binding:"required,min=2,max=100"`
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// RegisterResponse confirms a signup.
type RegisterResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// RefreshTokenRequest carries a refresh token.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// ChangePasswordRequest is the authenticated password change payload.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password"     binding:"required,min=6,max=72"`
}
