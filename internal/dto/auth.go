package dto

// ── auth requests ──

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"    binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the open-registration payload. Role defaults to
// STUDENT when absent.
type RegisterRequest struct {
	Name          string `json:"name"          binding:"required,min=1,max=100"`
	Email         string `json:"email"         binding:"required,email"`
	Password      string `json:"password"      binding:"required,min=6"`
	Role          string `json:"role"          binding:"omitempty,oneof=STUDENT ORIENTADOR COORDENADOR ADMIN"`
	Matriculation string `json:"matriculation" binding:"omitempty,max=20"`
	Course        string `json:"course"        binding:"omitempty,max=100"`
}

// RefreshTokenRequest is the token-refresh payload.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}
