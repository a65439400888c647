package dto

// ── user requests ──

// UserListRequest is the admin listing query.
type UserListRequest struct {
	PaginationRequest
	Role   string `form:"role"   binding:"omitempty,oneof=STUDENT ORIENTADOR COORDENADOR ADMIN"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// CreateUserRequest is the admin user-creation payload.
type CreateUserRequest struct {
	Name          string `json:"name"          binding:"required,min=1,max=100"`
	Email         string `json:"email"         binding:"required,email"`
	Password      string `json:"password"      binding:"required,min=6"`
	Role          string `json:"role"          binding:"required,oneof=STUDENT ORIENTADOR COORDENADOR ADMIN"`
	Matriculation string `json:"matriculation" binding:"omitempty,max=20"`
	Course        string `json:"course"        binding:"omitempty,max=100"`
}

// UpdateUserRequest is the partial user update. Role is silently stripped
// for non-admin callers; password is hashed before storage.
type UpdateUserRequest struct {
	Name     *string `json:"name"     binding:"omitempty,min=1,max=100"`
	Email    *string `json:"email"    binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role"     binding:"omitempty,oneof=STUDENT ORIENTADOR COORDENADOR ADMIN"`
}
