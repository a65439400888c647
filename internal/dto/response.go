package dto

// ── auth responses ──

// TokenResponse is the token pair returned by login/refresh.
type TokenResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	ExpiresIn    int          `json:"expires_in"` // access token TTL in seconds
	User         UserResponse `json:"user"`
}

// ── user responses ──

// UserResponse is the sanitized user payload (never carries the hash).
type UserResponse struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	Matriculation string `json:"matriculation,omitempty"`
	Course        string `json:"course,omitempty"`
	CreatedAt     string `json:"created_at,omitempty"`
	UpdatedAt     string `json:"updated_at,omitempty"`
}

// ── proposal responses ──

// ProposalResponse is the proposal payload.
type ProposalResponse struct {
	ID        string        `json:"id"`
	Title     string        `json:"title"`
	Author    string        `json:"author"`
	Advisor   string        `json:"advisor"`
	Abstract  string        `json:"abstract"`
	Keywords  string        `json:"keywords"`
	Status    string        `json:"status"`
	Feedback  *string       `json:"feedback,omitempty"`
	StudentID string        `json:"student_id"`
	Student   *UserResponse `json:"student,omitempty"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// ── pagination ──

// PaginationRequest carries the common list query parameters.
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
		return 10
	}
	return p.PageSize
}

// GetOffset computes the query offset.
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
