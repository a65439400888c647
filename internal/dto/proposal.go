package dto

// ── proposal requests ──

// ProposalListRequest is the proposal listing query.
type ProposalListRequest struct {
	PaginationRequest
	Status string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED REVISION"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

// CreateProposalRequest is the student submission payload. Status and
// ownership are never taken from the body: new proposals are always
// PENDING and owned by the caller.
type CreateProposalRequest struct {
	Title    string `json:"title"    binding:"required,min=1,max=255"`
	Author   string `json:"author"   binding:"required,min=1,max=255"`
	Advisor  string `json:"advisor"  binding:"required,min=1,max=255"`
	Abstract string `json:"abstract" binding:"required,min=1"`
	Keywords string `json:"keywords" binding:"required,min=1"`
}

// UpdateProposalRequest is the partial proposal update. Status and
// feedback are silently stripped for STUDENT callers.
type UpdateProposalRequest struct {
	Title    *string `json:"title"    binding:"omitempty,min=1,max=255"`
	Author   *string `json:"author"   binding:"omitempty,min=1,max=255"`
	Advisor  *string `json:"advisor"  binding:"omitempty,min=1,max=255"`
	Abstract *string `json:"abstract" binding:"omitempty,min=1"`
	Keywords *string `json:"keywords" binding:"omitempty,min=1"`
	Status   *string `json:"status"   binding:"omitempty,oneof=PENDING APPROVED REJECTED REVISION"`
	Feedback *string `json:"feedback" binding:"omitempty"`
}
