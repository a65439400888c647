package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

var ErrProposalNotFound = errors.New("proposta não encontrada")

// ProposalService is the proposal-workflow business interface.
type ProposalService interface {
	Create(ctx context.Context, req *dto.CreateProposalRequest, caller policy.Caller) (*dto.ProposalResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ProposalResponse, error)
	List(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error)
	ListMine(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error)
	ListForAdvisor(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateProposalRequest, caller policy.Caller) (*dto.ProposalResponse, error)
	Delete(ctx context.Context, id string, caller policy.Caller) error
}

type proposalService struct {
	repo   *repository.Repository
	engine *policy.Engine
	logger *zap.Logger
}

// NewProposalService creates the ProposalService.
func NewProposalService(repo *repository.Repository, engine *policy.Engine, logger *zap.Logger) ProposalService {
	return &proposalService{repo: repo, engine: engine, logger: logger}
}

// Create submits a new proposal. Only students may submit; the record is
// always initialized as PENDING and owned by the caller, whatever the
// request body says.
func (s *proposalService) Create(ctx context.Context, req *dto.CreateProposalRequest, caller policy.Caller) (*dto.ProposalResponse, error) {
	if err := s.engine.CanCreateProposal(caller); err != nil {
		return nil, err
	}

	proposal := &model.Proposal{
		Title:     req.Title,
		Author:    req.Author,
		Advisor:   req.Advisor,
		Abstract:  req.Abstract,
		Keywords:  req.Keywords,
		Status:    model.StatusPending,
		StudentID: caller.ID,
		VersionedModel: model.VersionedModel{
			SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &caller.ID}},
		},
	}

	if err := s.repo.Proposal.Create(ctx, proposal); err != nil {
		s.logger.Error("creating proposal failed", zap.Error(err))
		return nil, err
	}

	return toProposalResponse(proposal), nil
}

func (s *proposalService) GetByID(ctx context.Context, id string) (*dto.ProposalResponse, error) {
	proposal, err := s.repo.Proposal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		s.logger.Error("looking up proposal failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toProposalResponse(proposal), nil
}

// List returns proposals visible to the caller: students see their own,
// orientadores see proposals naming them as advisor, coordenadores and
// administrators see everything.
func (s *proposalService) List(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error) {
	scope, err := s.engine.ProposalListScope(caller)
	if err != nil {
		return nil, 0, err
	}
	return s.list(ctx, req, scope)
}

// ListMine returns the caller's own submissions.
func (s *proposalService) ListMine(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error) {
	if caller.ID == "" {
		return nil, 0, pkgerrors.ErrUnauthorized
	}
	return s.list(ctx, req, policy.ListScope{StudentID: caller.ID})
}

// ListForAdvisor returns proposals whose advisor field matches the
// caller's display name.
func (s *proposalService) ListForAdvisor(ctx context.Context, req *dto.ProposalListRequest, caller policy.Caller) ([]dto.ProposalResponse, int64, error) {
	if caller.ID == "" {
		return nil, 0, pkgerrors.ErrUnauthorized
	}
	return s.list(ctx, req, policy.ListScope{AdvisorName: caller.Name})
}

func (s *proposalService) list(ctx context.Context, req *dto.ProposalListRequest, scope policy.ListScope) ([]dto.ProposalResponse, int64, error) {
	filters := &repository.ProposalListFilters{
		StudentID:   scope.StudentID,
		AdvisorName: scope.AdvisorName,
		Status:      req.Status,
		Search:      req.Search,
	}

	proposals, total, err := s.repo.Proposal.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing proposals failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ProposalResponse, 0, len(proposals))
	for i := range proposals {
		result = append(result, *toProposalResponse(&proposals[i]))
	}

	return result, total, nil
}

// Update applies a partial proposal update. The policy decision and the
// conditional write form a read-check-write cycle; when a concurrent
// reviewer wins the race the decision is re-evaluated against the fresh
// record exactly once, then Conflict is surfaced.
func (s *proposalService) Update(ctx context.Context, id string, req *dto.UpdateProposalRequest, caller policy.Caller) (*dto.ProposalResponse, error) {
	for attempt := 0; ; attempt++ {
		proposal, err := s.repo.Proposal.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrProposalNotFound
			}
			s.logger.Error("looking up proposal failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}

		// fresh patch each attempt: the policy engine sanitizes in place
		patch := &policy.ProposalPatch{
			Title:    req.Title,
			Author:   req.Author,
			Advisor:  req.Advisor,
			Abstract: req.Abstract,
			Keywords: req.Keywords,
			Status:   req.Status,
			Feedback: req.Feedback,
		}
		if err := s.engine.AuthorizeProposalUpdate(caller, proposal, patch); err != nil {
			return nil, err
		}

		applyProposalPatch(proposal, patch)
		proposal.UpdatedBy = &caller.ID

		err = s.repo.Proposal.Update(ctx, proposal)
		if err == nil {
			return toProposalResponse(proposal), nil
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) && attempt == 0 {
			continue
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, pkgerrors.ErrConflict
		}
		s.logger.Error("updating proposal failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
}

// Delete removes a proposal. Administrators may delete any; students only
// their own.
func (s *proposalService) Delete(ctx context.Context, id string, caller policy.Caller) error {
	proposal, err := s.repo.Proposal.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProposalNotFound
		}
		s.logger.Error("looking up proposal failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.engine.CanDeleteProposal(caller, proposal); err != nil {
		return err
	}

	if err := s.repo.Proposal.Delete(ctx, id, caller.ID); err != nil {
		s.logger.Error("deleting proposal failed", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

func applyProposalPatch(proposal *model.Proposal, patch *policy.ProposalPatch) {
	if patch.Title != nil {
		proposal.Title = *patch.Title
	}
	if patch.Author != nil {
		proposal.Author = *patch.Author
	}
	if patch.Advisor != nil {
		proposal.Advisor = *patch.Advisor
	}
	if patch.Abstract != nil {
		proposal.Abstract = *patch.Abstract
	}
	if patch.Keywords != nil {
		proposal.Keywords = *patch.Keywords
	}
	if patch.Status != nil {
		proposal.Status = *patch.Status
	}
	if patch.Feedback != nil {
		proposal.Feedback = patch.Feedback
	}
}

// toProposalResponse converts a model.Proposal into its response shape.
func toProposalResponse(p *model.Proposal) *dto.ProposalResponse {
	resp := &dto.ProposalResponse{
		ID:        p.ProposalID,
		Title:     p.Title,
		Author:    p.Author,
		Advisor:   p.Advisor,
		Abstract:  p.Abstract,
		Keywords:  p.Keywords,
		Status:    p.Status,
		Feedback:  p.Feedback,
		StudentID: p.StudentID,
		CreatedAt: p.CreatedAt.Format(time.RFC3339),
		UpdatedAt: p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Student != nil {
		resp.Student = &dto.UserResponse{
			ID:    p.Student.UserID,
			Name:  p.Student.Name,
			Email: p.Student.Email,
			Role:  p.Student.Role,
		}
	}
	return resp
}
