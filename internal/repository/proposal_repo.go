package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

// ProposalListFilters narrows a proposal listing. StudentID and
// AdvisorName are the policy-engine visibility scope; Status and Search
// are user-supplied filters.
type ProposalListFilters struct {
	StudentID   string
	AdvisorName string // case-insensitive substring on the advisor column
	Status      string
	Search      string // matched against title, author and advisor
}

// ProposalRepository is the proposal data-access interface.
type ProposalRepository interface {
	Create(ctx context.Context, proposal *model.Proposal) error
	GetByID(ctx context.Context, id string) (*model.Proposal, error)
	// Update is a conditional write on (proposal_id, version); it returns
	// pkgerrors.ErrOptimisticLock when the stored version moved on, so a
	// concurrent reviewer decision is never silently overwritten.
	Update(ctx context.Context, proposal *model.Proposal) error
	Delete(ctx context.Context, id string, deletedBy string) error
	List(ctx context.Context, filters *ProposalListFilters, offset, limit int) ([]model.Proposal, int64, error)
	CountByStudent(ctx context.Context, studentID string) (int64, error)
}

type proposalRepo struct {
	db *gorm.DB
}

// NewProposalRepo creates the GORM-backed ProposalRepository.
func NewProposalRepo(db *gorm.DB) ProposalRepository {
	return &proposalRepo{db: db}
}

func (r *proposalRepo) Create(ctx context.Context, proposal *model.Proposal) error {
	return r.db.WithContext(ctx).Create(proposal).Error
}

func (r *proposalRepo) GetByID(ctx context.Context, id string) (*model.Proposal, error) {
	var proposal model.Proposal
	err := r.db.WithContext(ctx).
		Preload("Student").
		Where("proposal_id = ?", id).
		First(&proposal).Error
	if err != nil {
		return nil, err
	}
	return &proposal, nil
}

func (r *proposalRepo) Update(ctx context.Context, proposal *model.Proposal) error {
	oldVersion := proposal.Version
	result := r.db.WithContext(ctx).
		Model(proposal).
		Where("proposal_id = ? AND version = ?", proposal.ProposalID, oldVersion).
		Updates(map[string]interface{}{
			"title":      proposal.Title,
			"author":     proposal.Author,
			"advisor":    proposal.Advisor,
			"abstract":   proposal.Abstract,
			"keywords":   proposal.Keywords,
			"status":     proposal.Status,
			"feedback":   proposal.Feedback,
			"updated_by": proposal.UpdatedBy,
			"version":    oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	proposal.Version = oldVersion + 1
	return nil
}

func (r *proposalRepo) Delete(ctx context.Context, id string, deletedBy string) error {
	if err := r.db.WithContext(ctx).
		Model(&model.Proposal{}).
		Where("proposal_id = ?", id).
		Update("deleted_by", deletedBy).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Where("proposal_id = ?", id).
		Delete(&model.Proposal{}).Error
}

func (r *proposalRepo) List(ctx context.Context, filters *ProposalListFilters, offset, limit int) ([]model.Proposal, int64, error) {
	var proposals []model.Proposal
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Proposal{})

	if filters != nil {
		if filters.StudentID != "" {
			db = db.Where("student_id = ?", filters.StudentID)
		}
		if filters.AdvisorName != "" {
			db = db.Where("advisor ILIKE ?", "%"+filters.AdvisorName+"%")
		}
		if filters.Status != "" {
			db = db.Where("status = ?", filters.Status)
		}
		if filters.Search != "" {
			like := "%" + filters.Search + "%"
			db = db.Where("title ILIKE ? OR author ILIKE ? OR advisor ILIKE ?", like, like, like)
		}
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.Preload("Student").
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&proposals).Error; err != nil {
		return nil, 0, err
	}

	return proposals, total, nil
}

func (r *proposalRepo) CountByStudent(ctx context.Context, studentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Proposal{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count, err
}
