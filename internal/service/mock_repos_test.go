package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

// ── in-memory user repository ──

type mockUserRepo struct {
	users map[string]*model.User
	// updateHook runs on the stored record right before the version
	// comparison; tests use it to simulate a concurrent writer.
	updateHook func(stored *model.User)
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = uuid.New().String()
	}
	user.Version = 1
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()
	cp := *user
	m.users[user.UserID] = &cp
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	stored, ok := m.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *stored
	return &cp, nil
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, stored := range m.users {
		if stored.Email == email {
			cp := *stored
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	stored, ok := m.users[user.UserID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.updateHook != nil {
		m.updateHook(stored)
	}
	if stored.Version != user.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Name = user.Name
	stored.Email = user.Email
	stored.PasswordHash = user.PasswordHash
	stored.Role = user.Role
	stored.Matriculation = user.Matriculation
	stored.Course = user.Course
	stored.UpdatedBy = user.UpdatedBy
	stored.UpdatedAt = time.Now()
	stored.Version++
	user.Version = stored.Version
	return nil
}

func (m *mockUserRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.users, id)
	return nil
}

func (m *mockUserRepo) List(_ context.Context, filters *repository.UserListFilters, offset, limit int) ([]model.User, int64, error) {
	var matched []model.User
	for _, stored := range m.users {
		if filters != nil {
			if filters.Role != "" && stored.Role != filters.Role {
				continue
			}
			if filters.Search != "" {
				s := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(stored.Name), s) &&
					!strings.Contains(strings.ToLower(stored.Email), s) {
					continue
				}
			}
		}
		matched = append(matched, *stored)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

// ── in-memory proposal repository ──

type mockProposalRepo struct {
	proposals  map[string]*model.Proposal
	updateHook func(stored *model.Proposal)
}

func newMockProposalRepo() *mockProposalRepo {
	return &mockProposalRepo{proposals: make(map[string]*model.Proposal)}
}

func (m *mockProposalRepo) Create(_ context.Context, proposal *model.Proposal) error {
	if proposal.ProposalID == "" {
		proposal.ProposalID = uuid.New().String()
	}
	proposal.Version = 1
	proposal.CreatedAt = time.Now()
	proposal.UpdatedAt = time.Now()
	cp := *proposal
	m.proposals[proposal.ProposalID] = &cp
	return nil
}

func (m *mockProposalRepo) GetByID(_ context.Context, id string) (*model.Proposal, error) {
	stored, ok := m.proposals[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *stored
	return &cp, nil
}

func (m *mockProposalRepo) Update(_ context.Context, proposal *model.Proposal) error {
	stored, ok := m.proposals[proposal.ProposalID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if m.updateHook != nil {
		m.updateHook(stored)
	}
	if stored.Version != proposal.Version {
		return pkgerrors.ErrOptimisticLock
	}
	stored.Title = proposal.Title
	stored.Author = proposal.Author
	stored.Advisor = proposal.Advisor
	stored.Abstract = proposal.Abstract
	stored.Keywords = proposal.Keywords
	stored.Status = proposal.Status
	stored.Feedback = proposal.Feedback
	stored.UpdatedBy = proposal.UpdatedBy
	stored.UpdatedAt = time.Now()
	stored.Version++
	proposal.Version = stored.Version
	return nil
}

func (m *mockProposalRepo) Delete(_ context.Context, id string, _ string) error {
	delete(m.proposals, id)
	return nil
}

func (m *mockProposalRepo) List(_ context.Context, filters *repository.ProposalListFilters, offset, limit int) ([]model.Proposal, int64, error) {
	var matched []model.Proposal
	for _, stored := range m.proposals {
		if filters != nil {
			if filters.StudentID != "" && stored.StudentID != filters.StudentID {
				continue
			}
			if filters.AdvisorName != "" &&
				!strings.Contains(strings.ToLower(stored.Advisor), strings.ToLower(filters.AdvisorName)) {
				continue
			}
			if filters.Status != "" && stored.Status != filters.Status {
				continue
			}
			if filters.Search != "" {
				s := strings.ToLower(filters.Search)
				if !strings.Contains(strings.ToLower(stored.Title), s) &&
					!strings.Contains(strings.ToLower(stored.Author), s) &&
					!strings.Contains(strings.ToLower(stored.Advisor), s) {
					continue
				}
			}
		}
		matched = append(matched, *stored)
	}
	total := int64(len(matched))
	if offset >= len(matched) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], total, nil
}

func (m *mockProposalRepo) CountByStudent(_ context.Context, studentID string) (int64, error) {
	var count int64
	for _, stored := range m.proposals {
		if stored.StudentID == studentID {
			count++
		}
	}
	return count, nil
}
