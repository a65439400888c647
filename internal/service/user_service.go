package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
)

// UserService is the user-management business interface.
type UserService interface {
	Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error)
	GetByID(ctx context.Context, id string) (*dto.UserResponse, error)
	List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller policy.Caller) (*dto.UserResponse, error)
	Delete(ctx context.Context, id string, caller policy.Caller) error
}

type userService struct {
	repo   *repository.Repository
	engine *policy.Engine
	logger *zap.Logger
}

// NewUserService creates the UserService.
func NewUserService(repo *repository.Repository, engine *policy.Engine, logger *zap.Logger) UserService {
	return &userService{repo: repo, engine: engine, logger: logger}
}

func (s *userService) Create(ctx context.Context, req *dto.CreateUserRequest, callerID string) (*dto.UserResponse, error) {
	if _, err := s.repo.User.GetByEmail(ctx, req.Email); err == nil {
		return nil, ErrEmailExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		s.logger.Error("password hashing failed", zap.Error(err))
		return nil, err
	}

	user := &model.User{
		Name:          req.Name,
		Email:         req.Email,
		PasswordHash:  string(hash),
		Role:          req.Role,
		Matriculation: req.Matriculation,
		Course:        req.Course,
		VersionedModel: model.VersionedModel{
			SoftDeleteModel: model.SoftDeleteModel{BaseModel: model.BaseModel{CreatedBy: &callerID}},
		},
	}

	if err := s.repo.User.Create(ctx, user); err != nil {
		s.logger.Error("creating user failed", zap.Error(err))
		return nil, err
	}

	return toUserResponse(user), nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		s.logger.Error("looking up user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) List(ctx context.Context, req *dto.UserListRequest) ([]dto.UserResponse, int64, error) {
	filters := &repository.UserListFilters{
		Role:   req.Role,
		Search: req.Search,
	}

	users, total, err := s.repo.User.List(ctx, filters, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("listing users failed", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		result = append(result, *toUserResponse(&users[i]))
	}

	return result, total, nil
}

// Update applies a partial user update under the account policy. The write
// is a conditional update; a concurrent modification triggers one
// re-evaluation before surfacing Conflict.
func (s *userService) Update(ctx context.Context, id string, req *dto.UpdateUserRequest, caller policy.Caller) (*dto.UserResponse, error) {
	for attempt := 0; ; attempt++ {
		user, err := s.repo.User.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrUserNotFound
			}
			s.logger.Error("looking up user failed", zap.String("id", id), zap.Error(err))
			return nil, err
		}

		// fresh patch each attempt: the policy engine sanitizes in place
		patch := &policy.UserPatch{
			Name:     req.Name,
			Email:    req.Email,
			Password: req.Password,
			Role:     req.Role,
		}
		if err := s.engine.AuthorizeUserUpdate(caller, user.UserID, patch); err != nil {
			return nil, err
		}

		if patch.Name != nil {
			user.Name = *patch.Name
		}
		if patch.Email != nil {
			existing, err := s.repo.User.GetByEmail(ctx, *patch.Email)
			if err == nil && existing.UserID != id {
				return nil, ErrEmailExists
			} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, err
			}
			user.Email = *patch.Email
		}
		if patch.Password != nil {
			// never store a plaintext credential field
			hash, err := bcrypt.GenerateFromPassword([]byte(*patch.Password), bcryptCost)
			if err != nil {
				s.logger.Error("password hashing failed", zap.Error(err))
				return nil, err
			}
			user.PasswordHash = string(hash)
		}
		if patch.Role != nil {
			user.Role = *patch.Role
		}
		user.UpdatedBy = &caller.ID

		err = s.repo.User.Update(ctx, user)
		if err == nil {
			return toUserResponse(user), nil
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) && attempt == 0 {
			continue
		}
		if errors.Is(err, pkgerrors.ErrOptimisticLock) {
			return nil, pkgerrors.ErrConflict
		}
		s.logger.Error("updating user failed", zap.String("id", id), zap.Error(err))
		return nil, err
	}
}

// Delete removes a user account. The policy engine enforces the
// self-protection rule and the zero-proposals precondition.
func (s *userService) Delete(ctx context.Context, id string, caller policy.Caller) error {
	user, err := s.repo.User.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		s.logger.Error("looking up user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	count, err := s.repo.Proposal.CountByStudent(ctx, id)
	if err != nil {
		s.logger.Error("counting user proposals failed", zap.String("id", id), zap.Error(err))
		return err
	}

	if err := s.engine.CanDeleteUser(caller, user, count); err != nil {
		return err
	}

	if err := s.repo.User.Delete(ctx, id, caller.ID); err != nil {
		s.logger.Error("deleting user failed", zap.String("id", id), zap.Error(err))
		return err
	}

	return nil
}

// toUserResponse converts a model.User into its response shape.
func toUserResponse(user *model.User) *dto.UserResponse {
	resp := &dto.UserResponse{
		ID:            user.UserID,
		Name:          user.Name,
		Email:         user.Email,
		Role:          user.Role,
		Matriculation: user.Matriculation,
		Course:        user.Course,
	}
	if !user.CreatedAt.IsZero() {
		resp.CreatedAt = user.CreatedAt.Format(time.RFC3339)
	}
	if !user.UpdatedAt.IsZero() {
		resp.UpdatedAt = user.UpdatedAt.Format(time.RFC3339)
	}
	return resp
}
