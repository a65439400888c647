package service

import (
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/config"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/repository"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/jwt"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/redis"
)

// Service aggregates all services.
type Service struct {
	Auth     AuthService
	User     UserService
	Proposal ProposalService
	Export   ExportService
}

// NewService creates the service aggregate.
func NewService(
	cfg *config.Config,
	repo *repository.Repository,
	engine *policy.Engine,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *Service {
	return &Service{
		Auth:     NewAuthService(cfg, repo, jwtMgr, rdb, logger),
		User:     NewUserService(repo, engine, logger),
		Proposal: NewProposalService(repo, engine, logger),
		Export:   NewExportService(repo, logger),
	}
}
