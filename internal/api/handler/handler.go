package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	pkgerrors "github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/errors"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// Handler aggregates all HTTP handlers.
type Handler struct {
	Auth     *AuthHandler
	User     *UserHandler
	Proposal *ProposalHandler
	Export   *ExportHandler
}

// NewHandler creates the handler aggregate.
func NewHandler(svc *service.Service, logger *zap.Logger) *Handler {
	return &Handler{
		Auth:     NewAuthHandler(svc.Auth, logger),
		User:     NewUserHandler(svc.User, logger),
		Proposal: NewProposalHandler(svc.Proposal, logger),
		Export:   NewExportHandler(svc.Export, logger),
	}
}

// translatePolicyError maps the shared error taxonomy onto HTTP responses.
// Returns true when the error was recognized and written.
func translatePolicyError(c *gin.Context, err error) bool {
	switch {
	case errors.Is(err, pkgerrors.ErrUnauthorized):
		response.Unauthorized(c, 10002, err.Error())
	case errors.Is(err, pkgerrors.ErrForbidden):
		response.Forbidden(c, 10003, err.Error())
	case errors.Is(err, pkgerrors.ErrNotFound):
		response.NotFound(c, 40400, err.Error())
	case errors.Is(err, pkgerrors.ErrConflict), errors.Is(err, pkgerrors.ErrOptimisticLock):
		response.Conflict(c, 40900, err.Error())
	case errors.Is(err, pkgerrors.ErrInvalid):
		response.BadRequest(c, 10001, err.Error())
	default:
		return false
	}
	return true
}
