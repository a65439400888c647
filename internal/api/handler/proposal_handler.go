package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// ProposalHandler serves the proposal-workflow endpoints.
type ProposalHandler struct {
	proposalService service.ProposalService
	logger          *zap.Logger
}

// NewProposalHandler creates the ProposalHandler.
func NewProposalHandler(proposalService service.ProposalService, logger *zap.Logger) *ProposalHandler {
	return &ProposalHandler{proposalService: proposalService, logger: logger}
}

// List handles GET /api/v1/proposals. The visible set depends on the
// caller's role.
func (h *ProposalHandler) List(c *gin.Context) {
	var req dto.ProposalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos: "+err.Error())
		return
	}

	proposals, total, err := h.proposalService.List(c.Request.Context(), &req, callerFromContext(c))
	if err != nil {
		if !translatePolicyError(c, err) {
			h.logger.Error("listing proposals failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OKPage(c, proposals, total, req.GetPage(), req.GetPageSize())
}

// ListMine handles GET /api/v1/proposals/my.
func (h *ProposalHandler) ListMine(c *gin.Context) {
	var req dto.ProposalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos: "+err.Error())
		return
	}

	proposals, total, err := h.proposalService.ListMine(c.Request.Context(), &req, callerFromContext(c))
	if err != nil {
		if !translatePolicyError(c, err) {
			h.logger.Error("listing own proposals failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OKPage(c, proposals, total, req.GetPage(), req.GetPageSize())
}

// ListForAdvisor handles GET /api/v1/proposals/orientador.
func (h *ProposalHandler) ListForAdvisor(c *gin.Context) {
	var req dto.ProposalListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos: "+err.Error())
		return
	}

	proposals, total, err := h.proposalService.ListForAdvisor(c.Request.Context(), &req, callerFromContext(c))
	if err != nil {
		if !translatePolicyError(c, err) {
			h.logger.Error("listing advisor proposals failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OKPage(c, proposals, total, req.GetPage(), req.GetPageSize())
}

// Get handles GET /api/v1/proposals/:id.
func (h *ProposalHandler) Get(c *gin.Context) {
	proposal, err := h.proposalService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrProposalNotFound) {
			response.NotFound(c, 30001, err.Error())
			return
		}
		h.logger.Error("fetching proposal failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, proposal)
}

// Create handles POST /api/v1/proposals (students).
func (h *ProposalHandler) Create(c *gin.Context) {
	var req dto.CreateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	proposal, err := h.proposalService.Create(c.Request.Context(), &req, callerFromContext(c))
	if err != nil {
		if !translatePolicyError(c, err) {
			h.logger.Error("creating proposal failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.Created(c, proposal)
}

// Update handles PUT /api/v1/proposals/:id.
func (h *ProposalHandler) Update(c *gin.Context) {
	var req dto.UpdateProposalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	proposal, err := h.proposalService.Update(c.Request.Context(), c.Param("id"), &req, callerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProposalNotFound):
			response.NotFound(c, 30001, err.Error())
		case translatePolicyError(c, err):
		default:
			h.logger.Error("updating proposal failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, proposal)
}

// Delete handles DELETE /api/v1/proposals/:id.
func (h *ProposalHandler) Delete(c *gin.Context) {
	err := h.proposalService.Delete(c.Request.Context(), c.Param("id"), callerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrProposalNotFound):
			response.NotFound(c, 30001, err.Error())
		case translatePolicyError(c, err):
		default:
			h.logger.Error("deleting proposal failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.NoContent(c)
}
