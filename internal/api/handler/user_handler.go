package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// UserHandler serves the user-management endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *zap.Logger
}

// NewUserHandler creates the UserHandler.
func NewUserHandler(userService service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, logger: logger}
}

// List handles GET /api/v1/users (admin).
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "parâmetros inválidos: "+err.Error())
		return
	}

	users, total, err := h.userService.List(c.Request.Context(), &req)
	if err != nil {
		h.logger.Error("listing users failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OKPage(c, users, total, req.GetPage(), req.GetPageSize())
}

// Get handles GET /api/v1/users/:id (admin).
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		h.logger.Error("fetching user failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// Create handles POST /api/v1/users (admin).
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), &req, c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, 20002, err.Error())
			return
		}
		h.logger.Error("creating user failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, user)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	user, err := h.userService.Update(c.Request.Context(), c.Param("id"), &req, callerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, err.Error())
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 20002, err.Error())
		case translatePolicyError(c, err):
		default:
			h.logger.Error("updating user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}

// Delete handles DELETE /api/v1/users/:id (admin). Accounts still owning
// proposals cannot be removed; self-deletion is always refused.
func (h *UserHandler) Delete(c *gin.Context) {
	err := h.userService.Delete(c.Request.Context(), c.Param("id"), callerFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, err.Error())
		case translatePolicyError(c, err):
		default:
			h.logger.Error("deleting user failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.NoContent(c)
}

// GetProfile handles GET /api/v1/users/profile.
func (h *UserHandler) GetProfile(c *gin.Context) {
	user, err := h.userService.GetByID(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		h.logger.Error("fetching profile failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}

// UpdateProfile handles PUT /api/v1/users/profile. Same policy path as
// Update with the target fixed to the caller, so a role field in the
// body is stripped for non-admins rather than honored.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	caller := callerFromContext(c)
	user, err := h.userService.Update(c.Request.Context(), caller.ID, &req, caller)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			response.NotFound(c, 20001, err.Error())
		case errors.Is(err, service.ErrEmailExists):
			response.Conflict(c, 20002, err.Error())
		case translatePolicyError(c, err):
		default:
			h.logger.Error("updating profile failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, user)
}
