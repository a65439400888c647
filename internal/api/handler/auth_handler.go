package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/dto"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/service"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/jwt"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// AuthHandler serves the authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates the AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	tokens, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrEmailExists) {
			response.Conflict(c, 20002, err.Error())
			return
		}
		h.logger.Error("register failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.Created(c, tokens)
}

// Login handles POST /api/v1/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	tokens, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Unauthorized(c, 20003, err.Error())
			return
		}
		h.logger.Error("login failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, tokens)
}

// Refresh handles POST /api/v1/auth/refresh.
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "dados inválidos: "+err.Error())
		return
	}

	tokens, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired),
			errors.Is(err, jwt.ErrTokenInvalid),
			errors.Is(err, service.ErrInvalidTokenType),
			errors.Is(err, service.ErrUserNotFound):
			response.Unauthorized(c, 10002, "token de atualização inválido")
		default:
			h.logger.Error("refresh failed", zap.Error(err))
			response.InternalError(c)
		}
		return
	}

	response.OK(c, tokens)
}

// Logout handles POST /api/v1/auth/logout. Revokes the presented access
// token by blacklisting its jti until natural expiry.
func (h *AuthHandler) Logout(c *gin.Context) {
	jti := c.GetString("jti")
	exp, _ := c.Get("token_exp")
	expiresAt, ok := exp.(time.Time)
	if jti == "" || !ok {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), jti, expiresAt); err != nil {
		h.logger.Error("logout failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"message": "logout realizado com sucesso"})
}

// Me handles GET /api/v1/auth/me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := c.GetString("user_id")
	if userID == "" {
		response.Unauthorized(c, 10002, "não autenticado")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.NotFound(c, 20001, err.Error())
			return
		}
		h.logger.Error("fetching current user failed", zap.Error(err))
		response.InternalError(c)
		return
	}

	response.OK(c, user)
}
