package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/config"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/api/handler"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/api/middleware"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/model"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/jwt"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/redis"
	"github.com/AlbertJohnson994/gerenciamento-de-TCC/pkg/response"
)

// Setup wires all routes and middleware onto a gin engine.
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(1 << 20))

	r.GET("/health", func(c *gin.Context) {
		response.OK(c, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		// login and register share a tighter rate limit than the rest of
		// the API
		authLimit := middleware.RateLimit(rdb, 10, time.Minute)
		auth.POST("/register", authLimit, h.Auth.Register)
		auth.POST("/login", authLimit, h.Auth.Login)
		auth.POST("/refresh", authLimit, h.Auth.Refresh)

		authed := auth.Group("")
		authed.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authed.POST("/logout", h.Auth.Logout)
			authed.GET("/me", h.Auth.Me)
		}
	}

	users := v1.Group("/users")
	users.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		users.GET("/profile", h.User.GetProfile)
		users.PUT("/profile", h.User.UpdateProfile)

		admin := users.Group("")
		admin.Use(middleware.RoleAuth(model.RoleAdmin))
		{
			admin.GET("", h.User.List)
			admin.POST("", h.User.Create)
			admin.GET("/:id", h.User.Get)
			admin.PUT("/:id", h.User.Update)
			admin.DELETE("/:id", h.User.Delete)
		}
	}

	proposals := v1.Group("/proposals")
	proposals.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		proposals.GET("", h.Proposal.List)
		proposals.GET("/my", h.Proposal.ListMine)
		proposals.GET("/orientador", middleware.RoleAuth(model.RoleOrientador), h.Proposal.ListForAdvisor)
		proposals.GET("/:id", h.Proposal.Get)
		proposals.POST("", middleware.RoleAuth(model.RoleStudent), h.Proposal.Create)
		proposals.PUT("/:id", h.Proposal.Update)
		proposals.DELETE("/:id", h.Proposal.Delete)
	}

	export := v1.Group("/export")
	export.Use(middleware.JWTAuth(jwtMgr, rdb))
	export.Use(middleware.RoleAuth(model.RoleAdmin, model.RoleCoordenador))
	{
		export.GET("/proposals", h.Export.ExportProposals)
	}

	return r
}
