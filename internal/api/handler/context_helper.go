package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AlbertJohnson994/gerenciamento-de-TCC/internal/policy"
)

// callerFromContext rebuilds the policy caller from the identity the JWT
// middleware stored on the request context. An empty caller means the
// request reached a handler without passing through authentication.
func callerFromContext(c *gin.Context) policy.Caller {
	return policy.Caller{
		ID:   c.GetString("user_id"),
		Name: c.GetString("name"),
		Role: c.GetString("role"),
	}
}
