package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/brightprep/studycal-api/internal/middleware"
)

func claimsFromContext(c *gin.Context) *middleware.IdentityClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*middleware.IdentityClaims)
	if !ok {
		return nil
	}
	return claims
}
