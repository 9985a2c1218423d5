package api

import (
	"github.com/gin-gonic/gin"

	"github.com/fsdevblog/groph-pay/internal/transport/api/middlewares"
)

func getUserIDFromContext(c *gin.Context) string {
	userIDVal, exist := c.Get(middlewares.CurrentUserIDKey)
	if !exist {
		return ""
	}
	userID, ok := userIDVal.(string)
	if !ok {
		return ""
	}
	return userID
}
