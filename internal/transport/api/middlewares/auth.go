package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const CurrentUserIDKey = "currentUserID"

// UserIDHeader заголовок, в котором вызывающая сторона передает идентификатор пользователя.
// Аутентификацию выполняет внешний шлюз, сервисы доверяют заголовку как есть.
const UserIDHeader = "X-User-Id"

// UserRequired проверяет наличие идентификатора пользователя в запросе и записывает его
// в контекст (поле CurrentUserIDKey).
func UserRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(UserIDHeader)
		if userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set(CurrentUserIDKey, userID)
		c.Next()
	}
}
