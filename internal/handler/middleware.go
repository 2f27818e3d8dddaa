package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/service"
)

const authSubjectKey = "auth_subject"

func AuthMiddleware(authService *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		subject, err := authService.ParseAccessToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		c.Set(authSubjectKey, subject)
		c.Next()
	}
}

// GetAuthSubject - 미들웨어가 저장한 호출자 식별자 조회
func GetAuthSubject(c *gin.Context) string {
	if value, ok := c.Get(authSubjectKey); ok {
		if subject, ok := value.(string); ok {
			return subject
		}
	}
	return ""
}
