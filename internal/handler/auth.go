// 서비스 토큰 발급 핸들러

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/model"
	"github.com/checkout-sre/backend/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Token - 클라이언트 자격 증명으로 서비스 토큰 발급
func (h *AuthHandler) Token(c *gin.Context) {
	var req model.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	token, err := h.authService.IssueServiceToken(req.ClientID, req.ClientSecret)
	if err != nil {
		if errors.Is(err, service.ErrUnauthorized) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int64(h.authService.AccessTTL().Seconds()),
	})
}
