// 자동 조치 요청을 처리하는 핸들러
// 워크플로우 엔진이 Incident를 입력으로 호출하는 콜백 경계
//
// 에러 -> 상태 코드 매핑:
//   - UnknownActionError        -> 400 (잘못된 조치 지정, 재시도 무의미)
//   - ErrMissingClusterConfig   -> 500 (설정 문제)
//   - ControlPlaneError         -> 502 (컨트롤 플레인 non-2xx, 엔진 재시도 대상)

package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/client"
	"github.com/checkout-sre/backend/internal/model"
	"github.com/checkout-sre/backend/internal/service"
)

// remediationExecutor - 조치 실행 서비스 인터페이스 (handler 전용)
type remediationExecutor interface {
	Execute(ctx context.Context, incident model.Incident) (*model.RemediationResult, error)
}

// Remediate 핸들러 구조체 정의
type RemediateHandler struct {
	executor remediationExecutor
}

// Remediate 핸들러 객체 생성
func NewRemediateHandler(executor remediationExecutor) *RemediateHandler {
	return &RemediateHandler{executor: executor}
}

func (h *RemediateHandler) Remediate(c *gin.Context) {
	var incident model.Incident

	if err := c.ShouldBindJSON(&incident); err != nil {
		log.Printf("Failed to parse remediation input: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	result, err := h.executor.Execute(c.Request.Context(), incident)
	if err != nil {
		log.Printf("Remediation failed: alertname=%s, err=%v", incident.AlertName, err)

		var unknownErr *service.UnknownActionError
		var cpErr *client.ControlPlaneError
		switch {
		case errors.As(err, &unknownErr):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, service.ErrMissingClusterConfig):
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		case errors.As(err, &cpErr):
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	log.Printf("Remediation done: action=%s, alertname=%s, degraded=%v, scaled_to=%d",
		result.Action, result.AlertName, result.Degraded, result.ScaledTo)

	c.JSON(http.StatusOK, result)
}
