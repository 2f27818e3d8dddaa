// 알림 수집 웹훅 요청을 처리하는 핸들러
//
// 요청 흐름:
//  1. POST /webhook/alerts로 전송 래퍼({body, isBase64Encoded}) 수신
//  2. 래퍼와 내부 body를 디코딩 (파싱 불가면 400, 배치 전체 중단)
//  3. 알림별 정규화 + fan-out은 service 레이어에 위임
//  4. 디코딩에 성공했으면 200, ok는 모든 알림이 전파됐을 때만 true

package handler

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/model"
	"github.com/checkout-sre/backend/internal/service"
)

// batchProcessor - 수집 서비스 인터페이스 (handler 전용)
type batchProcessor interface {
	ProcessBatch(ctx context.Context, batch model.AlertBatch) ([]model.ProcessedAlert, []model.FailedAlert)
}

// Ingest 핸들러 구조체 정의
type IngestHandler struct {
	ingest batchProcessor
}

// Ingest 핸들러 객체 생성
func NewIngestHandler(ingest batchProcessor) *IngestHandler {
	return &IngestHandler{ingest: ingest}
}

func (h *IngestHandler) Webhook(c *gin.Context) {
	var env model.IngestEnvelope

	// 1. 전송 래퍼 파싱
	if err := c.ShouldBindJSON(&env); err != nil {
		log.Printf("Failed to parse ingest envelope: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}

	// 2. body 디코딩 (base64 + JSON)
	// 파싱 불가능한 body는 배치 전체 실패 - 0건 성공으로 조용히 넘어가지 않음
	batch, err := service.DecodeEnvelope(env)
	if err != nil {
		var decodeErr *service.DecodeError
		if errors.As(err, &decodeErr) {
			log.Printf("Failed to decode alert body: %v", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alert body"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	log.Printf("Received alert batch: alertCount=%d, base64=%v", len(batch.Alerts), env.IsBase64Encoded)

	// 3. 알림별 정규화 + fan-out
	processed, failed := h.ingest.ProcessBatch(c.Request.Context(), batch)

	// 4. 응답 반환 (디코딩 성공이므로 HTTP는 200 고정)
	c.JSON(http.StatusOK, model.IngestResponse{
		OK:        len(failed) == 0,
		Processed: processed,
		Failed:    failed,
	})
}
