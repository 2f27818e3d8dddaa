// Incident 조회 API 핸들러
// fan-out 저장 단계에서 기록된 파생 인덱스 컬럼 기반의 읽기 전용 API

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/model"
)

// incidentReader - incident 조회용 DB 인터페이스
type incidentReader interface {
	GetIncidentList(ctx context.Context) ([]model.IncidentListItem, error)
	GetIncidentDetail(ctx context.Context, incidentID string) (*model.IncidentDetail, error)
}

type IncidentHandler struct {
	store incidentReader
}

func NewIncidentHandler(store incidentReader) *IncidentHandler {
	return &IncidentHandler{store: store}
}

func (h *IncidentHandler) List(c *gin.Context) {
	list, err := h.store.GetIncidentList(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, list)
}

func (h *IncidentHandler) Detail(c *gin.Context) {
	id := c.Param("id")

	detail, err := h.store.GetIncidentDetail(c.Request.Context(), id)
	if err != nil {
		// pgx.ErrNoRows 포함 - 일단 404로 통합
		c.JSON(http.StatusNotFound, gin.H{"error": "incident not found"})
		return
	}

	c.JSON(http.StatusOK, model.IncidentDetailEnvelope{
		Status: "success",
		Data:   detail,
	})
}
