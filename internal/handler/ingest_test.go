package handler

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/checkout-sre/backend/internal/model"
)

// 수집 서비스 fake: 알림마다 고정된 ID로 성공 처리
type fakeBatchProcessor struct {
	failAlertName string
}

func (f *fakeBatchProcessor) ProcessBatch(ctx context.Context, batch model.AlertBatch) ([]model.ProcessedAlert, []model.FailedAlert) {
	processed := []model.ProcessedAlert{}
	var failed []model.FailedAlert
	for i, raw := range batch.Alerts {
		name := raw.Labels["alertname"]
		if name == "" {
			name = "UnknownAlert"
		}
		if name == f.failAlertName {
			failed = append(failed, model.FailedAlert{AlertName: name, Error: "dispatch failed"})
			continue
		}
		processed = append(processed, model.ProcessedAlert{
			IncidentID: fmt.Sprintf("inc-%d", i),
			AlertName:  name,
		})
	}
	return processed, failed
}

func newIngestRouter(processor *fakeBatchProcessor) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/webhook/alerts", NewIngestHandler(processor).Webhook)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestWebhookEmptyAlerts(t *testing.T) {
	router := newIngestRouter(&fakeBatchProcessor{})

	for _, body := range []string{
		`{"body":"{\"alerts\":[]}"}`,
		`{"body":"{}"}`,
		`{"body":""}`,
	} {
		w := postJSON(router, "/webhook/alerts", body)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200 (body=%s)", w.Code, body)
		}

		var resp model.IngestResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid response JSON: %v", err)
		}
		if !resp.OK {
			t.Fatalf("ok = false, want true")
		}
		if resp.Processed == nil || len(resp.Processed) != 0 {
			t.Fatalf("processed = %v, want empty array", resp.Processed)
		}
	}
}

func TestWebhookBase64Body(t *testing.T) {
	router := newIngestRouter(&fakeBatchProcessor{})

	inner := `{"alerts":[{"labels":{"alertname":"CheckoutDown"},"status":"firing"}]}`
	envelope, _ := json.Marshal(model.IngestEnvelope{
		Body:            base64.StdEncoding.EncodeToString([]byte(inner)),
		IsBase64Encoded: true,
	})

	w := postJSON(router, "/webhook/alerts", string(envelope))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp model.IngestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if len(resp.Processed) != 1 || resp.Processed[0].AlertName != "CheckoutDown" {
		t.Fatalf("processed = %+v", resp.Processed)
	}
}

func TestWebhookMalformedBody(t *testing.T) {
	router := newIngestRouter(&fakeBatchProcessor{})

	// 파싱 불가능한 내부 body는 400 - 0건 성공(200)으로 숨기면 안 됨
	w := postJSON(router, "/webhook/alerts", `{"body":"{not json"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookMalformedEnvelope(t *testing.T) {
	router := newIngestRouter(&fakeBatchProcessor{})

	w := postJSON(router, "/webhook/alerts", `not json at all`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestWebhookPartialFailure(t *testing.T) {
	router := newIngestRouter(&fakeBatchProcessor{failAlertName: "PaymentsDown"})

	inner := `{"alerts":[{"labels":{"alertname":"CheckoutDown"}},{"labels":{"alertname":"PaymentsDown"}}]}`
	envelope, _ := json.Marshal(model.IngestEnvelope{Body: inner})

	w := postJSON(router, "/webhook/alerts", string(envelope))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (decode succeeded)", w.Code)
	}

	var resp model.IngestResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response JSON: %v", err)
	}
	if resp.OK {
		t.Fatalf("ok must be false when any alert failed")
	}
	if len(resp.Processed) != 1 || len(resp.Failed) != 1 {
		t.Fatalf("processed=%d failed=%d, want 1/1", len(resp.Processed), len(resp.Failed))
	}
}
