// 이벤트 버스와 HTTP 통신하는 클라이언트 정의
//
// 설정 (config.EventBusConfig로 주입):
//   - EVENT_BUS_URL: 이벤트 버스 수신 URL
//
// Incident 1건당 이벤트 1건을 발행하며 source/detailType 태그는 고정값

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/checkout-sre/backend/internal/config"
	"github.com/checkout-sre/backend/internal/model"
)

const (
	eventSource     = "prometheus.alertmanager"
	eventDetailType = "SREAlert"
)

// EventBusClient 구조체 정의
type EventBusClient struct {
	url        string
	httpClient *http.Client
}

// BusEvent - 버스에 발행되는 이벤트 엔벨로프
type BusEvent struct {
	Source     string         `json:"source"`
	DetailType string         `json:"detailType"`
	Detail     model.Incident `json:"detail"`
}

// EventBusClient 객체 생성
func NewEventBusClient(cfg config.EventBusConfig) *EventBusClient {
	return &EventBusClient{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Publish - Incident를 이벤트로 발행
func (c *EventBusClient) Publish(ctx context.Context, incident model.Incident) error {
	if c.url == "" {
		return fmt.Errorf("event bus URL not configured")
	}

	payload, err := json.Marshal(BusEvent{
		Source:     eventSource,
		DetailType: eventDetailType,
		Detail:     incident,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal bus event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewBuffer(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("event bus returned status: %d", resp.StatusCode)
	}
	return nil
}
