// 워크플로우 엔진과 HTTP 통신하는 클라이언트 정의
//
// 설정 (config.WorkflowConfig로 주입):
//   - WORKFLOW_URL: 워크플로우 엔진 URL
//   - RUNBOOK_WORKFLOW: 실행할 워크플로우(스테이트 머신) 이름
//
// Incident를 입력으로 실행 1건을 시작하고 실행 핸들을 반환
// 조치 재시도는 전적으로 워크플로우 엔진 몫이므로 시작 요청에 재시도 정책을 선언

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

// WorkflowClient 구조체 정의
type WorkflowClient struct {
	baseURL      string
	stateMachine string
	httpClient   *http.Client
}

// RetryPolicy - 워크플로우 엔진이 조치 호출에 적용할 재시도 정책
type RetryPolicy struct {
	MaxAttempts     int     `json:"maxAttempts"`
	IntervalSeconds int     `json:"intervalSeconds"`
	BackoffRate     float64 `json:"backoffRate"`
}

// StartExecutionRequest 구조체 정의
type StartExecutionRequest struct {
	StateMachine string         `json:"stateMachine"`
	Input        model.Incident `json:"input"`
	RetryPolicy  RetryPolicy    `json:"retryPolicy"`
}

// StartExecutionResponse 구조체 정의
type StartExecutionResponse struct {
	ExecutionID string `json:"executionId"`
}

// WorkflowClient 객체 생성
func NewWorkflowClient(cfg config.WorkflowConfig) *WorkflowClient {
	return &WorkflowClient{
		baseURL:      cfg.BaseURL,
		stateMachine: cfg.StateMachine,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// StartExecution - Incident를 입력으로 워크플로우 실행 시작
// 매 재시도는 조치 전체를 처음부터 다시 실행하므로 조치는 전체 재실행에 안전해야 함
func (c *WorkflowClient) StartExecution(ctx context.Context, incident model.Incident) (string, error) {
	if c.baseURL == "" {
		return "", fmt.Errorf("workflow URL not configured")
	}

	payload, err := json.Marshal(StartExecutionRequest{
		StateMachine: c.stateMachine,
		Input:        incident,
		RetryPolicy: RetryPolicy{
			MaxAttempts:     3,
			IntervalSeconds: 2,
			BackoffRate:     2,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal execution request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/executions", bytes.NewBuffer(payload))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to start execution: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("workflow engine returned status %d: %s", resp.StatusCode, string(body))
	}

	var execResp StartExecutionResponse
	if err := json.Unmarshal(body, &execResp); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}

	return execResp.ExecutionID, nil
}
