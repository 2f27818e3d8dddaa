package model

import "encoding/json"

type ErrorResponse struct {
	Error string `json:"error"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type RootResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// IncidentListItem - Incident 목록 조회용 구조체
type IncidentListItem struct {
	IncidentID string `json:"incident_id"`
	Timestamp  int64  `json:"timestamp"`
	Service    string `json:"service"`
	AlertName  string `json:"alertname"`
	Severity   string `json:"severity"`
	Status     string `json:"status"`
}

// IncidentDetail - Incident 상세 조회용 구조체
// Payload는 DB의 JSONB 컬럼을 그대로 바이트로 받아서 전달
type IncidentDetail struct {
	IncidentID string          `json:"incident_id"`
	Timestamp  int64           `json:"timestamp"`
	Service    string          `json:"service"`
	AlertName  string          `json:"alertname"`
	Severity   string          `json:"severity"`
	Status     string          `json:"status"`
	Payload    json.RawMessage `json:"payload"`
}

// IncidentDetailEnvelope - Incident 상세 API 응답 구조체
type IncidentDetailEnvelope struct {
	Status string          `json:"status"`
	Data   *IncidentDetail `json:"data"`
}

// TokenRequest - 서비스 토큰 발급 요청
type TokenRequest struct {
	ClientID     string `json:"client_id" binding:"required"`
	ClientSecret string `json:"client_secret" binding:"required"`
}

// TokenResponse - 서비스 토큰 발급 응답
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}
