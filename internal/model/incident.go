// 정규화된 Incident 모델 정의
// 생성 이후 불변이며 incident_id가 모든 다운스트림 싱크의 조인 키가 됨

package model

// Incident - 원본 알림 1건을 정규화한 장애 레코드
type Incident struct {
	// IncidentID: 정규화 시점에 발급되는 전역 고유 식별자 (재사용 없음)
	IncidentID string `json:"incident_id"`

	// Timestamp: 수집 시각 (초 단위 epoch)
	Timestamp int64 `json:"timestamp"`

	Status    string `json:"status"`
	Severity  string `json:"severity"`
	Service   string `json:"service"`
	AlertName string `json:"alertname"`

	// 원본 알림에서 그대로 복사
	Labels      map[string]string `json:"labels"`
	Annotations map[string]string `json:"annotations"`
}

// ActionOverride - annotations에 명시된 조치 강제 지정값 반환
// 없으면 빈 문자열 (라우팅 테이블이 대신 결정)
func (i Incident) ActionOverride() string {
	return i.Annotations["runbook_action"]
}

// ProcessedAlert - 수집 응답의 알림별 성공 항목
type ProcessedAlert struct {
	IncidentID string `json:"incident_id"`
	AlertName  string `json:"alertname"`
}

// FailedAlert - 수집 응답의 알림별 실패 항목 (fan-out 실패 시)
type FailedAlert struct {
	AlertName string `json:"alertname"`
	Error     string `json:"error"`
}

// IngestResponse - 수집 웹훅 응답
// 디코딩에 성공하면 HTTP 200, ok는 모든 알림이 완전히 전파됐을 때만 true
type IngestResponse struct {
	OK        bool             `json:"ok"`
	Processed []ProcessedAlert `json:"processed"`
	Failed    []FailedAlert    `json:"failed,omitempty"`
}
