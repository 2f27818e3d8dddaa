// 수집 엔드포인트의 원본 알림 및 전송 래퍼 구조체를 정의
// handler, service 레이어에서 공통으로 사용하기 때문에 model 레이어에 별도로 정의

package model

// IngestEnvelope - 수집 웹훅의 전송 래퍼
// body 필드가 평문 JSON 텍스트이거나 base64 인코딩된 JSON 텍스트
// isBase64Encoded 플래그로 두 경우를 구분 (API Gateway 프록시 통합과 동일한 형태)
type IngestEnvelope struct {
	Body            string `json:"body"`
	IsBase64Encoded bool   `json:"isBase64Encoded"`
}

// AlertBatch - 디코딩된 body 내부의 알림 묶음
// alerts 키가 없거나 빈 배열이어도 유효한 요청 (0건 처리)
type AlertBatch struct {
	Alerts []RawAlert `json:"alerts"`
}

// RawAlert - 외부(Prometheus Alertmanager)에서 들어오는 원본 알림
// 필수 필드 없음. 비어있는 값은 정규화 단계에서 기본값으로 채워짐
type RawAlert struct {
	// - alertname: 알림 이름 (예: "CheckoutHighLatencyP95", "CheckoutDown")
	// - severity: 심각도 (예: "page", "ticket")
	// - service: 문제 발생 서비스 이름
	Labels map[string]string `json:"labels"`

	// - runbook_action: 라우팅을 무시하고 강제할 조치 이름 (선택)
	// - desired_replicas: scale 조치 시 목표 레플리카 수 (선택)
	Annotations map[string]string `json:"annotations"`

	// Status: firing(발생) 또는 resolved(해결), 자유 형식
	Status string `json:"status"`
}
