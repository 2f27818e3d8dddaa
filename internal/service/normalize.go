// 원본 알림 정규화 로직 정의
// RawAlert 1건을 받아 항상 Incident 1건을 만들어내는 전함수 (실패 없음)
//
// 기본값:
//   - alertname 없음 -> "UnknownAlert"
//   - severity 없음  -> "ticket"
//   - service 없음   -> "unknown"
//   - status 없음    -> "firing"

package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/checkout-sre/backend/internal/model"
)

const (
	defaultAlertName = "UnknownAlert"
	defaultSeverity  = "ticket"
	defaultService   = "unknown"
	defaultStatus    = "firing"
)

// NormalizeAlert - 원본 알림 1건을 Incident로 정규화
// id와 timestamp만 호출마다 새로 발급되고 나머지는 입력의 순수 함수
func NormalizeAlert(raw model.RawAlert) model.Incident {
	return newIncident(raw, uuid.NewString(), time.Now().Unix())
}

func newIncident(raw model.RawAlert, id string, ts int64) model.Incident {
	alertName := raw.Labels["alertname"]
	if alertName == "" {
		alertName = defaultAlertName
	}
	severity := raw.Labels["severity"]
	if severity == "" {
		severity = defaultSeverity
	}
	service := raw.Labels["service"]
	if service == "" {
		service = defaultService
	}
	status := raw.Status
	if status == "" {
		status = defaultStatus
	}

	return model.Incident{
		IncidentID:  id,
		Timestamp:   ts,
		Status:      status,
		Severity:    severity,
		Service:     service,
		AlertName:   alertName,
		Labels:      copyMap(raw.Labels),
		Annotations: copyMap(raw.Annotations),
	}
}

// Incident 불변성 유지를 위해 라벨/어노테이션은 복사본을 보관
func copyMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
