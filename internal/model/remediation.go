// 자동 조치(Remediation) 모델 정의

package model

// RemediationAction - 닫힌 조치 집합
// 문자열 비교 대신 타입으로 취급하고, 집합 밖의 값은 실행 단계에서 명시적으로 거부
type RemediationAction string

const (
	ActionNotifyOnly     RemediationAction = "notify_only"
	ActionDegrade        RemediationAction = "degrade"
	ActionRestart        RemediationAction = "restart"
	ActionScale          RemediationAction = "scale"
	ActionDegradeOrScale RemediationAction = "degrade_or_scale"
)

// Known - 인식 가능한 조치인지 확인
func (a RemediationAction) Known() bool {
	switch a {
	case ActionNotifyOnly, ActionDegrade, ActionRestart, ActionScale, ActionDegradeOrScale:
		return true
	}
	return false
}

// RemediationResult - 조치 실행 결과
// degraded, scaled_to는 해당 조치를 수행한 경우에만 채워짐
type RemediationResult struct {
	Action    RemediationAction `json:"action"`
	AlertName string            `json:"alertname"`
	Severity  string            `json:"severity"`
	Degraded  bool              `json:"degraded,omitempty"`
	ScaledTo  int               `json:"scaled_to,omitempty"`
}
