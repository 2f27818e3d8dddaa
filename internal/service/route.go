// 조치 라우팅 로직 정의
// alertname 기반의 순수 결정 함수이며 이 테이블이 라우팅 정책의 전부
// severity는 페이로드 호환을 위해 전달만 되고 현재 정책에서는 분류에 쓰이지 않음

package service

import "github.com/checkout-sre/backend/internal/model"

// 즉시 완화(degrade) 후 증설까지 필요한 고심각 체크아웃 알림
var degradeOrScaleAlerts = map[string]struct{}{
	"CheckoutHighLatencyP95": {},
	"CheckoutHighErrorRate":  {},
	"CheckoutSLOBurnFast":    {},
}

// ResolveAction - 알림 이름/심각도/강제 지정값으로 조치 결정
//
// 1. override가 있으면 그대로 반환 (인식 불가 값 거부는 실행 단계 책임)
// 2. 없으면 alertname 분류, 어떤 이름이든 정확히 하나의 조치로 귀결
//    (notify_only가 catch-all)
func ResolveAction(alertName, severity, override string) model.RemediationAction {
	if override != "" {
		return model.RemediationAction(override)
	}

	if _, ok := degradeOrScaleAlerts[alertName]; ok {
		return model.ActionDegradeOrScale
	}
	if alertName == "CheckoutDown" {
		return model.ActionRestart
	}
	return model.ActionNotifyOnly
}
