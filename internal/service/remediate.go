// 자동 조치 실행기 정의
// 라우팅된 조치값에 대한 상태 머신:
//
//   notify_only      -> 추가 side effect 없음 (알림은 fan-out 단계에서 이미 전송됨)
//   degrade          -> 감사 파라미터 기록 + DEGRADED_MODE env 패치 + 롤링 재시작
//   restart          -> 롤링 재시작만
//   scale            -> desired_replicas(기본 4)로 레플리카 패치
//   degrade_or_scale -> degrade 후 scale (고객 체감 완화 먼저, 증설은 그 다음)
//   그 외            -> side effect 없이 UnknownActionError
//
// 컨트롤 플레인 접속(자격 증명 발급 + 엔드포인트 해석)은 notify_only에서는
// 아예 수행하지 않음 - 조치가 없는 알림에 클러스터 자격 증명을 만들지 않기 위함
//
// 알려진 정합성 공백: 감사 파라미터 기록과 디플로이먼트 env 패치는 트랜잭션을
// 공유하지 않는 독립 호출 2건이라, 그 사이에 죽으면 감사 기록과 실제 배포 상태가
// 어긋남. 워크플로우 엔진이 조치 전체를 재실행할 때까지 그 창이 유지됨

package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/checkout-sre/backend/internal/config"
	"github.com/checkout-sre/backend/internal/model"
)

const (
	degradedEnvVar  = "DEGRADED_MODE"
	defaultReplicas = 4
)

// ErrMissingClusterConfig - 필수 클러스터 설정 부재 (네트워크 호출 전에 실패)
var ErrMissingClusterConfig = errors.New("cluster name is not configured")

// UnknownActionError - 인식할 수 없는 조치값
type UnknownActionError struct {
	Action string
}

func (e *UnknownActionError) Error() string {
	return fmt.Sprintf("unknown remediation action: %s", e.Action)
}

// ControlPlane - 조치 실행에 필요한 컨트롤 플레인 호출 집합
type ControlPlane interface {
	PatchDeploymentEnv(ctx context.Context, namespace, deployment, envName, envValue string) error
	RestartDeployment(ctx context.Context, namespace, deployment string) error
	ScaleDeployment(ctx context.Context, namespace, deployment string, replicas int) error
}

// ControlPlaneConnector - 호출 1회짜리 컨트롤 플레인 클라이언트 생성
// 토큰 수명이 짧아 조치마다 새로 발급하며 호출 간 캐시하지 않음
type ControlPlaneConnector func(ctx context.Context, clusterName, region string) (ControlPlane, error)

// AuditStore - 이름 기반 감사 파라미터 저장소
type AuditStore interface {
	PutParameter(ctx context.Context, name, value string) error
}

// RemediationExecutor 구조체 정의
type RemediationExecutor struct {
	connect ControlPlaneConnector
	audit   AuditStore
	cluster config.ClusterConfig
}

// RemediationExecutor 객체 생성
func NewRemediationExecutor(connect ControlPlaneConnector, audit AuditStore, cluster config.ClusterConfig) *RemediationExecutor {
	return &RemediationExecutor{
		connect: connect,
		audit:   audit,
		cluster: cluster,
	}
}

// Execute - Incident에 대한 조치 결정 + 실행
// 모든 조치는 전체 재실행에 안전함 (워크플로우 엔진이 실패 시 통째로 재시도)
func (e *RemediationExecutor) Execute(ctx context.Context, incident model.Incident) (*model.RemediationResult, error) {
	action := ResolveAction(incident.AlertName, incident.Severity, incident.ActionOverride())

	// side effect 수행 전에 조치값부터 검증
	if !action.Known() {
		return nil, &UnknownActionError{Action: string(action)}
	}

	result := &model.RemediationResult{
		Action:    action,
		AlertName: incident.AlertName,
		Severity:  incident.Severity,
	}

	// notify_only: 컨트롤 플레인 접속 없이 종료
	if action == model.ActionNotifyOnly {
		return result, nil
	}

	// 네트워크 호출 전 필수 설정 검증
	if e.cluster.Name == "" {
		return nil, ErrMissingClusterConfig
	}

	cp, err := e.connect(ctx, e.cluster.Name, e.cluster.Region)
	if err != nil {
		return nil, fmt.Errorf("failed to connect control plane: %w", err)
	}

	switch action {
	case model.ActionDegrade:
		if err := e.degrade(ctx, cp); err != nil {
			return nil, err
		}
		result.Degraded = true

	case model.ActionRestart:
		if err := cp.RestartDeployment(ctx, e.cluster.Namespace, e.cluster.Deployment); err != nil {
			return nil, err
		}

	case model.ActionScale:
		replicas, err := desiredReplicas(incident.Annotations)
		if err != nil {
			return nil, err
		}
		if err := cp.ScaleDeployment(ctx, e.cluster.Namespace, e.cluster.Deployment, replicas); err != nil {
			return nil, err
		}
		result.ScaledTo = replicas

	case model.ActionDegradeOrScale:
		if err := e.degrade(ctx, cp); err != nil {
			return nil, err
		}
		result.Degraded = true

		replicas, err := desiredReplicas(incident.Annotations)
		if err != nil {
			return nil, err
		}
		if err := cp.ScaleDeployment(ctx, e.cluster.Namespace, e.cluster.Deployment, replicas); err != nil {
			return nil, err
		}
		result.ScaledTo = replicas
	}

	return result, nil
}

// degrade - 감사 파라미터 기록 -> env 패치 -> 롤링 재시작
// 파라미터 기록과 env 패치는 독립 호출 2건 (파일 상단의 정합성 공백 참고)
func (e *RemediationExecutor) degrade(ctx context.Context, cp ControlPlane) error {
	if err := e.audit.PutParameter(ctx, e.cluster.DegradedParam, "true"); err != nil {
		return fmt.Errorf("failed to write audit parameter: %w", err)
	}
	if err := cp.PatchDeploymentEnv(ctx, e.cluster.Namespace, e.cluster.Deployment, degradedEnvVar, "true"); err != nil {
		return err
	}
	return cp.RestartDeployment(ctx, e.cluster.Namespace, e.cluster.Deployment)
}

// desiredReplicas - annotations에서 목표 레플리카 수 파싱 (기본 4)
func desiredReplicas(annotations map[string]string) (int, error) {
	raw := annotations["desired_replicas"]
	if raw == "" {
		return defaultReplicas, nil
	}
	replicas, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid desired_replicas %q: %w", raw, err)
	}
	return replicas, nil
}
