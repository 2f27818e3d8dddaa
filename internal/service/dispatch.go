// Incident fan-out 디스패처 정의
// Incident 1건을 네 개의 독립 싱크로 순서대로 전파:
//   1. 영속 저장소 기록 (storage)
//   2. 이벤트 버스 발행 (bus)
//   3. 알림 채널 발행 (notify)
//   4. 워크플로우 실행 시작 (workflow)
//
// 계약:
//   - 싱크 호출은 Incident당 디스패치 1회에 최대 1번, 자동 재시도 없음
//   - k번째 싱크 실패 시 k+1..4는 건너뛰고, 앞서 성공한 싱크는 되돌리지 않음
//     (트랜잭션 아님 - 워크플로우 엔진이 입력에 멱등하다는 전제의 at-least-once)
//   - 실패는 싱크별 결과 목록과 싱크 이름을 담은 DispatchError로 호출자에 표면화

package service

import (
	"context"
	"fmt"
	"log"

	"github.com/checkout-sre/backend/internal/model"
)

// 싱크 인터페이스 (소비자 측 정의, 구현은 db/client 레이어)
type IncidentStore interface {
	SaveIncident(ctx context.Context, incident model.Incident) error
}

type EventPublisher interface {
	Publish(ctx context.Context, incident model.Incident) error
}

type Notifier interface {
	SendIncident(ctx context.Context, incident model.Incident) error
}

type WorkflowInvoker interface {
	StartExecution(ctx context.Context, incident model.Incident) (string, error)
}

// DispatchError - fan-out 중 싱크 호출 실패
type DispatchError struct {
	Sink       string
	IncidentID string
	Err        error
}

func (e *DispatchError) Error() string {
	return fmt.Sprintf("dispatch to %s failed (incident_id=%s): %v", e.Sink, e.IncidentID, e.Err)
}

func (e *DispatchError) Unwrap() error {
	return e.Err
}

// SinkResult - 싱크별 시도 결과
type SinkResult struct {
	Sink string
	Err  error
}

// Dispatcher 구조체 정의
type Dispatcher struct {
	store    IncidentStore
	bus      EventPublisher
	notifier Notifier
	workflow WorkflowInvoker
}

// Dispatcher 객체 생성
func NewDispatcher(store IncidentStore, bus EventPublisher, notifier Notifier, workflow WorkflowInvoker) *Dispatcher {
	return &Dispatcher{
		store:    store,
		bus:      bus,
		notifier: notifier,
		workflow: workflow,
	}
}

// Dispatch - Incident 1건을 네 싱크로 전파
// 반환된 결과 목록에는 시도한 싱크만 포함됨 (실패 이후 싱크는 시도 자체를 안 함)
func (d *Dispatcher) Dispatch(ctx context.Context, incident model.Incident) ([]SinkResult, error) {
	var results []SinkResult

	attempt := func(sink string, call func() error) error {
		err := call()
		results = append(results, SinkResult{Sink: sink, Err: err})
		if err != nil {
			return &DispatchError{Sink: sink, IncidentID: incident.IncidentID, Err: err}
		}
		return nil
	}

	// 1. 영속 저장 (다운스트림은 Incident가 이미 durable하다고 가정할 수 있음)
	if err := attempt("storage", func() error {
		return d.store.SaveIncident(ctx, incident)
	}); err != nil {
		return results, err
	}

	// 2. 이벤트 버스 발행
	if err := attempt("bus", func() error {
		return d.bus.Publish(ctx, incident)
	}); err != nil {
		return results, err
	}

	// 3. 알림 채널 발행
	if err := attempt("notify", func() error {
		return d.notifier.SendIncident(ctx, incident)
	}); err != nil {
		return results, err
	}

	// 4. 워크플로우 실행 시작 (이 실행이 이후 비동기로 조치 엔드포인트를 호출)
	if err := attempt("workflow", func() error {
		executionID, err := d.workflow.StartExecution(ctx, incident)
		if err != nil {
			return err
		}
		log.Printf("Started workflow execution: execution_id=%s, incident_id=%s", executionID, incident.IncidentID)
		return nil
	}); err != nil {
		return results, err
	}

	return results, nil
}
