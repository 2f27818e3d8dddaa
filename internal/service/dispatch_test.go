package service

import (
	"context"
	"errors"
	"testing"

	"github.com/checkout-sre/backend/internal/model"
)

// 싱크 fake: 호출 순서를 공유 슬라이스에 기록하고 설정된 에러를 반환
type fakeSinks struct {
	calls       []string
	storeErr    error
	busErr      error
	notifyErr   error
	workflowErr error
}

func (f *fakeSinks) SaveIncident(ctx context.Context, incident model.Incident) error {
	f.calls = append(f.calls, "storage")
	return f.storeErr
}

func (f *fakeSinks) Publish(ctx context.Context, incident model.Incident) error {
	f.calls = append(f.calls, "bus")
	return f.busErr
}

func (f *fakeSinks) SendIncident(ctx context.Context, incident model.Incident) error {
	f.calls = append(f.calls, "notify")
	return f.notifyErr
}

func (f *fakeSinks) StartExecution(ctx context.Context, incident model.Incident) (string, error) {
	f.calls = append(f.calls, "workflow")
	return "exec-1", f.workflowErr
}

func newTestDispatcher(sinks *fakeSinks) *Dispatcher {
	return NewDispatcher(sinks, sinks, sinks, sinks)
}

func testIncident() model.Incident {
	return model.Incident{IncidentID: "inc-1", AlertName: "CheckoutDown", Severity: "page", Status: "firing"}
}

func TestDispatchOrder(t *testing.T) {
	sinks := &fakeSinks{}
	results, err := newTestDispatcher(sinks).Dispatch(context.Background(), testIncident())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"storage", "bus", "notify", "workflow"}
	if len(sinks.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", sinks.calls, want)
	}
	for i := range want {
		if sinks.calls[i] != want[i] {
			t.Fatalf("calls = %v, want %v", sinks.calls, want)
		}
	}
	if len(results) != 4 {
		t.Fatalf("results = %d, want 4", len(results))
	}
	for _, r := range results {
		if r.Err != nil {
			t.Fatalf("sink %s reported error: %v", r.Sink, r.Err)
		}
	}
}

func TestDispatchAbortsAfterFailure(t *testing.T) {
	sinks := &fakeSinks{busErr: errors.New("bus down")}
	results, err := newTestDispatcher(sinks).Dispatch(context.Background(), testIncident())

	var dispatchErr *DispatchError
	if !errors.As(err, &dispatchErr) {
		t.Fatalf("expected DispatchError, got %v", err)
	}
	if dispatchErr.Sink != "bus" {
		t.Fatalf("failed sink = %q, want bus", dispatchErr.Sink)
	}
	if dispatchErr.IncidentID != "inc-1" {
		t.Fatalf("incident id = %q, want inc-1", dispatchErr.IncidentID)
	}

	// notify, workflow는 시도 자체가 없어야 함 (롤백도 없음)
	for _, call := range sinks.calls {
		if call == "notify" || call == "workflow" {
			t.Fatalf("sink %s must not be attempted after failure", call)
		}
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (storage + failed bus)", len(results))
	}
	if results[0].Err != nil || results[1].Err == nil {
		t.Fatalf("unexpected per-sink results: %+v", results)
	}
}

func TestDispatchEachSinkAtMostOnce(t *testing.T) {
	sinks := &fakeSinks{workflowErr: errors.New("engine unavailable")}
	_, err := newTestDispatcher(sinks).Dispatch(context.Background(), testIncident())
	if err == nil {
		t.Fatalf("expected error")
	}

	// 실패해도 재시도 없이 싱크당 정확히 1회
	counts := map[string]int{}
	for _, call := range sinks.calls {
		counts[call]++
	}
	for sink, n := range counts {
		if n != 1 {
			t.Fatalf("sink %s attempted %d times, want 1", sink, n)
		}
	}
}
