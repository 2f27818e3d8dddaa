// 알림 수집 코디네이터 정의
// 전송 래퍼 디코딩 -> 알림별 정규화 + fan-out -> 알림별 결과 집계
//
// 처리 흐름:
//  1. body가 base64면 디코딩
//  2. 빈 body / alerts 키 없음 / 빈 배열 -> 0건 처리 (에러 아님)
//  3. 파싱 불가 body -> DecodeError (배치 전체 중단, 부분 결과 없음)
//  4. 알림별로 정규화 + 디스패치, 한 알림의 실패는 그 알림만 실패시킴

package service

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/checkout-sre/backend/internal/model"
)

// DecodeError - 파싱 불가능한 수집 페이로드 (배치 전체에 치명적)
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode ingest payload: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// DecodeEnvelope - 전송 래퍼를 AlertBatch로 디코딩
func DecodeEnvelope(env model.IngestEnvelope) (model.AlertBatch, error) {
	body := env.Body
	if env.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return model.AlertBatch{}, &DecodeError{Err: err}
		}
		body = string(decoded)
	}

	// 빈 body는 0건 배치로 취급
	if strings.TrimSpace(body) == "" {
		return model.AlertBatch{}, nil
	}

	var batch model.AlertBatch
	if err := json.Unmarshal([]byte(body), &batch); err != nil {
		return model.AlertBatch{}, &DecodeError{Err: err}
	}
	return batch, nil
}

// IngestService 구조체 정의
type IngestService struct {
	dispatcher *Dispatcher
}

// IngestService 객체 생성
func NewIngestService(dispatcher *Dispatcher) *IngestService {
	return &IngestService{dispatcher: dispatcher}
}

// ProcessBatch - 배치 내 알림을 순서대로 정규화 + 디스패치
//
// 알림별 파이프라인은 서로 독립: 한 알림의 fan-out 실패가
// 다른 알림의 처리를 중단시키거나 오염시키지 않음
func (s *IngestService) ProcessBatch(ctx context.Context, batch model.AlertBatch) ([]model.ProcessedAlert, []model.FailedAlert) {
	processed := []model.ProcessedAlert{}
	var failed []model.FailedAlert

	for _, raw := range batch.Alerts {
		incident := NormalizeAlert(raw)

		log.Printf("Normalized alert: incident_id=%s, alertname=%s, severity=%s, service=%s, status=%s",
			incident.IncidentID, incident.AlertName, incident.Severity, incident.Service, incident.Status)

		if _, err := s.dispatcher.Dispatch(ctx, incident); err != nil {
			log.Printf("Failed to dispatch incident: %v", err)
			failed = append(failed, model.FailedAlert{
				AlertName: incident.AlertName,
				Error:     err.Error(),
			})
			continue
		}

		processed = append(processed, model.ProcessedAlert{
			IncidentID: incident.IncidentID,
			AlertName:  incident.AlertName,
		})
	}

	return processed, failed
}
