// incidents 테이블 - 정규화된 Incident의 영속 저장소
// (incident_id, ts) 복합 키에 조회용 파생 컬럼(service, alertname, severity, status)과
// 전체 Incident를 담는 payload JSONB 컬럼을 함께 보관

package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/checkout-sre/backend/internal/model"
)

// EnsureIncidentSchema - incidents 테이블 생성
func (db *Postgres) EnsureIncidentSchema() error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS incidents (
			incident_id TEXT NOT NULL,
			ts BIGINT NOT NULL,
			service TEXT NOT NULL DEFAULT 'unknown',
			alertname TEXT NOT NULL DEFAULT 'UnknownAlert',
			severity TEXT NOT NULL DEFAULT 'ticket',
			status TEXT NOT NULL DEFAULT 'firing',
			payload JSONB NOT NULL DEFAULT '{}',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (incident_id, ts)
		)
		`,
		`CREATE INDEX IF NOT EXISTS incidents_service_idx ON incidents(service)`,
		`CREATE INDEX IF NOT EXISTS incidents_alertname_idx ON incidents(alertname)`,
		`CREATE INDEX IF NOT EXISTS incidents_ts_idx ON incidents(ts DESC)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(context.Background(), query); err != nil {
			return err
		}
	}
	return nil
}

// SaveIncident - Incident 1건 저장
// 같은 (incident_id, ts)로 재시도돼도 안전하도록 upsert로 처리
func (db *Postgres) SaveIncident(ctx context.Context, incident model.Incident) error {
	payload, err := json.Marshal(incident)
	if err != nil {
		return fmt.Errorf("failed to marshal incident payload: %w", err)
	}

	query := `
		INSERT INTO incidents (incident_id, ts, service, alertname, severity, status, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (incident_id, ts) DO UPDATE SET
			service = EXCLUDED.service,
			alertname = EXCLUDED.alertname,
			severity = EXCLUDED.severity,
			status = EXCLUDED.status,
			payload = EXCLUDED.payload
	`

	_, err = db.Pool.Exec(ctx, query,
		incident.IncidentID,
		incident.Timestamp,
		incident.Service,
		incident.AlertName,
		incident.Severity,
		incident.Status,
		payload,
	)
	return err
}

// GetIncidentList - Incident 목록 조회 (최신순)
func (db *Postgres) GetIncidentList(ctx context.Context) ([]model.IncidentListItem, error) {
	query := `
		SELECT incident_id, ts, service, alertname, severity, status
		FROM incidents
		ORDER BY ts DESC
		LIMIT 200`

	rows, err := db.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.IncidentListItem
	for rows.Next() {
		var i model.IncidentListItem
		if err := rows.Scan(&i.IncidentID, &i.Timestamp, &i.Service, &i.AlertName, &i.Severity, &i.Status); err != nil {
			return nil, err
		}
		list = append(list, i)
	}

	if list == nil {
		list = []model.IncidentListItem{}
	}
	return list, nil
}

// GetIncidentDetail - Incident 상세 조회
// 같은 incident_id가 여러 ts로 저장된 경우 최신 레코드 반환
func (db *Postgres) GetIncidentDetail(ctx context.Context, incidentID string) (*model.IncidentDetail, error) {
	query := `
		SELECT incident_id, ts, service, alertname, severity, status, payload
		FROM incidents
		WHERE incident_id = $1
		ORDER BY ts DESC
		LIMIT 1
	`

	var i model.IncidentDetail
	err := db.Pool.QueryRow(ctx, query, incidentID).Scan(
		&i.IncidentID,
		&i.Timestamp,
		&i.Service,
		&i.AlertName,
		&i.Severity,
		&i.Status,
		&i.Payload,
	)

	if err != nil {
		return nil, err
	}
	return &i, nil
}
