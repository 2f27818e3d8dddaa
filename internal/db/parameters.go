// parameters 테이블 - 이름 기반 감사(audit) 파라미터 저장소
// degrade 조치 시 degraded_mode 플래그를 기록하는 용도 (upsert-by-name)

package db

import "context"

// EnsureParameterSchema - parameters 테이블 생성
func (db *Postgres) EnsureParameterSchema() error {
	query := `
		CREATE TABLE IF NOT EXISTS parameters (
			name TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`
	_, err := db.Pool.Exec(context.Background(), query)
	return err
}

// PutParameter - 파라미터 upsert (동일 name이면 value 덮어쓰기)
func (db *Postgres) PutParameter(ctx context.Context, name, value string) error {
	query := `
		INSERT INTO parameters (name, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (name) DO UPDATE SET
			value = EXCLUDED.value,
			updated_at = NOW()
	`
	_, err := db.Pool.Exec(ctx, query, name, value)
	return err
}

// GetParameter - 파라미터 조회
func (db *Postgres) GetParameter(ctx context.Context, name string) (string, error) {
	var value string
	err := db.Pool.QueryRow(ctx, `SELECT value FROM parameters WHERE name = $1`, name).Scan(&value)
	if err != nil {
		return "", err
	}
	return value, nil
}

// EnsureSchema - 전체 테이블 생성 (기동 시 1회 호출)
func (db *Postgres) EnsureSchema() error {
	if err := db.EnsureIncidentSchema(); err != nil {
		return err
	}
	return db.EnsureParameterSchema()
}
