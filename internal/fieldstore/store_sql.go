package fieldstore

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

type sqlStore struct {
	db     *sql.DB
	driver string // "sqlite" | "postgres"
}

func NewSQLStore(db *sql.DB, driver string) Store {
	return &sqlStore{db: db, driver: driver}
}

func (s *sqlStore) Get(ctx context.Context, usageID, field string) (string, bool, error) {
	q := `SELECT value_json FROM block_fields WHERE usage_id=? AND name=?`
	if s.driver == "postgres" {
		q = `SELECT value_json FROM block_fields WHERE usage_id=$1 AND name=$2`
	}
	var v string
	err := s.db.QueryRowContext(ctx, q, usageID, field).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *sqlStore) Set(ctx context.Context, usageID, field, value string) error {
	q := `
		INSERT INTO block_fields (usage_id, name, value_json, updated_at)
		VALUES (?,?,?,?)
		ON CONFLICT (usage_id, name) DO UPDATE SET value_json=excluded.value_json, updated_at=excluded.updated_at`
	if s.driver == "postgres" {
		q = `
		INSERT INTO block_fields (usage_id, name, value_json, updated_at)
		VALUES ($1,$2,$3,$4)
		ON CONFLICT (usage_id, name) DO UPDATE SET value_json=excluded.value_json, updated_at=excluded.updated_at`
	}
	_, err := s.db.ExecContext(ctx, q, usageID, field, value, time.Now().Unix())
	return err
}
