package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// Open opens a DB and ensures schema exists.
func Open(ctx context.Context, driver Driver, dsn string) (*sql.DB, error) {
	var drvName string
	switch driver {
	case DriverSQLite:
		drvName = "sqlite" // modernc driver
		if dsn == "" {
			dsn = "file:openassess.db?cache=shared&mode=rwc&_pragma=busy_timeout(5000)"
		}
	case DriverPostgres:
		drvName = "pgx" // pgx stdlib driver
		if dsn == "" {
			dsn = "postgres://localhost:5432/openassess?sslmode=disable"
		}
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}

	if err := ensureSchema(ctx, db, driver); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sql.DB, driver Driver) error {
	var schema string
	switch driver {
	case DriverSQLite:
		schema = schemaSQLite
	case DriverPostgres:
		schema = schemaPostgres
	}
	_, err := db.ExecContext(ctx, schema)
	return err
}

const schemaSQLite = `
PRAGMA foreign_keys=ON;

CREATE TABLE IF NOT EXISTS block_fields (
  usage_id TEXT NOT NULL,
  name TEXT NOT NULL,
  value_json TEXT NOT NULL,
  updated_at INTEGER NOT NULL,
  PRIMARY KEY (usage_id, name)
);

CREATE TABLE IF NOT EXISTS submissions (
  uuid TEXT PRIMARY KEY,
  student_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  course_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  answer TEXT NOT NULL,
  attempt_number INTEGER NOT NULL,
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_item
  ON submissions (student_id, item_id, course_id, item_type);

CREATE TABLE IF NOT EXISTS assessments (
  uuid TEXT PRIMARY KEY,
  submission_uuid TEXT NOT NULL REFERENCES submissions(uuid) ON DELETE CASCADE,
  scorer_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  points_json TEXT NOT NULL,
  feedback TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_scorer
  ON assessments (scorer_id, kind);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS block_fields (
  usage_id TEXT NOT NULL,
  name TEXT NOT NULL,
  value_json TEXT NOT NULL,
  updated_at BIGINT NOT NULL,
  PRIMARY KEY (usage_id, name)
);

CREATE TABLE IF NOT EXISTS submissions (
  uuid TEXT PRIMARY KEY,
  student_id TEXT NOT NULL,
  item_id TEXT NOT NULL,
  course_id TEXT NOT NULL,
  item_type TEXT NOT NULL,
  answer TEXT NOT NULL,
  attempt_number INTEGER NOT NULL,
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_submissions_item
  ON submissions (student_id, item_id, course_id, item_type);

CREATE TABLE IF NOT EXISTS assessments (
  uuid TEXT PRIMARY KEY,
  submission_uuid TEXT NOT NULL REFERENCES submissions(uuid) ON DELETE CASCADE,
  scorer_id TEXT NOT NULL,
  kind TEXT NOT NULL,
  points_json TEXT NOT NULL,
  feedback TEXT NOT NULL DEFAULT '',
  created_at BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_assessments_scorer
  ON assessments (scorer_id, kind);
`
