package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/go-sql-driver/mysql"
)

const createResultsTable = `CREATE TABLE IF NOT EXISTS shard_results (
	id BIGINT AUTO_INCREMENT PRIMARY KEY,
	run_id CHAR(36) NOT NULL,
	selector VARCHAR(16) NOT NULL,
	shard INT NOT NULL,
	ordinal INT NOT NULL,
	label VARCHAR(255) NOT NULL,
	target TEXT NOT NULL,
	status VARCHAR(16) NOT NULL,
	summary VARCHAR(512) NOT NULL DEFAULT '',
	cases_passed INT NOT NULL DEFAULT 0,
	cases_failed INT NOT NULL DEFAULT 0,
	diagnostic TEXT,
	duration_ms BIGINT NOT NULL,
	created_at DATETIME(3) NOT NULL,
	INDEX idx_shard_results_run (run_id)
)`

const insertResult = `INSERT INTO shard_results
	(run_id, selector, shard, ordinal, label, target, status, summary, cases_passed, cases_failed, diagnostic, duration_ms, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

// SQLStorage records one row per RunResult in a MySQL table, so results of
// sibling shard processes can be queried together by run or by label.
type SQLStorage struct {
	db *sql.DB
}

// NewSQLStorage wraps an open database
func NewSQLStorage(db *sql.DB) *SQLStorage {
	return &SQLStorage{db: db}
}

// OpenMySQL validates dsn, connects and pings the server
func OpenMySQL(ctx context.Context, dsn string) (*SQLStorage, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("invalid results DSN: %w", err)
	}
	cfg.ParseTime = true

	db, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to results database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping results database: %w", err)
	}
	return NewSQLStorage(db), nil
}

// EnsureSchema creates the results table if it does not exist
func (s *SQLStorage) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createResultsTable); err != nil {
		return fmt.Errorf("create shard_results table: %w", err)
	}
	return nil
}

// Save inserts every result of the run in one transaction
func (s *SQLStorage) Save(ctx context.Context, run Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin results transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertResult)
	if err != nil {
		return fmt.Errorf("prepare results insert: %w", err)
	}
	defer stmt.Close()

	for _, shard := range run.Report.Shards {
		for _, res := range shard.Results {
			_, err := stmt.ExecContext(ctx,
				run.ID,
				run.Selector,
				shard.Shard,
				res.Ordinal,
				res.Label,
				res.Target,
				string(res.Status),
				res.Summary,
				res.CasesPassed,
				res.CasesFailed,
				res.Diagnostic,
				res.Duration.Milliseconds(),
				run.Started.UTC(),
			)
			if err != nil {
				return fmt.Errorf("insert result %s: %w", res.Label, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit results: %w", err)
	}
	return nil
}

// Close closes the database
func (s *SQLStorage) Close() error {
	return s.db.Close()
}
