package evalstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/appraise/internal/contract"
	"github.com/huangsam/appraise/schema"
	_ "modernc.org/sqlite" // SQLite driver
)

const sqliteDriver = "sqlite"

// SQLiteStore keeps one JSON-encoded record per evaluation key.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

var _ contract.EvaluationStore = &SQLiteStore{} // Compile-time check

// NewSQLiteStore opens the database at path and migrates it to the latest schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open(sqliteDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite store at %q: %w. Ensure the directory is writable", path, err)
	}
	// Limit SQLite to a single open connection to avoid "database is locked" errors
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to SQLite database %s: %w", path, err)
	}

	if err := migrateDB(db, -1, io.Discard); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db, path: path}, nil
}

// Get returns the record for (period, taskID), or nil when it does not exist.
func (s *SQLiteStore) Get(ctx context.Context, period, taskID string) (*schema.TaskEvaluationData, error) {
	var raw string
	err := s.db.QueryRowContext(ctx,
		"SELECT eval_value FROM evaluations WHERE eval_key = ?",
		schema.EvaluationKey(period, taskID)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluation: %w", err)
	}

	var data schema.TaskEvaluationData
	if err := json.Unmarshal([]byte(raw), &data); err != nil {
		return nil, fmt.Errorf("failed to decode evaluation: %w", err)
	}
	return &data, nil
}

// Set replaces the record for (period, taskID).
func (s *SQLiteStore) Set(ctx context.Context, period, taskID string, data schema.TaskEvaluationData) error {
	return s.upsert(ctx, s.db, schema.EvaluationKey(period, taskID), data)
}

// LoadAll returns every stored record.
func (s *SQLiteStore) LoadAll(ctx context.Context) (schema.EvaluationMap, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT eval_key, eval_value FROM evaluations")
	if err != nil {
		return nil, fmt.Errorf("failed to query evaluations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	evals := schema.EvaluationMap{}
	for rows.Next() {
		var key, raw string
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan evaluation: %w", err)
		}
		var data schema.TaskEvaluationData
		if err := json.Unmarshal([]byte(raw), &data); err != nil {
			return nil, fmt.Errorf("failed to decode evaluation %s: %w", key, err)
		}
		evals[key] = data
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate evaluations: %w", err)
	}
	return evals, nil
}

// SaveAll upserts every record in one transaction.
func (s *SQLiteStore) SaveAll(ctx context.Context, evals schema.EvaluationMap) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for key, data := range evals {
		if err := s.upsert(ctx, tx, key, data); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit evaluations: %w", err)
	}
	return nil
}

// GetStatus reports the record count, latest update and file size.
func (s *SQLiteStore) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:  string(schema.SQLiteBackend),
		Location: s.path,
	}
	if err := s.db.Ping(); err != nil {
		return status, nil
	}
	status.Connected = true

	var lastUpdate sql.NullInt64
	err := s.db.QueryRow("SELECT COUNT(*), MAX(updated_at) FROM evaluations").Scan(&status.TotalEntries, &lastUpdate)
	if err != nil {
		return status, fmt.Errorf("failed to query store status: %w", err)
	}
	if lastUpdate.Valid {
		status.LastUpdateTime = time.Unix(lastUpdate.Int64, 0)
	}
	if info, err := os.Stat(s.path); err == nil {
		status.SizeBytes = info.Size()
	}
	return status, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (s *SQLiteStore) upsert(ctx context.Context, db execer, key string, data schema.TaskEvaluationData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation %s: %w", key, err)
	}
	_, err = db.ExecContext(ctx, `
		INSERT INTO evaluations (eval_key, eval_value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(eval_key) DO UPDATE SET
			eval_value = excluded.eval_value,
			updated_at = excluded.updated_at
	`, key, string(raw), time.Now().Unix())
	if err != nil {
		return fmt.Errorf("failed to store evaluation %s: %w", key, err)
	}
	return nil
}
