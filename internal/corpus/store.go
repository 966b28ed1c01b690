package corpus

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/introflow/replybrain/internal/common"
	"github.com/introflow/replybrain/internal/model"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Store persists the labeled corpus and evaluation runs in SQLite.
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the corpus database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("dbPath must not be empty")
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migration represents a database schema migration.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS labeled_replies (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					text TEXT UNIQUE NOT NULL,
					stage TEXT NOT NULL,
					note TEXT,
					created_at DATETIME DEFAULT CURRENT_TIMESTAMP
				)`,
				`CREATE INDEX IF NOT EXISTS idx_labeled_replies_stage ON labeled_replies(stage)`,

				`CREATE TABLE IF NOT EXISTS eval_runs (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					run_at DATETIME DEFAULT CURRENT_TIMESTAMP,
					total INTEGER NOT NULL,
					correct INTEGER NOT NULL,
					accuracy REAL NOT NULL,
					per_stage TEXT NOT NULL
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// Migrate applies any pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx,
		`CREATE TABLE IF NOT EXISTS schema_migrations (version INTEGER PRIMARY KEY, applied_at DATETIME DEFAULT CURRENT_TIMESTAMP)`); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var current sql.NullInt64
	if err := s.db.QueryRowContext(ctx,
		`SELECT MAX(version) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for _, m := range migrations {
		if current.Valid && m.Version <= int(current.Int64) {
			continue
		}
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", m.Version, err)
		}
		if err := m.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Description, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, m.Version); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", m.Version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// AddReplies inserts labeled replies, skipping any whose text is already
// stored. It returns the number actually inserted.
func (s *Store) AddReplies(ctx context.Context, replies []LabeledReply) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO labeled_replies (text, stage, note) VALUES (?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	inserted := 0
	for _, r := range replies {
		res, execErr := stmt.ExecContext(ctx, r.Text, string(r.Stage), r.Note)
		if execErr != nil {
			return 0, fmt.Errorf("failed to insert reply: %w", execErr)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit: %w", err)
	}
	return inserted, nil
}

// ListReplies returns all labeled replies in insertion order.
func (s *Store) ListReplies(ctx context.Context) ([]LabeledReply, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, stage, COALESCE(note, ''), created_at FROM labeled_replies ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query replies: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var replies []LabeledReply
	for rows.Next() {
		var r LabeledReply
		var stage string
		if err := rows.Scan(&r.ID, &r.Text, &stage, &r.Note, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan reply: %w", err)
		}
		r.Stage = model.Stage(stage)
		replies = append(replies, r)
	}
	return replies, rows.Err()
}

// SaveRun records an evaluation run.
func (s *Store) SaveRun(ctx context.Context, report Report) error {
	perStage, err := json.Marshal(report.PerStage)
	if err != nil {
		return fmt.Errorf("failed to encode per-stage scores: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO eval_runs (total, correct, accuracy, per_stage) VALUES (?, ?, ?, ?)`,
		report.Total, report.Correct, report.Accuracy(), string(perStage))
	if err != nil {
		return fmt.Errorf("failed to save eval run: %w", err)
	}
	return nil
}

// Run is one stored evaluation run.
type Run struct {
	RunAt    time.Time
	PerStage map[model.Stage]StageScore
	ID       int64
	Total    int
	Correct  int
	Accuracy float64
}

// LatestRun returns the most recent evaluation run, or common.ErrNotFound
// when none has been recorded yet.
func (s *Store) LatestRun(ctx context.Context) (Run, error) {
	runs, err := s.ListRuns(ctx, 1)
	if err != nil {
		return Run{}, err
	}
	if len(runs) == 0 {
		return Run{}, fmt.Errorf("no evaluation runs recorded: %w", common.ErrNotFound)
	}
	return runs[0], nil
}

// ListRuns returns the most recent evaluation runs, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_at, total, correct, accuracy, per_stage FROM eval_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query eval runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r        Run
			perStage string
		)
		if err := rows.Scan(&r.ID, &r.RunAt, &r.Total, &r.Correct, &r.Accuracy, &perStage); err != nil {
			return nil, fmt.Errorf("failed to scan eval run: %w", err)
		}
		if err := json.Unmarshal([]byte(perStage), &r.PerStage); err != nil {
			return nil, fmt.Errorf("failed to decode per-stage scores: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
