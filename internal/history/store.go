// Package history persists a ledger of organizer runs and individual file
// relocations in SQLite, backing the status and history commands.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; the ledger is advisory, so users can simply delete the database.
const schemaVersion = 1

// ErrSchemaMismatch indicates the database was created by an incompatible
// version.
var ErrSchemaMismatch = errors.New("history schema version mismatch")

// Run is one pipeline invocation's summary row.
type Run struct {
	ID         string
	Kind       string
	StartedAt  time.Time
	FinishedAt time.Time
	DryRun     bool
	Moved      int
	Skipped    int
	Errored    int
}

// Relocation is one file's recorded outcome within a run.
type Relocation struct {
	RunID       string
	Source      string
	Destination string
	Disposition string
	Reason      string
	Category    string
	Confidence  int
	Provenance  string
	RecordedAt  time.Time
}

// Store manages ledger persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the ledger database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to reset)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

// RecordRun upserts a run summary row.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, kind, started_at, finished_at, dry_run, moved, skipped, errored)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             finished_at = excluded.finished_at,
             moved = excluded.moved,
             skipped = excluded.skipped,
             errored = excluded.errored`,
		run.ID,
		run.Kind,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		boolToInt(run.DryRun),
		run.Moved,
		run.Skipped,
		run.Errored,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// RecordRelocation appends one file outcome to the ledger.
func (s *Store) RecordRelocation(ctx context.Context, rel Relocation) error {
	recorded := rel.RecordedAt
	if recorded.IsZero() {
		recorded = time.Now()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO relocations (
             run_id, source_path, destination_path, disposition, reason,
             category, confidence, date_provenance, recorded_at
         ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rel.RunID,
		rel.Source,
		nullableString(rel.Destination),
		rel.Disposition,
		nullableString(rel.Reason),
		nullableString(rel.Category),
		rel.Confidence,
		nullableString(rel.Provenance),
		recorded.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("record relocation: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit run summaries, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, kind, started_at, finished_at, dry_run, moved, skipped, errored
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                 Run
			started, finished   string
			dryRun              int
		)
		if err := rows.Scan(&run.ID, &run.Kind, &started, &finished, &dryRun,
			&run.Moved, &run.Skipped, &run.Errored); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		run.DryRun = dryRun != 0
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RecentRelocations returns up to limit relocation records, newest first.
func (s *Store) RecentRelocations(ctx context.Context, limit int) ([]Relocation, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, source_path, destination_path, disposition, reason,
                category, confidence, date_provenance, recorded_at
         FROM relocations ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query relocations: %w", err)
	}
	defer rows.Close()

	var rels []Relocation
	for rows.Next() {
		var (
			rel                            Relocation
			dest, reason, cat, provenance  sql.NullString
			recorded                       string
		)
		if err := rows.Scan(&rel.RunID, &rel.Source, &dest, &rel.Disposition,
			&reason, &cat, &rel.Confidence, &provenance, &recorded); err != nil {
			return nil, fmt.Errorf("scan relocation: %w", err)
		}
		rel.Destination = dest.String
		rel.Reason = reason.String
		rel.Category = cat.String
		rel.Provenance = provenance.String
		rel.RecordedAt, _ = time.Parse(time.RFC3339Nano, recorded)
		rels = append(rels, rel)
	}
	return rels, rows.Err()
}

func nullableString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
