// Package history keeps a journal of creoclean runs in SQLite.
package history

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/creoclean/internal/fileutil"
	"github.com/harrison/creoclean/internal/scrub"
	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Entry is the journal record for one directory in one run
type Entry struct {
	ID        int64
	RunID     string
	Directory string
	Deleted   int
	Renamed   int
	Skipped   int
	Failed    int
	Locked    bool
	Timestamp time.Time
}

// Store manages the history database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens (creating if needed) the history database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Set busy_timeout first so the remaining statements wait on locks.
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	if err := execWithRetry(db, schemaSQL, 5, 10*time.Millisecond); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Store{db: db, dbPath: dbPath}, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NewRunID returns a fresh identifier grouping the entries of one run.
func NewRunID() string {
	return uuid.NewString()
}

// EntriesFromReports converts a run's directory reports into journal entries.
// Directories are stored in fileutil.CanonicalDir form.
func EntriesFromReports(runID string, reports []scrub.DirectoryReport, at time.Time) []*Entry {
	entries := make([]*Entry, 0, len(reports))
	for _, r := range reports {
		dir := r.Dir
		if canonical, err := fileutil.CanonicalDir(dir); err == nil {
			dir = canonical
		}
		combined := r.Combined()
		entries = append(entries, &Entry{
			RunID:     runID,
			Directory: dir,
			Deleted:   combined.Deleted,
			Renamed:   combined.Renamed,
			Skipped:   combined.Skipped,
			Failed:    combined.Failed,
			Locked:    r.Locked,
			Timestamp: at,
		})
	}
	return entries
}

// Record inserts entries in a single transaction and fills in their IDs.
func (s *Store) Record(ctx context.Context, entries []*Entry) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cleanups
		(run_id, directory, deleted, renamed, skipped, failed, locked, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range entries {
		if e.Timestamp.IsZero() {
			e.Timestamp = time.Now()
		}
		result, err := stmt.ExecContext(ctx,
			e.RunID,
			e.Directory,
			e.Deleted,
			e.Renamed,
			e.Skipped,
			e.Failed,
			e.Locked,
			e.Timestamp.UTC(),
		)
		if err != nil {
			return fmt.Errorf("insert cleanup for %s: %w", e.Directory, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("get last insert id: %w", err)
		}
		e.ID = id
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, most recent first. A directory filter
// narrows the result to that exact directory.
func (s *Store) Recent(ctx context.Context, limit int, directory string) ([]*Entry, error) {
	if limit <= 0 {
		limit = 20
	}

	query := `SELECT id, run_id, directory, deleted, renamed, skipped, failed, locked, timestamp
		FROM cleanups`
	args := []interface{}{}
	if directory != "" {
		query += ` WHERE directory = ?`
		args = append(args, directory)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cleanups: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e := &Entry{}
		if err := rows.Scan(
			&e.ID,
			&e.RunID,
			&e.Directory,
			&e.Deleted,
			&e.Renamed,
			&e.Skipped,
			&e.Failed,
			&e.Locked,
			&e.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan cleanup: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cleanups: %w", err)
	}

	return entries, nil
}
