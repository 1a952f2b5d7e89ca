package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"speakersplit/internal/config"
)

// Store persists run history in SQLite.
type Store struct {
	db   *sql.DB
	path string
}

const (
	sqliteBusyCode          = 5
	busyRetryAttempts       = 5
	busyRetryInitialBackoff = 10 * time.Millisecond
	busyRetryMaxBackoff     = 200 * time.Millisecond
	// Fixed-width UTC timestamps so created_at sorts lexically.
	timeLayout = "2006-01-02T15:04:05.000000000Z"
)

func isSQLiteBusy(err error) bool {
	if err == nil {
		return false
	}
	var coder interface{ Code() int }
	if errors.As(err, &coder) && coder.Code() == sqliteBusyCode {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "SQLITE_BUSY") || strings.Contains(msg, "database is locked")
}

// retryOnBusy retries op while SQLite reports the database locked. Parallel
// speaker workers record concurrently, and separate CLI invocations may share
// one database.
func retryOnBusy(ctx context.Context, op func() error) error {
	delay := busyRetryInitialBackoff
	var lastErr error
	for attempt := 0; attempt < busyRetryAttempts; attempt++ {
		lastErr = op()
		if lastErr == nil {
			return nil
		}
		if !isSQLiteBusy(lastErr) || attempt == busyRetryAttempts-1 {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		if next := delay * 2; next <= busyRetryMaxBackoff {
			delay = next
		}
	}
	return lastErr
}

// Open initializes or connects to the history database under cfg's state dir.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := cfg.HistoryPath()
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.applyMigrations(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run. CreatedAt defaults to now when zero.
func (s *Store) Record(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("run id is required")
	}
	if run.Status == "" {
		return errors.New("run status is required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}
	return retryOnBusy(ctx, func() error {
		_, err := s.db.ExecContext(ctx, `INSERT INTO runs (
			id, audio_path, annotation_path, speaker_id, output_path,
			interval_count, frame_count, status, error_message, elapsed_ms, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID,
			run.AudioPath,
			run.AnnotationPath,
			run.SpeakerID,
			run.OutputPath,
			run.IntervalCount,
			run.FrameCount,
			string(run.Status),
			run.ErrorMessage,
			run.Elapsed.Milliseconds(),
			run.CreatedAt.UTC().Format(timeLayout),
		)
		if err != nil {
			return fmt.Errorf("insert run: %w", err)
		}
		return nil
	})
}

// List returns the most recent runs, newest first. A non-positive limit
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, audio_path, annotation_path, speaker_id, output_path,
		interval_count, frame_count, status, error_message, elapsed_ms, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func scanRun(rows *sql.Rows) (Run, error) {
	var (
		run       Run
		status    string
		elapsedMS int64
		created   string
	)
	if err := rows.Scan(
		&run.ID,
		&run.AudioPath,
		&run.AnnotationPath,
		&run.SpeakerID,
		&run.OutputPath,
		&run.IntervalCount,
		&run.FrameCount,
		&status,
		&run.ErrorMessage,
		&elapsedMS,
		&created,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.Status = Status(status)
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	ts, err := time.Parse(timeLayout, created)
	if err != nil {
		return Run{}, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	run.CreatedAt = ts
	return run, nil
}
