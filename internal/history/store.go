package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Run is one stored benchmark run.
type Run struct {
	// ID is the database row ID.
	ID int64

	// Fingerprint is the content fingerprint of the target document.
	Fingerprint string

	// Document is the document path as given on the command line, kept for
	// display purposes only; the fingerprint is the identity.
	Document string

	// Timestamp is when the run finished.
	Timestamp time.Time

	// MinLen, MaxLen, Charset, Workers, and BatchSize describe the scenario.
	MinLen    int
	MaxLen    int
	Charset   string
	Workers   int
	BatchSize int

	// Status is the string form of the run's terminal status.
	Status string

	// PasswordsChecked is the number of candidates verified.
	PasswordsChecked uint64

	// Elapsed is the wall-clock duration of the run.
	Elapsed time.Duration

	// Rate is the average verification rate in passwords per second.
	Rate float64
}

// Store provides SQLite-based persistence for benchmark runs.
// It manages connection pooling and provides CRUD operations for run rows.
type Store struct {
	db     *sql.DB
	dbPath string
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging for better concurrent
	// performance. Recommended for most use cases.
	EnableWAL bool
}

// DefaultOptions returns the default store options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a benchmark history store in the given directory.
// If CreateIfNotExists is true, the directory and database file are created.
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "pdfcrack.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite uses mode=rw to prevent creating new files and
	// mode=rwc to allow creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite supports only one writer; multiple connections buy nothing here.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (s *Store) createTables() error {
	schema := `
	-- Benchmark runs, one row per completed bench invocation
	CREATE TABLE IF NOT EXISTS bench_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		fingerprint TEXT NOT NULL,
		document TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		min_len INTEGER NOT NULL,
		max_len INTEGER NOT NULL,
		charset TEXT NOT NULL,
		workers INTEGER NOT NULL,
		batch_size INTEGER NOT NULL,
		status TEXT NOT NULL,
		passwords_checked INTEGER NOT NULL,
		elapsed_ms INTEGER NOT NULL,
		rate REAL NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_fingerprint ON bench_runs(fingerprint);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON bench_runs(timestamp);
	`

	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Insert stores one benchmark run and returns its row ID.
func (s *Store) Insert(ctx context.Context, run *Run) (int64, error) {
	query := `
	INSERT INTO bench_runs
		(fingerprint, document, timestamp, min_len, max_len, charset,
		 workers, batch_size, status, passwords_checked, elapsed_ms, rate)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	ts := run.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	res, err := s.db.ExecContext(ctx, query,
		run.Fingerprint,
		run.Document,
		ts.UTC().Format(time.RFC3339),
		run.MinLen,
		run.MaxLen,
		run.Charset,
		run.Workers,
		run.BatchSize,
		run.Status,
		int64(run.PasswordsChecked), //nolint:gosec // counts never approach int64 overflow in practice
		run.Elapsed.Milliseconds(),
		run.Rate,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to insert benchmark run: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to read inserted row id: %w", err)
	}
	return id, nil
}

// History returns the stored runs for a document fingerprint, newest first.
// A limit of zero returns all runs.
func (s *Store) History(ctx context.Context, fingerprint string, limit int) ([]Run, error) {
	query := `
	SELECT id, fingerprint, document, timestamp, min_len, max_len, charset,
	       workers, batch_size, status, passwords_checked, elapsed_ms, rate
	FROM bench_runs
	WHERE fingerprint = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []any{fingerprint}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// DocumentSummary is one known document with its run count and last-seen
// time, for the history listing.
type DocumentSummary struct {
	Fingerprint string
	Document    string
	Runs        int
	LastRun     time.Time
}

// ListDocuments returns every document with stored runs, most recent first.
func (s *Store) ListDocuments(ctx context.Context) ([]DocumentSummary, error) {
	query := `
	SELECT fingerprint, MAX(document), COUNT(*), MAX(timestamp)
	FROM bench_runs
	GROUP BY fingerprint
	ORDER BY MAX(timestamp) DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentSummary
	for rows.Next() {
		var d DocumentSummary
		var ts string
		if err := rows.Scan(&d.Fingerprint, &d.Document, &d.Runs, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan document summary: %w", err)
		}
		d.LastRun = parseTimestamp(ts)
		docs = append(docs, d)
	}

	return docs, rows.Err()
}

// LatestByDocument returns the most recent runs whose document path matches,
// newest first. Used when the caller has a path but no fingerprint.
func (s *Store) LatestByDocument(ctx context.Context, document string, limit int) ([]Run, error) {
	query := `
	SELECT id, fingerprint, document, timestamp, min_len, max_len, charset,
	       workers, batch_size, status, passwords_checked, elapsed_ms, rate
	FROM bench_runs
	WHERE document = ?
	ORDER BY timestamp DESC, id DESC
	LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, document, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs by document: %w", err)
	}
	defer rows.Close()

	return scanRuns(rows)
}

// scanRuns reads Run rows from a result set.
func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		var checked int64
		var elapsedMS int64

		if err := rows.Scan(
			&r.ID, &r.Fingerprint, &r.Document, &ts,
			&r.MinLen, &r.MaxLen, &r.Charset,
			&r.Workers, &r.BatchSize, &r.Status,
			&checked, &elapsedMS, &r.Rate,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		r.Timestamp = parseTimestamp(ts)
		r.PasswordsChecked = uint64(checked) //nolint:gosec // stored from uint64
		r.Elapsed = time.Duration(elapsedMS) * time.Millisecond
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// parseTimestamp parses the timestamp formats SQLite hands back.
func parseTimestamp(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// ErrNoRuns is returned by queries that require stored runs when none exist.
var ErrNoRuns = errors.New("no stored benchmark runs")
