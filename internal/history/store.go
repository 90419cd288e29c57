// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history persists searches, downloads, and batch runs to a local
// SQLite database so past activity can be listed and exported.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/motif-engine/pkg/types"
)

const dbFile = "motif-engine.db"

// Store manages the history SQLite database. All Record methods are
// best-effort from the caller's perspective: a nil Store is a no-op, and
// callers treat returned errors as diagnostics, never as operation
// failures.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the database at cfg.DataDir/motif-engine.db,
// creating the schema if it does not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "."
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS searches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			keyword TEXT NOT NULL,
			matrix_id TEXT,
			name TEXT,
			found INTEGER NOT NULL,
			searched_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS downloads (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			matrix_id TEXT NOT NULL,
			resource_url TEXT NOT NULL,
			file_path TEXT NOT NULL,
			ok INTEGER NOT NULL,
			error TEXT,
			downloaded_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS batch_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			input_csv TEXT NOT NULL,
			report_path TEXT,
			total INTEGER NOT NULL,
			succeeded INTEGER NOT NULL,
			failed INTEGER NOT NULL,
			ran_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_searches_keyword ON searches(keyword)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordSearch stores one search outcome. A nil record means no match.
func (s *Store) RecordSearch(ctx context.Context, keyword string, record *types.MotifRecord) error {
	if s == nil {
		return nil
	}
	matrixID, name := "", ""
	found := 0
	if record != nil {
		matrixID, name = record.MatrixID, record.Name
		found = 1
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO searches (keyword, matrix_id, name, found, searched_at) VALUES (?, ?, ?, ?, ?)`,
		keyword, matrixID, name, found, now(),
	)
	if err != nil {
		return fmt.Errorf("recording search: %w", err)
	}
	return nil
}

// RecordDownload stores one download outcome.
func (s *Store) RecordDownload(ctx context.Context, matrixID, resourceURL, filePath string, downloadErr error) error {
	if s == nil {
		return nil
	}
	ok := 1
	errMsg := ""
	if downloadErr != nil {
		ok = 0
		errMsg = downloadErr.Error()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO downloads (matrix_id, resource_url, file_path, ok, error, downloaded_at) VALUES (?, ?, ?, ?, ?, ?)`,
		matrixID, resourceURL, filePath, ok, errMsg, now(),
	)
	if err != nil {
		return fmt.Errorf("recording download: %w", err)
	}
	return nil
}

// RecordBatch stores one batch run summary.
func (s *Store) RecordBatch(ctx context.Context, inputCSV, reportPath string, total, succeeded, failed int) error {
	if s == nil {
		return nil
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO batch_runs (input_csv, report_path, total, succeeded, failed, ran_at) VALUES (?, ?, ?, ?, ?, ?)`,
		inputCSV, reportPath, total, succeeded, failed, now(),
	)
	if err != nil {
		return fmt.Errorf("recording batch run: %w", err)
	}
	return nil
}

// Entry is one history event flattened for display, newest first.
type Entry struct {
	Kind   string    `json:"kind" yaml:"kind"` // search, download, batch
	Detail string    `json:"detail" yaml:"detail"`
	OK     bool      `json:"ok" yaml:"ok"`
	At     time.Time `json:"at" yaml:"at"`
}

// Recent returns up to limit entries across all three tables, newest
// first. Zero limit uses the store default.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = s.maxResults
	}

	var entries []Entry

	rows, err := s.db.QueryContext(ctx,
		`SELECT keyword, matrix_id, found, searched_at FROM searches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying searches: %w", err)
	}
	for rows.Next() {
		var keyword, matrixID, at string
		var found int
		if err := rows.Scan(&keyword, &matrixID, &found, &at); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning search row: %w", err)
		}
		detail := "search " + keyword
		if found == 1 {
			detail += " -> " + matrixID
		} else {
			detail += " (no match)"
		}
		entries = append(entries, Entry{Kind: "search", Detail: detail, OK: found == 1, At: parseTime(at)})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT matrix_id, file_path, ok, downloaded_at FROM downloads ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying downloads: %w", err)
	}
	for rows.Next() {
		var matrixID, filePath, at string
		var ok int
		if err := rows.Scan(&matrixID, &filePath, &ok, &at); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning download row: %w", err)
		}
		entries = append(entries, Entry{
			Kind:   "download",
			Detail: "download " + matrixID + " -> " + filePath,
			OK:     ok == 1,
			At:     parseTime(at),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = s.db.QueryContext(ctx,
		`SELECT input_csv, total, succeeded, failed, ran_at FROM batch_runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying batch runs: %w", err)
	}
	for rows.Next() {
		var inputCSV, at string
		var total, succeeded, failed int
		if err := rows.Scan(&inputCSV, &total, &succeeded, &failed, &at); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning batch row: %w", err)
		}
		entries = append(entries, Entry{
			Kind:   "batch",
			Detail: fmt.Sprintf("batch %s (%d ok, %d failed of %d)", inputCSV, succeeded, failed, total),
			OK:     failed == 0,
			At:     parseTime(at),
		})
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].At.After(entries[j].At)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func now() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
