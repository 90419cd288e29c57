// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"
)

// Export is the full on-disk dump of the history database.
type Export struct {
	Searches  []SearchEntry   `json:"searches" yaml:"searches"`
	Downloads []DownloadEntry `json:"downloads" yaml:"downloads"`
	BatchRuns []BatchEntry    `json:"batch_runs" yaml:"batch_runs"`
}

// SearchEntry is one recorded search.
type SearchEntry struct {
	Keyword  string    `json:"keyword" yaml:"keyword"`
	MatrixID string    `json:"matrix_id,omitempty" yaml:"matrix_id,omitempty"`
	Name     string    `json:"name,omitempty" yaml:"name,omitempty"`
	Found    bool      `json:"found" yaml:"found"`
	At       time.Time `json:"at" yaml:"at"`
}

// DownloadEntry is one recorded download.
type DownloadEntry struct {
	MatrixID    string    `json:"matrix_id" yaml:"matrix_id"`
	ResourceURL string    `json:"resource_url" yaml:"resource_url"`
	FilePath    string    `json:"file_path" yaml:"file_path"`
	OK          bool      `json:"ok" yaml:"ok"`
	Error       string    `json:"error,omitempty" yaml:"error,omitempty"`
	At          time.Time `json:"at" yaml:"at"`
}

// BatchEntry is one recorded batch run.
type BatchEntry struct {
	InputCSV   string    `json:"input_csv" yaml:"input_csv"`
	ReportPath string    `json:"report_path,omitempty" yaml:"report_path,omitempty"`
	Total      int       `json:"total" yaml:"total"`
	Succeeded  int       `json:"succeeded" yaml:"succeeded"`
	Failed     int       `json:"failed" yaml:"failed"`
	At         time.Time `json:"at" yaml:"at"`
}

// ExportYAML writes the full history to path as YAML.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	exp, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(exp)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the full history to path as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, path string) error {
	exp, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(exp, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *Store) exportAll(ctx context.Context) (*Export, error) {
	exp := &Export{}

	err := queryInto(ctx, s.db,
		`SELECT keyword, matrix_id, name, found, searched_at FROM searches ORDER BY id`,
		func(rows *sql.Rows) error {
			var e SearchEntry
			var found int
			var at string
			if err := rows.Scan(&e.Keyword, &e.MatrixID, &e.Name, &found, &at); err != nil {
				return err
			}
			e.Found = found == 1
			e.At = parseTime(at)
			exp.Searches = append(exp.Searches, e)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("exporting searches: %w", err)
	}

	err = queryInto(ctx, s.db,
		`SELECT matrix_id, resource_url, file_path, ok, error, downloaded_at FROM downloads ORDER BY id`,
		func(rows *sql.Rows) error {
			var e DownloadEntry
			var ok int
			var at string
			if err := rows.Scan(&e.MatrixID, &e.ResourceURL, &e.FilePath, &ok, &e.Error, &at); err != nil {
				return err
			}
			e.OK = ok == 1
			e.At = parseTime(at)
			exp.Downloads = append(exp.Downloads, e)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("exporting downloads: %w", err)
	}

	err = queryInto(ctx, s.db,
		`SELECT input_csv, report_path, total, succeeded, failed, ran_at FROM batch_runs ORDER BY id`,
		func(rows *sql.Rows) error {
			var e BatchEntry
			var at string
			if err := rows.Scan(&e.InputCSV, &e.ReportPath, &e.Total, &e.Succeeded, &e.Failed, &at); err != nil {
				return err
			}
			e.At = parseTime(at)
			exp.BatchRuns = append(exp.BatchRuns, e)
			return nil
		})
	if err != nil {
		return nil, fmt.Errorf("exporting batch runs: %w", err)
	}

	return exp, nil
}

func queryInto(ctx context.Context, db *sql.DB, query string, scan func(*sql.Rows) error) error {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}
