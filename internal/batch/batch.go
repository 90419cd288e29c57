// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package batch reads transcription-factor names from a CSV, downloads the
// best motif match for each, and writes a CSV summary report.
package batch

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/motif-engine/internal/audit"
	"github.com/pdiddy/motif-engine/internal/jaspar"
	"github.com/pdiddy/motif-engine/pkg/types"
)

// Searcher returns at most one best-match record for a keyword. An empty
// slice with a nil error means no match; a non-nil error means the search
// itself failed.
type Searcher interface {
	Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.MotifRecord, error)
}

// Downloader fetches resourceURL and persists it at destPath.
type Downloader interface {
	Download(ctx context.Context, resourceURL, destPath string, cfg types.DownloadConfig) error
}

// Deps bundles the collaborators one batch run needs.
type Deps struct {
	Searcher   Searcher
	Downloader Downloader
	Search     types.SearchConfig
	Download   types.DownloadConfig
	Audit      *audit.Logger
}

// notFoundMessage is the report wording for keywords with no match.
const notFoundMessage = "No human motif found."

const (
	reportPrefix      = "jaspar_batch_report_"
	reportStampLayout = "20060102_150405"
)

// reportHeader is the fixed column order of the report CSV.
var reportHeader = []string{"TF_Keyword", "Status", "Matrix_ID", "File_Path", "Error_Message"}

// Result holds the outcome of one batch run.
type Result struct {
	ReportPath string
	Rows       []types.BatchRow
}

// Total returns the number of keywords processed.
func (r Result) Total() int {
	return len(r.Rows)
}

// Succeeded counts SUCCESS rows.
func (r Result) Succeeded() int {
	n := 0
	for _, row := range r.Rows {
		if row.Status == types.StatusSuccess {
			n++
		}
	}
	return n
}

// Failed counts FAILED rows.
func (r Result) Failed() int {
	return r.Total() - r.Succeeded()
}

// LoadKeywords reads column A of every non-blank row of the input CSV.
// Blank lines and blank first cells are skipped; additional columns are
// ignored.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading input CSV: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var keywords []string
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing input CSV: %w", err)
		}
		if len(row) == 0 {
			continue
		}
		kw := strings.TrimSpace(row[0])
		if kw == "" {
			continue
		}
		keywords = append(keywords, kw)
	}
	return keywords, nil
}

// Run executes the batch pipeline: load the keyword list, process each
// keyword sequentially in input order, then write the report CSV once at
// the end and return its path.
//
// Per-keyword failures (search error, no match, download error) become
// FAILED rows and never abort the run. Only a Load failure is fatal, and
// then no report is written. onProgress, when non-nil, receives one status
// line before each keyword is processed.
func Run(ctx context.Context, inputCSV, outputDir string, deps Deps, onProgress func(message string)) (Result, error) {
	keywords, err := LoadKeywords(inputCSV)
	if err != nil {
		deps.Audit.Logf("Batch download failed: %v", err)
		return Result{}, err
	}

	total := len(keywords)
	progress(onProgress, "Starting batch download for %d TFs...", total)
	deps.Audit.Logf("Starting batch download for %d TFs from %s.", total, inputCSV)

	rows := make([]types.BatchRow, 0, total)
	for i, kw := range keywords {
		select {
		case <-ctx.Done():
			return Result{Rows: rows}, ctx.Err()
		default:
		}

		keyword := strings.ToUpper(kw)
		progress(onProgress, "[%d/%d] Processing: %s...", i+1, total, keyword)
		rows = append(rows, processKeyword(ctx, keyword, outputDir, deps))
	}

	reportPath := filepath.Join(outputDir, reportPrefix+time.Now().Format(reportStampLayout)+".csv")
	if err := writeReport(reportPath, rows); err != nil {
		deps.Audit.Logf("Batch download failed: %v", err)
		return Result{Rows: rows}, err
	}

	deps.Audit.Log("Batch download complete. Report saved to " + reportPath)
	return Result{ReportPath: reportPath, Rows: rows}, nil
}

// processKeyword runs the search→download sequence for one keyword and
// returns its report row. Every failure path is absorbed into the row.
func processKeyword(ctx context.Context, keyword, outputDir string, deps Deps) types.BatchRow {
	row := types.BatchRow{Keyword: keyword, Status: types.StatusFailed}

	records, err := deps.Searcher.Search(ctx, keyword, deps.Search)
	if err != nil {
		row.ErrorMessage = err.Error()
		return row
	}
	if len(records) == 0 {
		row.ErrorMessage = notFoundMessage
		return row
	}

	motif := records[0]
	destPath := filepath.Join(outputDir, jaspar.PFMFilename(motif.MatrixID, motif.Name))
	if err := deps.Downloader.Download(ctx, motif.ResourceURL, destPath, deps.Download); err != nil {
		row.ErrorMessage = err.Error()
		return row
	}

	row.Status = types.StatusSuccess
	row.MatrixID = motif.MatrixID
	row.FilePath = destPath
	return row
}

// writeReport writes the report CSV in one pass: fixed header, one row per
// keyword in processing order.
func writeReport(path string, rows []types.BatchRow) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating report: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(reportHeader); err != nil {
		f.Close()
		return fmt.Errorf("writing report header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.Keyword, string(row.Status), row.MatrixID, row.FilePath, row.ErrorMessage}
		if err := w.Write(record); err != nil {
			f.Close()
			return fmt.Errorf("writing report row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flushing report: %w", err)
	}
	return f.Close()
}

func progress(onProgress func(string), format string, args ...any) {
	if onProgress != nil {
		onProgress(fmt.Sprintf(format, args...))
	}
}
