// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package batch

import (
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/motif-engine/pkg/types"
)

// fakeSearcher maps keywords to canned outcomes.
type fakeSearcher struct {
	records map[string][]types.MotifRecord
	errs    map[string]error
	calls   []string
}

func (f *fakeSearcher) Search(ctx context.Context, keyword string, cfg types.SearchConfig) ([]types.MotifRecord, error) {
	f.calls = append(f.calls, keyword)
	if err := f.errs[keyword]; err != nil {
		return nil, err
	}
	return f.records[keyword], nil
}

// fakeDownloader records download calls and optionally fails per URL.
type fakeDownloader struct {
	errs  map[string]error
	paths []string
}

func (f *fakeDownloader) Download(ctx context.Context, resourceURL, destPath string, cfg types.DownloadConfig) error {
	if err := f.errs[resourceURL]; err != nil {
		return err
	}
	f.paths = append(f.paths, destPath)
	return os.WriteFile(destPath, []byte(">"+resourceURL+"\n"), 0o644)
}

func motif(index, id, name string) types.MotifRecord {
	return types.MotifRecord{
		SequenceIndex: index,
		MatrixID:      id,
		Name:          name,
		ResourceURL:   "https://example.org/matrix/" + id + "/?format=pfm",
	}
}

func writeCSV(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "input.csv")
	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readReport(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening report: %v", err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("parsing report: %v", err)
	}
	return rows
}

// --- LoadKeywords ---

func TestLoadKeywordsSkipsBlanks(t *testing.T) {
	path := writeCSV(t, "FOXA1", "", "   ", "gata1,extra column", "BADNAME123")

	keywords, err := LoadKeywords(path)
	if err != nil {
		t.Fatalf("LoadKeywords: %v", err)
	}
	want := []string{"FOXA1", "gata1", "BADNAME123"}
	if len(keywords) != len(want) {
		t.Fatalf("got %d keywords %v, want %d", len(keywords), keywords, len(want))
	}
	for i, kw := range want {
		if keywords[i] != kw {
			t.Errorf("keywords[%d] = %q, want %q", i, keywords[i], kw)
		}
	}
}

func TestLoadKeywordsMissingFile(t *testing.T) {
	if _, err := LoadKeywords(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Fatal("LoadKeywords: expected error for missing file, got nil")
	}
}

// --- Run ---

func TestRunEndToEnd(t *testing.T) {
	input := writeCSV(t, "gata1", "BADNAME123", "foxa1")
	outDir := t.TempDir()

	searcher := &fakeSearcher{
		records: map[string][]types.MotifRecord{
			"GATA1": {motif("1", "MA0035.4", "GATA1")},
			"FOXA1": {motif("1", "MA0148.4", "FOXA1")},
		},
	}
	downloader := &fakeDownloader{}
	deps := Deps{Searcher: searcher, Downloader: downloader}

	var progressLines []string
	res, err := Run(context.Background(), input, outDir, deps, func(line string) {
		progressLines = append(progressLines, line)
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if res.Total() != 3 || res.Succeeded() != 2 || res.Failed() != 1 {
		t.Errorf("counts = %d/%d/%d, want 3 total, 2 succeeded, 1 failed",
			res.Total(), res.Succeeded(), res.Failed())
	}

	// Keywords are uppercased before searching.
	if len(searcher.calls) != 3 || searcher.calls[0] != "GATA1" {
		t.Errorf("search calls = %v, want uppercased keywords in input order", searcher.calls)
	}

	wantFile := filepath.Join(outDir, "MA0035.4_GATA1.pfm")
	if _, statErr := os.Stat(wantFile); statErr != nil {
		t.Errorf("expected downloaded file %s: %v", wantFile, statErr)
	}

	rows := readReport(t, res.ReportPath)
	if len(rows) != 4 {
		t.Fatalf("report has %d rows, want header + 3", len(rows))
	}
	wantHeader := "TF_Keyword,Status,Matrix_ID,File_Path,Error_Message"
	if got := strings.Join(rows[0], ","); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	if rows[1][1] != "SUCCESS" || rows[1][2] != "MA0035.4" {
		t.Errorf("row 1 = %v, want SUCCESS for MA0035.4", rows[1])
	}
	if rows[2][1] != "FAILED" || rows[2][4] != "No human motif found." {
		t.Errorf("row 2 = %v, want FAILED with not-found message", rows[2])
	}
	if rows[3][1] != "SUCCESS" {
		t.Errorf("row 3 = %v, want SUCCESS", rows[3])
	}

	if len(progressLines) != 4 {
		t.Fatalf("got %d progress lines, want 4", len(progressLines))
	}
	if progressLines[0] != "Starting batch download for 3 TFs..." {
		t.Errorf("progress[0] = %q", progressLines[0])
	}
	if progressLines[1] != "[1/3] Processing: GATA1..." {
		t.Errorf("progress[1] = %q", progressLines[1])
	}

	if !strings.HasPrefix(filepath.Base(res.ReportPath), "jaspar_batch_report_") {
		t.Errorf("report name %q missing prefix", filepath.Base(res.ReportPath))
	}
}

func TestRunIsolatesFailures(t *testing.T) {
	input := writeCSV(t, "TP53", "GATA1", "FOXA1")
	outDir := t.TempDir()

	gata1 := motif("1", "MA0035.4", "GATA1")
	searcher := &fakeSearcher{
		records: map[string][]types.MotifRecord{
			"GATA1": {gata1},
			"FOXA1": {motif("1", "MA0148.4", "FOXA1")},
		},
		errs: map[string]error{
			"TP53": errors.New("JASPAR API returned HTTP 503"),
		},
	}
	downloader := &fakeDownloader{
		errs: map[string]error{
			gata1.ResourceURL: errors.New("HTTP 500 from server"),
		},
	}

	res, err := Run(context.Background(), input, outDir, Deps{Searcher: searcher, Downloader: downloader}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	// A search error and a download error each fail their own row only.
	if res.Succeeded() != 1 || res.Failed() != 2 {
		t.Fatalf("succeeded/failed = %d/%d, want 1/2", res.Succeeded(), res.Failed())
	}

	rows := readReport(t, res.ReportPath)
	if rows[1][4] == "" {
		t.Error("search-error row should carry the error message")
	}
	if rows[2][4] == "" {
		t.Error("download-error row should carry the error message")
	}
	if rows[3][1] != "SUCCESS" {
		t.Errorf("last row = %v, want SUCCESS after earlier failures", rows[3])
	}
}

func TestRunMissingInputWritesNoReport(t *testing.T) {
	outDir := t.TempDir()

	_, err := Run(context.Background(), filepath.Join(outDir, "nope.csv"), outDir, Deps{}, nil)
	if err == nil {
		t.Fatal("Run: expected error for missing input, got nil")
	}

	reports, _ := filepath.Glob(filepath.Join(outDir, "jaspar_batch_report_*.csv"))
	if len(reports) != 0 {
		t.Errorf("no report should be written on a load failure, found %v", reports)
	}
}

func TestRunEmptyInput(t *testing.T) {
	input := writeCSV(t, "", "   ")
	outDir := t.TempDir()

	res, err := Run(context.Background(), input, outDir, Deps{Searcher: &fakeSearcher{}, Downloader: &fakeDownloader{}}, nil)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Total() != 0 {
		t.Errorf("Total = %d, want 0", res.Total())
	}

	// An empty run still produces a header-only report.
	rows := readReport(t, res.ReportPath)
	if len(rows) != 1 {
		t.Errorf("report has %d rows, want header only", len(rows))
	}
}

func TestRunCanceledContext(t *testing.T) {
	input := writeCSV(t, "GATA1")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, input, t.TempDir(), Deps{Searcher: &fakeSearcher{}, Downloader: &fakeDownloader{}}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
