// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/motif-engine/pkg/types"
)

func newTestApp() App {
	return NewApp(nil, nil, nil, types.SearchConfig{}, types.DownloadConfig{}, ".")
}

func update(t *testing.T, a App, msg tea.Msg) (App, tea.Cmd) {
	t.Helper()
	m, cmd := a.Update(msg)
	app, ok := m.(App)
	if !ok {
		t.Fatalf("Update returned %T, want App", m)
	}
	return app, cmd
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+b":
		return tea.KeyMsg{Type: tea.KeyCtrlB}
	case "ctrl+d":
		return tea.KeyMsg{Type: tea.KeyCtrlD}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		panic("unknown key " + s)
	}
}

func TestEmptySearchShowsError(t *testing.T) {
	a := newTestApp()

	a, cmd := update(t, a, keyMsg("enter"))
	if cmd != nil {
		t.Error("empty search should not dispatch a worker command")
	}
	if !a.statusErr {
		t.Error("statusErr should be set")
	}
	if !strings.Contains(a.status, "Search field is empty") {
		t.Errorf("status = %q, want empty-field message", a.status)
	}
}

func TestSearchDoneWithResults(t *testing.T) {
	a := newTestApp()
	a.busy = true

	records := []types.MotifRecord{{SequenceIndex: "1", MatrixID: "MA0035.4", Name: "GATA1"}}
	a, _ = update(t, a, searchDoneMsg{keyword: "GATA1", records: records})

	if a.busy {
		t.Error("busy should clear when the search result arrives")
	}
	if a.statusErr {
		t.Errorf("unexpected error status %q", a.status)
	}
	if len(a.records) != 1 || a.cursor != 0 {
		t.Errorf("records/cursor = %d/%d, want 1/0", len(a.records), a.cursor)
	}
	if !strings.Contains(a.View(), "MA0035.4") {
		t.Error("view should render the result row")
	}
}

func TestSearchDoneNoResults(t *testing.T) {
	a := newTestApp()
	a.busy = true

	a, _ = update(t, a, searchDoneMsg{keyword: "BADNAME123"})

	if !a.statusErr {
		t.Error("no-match outcome should show as an error status")
	}
	if !strings.Contains(a.status, "BADNAME123") {
		t.Errorf("status = %q, want the keyword named", a.status)
	}
}

func TestSearchDoneTransportError(t *testing.T) {
	a := newTestApp()
	a.busy = true

	a, _ = update(t, a, searchDoneMsg{keyword: "GATA1", err: errors.New("JASPAR API returned HTTP 503")})

	if !a.statusErr {
		t.Error("transport failure should show as an error status")
	}
	if !strings.Contains(a.status, "503") {
		t.Errorf("status = %q, want the underlying error surfaced", a.status)
	}
}

func TestDownloadRequiresSearchFirst(t *testing.T) {
	a := newTestApp()

	a, cmd := update(t, a, keyMsg("ctrl+d"))
	if cmd != nil {
		t.Error("download with no results should not dispatch a worker command")
	}
	if !a.statusErr {
		t.Error("statusErr should be set")
	}
}

func TestBusySwallowsKeys(t *testing.T) {
	a := newTestApp()
	a.busy = true
	a.input.SetValue("GATA1")

	_, cmd := update(t, a, keyMsg("enter"))
	if cmd != nil {
		t.Error("keys while busy should be ignored")
	}
}

func TestBatchFormValidation(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, keyMsg("ctrl+b"))
	if a.mode != modeBatchForm {
		t.Fatal("ctrl+b should enter the batch form")
	}

	// No CSV selected.
	a, cmd := update(t, a, keyMsg("enter"))
	if cmd != nil {
		t.Error("incomplete form should not start the batch")
	}
	if !strings.Contains(a.status, "no input CSV selected") {
		t.Errorf("status = %q, want missing-CSV message", a.status)
	}

	// CSV set but no output directory.
	a.csvInput.SetValue("input.csv")
	a, _ = update(t, a, keyMsg("enter"))
	if !strings.Contains(a.status, "no output directory selected") {
		t.Errorf("status = %q, want missing-directory message", a.status)
	}
}

func TestBatchFormEscCancels(t *testing.T) {
	a := newTestApp()

	a, _ = update(t, a, keyMsg("ctrl+b"))
	a, _ = update(t, a, keyMsg("esc"))

	if a.mode != modeSearch {
		t.Error("esc should return to search mode")
	}
	if !strings.Contains(a.status, "canceled") {
		t.Errorf("status = %q, want cancellation message", a.status)
	}
}

func TestBatchProgressKeepsListening(t *testing.T) {
	a := newTestApp()
	a.progressCh = make(chan string, 1)

	a, cmd := update(t, a, batchProgressMsg{line: "[1/3] Processing: GATA1..."})
	if a.status != "[1/3] Processing: GATA1..." {
		t.Errorf("status = %q, want the progress line", a.status)
	}
	if cmd == nil {
		t.Error("progress handler should re-issue the listener")
	}
}

func TestBatchDoneReturnsToSearch(t *testing.T) {
	a := newTestApp()
	a.busy = true
	a.mode = modeBatchForm

	a, _ = update(t, a, batchDoneMsg{reportPath: "jaspar_batch_report_20260829_120000.csv"})

	if a.busy || a.mode != modeSearch {
		t.Error("batch completion should clear busy and return to search mode")
	}
	if !strings.Contains(a.status, "jaspar_batch_report_") {
		t.Errorf("status = %q, want the report path", a.status)
	}
}

func TestCursorMovesWithinResults(t *testing.T) {
	a := newTestApp()
	a.records = []types.MotifRecord{
		{SequenceIndex: "1", MatrixID: "MA0035.4", Name: "GATA1"},
	}

	a, _ = update(t, a, keyMsg("down"))
	if a.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to last result", a.cursor)
	}
}
