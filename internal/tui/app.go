// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tui is the interactive terminal front end. Long operations run
// in worker goroutines dispatched as commands; at most one is in flight at
// a time, and results come back as typed messages so presentation state is
// only ever touched by the Update loop.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/pdiddy/motif-engine/internal/audit"
	"github.com/pdiddy/motif-engine/internal/batch"
	"github.com/pdiddy/motif-engine/internal/history"
	"github.com/pdiddy/motif-engine/internal/jaspar"
	"github.com/pdiddy/motif-engine/pkg/types"
)

type mode int

const (
	modeSearch mode = iota
	modeBatchForm
)

// App is the bubbletea model for the motif downloader.
type App struct {
	client      *jaspar.Client
	store       *history.Store
	auditLog    *audit.Logger
	searchCfg   types.SearchConfig
	downloadCfg types.DownloadConfig
	outDir      string

	input textinput.Model
	spin  spinner.Model

	// Batch form fields: input CSV path, output directory.
	csvInput   textinput.Model
	dirInput   textinput.Model
	batchFocus int

	mode       mode
	busy       bool
	records    []types.MotifRecord
	cursor     int
	status     string
	statusErr  bool
	progressCh chan string
	width      int
	height     int
}

// NewApp builds the initial model. store may be nil (history disabled).
func NewApp(client *jaspar.Client, store *history.Store, auditLog *audit.Logger, searchCfg types.SearchConfig, downloadCfg types.DownloadConfig, outDir string) App {
	ti := textinput.New()
	ti.Placeholder = "Human TF name, e.g. GATA1"
	ti.CharLimit = 128
	ti.Focus()

	csv := textinput.New()
	csv.Placeholder = "Path to input CSV (TF name in column A)"
	csv.CharLimit = 512

	dir := textinput.New()
	dir.Placeholder = "Output directory for PFM files and report"
	dir.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return App{
		client:      client,
		store:       store,
		auditLog:    auditLog,
		searchCfg:   searchCfg,
		downloadCfg: downloadCfg,
		outDir:      outDir,
		input:       ti,
		csvInput:    csv,
		dirInput:    dir,
		spin:        sp,
		status:      "Enter a human TF name and press enter, or ctrl+b for batch mode.",
	}
}

func (a App) Init() tea.Cmd {
	return textinput.Blink
}

func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.input.Width = msg.Width - 6
		a.csvInput.Width = msg.Width - 6
		a.dirInput.Width = msg.Width - 6
		return a, nil

	case spinner.TickMsg:
		if !a.busy {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case searchDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Search failed: %v", msg.err), true)
			return a, nil
		}
		a.records = msg.records
		a.cursor = 0
		if len(a.records) == 0 {
			a.setStatus(fmt.Sprintf("No human motifs found for %q. Check spelling or try a broader search.", msg.keyword), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Found %d matching motif(s). Press ctrl+d to download.", len(a.records)), false)
		return a, nil

	case downloadDoneMsg:
		a.busy = false
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Download failed: %v", msg.err), true)
			return a, nil
		}
		a.setStatus(fmt.Sprintf("Motif %s saved to %s", msg.matrixID, msg.path), false)
		return a, nil

	case batchProgressMsg:
		a.setStatus(msg.line, false)
		return a, listenProgress(a.progressCh)

	case batchDoneMsg:
		a.busy = false
		a.mode = modeSearch
		a.input.Focus()
		if msg.err != nil {
			a.setStatus(fmt.Sprintf("Batch failed: %v", msg.err), true)
			return a, nil
		}
		a.setStatus("Batch process complete. Report available: "+msg.reportPath, false)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}

	// One operation in flight at a time: everything else waits.
	if a.busy {
		return a, nil
	}

	switch a.mode {
	case modeBatchForm:
		return a.handleBatchFormKey(msg)
	default:
		return a.handleSearchKey(msg)
	}
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return a, tea.Quit

	case "enter":
		keyword := strings.TrimSpace(a.input.Value())
		if keyword == "" {
			a.setStatus("Search field is empty. Please enter a TF name.", true)
			return a, nil
		}
		a.busy = true
		a.records = nil
		a.setStatus(fmt.Sprintf("Searching JASPAR for motifs matching %q...", keyword), false)
		return a, tea.Batch(a.doSearch(keyword), a.spin.Tick)

	case "ctrl+d":
		if len(a.records) == 0 {
			a.setStatus("Nothing to download: search for a motif first.", true)
			return a, nil
		}
		rec := a.records[a.cursor]
		a.busy = true
		a.setStatus(fmt.Sprintf("Downloading %s... (do not close)", rec.MatrixID), false)
		return a, tea.Batch(a.doDownload(rec), a.spin.Tick)

	case "ctrl+b":
		a.mode = modeBatchForm
		a.batchFocus = 0
		a.input.Blur()
		a.csvInput.Focus()
		a.dirInput.Blur()
		a.setStatus("Batch mode: provide the input CSV and output directory, then press enter.", false)
		return a, nil

	case "up":
		if a.cursor > 0 {
			a.cursor--
		}
		return a, nil

	case "down":
		if a.cursor < len(a.records)-1 {
			a.cursor++
		}
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a App) handleBatchFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Declining the form aborts before any network call.
		a.mode = modeSearch
		a.csvInput.Blur()
		a.dirInput.Blur()
		a.input.Focus()
		a.setStatus("Batch download canceled.", false)
		return a, nil

	case "tab", "shift+tab":
		a.batchFocus = 1 - a.batchFocus
		if a.batchFocus == 0 {
			a.csvInput.Focus()
			a.dirInput.Blur()
		} else {
			a.dirInput.Focus()
			a.csvInput.Blur()
		}
		return a, nil

	case "enter":
		inputCSV := strings.TrimSpace(a.csvInput.Value())
		outDir := strings.TrimSpace(a.dirInput.Value())
		if inputCSV == "" {
			a.setStatus("Batch download canceled: no input CSV selected.", true)
			return a, nil
		}
		if outDir == "" {
			a.setStatus("Batch download canceled: no output directory selected.", true)
			return a, nil
		}
		a.busy = true
		a.setStatus("Batch download process starting...", false)
		return a, a.startBatch(inputCSV, outDir)
	}

	var cmd tea.Cmd
	if a.batchFocus == 0 {
		a.csvInput, cmd = a.csvInput.Update(msg)
	} else {
		a.dirInput, cmd = a.dirInput.Update(msg)
	}
	return a, cmd
}

func (a *App) setStatus(message string, isErr bool) {
	a.status = message
	a.statusErr = isErr
}

// --- worker commands ---

func (a App) doSearch(keyword string) tea.Cmd {
	client, store, auditLog, cfg := a.client, a.store, a.auditLog, a.searchCfg
	return func() tea.Msg {
		records, err := client.Search(context.Background(), keyword, cfg)
		if err == nil {
			var rec *types.MotifRecord
			if len(records) > 0 {
				rec = &records[0]
			}
			if herr := store.RecordSearch(context.Background(), keyword, rec); herr != nil {
				auditLog.Logf("History write failed: %v", herr)
			}
		}
		return searchDoneMsg{keyword: keyword, records: records, err: err}
	}
}

func (a App) doDownload(rec types.MotifRecord) tea.Cmd {
	client, store, auditLog, cfg := a.client, a.store, a.auditLog, a.downloadCfg
	dest := filepath.Join(a.outDir, jaspar.PFMFilename(rec.MatrixID, rec.Name))
	return func() tea.Msg {
		err := client.Download(context.Background(), rec.ResourceURL, dest, cfg)
		if herr := store.RecordDownload(context.Background(), rec.MatrixID, rec.ResourceURL, dest, err); herr != nil {
			auditLog.Logf("History write failed: %v", herr)
		}
		if err == nil {
			auditLog.Logf("Motif %s saved successfully to: %s", rec.MatrixID, dest)
		}
		return downloadDoneMsg{matrixID: rec.MatrixID, path: dest, err: err}
	}
}

func (a *App) startBatch(inputCSV, outDir string) tea.Cmd {
	ch := make(chan string, 8)
	a.progressCh = ch

	deps := batch.Deps{
		Searcher:   a.client,
		Downloader: a.client,
		Search:     a.searchCfg,
		Download:   a.downloadCfg,
		Audit:      a.auditLog,
	}
	store, auditLog := a.store, a.auditLog

	run := func() tea.Msg {
		res, err := batch.Run(context.Background(), inputCSV, outDir, deps, func(m string) { ch <- m })
		close(ch)
		if err == nil {
			if herr := store.RecordBatch(context.Background(), inputCSV, res.ReportPath, res.Total(), res.Succeeded(), res.Failed()); herr != nil {
				auditLog.Logf("History write failed: %v", herr)
			}
		}
		return batchDoneMsg{reportPath: res.ReportPath, err: err}
	}

	return tea.Batch(run, listenProgress(ch), a.spin.Tick)
}

// listenProgress drains one progress line per invocation; the handler for
// batchProgressMsg re-issues it until the channel closes.
func listenProgress(ch <-chan string) tea.Cmd {
	return func() tea.Msg {
		line, ok := <-ch
		if !ok {
			return nil
		}
		return batchProgressMsg{line: line}
	}
}

// --- view ---

func (a App) View() string {
	var b strings.Builder

	b.WriteString(styleHeader.Render("JASPAR Motif Downloader (Human TFs)") + "\n\n")

	switch a.mode {
	case modeBatchForm:
		b.WriteString("  Input CSV:  " + a.csvInput.View() + "\n")
		b.WriteString("  Output dir: " + a.dirInput.View() + "\n\n")
		b.WriteString(styleMuted.Render("  tab:switch field  enter:start  esc:cancel") + "\n")
	default:
		b.WriteString("  Search: " + a.input.View() + "\n\n")
		b.WriteString(a.renderResults())
		b.WriteString(styleMuted.Render("  enter:search  ctrl+d:download  ctrl+b:batch  esc:quit") + "\n")
	}

	b.WriteString("\n")
	status := a.status
	if a.busy {
		status = a.spin.View() + " " + status
	}
	if a.statusErr {
		b.WriteString("  " + styleStatusErr.Render(status) + "\n")
	} else {
		b.WriteString("  " + styleStatus.Render(status) + "\n")
	}
	return b.String()
}

func (a App) renderResults() string {
	if len(a.records) == 0 {
		return styleMuted.Render("  No results yet.") + "\n\n"
	}

	var b strings.Builder
	b.WriteString("  " + styleBold.Render(fmt.Sprintf("%-4s %-12s %s", "#", "Matrix ID", "Transcription Factor")) + "\n")
	for i, r := range a.records {
		line := fmt.Sprintf("  %-4s %-12s %s", r.SequenceIndex, r.MatrixID, r.Name)
		if i == a.cursor {
			line = styleSelected.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")
	return b.String()
}
