// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/motif-engine/internal/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal front end",
	Long: `Tui starts a full-screen terminal interface for searching JASPAR,
downloading selected motifs, and running batch downloads with live
progress.`,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().String("out-dir", ".", "directory to save PFM files into")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")

	auditLog := newAuditLogger()
	auditLog.Log("Application started.")
	client := newClient(auditLog)
	store := openHistory()
	defer store.Close()

	app := tui.NewApp(client, store, auditLog, searchConfig(0), downloadConfig(0), outDir)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
