// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List past searches, downloads, and batch runs",
	RunE:  runHistoryList,
}

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the history database to YAML or JSON",
	RunE:  runHistoryExport,
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of entries to list")
	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().String("out", "", "output file (default motif-history.<format>)")
	historyCmd.AddCommand(historyExportCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("No history recorded yet.")
		return nil
	}

	for _, e := range entries {
		status := "ok"
		if !e.OK {
			status = "failed"
		}
		fmt.Printf("%s  %-9s  %-6s  %s\n", e.At.Local().Format("2006-01-02 15:04:05"), e.Kind, status, e.Detail)
	}
	return nil
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	out, _ := cmd.Flags().GetString("out")

	store, err := newHistoryStore()
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	switch format {
	case "yaml":
		if out == "" {
			out = "motif-history.yaml"
		}
		err = store.ExportYAML(cmd.Context(), out)
	case "json":
		if out == "" {
			out = "motif-history.json"
		}
		err = store.ExportJSON(cmd.Context(), out)
	default:
		return fmt.Errorf("unknown format %q (want yaml or json)", format)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Exported history to %s\n", out)
	return nil
}
