// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motif-engine/internal/batch"
)

var batchCmd = &cobra.Command{
	Use:   "batch [input.csv]",
	Short: "Batch-download motifs for a CSV list of TF names",
	Long: `Batch reads transcription-factor names from the first column of the input
CSV, searches and downloads the best match for each, and writes a CSV
summary report into the output directory. Individual failures become
FAILED report rows; only an unreadable input file aborts the run.`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	batchCmd.Flags().String("out-dir", ".", "directory for PFM files and the report")
	batchCmd.Flags().Duration("search-timeout", 0, "per-keyword search timeout (default 10s)")
	batchCmd.Flags().Duration("download-timeout", 0, "per-file download timeout (default 30s)")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	searchTimeout, _ := cmd.Flags().GetDuration("search-timeout")
	downloadTimeout, _ := cmd.Flags().GetDuration("download-timeout")

	auditLog := newAuditLogger()
	client := newClient(auditLog)
	store := openHistory()
	defer store.Close()

	deps := batch.Deps{
		Searcher:   client,
		Downloader: client,
		Search:     searchConfig(searchTimeout),
		Download:   downloadConfig(downloadTimeout),
		Audit:      auditLog,
	}

	res, err := batch.Run(cmd.Context(), args[0], outDir, deps, func(line string) {
		fmt.Println(line)
	})
	if err != nil {
		return err
	}

	if herr := store.RecordBatch(cmd.Context(), args[0], res.ReportPath, res.Total(), res.Succeeded(), res.Failed()); herr != nil {
		auditLog.Logf("History write failed: %v", herr)
	}

	fmt.Printf("\nBatch complete: %d succeeded, %d failed (total %d)\n", res.Succeeded(), res.Failed(), res.Total())
	fmt.Printf("Report: %s\n", res.ReportPath)
	return nil
}
