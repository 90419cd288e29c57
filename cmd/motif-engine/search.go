// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motif-engine/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [keyword]",
	Short: "Search JASPAR for a human transcription-factor motif",
	Long: `Search queries the JASPAR CORE collection for human motifs matching a
transcription-factor name and prints the best match. At most one record
is returned per keyword.`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 10s)")
	searchCmd.Flags().Bool("json", false, "print the result as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	auditLog := newAuditLogger()
	client := newClient(auditLog)
	store := openHistory()
	defer store.Close()

	records, err := client.Search(cmd.Context(), args[0], searchConfig(timeout))
	if err != nil {
		return err
	}

	var rec *types.MotifRecord
	if len(records) > 0 {
		rec = &records[0]
	}
	if herr := store.RecordSearch(cmd.Context(), args[0], rec); herr != nil {
		auditLog.Logf("History write failed: %v", herr)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Printf("No human motifs found for %q.\n", args[0])
		return nil
	}

	fmt.Printf("%-4s  %-12s  %s\n", "#", "Matrix ID", "Transcription Factor")
	for _, r := range records {
		fmt.Printf("%-4s  %-12s  %s\n", r.SequenceIndex, r.MatrixID, r.Name)
	}
	return nil
}
