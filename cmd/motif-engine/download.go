// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pdiddy/motif-engine/internal/jaspar"
	"github.com/pdiddy/motif-engine/pkg/types"
)

var downloadCmd = &cobra.Command{
	Use:   "download [keyword]",
	Short: "Download the best-match motif as a PFM file",
	Long: `Download resolves a transcription-factor keyword to its best JASPAR match
and saves the motif in PFM format. With --matrix-id the search step is
skipped and the given matrix is fetched directly.

The output filename is <MATRIX_ID>_<NAME>.pfm with filesystem-unsafe
characters in the name replaced by hyphens.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("out-dir", ".", "directory to save the PFM file into")
	downloadCmd.Flags().String("matrix-id", "", "download this matrix directly instead of searching")
	downloadCmd.Flags().String("name", "", "TF name used for the filename with --matrix-id")
	downloadCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 30s)")
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	matrixID, _ := cmd.Flags().GetString("matrix-id")
	name, _ := cmd.Flags().GetString("name")
	timeout, _ := cmd.Flags().GetDuration("timeout")

	auditLog := newAuditLogger()
	client := newClient(auditLog)
	store := openHistory()
	defer store.Close()

	var rec types.MotifRecord
	switch {
	case matrixID != "":
		if name == "" {
			name = matrixID
		}
		rec = types.MotifRecord{MatrixID: matrixID, Name: name, ResourceURL: jaspar.PFMURL(matrixID)}
	case len(args) == 1:
		records, err := client.Search(cmd.Context(), args[0], searchConfig(0))
		if err != nil {
			return err
		}
		var found *types.MotifRecord
		if len(records) > 0 {
			found = &records[0]
		}
		if herr := store.RecordSearch(cmd.Context(), args[0], found); herr != nil {
			auditLog.Logf("History write failed: %v", herr)
		}
		if found == nil {
			return fmt.Errorf("no human motif found for %q", args[0])
		}
		rec = *found
	default:
		return fmt.Errorf("provide a keyword or --matrix-id")
	}

	dest := filepath.Join(outDir, jaspar.PFMFilename(rec.MatrixID, rec.Name))
	err := client.Download(cmd.Context(), rec.ResourceURL, dest, downloadConfig(timeout))
	if herr := store.RecordDownload(cmd.Context(), rec.MatrixID, rec.ResourceURL, dest, err); herr != nil {
		auditLog.Logf("History write failed: %v", herr)
	}
	if err != nil {
		return err
	}

	auditLog.Logf("Motif %s saved successfully to: %s", rec.MatrixID, dest)
	fmt.Printf("Saved %s\n", dest)
	return nil
}
