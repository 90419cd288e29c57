// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/motif-engine/internal/audit"
	"github.com/pdiddy/motif-engine/internal/history"
	"github.com/pdiddy/motif-engine/internal/jaspar"
	"github.com/pdiddy/motif-engine/pkg/types"
)

const (
	defaultSearchTimeout   = 10 * time.Second
	defaultDownloadTimeout = 30 * time.Second
	defaultUserAgent       = "motif-engine/0.1"
	defaultTaxID           = "9606"
	defaultCollection      = "CORE"
	defaultMaxCandidates   = 10
)

// newAuditLogger builds the shared activity logger. Flag takes precedence
// over config; empty selects the fixed default path.
func newAuditLogger() *audit.Logger {
	path, _ := rootCmd.PersistentFlags().GetString("log-file")
	if path == "" {
		path = viper.GetString("log_file")
	}
	return audit.New(path, os.Stderr)
}

func newClient(auditLog *audit.Logger) *jaspar.Client {
	return &jaspar.Client{HTTP: &http.Client{}, Audit: auditLog}
}

func newHistoryStore() (*history.Store, error) {
	dataDir, _ := rootCmd.PersistentFlags().GetString("data-dir")
	if dataDir == "" {
		dataDir = viper.GetString("data_dir")
	}
	return history.NewStore(types.HistoryConfig{DataDir: dataDir})
}

// openHistory opens the history store best-effort: a failure disables
// history for this invocation instead of failing the operation.
func openHistory() *history.Store {
	s, err := newHistoryStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: history disabled: %v\n", err)
		return nil
	}
	return s
}

func searchConfig(timeout time.Duration) types.SearchConfig {
	if timeout == 0 {
		timeout = defaultSearchTimeout
	}
	return types.SearchConfig{
		HTTPConfig:    types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		TaxID:         defaultTaxID,
		Collection:    defaultCollection,
		MaxCandidates: defaultMaxCandidates,
	}
}

func downloadConfig(timeout time.Duration) types.DownloadConfig {
	if timeout == 0 {
		timeout = defaultDownloadTimeout
	}
	return types.DownloadConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
	}
}
