// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tui

import "github.com/pdiddy/motif-engine/pkg/types"

// Worker results arrive exclusively as messages; the Update loop owns all
// presentation state.

type searchDoneMsg struct {
	keyword string
	records []types.MotifRecord
	err     error
}

type downloadDoneMsg struct {
	matrixID string
	path     string
	err      error
}

type batchProgressMsg struct {
	line string
}

type batchDoneMsg struct {
	reportPath string
	err        error
}
