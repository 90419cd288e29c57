// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package audit appends timestamped lines to the activity log file.
package audit

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

// DefaultPath is the fixed relative location of the activity log.
const DefaultPath = "jaspar_log.txt"

// Logger serializes appends to a single log file. The one instance is
// created at startup and passed by reference to every component that logs,
// so concurrent callers (interactive loop, background workers) cannot
// interleave partial lines.
//
// Log never fails its caller: write errors are reported to the diagnostic
// writer only. A nil Logger is a no-op.
type Logger struct {
	mu   sync.Mutex
	path string
	diag io.Writer
}

// New returns a Logger appending to path. An empty path selects
// DefaultPath; a nil diag selects stderr.
func New(path string, diag io.Writer) *Logger {
	if path == "" {
		path = DefaultPath
	}
	if diag == nil {
		diag = os.Stderr
	}
	return &Logger{path: path, diag: diag}
}

// Log appends "[YYYY-MM-DD HH:MM:SS] message" to the log file.
func (l *Logger) Log(message string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	line := fmt.Sprintf("[%s] %s\n", time.Now().Format("2006-01-02 15:04:05"), message)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(l.diag, "[LOG] failed to open log file: %v\n", err)
		return
	}
	if _, err := f.WriteString(line); err != nil {
		fmt.Fprintf(l.diag, "[LOG] failed to write to log file: %v\n", err)
	}
	f.Close()
}

// Logf formats and logs in one step.
func (l *Logger) Logf(format string, args ...any) {
	l.Log(fmt.Sprintf(format, args...))
}
