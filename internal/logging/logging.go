// Package logging writes plain error lines and optional JSON trace entries to
// a single append-only file. The popup owns the terminal, so nothing here ever
// writes to stdout.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const defaultLogFile = "tmux-popup-otp.log"

var (
	mu           sync.Mutex
	traceEnabled bool
	logPath      = defaultLogFile
	failureOut   = io.Writer(os.Stderr)
	now          = time.Now
)

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Error appends err to the log file. Nil errors are ignored.
func Error(err error) {
	if err == nil {
		return
	}
	appendEntry("logging failed", func(w io.Writer) error {
		_, werr := fmt.Fprintf(w, "%s %v\n", now().Format("2006/01/02 15:04:05"), err)
		return werr
	})
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	mu.Unlock()
}

// TraceEnabled reports whether Trace currently writes entries.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// Trace appends a JSON line for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	entry := traceEntry{Time: now().UTC(), Event: event, Payload: payload}
	appendEntry("trace logging failed", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

// Configure sets the log destination. Empty values fall back to the default
// path. Missing directories are created.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogFile
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogFile
		return
	}
	logPath = path
}

// SetFailureOutput redirects the messages written when the log file itself
// cannot be written, and returns a func restoring the previous writer. The
// popup silences them while it owns the terminal.
func SetFailureOutput(w io.Writer) (restore func()) {
	if w == nil {
		w = io.Discard
	}
	mu.Lock()
	prev := failureOut
	failureOut = w
	mu.Unlock()
	return func() {
		mu.Lock()
		failureOut = prev
		mu.Unlock()
	}
}

func reportFailure(failure string, err error) {
	mu.Lock()
	w := failureOut
	mu.Unlock()
	fmt.Fprintf(w, "%s: %v\n", failure, err)
}

// Path returns the configured log destination.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}

func appendEntry(failure string, write func(io.Writer) error) {
	f, err := os.OpenFile(Path(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		reportFailure(failure, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		reportFailure(failure, err)
	}
}
