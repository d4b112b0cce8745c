// internal/logging/logging.go
// Package logging routes diagnostic output. Progress and status lines go to
// stderr (stdout is reserved for the report document), optionally teeing
// into a log file.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/fatih/color"
)

var (
	mu      sync.Mutex
	logFile *os.File
	debug   bool
)

// Init configures the diagnostic writer. An empty logPath logs to stderr
// only.
func Init(logPath string, debugMode bool) error {
	mu.Lock()
	defer mu.Unlock()

	debug = debugMode

	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}

	writers := []io.Writer{os.Stderr}
	if logPath != "" {
		if dir := filepath.Dir(logPath); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		logFile = file
		writers = append(writers, logFile)
	}

	log.SetOutput(io.MultiWriter(writers...))
	return nil
}

// Close releases the log file, if any, and restores the default writer.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	err := logFile.Close()
	logFile = nil
	return err
}

// Event logs a formatted diagnostic line.
func Event(format string, args ...any) {
	log.Println(fmt.Sprintf(format, args...))
}

// Debug logs a formatted line only when debug mode is enabled.
func Debug(format string, args ...any) {
	mu.Lock()
	enabled := debug
	mu.Unlock()
	if enabled {
		log.Println("[debug] " + fmt.Sprintf(format, args...))
	}
}

// Progress writes a colored per-test-case status line to stderr. Status
// lines are diagnostics, never part of the contractual output.
func Progress(ok bool, format string, args ...any) {
	c := color.New(color.FgGreen)
	if !ok {
		c = color.New(color.FgRed)
	}
	c.Fprintln(os.Stderr, fmt.Sprintf(format, args...))
}
