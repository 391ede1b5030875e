// Package log provides structured event logging.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventAPIRequest     = "api_request"
	EventAPIResponse    = "api_response"
	EventAPIError       = "api_error"
	EventSessionStarted = "session_started"
	EventSessionCleared = "session_cleared"
	EventSessionClosed  = "session_closed"
	EventExportWritten  = "export_written"
)

// LogEvent represents a single structured event written to the log.
// Request and response bodies are never recorded; only shape metadata.
type LogEvent struct {
	Time     time.Time `json:"time"`
	Event    string    `json:"event"`
	Method   string    `json:"method,omitempty"`
	Path     string    `json:"path,omitempty"`
	Status   int       `json:"status,omitempty"`
	Mode     string    `json:"mode,omitempty"`
	HasData  bool      `json:"has_data,omitempty"`
	Error    string    `json:"error,omitempty"`
	File     string    `json:"file,omitempty"`
	Messages int       `json:"messages,omitempty"`
	Duration int64     `json:"duration_ms,omitempty"`
}

// Logger writes append-only JSONL events to a log file.
// The zero value is a no-op logger, so callers never need nil checks.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to .datachat/log.jsonl inside dir.
// Creates the .datachat/ directory if it does not already exist.
// Does not truncate an existing log file.
func NewLogger(dir string) (*Logger, error) {
	logDir := filepath.Join(dir, ".datachat")
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("create .datachat directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(logDir, "log.jsonl"),
	}, nil
}

// Append writes a single LogEvent as one JSON line to the log file.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// The file is opened in append mode, written to, and then closed.
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if l == nil || l.path == "" {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the log file.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	if l == nil || l.path == "" {
		return []LogEvent{}, nil
	}
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
