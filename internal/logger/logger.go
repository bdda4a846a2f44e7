// Package logger writes one JSON line per evaluated command to an
// append-only audit log, redacting secret-shaped text first.
package logger

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/banyudu/claude-warden/internal/redact"
)

// AuditEvent is a single logged evaluation.
type AuditEvent struct {
	Timestamp  string   `json:"timestamp"`
	Command    string   `json:"command"`
	Args       []string `json:"args,omitempty"`
	Cwd        string   `json:"cwd,omitempty"`
	Decision   string   `json:"decision"`
	Reason     string   `json:"reason,omitempty"`
	Source     string   `json:"source,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	UserAction string   `json:"user_action,omitempty"`
}

// AuditLogger appends AuditEvents to a file as JSON lines.
type AuditLogger struct {
	file *os.File
	mu   sync.Mutex
}

// New opens (creating if necessary) the audit log at path for appending.
func New(path string) (*AuditLogger, error) {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return nil, err
	}
	return &AuditLogger{file: file}, nil
}

// Log redacts and appends one event.
func (l *AuditLogger) Log(event AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	event.Command = redact.Command(event.Command)
	event.Args = redact.Args(event.Args)

	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = l.file.Write(data)
	return err
}

// Close closes the underlying file.
func (l *AuditLogger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
