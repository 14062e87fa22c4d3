package journal

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// JSONLSink mirrors records to an on-disk JSONL file, one object per line.
// The path may be empty to disable mirroring (NewJSONLSink returns nil).
type JSONLSink struct {
	path string
	mu   sync.Mutex
	file *os.File
	enc  *json.Encoder
}

// NewJSONLSink opens (or creates) a JSONL mirror for audit records.
func NewJSONLSink(path string) (*JSONLSink, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(trimmed), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}
	file, err := os.OpenFile(trimmed, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal mirror %s: %w", trimmed, err)
	}
	return &JSONLSink{
		path: trimmed,
		file: file,
		enc:  json.NewEncoder(file),
	}, nil
}

type jsonlRecord struct {
	TS     string `json:"ts"`
	Event  string `json:"event"`
	Path   string `json:"path"`
	Folder string `json:"folder,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// Append writes the record as one JSON line. The mutex guarantees whole-line
// writes under concurrent callers.
func (s *JSONLSink) Append(_ context.Context, rec Record) error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.enc == nil {
		return fmt.Errorf("journal mirror %s: closed", s.path)
	}
	ts := rec.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	return s.enc.Encode(jsonlRecord{
		TS:     ts.UTC().Format(time.RFC3339),
		Event:  string(rec.Kind),
		Path:   rec.Path,
		Folder: rec.Folder,
		Detail: rec.Detail,
	})
}

// Path returns the on-disk location backing the mirror.
func (s *JSONLSink) Path() string {
	if s == nil {
		return ""
	}
	return s.path
}

// Close releases the mirror file handle.
func (s *JSONLSink) Close() error {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var err error
	if s.file != nil {
		err = s.file.Close()
	}
	s.file = nil
	s.enc = nil
	return err
}
