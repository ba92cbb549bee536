package sinks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/klauspost/compress/zstd"

	"stock-and-swipe/server/logging"
)

// JournalSink appends events as zstd-compressed JSON lines. The journal is
// an opaque session record for post-hoc inspection, not durable game state.
type JournalSink struct {
	mu      sync.Mutex
	file    *os.File
	encoder *zstd.Encoder
	closed  bool
}

func NewJournalSink(path string) (*JournalSink, error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open journal %s: %w", path, err)
	}
	encoder, err := zstd.NewWriter(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("journal encoder: %w", err)
	}
	return &JournalSink{file: file, encoder: encoder}, nil
}

func (s *JournalSink) Write(event logging.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return fmt.Errorf("journal sink closed")
	}
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode journal event: %w", err)
	}
	line = append(line, '\n')
	if _, err := s.encoder.Write(line); err != nil {
		return fmt.Errorf("write journal event: %w", err)
	}
	return nil
}

func (s *JournalSink) Close(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.encoder.Close(); err != nil {
		s.file.Close()
		return fmt.Errorf("flush journal: %w", err)
	}
	return s.file.Close()
}
