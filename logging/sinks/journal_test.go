package sinks

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"

	"stock-and-swipe/server/logging"
)

func TestJournalSinkRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.journal.zst")

	sink, err := NewJournalSink(path)
	if err != nil {
		t.Fatalf("NewJournalSink: %v", err)
	}
	written := []logging.Event{
		{Type: "gameplay.item_spawned", Tick: 1, Severity: logging.SeverityInfo},
		{Type: "gameplay.item_stolen", Tick: 42, Severity: logging.SeverityInfo},
		{Type: "gameplay.thief_captured", Tick: 43, Severity: logging.SeverityInfo},
	}
	for _, event := range written {
		if err := sink.Write(event); err != nil {
			t.Fatalf("Write: %v", err)
		}
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer file.Close()
	decoder, err := zstd.NewReader(file)
	if err != nil {
		t.Fatalf("zstd reader: %v", err)
	}
	defer decoder.Close()

	var read []logging.Event
	scanner := bufio.NewScanner(decoder)
	for scanner.Scan() {
		var event logging.Event
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("decode journal line: %v", err)
		}
		read = append(read, event)
	}
	if err := scanner.Err(); err != nil {
		t.Fatalf("scan journal: %v", err)
	}

	if len(read) != len(written) {
		t.Fatalf("expected %d events back, got %d", len(written), len(read))
	}
	for i, event := range read {
		if event.Type != written[i].Type || event.Tick != written[i].Tick {
			t.Fatalf("event %d mismatch: got %s@%d", i, event.Type, event.Tick)
		}
	}
}

func TestJournalSinkRejectsWritesAfterClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "closed.journal.zst")
	sink, err := NewJournalSink(path)
	if err != nil {
		t.Fatalf("NewJournalSink: %v", err)
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := sink.Write(logging.Event{Type: "late"}); err == nil {
		t.Fatalf("expected write after close to fail")
	}
	if err := sink.Close(context.Background()); err != nil {
		t.Fatalf("second close must be a no-op, got %v", err)
	}
}

func TestMemorySinkFiltersByType(t *testing.T) {
	sink := NewMemorySink()
	sink.Write(logging.Event{Type: "gameplay.item_placed", Tick: 1})
	sink.Write(logging.Event{Type: "gameplay.item_stolen", Tick: 2})
	sink.Write(logging.Event{Type: "gameplay.item_placed", Tick: 3})

	placed := sink.EventsOfType("gameplay.item_placed")
	if len(placed) != 2 {
		t.Fatalf("expected two placed events, got %d", len(placed))
	}
	if placed[1].Tick != 3 {
		t.Fatalf("expected events in arrival order, got tick %d", placed[1].Tick)
	}

	sink.Reset()
	if got := len(sink.Events()); got != 0 {
		t.Fatalf("expected empty sink after reset, got %d", got)
	}
}
