package logging

import (
	"context"
	"log"
	"os"
	"sync"
	"time"
)

// Sink receives routed events. Implementations live in logging/sinks.
type Sink interface {
	Write(Event) error
	Close(context.Context) error
}

type NamedSink struct {
	Name string
	Sink Sink
}

type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// Router fans events out to its sinks synchronously. The simulation is
// single-threaded per tick, so there is no queue; a sink that errors is
// reported on the fallback logger and kept.
type Router struct {
	mu          sync.Mutex
	sinks       []NamedSink
	clock       Clock
	minSeverity Severity
	fallback    *log.Logger
}

func NewRouter(clock Clock, minSeverity Severity, sinks []NamedSink) *Router {
	if clock == nil {
		clock = ClockFunc(time.Now)
	}
	kept := make([]NamedSink, 0, len(sinks))
	for _, named := range sinks {
		if named.Sink != nil {
			kept = append(kept, named)
		}
	}
	return &Router{
		sinks:       kept,
		clock:       clock,
		minSeverity: minSeverity,
		fallback:    log.New(os.Stderr, "[logging] ", log.LstdFlags),
	}
}

func (r *Router) Publish(_ context.Context, event Event) {
	if r == nil || event.Severity < r.minSeverity {
		return
	}
	if event.Time.IsZero() {
		event.Time = r.clock.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, named := range r.sinks {
		if err := named.Sink.Write(event); err != nil {
			r.fallback.Printf("sink %s: %v", named.Name, err)
		}
	}
}

func (r *Router) Close(ctx context.Context) error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var firstErr error
	for _, named := range r.sinks {
		if err := named.Sink.Close(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
