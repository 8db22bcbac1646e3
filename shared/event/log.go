package event

import (
	"context"
	"sync"
)

// Log is an append-only in-process event sink. It backs the service when no
// broker is configured and doubles as the recorder in tests.
type Log struct {
	mu     sync.RWMutex
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Publish(_ context.Context, events ...Event) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, events...)

	return nil
}

// All returns a copy of every published event in publication order.
func (l *Log) All() []Event {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Event, len(l.events))
	copy(out, l.events)

	return out
}

// Kinds returns the kind names of every published event in order.
func (l *Log) Kinds() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	kinds := make([]string, 0, len(l.events))
	for _, evt := range l.events {
		kinds = append(kinds, evt.Kind())
	}

	return kinds
}
