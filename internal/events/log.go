// Package events keeps an in-memory journal of every command the engine
// applies. The CLI tails it and the HTTP API exposes it read-only.
package events

import (
	"time"
)

type Payload map[string]any

type Event struct {
	Seq        int64   `json:"seq"`
	TS         string  `json:"ts"`
	Type       string  `json:"type"`
	EntityKind string  `json:"entity_kind"`
	EntityID   string  `json:"entity_id,omitempty"`
	Payload    Payload `json:"payload,omitempty"`
}

// Log appends events in order and hands out copies. Like the store it is
// written by a single goroutine; readers get detached slices.
type Log struct {
	Now    func() time.Time
	events []Event
	seq    int64
}

func NewLog() *Log {
	return &Log{Now: time.Now}
}

func (l *Log) Append(evtType, entityKind, entityID string, payload Payload) Event {
	now := l.Now
	if now == nil {
		now = time.Now
	}
	l.seq++
	e := Event{
		Seq:        l.seq,
		TS:         now().UTC().Format(time.RFC3339),
		Type:       evtType,
		EntityKind: entityKind,
		EntityID:   entityID,
		Payload:    payload,
	}
	l.events = append(l.events, e)
	return e
}

// Tail returns the most recent n events, oldest first. n <= 0 means all.
// kind filters on entity kind when non-empty.
func (l *Log) Tail(n int, kind string) []Event {
	var out []Event
	for _, e := range l.events {
		if kind != "" && e.EntityKind != kind {
			continue
		}
		out = append(out, e)
	}
	if n > 0 && len(out) > n {
		out = out[len(out)-n:]
	}
	return append([]Event(nil), out...)
}

func (l *Log) Len() int {
	return len(l.events)
}
