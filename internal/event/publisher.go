package event

import (
	"encoding/json"
	"io"
	"log/slog"
	"sync"
)

// BufferPublisher records published events in order. Used by tests and by
// callers that drain events after each operation.
type BufferPublisher struct {
	mu     sync.Mutex
	events []Event
}

// NewBufferPublisher creates an empty BufferPublisher.
func NewBufferPublisher() *BufferPublisher {
	return &BufferPublisher{}
}

// Publish appends the event.
func (p *BufferPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
}

// Events returns a copy of everything published so far.
func (p *BufferPublisher) Events() []Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Event, len(p.events))
	copy(out, p.events)
	return out
}

// Reset discards recorded events.
func (p *BufferPublisher) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = nil
}

// StreamPublisher writes each event as a JSON line tagged with its kind.
type StreamPublisher struct {
	mu     sync.Mutex
	enc    *json.Encoder
	logger *slog.Logger
}

// NewStreamPublisher creates a publisher writing JSON lines to w.
func NewStreamPublisher(w io.Writer, logger *slog.Logger) *StreamPublisher {
	return &StreamPublisher{enc: json.NewEncoder(w), logger: logger}
}

type streamEnvelope struct {
	Type  string `json:"type"`
	Event Event  `json:"event"`
}

// Publish encodes the event; encoding failures are logged, not returned,
// since publishing is a fire-and-forget side effect.
func (p *StreamPublisher) Publish(e Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.enc.Encode(streamEnvelope{Type: e.Kind(), Event: e}); err != nil {
		p.logger.Error("failed to encode event", slog.String("kind", e.Kind()), slog.String("error", err.Error()))
	}
}
