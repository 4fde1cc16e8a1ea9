package sink

import (
	"context"
	"sync"

	"ludo-lab/domain/event"
)

// ConnectionSink is the FIFO buffer between the fanout and one player stream.
// Consume is called by the fanout, the stream handler drains Events.
type ConnectionSink struct {
	mu        sync.RWMutex
	events    chan event.Envelope
	done      chan struct{}
	closeOnce sync.Once
	closed    bool
}

func NewConnectionSink(bufferSize int) *ConnectionSink {
	return &ConnectionSink{
		events: make(chan event.Envelope, bufferSize),
		done:   make(chan struct{}),
	}
}

// Consume waits for room in the buffer rather than dropping, so a member never
// sees a gap in the room sequence. The fanout bounds the wait with ctx.
func (s *ConnectionSink) Consume(ctx context.Context, env event.Envelope) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil
	}
	select {
	case s.events <- env:
		return nil
	case <-s.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *ConnectionSink) Events() <-chan event.Envelope {
	return s.events
}

// Close releases a Consume blocked on a full buffer. Later envelopes are discarded.
func (s *ConnectionSink) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
		s.mu.Lock()
		s.closed = true
		s.mu.Unlock()
	})
}
