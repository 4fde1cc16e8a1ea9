package event

import (
	"log/slog"
	"sync"

	"ludo-lab/errors"
)

// GameActivityHandler counts domain events per kind, across every room.
type GameActivityHandler struct {
	log    *slog.Logger
	mu     sync.Mutex
	counts map[Kind]uint64
}

func NewGameActivityHandler(log *slog.Logger) *GameActivityHandler {
	return &GameActivityHandler{log: log, counts: make(map[Kind]uint64)}
}

func (h *GameActivityHandler) Handle(event Event) {
	switch event.Type {
	case GameEventType:
		payload, ok := event.Payload.(GameActivity)
		if !ok {
			h.log.Error(errors.ErrInvalidPayload.Error())
			return
		}
		h.mu.Lock()
		h.counts[payload.Kind]++
		h.mu.Unlock()
		if payload.Kind == PlayerWonKind {
			h.log.Info("Game won", "room", payload.Room)
		}
	}
}

func (h *GameActivityHandler) Count(kind Kind) uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.counts[kind]
}

// Snapshot returns a copy of every counter.
func (h *GameActivityHandler) Snapshot() map[Kind]uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[Kind]uint64, len(h.counts))
	for k, v := range h.counts {
		out[k] = v
	}
	return out
}
