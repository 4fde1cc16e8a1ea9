package runtime

import (
	"log/slog"
	"sync"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
)

type timerKey struct {
	room domain.RoomID
	kind contract.TimerKind
}

type timerEntry struct {
	timer *time.Timer
	gen   uint64
}

// Scheduler owns every room timer outside the session state.
// A superseded or cancelled timer never runs its callback.
type Scheduler struct {
	mu      sync.Mutex
	log     *slog.Logger
	timers  map[timerKey]timerEntry
	gen     uint64
	stopped bool
}

func NewScheduler(log *slog.Logger) *Scheduler {
	return &Scheduler{log: log, timers: make(map[timerKey]timerEntry)}
}

func (s *Scheduler) Schedule(room domain.RoomID, kind contract.TimerKind, delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	key := timerKey{room: room, kind: kind}
	if prev, ok := s.timers[key]; ok {
		prev.timer.Stop()
	}
	s.gen++
	gen := s.gen
	s.timers[key] = timerEntry{
		gen: gen,
		timer: time.AfterFunc(delay, func() {
			if !s.claim(key, gen) {
				return
			}
			fn()
		}),
	}
	s.log.Debug("Timer scheduled", "room", room, "kind", kind, "delay", delay)
}

// claim removes the entry if it is still the one that fired.
func (s *Scheduler) claim(key timerKey, gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.timers[key]
	if !ok || entry.gen != gen {
		return false
	}
	delete(s.timers, key)
	return true
}

func (s *Scheduler) Cancel(room domain.RoomID, kind contract.TimerKind) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := timerKey{room: room, kind: kind}
	if entry, ok := s.timers[key]; ok {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}

func (s *Scheduler) CancelRoom(room domain.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, entry := range s.timers {
		if key.room == room {
			entry.timer.Stop()
			delete(s.timers, key)
		}
	}
}

// Pending returns the number of live timers of a room.
func (s *Scheduler) Pending(room domain.RoomID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.timers {
		if key.room == room {
			n++
		}
	}
	return n
}

// Stop cancels every timer and refuses new ones.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for key, entry := range s.timers {
		entry.timer.Stop()
		delete(s.timers, key)
	}
}
