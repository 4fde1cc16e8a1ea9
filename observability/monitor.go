package observability

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"ludo-lab/domain/event"
)

// Stats aggregates the server metrics exposed to operators.
type Stats struct {
	Rooms           int               `json:"rooms"`
	Connections     int               `json:"connections"`
	EventsTotal     uint64            `json:"events_total"`
	EventsPerSecond float64           `json:"events_per_second"`
	EventsByKind    map[string]uint64 `json:"events_by_kind"`
	CensoredHits    uint64            `json:"censored_hits"`
	WorkerRestarts  uint64            `json:"worker_restarts"`
	AllocMemMb      uint64            `json:"alloc_mem_mb"`
	NumGC           uint32            `json:"num_gc"`
	Goroutines      int               `json:"goroutines"`
	UpdatedAt       time.Time         `json:"updated_at"`
}

// Sources are the live counters the monitor samples.
type Sources struct {
	Activity    *event.GameActivityHandler
	Censored    *event.CensoredHandler
	Restarts    *event.Counter
	Rooms       func() int
	Connections func() int
}

// Monitor refreshes a Stats snapshot on every tick.
type Monitor struct {
	log        *slog.Logger
	mu         sync.RWMutex
	sources    Sources
	interval   time.Duration
	latest     Stats
	lastTotal  uint64
	lastSample time.Time
}

func NewMonitor(log *slog.Logger, sources Sources, interval time.Duration) *Monitor {
	return &Monitor{
		log:        log,
		sources:    sources,
		interval:   interval,
		lastSample: time.Now(),
		latest:     Stats{EventsByKind: map[string]uint64{}},
	}
}

func (m *Monitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			m.log.Debug("Context done, stopping monitor")
			return nil
		case <-ticker.C:
			m.Refresh()
		}
	}
}

// Refresh samples every source now.
func (m *Monitor) Refresh() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	stats := Stats{EventsByKind: map[string]uint64{}, UpdatedAt: now}
	if m.sources.Activity != nil {
		for kind, n := range m.sources.Activity.Snapshot() {
			stats.EventsByKind[string(kind)] = n
			stats.EventsTotal += n
		}
	}
	if elapsed := now.Sub(m.lastSample).Seconds(); elapsed > 0 {
		stats.EventsPerSecond = float64(stats.EventsTotal-m.lastTotal) / elapsed
	}
	m.lastTotal = stats.EventsTotal
	m.lastSample = now

	if m.sources.Censored != nil {
		stats.CensoredHits = m.sources.Censored.Total()
	}
	if m.sources.Restarts != nil {
		stats.WorkerRestarts = m.sources.Restarts.Get(event.RestartedAfterPanicType)
	}
	if m.sources.Rooms != nil {
		stats.Rooms = m.sources.Rooms()
	}
	if m.sources.Connections != nil {
		stats.Connections = m.sources.Connections()
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)
	stats.AllocMemMb = mem.Alloc / 1024 / 1024
	stats.NumGC = mem.NumGC
	stats.Goroutines = runtime.NumGoroutine()

	m.latest = stats
	m.log.Debug("Stats updated", "rooms", stats.Rooms, "connections", stats.Connections,
		"events", stats.EventsTotal, "mem_mb", stats.AllocMemMb)
}

func (m *Monitor) GetLatest() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.latest
}
