package workers

import (
	"context"
	"log/slog"
	"time"

	"ludo-lab/contract"
)

// JanitorWorker periodically closes the rooms nobody played in for ttl.
type JanitorWorker struct {
	log      *slog.Logger
	registry contract.IRegistry
	interval time.Duration
	ttl      time.Duration
}

func NewJanitorWorker(log *slog.Logger, registry contract.IRegistry, interval, ttl time.Duration) *JanitorWorker {
	return &JanitorWorker{log: log, registry: registry, interval: interval, ttl: ttl}
}

func (w *JanitorWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping janitor")
			return nil
		case <-ticker.C:
			if n := w.registry.ReapIdle(ctx, w.ttl); n > 0 {
				w.log.Debug("Janitor pass", "reaped", n, "rooms", w.registry.Rooms())
			}
		}
	}
}
