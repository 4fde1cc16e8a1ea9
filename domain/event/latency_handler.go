package event

import (
	"log/slog"
	"time"
)

type LatencyHandler struct {
	log              *slog.Logger
	latencyThreshold time.Duration
}

func NewLatencyHandler(log *slog.Logger, latencyThreshold time.Duration) *LatencyHandler {
	return &LatencyHandler{log: log, latencyThreshold: latencyThreshold}
}

func (h *LatencyHandler) Handle(e Event) {
	if payload, ok := e.Payload.(CommandLatency); ok {
		h.log.Debug("telemetry: command latency",
			"room", payload.Room,
			"command", payload.Command,
			"duration_ms", payload.Duration.Milliseconds(),
		)

		if payload.Duration > h.latencyThreshold {
			h.log.Warn("high command latency detected", "room", payload.Room, "command", payload.Command, "duration", payload.Duration)
		}
	}
}
