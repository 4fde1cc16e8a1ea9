package event

import (
	"log/slog"

	"ludo-lab/errors"
)

type ProcessTrackerHandler struct {
	log *slog.Logger
}

func NewProcessTrackerHandler(log *slog.Logger) *ProcessTrackerHandler {
	return &ProcessTrackerHandler{log: log}
}

func (h ProcessTrackerHandler) Handle(event Event) {
	switch event.Type {
	case PIDTrackerType:
		payload, ok := event.Payload.(ProcessTracker)
		if !ok {
			h.log.Error("Unexpected telemetry payload", "type", event.Type, "error", errors.ErrInvalidPayload)
			return
		}
		h.log.Info("Server process",
			"pid", payload.PID, "rooms", payload.Rooms,
			"cpu_percent", payload.Cpu, "ram_mb", payload.Ram/1024/1024)
	}
}
