package event

import (
	"log/slog"

	"ludo-lab/errors"
)

// ChannelCapacityHandler handles events reporting the capacity of channels.
// It is triggered to monitor the length and max capacity of the fanout and connection channels.
// Useful for detecting backpressure before envelopes get dropped.
type ChannelCapacityHandler struct {
	log                  *slog.Logger
	lowCapacityThreshold int
}

func NewChannelCapacityHandler(log *slog.Logger, lowCapacityThreshold int) *ChannelCapacityHandler {
	return &ChannelCapacityHandler{log: log, lowCapacityThreshold: lowCapacityThreshold}
}

func (h ChannelCapacityHandler) Handle(event Event) {
	switch event.Type {
	case ChannelCapacityType:
		payload, ok := event.Payload.(ChannelCapacity)
		if !ok {
			h.log.Error("Unexpected telemetry payload", "type", event.Type, "error", errors.ErrInvalidPayload)
			return
		}
		h.log.Debug("Channel usage", "channel", payload.ChannelName, "length", payload.Length, "capacity", payload.Capacity)
		if payload.Capacity <= 0 {
			return
		}
		// a full channel blocks the room workers, warn before it happens
		if left := payload.Capacity - payload.Length; left <= h.lowCapacityThreshold {
			h.log.Warn("Channel close to saturation", "channel", payload.ChannelName, "left", left)
		}
	}
}
