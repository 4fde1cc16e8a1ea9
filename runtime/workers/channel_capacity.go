package workers

import (
	"context"
	"log/slog"
	"time"

	"ludo-lab/domain/event"
)

// NamedChannel exposes the fill level of a channel without knowing its element type.
type NamedChannel struct {
	Name string
	Len  func() int
	Cap  func() int
}

func WatchChannel[T any](name string, ch chan T) NamedChannel {
	return NamedChannel{
		Name: name,
		Len:  func() int { return len(ch) },
		Cap:  func() int { return cap(ch) },
	}
}

// ChannelCapacityWorker periodically reports the current channel capacity and length.
// Reading len(channel) and cap(channel) is non-blocking, so this won't interfere
// with other goroutines. It's okay if a sample is dropped occasionally.
type ChannelCapacityWorker struct {
	log            *slog.Logger
	channels       []NamedChannel
	telemetryChan  chan event.Event
	metricInterval time.Duration
}

func NewChannelCapacityWorker(log *slog.Logger,
	channels []NamedChannel, telemetryChan chan event.Event,
	metricInterval time.Duration) *ChannelCapacityWorker {
	return &ChannelCapacityWorker{
		log: log, channels: channels,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
	}
}

func (w *ChannelCapacityWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping channel sampling")
			return nil
		case <-ticker.C:
			for _, nc := range w.channels {
				sample := event.ChannelCapacity{ChannelName: nc.Name, Capacity: nc.Cap(), Length: nc.Len()}
				select {
				case <-ctx.Done():
					return nil
				case w.telemetryChan <- event.NewEvent(event.ChannelCapacityType, sample):
				default:
					w.log.Debug("Observability telemetry event lost")
				}
			}
		}
	}
}
