package workers

import (
	"context"
	"log/slog"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain/event"
)

// EventFanout delivers room envelopes to the permanent sinks (journal...) and
// to the connection sinks of the envelope's recipients.
//
// Envelopes are delivered one after the other, in the order the room workers
// produced them. A slow sink is bounded by sinkTimeout and never blocks the others for longer.
type EventFanout struct {
	log            *slog.Logger
	permanentSinks []contract.EventSink
	directory      contract.IDirectory
	envelopes      chan event.Envelope
	telemetryChan  chan event.Event
	sinkTimeout    time.Duration
}

func NewEventFanoutWorker(
	log *slog.Logger,
	permanentSinks []contract.EventSink,
	directory contract.IDirectory,
	envelopes chan event.Envelope,
	telemetryChan chan event.Event,
	sinkTimeout time.Duration,
) *EventFanout {
	return &EventFanout{
		log:            log,
		permanentSinks: permanentSinks,
		directory:      directory,
		envelopes:      envelopes,
		telemetryChan:  telemetryChan,
		sinkTimeout:    sinkTimeout,
	}
}

func (w *EventFanout) Run(ctx context.Context) error {
	for {
		select {
		case env := <-w.envelopes:
			w.Fanout(ctx, env)
		case <-ctx.Done():
			w.log.Debug("Context done, stopping envelope fanout")
			return nil
		}
	}
}

// Fanout One sink after the other for each envelope
func (w *EventFanout) Fanout(ctx context.Context, env event.Envelope) {
	sinks := append([]contract.EventSink{}, w.permanentSinks...)
	sinks = append(sinks, w.directory.SinksFor(env.Recipients)...)

	for _, sink := range sinks {
		sinkCtx, cancel := context.WithTimeout(ctx, w.sinkTimeout)
		if err := sink.Consume(sinkCtx, env); err != nil {
			w.log.Warn("Sink failed to consume envelope",
				"room", env.Event.RoomID(), "kind", env.Event.Kind(), "seq", env.Seq, "error", err)
		}
		cancel()
	}

	if w.telemetryChan == nil {
		return
	}
	select {
	case w.telemetryChan <- event.NewEvent(event.GameEventType, event.GameActivity{Room: env.Event.RoomID(), Kind: env.Event.Kind()}):
	default:
		w.log.Debug("Observability telemetry event lost")
	}
}
