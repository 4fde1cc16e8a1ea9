// Package runtime hosts the live rooms and moves their events around.
// It orchestrates the system without containing game rules.
package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"
	"ludo-lab/observability"
	"ludo-lab/runtime/workers"
	"ludo-lab/sink"
)

type Config struct {
	BufferSize           int
	InboxSize            int
	SinkTimeout          time.Duration
	RestartInterval      time.Duration
	Policy               workers.FollowUpPolicy
	RoomIdleTTL          time.Duration
	JanitorInterval      time.Duration
	MetricInterval       time.Duration
	LatencyThreshold     time.Duration
	LowCapacityThreshold int
}

type Orchestrator struct {
	mu             sync.Mutex
	log            *slog.Logger
	config         Config
	supervisor     *workers.Supervisor
	scheduler      *Scheduler
	directory      *Directory
	registry       *Registry
	journal        contract.IJournalRepository
	envelopes      chan event.Envelope
	telemetry      chan event.Event
	permanentSinks []contract.EventSink
	activity       *event.GameActivityHandler
	censored       *event.CensoredHandler
	restarts       *event.Counter
	monitor        *observability.Monitor
	done           chan struct{}
}

func NewOrchestrator(log *slog.Logger, engine contract.IRulesEngine,
	journal contract.IJournalRepository, config Config) *Orchestrator {
	telemetry := make(chan event.Event, config.BufferSize)
	envelopes := make(chan event.Envelope, config.BufferSize)
	supervisor := workers.NewSupervisor(log, telemetry, config.RestartInterval)
	scheduler := NewScheduler(log)
	directory := NewDirectory()
	registry := NewRegistry(log, engine, supervisor, scheduler, config.Policy,
		envelopes, telemetry, config.InboxSize, nil)

	o := &Orchestrator{
		log:        log,
		config:     config,
		supervisor: supervisor,
		scheduler:  scheduler,
		directory:  directory,
		registry:   registry,
		journal:    journal,
		envelopes:  envelopes,
		telemetry:  telemetry,
		activity:   event.NewGameActivityHandler(log),
		censored:   event.NewCensoredHandler(log),
		restarts:   event.NewCounter(),
		done:       make(chan struct{}),
	}
	if journal != nil {
		o.permanentSinks = append(o.permanentSinks, sink.NewJournalSink(journal, log))
	}
	o.monitor = observability.NewMonitor(log, observability.Sources{
		Activity:    o.activity,
		Censored:    o.censored,
		Restarts:    o.restarts,
		Rooms:       registry.Rooms,
		Connections: directory.Count,
	}, config.MetricInterval)
	return o
}

// Add registers extra permanent sinks, before Start only.
func (o *Orchestrator) Add(sinks ...contract.EventSink) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.permanentSinks = append(o.permanentSinks, sinks...)
}

func (o *Orchestrator) Registry() contract.IRegistry   { return o.registry }
func (o *Orchestrator) Directory() contract.IDirectory { return o.directory }
func (o *Orchestrator) Monitor() *observability.Monitor {
	return o.monitor
}

// Telemetry is the channel technical events are reported on.
func (o *Orchestrator) Telemetry() chan<- event.Event {
	return o.telemetry
}

func (o *Orchestrator) History(roomID domain.RoomID, cursor *string) ([]contract.JournalEntry, *string, error) {
	if o.journal == nil {
		return nil, nil, nil
	}
	return o.journal.History(roomID, cursor)
}

// Start registers the long-lived workers, runs the supervisor in the background
// and returns once rooms can be spawned.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.mu.Lock()
	o.supervisor.Add(o.prepareWorkers()...)
	o.mu.Unlock()

	o.log.Info("Starting orchestrator and all supervised workers")
	go func() {
		defer close(o.done)
		o.supervisor.Run(ctx)
	}()

	select {
	case <-o.supervisor.Ready():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Orchestrator) prepareWorkers() []contract.Worker {
	handlers := []event.Handler{
		o.activity,
		o.censored,
		event.NewWorkerRestartedAfterPanicHandler(o.log, o.restarts),
		event.NewLatencyHandler(o.log, o.config.LatencyThreshold),
		event.NewChannelCapacityHandler(o.log, o.config.LowCapacityThreshold),
		event.NewProcessTrackerHandler(o.log),
	}
	channels := []workers.NamedChannel{
		workers.WatchChannel("envelopes", o.envelopes),
		workers.WatchChannel("telemetry", o.telemetry),
	}
	return []contract.Worker{
		workers.NewEventFanoutWorker(o.log, o.permanentSinks, o.directory, o.envelopes, o.telemetry, o.config.SinkTimeout),
		workers.NewTelemetryWorker(o.log, o.telemetry, handlers),
		workers.NewJanitorWorker(o.log, o.registry, o.config.JanitorInterval, o.config.RoomIdleTTL),
		workers.NewProcessTrackerWorker(o.log, o.telemetry, o.config.MetricInterval, o.registry.Rooms),
		workers.NewChannelCapacityWorker(o.log, channels, o.telemetry, o.config.MetricInterval),
		o.monitor,
	}
}

// Stop cancels every timer and worker and waits for the supervisor to return.
func (o *Orchestrator) Stop() {
	o.log.Info("Requesting orchestrator shutdown")
	o.scheduler.Stop()
	o.supervisor.Stop()
	select {
	case <-o.done:
	case <-time.After(5 * time.Second):
		o.log.Warn("Workers still running after shutdown timeout")
	}
	o.log.Debug("Orchestrator stopped")
}
