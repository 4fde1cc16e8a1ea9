package workers

import (
	"context"
	"log/slog"
	"os"
	"time"

	"ludo-lab/domain/event"

	"github.com/shirou/gopsutil/process"
)

// ProcessTrackerWorker samples the server process and the live room count.
type ProcessTrackerWorker struct {
	log            *slog.Logger
	telemetryChan  chan event.Event
	metricInterval time.Duration
	rooms          func() int
}

func NewProcessTrackerWorker(
	log *slog.Logger,
	telemetryChan chan event.Event,
	metricInterval time.Duration,
	rooms func() int,
) *ProcessTrackerWorker {
	return &ProcessTrackerWorker{
		log:            log,
		telemetryChan:  telemetryChan,
		metricInterval: metricInterval,
		rooms:          rooms,
	}
}

func (w *ProcessTrackerWorker) Run(ctx context.Context) error {
	pid := int32(os.Getpid())
	p, err := process.NewProcess(pid)
	if err != nil {
		return err
	}
	ticker := time.NewTicker(w.metricInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Context done, stopping process tracking")
			return nil
		case <-ticker.C:
			cpu, err := p.CPUPercent()
			if err != nil {
				w.log.Error("Error while finding process cpu usage", "err", err)
				continue
			}
			mem, err := p.MemoryInfo()
			if err != nil {
				w.log.Error("Error while finding process ram usage", "err", err)
				continue
			}
			tracker := event.ProcessTracker{PID: pid, Cpu: cpu, Ram: mem.RSS, Rooms: w.rooms()}
			select {
			case <-ctx.Done():
				return nil
			case w.telemetryChan <- event.NewEvent(event.PIDTrackerType, tracker):
			default:
				w.log.Debug("Observability telemetry event lost")
			}
		}
	}
}
