package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain/event"
	"ludo-lab/errors"
)

// Supervisor Own a context and a Cancel function
// Run each worker in a goroutine
// Check panics and errors
// Restart workers automatically
// Accept new workers (one per room) while running
// Keep running until the parent context is canceled or Stop is called
// Wait for the end of all goroutines via WaitGroup
type Supervisor struct {
	mu              sync.Mutex
	Cancel          context.CancelFunc // To stop the context
	wg              *sync.WaitGroup    // Wait for the end of goroutines
	log             *slog.Logger
	workers         []contract.Worker
	ctx             context.Context
	ready           chan struct{}
	telemetryChan   chan event.Event
	restartInterval time.Duration
}

func NewSupervisor(log *slog.Logger, telemetryChan chan event.Event, restartInterval time.Duration) *Supervisor {
	return &Supervisor{
		wg:              &sync.WaitGroup{},
		log:             log,
		ready:           make(chan struct{}),
		telemetryChan:   telemetryChan,
		restartInterval: restartInterval,
	}
}

// Run Create a local cancellation trigger tied to the parent ctx
//
//	// If the parent (main) cancels, we Cancel.
//	// If WE call s.Cancel(), only our children Cancel.
func (s *Supervisor) Run(ctx context.Context) {
	supervisedCtx, cancel := context.WithCancel(ctx)
	// Safety: ensure resources are cleaned up when Run exits
	defer cancel()

	s.mu.Lock()
	s.Cancel = cancel
	s.ctx = supervisedCtx
	for _, worker := range s.workers {
		s.Start(supervisedCtx, worker)
	}
	close(s.ready)
	s.mu.Unlock()

	// Rooms come and go, so the supervisor lives until canceled, even with no worker left.
	<-supervisedCtx.Done()
	// Spawn adds under the lock once the context is checked: no Add can follow Wait.
	s.mu.Lock()
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Supervisor) Add(worker ...contract.Worker) contract.ISupervisor {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workers = append(s.workers, worker...)
	return s
}

// Ready is closed once Run started the registered workers and accepts Spawn.
func (s *Supervisor) Ready() <-chan struct{} {
	return s.ready
}

// Spawn starts a worker under the running supervision context.
func (s *Supervisor) Spawn(worker contract.Worker) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ctx == nil {
		return errors.ErrSupervisorNotRunning
	}
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	s.Start(s.ctx, worker)
	return nil
}

// Start runs a worker under supervision.
// The worker is executed in a dedicated goroutine. If its Run method panics,
// the supervisor recovers, restarts the worker, and keeps the supervision
// loop alive. A failure in one worker must not stop the supervisor itself.
func (s *Supervisor) Start(ctx context.Context, worker contract.Worker) {
	s.wg.Add(1)
	workerName := contract.GetWorkerName(worker)

	go func() {
		defer s.wg.Done()

		for {
			if ctx.Err() != nil {
				s.log.Debug(fmt.Sprintf("Stopping : %s", workerName))
				return
			}

			err := func() (err error) {
				defer func() {
					if r := recover(); r != nil {
						s.log.Error("Worker panic recovered", "name", workerName, "panic", r)
						err = errors.ErrWorkerPanic
					}
				}()
				// Restarted after a crash
				// Not restarting the entire goroutine
				return worker.Run(ctx)
			}()

			if err == nil {
				// Terminated properly, never restart !
				s.log.Debug(fmt.Sprintf("Worker finished : %s", workerName))
				return
			}

			if ctx.Err() != nil {
				s.log.Debug("Worker stopped (context canceled)", "name", workerName)
				return
			}

			s.log.Warn("Worker crashed, restarting", "name", workerName, "error", err)
			s.notifyRestart(workerName)
			select {
			case <-ctx.Done():
				// Context canceled: priority stop.
				return
			case <-time.After(s.restartInterval):
			}
		}
	}()
}

func (s *Supervisor) notifyRestart(workerName string) {
	if s.telemetryChan == nil {
		return
	}
	select {
	case s.telemetryChan <- event.NewEvent(event.RestartedAfterPanicType, event.WorkerRestartedAfterPanic{WorkerName: workerName}):
	default:
		s.log.Debug("Observability telemetry event lost")
	}
}

// Stop Cancel all goroutines listening channel for Ctx.Done
// Supervisor will wait for all goroutines to finish
func (s *Supervisor) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Cancel != nil {
		s.Cancel()
	}
}
