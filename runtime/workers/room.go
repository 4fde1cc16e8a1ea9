package workers

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
	"ludo-lab/errors"

	"github.com/samber/lo"
)

// FollowUpPolicy holds the delays of the timer-driven commands.
// A zero delay applies the follow-up within the same worker turn.
type FollowUpPolicy struct {
	StarterDrawDelay time.Duration
	NoMoveGrace      time.Duration
}

// Dispatcher submits a command the way any caller would, used by fired timers.
type Dispatcher func(ctx context.Context, cmd domain.Command)

type roomRequest struct {
	cmd      domain.Command
	shutdown string
	reply    chan roomResponse
}

type roomResponse struct {
	reply contract.Reply
	err   error
}

// RoomWorker is the single writer of one room. Commands are applied one at a
// time in arrival order, and only a successful command replaces the session.
type RoomWorker struct {
	log       *slog.Logger
	engine    contract.IRulesEngine
	scheduler contract.IScheduler
	dispatch  Dispatcher
	policy    FollowUpPolicy
	inbox     chan roomRequest
	events    chan<- event.Envelope
	telemetry chan<- event.Event
	id        domain.RoomID

	session    *domain.GameSession
	seq        uint64
	lastActive atomic.Int64
	closeOnce  sync.Once
	closed     chan struct{}
}

func NewRoomWorker(
	log *slog.Logger,
	session *domain.GameSession,
	engine contract.IRulesEngine,
	scheduler contract.IScheduler,
	dispatch Dispatcher,
	policy FollowUpPolicy,
	events chan<- event.Envelope,
	telemetry chan<- event.Event,
	bufferSize int,
) *RoomWorker {
	w := &RoomWorker{
		log:       log.With("room", session.ID),
		engine:    engine,
		scheduler: scheduler,
		dispatch:  dispatch,
		policy:    policy,
		inbox:     make(chan roomRequest, bufferSize),
		events:    events,
		telemetry: telemetry,
		id:        session.ID,
		session:   session,
		closed:    make(chan struct{}),
	}
	w.lastActive.Store(time.Now().UnixNano())
	return w
}

func (w *RoomWorker) Name() string {
	return fmt.Sprintf("RoomWorker-%s", w.id)
}

func (w *RoomWorker) RoomID() domain.RoomID {
	return w.id
}

// IdleFor returns how long ago the last command was applied.
func (w *RoomWorker) IdleFor(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, w.lastActive.Load()))
}

func (w *RoomWorker) Closed() <-chan struct{} {
	return w.closed
}

// Submit enqueues a command and waits for its outcome.
func (w *RoomWorker) Submit(ctx context.Context, cmd domain.Command) (contract.Reply, error) {
	return w.send(ctx, roomRequest{cmd: cmd})
}

// Shutdown closes the room after every queued command, announcing reason to its members.
func (w *RoomWorker) Shutdown(ctx context.Context, reason string) error {
	_, err := w.send(ctx, roomRequest{shutdown: reason})
	return err
}

func (w *RoomWorker) send(ctx context.Context, req roomRequest) (contract.Reply, error) {
	req.reply = make(chan roomResponse, 1)
	select {
	case <-w.closed:
		return contract.Reply{}, errors.ErrRoomClosed
	case <-ctx.Done():
		return contract.Reply{}, ctx.Err()
	case w.inbox <- req:
	}
	select {
	case res := <-req.reply:
		return res.reply, res.err
	case <-w.closed:
		// the worker may have answered right before closing
		select {
		case res := <-req.reply:
			return res.reply, res.err
		default:
			return contract.Reply{}, errors.ErrRoomClosed
		}
	case <-ctx.Done():
		return contract.Reply{}, ctx.Err()
	}
}

func (w *RoomWorker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.log.Debug("Stopping room worker")
			return nil
		case <-w.closed:
			return nil
		case req := <-w.inbox:
			if req.shutdown != "" {
				w.close(ctx, req.shutdown)
				req.reply <- roomResponse{reply: contract.Reply{Session: w.session.Clone(), Closed: true}}
				return nil
			}
			res := w.handle(ctx, req)
			req.reply <- res
			if res.reply.Closed {
				return nil
			}
		}
	}
}

// handle answers Internal to the caller before letting a panic reach the supervisor,
// which restarts the worker on the last committed session.
func (w *RoomWorker) handle(ctx context.Context, req roomRequest) (res roomResponse) {
	defer func() {
		if r := recover(); r != nil {
			req.reply <- roomResponse{err: errors.ErrInternal}
			panic(r)
		}
	}()

	started := time.Now()
	defer w.reportLatency(req.cmd, started)

	switch cmd := req.cmd.(type) {
	case domain.SnapshotCommand:
		return roomResponse{reply: contract.Reply{Session: w.session.Clone()}}
	case domain.AvailableColorsCommand:
		return roomResponse{reply: contract.Reply{
			Session: w.session.Clone(),
			Colors:  w.engine.AvailableColors(w.session, cmd.ExcludePlayerID),
		}}
	}

	reply, err := w.apply(ctx, req.cmd)
	if err != nil {
		w.log.Debug("Command rejected", "command", rules.CommandName(req.cmd), "error", err)
		return roomResponse{err: err}
	}
	if w.session.IsEmpty() && isLeave(req.cmd) {
		w.close(ctx, "empty")
		reply.Closed = true
	}
	reply.Session = w.session.Clone()
	return roomResponse{reply: reply}
}

// apply runs one engine operation, commits it, publishes its events and
// resolves immediate follow-ups.
func (w *RoomWorker) apply(ctx context.Context, cmd domain.Command) (contract.Reply, error) {
	before := w.session.PlayerIDs()
	res, err := w.engine.Apply(w.session, cmd)
	if err != nil {
		return contract.Reply{}, err
	}
	w.session = res.Session
	w.lastActive.Store(time.Now().UnixNano())

	recipients := lo.Union(before, w.session.PlayerIDs())
	w.publish(ctx, res.Events, recipients)
	reply := contract.Reply{Events: res.Events}

	next, delay, kind, ok := w.followUp(res)
	if !ok {
		return reply, nil
	}
	if delay <= 0 {
		more, err := w.apply(ctx, next)
		if err != nil {
			w.log.Error("Follow-up rejected", "command", rules.CommandName(next), "error", err)
			return reply, nil
		}
		reply.Events = append(reply.Events, more.Events...)
		return reply, nil
	}
	w.scheduler.Schedule(w.id, kind, delay, func() {
		timerCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		w.dispatch(timerCtx, next)
	})
	return reply, nil
}

func (w *RoomWorker) followUp(res rules.Result) (domain.Command, time.Duration, contract.TimerKind, bool) {
	switch res.FollowUp {
	case rules.FollowUpDrawStarter:
		return domain.DrawStarterCommand{Room: w.id}, w.policy.StarterDrawDelay, contract.TimerStarterDraw, true
	case rules.FollowUpSkipTurn:
		return domain.SkipTurnCommand{
			Room:        w.id,
			PlayerIndex: w.session.CurrentPlayerIndex,
			DiceValue:   w.session.DiceValue,
			Roll:        w.session.Rolls,
		}, w.policy.NoMoveGrace, contract.TimerSkipTurn, true
	}
	return nil, 0, "", false
}

// publish hands the events to the fanout in production order.
func (w *RoomWorker) publish(ctx context.Context, events []event.DomainEvent, recipients []domain.PlayerID) {
	for _, evt := range events {
		w.seq++
		env := event.Envelope{Seq: w.seq, Event: evt, Recipients: recipients}
		select {
		case w.events <- env:
		case <-ctx.Done():
			w.log.Warn("Context done, event not published", "kind", evt.Kind(), "seq", w.seq)
			return
		}
	}
}

func (w *RoomWorker) close(ctx context.Context, reason string) {
	w.closeOnce.Do(func() {
		w.publish(ctx, []event.DomainEvent{event.RoomClosed{Room: w.id, Reason: reason}}, w.session.PlayerIDs())
		w.scheduler.CancelRoom(w.id)
		close(w.closed)
		w.log.Info("Room closed", "reason", reason)
	})
}

func (w *RoomWorker) reportLatency(cmd domain.Command, started time.Time) {
	if w.telemetry == nil {
		return
	}
	latency := event.CommandLatency{Room: w.id, Command: rules.CommandName(cmd), Duration: time.Since(started)}
	select {
	case w.telemetry <- event.NewEvent(event.CommandLatencyType, latency):
	default:
	}
}

func isLeave(cmd domain.Command) bool {
	_, ok := cmd.(domain.LeaveCommand)
	return ok
}
