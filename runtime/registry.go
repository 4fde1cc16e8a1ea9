package runtime

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"
	"ludo-lab/errors"
	"ludo-lab/runtime/workers"

	"github.com/samber/lo"
)

// Registry owns every live room: the room workers, the used ids and the
// player to room reverse index. Nothing outside reaches those maps.
type Registry struct {
	mu          sync.Mutex
	log         *slog.Logger
	engine      contract.IRulesEngine
	supervisor  contract.ISupervisor
	scheduler   contract.IScheduler
	policy      workers.FollowUpPolicy
	events      chan<- event.Envelope
	telemetry   chan<- event.Event
	inboxSize   int
	ids         *RoomIDs
	rooms       map[domain.RoomID]*workers.RoomWorker
	playerRooms map[domain.PlayerID]domain.RoomID
}

func NewRegistry(
	log *slog.Logger,
	engine contract.IRulesEngine,
	supervisor contract.ISupervisor,
	scheduler contract.IScheduler,
	policy workers.FollowUpPolicy,
	events chan<- event.Envelope,
	telemetry chan<- event.Event,
	inboxSize int,
	ids *RoomIDs,
) *Registry {
	if ids == nil {
		ids = NewRoomIDs(nil)
	}
	return &Registry{
		log:         log,
		engine:      engine,
		supervisor:  supervisor,
		scheduler:   scheduler,
		policy:      policy,
		events:      events,
		telemetry:   telemetry,
		inboxSize:   inboxSize,
		ids:         ids,
		rooms:       make(map[domain.RoomID]*workers.RoomWorker),
		playerRooms: make(map[domain.PlayerID]domain.RoomID),
	}
}

// CreateRoom reserves a fresh id and spawns the worker owning the new session.
func (r *Registry) CreateRoom(ctx context.Context) (domain.RoomID, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	id, err := r.ids.Reserve()
	if err != nil {
		return "", err
	}
	worker := workers.NewRoomWorker(r.log, r.engine.CreateSession(id), r.engine, r.scheduler,
		r.dispatchTimer, r.policy, r.events, r.telemetry, r.inboxSize)
	if err := r.supervisor.Spawn(worker); err != nil {
		r.ids.Release(id)
		return "", err
	}
	r.rooms[id] = worker
	r.log.Info("Room created", "room", id, "rooms", len(r.rooms))
	return id, nil
}

// Dispatch routes a command to the worker of its room and waits for the outcome.
func (r *Registry) Dispatch(ctx context.Context, cmd domain.Command) (contract.Reply, error) {
	worker, ok := r.lookup(cmd.RoomID())
	if !ok {
		return contract.Reply{}, errors.ErrSessionNotFound
	}

	join, isJoin := cmd.(domain.JoinCommand)
	if isJoin {
		if err := r.reserveSeat(join.PlayerID, join.Room); err != nil {
			return contract.Reply{}, err
		}
	}

	reply, err := worker.Submit(ctx, cmd)
	if errors.Is(err, errors.ErrRoomClosed) {
		err = errors.ErrSessionNotFound
	}
	if err != nil {
		if isJoin {
			r.releaseSeat(join.PlayerID, join.Room)
		}
		return contract.Reply{}, err
	}

	if leave, ok := cmd.(domain.LeaveCommand); ok {
		r.releaseSeat(leave.PlayerID, leave.Room)
	}
	if reply.Closed {
		r.forget(worker.RoomID())
	}
	return reply, nil
}

// dispatchTimer is the entry point of fired timers.
func (r *Registry) dispatchTimer(ctx context.Context, cmd domain.Command) {
	if _, err := r.Dispatch(ctx, cmd); err != nil {
		r.log.Debug("Timer command dropped", "room", cmd.RoomID(), "error", err)
	}
}

// RemovePlayer unseats a player from whatever room holds them, closing the room once empty.
func (r *Registry) RemovePlayer(ctx context.Context, playerID domain.PlayerID) error {
	roomID, ok := r.RoomOf(playerID)
	if !ok {
		return errors.ErrPlayerNotFound
	}
	_, err := r.Dispatch(ctx, domain.LeaveCommand{Room: roomID, PlayerID: playerID})
	return err
}

func (r *Registry) Snapshot(ctx context.Context, roomID domain.RoomID) (*domain.GameSession, error) {
	reply, err := r.Dispatch(ctx, domain.SnapshotCommand{Room: roomID})
	if err != nil {
		return nil, err
	}
	return reply.Session, nil
}

// ReapIdle closes every room without activity for longer than ttl.
func (r *Registry) ReapIdle(ctx context.Context, ttl time.Duration) int {
	now := time.Now()
	r.mu.Lock()
	idle := lo.Filter(lo.Values(r.rooms), func(w *workers.RoomWorker, _ int) bool {
		return w.IdleFor(now) > ttl
	})
	r.mu.Unlock()

	reaped := 0
	for _, worker := range idle {
		if err := worker.Shutdown(ctx, "idle"); err != nil && !errors.Is(err, errors.ErrRoomClosed) {
			r.log.Warn("Unable to close idle room", "room", worker.RoomID(), "error", err)
			continue
		}
		r.forget(worker.RoomID())
		reaped++
	}
	if reaped > 0 {
		r.log.Info("Idle rooms reaped", "count", reaped)
	}
	return reaped
}

func (r *Registry) RoomOf(playerID domain.PlayerID) (domain.RoomID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	roomID, ok := r.playerRooms[playerID]
	return roomID, ok
}

func (r *Registry) Rooms() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms)
}

func (r *Registry) lookup(roomID domain.RoomID) (*workers.RoomWorker, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	worker, ok := r.rooms[roomID]
	return worker, ok
}

// reserveSeat claims the reverse index entry before the join reaches the room.
func (r *Registry) reserveSeat(playerID domain.PlayerID, roomID domain.RoomID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if current, ok := r.playerRooms[playerID]; ok {
		if current == roomID {
			return errors.ErrPlayerJoined
		}
		return errors.ErrPlayerInRoom
	}
	r.playerRooms[playerID] = roomID
	return nil
}

func (r *Registry) releaseSeat(playerID domain.PlayerID, roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.playerRooms[playerID] == roomID {
		delete(r.playerRooms, playerID)
	}
}

// forget drops a closed room and everything pointing at it, freeing its id.
func (r *Registry) forget(roomID domain.RoomID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rooms[roomID]; !ok {
		return
	}
	delete(r.rooms, roomID)
	for playerID, seated := range r.playerRooms {
		if seated == roomID {
			delete(r.playerRooms, playerID)
		}
	}
	r.scheduler.CancelRoom(roomID)
	r.ids.Release(roomID)
	r.log.Info("Room destroyed", "room", roomID, "rooms", len(r.rooms))
}
