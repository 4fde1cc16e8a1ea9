//go:generate go run go.uber.org/mock/mockgen -source=contract.go -destination=../mocks/mock_contract.go -package=mocks
package contract

import (
	"context"
	"reflect"
	"time"

	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
)

type ISupervisor interface {
	Add(worker ...Worker) ISupervisor
	Run(ctx context.Context)
	Start(ctx context.Context, worker Worker)
	Spawn(worker Worker) error
	Ready() <-chan struct{}
	Stop()
}

type WorkerName string

// Worker doesn't protect itself
// Can be silly, focused
type Worker interface {
	Run(ctx context.Context) error
}

// GetWorkerName uses reflection to retrieve the type name of the worker.
// This is used for logging and supervision purposes during worker initialization
// or lifecycle events, avoiding the need for manual naming in the Worker interface.
func GetWorkerName(w Worker) string {
	if w == nil {
		return "NilWorker"
	}
	if named, ok := w.(interface{ Name() string }); ok {
		return named.Name()
	}
	t := reflect.TypeOf(w)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

// EventSink receives every envelope it is subscribed to, in production order.
type EventSink interface {
	Consume(ctx context.Context, env event.Envelope) error
}

// IDirectory maps a connected player to the sink of its connection.
type IDirectory interface {
	Subscribe(playerID domain.PlayerID, sink EventSink)
	Unsubscribe(playerID domain.PlayerID, sink EventSink) bool
	SinksFor(playerIDs []domain.PlayerID) []EventSink
}

// IRulesEngine is the authoritative state machine applied by a room worker.
type IRulesEngine interface {
	CreateSession(id domain.RoomID) *domain.GameSession
	Apply(s *domain.GameSession, cmd domain.Command) (rules.Result, error)
	AvailableColors(s *domain.GameSession, exclude domain.PlayerID) []board.Color
}

type TimerKind string

const (
	TimerStarterDraw TimerKind = "starter_draw"
	TimerSkipTurn    TimerKind = "skip_turn"
)

// IScheduler owns the room timers. Scheduling a kind replaces the pending timer of that kind.
type IScheduler interface {
	Schedule(room domain.RoomID, kind TimerKind, delay time.Duration, fn func())
	Cancel(room domain.RoomID, kind TimerKind)
	CancelRoom(room domain.RoomID)
}

// Reply is what a caller gets back from a dispatched command.
type Reply struct {
	Session *domain.GameSession
	Events  []event.DomainEvent
	Colors  []board.Color
	// Closed is set when the command emptied the room and it was torn down.
	Closed bool
}

type IRegistry interface {
	CreateRoom(ctx context.Context) (domain.RoomID, error)
	Dispatch(ctx context.Context, cmd domain.Command) (Reply, error)
	RemovePlayer(ctx context.Context, playerID domain.PlayerID) error
	Snapshot(ctx context.Context, roomID domain.RoomID) (*domain.GameSession, error)
	ReapIdle(ctx context.Context, ttl time.Duration) int
	RoomOf(playerID domain.PlayerID) (domain.RoomID, bool)
	Rooms() int
}

// JournalEntry is one persisted room event.
type JournalEntry struct {
	ID      string
	Room    domain.RoomID
	Seq     uint64
	Kind    event.Kind
	Payload map[string]any
	At      time.Time
}

type IJournalRepository interface {
	Append(env event.Envelope) error
	History(roomID domain.RoomID, cursor *string) ([]JournalEntry, *string, error)
}

type IOrchestrator interface {
	Registry() IRegistry
	Directory() IDirectory
	History(roomID domain.RoomID, cursor *string) ([]JournalEntry, *string, error)
	Start(ctx context.Context) error
	Stop()
}
