package event

import (
	"time"

	"ludo-lab/domain"
)

// Type names a technical event. Technical events never reach players,
// they feed the telemetry handlers only.
type Type string

const (
	RestartedAfterPanicType Type = "WORKER_RESTARTED_AFTER_PANIC"
	ChannelCapacityType     Type = "CHANNEL_CAPACITY"
	PIDTrackerType          Type = "PID_TRACKER"
	CensorshipHitType       Type = "CENSORSHIP_HIT"
	CommandLatencyType      Type = "COMMAND_LATENCY"
	GameEventType           Type = "GAME_EVENT"
)

type Event struct {
	Type      Type
	CreatedAt time.Time
	Payload   any
}

type WorkerRestartedAfterPanic struct {
	WorkerName string
}

type ChannelCapacity struct {
	ChannelName string
	Capacity    int
	Length      int
}

type ProcessTracker struct {
	PID   int32
	Cpu   float64
	Ram   uint64
	Rooms int
}

type Censored struct {
	Word string
}

type CommandLatency struct {
	Room     domain.RoomID
	Command  string
	Duration time.Duration
}

// GameActivity mirrors one domain event for the counters.
type GameActivity struct {
	Room domain.RoomID
	Kind Kind
}

func NewEvent(t Type, payload any) Event {
	return Event{Type: t, CreatedAt: time.Now().UTC(), Payload: payload}
}
