package observability

import (
	"log/slog"
	"testing"
	"time"

	"ludo-lab/domain/event"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestMonitor_Refresh(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	activity := event.NewGameActivityHandler(log)
	censored := event.NewCensoredHandler(log)
	restarts := event.NewCounter()

	// Given some game traffic and one restarted worker
	activity.Handle(event.NewEvent(event.GameEventType, event.GameActivity{Room: "321", Kind: event.DieRolledKind}))
	activity.Handle(event.NewEvent(event.GameEventType, event.GameActivity{Room: "321", Kind: event.DieRolledKind}))
	activity.Handle(event.NewEvent(event.GameEventType, event.GameActivity{Room: "321", Kind: event.DiscMovedKind}))
	censored.Handle(event.NewEvent(event.CensorshipHitType, event.Censored{Word: "idiot"}))
	restarts.Increment(event.RestartedAfterPanicType)

	monitor := NewMonitor(log, Sources{
		Activity:    activity,
		Censored:    censored,
		Restarts:    restarts,
		Rooms:       func() int { return 2 },
		Connections: func() int { return 5 },
	}, time.Second)

	// When the monitor samples
	monitor.Refresh()

	// Then the snapshot reflects every source
	stats := monitor.GetLatest()
	req.Equal(2, stats.Rooms)
	req.Equal(5, stats.Connections)
	req.Equal(uint64(3), stats.EventsTotal)
	req.Equal(uint64(2), stats.EventsByKind["DieRolled"])
	req.Equal(uint64(1), stats.CensoredHits)
	req.Equal(uint64(1), stats.WorkerRestarts)
	req.Positive(stats.Goroutines)
	req.False(stats.UpdatedAt.IsZero())
}

func TestMonitor_NoSources(t *testing.T) {
	req := require.New(t)
	monitor := NewMonitor(logs.GetLoggerFromLevel(slog.LevelDebug), Sources{}, time.Second)

	monitor.Refresh()

	stats := monitor.GetLatest()
	req.Zero(stats.Rooms)
	req.Empty(stats.EventsByKind)
}
