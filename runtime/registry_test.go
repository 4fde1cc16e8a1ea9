package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
	"ludo-lab/errors"
	"ludo-lab/runtime/workers"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu        sync.Mutex
	envelopes []event.Envelope
}

func (r *recorder) kinds(room domain.RoomID) []event.Kind {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []event.Kind
	for _, env := range r.envelopes {
		if env.Event.RoomID() == room {
			out = append(out, env.Event.Kind())
		}
	}
	return out
}

func newTestRegistry(t *testing.T, policy workers.FollowUpPolicy, ids *RoomIDs) (*Registry, *recorder) {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	supervisor := workers.NewSupervisor(log, nil, time.Millisecond)
	go supervisor.Run(ctx)
	<-supervisor.Ready()

	scheduler := NewScheduler(log)
	t.Cleanup(scheduler.Stop)

	events := make(chan event.Envelope, 100)
	rec := &recorder{}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case env := <-events:
				rec.mu.Lock()
				rec.envelopes = append(rec.envelopes, env)
				rec.mu.Unlock()
			}
		}
	}()

	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(11), nil)
	return NewRegistry(log, engine, supervisor, scheduler, policy, events, nil, 16, ids), rec
}

func TestRegistry_CreateRoom_DistinctIDs(t *testing.T) {
	req := require.New(t)
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)

	// When many rooms are created
	seen := make(map[domain.RoomID]struct{})
	for i := 0; i < 50; i++ {
		id, err := registry.CreateRoom(context.Background())
		req.NoError(err)
		seen[id] = struct{}{}
	}

	// Then every id is unique and every room is live
	req.Len(seen, 50)
	req.Equal(50, registry.Rooms())
}

func TestRegistry_Dispatch_UnknownRoom(t *testing.T) {
	req := require.New(t)
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)

	_, err := registry.Dispatch(context.Background(), domain.JoinCommand{Room: "999", PlayerID: "ann"})
	req.ErrorIs(err, errors.ErrSessionNotFound)
	_, ok := registry.RoomOf("ann")
	req.False(ok)

	_, err = registry.Snapshot(context.Background(), "999")
	req.ErrorIs(err, errors.ErrSessionNotFound)
}

func TestRegistry_Join_OneRoomPerPlayer(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)
	first, err := registry.CreateRoom(ctx)
	req.NoError(err)
	second, err := registry.CreateRoom(ctx)
	req.NoError(err)

	// Given ann sits in the first room
	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: first, PlayerID: "ann", Name: "Ann"})
	req.NoError(err)
	roomID, ok := registry.RoomOf("ann")
	req.True(ok)
	req.Equal(first, roomID)

	// When ann tries the same room again, then another one
	_, errSame := registry.Dispatch(ctx, domain.JoinCommand{Room: first, PlayerID: "ann"})
	_, errOther := registry.Dispatch(ctx, domain.JoinCommand{Room: second, PlayerID: "ann"})

	// Then both are refused and ann stays where she was
	req.ErrorIs(errSame, errors.ErrPlayerJoined)
	req.ErrorIs(errOther, errors.ErrPlayerInRoom)
	roomID, _ = registry.RoomOf("ann")
	req.Equal(first, roomID)

	session, err := registry.Snapshot(ctx, second)
	req.NoError(err)
	req.Empty(session.Players)
}

func TestRegistry_Join_RejectedReleasesSeat(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)
	roomID, err := registry.CreateRoom(ctx)
	req.NoError(err)

	// Given a full room
	for i := 0; i < domain.MaxPlayers; i++ {
		_, err := registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: domain.PlayerID(fmt.Sprintf("p%d", i))})
		req.NoError(err)
	}

	// When a fifth player knocks
	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: "late"})

	// Then the player is free to join elsewhere
	req.ErrorIs(err, errors.ErrSessionFull)
	_, ok := registry.RoomOf("late")
	req.False(ok)
}

func TestRegistry_EmptyRoomIsDestroyed(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, rec := newTestRegistry(t, workers.FollowUpPolicy{}, NewRoomIDs(func(int) int { return 0 }))
	roomID, err := registry.CreateRoom(ctx)
	req.NoError(err)
	req.Equal(domain.RoomID("100"), roomID)

	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: "ann"})
	req.NoError(err)

	// When the only player goes away
	req.NoError(registry.RemovePlayer(ctx, "ann"))

	// Then the room is gone and its id can be handed out again
	req.Zero(registry.Rooms())
	_, ok := registry.RoomOf("ann")
	req.False(ok)
	_, err = registry.Snapshot(ctx, roomID)
	req.ErrorIs(err, errors.ErrSessionNotFound)

	reused, err := registry.CreateRoom(ctx)
	req.NoError(err)
	req.Equal(roomID, reused)

	req.Eventually(func() bool {
		kinds := rec.kinds(roomID)
		return len(kinds) >= 3 && kinds[2] == event.RoomClosedKind
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_RemovePlayer_Unknown(t *testing.T) {
	req := require.New(t)
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)

	err := registry.RemovePlayer(context.Background(), "ghost")

	req.ErrorIs(err, errors.ErrPlayerNotFound)
}

func TestRegistry_ConcurrentJoins(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, _ := newTestRegistry(t, workers.FollowUpPolicy{}, nil)
	roomID, err := registry.CreateRoom(ctx)
	req.NoError(err)

	// When twenty players race for four seats
	var wg sync.WaitGroup
	results := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: domain.PlayerID(fmt.Sprintf("p%02d", i))})
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	// Then exactly four got in and nobody else is indexed
	joined := 0
	for err := range results {
		if err == nil {
			joined++
			continue
		}
		req.ErrorIs(err, errors.ErrSessionFull)
	}
	req.Equal(domain.MaxPlayers, joined)

	session, err := registry.Snapshot(ctx, roomID)
	req.NoError(err)
	req.Len(session.Players, domain.MaxPlayers)
	req.NoError(session.Validate())
	for i := 0; i < 20; i++ {
		id := domain.PlayerID(fmt.Sprintf("p%02d", i))
		_, _, seated := session.PlayerByID(id)
		_, indexed := registry.RoomOf(id)
		req.Equal(seated, indexed, "player %s", id)
	}
}

func TestRegistry_StarterDrawnAfterDelay(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, rec := newTestRegistry(t, workers.FollowUpPolicy{StarterDrawDelay: 20 * time.Millisecond}, nil)
	roomID, err := registry.CreateRoom(ctx)
	req.NoError(err)

	for _, cmd := range []domain.Command{
		domain.JoinCommand{Room: roomID, PlayerID: "ann"},
		domain.JoinCommand{Room: roomID, PlayerID: "bea"},
		domain.ConfirmColorCommand{Room: roomID, PlayerID: "ann", Color: board.Orange},
		domain.ConfirmColorCommand{Room: roomID, PlayerID: "bea", Color: board.Green},
	} {
		_, err := registry.Dispatch(ctx, cmd)
		req.NoError(err)
	}

	// When the game is started
	reply, err := registry.Dispatch(ctx, domain.StartCommand{Room: roomID, RequesterID: "ann"})

	// Then the starter is only drawn once the suspense elapsed
	req.NoError(err)
	req.Equal(domain.PhaseSelectingStarter, reply.Session.Phase)
	req.Eventually(func() bool {
		session, err := registry.Snapshot(ctx, roomID)
		return err == nil && session.Phase == domain.PhasePlaying
	}, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool {
		kinds := rec.kinds(roomID)
		return len(kinds) > 0 && kinds[len(kinds)-1] == event.GameStartedKind
	}, time.Second, 5*time.Millisecond)
}

func TestRegistry_ReapIdle(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	registry, rec := newTestRegistry(t, workers.FollowUpPolicy{}, nil)
	idle, err := registry.CreateRoom(ctx)
	req.NoError(err)
	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: idle, PlayerID: "ann"})
	req.NoError(err)

	// Given the room saw no command for a while
	time.Sleep(20 * time.Millisecond)
	busy, err := registry.CreateRoom(ctx)
	req.NoError(err)

	// When the janitor pass runs
	reaped := registry.ReapIdle(ctx, 10*time.Millisecond)

	// Then only the idle room was closed and its player freed
	req.Equal(1, reaped)
	req.Equal(1, registry.Rooms())
	_, ok := registry.RoomOf("ann")
	req.False(ok)
	_, err = registry.Snapshot(ctx, busy)
	req.NoError(err)
	req.Eventually(func() bool {
		kinds := rec.kinds(idle)
		return len(kinds) == 2 && kinds[1] == event.RoomClosedKind
	}, time.Second, 5*time.Millisecond)
}
