package workers

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
	"ludo-lab/errors"
	"ludo-lab/mocks"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type roomFixture struct {
	worker *RoomWorker
	events chan event.Envelope
}

func startRoom(t *testing.T, engine contract.IRulesEngine, scheduler contract.IScheduler, policy FollowUpPolicy) *roomFixture {
	t.Helper()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	events := make(chan event.Envelope, 100)
	f := &roomFixture{events: events}
	dispatch := func(ctx context.Context, cmd domain.Command) {
		_, _ = f.worker.Submit(ctx, cmd)
	}
	f.worker = NewRoomWorker(log, engine.CreateSession("321"), engine, scheduler, dispatch, policy, events, nil, 10)

	ctx, cancel := context.WithCancel(context.Background())
	go func() { _ = f.worker.Run(ctx) }()
	t.Cleanup(cancel)
	return f
}

func (f *roomFixture) drain() []event.Envelope {
	var out []event.Envelope
	for {
		select {
		case env := <-f.events:
			out = append(out, env)
		default:
			return out
		}
	}
}

func seatTwoPlayers(t *testing.T, f *roomFixture) contract.Reply {
	t.Helper()
	ctx := context.Background()
	for _, cmd := range []domain.Command{
		domain.JoinCommand{Room: "321", PlayerID: "ann", Name: "Ann"},
		domain.JoinCommand{Room: "321", PlayerID: "bea", Name: "Bea"},
		domain.ConfirmColorCommand{Room: "321", PlayerID: "ann", Color: board.Orange},
		domain.ConfirmColorCommand{Room: "321", PlayerID: "bea", Color: board.Green},
	} {
		_, err := f.worker.Submit(ctx, cmd)
		require.NoError(t, err)
	}
	reply, err := f.worker.Submit(ctx, domain.StartCommand{Room: "321", RequesterID: "ann"})
	require.NoError(t, err)
	return reply
}

func TestRoomWorker_AppliesCommandsInOrder(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scheduler := mocks.NewMockIScheduler(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(7), nil)
	f := startRoom(t, engine, scheduler, FollowUpPolicy{})

	// When two players sit down and start with no suspense delay
	reply := seatTwoPlayers(t, f)

	// Then the starter is drawn within the same turn
	req.Equal(domain.PhasePlaying, reply.Session.Phase)
	req.Len(reply.Events, 2)
	req.Equal(event.StarterSelectionStartedKind, reply.Events[0].Kind())
	req.Equal(event.GameStartedKind, reply.Events[1].Kind())

	// And every event reached the fanout channel in order, numbered per room
	envelopes := f.drain()
	req.Len(envelopes, 6)
	for i, env := range envelopes {
		req.Equal(uint64(i+1), env.Seq)
		if i > 0 {
			req.ElementsMatch([]domain.PlayerID{"ann", "bea"}, env.Recipients)
		}
	}
	req.Equal(event.PlayerJoinedKind, envelopes[0].Event.Kind())
	req.Equal([]domain.PlayerID{"ann"}, envelopes[0].Recipients)
	req.Equal(event.GameStartedKind, envelopes[5].Event.Kind())
}

func TestRoomWorker_FailedCommandPublishesNothing(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(7), nil)
	f := startRoom(t, engine, mocks.NewMockIScheduler(ctrl), FollowUpPolicy{})

	_, err := f.worker.Submit(context.Background(), domain.StartCommand{Room: "321", RequesterID: "ghost"})

	req.ErrorIs(err, errors.ErrPlayerNotFound)
	req.Empty(f.drain())
	snapshot, err := f.worker.Submit(context.Background(), domain.SnapshotCommand{Room: "321"})
	req.NoError(err)
	req.Equal(domain.PhaseWaiting, snapshot.Session.Phase)
}

func TestRoomWorker_SchedulesSkipTurn(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scheduler := mocks.NewMockIScheduler(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(7), nil)
	f := startRoom(t, engine, scheduler, FollowUpPolicy{NoMoveGrace: 2 * time.Second})
	started := seatTwoPlayers(t, f)
	current, _ := started.Session.CurrentPlayer()

	// Given the grace timer is captured instead of armed
	var fire func()
	scheduler.EXPECT().
		Schedule(domain.RoomID("321"), contract.TimerSkipTurn, 2*time.Second, gomock.Any()).
		Do(func(_ domain.RoomID, _ contract.TimerKind, _ time.Duration, fn func()) { fire = fn }).
		Times(1)

	// When the current player rolls a 3 with every pawn at home
	three := 3
	rolled, err := f.worker.Submit(context.Background(), domain.RollDieCommand{Room: "321", PlayerID: current.ID, Forced: &three})
	req.NoError(err)
	req.Equal([]event.Kind{event.DieRolledKind, event.NoLegalMoveKind}, kinds(rolled.Events))
	req.Equal(started.Session.CurrentPlayerIndex, rolled.Session.CurrentPlayerIndex)
	req.NotNil(fire)

	// And the grace window elapses
	fire()

	// Then the turn moved on without any move
	snapshot, err := f.worker.Submit(context.Background(), domain.SnapshotCommand{Room: "321"})
	req.NoError(err)
	req.Equal((started.Session.CurrentPlayerIndex+1)%2, snapshot.Session.CurrentPlayerIndex)
	req.Zero(snapshot.Session.DiceValue)
}

func TestRoomWorker_StaleSkipTurnKeepsLaterTurn(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scheduler := mocks.NewMockIScheduler(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(7), nil)
	f := startRoom(t, engine, scheduler, FollowUpPolicy{NoMoveGrace: 2 * time.Second})
	started := seatTwoPlayers(t, f)
	ctx := context.Background()
	first, _ := started.Session.CurrentPlayer()
	second := started.Session.Players[(started.Session.CurrentPlayerIndex+1)%2]

	var fire func()
	scheduler.EXPECT().
		Schedule(domain.RoomID("321"), contract.TimerSkipTurn, 2*time.Second, gomock.Any()).
		Do(func(_ domain.RoomID, _ contract.TimerKind, _ time.Duration, fn func()) { fire = fn }).
		Times(1)

	submit := func(cmd domain.Command) contract.Reply {
		reply, err := f.worker.Submit(ctx, cmd)
		req.NoError(err)
		return reply
	}
	three, six := 3, 6

	// Given the first player was stranded on a 3 and both players passed
	submit(domain.RollDieCommand{Room: "321", PlayerID: first.ID, Forced: &three})
	submit(domain.SwitchTurnCommand{Room: "321", RequesterID: first.ID})
	submit(domain.SwitchTurnCommand{Room: "321", RequesterID: second.ID})

	// When the first player gets a pawn out and rolls a legal 3 within the grace window
	submit(domain.RollDieCommand{Room: "321", PlayerID: first.ID, Forced: &six})
	submit(domain.MoveDiscCommand{Room: "321", Color: first.Color, PawnIndex: 0, RequesterID: first.ID})
	rolled := submit(domain.RollDieCommand{Room: "321", PlayerID: first.ID, Forced: &three})
	req.Equal([]event.Kind{event.DieRolledKind}, kinds(rolled.Events))

	// And the timer of the earlier roll fires
	req.NotNil(fire)
	fire()

	// Then the pending move is still theirs to play
	snapshot := submit(domain.SnapshotCommand{Room: "321"})
	req.Equal(started.Session.CurrentPlayerIndex, snapshot.Session.CurrentPlayerIndex)
	req.Equal(3, snapshot.Session.DiceValue)
}

func TestRoomWorker_ClosesWhenEmpty(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	scheduler := mocks.NewMockIScheduler(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(7), nil)
	f := startRoom(t, engine, scheduler, FollowUpPolicy{})
	ctx := context.Background()

	_, err := f.worker.Submit(ctx, domain.JoinCommand{Room: "321", PlayerID: "ann"})
	req.NoError(err)

	// Given timers of the room are cancelled on close
	scheduler.EXPECT().CancelRoom(domain.RoomID("321")).Times(1)

	// When the last player leaves
	reply, err := f.worker.Submit(ctx, domain.LeaveCommand{Room: "321", PlayerID: "ann"})

	// Then the room is closed and says so
	req.NoError(err)
	req.True(reply.Closed)
	envelopes := f.drain()
	req.Equal(event.RoomClosedKind, envelopes[len(envelopes)-1].Event.Kind())

	_, err = f.worker.Submit(ctx, domain.SnapshotCommand{Room: "321"})
	req.ErrorIs(err, errors.ErrRoomClosed)
}

func TestRoomWorker_PanicRepliesInternalAndKeepsSession(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	engine := mocks.NewMockIRulesEngine(ctrl)
	session := domain.NewGameSession("321", time.Now())

	engine.EXPECT().CreateSession(domain.RoomID("321")).Return(session)
	gomock.InOrder(
		engine.EXPECT().Apply(gomock.Any(), gomock.Any()).DoAndReturn(
			func(*domain.GameSession, domain.Command) (rules.Result, error) { panic("boom") }),
		engine.EXPECT().Apply(gomock.Any(), gomock.Any()).Return(rules.Result{}, errors.ErrSessionFull),
	)

	events := make(chan event.Envelope, 10)
	worker := NewRoomWorker(log, engine.CreateSession("321"), engine, mocks.NewMockIScheduler(ctrl), nil, FollowUpPolicy{}, events, nil, 10)
	sup := NewSupervisor(log, nil, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sup.Add(worker).Run(ctx)

	// When the engine panics
	_, err := worker.Submit(ctx, domain.JoinCommand{Room: "321", PlayerID: "ann"})
	req.ErrorIs(err, errors.ErrInternal)

	// Then the restarted worker answers again from the last committed session
	_, err = worker.Submit(ctx, domain.JoinCommand{Room: "321", PlayerID: "ann"})
	req.ErrorIs(err, errors.ErrSessionFull)
	snapshot, err := worker.Submit(ctx, domain.SnapshotCommand{Room: "321"})
	req.NoError(err)
	req.Equal(session, snapshot.Session)
}

func kinds(events []event.DomainEvent) []event.Kind {
	out := make([]event.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind())
	}
	return out
}
