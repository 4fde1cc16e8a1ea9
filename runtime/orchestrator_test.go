package runtime_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
	"ludo-lab/mocks"
	"ludo-lab/runtime"
	"ludo-lab/runtime/workers"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type RecordingSink struct {
	mu        sync.Mutex
	envelopes []event.Envelope
}

func (s *RecordingSink) Consume(_ context.Context, env event.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, env)
	return nil
}

func (s *RecordingSink) Kinds() []event.Kind {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]event.Kind, 0, len(s.envelopes))
	for _, env := range s.envelopes {
		out = append(out, env.Event.Kind())
	}
	return out
}

func testConfig() runtime.Config {
	return runtime.Config{
		BufferSize:           100,
		InboxSize:            16,
		SinkTimeout:          time.Second,
		RestartInterval:      10 * time.Millisecond,
		Policy:               workers.FollowUpPolicy{},
		RoomIdleTTL:          time.Hour,
		JanitorInterval:      time.Minute,
		MetricInterval:       time.Minute,
		LatencyThreshold:     time.Second,
		LowCapacityThreshold: 10,
	}
}

func Test_Orchestrator_delivers_room_events_to_sinks(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockIJournalRepository(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(3), nil)

	// Given every event is journaled
	journal.EXPECT().Append(gomock.Any()).Return(nil).AnyTimes()

	orchestrator := runtime.NewOrchestrator(log, engine, journal, testConfig())
	recording := &RecordingSink{}
	orchestrator.Add(recording)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req.NoError(orchestrator.Start(ctx))
	defer orchestrator.Stop()

	// Given ann is connected
	ann := &RecordingSink{}
	orchestrator.Directory().Subscribe("ann", ann)

	// When ann creates and joins a room
	registry := orchestrator.Registry()
	roomID, err := registry.CreateRoom(ctx)
	req.NoError(err)
	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: "ann", Name: "Ann"})
	req.NoError(err)
	_, err = registry.Dispatch(ctx, domain.JoinCommand{Room: roomID, PlayerID: "bea", Name: "Bea"})
	req.NoError(err)

	// Then both the permanent sink and ann's connection got the events in order
	expected := []event.Kind{event.PlayerJoinedKind, event.PlayerJoinedKind}
	req.Eventually(func() bool { return len(recording.Kinds()) == 2 }, time.Second, 5*time.Millisecond)
	req.Eventually(func() bool { return len(ann.Kinds()) == 2 }, time.Second, 5*time.Millisecond)
	req.Equal(expected, recording.Kinds())
	req.Equal(expected, ann.Kinds())
}

func Test_Orchestrator_history_reads_the_journal(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	ctrl := gomock.NewController(t)
	journal := mocks.NewMockIJournalRepository(ctrl)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(3), nil)
	orchestrator := runtime.NewOrchestrator(log, engine, journal, testConfig())

	entries := []contract.JournalEntry{{ID: "1", Room: "321", Seq: 1, Kind: event.PlayerJoinedKind}}
	journal.EXPECT().History(domain.RoomID("321"), nil).Return(entries, nil, nil)

	got, cursor, err := orchestrator.History("321", nil)

	req.NoError(err)
	req.Nil(cursor)
	req.Equal(entries, got)
}

func Test_Orchestrator_without_journal(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(3), nil)
	orchestrator := runtime.NewOrchestrator(log, engine, nil, testConfig())

	got, cursor, err := orchestrator.History("321", nil)

	req.NoError(err)
	req.Nil(cursor)
	req.Empty(got)
}
