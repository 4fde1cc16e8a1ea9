package server_test

import (
	"context"
	"log/slog"
	"net"
	"testing"
	"time"

	"ludo-lab/auth"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/domain/rules"
	"ludo-lab/infrastructure/grpc/client"
	"ludo-lab/infrastructure/grpc/server"
	"ludo-lab/infrastructure/storage"
	"ludo-lab/runtime"
	"ludo-lab/runtime/workers"
	"ludo-lab/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

const operatorKey = "let-me-in"

type LudoServerSuite struct {
	suite.Suite
	listener     *bufconn.Listener
	grpcServer   *grpc.Server
	orchestrator *runtime.Orchestrator
	db           *badger.DB
	cancel       context.CancelFunc
	conns        []*grpc.ClientConn
}

func TestLudoServerSuite(t *testing.T) {
	suite.Run(t, new(LudoServerSuite))
}

func (s *LudoServerSuite) SetupTest() {
	req := s.Require()
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	db, err := badger.Open(badger.DefaultOptions("").WithInMemory(true).WithLogger(nil))
	req.NoError(err)
	s.db = db

	engine := rules.NewEngine(board.Default(), rules.NewSeededDice(11), nil)
	s.orchestrator = runtime.NewOrchestrator(log, engine, storage.NewJournalRepository(db, log, nil), runtime.Config{
		BufferSize:           100,
		InboxSize:            16,
		SinkTimeout:          time.Second,
		RestartInterval:      10 * time.Millisecond,
		Policy:               workers.FollowUpPolicy{},
		RoomIdleTTL:          time.Hour,
		JanitorInterval:      time.Minute,
		MetricInterval:       20 * time.Millisecond,
		LatencyThreshold:     time.Second,
		LowCapacityThreshold: 10,
	})
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	req.NoError(s.orchestrator.Start(ctx))

	tokens := auth.NewTokenManager("secret", time.Hour)
	game := services.NewGameService(s.orchestrator, nil, log)
	ludo := server.NewLudoServer(log, game, tokens, s.orchestrator.Monitor(), 16, operatorKey)

	s.listener = bufconn.Listen(1024 * 1024)
	s.grpcServer = grpc.NewServer(grpc.UnaryInterceptor(tokens.UnaryInterceptor(server.PublicMethods()...)))
	server.RegisterLudoServiceServer(s.grpcServer, ludo)
	go func() { _ = s.grpcServer.Serve(s.listener) }()
}

func (s *LudoServerSuite) TearDownTest() {
	for _, conn := range s.conns {
		_ = conn.Close()
	}
	s.conns = nil
	s.grpcServer.Stop()
	s.orchestrator.Stop()
	s.cancel()
	_ = s.db.Close()
}

func (s *LudoServerSuite) newClient() *client.LudoClient {
	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return s.listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	s.Require().NoError(err)
	s.conns = append(s.conns, conn)
	return client.NewLudoClient(conn)
}

// connect opens a stream whose lifetime is bound to the returned cancel.
func (s *LudoServerSuite) connect(c *client.LudoClient, key string) (*client.Stream, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	stream, err := c.Connect(ctx, key)
	s.Require().NoError(err)
	s.NotEmpty(c.PlayerID())
	return stream, cancel
}

func (s *LudoServerSuite) nextKind(stream *client.Stream) string {
	msg, err := stream.Recv()
	s.Require().NoError(err)
	kind, _ := msg["kind"].(string)
	return kind
}

// seatTwo creates a room with two confirmed players and starts it.
func (s *LudoServerSuite) seatTwo(ann, bea *client.LudoClient) (string, map[string]any) {
	req := s.Require()
	ctx := context.Background()
	roomID, err := ann.CreateRoom(ctx)
	req.NoError(err)
	req.Len(roomID, 3)

	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.NoError(err)
	_, err = bea.Join(ctx, roomID, "Bea", "")
	req.NoError(err)
	_, err = ann.ConfirmColor(ctx, roomID, string(board.Orange))
	req.NoError(err)
	_, err = bea.ConfirmColor(ctx, roomID, string(board.Green))
	req.NoError(err)
	started, err := ann.Start(ctx, roomID)
	req.NoError(err)
	return roomID, started
}

func (s *LudoServerSuite) TestProtectedMethodNeedsToken() {
	req := s.Require()
	ctx := context.Background()
	anonymous := s.newClient()

	// Given a caller that never connected
	roomID, err := anonymous.CreateRoom(ctx)
	req.NoError(err)

	// When it joins without any token
	in, err := structpb.NewStruct(map[string]any{"roomId": roomID})
	req.NoError(err)
	err = s.conns[0].Invoke(ctx, server.FullMethod("Join"), in, new(structpb.Struct))

	// Then the interceptor refuses it
	req.Equal(codes.Unauthenticated, status.Code(err))
	_, err = anonymous.Join(ctx, roomID, "Eve", "")
	req.ErrorIs(err, client.ErrNotConnected)
}

func (s *LudoServerSuite) TestGameFlowReachesBothStreams() {
	req := s.Require()
	ann, bea := s.newClient(), s.newClient()
	annStream, annCancel := s.connect(ann, "")
	defer annCancel()
	beaStream, beaCancel := s.connect(bea, "")
	defer beaCancel()

	// When two players sit down and start
	roomID, started := s.seatTwo(ann, bea)

	// Then the reply carries the playing session
	session, _ := started["session"].(map[string]any)
	req.Equal("playing", session["phase"])
	req.Equal(true, session["locked"])

	// And both streams see the events in order
	req.Equal(string(event.PlayerJoinedKind), s.nextKind(annStream))
	shared := []event.Kind{event.PlayerJoinedKind, event.ColorConfirmedKind, event.ColorConfirmedKind,
		event.StarterSelectionStartedKind, event.GameStartedKind}
	for _, want := range shared {
		req.Equal(string(want), s.nextKind(annStream))
	}
	for _, want := range shared {
		req.Equal(string(want), s.nextKind(beaStream))
	}

	snapshot, err := bea.Snapshot(context.Background(), roomID)
	req.NoError(err)
	req.Len(snapshot["players"], 2)
}

func (s *LudoServerSuite) TestJoinErrorsMapToCodes() {
	req := s.Require()
	ctx := context.Background()
	ann := s.newClient()
	_, cancel := s.connect(ann, "")
	defer cancel()

	_, err := ann.Join(ctx, "999", "Ann", "")
	req.Equal(codes.NotFound, status.Code(err))

	_, err = ann.Join(ctx, "12", "Ann", "")
	req.Equal(codes.InvalidArgument, status.Code(err))

	roomID, err := ann.CreateRoom(ctx)
	req.NoError(err)
	_, err = ann.Join(ctx, roomID, "Ann", "purple")
	req.Equal(codes.InvalidArgument, status.Code(err))
	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.NoError(err)
	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.Equal(codes.AlreadyExists, status.Code(err))
}

func (s *LudoServerSuite) TestForcedSwitchNeedsOperator() {
	req := s.Require()
	ctx := context.Background()
	ann, bea, operator := s.newClient(), s.newClient(), s.newClient()
	_, annCancel := s.connect(ann, "")
	defer annCancel()
	_, beaCancel := s.connect(bea, "")
	defer beaCancel()
	_, opCancel := s.connect(operator, operatorKey)
	defer opCancel()
	roomID, started := s.seatTwo(ann, bea)
	before := started["session"].(map[string]any)["currentPlayerIndex"].(float64)

	// When a player forces the turn
	_, err := ann.SwitchTurn(ctx, roomID, true)
	req.Equal(codes.PermissionDenied, status.Code(err))

	// And a player asks a forced roll
	six := 6
	_, err = ann.RollDie(ctx, roomID, &six)
	req.Equal(codes.PermissionDenied, status.Code(err))

	// Then only the operator gets the turn moved
	switched, err := operator.SwitchTurn(ctx, roomID, true)
	req.NoError(err)
	after := switched["session"].(map[string]any)["currentPlayerIndex"].(float64)
	req.NotEqual(before, after)
}

func (s *LudoServerSuite) TestDisconnectUnseatsPlayer() {
	req := s.Require()
	ctx := context.Background()
	ann, bea := s.newClient(), s.newClient()
	annStream, annCancel := s.connect(ann, "")
	defer annCancel()
	_, beaCancel := s.connect(bea, "")

	roomID, err := ann.CreateRoom(ctx)
	req.NoError(err)
	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.NoError(err)
	_, err = bea.Join(ctx, roomID, "Bea", "")
	req.NoError(err)
	req.Equal(string(event.PlayerJoinedKind), s.nextKind(annStream))
	req.Equal(string(event.PlayerJoinedKind), s.nextKind(annStream))

	// When bea drops the stream
	beaCancel()

	// Then ann learns bea left and the room keeps one player
	req.Equal(string(event.PlayerLeftKind), s.nextKind(annStream))
	snapshot, err := ann.Snapshot(ctx, roomID)
	req.NoError(err)
	req.Len(snapshot["players"], 1)
}

func (s *LudoServerSuite) TestReconnectKeepsSeat() {
	req := s.Require()
	ctx := context.Background()
	ann, bea := s.newClient(), s.newClient()
	annStream, annCancel := s.connect(ann, "")
	defer annCancel()
	_, firstCancel := s.connect(bea, "")

	roomID, err := ann.CreateRoom(ctx)
	req.NoError(err)
	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.NoError(err)
	_, err = bea.Join(ctx, roomID, "Bea", "")
	req.NoError(err)
	req.Equal(string(event.PlayerJoinedKind), s.nextKind(annStream))
	req.Equal(string(event.PlayerJoinedKind), s.nextKind(annStream))

	// Given bea reconnects with the same token before the first stream is gone
	beaID := bea.PlayerID()
	secondStream, secondCancel := s.connect(bea, "")
	defer secondCancel()
	req.Equal(beaID, bea.PlayerID())

	// When the first stream ends
	firstCancel()
	time.Sleep(200 * time.Millisecond)

	// Then bea is still seated and events reach the new stream
	snapshot, err := ann.Snapshot(ctx, roomID)
	req.NoError(err)
	req.Len(snapshot["players"], 2)
	_, err = ann.ConfirmColor(ctx, roomID, string(board.Orange))
	req.NoError(err)
	req.Equal(string(event.ColorConfirmedKind), s.nextKind(secondStream))
}

func (s *LudoServerSuite) TestHistoryAndStats() {
	req := s.Require()
	ctx := context.Background()
	ann, operator := s.newClient(), s.newClient()
	_, annCancel := s.connect(ann, "")
	defer annCancel()
	_, opCancel := s.connect(operator, operatorKey)
	defer opCancel()

	roomID, err := ann.CreateRoom(ctx)
	req.NoError(err)
	_, err = ann.Join(ctx, roomID, "Ann", "")
	req.NoError(err)

	// Then the join is journaled
	req.Eventually(func() bool {
		history, err := ann.History(ctx, roomID, "")
		if err != nil {
			return false
		}
		entries, _ := history["entries"].([]any)
		return len(entries) == 1
	}, time.Second, 10*time.Millisecond)

	// And stats are reserved to operators
	_, err = ann.Stats(ctx)
	req.Equal(codes.PermissionDenied, status.Code(err))
	req.Eventually(func() bool {
		stats, err := operator.Stats(ctx)
		return err == nil && stats["rooms"] == float64(1)
	}, time.Second, 10*time.Millisecond)
}
