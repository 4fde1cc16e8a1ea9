package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ludo-lab/auth"
	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/errors"
	"ludo-lab/observability"
	"ludo-lab/services"
	"ludo-lab/sink"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// OperatorKeyHeader grants the operator role on Connect when it matches the configured key.
const OperatorKeyHeader = "x-operator-key"

// StatsProvider exposes the latest telemetry snapshot.
type StatsProvider interface {
	GetLatest() observability.Stats
}

type LudoServer struct {
	log                  *slog.Logger
	game                 services.IGameService
	tokens               *auth.TokenManager
	stats                StatsProvider
	connectionBufferSize int
	operatorKey          string
	disconnectTimeout    time.Duration
}

func NewLudoServer(log *slog.Logger, game services.IGameService, tokens *auth.TokenManager,
	stats StatsProvider, connectionBufferSize int, operatorKey string) *LudoServer {
	return &LudoServer{
		log:                  log,
		game:                 game,
		tokens:               tokens,
		stats:                stats,
		connectionBufferSize: connectionBufferSize,
		operatorKey:          operatorKey,
		disconnectTimeout:    5 * time.Second,
	}
}

// PublicMethods are reachable without a token.
func PublicMethods() []string {
	return []string{FullMethod("CreateRoom")}
}

func (s *LudoServer) CreateRoom(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	roomID, err := s.game.CreateRoom(ctx)
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toStruct(map[string]any{"roomId": string(roomID)})
}

func (s *LudoServer) Join(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	reply, err := s.game.Join(ctx, services.JoinRequest{
		RoomID:   stringField(in, "roomId"),
		PlayerID: caller(ctx),
		Name:     stringField(in, "name"),
		Color:    stringField(in, "color"),
	})
	return respond(reply, err)
}

func (s *LudoServer) ConfirmColor(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	reply, err := s.game.ConfirmColor(ctx, services.ConfirmColorRequest{
		RoomID:   stringField(in, "roomId"),
		PlayerID: caller(ctx),
		Color:    stringField(in, "color"),
	})
	return respond(reply, err)
}

func (s *LudoServer) AvailableColors(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	colors, err := s.game.AvailableColors(ctx, services.AvailableColorsRequest{
		RoomID:          stringField(in, "roomId"),
		ExcludePlayerID: caller(ctx),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toStruct(map[string]any{"colors": colorsList(colors)})
}

func (s *LudoServer) Start(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	reply, err := s.game.Start(ctx, services.StartRequest{
		RoomID:      stringField(in, "roomId"),
		RequesterID: caller(ctx),
	})
	return respond(reply, err)
}

func (s *LudoServer) RollDie(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	forced, ok, err := intField(in, "forced")
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	request := services.RollDieRequest{
		RoomID:   stringField(in, "roomId"),
		PlayerID: caller(ctx),
		Operator: auth.HasRole(ctx, auth.RoleOperator),
	}
	if ok {
		request.Forced = &forced
	}
	reply, err := s.game.RollDie(ctx, request)
	return respond(reply, err)
}

func (s *LudoServer) MoveDisc(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	pawnIndex, ok, err := intField(in, "pawnIndex")
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	if !ok {
		return nil, errors.MapToGRPCError(errors.Invalid("pawnIndex is required"))
	}
	reply, err := s.game.MoveDisc(ctx, services.MoveDiscRequest{
		RoomID:    stringField(in, "roomId"),
		PlayerID:  caller(ctx),
		Color:     stringField(in, "color"),
		PawnIndex: pawnIndex,
	})
	return respond(reply, err)
}

func (s *LudoServer) SwitchTurn(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	reply, err := s.game.SwitchTurn(ctx, services.SwitchTurnRequest{
		RoomID:      stringField(in, "roomId"),
		RequesterID: caller(ctx),
		Force:       boolField(in, "force"),
		Operator:    auth.HasRole(ctx, auth.RoleOperator),
	})
	return respond(reply, err)
}

func (s *LudoServer) PlayerWon(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	reply, err := s.game.PlayerWon(ctx, services.PlayerWonRequest{
		RoomID: stringField(in, "roomId"),
		Color:  stringField(in, "color"),
	})
	return respond(reply, err)
}

func (s *LudoServer) Leave(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if err := s.game.Leave(ctx, domain.PlayerID(caller(ctx))); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toStruct(map[string]any{"left": true})
}

func (s *LudoServer) Snapshot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	session, err := s.game.Snapshot(ctx, domain.RoomID(stringField(in, "roomId")))
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return toStruct(map[string]any{"session": sessionMap(session)})
}

func (s *LudoServer) History(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	entries, cursor, err := s.game.History(services.HistoryRequest{
		RoomID: stringField(in, "roomId"),
		Cursor: optionalString(in, "cursor"),
	})
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	out := map[string]any{"entries": journalList(entries)}
	if cursor != nil {
		out["cursor"] = *cursor
	}
	return toStruct(out)
}

// Stats is reserved to operators.
func (s *LudoServer) Stats(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	if !auth.HasRole(ctx, auth.RoleOperator) {
		return nil, errors.MapToGRPCError(errors.ErrOperatorOnly)
	}
	if s.stats == nil {
		return nil, status.Error(codes.Unavailable, "telemetry is disabled")
	}
	raw, err := json.Marshal(s.stats.GetLatest())
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	out := &structpb.Struct{}
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return out, nil
}

// Connect establishes the long-lived stream a player receives its room events on.
// A caller presenting a valid token keeps its identity, otherwise a fresh player id is assigned.
// The first message carries the player id and the token to use on every unary call.
// When the stream ends the player is unseated from its room.
func (s *LudoServer) Connect(_ *structpb.Struct, stream grpc.ServerStream) error {
	ctx := stream.Context()
	playerID, roles := s.identify(ctx)
	token, err := s.tokens.GenerateToken(playerID, roles)
	if err != nil {
		s.log.Error("Unable to sign connection token", "player", playerID, "error", err)
		return errors.MapToGRPCError(errors.ErrInternal)
	}

	connection := sink.NewConnectionSink(s.connectionBufferSize)
	defer connection.Close()
	s.game.Connect(domain.PlayerID(playerID), connection)
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), s.disconnectTimeout)
		defer cancel()
		s.game.Disconnect(disconnectCtx, domain.PlayerID(playerID), connection)
	}()

	hello, err := toStruct(map[string]any{
		"kind":     "connected",
		"playerId": playerID,
		"token":    token,
		"roles":    lo.ToAnySlice(roles),
	})
	if err != nil {
		return errors.MapToGRPCError(err)
	}
	if err := stream.SendMsg(hello); err != nil {
		return err
	}
	s.log.Info("Player connected", "player", playerID, "roles", roles)

	for {
		select {
		case <-ctx.Done():
			s.log.Info("Player disconnected", "player", playerID)
			return nil
		case env, ok := <-connection.Events():
			if !ok {
				return nil
			}
			msg, err := envelopeStruct(env)
			if err != nil {
				s.log.Error("Unable to encode envelope", "player", playerID, "seq", env.Seq, "error", err)
				continue
			}
			if err := stream.SendMsg(msg); err != nil {
				s.log.Error("Failed to push event to stream", "player", playerID, "room", env.Event.RoomID(), "error", err)
				return err
			}
		}
	}
}

func (s *LudoServer) identify(ctx context.Context) (string, []string) {
	if claims, err := s.tokens.FromMetadata(ctx); err == nil {
		return claims.PlayerID, claims.Roles
	}
	roles := []string{auth.RolePlayer}
	if s.operatorKey != "" {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if keys := md.Get(OperatorKeyHeader); len(keys) > 0 && keys[0] == s.operatorKey {
				roles = append(roles, auth.RoleOperator)
			}
		}
	}
	return uuid.NewString(), roles
}

func caller(ctx context.Context) string {
	id, _ := auth.PlayerIDFromContext(ctx)
	return id
}

func respond(reply contract.Reply, err error) (*structpb.Struct, error) {
	if err != nil {
		return nil, errors.MapToGRPCError(err)
	}
	return replyStruct(reply)
}
