//go:generate go run go.uber.org/mock/mockgen -source=game_service.go -destination=../mocks/mock_game_service.go -package=mocks
package services

import (
	"context"
	"log/slog"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/errors"
)

type IGameService interface {
	CreateRoom(ctx context.Context) (domain.RoomID, error)
	Join(ctx context.Context, req JoinRequest) (contract.Reply, error)
	ConfirmColor(ctx context.Context, req ConfirmColorRequest) (contract.Reply, error)
	AvailableColors(ctx context.Context, req AvailableColorsRequest) ([]board.Color, error)
	Start(ctx context.Context, req StartRequest) (contract.Reply, error)
	RollDie(ctx context.Context, req RollDieRequest) (contract.Reply, error)
	MoveDisc(ctx context.Context, req MoveDiscRequest) (contract.Reply, error)
	SwitchTurn(ctx context.Context, req SwitchTurnRequest) (contract.Reply, error)
	PlayerWon(ctx context.Context, req PlayerWonRequest) (contract.Reply, error)
	Leave(ctx context.Context, playerID domain.PlayerID) error
	Snapshot(ctx context.Context, roomID domain.RoomID) (*domain.GameSession, error)
	History(req HistoryRequest) ([]contract.JournalEntry, *string, error)
	Connect(playerID domain.PlayerID, sink contract.EventSink)
	Disconnect(ctx context.Context, playerID domain.PlayerID, sink contract.EventSink)
}

// NameSanitizer cleans a display name before it reaches a room.
type NameSanitizer interface {
	Sanitize(name string) (string, error)
}

type GameService struct {
	orchestrator contract.IOrchestrator
	names        NameSanitizer
	log          *slog.Logger
}

func NewGameService(orchestrator contract.IOrchestrator, names NameSanitizer, log *slog.Logger) *GameService {
	return &GameService{orchestrator: orchestrator, names: names, log: log}
}

func (s *GameService) CreateRoom(ctx context.Context) (domain.RoomID, error) {
	return s.orchestrator.Registry().CreateRoom(ctx)
}

func (s *GameService) Join(ctx context.Context, req JoinRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	name := req.Name
	if s.names != nil {
		clean, err := s.names.Sanitize(req.Name)
		if err != nil {
			return contract.Reply{}, err
		}
		name = clean
	}
	return s.dispatch(ctx, domain.JoinCommand{
		Room:     domain.RoomID(req.RoomID),
		PlayerID: domain.PlayerID(req.PlayerID),
		Name:     name,
		Color:    board.Color(req.Color),
	})
}

func (s *GameService) ConfirmColor(ctx context.Context, req ConfirmColorRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	return s.dispatch(ctx, domain.ConfirmColorCommand{
		Room:     domain.RoomID(req.RoomID),
		PlayerID: domain.PlayerID(req.PlayerID),
		Color:    board.Color(req.Color),
	})
}

func (s *GameService) AvailableColors(ctx context.Context, req AvailableColorsRequest) ([]board.Color, error) {
	if err := check(req); err != nil {
		return nil, err
	}
	reply, err := s.dispatch(ctx, domain.AvailableColorsCommand{
		Room:            domain.RoomID(req.RoomID),
		ExcludePlayerID: domain.PlayerID(req.ExcludePlayerID),
	})
	return reply.Colors, err
}

func (s *GameService) Start(ctx context.Context, req StartRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	return s.dispatch(ctx, domain.StartCommand{
		Room:        domain.RoomID(req.RoomID),
		RequesterID: domain.PlayerID(req.RequesterID),
	})
}

// RollDie only honours a forced value for operators.
func (s *GameService) RollDie(ctx context.Context, req RollDieRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	if req.Forced != nil && !req.Operator {
		return contract.Reply{}, errors.ErrOperatorOnly
	}
	return s.dispatch(ctx, domain.RollDieCommand{
		Room:     domain.RoomID(req.RoomID),
		PlayerID: domain.PlayerID(req.PlayerID),
		Forced:   req.Forced,
	})
}

func (s *GameService) MoveDisc(ctx context.Context, req MoveDiscRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	return s.dispatch(ctx, domain.MoveDiscCommand{
		Room:        domain.RoomID(req.RoomID),
		Color:       board.Color(req.Color),
		PawnIndex:   req.PawnIndex,
		RequesterID: domain.PlayerID(req.PlayerID),
	})
}

// SwitchTurn lets the current player end their turn. Forcing it is an operator escape hatch
// that skips the requester check.
func (s *GameService) SwitchTurn(ctx context.Context, req SwitchTurnRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	cmd := domain.SwitchTurnCommand{Room: domain.RoomID(req.RoomID), RequesterID: domain.PlayerID(req.RequesterID)}
	if req.Force {
		if !req.Operator {
			return contract.Reply{}, errors.ErrOperatorOnly
		}
		cmd.Force = true
		cmd.RequesterID = ""
	}
	return s.dispatch(ctx, cmd)
}

func (s *GameService) PlayerWon(ctx context.Context, req PlayerWonRequest) (contract.Reply, error) {
	if err := check(req); err != nil {
		return contract.Reply{}, err
	}
	return s.dispatch(ctx, domain.PlayerWonCommand{Room: domain.RoomID(req.RoomID), Color: board.Color(req.Color)})
}

func (s *GameService) Leave(ctx context.Context, playerID domain.PlayerID) error {
	return s.orchestrator.Registry().RemovePlayer(ctx, playerID)
}

func (s *GameService) Snapshot(ctx context.Context, roomID domain.RoomID) (*domain.GameSession, error) {
	if err := check(HistoryRequest{RoomID: string(roomID)}); err != nil {
		return nil, err
	}
	return s.orchestrator.Registry().Snapshot(ctx, roomID)
}

func (s *GameService) History(req HistoryRequest) ([]contract.JournalEntry, *string, error) {
	if err := check(req); err != nil {
		return nil, nil, err
	}
	return s.orchestrator.History(domain.RoomID(req.RoomID), req.Cursor)
}

// Connect attaches the stream sink of a player so room events reach them.
func (s *GameService) Connect(playerID domain.PlayerID, sink contract.EventSink) {
	s.orchestrator.Directory().Subscribe(playerID, sink)
	s.log.Debug("Player connected", "player", playerID)
}

// Disconnect detaches the sink and unseats the player, which may close their room.
// A player who already reconnected on another stream keeps their seat.
func (s *GameService) Disconnect(ctx context.Context, playerID domain.PlayerID, sink contract.EventSink) {
	if !s.orchestrator.Directory().Unsubscribe(playerID, sink) {
		s.log.Debug("Stale connection closed, player still connected", "player", playerID)
		return
	}
	err := s.orchestrator.Registry().RemovePlayer(ctx, playerID)
	if err != nil && !errors.Is(err, errors.ErrPlayerNotFound) {
		s.log.Warn("Unable to remove disconnected player", "player", playerID, "error", err)
	}
	s.log.Debug("Player disconnected", "player", playerID)
}

func (s *GameService) dispatch(ctx context.Context, cmd domain.Command) (contract.Reply, error) {
	return s.orchestrator.Registry().Dispatch(ctx, cmd)
}
