package event

import (
	"ludo-lab/domain"
	"ludo-lab/domain/board"
)

// Kind names a domain event on the wire and in the journal.
type Kind string

const (
	PlayerJoinedKind            Kind = "PlayerJoined"
	ColorConfirmedKind          Kind = "ColorConfirmed"
	StarterSelectionStartedKind Kind = "StarterSelectionStarted"
	GameStartedKind             Kind = "GameStarted"
	DieRolledKind               Kind = "DieRolled"
	NoLegalMoveKind             Kind = "NoLegalMove"
	DiscMovedKind               Kind = "DiscMoved"
	DiscReturnedHomeKind        Kind = "DiscReturnedHome"
	TurnSwitchedKind            Kind = "TurnSwitched"
	TurnRetainedKind            Kind = "TurnRetained"
	PlayerWonKind               Kind = "PlayerWon"
	PlayerLeftKind              Kind = "PlayerLeft"
	RoomClosedKind              Kind = "RoomClosed"
)

type DomainEvent interface {
	RoomID() domain.RoomID
	Kind() Kind
}

type PlayerJoined struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Name     string
	Color    board.Color
}

func (e PlayerJoined) RoomID() domain.RoomID { return e.Room }
func (e PlayerJoined) Kind() Kind            { return PlayerJoinedKind }

type ColorConfirmed struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Color    board.Color
}

func (e ColorConfirmed) RoomID() domain.RoomID { return e.Room }
func (e ColorConfirmed) Kind() Kind            { return ColorConfirmedKind }

type StarterSelectionStarted struct {
	Room domain.RoomID
}

func (e StarterSelectionStarted) RoomID() domain.RoomID { return e.Room }
func (e StarterSelectionStarted) Kind() Kind            { return StarterSelectionStartedKind }

type GameStarted struct {
	Room         domain.RoomID
	StarterIndex int
	PlayerID     domain.PlayerID
	Color        board.Color
}

func (e GameStarted) RoomID() domain.RoomID { return e.Room }
func (e GameStarted) Kind() Kind            { return GameStartedKind }

type DieRolled struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Color    board.Color
	Value    int
}

func (e DieRolled) RoomID() domain.RoomID { return e.Room }
func (e DieRolled) Kind() Kind            { return DieRolledKind }

// NoLegalMove announces the roll will be skipped once the grace window ends.
type NoLegalMove struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Value    int
}

func (e NoLegalMove) RoomID() domain.RoomID { return e.Room }
func (e NoLegalMove) Kind() Kind            { return NoLegalMoveKind }

type DiscMoved struct {
	Room      domain.RoomID
	Color     board.Color
	PawnIndex int
	From      domain.Position
	To        domain.Position
	Cell      board.Coord
}

func (e DiscMoved) RoomID() domain.RoomID { return e.Room }
func (e DiscMoved) Kind() Kind            { return DiscMovedKind }

type DiscReturnedHome struct {
	Room      domain.RoomID
	Color     board.Color
	PawnIndex int
	HomeSlot  int
}

func (e DiscReturnedHome) RoomID() domain.RoomID { return e.Room }
func (e DiscReturnedHome) Kind() Kind            { return DiscReturnedHomeKind }

type TurnSwitched struct {
	Room               domain.RoomID
	CurrentPlayerIndex int
	PlayerID           domain.PlayerID
	Forced             bool
}

func (e TurnSwitched) RoomID() domain.RoomID { return e.Room }
func (e TurnSwitched) Kind() Kind            { return TurnSwitchedKind }

type RetainReason string

const (
	RetainSix       RetainReason = "six"
	RetainExtraCell RetainReason = "extra_cell"
	RetainCapture   RetainReason = "capture"
)

type TurnRetained struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Reason   RetainReason
}

func (e TurnRetained) RoomID() domain.RoomID { return e.Room }
func (e TurnRetained) Kind() Kind            { return TurnRetainedKind }

type PlayerWon struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Color    board.Color
}

func (e PlayerWon) RoomID() domain.RoomID { return e.Room }
func (e PlayerWon) Kind() Kind            { return PlayerWonKind }

type PlayerLeft struct {
	Room     domain.RoomID
	PlayerID domain.PlayerID
	Color    board.Color
}

func (e PlayerLeft) RoomID() domain.RoomID { return e.Room }
func (e PlayerLeft) Kind() Kind            { return PlayerLeftKind }

type RoomClosed struct {
	Room   domain.RoomID
	Reason string
}

func (e RoomClosed) RoomID() domain.RoomID { return e.Room }
func (e RoomClosed) Kind() Kind            { return RoomClosedKind }

// Envelope carries an event to the fanout with the members it must reach.
// Seq increases by one per event within a room.
type Envelope struct {
	Seq        uint64
	Event      DomainEvent
	Recipients []domain.PlayerID
}
