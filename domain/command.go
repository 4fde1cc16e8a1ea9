package domain

import (
	"ludo-lab/domain/board"
)

// Command is routed by the registry to the worker owning RoomID.
type Command interface {
	RoomID() RoomID
}

type JoinCommand struct {
	Room     RoomID
	PlayerID PlayerID
	Name     string
	Color    board.Color // empty means first unused color
}

func (c JoinCommand) RoomID() RoomID { return c.Room }

type ConfirmColorCommand struct {
	Room     RoomID
	PlayerID PlayerID
	Color    board.Color
}

func (c ConfirmColorCommand) RoomID() RoomID { return c.Room }

type AvailableColorsCommand struct {
	Room            RoomID
	ExcludePlayerID PlayerID
}

func (c AvailableColorsCommand) RoomID() RoomID { return c.Room }

type StartCommand struct {
	Room        RoomID
	RequesterID PlayerID
}

func (c StartCommand) RoomID() RoomID { return c.Room }

type RollDieCommand struct {
	Room     RoomID
	PlayerID PlayerID
	Forced   *int
}

func (c RollDieCommand) RoomID() RoomID { return c.Room }

// MoveDiscCommand moves a pawn of the current color. RequesterID, when set,
// must be the current player.
type MoveDiscCommand struct {
	Room        RoomID
	Color       board.Color
	PawnIndex   int
	RequesterID PlayerID
}

func (c MoveDiscCommand) RoomID() RoomID { return c.Room }

type SwitchTurnCommand struct {
	Room        RoomID
	Force       bool
	RequesterID PlayerID
}

func (c SwitchTurnCommand) RoomID() RoomID { return c.Room }

type PlayerWonCommand struct {
	Room  RoomID
	Color board.Color
}

func (c PlayerWonCommand) RoomID() RoomID { return c.Room }

type LeaveCommand struct {
	Room     RoomID
	PlayerID PlayerID
}

func (c LeaveCommand) RoomID() RoomID { return c.Room }

// DrawStarterCommand is fired by the scheduler once the suspense delay elapsed.
type DrawStarterCommand struct {
	Room RoomID
}

func (c DrawStarterCommand) RoomID() RoomID { return c.Room }

// SkipTurnCommand is fired by the scheduler when a roll left no legal move.
// It only applies while the roll it was scheduled for is still pending.
type SkipTurnCommand struct {
	Room        RoomID
	PlayerIndex int
	DiceValue   int
	Roll        int
}

func (c SkipTurnCommand) RoomID() RoomID { return c.Room }

// SnapshotCommand reads a copy of the session through the worker.
type SnapshotCommand struct {
	Room RoomID
}

func (c SnapshotCommand) RoomID() RoomID { return c.Room }
