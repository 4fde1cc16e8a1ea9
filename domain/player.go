// Package domain contains core concepts of the Ludo game.
// This file defines players, pawns and pawn positions.
// No runtime, network, or UI logic should be added here.
package domain

import (
	"fmt"

	"ludo-lab/domain/board"
)

type PlayerID string

// PawnState tags which variant of Position is populated.
type PawnState int

const (
	StateAtHome PawnState = iota
	StateOnTrack
	StateFinished
)

func (s PawnState) String() string {
	switch s {
	case StateAtHome:
		return "at_home"
	case StateOnTrack:
		return "on_track"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Position is AtHome{Slot}, OnTrack{Index} or Finished.
type Position struct {
	State PawnState
	Slot  int
	Index int
}

func AtHome(slot int) Position {
	return Position{State: StateAtHome, Slot: slot}
}

func OnTrack(index int) Position {
	return Position{State: StateOnTrack, Index: index}
}

func Finished() Position {
	return Position{State: StateFinished, Index: board.FinalIndex}
}

func (p Position) IsHome() bool     { return p.State == StateAtHome }
func (p Position) IsOnTrack() bool  { return p.State == StateOnTrack }
func (p Position) IsFinished() bool { return p.State == StateFinished }

func (p Position) String() string {
	switch p.State {
	case StateAtHome:
		return fmt.Sprintf("home(%d)", p.Slot)
	case StateOnTrack:
		return fmt.Sprintf("track(%d)", p.Index)
	default:
		return "finished"
	}
}

// Valid checks the position against the topology bounds.
func (p Position) Valid() bool {
	switch p.State {
	case StateAtHome:
		return p.Slot >= 0 && p.Slot < board.PawnsPerColor
	case StateOnTrack:
		return p.Index >= board.EntryIndex && p.Index <= board.FinalIndex
	case StateFinished:
		return true
	}
	return false
}

type Pawn struct {
	Color    board.Color
	Position Position
}

type Player struct {
	ID                PlayerID
	Name              string
	Color             board.Color
	HasConfirmedColor bool
	Pawns             [board.PawnsPerColor]Pawn
}

// NewPlayer seats a player with four pawns waiting in their home slots.
func NewPlayer(id PlayerID, name string, color board.Color) *Player {
	return &Player{
		ID:    id,
		Name:  name,
		Color: color,
		Pawns: freshPawns(color),
	}
}

func freshPawns(color board.Color) [board.PawnsPerColor]Pawn {
	var pawns [board.PawnsPerColor]Pawn
	for i := range pawns {
		pawns[i] = Pawn{Color: color, Position: AtHome(i)}
	}
	return pawns
}

// Recolor replaces the pawns with fresh ones of the new color. Only valid before the game starts.
func (p *Player) Recolor(color board.Color) {
	if p.Color == color {
		return
	}
	p.Color = color
	p.Pawns = freshPawns(color)
}

func (p *Player) AllFinished() bool {
	for _, pawn := range p.Pawns {
		if !pawn.Position.IsFinished() {
			return false
		}
	}
	return true
}

// FreeHomeSlot returns the lowest home slot not held by one of the player's pawns.
func (p *Player) FreeHomeSlot() int {
	var used [board.PawnsPerColor]bool
	for _, pawn := range p.Pawns {
		if pawn.Position.IsHome() {
			used[pawn.Position.Slot] = true
		}
	}
	for slot, taken := range used {
		if !taken {
			return slot
		}
	}
	return -1
}
