package domain

import (
	"fmt"
	"time"

	"ludo-lab/domain/board"
)

// RoomID is the short numeric lobby code shared between players.
type RoomID string

type Phase string

const (
	PhaseWaiting          Phase = "waiting"
	PhaseSelectingStarter Phase = "selecting_starter"
	PhasePlaying          Phase = "playing"
	PhaseFinished         Phase = "finished"
)

const MaxPlayers = 4

// GameSession is the authoritative state of one room.
// It is plain data: only the rules engine mutates it, and always on a clone.
type GameSession struct {
	ID                 RoomID
	Players            []*Player
	CurrentPlayerIndex int
	DiceValue          int
	Rolls              int // dice rolled so far, identifies the pending roll
	Phase              Phase
	Locked             bool
	Winner             board.Color
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func NewGameSession(id RoomID, now time.Time) *GameSession {
	return &GameSession{
		ID:        id,
		Phase:     PhaseWaiting,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a deep copy.
func (s *GameSession) Clone() *GameSession {
	if s == nil {
		return nil
	}
	out := *s
	if s.Players == nil {
		return &out
	}
	out.Players = make([]*Player, len(s.Players))
	for i, p := range s.Players {
		cp := *p
		out.Players[i] = &cp
	}
	return &out
}

func (s *GameSession) IsEmpty() bool {
	return len(s.Players) == 0
}

func (s *GameSession) CurrentPlayer() (*Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return nil, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}

func (s *GameSession) PlayerByID(id PlayerID) (*Player, int, bool) {
	for i, p := range s.Players {
		if p.ID == id {
			return p, i, true
		}
	}
	return nil, -1, false
}

func (s *GameSession) PlayerByColor(color board.Color) (*Player, int, bool) {
	for i, p := range s.Players {
		if p.Color == color {
			return p, i, true
		}
	}
	return nil, -1, false
}

// ColorHeldByOther reports whether a player other than exclude holds color.
func (s *GameSession) ColorHeldByOther(color board.Color, exclude PlayerID) bool {
	for _, p := range s.Players {
		if p.ID != exclude && p.Color == color {
			return true
		}
	}
	return false
}

// PlayerIDs returns the ids of every seated player in seat order.
func (s *GameSession) PlayerIDs() []PlayerID {
	ids := make([]PlayerID, 0, len(s.Players))
	for _, p := range s.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Validate checks the structural invariants that must hold after every command.
func (s *GameSession) Validate() error {
	if len(s.Players) > MaxPlayers {
		return fmt.Errorf("session %s has %d players", s.ID, len(s.Players))
	}
	if s.DiceValue < 0 || s.DiceValue > 6 {
		return fmt.Errorf("session %s has dice value %d", s.ID, s.DiceValue)
	}
	if len(s.Players) > 0 && (s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players)) {
		return fmt.Errorf("session %s current player index %d out of range", s.ID, s.CurrentPlayerIndex)
	}
	if s.DiceValue != 0 && s.Phase != PhasePlaying {
		return fmt.Errorf("session %s holds dice value %d in phase %s", s.ID, s.DiceValue, s.Phase)
	}
	seenID := make(map[PlayerID]struct{}, len(s.Players))
	seenColor := make(map[board.Color]struct{}, len(s.Players))
	for _, p := range s.Players {
		if _, dup := seenID[p.ID]; dup {
			return fmt.Errorf("session %s seats player %s twice", s.ID, p.ID)
		}
		seenID[p.ID] = struct{}{}
		if !p.Color.Valid() {
			return fmt.Errorf("player %s has invalid color %q", p.ID, p.Color)
		}
		if _, dup := seenColor[p.Color]; dup {
			return fmt.Errorf("color %s held by two players", p.Color)
		}
		seenColor[p.Color] = struct{}{}

		slots := make(map[int]struct{}, board.PawnsPerColor)
		for i, pawn := range p.Pawns {
			if pawn.Color != p.Color {
				return fmt.Errorf("player %s pawn %d has color %s", p.ID, i, pawn.Color)
			}
			if !pawn.Position.Valid() {
				return fmt.Errorf("player %s pawn %d has invalid position %s", p.ID, i, pawn.Position)
			}
			if pawn.Position.IsHome() {
				if _, dup := slots[pawn.Position.Slot]; dup {
					return fmt.Errorf("player %s home slot %d used twice", p.ID, pawn.Position.Slot)
				}
				slots[pawn.Position.Slot] = struct{}{}
			}
		}
	}
	if s.Phase == PhaseFinished {
		if !s.Winner.Valid() {
			return fmt.Errorf("session %s finished without a winner", s.ID)
		}
		// the winner may have left the room since
		if winner, _, ok := s.PlayerByColor(s.Winner); ok && !winner.AllFinished() {
			return fmt.Errorf("session %s winner %s still has pawns to move", s.ID, s.Winner)
		}
	}
	return nil
}
