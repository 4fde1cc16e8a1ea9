// Package rules is the authoritative Ludo rules engine.
// Every operation works on a clone of the session it receives and returns the
// new session with the events it produced, or a typed error and nothing else.
package rules

import (
	"fmt"
	"time"

	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"
)

// FollowUp asks the caller to schedule a timer-driven command.
type FollowUp int

const (
	FollowUpNone FollowUp = iota
	FollowUpDrawStarter
	FollowUpSkipTurn
)

func (f FollowUp) String() string {
	switch f {
	case FollowUpDrawStarter:
		return "draw_starter"
	case FollowUpSkipTurn:
		return "skip_turn"
	default:
		return "none"
	}
}

type Result struct {
	Session  *domain.GameSession
	Events   []event.DomainEvent
	FollowUp FollowUp
}

type Engine struct {
	topology *board.Topology
	dice     Dice
	now      func() time.Time
}

// NewEngine builds an engine. A nil topology, dice or clock falls back to the defaults.
func NewEngine(topology *board.Topology, dice Dice, now func() time.Time) *Engine {
	if topology == nil {
		topology = board.Default()
	}
	if dice == nil {
		dice = NewRandomDice()
	}
	if now == nil {
		now = time.Now
	}
	return &Engine{topology: topology, dice: dice, now: now}
}

func (e *Engine) Topology() *board.Topology {
	return e.topology
}

func (e *Engine) CreateSession(id domain.RoomID) *domain.GameSession {
	return domain.NewGameSession(id, e.now().UTC())
}

// commit stamps and checks the new session before handing it back.
// A broken invariant here is a bug in the engine, never a caller error.
func (e *Engine) commit(next *domain.GameSession, events []event.DomainEvent, followUp FollowUp) (Result, error) {
	next.UpdatedAt = e.now().UTC()
	if err := next.Validate(); err != nil {
		return Result{}, fmt.Errorf("%w: %v", errors.ErrInternal, err)
	}
	return Result{Session: next, Events: events, FollowUp: followUp}, nil
}

// unchanged is the answer of a timer that no longer matches the session.
func unchanged(s *domain.GameSession) Result {
	return Result{Session: s.Clone()}
}

// ensurePlaying applies the checks shared by every in-game command.
func ensurePlaying(s *domain.GameSession) error {
	if s.Phase == domain.PhaseFinished {
		return errors.ErrGameFinished
	}
	if s.Phase != domain.PhasePlaying {
		return errors.ErrNotPlaying
	}
	return nil
}

// advance passes the turn to the next seat and clears the die.
func advance(s *domain.GameSession, forced bool) event.DomainEvent {
	s.CurrentPlayerIndex = (s.CurrentPlayerIndex + 1) % len(s.Players)
	s.DiceValue = 0
	return event.TurnSwitched{
		Room:               s.ID,
		CurrentPlayerIndex: s.CurrentPlayerIndex,
		PlayerID:           s.Players[s.CurrentPlayerIndex].ID,
		Forced:             forced,
	}
}

func retain(s *domain.GameSession, reason event.RetainReason) event.DomainEvent {
	s.DiceValue = 0
	return event.TurnRetained{
		Room:     s.ID,
		PlayerID: s.Players[s.CurrentPlayerIndex].ID,
		Reason:   reason,
	}
}
