package rules

import (
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"
)

// RollDie sets the pending die value. When the roller has no legal move the
// caller is asked to skip the turn after the grace window.
func (e *Engine) RollDie(s *domain.GameSession, cmd domain.RollDieCommand) (Result, error) {
	if err := ensurePlaying(s); err != nil {
		return Result{}, err
	}
	current, ok := s.CurrentPlayer()
	if !ok || current.ID != cmd.PlayerID {
		return Result{}, errors.ErrNotYourTurn
	}
	if s.DiceValue != 0 {
		return Result{}, errors.ErrAlreadyRolled
	}
	value := 0
	if cmd.Forced != nil {
		if *cmd.Forced < 1 || *cmd.Forced > 6 {
			return Result{}, errors.ErrInvalidDieValue
		}
		value = *cmd.Forced
	} else {
		value = e.dice.Roll()
	}

	next := s.Clone()
	next.DiceValue = value
	next.Rolls++
	next.Locked = true
	events := []event.DomainEvent{
		event.DieRolled{Room: s.ID, PlayerID: current.ID, Color: current.Color, Value: value},
	}
	followUp := FollowUpNone
	if len(LegalMoves(current, value)) == 0 {
		events = append(events, event.NoLegalMove{Room: s.ID, PlayerID: current.ID, Value: value})
		followUp = FollowUpSkipTurn
	}
	return e.commit(next, events, followUp)
}

// SkipTurn ends a turn stranded without legal move. It is a no-op once any
// other roll happened since the one it was scheduled for.
func (e *Engine) SkipTurn(s *domain.GameSession, cmd domain.SkipTurnCommand) (Result, error) {
	if s.Phase != domain.PhasePlaying ||
		s.CurrentPlayerIndex != cmd.PlayerIndex ||
		s.DiceValue == 0 ||
		s.DiceValue != cmd.DiceValue ||
		s.Rolls != cmd.Roll {
		return unchanged(s), nil
	}
	next := s.Clone()
	return e.commit(next, []event.DomainEvent{switchTurn(next, false)}, FollowUpNone)
}

// SwitchTurn passes the turn. Unless forced, a pending six keeps it.
func (e *Engine) SwitchTurn(s *domain.GameSession, cmd domain.SwitchTurnCommand) (Result, error) {
	if err := ensurePlaying(s); err != nil {
		return Result{}, err
	}
	if cmd.RequesterID != "" {
		current, ok := s.CurrentPlayer()
		if !ok || current.ID != cmd.RequesterID {
			return Result{}, errors.ErrNotYourTurn
		}
	}
	next := s.Clone()
	return e.commit(next, []event.DomainEvent{switchTurn(next, cmd.Force)}, FollowUpNone)
}

func switchTurn(s *domain.GameSession, force bool) event.DomainEvent {
	if !force && s.DiceValue == 6 {
		return retain(s, event.RetainSix)
	}
	return advance(s, force)
}

// AnnounceWinner re-broadcasts the victory of color. It never decides one.
func (e *Engine) AnnounceWinner(s *domain.GameSession, color board.Color) (Result, error) {
	if !color.Valid() {
		return Result{}, errors.ErrInvalidColor
	}
	if s.Phase != domain.PhaseFinished || s.Winner != color {
		return Result{}, errors.ErrWinNotReached
	}
	won := event.PlayerWon{Room: s.ID, Color: color}
	if winner, _, ok := s.PlayerByColor(color); ok {
		won.PlayerID = winner.ID
	}
	return Result{Session: s.Clone(), Events: []event.DomainEvent{won}}, nil
}
