package rules

import (
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"
)

// Destination returns where a pawn lands with a die value, and false when the move is illegal.
func Destination(pos domain.Position, dice int) (domain.Position, bool) {
	if dice < 1 || dice > 6 {
		return domain.Position{}, false
	}
	switch pos.State {
	case domain.StateAtHome:
		if dice != 6 {
			return domain.Position{}, false
		}
		return domain.OnTrack(board.EntryIndex), true
	case domain.StateOnTrack:
		target := pos.Index + dice
		if target > board.FinalIndex {
			return domain.Position{}, false
		}
		if target == board.FinalIndex {
			return domain.Finished(), true
		}
		return domain.OnTrack(target), true
	}
	return domain.Position{}, false
}

// LegalMoves returns the indexes of the pawns the player may move with dice.
func LegalMoves(p *domain.Player, dice int) []int {
	var moves []int
	for i, pawn := range p.Pawns {
		if _, ok := Destination(pawn.Position, dice); ok {
			moves = append(moves, i)
		}
	}
	return moves
}

// MoveDisc moves one pawn by the pending die value, then resolves captures,
// victory and whether the mover keeps the turn.
func (e *Engine) MoveDisc(s *domain.GameSession, cmd domain.MoveDiscCommand) (Result, error) {
	if err := ensurePlaying(s); err != nil {
		return Result{}, err
	}
	if !cmd.Color.Valid() {
		return Result{}, errors.ErrInvalidColor
	}
	current, ok := s.CurrentPlayer()
	if !ok || current.Color != cmd.Color {
		return Result{}, errors.ErrNotYourTurn
	}
	if cmd.RequesterID != "" && cmd.RequesterID != current.ID {
		return Result{}, errors.ErrNotYourTurn
	}
	if cmd.PawnIndex < 0 || cmd.PawnIndex >= board.PawnsPerColor {
		return Result{}, errors.ErrInvalidPawn
	}
	if s.DiceValue == 0 {
		return Result{}, errors.ErrNoRollPending
	}
	from := current.Pawns[cmd.PawnIndex].Position
	to, ok := Destination(from, s.DiceValue)
	if !ok {
		return Result{}, errors.ErrIllegalMove
	}

	next := s.Clone()
	mover, _ := next.CurrentPlayer()
	mover.Pawns[cmd.PawnIndex].Position = to
	cell, _ := e.topology.CellAt(cmd.Color, to.Index)

	events := []event.DomainEvent{
		event.DiscMoved{Room: s.ID, Color: cmd.Color, PawnIndex: cmd.PawnIndex, From: from, To: to, Cell: cell},
	}
	captures := e.capture(next, cmd.Color, cell)
	events = append(events, captures...)

	if mover.AllFinished() {
		next.Phase = domain.PhaseFinished
		next.Winner = cmd.Color
		next.DiceValue = 0
		events = append(events, event.PlayerWon{Room: s.ID, PlayerID: mover.ID, Color: cmd.Color})
		return e.commit(next, events, FollowUpNone)
	}

	// one extra roll at most, whatever the number of reasons
	switch {
	case e.topology.IsExtraRollCell(cell):
		events = append(events, retain(next, event.RetainExtraCell))
	case len(captures) > 0:
		events = append(events, retain(next, event.RetainCapture))
	case s.DiceValue == 6:
		events = append(events, retain(next, event.RetainSix))
	default:
		events = append(events, advance(next, false))
	}
	return e.commit(next, events, FollowUpNone)
}

// capture sends home every opponent pawn on cell, unless cell is safe.
func (e *Engine) capture(s *domain.GameSession, mover board.Color, cell board.Coord) []event.DomainEvent {
	if e.topology.IsSafeCell(cell) {
		return nil
	}
	var events []event.DomainEvent
	for _, player := range s.Players {
		if player.Color == mover {
			continue
		}
		for i := range player.Pawns {
			pos := player.Pawns[i].Position
			if !pos.IsOnTrack() {
				continue
			}
			if at, _ := e.topology.CellAt(player.Color, pos.Index); at != cell {
				continue
			}
			slot := player.FreeHomeSlot()
			player.Pawns[i].Position = domain.AtHome(slot)
			events = append(events, event.DiscReturnedHome{
				Room:      s.ID,
				Color:     player.Color,
				PawnIndex: i,
				HomeSlot:  slot,
			})
		}
	}
	return events
}
