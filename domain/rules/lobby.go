package rules

import (
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"

	"github.com/samber/lo"
)

func (e *Engine) Join(s *domain.GameSession, cmd domain.JoinCommand) (Result, error) {
	if len(s.Players) >= domain.MaxPlayers {
		return Result{}, errors.ErrSessionFull
	}
	if s.Phase != domain.PhaseWaiting {
		return Result{}, errors.ErrAlreadyStarted
	}
	if s.Locked {
		return Result{}, errors.ErrSessionLocked
	}
	if _, _, ok := s.PlayerByID(cmd.PlayerID); ok {
		return Result{}, errors.ErrPlayerJoined
	}

	color := cmd.Color
	if color != "" {
		if s.ColorHeldByOther(color, "") {
			return Result{}, errors.ErrColorTaken
		}
		if !color.Valid() {
			return Result{}, errors.ErrInvalidColor
		}
	} else {
		free := e.AvailableColors(s, "")
		if len(free) == 0 {
			return Result{}, errors.ErrSessionFull
		}
		color = free[0]
	}

	next := s.Clone()
	next.Players = append(next.Players, domain.NewPlayer(cmd.PlayerID, cmd.Name, color))
	return e.commit(next, []event.DomainEvent{
		event.PlayerJoined{Room: s.ID, PlayerID: cmd.PlayerID, Name: cmd.Name, Color: color},
	}, FollowUpNone)
}

// ConfirmColor locks in a color. Changing color recreates the pawns since a pawn never changes color.
func (e *Engine) ConfirmColor(s *domain.GameSession, cmd domain.ConfirmColorCommand) (Result, error) {
	if !cmd.Color.Valid() {
		return Result{}, errors.ErrInvalidColor
	}
	if s.Phase != domain.PhaseWaiting {
		return Result{}, errors.ErrAlreadyStarted
	}
	if s.ColorHeldByOther(cmd.Color, cmd.PlayerID) {
		return Result{}, errors.ErrColorTaken
	}
	if _, _, ok := s.PlayerByID(cmd.PlayerID); !ok {
		return Result{}, errors.ErrPlayerNotFound
	}

	next := s.Clone()
	player, _, _ := next.PlayerByID(cmd.PlayerID)
	player.Recolor(cmd.Color)
	player.HasConfirmedColor = true
	return e.commit(next, []event.DomainEvent{
		event.ColorConfirmed{Room: s.ID, PlayerID: cmd.PlayerID, Color: cmd.Color},
	}, FollowUpNone)
}

// AvailableColors lists the colors not held by anyone but exclude, in slot order.
func (e *Engine) AvailableColors(s *domain.GameSession, exclude domain.PlayerID) []board.Color {
	return lo.Filter(board.Colors, func(c board.Color, _ int) bool {
		return !s.ColorHeldByOther(c, exclude)
	})
}

func (e *Engine) Start(s *domain.GameSession, cmd domain.StartCommand) (Result, error) {
	if s.Phase != domain.PhaseWaiting {
		return Result{}, errors.ErrAlreadyStarted
	}
	if _, _, ok := s.PlayerByID(cmd.RequesterID); !ok {
		return Result{}, errors.ErrPlayerNotFound
	}
	if len(s.Players) < 2 {
		return Result{}, errors.ErrNotEnoughPlayers
	}
	if !lo.EveryBy(s.Players, func(p *domain.Player) bool { return p.HasConfirmedColor }) {
		return Result{}, errors.ErrColorsUnconfirmed
	}

	next := s.Clone()
	next.Phase = domain.PhaseSelectingStarter
	next.Locked = true
	next.DiceValue = 0
	return e.commit(next, []event.DomainEvent{
		event.StarterSelectionStarted{Room: s.ID},
	}, FollowUpDrawStarter)
}

// DrawStarter picks the first player uniformly. A session no longer selecting a starter is left as is.
func (e *Engine) DrawStarter(s *domain.GameSession) (Result, error) {
	if s.Phase != domain.PhaseSelectingStarter || s.IsEmpty() {
		return unchanged(s), nil
	}

	next := s.Clone()
	next.CurrentPlayerIndex = e.dice.Pick(len(next.Players))
	next.Phase = domain.PhasePlaying
	next.DiceValue = 0
	starter := next.Players[next.CurrentPlayerIndex]
	return e.commit(next, []event.DomainEvent{
		event.GameStarted{
			Room:         s.ID,
			StarterIndex: next.CurrentPlayerIndex,
			PlayerID:     starter.ID,
			Color:        starter.Color,
		},
	}, FollowUpNone)
}

// RemovePlayer unseats a player. The turn pointer keeps following the same player,
// or moves to the next seat when the current player is the one leaving.
func (e *Engine) RemovePlayer(s *domain.GameSession, playerID domain.PlayerID) (Result, error) {
	player, idx, ok := s.PlayerByID(playerID)
	if !ok {
		return Result{}, errors.ErrPlayerNotFound
	}

	next := s.Clone()
	next.Players = append(next.Players[:idx], next.Players[idx+1:]...)
	events := []event.DomainEvent{
		event.PlayerLeft{Room: s.ID, PlayerID: playerID, Color: player.Color},
	}

	if next.IsEmpty() {
		next.CurrentPlayerIndex = 0
		next.DiceValue = 0
		return e.commit(next, events, FollowUpNone)
	}

	switch {
	case idx < next.CurrentPlayerIndex:
		next.CurrentPlayerIndex--
	case idx == next.CurrentPlayerIndex:
		if next.CurrentPlayerIndex >= len(next.Players) {
			next.CurrentPlayerIndex = 0
		}
		next.DiceValue = 0
		if next.Phase == domain.PhasePlaying {
			current := next.Players[next.CurrentPlayerIndex]
			events = append(events, event.TurnSwitched{
				Room:               s.ID,
				CurrentPlayerIndex: next.CurrentPlayerIndex,
				PlayerID:           current.ID,
			})
		}
	}
	return e.commit(next, events, FollowUpNone)
}
