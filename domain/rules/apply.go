package rules

import (
	"fmt"

	"ludo-lab/domain"
	"ludo-lab/errors"
)

// Apply routes a mutating command to its operation.
func (e *Engine) Apply(s *domain.GameSession, cmd domain.Command) (Result, error) {
	switch c := cmd.(type) {
	case domain.JoinCommand:
		return e.Join(s, c)
	case domain.ConfirmColorCommand:
		return e.ConfirmColor(s, c)
	case domain.StartCommand:
		return e.Start(s, c)
	case domain.DrawStarterCommand:
		return e.DrawStarter(s)
	case domain.RollDieCommand:
		return e.RollDie(s, c)
	case domain.SkipTurnCommand:
		return e.SkipTurn(s, c)
	case domain.MoveDiscCommand:
		return e.MoveDisc(s, c)
	case domain.SwitchTurnCommand:
		return e.SwitchTurn(s, c)
	case domain.PlayerWonCommand:
		return e.AnnounceWinner(s, c.Color)
	case domain.LeaveCommand:
		return e.RemovePlayer(s, c.PlayerID)
	case domain.AvailableColorsCommand, domain.SnapshotCommand:
		return unchanged(s), nil
	}
	return Result{}, fmt.Errorf("%w: unsupported command %T", errors.ErrInvalidRequest, cmd)
}

// CommandName is the short name used in logs and latency telemetry.
func CommandName(cmd domain.Command) string {
	switch cmd.(type) {
	case domain.JoinCommand:
		return "join"
	case domain.ConfirmColorCommand:
		return "confirm_color"
	case domain.AvailableColorsCommand:
		return "available_colors"
	case domain.StartCommand:
		return "start"
	case domain.DrawStarterCommand:
		return "draw_starter"
	case domain.RollDieCommand:
		return "roll_die"
	case domain.SkipTurnCommand:
		return "skip_turn"
	case domain.MoveDiscCommand:
		return "move_disc"
	case domain.SwitchTurnCommand:
		return "switch_turn"
	case domain.PlayerWonCommand:
		return "player_won"
	case domain.LeaveCommand:
		return "leave"
	case domain.SnapshotCommand:
		return "snapshot"
	}
	return fmt.Sprintf("%T", cmd)
}
