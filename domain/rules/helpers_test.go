package rules

import (
	"testing"
	"time"

	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"

	"github.com/stretchr/testify/require"
)

// scriptedDice replays fixed values, then falls back to 1 and index 0.
type scriptedDice struct {
	rolls []int
	picks []int
}

func (d *scriptedDice) Roll() int {
	if len(d.rolls) == 0 {
		return 1
	}
	v := d.rolls[0]
	d.rolls = d.rolls[1:]
	return v
}

func (d *scriptedDice) Pick(n int) int {
	if len(d.picks) == 0 {
		return 0
	}
	v := d.picks[0] % n
	d.picks = d.picks[1:]
	return v
}

var fixedNow = time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC)

func newTestEngine(dice Dice) *Engine {
	return NewEngine(board.Default(), dice, func() time.Time { return fixedNow })
}

func intPtr(v int) *int {
	return &v
}

// mustApply applies a command that must succeed and checks the invariants of the result.
func mustApply(t *testing.T, e *Engine, s *domain.GameSession, cmd domain.Command) Result {
	t.Helper()
	res, err := e.Apply(s, cmd)
	require.NoError(t, err)
	require.NoError(t, res.Session.Validate())
	return res
}

// playingSession seats Ann (orange) and Bea (green) and lets Ann start.
func playingSession(t *testing.T, e *Engine) *domain.GameSession {
	t.Helper()
	s := e.CreateSession("101")
	s = mustApply(t, e, s, domain.JoinCommand{Room: "101", PlayerID: "ann", Name: "Ann"}).Session
	s = mustApply(t, e, s, domain.JoinCommand{Room: "101", PlayerID: "bea", Name: "Bea"}).Session
	s = mustApply(t, e, s, domain.ConfirmColorCommand{Room: "101", PlayerID: "ann", Color: board.Orange}).Session
	s = mustApply(t, e, s, domain.ConfirmColorCommand{Room: "101", PlayerID: "bea", Color: board.Green}).Session
	s = mustApply(t, e, s, domain.StartCommand{Room: "101", RequesterID: "ann"}).Session
	s = mustApply(t, e, s, domain.DrawStarterCommand{Room: "101"}).Session
	require.Equal(t, domain.PhasePlaying, s.Phase)
	return s
}

func kinds(events []event.DomainEvent) []event.Kind {
	out := make([]event.Kind, 0, len(events))
	for _, e := range events {
		out = append(out, e.Kind())
	}
	return out
}
