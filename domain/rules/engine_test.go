package rules

import (
	"testing"

	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"

	"github.com/stretchr/testify/require"
)

// TestEngine_RandomPlayouts drives full games with seeded dice and checks the
// invariants after every command.
func TestEngine_RandomPlayouts(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		req := require.New(t)
		dice := NewSeededDice(seed)
		e := NewEngine(board.Default(), dice, nil)

		s := e.CreateSession("101")
		players := int(seed%3) + 2
		for i := 0; i < players; i++ {
			id := domain.PlayerID(board.Colors[i])
			s = mustApply(t, e, s, domain.JoinCommand{Room: "101", PlayerID: id}).Session
			p, _, _ := s.PlayerByID(id)
			s = mustApply(t, e, s, domain.ConfirmColorCommand{Room: "101", PlayerID: id, Color: p.Color}).Session
		}
		s = mustApply(t, e, s, domain.StartCommand{Room: "101", RequesterID: s.Players[0].ID}).Session
		s = mustApply(t, e, s, domain.DrawStarterCommand{Room: "101"}).Session

		wins := 0
		for step := 0; step < 20000 && s.Phase == domain.PhasePlaying; step++ {
			current, _ := s.CurrentPlayer()

			// someone else never gets to roll
			other := s.Players[(s.CurrentPlayerIndex+1)%len(s.Players)]
			_, err := e.RollDie(s, domain.RollDieCommand{PlayerID: other.ID})
			req.ErrorIs(err, errors.ErrNotYourTurn)

			rolled := mustApply(t, e, s, domain.RollDieCommand{Room: "101", PlayerID: current.ID})
			s = rolled.Session
			if rolled.FollowUp == FollowUpSkipTurn {
				s = mustApply(t, e, s, domain.SkipTurnCommand{
					Room: "101", PlayerIndex: s.CurrentPlayerIndex, DiceValue: s.DiceValue, Roll: s.Rolls,
				}).Session
				continue
			}

			moves := LegalMoves(current, s.DiceValue)
			req.NotEmpty(moves)
			pawn := moves[dice.Pick(len(moves))]
			moved := mustApply(t, e, s, domain.MoveDiscCommand{Room: "101", Color: current.Color, PawnIndex: pawn})
			for _, evt := range moved.Events {
				if evt.Kind() == event.PlayerWonKind {
					wins++
				}
			}
			s = moved.Session
		}

		req.Equal(domain.PhaseFinished, s.Phase, "seed %d never finished", seed)
		req.Equal(1, wins)
		winner, _, ok := s.PlayerByColor(s.Winner)
		req.True(ok)
		req.True(winner.AllFinished())
	}
}

func TestEngine_ApplyRejectsUnknownCommand(t *testing.T) {
	e := newTestEngine(&scriptedDice{})

	_, err := e.Apply(e.CreateSession("101"), unknownCommand{})

	require.ErrorIs(t, err, errors.ErrInvalidRequest)
}

type unknownCommand struct{}

func (unknownCommand) RoomID() domain.RoomID { return "101" }
