package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/samber/lo"
)

// Game drives the bots through one full game.
type Game struct {
	log       *slog.Logger
	bots      []*Bot
	painter   Painter
	turnDelay time.Duration
	maxTurns  int
	roomID    string
}

func NewGame(log *slog.Logger, bots []*Bot, painter Painter, turnDelay time.Duration, maxTurns int) *Game {
	return &Game{log: log, bots: bots, painter: painter, turnDelay: turnDelay, maxTurns: maxTurns}
}

func (g *Game) Play(ctx context.Context) error {
	if err := g.seat(ctx); err != nil {
		return err
	}
	session, err := g.waitPlaying(ctx)
	if err != nil {
		return err
	}
	fmt.Println(g.painter.Header(fmt.Sprintf("  ====== room %s started ======", g.roomID)))

	for turn := 0; turn < g.maxTurns; turn++ {
		if phase(session) == "finished" {
			return g.finish(ctx, session)
		}
		bot, ok := g.current(session)
		if !ok {
			return fmt.Errorf("room %s has no current player", g.roomID)
		}
		if num(session["diceValue"]) != 0 {
			// a roll without legal move waits for the server to skip the turn
			time.Sleep(g.turnDelay)
		} else if err := g.playTurn(ctx, bot); err != nil {
			return err
		}
		if session, err = bot.Client.Snapshot(ctx, g.roomID); err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	RenderBoard(os.Stdout, session, g.painter)
	return fmt.Errorf("no winner after %d turns", g.maxTurns)
}

func (g *Game) seat(ctx context.Context) error {
	roomID, err := g.bots[0].Client.CreateRoom(ctx)
	if err != nil {
		return fmt.Errorf("room creation failed: %w", err)
	}
	g.roomID = roomID

	for _, bot := range g.bots {
		reply, err := bot.Client.Join(ctx, roomID, bot.Name, "")
		if err != nil {
			return fmt.Errorf("%s could not join: %w", bot.Name, err)
		}
		session, _ := reply["session"].(map[string]any)
		for _, p := range players(session) {
			if p["id"] == bot.PlayerID() {
				bot.Color, _ = p["color"].(string)
			}
		}
		if _, err := bot.Client.ConfirmColor(ctx, roomID, bot.Color); err != nil {
			return fmt.Errorf("%s could not confirm %s: %w", bot.Name, bot.Color, err)
		}
		fmt.Println(g.painter.Seat(bot.Color, fmt.Sprintf("%s sits as %s", bot.Name, bot.Color)))
	}
	if _, err := g.bots[0].Client.Start(ctx, roomID); err != nil {
		return fmt.Errorf("start failed: %w", err)
	}
	return nil
}

// waitPlaying polls until the starter is drawn.
func (g *Game) waitPlaying(ctx context.Context) (map[string]any, error) {
	for {
		session, err := g.bots[0].Client.Snapshot(ctx, g.roomID)
		if err != nil {
			return nil, err
		}
		if phase(session) != "selecting_starter" {
			return session, nil
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(g.turnDelay):
		}
	}
}

// playTurn rolls, then moves the first pawn the engine accepts.
func (g *Game) playTurn(ctx context.Context, bot *Bot) error {
	time.Sleep(g.turnDelay)
	rolled, err := bot.Client.RollDie(ctx, g.roomID, nil)
	if err != nil {
		return fmt.Errorf("%s roll failed: %w", bot.Name, err)
	}
	session, _ := rolled["session"].(map[string]any)
	value := num(session["diceValue"])
	if lo.Contains(kinds(rolled), "NoLegalMove") {
		fmt.Println(g.painter.Seat(bot.Color, fmt.Sprintf("%s rolled %s, no move", bot.Name, dieFace(rolled))))
		return nil
	}

	var lastErr error
	for pawn := 0; pawn < 4; pawn++ {
		moved, err := bot.Client.MoveDisc(ctx, g.roomID, bot.Color, pawn)
		if err != nil {
			lastErr = err
			continue
		}
		line := fmt.Sprintf("%s rolled %d, pawn %d moves", bot.Name, value, pawn)
		if lo.Contains(kinds(moved), "DiscReturnedHome") {
			line += " and captures"
		}
		fmt.Println(g.painter.Seat(bot.Color, line))
		return nil
	}
	g.log.Warn("No pawn accepted the move", "bot", bot.Name, "value", value, "error", lastErr)
	_, err = bot.Client.SwitchTurn(ctx, g.roomID, false)
	return err
}

func (g *Game) finish(ctx context.Context, session map[string]any) error {
	RenderBoard(os.Stdout, session, g.painter)
	winner, _ := session["winner"].(string)
	bot, ok := lo.Find(g.bots, func(b *Bot) bool { return b.Color == winner })
	if ok {
		if _, err := bot.Client.Call(ctx, "PlayerWon", map[string]any{"roomId": g.roomID, "color": winner}); err != nil {
			g.log.Warn("Victory announcement failed", "error", err)
		}
		fmt.Println(g.painter.Header(fmt.Sprintf("  ====== %s wins with %s ======", bot.Name, winner)))
	}
	history, err := g.bots[0].Client.History(ctx, g.roomID, "")
	if err == nil {
		entries, _ := history["entries"].([]any)
		g.log.Info("Journal page fetched", "room", g.roomID, "entries", len(entries))
	}
	for _, b := range g.bots {
		_ = b.Client.Leave(ctx)
	}
	return nil
}

func (g *Game) current(session map[string]any) (*Bot, bool) {
	seated := players(session)
	index := num(session["currentPlayerIndex"])
	if index < 0 || index >= len(seated) {
		return nil, false
	}
	id := seated[index]["id"]
	return lo.Find(g.bots, func(b *Bot) bool { return b.PlayerID() == id })
}

func phase(session map[string]any) string {
	p, _ := session["phase"].(string)
	return p
}

func players(session map[string]any) []map[string]any {
	raw, _ := session["players"].([]any)
	return lo.FilterMap(raw, func(item any, _ int) (map[string]any, bool) {
		p, ok := item.(map[string]any)
		return p, ok
	})
}

func kinds(reply map[string]any) []string {
	raw, _ := reply["events"].([]any)
	return lo.FilterMap(raw, func(item any, _ int) (string, bool) {
		e, ok := item.(map[string]any)
		if !ok {
			return "", false
		}
		kind, ok := e["kind"].(string)
		return kind, ok
	})
}

func dieFace(reply map[string]any) string {
	raw, _ := reply["events"].([]any)
	for _, item := range raw {
		if e, ok := item.(map[string]any); ok && e["kind"] == "DieRolled" {
			return fmt.Sprint(num(e["value"]))
		}
	}
	return "?"
}

func num(v any) int {
	f, _ := v.(float64)
	return int(f)
}
