package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"ludo-lab/infrastructure/grpc/client"
)

// Bot is one connected player driven by the tester.
type Bot struct {
	Name   string
	Client *client.LudoClient
	Color  string
	log    *slog.Logger
}

// NewBot connects and drains the event stream in the background until ctx ends.
func NewBot(ctx context.Context, log *slog.Logger, name string, c *client.LudoClient, operatorKey string) (*Bot, error) {
	stream, err := c.Connect(ctx, operatorKey)
	if err != nil {
		return nil, err
	}
	bot := &Bot{Name: name, Client: c, log: log}
	go bot.listen(stream)
	log.Info("Bot connected", "bot", name, "player", c.PlayerID())
	return bot, nil
}

func (b *Bot) PlayerID() string {
	return b.Client.PlayerID()
}

func (b *Bot) listen(stream *client.Stream) {
	for {
		msg, err := stream.Recv()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			b.log.Debug("Event stream closed", "bot", b.Name, "error", err)
			return
		}
		b.log.Debug("Event received", "bot", b.Name, "kind", msg["kind"], "seq", msg["seq"])
	}
}
