package sink

import (
	"context"
	"log/slog"

	"ludo-lab/contract"
	"ludo-lab/domain/event"
)

// JournalSink persists every envelope of every room.
type JournalSink struct {
	repository contract.IJournalRepository
	log        *slog.Logger
}

func NewJournalSink(repository contract.IJournalRepository, log *slog.Logger) JournalSink {
	return JournalSink{repository: repository, log: log}
}

func (j JournalSink) Consume(ctx context.Context, env event.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := j.repository.Append(env); err != nil {
		j.log.Error("Unable to journal event", "room", env.Event.RoomID(), "kind", env.Event.Kind(), "error", err)
		return err
	}
	return nil
}
