package moderation

import (
	"log/slog"
	"strings"
	"unicode/utf8"

	"ludo-lab/domain/event"
	"ludo-lab/errors"
)

// NameModerator cleans the display names players pick when joining a room.
type NameModerator struct {
	moderator *Moderator
	maxLength int
	telemetry chan<- event.Event
	log       *slog.Logger
}

func NewNameModerator(moderator *Moderator, maxLength int, telemetry chan<- event.Event, log *slog.Logger) *NameModerator {
	return &NameModerator{moderator: moderator, maxLength: maxLength, telemetry: telemetry, log: log}
}

// Sanitize trims the name, rejects it when too long and masks the censored words.
// An empty name stays empty.
func (n *NameModerator) Sanitize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if n.maxLength > 0 && utf8.RuneCountInString(name) > n.maxLength {
		return "", errors.Invalid("name is too long")
	}
	if name == "" {
		return name, nil
	}

	clean, words := n.moderator.Censor(name)
	for _, word := range words {
		n.report(word)
	}
	if len(words) > 0 {
		n.log.Debug("Display name censored", "hits", len(words))
	}
	return clean, nil
}

func (n *NameModerator) report(word string) {
	if n.telemetry == nil {
		return
	}
	select {
	case n.telemetry <- event.NewEvent(event.CensorshipHitType, event.Censored{Word: word}):
	default:
		n.log.Debug("Observability telemetry event lost")
	}
}
