package server

import (
	"math"
	"time"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/board"
	"ludo-lab/domain/event"
	"ludo-lab/errors"

	"github.com/samber/lo"
	"google.golang.org/protobuf/types/known/structpb"
)

func stringField(in *structpb.Struct, key string) string {
	return in.GetFields()[key].GetStringValue()
}

func boolField(in *structpb.Struct, key string) bool {
	return in.GetFields()[key].GetBoolValue()
}

// intField reads a whole number. Struct numbers are float64 on the wire.
func intField(in *structpb.Struct, key string) (int, bool, error) {
	v, ok := in.GetFields()[key]
	if !ok {
		return 0, false, nil
	}
	if _, isNull := v.GetKind().(*structpb.Value_NullValue); isNull {
		return 0, false, nil
	}
	n, isNumber := v.GetKind().(*structpb.Value_NumberValue)
	if !isNumber || n.NumberValue != math.Trunc(n.NumberValue) {
		return 0, false, errors.Invalid(key + " must be an integer")
	}
	return int(n.NumberValue), true, nil
}

func optionalString(in *structpb.Struct, key string) *string {
	v, ok := in.GetFields()[key]
	if !ok || v.GetStringValue() == "" {
		return nil
	}
	return lo.ToPtr(v.GetStringValue())
}

func toStruct(m map[string]any) (*structpb.Struct, error) {
	out, err := structpb.NewStruct(m)
	if err != nil {
		return nil, errors.MapToGRPCError(errors.ErrInternal)
	}
	return out, nil
}

func sessionMap(s *domain.GameSession) map[string]any {
	if s == nil {
		return nil
	}
	players := lo.Map(s.Players, func(p *domain.Player, _ int) any {
		return map[string]any{
			"id":                string(p.ID),
			"name":              p.Name,
			"color":             string(p.Color),
			"hasConfirmedColor": p.HasConfirmedColor,
			"pawns": lo.Map(p.Pawns[:], func(pawn domain.Pawn, _ int) any {
				return event.PositionPayload(pawn.Position)
			}),
		}
	})
	return map[string]any{
		"id":                 string(s.ID),
		"phase":              string(s.Phase),
		"locked":             s.Locked,
		"currentPlayerIndex": s.CurrentPlayerIndex,
		"diceValue":          s.DiceValue,
		"winner":             string(s.Winner),
		"players":            players,
		"updatedAt":          s.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func eventsList(events []event.DomainEvent) []any {
	return lo.Map(events, func(e event.DomainEvent, _ int) any {
		return event.Payload(e)
	})
}

func colorsList(colors []board.Color) []any {
	return lo.Map(colors, func(c board.Color, _ int) any { return string(c) })
}

func replyStruct(reply contract.Reply) (*structpb.Struct, error) {
	out := map[string]any{"events": eventsList(reply.Events)}
	if reply.Session != nil {
		out["session"] = sessionMap(reply.Session)
	}
	return toStruct(out)
}

func envelopeStruct(env event.Envelope) (*structpb.Struct, error) {
	out := event.Payload(env.Event)
	out["seq"] = float64(env.Seq)
	return toStruct(out)
}

func journalList(entries []contract.JournalEntry) []any {
	return lo.Map(entries, func(e contract.JournalEntry, _ int) any {
		return map[string]any{
			"id":      e.ID,
			"room":    string(e.Room),
			"seq":     float64(e.Seq),
			"kind":    string(e.Kind),
			"at":      e.At.UTC().Format(time.RFC3339Nano),
			"payload": e.Payload,
		}
	})
}
