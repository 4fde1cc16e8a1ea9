package event

import (
	"ludo-lab/domain"
)

// Payload flattens an event into plain values, ready for structpb and the journal.
// Named string types are converted since structpb only accepts the base types.
func Payload(evt DomainEvent) map[string]any {
	out := map[string]any{
		"kind": string(evt.Kind()),
		"room": string(evt.RoomID()),
	}
	switch e := evt.(type) {
	case PlayerJoined:
		out["playerId"] = string(e.PlayerID)
		out["name"] = e.Name
		out["color"] = string(e.Color)
	case ColorConfirmed:
		out["playerId"] = string(e.PlayerID)
		out["color"] = string(e.Color)
	case GameStarted:
		out["starterIndex"] = e.StarterIndex
		out["playerId"] = string(e.PlayerID)
		out["color"] = string(e.Color)
	case DieRolled:
		out["playerId"] = string(e.PlayerID)
		out["color"] = string(e.Color)
		out["value"] = e.Value
	case NoLegalMove:
		out["playerId"] = string(e.PlayerID)
		out["value"] = e.Value
	case DiscMoved:
		out["color"] = string(e.Color)
		out["pawnIndex"] = e.PawnIndex
		out["from"] = PositionPayload(e.From)
		out["to"] = PositionPayload(e.To)
		out["cell"] = map[string]any{"row": e.Cell.Row, "col": e.Cell.Col}
	case DiscReturnedHome:
		out["color"] = string(e.Color)
		out["pawnIndex"] = e.PawnIndex
		out["homeSlot"] = e.HomeSlot
	case TurnSwitched:
		out["currentPlayerIndex"] = e.CurrentPlayerIndex
		out["playerId"] = string(e.PlayerID)
		out["forced"] = e.Forced
	case TurnRetained:
		out["playerId"] = string(e.PlayerID)
		out["reason"] = string(e.Reason)
	case PlayerWon:
		out["playerId"] = string(e.PlayerID)
		out["color"] = string(e.Color)
	case PlayerLeft:
		out["playerId"] = string(e.PlayerID)
		out["color"] = string(e.Color)
	case RoomClosed:
		out["reason"] = e.Reason
	}
	return out
}

func PositionPayload(p domain.Position) map[string]any {
	out := map[string]any{"state": p.State.String()}
	switch p.State {
	case domain.StateAtHome:
		out["slot"] = p.Slot
	case domain.StateOnTrack, domain.StateFinished:
		out["index"] = p.Index
	}
	return out
}
