package runtime

import (
	"sync"

	"ludo-lab/contract"
	"ludo-lab/domain"
)

// Directory maps each connected player to the sink of its stream.
// Room membership lives in the sessions, the directory only resolves connections.
type Directory struct {
	mu    sync.RWMutex
	sinks map[domain.PlayerID]contract.EventSink
}

func NewDirectory() *Directory {
	return &Directory{
		sinks: make(map[domain.PlayerID]contract.EventSink),
	}
}

// SinksFor resolves player ids into their active sinks.
// Players without a live connection are skipped.
func (d *Directory) SinksFor(playerIDs []domain.PlayerID) []contract.EventSink {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var activeSinks []contract.EventSink
	for _, id := range playerIDs {
		if sink, exists := d.sinks[id]; exists {
			activeSinks = append(activeSinks, sink)
		}
	}
	return activeSinks
}

// Subscribe registers a player's active connection, replacing a previous one.
func (d *Directory) Subscribe(playerID domain.PlayerID, sink contract.EventSink) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.sinks[playerID] = sink
}

// Unsubscribe detaches sink if it is still the player's connection.
// It reports false when a newer connection of the player is live.
func (d *Directory) Unsubscribe(playerID domain.PlayerID, sink contract.EventSink) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	current, ok := d.sinks[playerID]
	if !ok {
		return true
	}
	if current != sink {
		return false
	}
	delete(d.sinks, playerID)
	return true
}

func (d *Directory) Count() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.sinks)
}
