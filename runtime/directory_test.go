package runtime

import (
	"context"
	"testing"

	"ludo-lab/contract"
	"ludo-lab/domain"
	"ludo-lab/domain/event"

	"github.com/stretchr/testify/require"
)

type Sink struct {
	name string
}

func (s Sink) Consume(ctx context.Context, env event.Envelope) error {
	return nil
}

func TestDirectory_Subscribe_One_Player(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	sink := Sink{name: "ann"}

	// Given no player is connected
	req.Zero(directory.Count())

	// When a player subscribes
	directory.Subscribe("ann", sink)

	// Then the connection resolves
	req.Equal(1, directory.Count())
	req.Equal([]contract.EventSink{sink}, directory.SinksFor([]domain.PlayerID{"ann"}))
}

func TestDirectory_SinksFor_SkipsDisconnected(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	ann, bea := Sink{name: "ann"}, Sink{name: "bea"}
	directory.Subscribe("ann", ann)
	directory.Subscribe("bea", bea)

	// When bea disconnects
	req.True(directory.Unsubscribe("bea", bea))

	// Then only ann is reachable, offline players are skipped
	sinks := directory.SinksFor([]domain.PlayerID{"ann", "bea", "cid"})
	req.Equal([]contract.EventSink{ann}, sinks)
}

func TestDirectory_Subscribe_ReplacesConnection(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	directory.Subscribe("ann", Sink{name: "old"})

	// When ann reconnects
	directory.Subscribe("ann", Sink{name: "new"})

	// Then the latest connection wins
	req.Equal(1, directory.Count())
	req.Equal([]contract.EventSink{Sink{name: "new"}}, directory.SinksFor([]domain.PlayerID{"ann"}))
}

func TestDirectory_Unsubscribe_StaleConnectionKeepsNewer(t *testing.T) {
	req := require.New(t)
	directory := NewDirectory()
	old, fresh := Sink{name: "old"}, Sink{name: "new"}
	directory.Subscribe("ann", old)
	directory.Subscribe("ann", fresh)

	// When the replaced stream ends
	detached := directory.Unsubscribe("ann", old)

	// Then the newer connection stays reachable
	req.False(detached)
	req.Equal([]contract.EventSink{fresh}, directory.SinksFor([]domain.PlayerID{"ann"}))

	// And the newer stream detaches normally
	req.True(directory.Unsubscribe("ann", fresh))
	req.Zero(directory.Count())
}
