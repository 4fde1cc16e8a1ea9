package runtime

import (
	"testing"

	"ludo-lab/domain"
	"ludo-lab/errors"

	"github.com/stretchr/testify/require"
)

func TestRoomIDs_FallsBackToScan(t *testing.T) {
	req := require.New(t)
	// Given a generator stuck on the same draw
	ids := NewRoomIDs(func(int) int { return 5 })

	first, err := ids.Reserve()
	req.NoError(err)
	second, err := ids.Reserve()
	req.NoError(err)

	// Then the second id comes from the linear scan
	req.Equal(domain.RoomID("105"), first)
	req.Equal(domain.RoomID("100"), second)
}

func TestRoomIDs_Exhausted(t *testing.T) {
	req := require.New(t)
	ids := NewRoomIDs(nil)

	// Given every three-digit code is live
	for i := 0; i < 900; i++ {
		id, err := ids.Reserve()
		req.NoError(err)
		req.Len(string(id), 3)
	}

	// When one more room is asked for
	_, err := ids.Reserve()

	// Then no id is available until one is released
	req.ErrorIs(err, errors.ErrNoRoomAvailable)
	ids.Release("512")
	id, err := ids.Reserve()
	req.NoError(err)
	req.Equal(domain.RoomID("512"), id)
	req.Equal(900, ids.Len())
}
