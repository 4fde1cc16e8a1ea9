package runtime

import (
	"math/rand/v2"
	"strconv"

	"ludo-lab/domain"
	"ludo-lab/errors"
)

const (
	minRoomID       = 100
	maxRoomID       = 999
	randomIDRetries = 32
)

// RoomIDs hands out three-digit lobby codes unique among live rooms.
// It is not safe for concurrent use, the registry guards it.
type RoomIDs struct {
	used map[domain.RoomID]struct{}
	pick func(n int) int
}

func NewRoomIDs(pick func(n int) int) *RoomIDs {
	if pick == nil {
		pick = rand.IntN
	}
	return &RoomIDs{used: make(map[domain.RoomID]struct{}), pick: pick}
}

// Reserve draws random codes until a free one shows up, then scans linearly.
func (r *RoomIDs) Reserve() (domain.RoomID, error) {
	span := maxRoomID - minRoomID + 1
	if len(r.used) >= span {
		return "", errors.ErrNoRoomAvailable
	}
	for i := 0; i < randomIDRetries; i++ {
		id := toRoomID(minRoomID + r.pick(span))
		if _, taken := r.used[id]; !taken {
			r.used[id] = struct{}{}
			return id, nil
		}
	}
	for n := minRoomID; n <= maxRoomID; n++ {
		id := toRoomID(n)
		if _, taken := r.used[id]; !taken {
			r.used[id] = struct{}{}
			return id, nil
		}
	}
	return "", errors.ErrNoRoomAvailable
}

func (r *RoomIDs) Release(id domain.RoomID) {
	delete(r.used, id)
}

func (r *RoomIDs) Len() int {
	return len(r.used)
}

func toRoomID(n int) domain.RoomID {
	return domain.RoomID(strconv.Itoa(n))
}
