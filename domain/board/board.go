// Package board describes the fixed topology of the four-color Ludo board.
// Everything here is immutable and shared by every session without locking.
package board

import (
	"sync"

	"ludo-lab/errors"
)

// Color is one of the four player slots.
type Color string

const (
	Orange Color = "orange"
	Green  Color = "green"
	Blue   Color = "blue"
	Yellow Color = "yellow"
)

// Colors lists every color in slot order (A, B, C, D).
var Colors = []Color{Orange, Green, Blue, Yellow}

func (c Color) Valid() bool {
	switch c {
	case Orange, Green, Blue, Yellow:
		return true
	}
	return false
}

func ParseColor(s string) (Color, error) {
	c := Color(s)
	if !c.Valid() {
		return "", errors.ErrInvalidColor
	}
	return c, nil
}

const (
	PathLength    = 57
	EntryIndex    = 0
	FinalIndex    = PathLength - 1
	PawnsPerColor = 4
	ringLength    = 52
	loopLength    = 51
	stretchLength = PathLength - loopLength
)

// Coord is a [row, col] cell of the 15x15 reference board.
type Coord struct {
	Row int
	Col int
}

// ring is the shared outer loop, starting at the blue entry cell.
var ring = [ringLength]Coord{
	{13, 6}, {12, 6}, {11, 6}, {10, 6}, {9, 6},
	{8, 5}, {8, 4}, {8, 3}, {8, 2}, {8, 1}, {8, 0},
	{7, 0},
	{6, 0}, {6, 1}, {6, 2}, {6, 3}, {6, 4}, {6, 5},
	{5, 6}, {4, 6}, {3, 6}, {2, 6}, {1, 6}, {0, 6},
	{0, 7},
	{0, 8}, {1, 8}, {2, 8}, {3, 8}, {4, 8}, {5, 8},
	{6, 9}, {6, 10}, {6, 11}, {6, 12}, {6, 13}, {6, 14},
	{7, 14},
	{8, 14}, {8, 13}, {8, 12}, {8, 11}, {8, 10}, {8, 9},
	{9, 8}, {10, 8}, {11, 8}, {12, 8}, {13, 8}, {14, 8},
	{14, 7},
	{14, 6},
}

// entryOffset is the ring index of each color's entry cell.
var entryOffset = map[Color]int{
	Blue:   0,
	Orange: 13,
	Green:  26,
	Yellow: 39,
}

var homeStretch = map[Color][stretchLength]Coord{
	Orange: {{7, 1}, {7, 2}, {7, 3}, {7, 4}, {7, 5}, {7, 6}},
	Green:  {{1, 7}, {2, 7}, {3, 7}, {4, 7}, {5, 7}, {6, 7}},
	Blue:   {{13, 7}, {12, 7}, {11, 7}, {10, 7}, {9, 7}, {8, 7}},
	Yellow: {{7, 13}, {7, 12}, {7, 11}, {7, 10}, {7, 9}, {7, 8}},
}

var homeSlots = map[Color][PawnsPerColor]Coord{
	Orange: {{2, 2}, {2, 3}, {3, 2}, {3, 3}},
	Green:  {{2, 11}, {2, 12}, {3, 11}, {3, 12}},
	Blue:   {{11, 2}, {11, 3}, {12, 2}, {12, 3}},
	Yellow: {{11, 11}, {11, 12}, {12, 11}, {12, 12}},
}

var (
	safePathIndexes   = []int{0, 8, 13, 21, 26, 34, 39, 47}
	cornerPathIndexes = []int{12, 25, 38}
)

// Topology is the static lookup table of the board.
type Topology struct {
	paths     map[Color][PathLength]Coord
	homes     map[Color][PawnsPerColor]Coord
	safe      map[Coord]struct{}
	extraRoll map[Coord]struct{}
	corners   map[Coord]struct{}
}

var (
	defaultTopology *Topology
	buildOnce       sync.Once
)

// Default returns the process-wide reference topology, built on first use.
func Default() *Topology {
	buildOnce.Do(func() {
		defaultTopology = build()
	})
	return defaultTopology
}

func build() *Topology {
	t := &Topology{
		paths:     make(map[Color][PathLength]Coord, len(Colors)),
		homes:     homeSlots,
		safe:      make(map[Coord]struct{}),
		extraRoll: make(map[Coord]struct{}),
		corners:   make(map[Coord]struct{}),
	}
	for _, c := range Colors {
		var path [PathLength]Coord
		for i := 0; i < loopLength; i++ {
			path[i] = ring[(entryOffset[c]+i)%ringLength]
		}
		stretch := homeStretch[c]
		copy(path[loopLength:], stretch[:])
		t.paths[c] = path

		for _, i := range safePathIndexes {
			t.safe[path[i]] = struct{}{}
		}
		for _, i := range cornerPathIndexes {
			t.corners[path[i]] = struct{}{}
			t.extraRoll[path[i]] = struct{}{}
		}
		t.extraRoll[path[FinalIndex]] = struct{}{}
	}
	return t
}

// PathOf returns a copy of the 57 cells a color travels, entry cell first.
func (t *Topology) PathOf(c Color) []Coord {
	path, ok := t.paths[c]
	if !ok {
		return nil
	}
	out := make([]Coord, PathLength)
	copy(out, path[:])
	return out
}

// CellAt returns the coordinate at a path index for a color.
func (t *Topology) CellAt(c Color, index int) (Coord, bool) {
	path, ok := t.paths[c]
	if !ok || index < EntryIndex || index > FinalIndex {
		return Coord{}, false
	}
	return path[index], true
}

func (t *Topology) HomeSlotsOf(c Color) []Coord {
	slots, ok := t.homes[c]
	if !ok {
		return nil
	}
	out := make([]Coord, PawnsPerColor)
	copy(out, slots[:])
	return out
}

func (t *Topology) IsSafeCell(coord Coord) bool {
	_, ok := t.safe[coord]
	return ok
}

func (t *Topology) IsExtraRollCell(coord Coord) bool {
	_, ok := t.extraRoll[coord]
	return ok
}

// IsCornerMarker reports the cosmetic subset of extra-roll cells drawn with a die icon.
func (t *Topology) IsCornerMarker(coord Coord) bool {
	_, ok := t.corners[coord]
	return ok
}
