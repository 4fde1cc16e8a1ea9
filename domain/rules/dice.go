package rules

import (
	"math/rand/v2"
	"sync"
)

// Dice is the only source of randomness of the engine.
type Dice interface {
	// Roll returns a uniform value in 1..6.
	Roll() int
	// Pick returns a uniform index in 0..n-1.
	Pick(n int) int
}

type RandomDice struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewRandomDice() *RandomDice {
	return &RandomDice{rnd: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeededDice returns a reproducible dice, used by bots and load tests.
func NewSeededDice(seed uint64) *RandomDice {
	return &RandomDice{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *RandomDice) Roll() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rnd.IntN(6) + 1
}

func (d *RandomDice) Pick(n int) int {
	if n <= 1 {
		return 0
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rnd.IntN(n)
}
