package board

import (
	"math/rand/v2"

	"github.com/lixenwraith/knot-runner/parameter"
)

// Roller produces a step count for a turn
type Roller interface {
	Roll() int
}

// DiceRoller rolls uniformly in [DiceMin, DiceMax]
type DiceRoller struct {
	rng *rand.Rand
}

// NewDiceRoller seeds a PCG source; equal seeds give equal roll sequences
func NewDiceRoller(seed uint64) *DiceRoller {
	return &DiceRoller{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (d *DiceRoller) Roll() int {
	return parameter.DiceMin + d.rng.IntN(parameter.DiceMax-parameter.DiceMin+1)
}
