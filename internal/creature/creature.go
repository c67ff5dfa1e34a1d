// Package creature is the per-agent aggregate tying identity, position,
// genome, brain and metabolism together (spec.md §3), grounded on
// _examples/original_source/src/creature/{mod,reproduction}.rs, extended
// with the health/offspring/damage-memory fields the original's
// Metabolism-only model omits.
package creature

import (
	"math/rand"

	"github.com/evocore/ecosim/internal/genome"
	"github.com/evocore/ecosim/internal/metabolism"
	"github.com/evocore/ecosim/internal/neural"
)

// NNConfig is the fixed input/hidden/output topology every controller in
// a simulation run shares.
type NNConfig struct {
	Inputs, Hidden, Outputs int
}

// Creature is one agent: identity and position on the grid, its evolved
// genome and derived brain, its energy/health state, and the tick
// bookkeeping the engine needs (reproduction cooldown, age, offspring
// count, decaying damage memory).
type Creature struct {
	ID         uint64
	X          int
	Y          int
	Genome     genome.Genome
	Brain      *neural.NeuralNetwork
	Metabolism metabolism.Metabolism

	LastReproduceTick uint64
	Age               uint64
	OffspringCount    uint64
	LastDamageTaken   float64
}

// New constructs a creature from a genome, deriving its brain via
// neural.FromGenome (seeding the brain's own action-sampling generator
// from rng) and its metabolism via metabolism.New.
func New(id uint64, x, y int, g genome.Genome, initialEnergy, maxEnergy float64, nn NNConfig, rng *rand.Rand) *Creature {
	return &Creature{
		ID:         id,
		X:          x,
		Y:          y,
		Genome:     g,
		Brain:      neural.FromGenome(g, nn.Inputs, nn.Hidden, nn.Outputs, rng),
		Metabolism: metabolism.New(initialEnergy, maxEnergy),
	}
}

// IsAlive reports whether the creature's health is above zero.
func (c *Creature) IsAlive() bool {
	return c.Metabolism.IsAlive()
}

// Energy returns the creature's current energy.
func (c *Creature) Energy() float64 {
	return c.Metabolism.Energy
}

// DecideAction runs the creature's brain on the given sensor vector,
// sampling from the brain's own pseudo-random stream.
func (c *Creature) DecideAction(inputs []float64) neural.Action {
	return c.Brain.DecideAction(inputs)
}

// CanReproduce reports whether the creature can afford minEnergy and has
// waited at least cooldown ticks since its last reproduction.
func (c *Creature) CanReproduce(minEnergy float64, currentTick, cooldown uint64) bool {
	if !c.Metabolism.CanAfford(minEnergy) {
		return false
	}
	return currentTick-c.LastReproduceTick >= cooldown
}

// Reproduce debits energyCost from the parent and, if affordable,
// returns a new offspring at (targetX, targetY) with a mutated genome.
// Returns nil if the parent cannot afford the cost. On success the
// parent's LastReproduceTick is set to currentTick and OffspringCount is
// incremented.
func (c *Creature) Reproduce(
	rng *rand.Rand,
	offspringID uint64,
	targetX, targetY int,
	mutationRate, energyCost, initialEnergy, maxEnergy float64,
	nn NNConfig,
	currentTick uint64,
) *Creature {
	if !c.Metabolism.CanAfford(energyCost) {
		return nil
	}

	c.Metabolism.ConsumeEnergy(energyCost)
	c.LastReproduceTick = currentTick
	c.OffspringCount++

	offspringGenome := genome.FromParent(rng, c.Genome, mutationRate)
	return New(offspringID, targetX, targetY, offspringGenome, initialEnergy, maxEnergy, nn, rng)
}

// ApplyDamage applies amount to health and records it as the creature's
// current-tick damage memory (spec.md §4.6 decays this by 0.9 each tick
// via DecayDamageMemory).
func (c *Creature) ApplyDamage(amount float64) {
	c.Metabolism.TakeDamage(amount)
	c.LastDamageTaken = amount
}

// DecayDamageMemory shrinks the recorded damage memory by 10%, per
// spec.md §4.6 step 2a.
func (c *Creature) DecayDamageMemory() {
	c.LastDamageTaken *= 0.9
}
