// Package ecosim is the tick engine (spec.md §4.6): the per-step update
// that advances a SimulationState from one tick to the next, grounded on
// _examples/original_source/src/simulation/{mod,tick}.rs. The
// readers-writer coordinator around SimulationState follows the pattern
// _examples/ZachBeta-evolve_sim_1shot/pkg/world/world.go uses for its
// RWMutex-guarded World: the writer (tick loop) takes the exclusive role
// for one Tick call, readers (observer, checkpoint writer) take the
// shared role for the duration of their snapshot or serialization.
package ecosim

import (
	"math/rand"
	"sync"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/genome"
	"github.com/evocore/ecosim/internal/gridworld"
	"github.com/evocore/ecosim/internal/spatial"
)

// Direction is a compass direction an attack can be recorded as coming
// from, consumed by the next tick's sensor assembly.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

const recentlyDeadCapacity = 100

// SimulationState is the entire mutable world: the grid, the population,
// the spatial index, and the bookkeeping counters the tick engine and
// its collaborators need (spec.md §3).
type SimulationState struct {
	World   *gridworld.World
	Spatial *spatial.Index

	Creatures      map[uint64]*creature.Creature
	NextCreatureID uint64

	Tick uint64

	TotalBirths uint64
	TotalDeaths uint64

	AttacksLastTick map[uint64][]Direction

	recentlyDead []*creature.Creature
}

func nnConfig(cfg config.Config) creature.NNConfig {
	return creature.NNConfig{
		Inputs:  cfg.Evolution.NeuralNetInputs,
		Hidden:  cfg.Evolution.NeuralNetHidden,
		Outputs: cfg.Evolution.NeuralNetOutputs,
	}
}

// NewState builds a fresh SimulationState from configuration: an empty
// grid seeded with initial food, and initial_population creatures with
// random genomes placed at random unoccupied cells.
func NewState(cfg config.Config, rng *rand.Rand) *SimulationState {
	world := gridworld.New(cfg.World.Width, cfg.World.Height)
	world.InitializeFood(rng, cfg.World.InitialFoodDensity, cfg.World.MaxFoodPerCell)

	idx := spatial.New(cfg.World.Width, cfg.World.Height)

	s := &SimulationState{
		World:           world,
		Spatial:         idx,
		Creatures:       make(map[uint64]*creature.Creature, cfg.Creature.InitialPopulation),
		AttacksLastTick: make(map[uint64][]Direction),
	}

	nn := nnConfig(cfg)
	for i := 0; i < cfg.Creature.InitialPopulation; i++ {
		x, y := s.randomUnoccupiedCell(rng, 10)
		g := genome.Random(rng, cfg.Evolution.GenomeSize)
		id := s.NextCreatureID
		s.NextCreatureID++

		c := creature.New(id, x, y, g, cfg.Creature.InitialEnergy, cfg.Creature.MaxEnergy, nn, rng)
		s.Creatures[id] = c
		s.Spatial.Place(x, y, id)
	}

	s.applyPopulationCap(rng, cfg.Creature.MaxPopulation)

	return s
}

// applyPopulationCap randomly culls creatures down to maxPopulation if the
// configured initial population exceeds it, matching
// original_source/src/simulation/mod.rs's apply_population_cap. A
// maxPopulation of 0 is treated as uncapped.
func (s *SimulationState) applyPopulationCap(rng *rand.Rand, maxPopulation int) {
	if maxPopulation == 0 || len(s.Creatures) <= maxPopulation {
		return
	}

	ids := make([]uint64, 0, len(s.Creatures))
	for id := range s.Creatures {
		ids = append(ids, id)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	toRemove := len(s.Creatures) - maxPopulation
	for _, id := range ids[:toRemove] {
		c := s.Creatures[id]
		s.Spatial.Clear(c.X, c.Y)
		delete(s.Creatures, id)
	}
}

// Restore rebuilds a SimulationState from persisted fields — used by
// checkpoint loading, which only serializes the grid, the creatures and
// the bookkeeping counters. The spatial index and recently-dead buffer
// are not part of the wire format; the index is rebuilt here from
// creature positions and the buffer starts empty, mirroring
// original_source/src/checkpoint/mod.rs's load_checkpoint comment that
// the spatial index "is not serialized".
func Restore(
	world *gridworld.World,
	creatures map[uint64]*creature.Creature,
	nextCreatureID, tick, totalBirths, totalDeaths uint64,
) *SimulationState {
	idx := spatial.New(world.Width, world.Height)
	for id, c := range creatures {
		idx.Place(c.X, c.Y, id)
	}

	return &SimulationState{
		World:           world,
		Spatial:         idx,
		Creatures:       creatures,
		NextCreatureID:  nextCreatureID,
		Tick:            tick,
		TotalBirths:     totalBirths,
		TotalDeaths:     totalDeaths,
		AttacksLastTick: make(map[uint64][]Direction),
	}
}

// randomUnoccupiedCell draws a uniformly random position, retrying up to
// attempts times to find one without a creature; if every attempt
// collides it accepts the last draw anyway, matching
// original_source/src/simulation/tick.rs's resurrection placement logic.
func (s *SimulationState) randomUnoccupiedCell(rng *rand.Rand, attempts int) (x, y int) {
	for i := 0; i < attempts; i++ {
		x = rng.Intn(s.World.Width)
		y = rng.Intn(s.World.Height)
		if !s.Spatial.IsOccupied(x, y) {
			return x, y
		}
	}
	return x, y
}

// CreatureAt returns the id of the creature occupying (x,y), if any.
func (s *SimulationState) CreatureAt(x, y int) (uint64, bool) {
	return s.Spatial.Get(x, y)
}

// CanSpawnNewCreature reports whether the population has room for one
// more creature under maxPopulation.
func (s *SimulationState) CanSpawnNewCreature(maxPopulation int) bool {
	return len(s.Creatures) < maxPopulation
}

func (s *SimulationState) pushRecentlyDead(c *creature.Creature) {
	s.recentlyDead = append(s.recentlyDead, c)
	if len(s.recentlyDead) > recentlyDeadCapacity {
		s.recentlyDead = s.recentlyDead[1:]
	}
}

// RecentlyDeadCount reports the size of the extinction-failsafe corpse
// buffer.
func (s *SimulationState) RecentlyDeadCount() int {
	return len(s.recentlyDead)
}

// Coordinator guards a SimulationState with a readers-writer lock: the
// tick loop takes the writer role for the duration of one Tick call;
// observers and the checkpoint writer take the reader role, blocking
// the next tick for the duration of their read (the checkpoint writer's
// JSON serialization and file write included; the observer builds its
// messages under the lock and writes them to the websocket after
// releasing it).
type Coordinator struct {
	mu    sync.RWMutex
	state *SimulationState
}

// NewCoordinator wraps an existing SimulationState.
func NewCoordinator(state *SimulationState) *Coordinator {
	return &Coordinator{state: state}
}

// Tick advances the wrapped state by one step under the writer lock.
func (c *Coordinator) Tick(cfg config.Config, rng *rand.Rand) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Step(cfg, rng)
}

// Read runs fn with a shared (reader) lock held, for snapshotting or
// metrics computation. fn must not retain references into state beyond
// its own execution without copying them first.
func (c *Coordinator) Read(fn func(state *SimulationState)) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn(c.state)
}

// Write runs fn with the exclusive (writer) lock held. Used by snapshot
// restore, which replaces the state wholesale.
func (c *Coordinator) Write(fn func(state *SimulationState) *SimulationState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = fn(c.state)
}
