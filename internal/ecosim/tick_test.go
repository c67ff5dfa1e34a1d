package ecosim

import (
	"math/rand"
	"testing"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/genome"
	"github.com/evocore/ecosim/internal/gridworld"
	"github.com/evocore/ecosim/internal/neural"
)

func newCreatureAt(id uint64, x, y int, g genome.Genome, cfg config.Config, nn creature.NNConfig) *creature.Creature {
	rng := rand.New(rand.NewSource(int64(id) + 1))
	return creature.New(id, x, y, g, cfg.Creature.InitialEnergy, cfg.Creature.MaxEnergy, nn, rng)
}

// Scenario 1 (spec.md §8): a solo starving creature dies, materializes
// one meat unit, and the extinction failsafe immediately resurrects it.
func TestStarvationThenResurrection(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 10
	cfg.World.Height = 10
	cfg.World.InitialFoodDensity = 0
	cfg.Creature.InitialPopulation = 1
	cfg.Creature.InitialEnergy = 1.0
	cfg.Creature.EnergyCostPerTick = 10.0

	rng := rand.New(rand.NewSource(1))
	s := NewState(cfg, rng)
	if len(s.Creatures) != 1 {
		t.Fatalf("setup: len(Creatures) = %d; want 1", len(s.Creatures))
	}

	s.Step(cfg, rng)

	if len(s.Creatures) != 1 {
		t.Fatalf("after starve+resurrect: len(Creatures) = %d; want 1", len(s.Creatures))
	}
	if s.TotalDeaths != 1 {
		t.Errorf("TotalDeaths = %d; want 1", s.TotalDeaths)
	}
	if s.TotalBirths != 1 {
		t.Errorf("TotalBirths = %d; want 1 (resurrection counted as a birth)", s.TotalBirths)
	}
}

// Scenario 3 (spec.md §8): moving into an occupied cell is an attack,
// not a step, and costs the attacker the move energy regardless.
func TestMoveIntoOccupantIsAttack(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 10
	cfg.World.Height = 10
	rng := rand.New(rand.NewSource(1))

	s := NewState(cfg, rng)
	for id, c := range s.Creatures {
		s.Spatial.Clear(c.X, c.Y)
		delete(s.Creatures, id)
	}

	nn := nnConfig(cfg)
	g := genome.Random(rng, cfg.Evolution.GenomeSize)

	a := newCreatureAt(1, 5, 5, g, cfg, nn)
	b := newCreatureAt(2, 5, 4, g, cfg, nn)
	s.Creatures[a.ID] = a
	s.Creatures[b.ID] = b
	s.Spatial.Place(5, 5, a.ID)
	s.Spatial.Place(5, 4, b.ID)

	attacks := make(map[uint64][]Direction)
	aEnergyBefore := a.Energy()
	bHealthBefore := b.Metabolism.Health

	s.applyMove(cfg, a.ID, 5, 5, neural.MoveUp, cfg.Creature.EnergyCostMove, attacks)

	if a.X != 5 || a.Y != 5 {
		t.Errorf("attacker position = (%d,%d); want unchanged (5,5)", a.X, a.Y)
	}
	if a.Energy() != aEnergyBefore-cfg.Creature.EnergyCostMove {
		t.Errorf("attacker energy = %v; want %v", a.Energy(), aEnergyBefore-cfg.Creature.EnergyCostMove)
	}
	if b.Metabolism.Health != bHealthBefore-cfg.Combat.DamagePerAttack {
		t.Errorf("victim health = %v; want %v", b.Metabolism.Health, bHealthBefore-cfg.Combat.DamagePerAttack)
	}
	dirs := attacks[b.ID]
	if len(dirs) != 1 || dirs[0] != Down {
		t.Errorf("attack directions for victim = %v; want [Down]", dirs)
	}
}

// Scenario 4 (spec.md §8): a creature dying on a cell with plant food
// leaves meat instead, sized by its remaining energy.
func TestMeatReplacesPlantOnDeath(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 10
	cfg.World.Height = 10
	rng := rand.New(rand.NewSource(1))

	s := NewState(cfg, rng)
	for id, c := range s.Creatures {
		s.Spatial.Clear(c.X, c.Y)
		delete(s.Creatures, id)
	}

	var plantCell gridworld.Cell
	plantCell.AddFood(2, cfg.World.MaxFoodPerCell, gridworld.Plant)
	s.World.Set(3, 3, plantCell)

	nn := nnConfig(cfg)
	g := genome.Random(rng, cfg.Evolution.GenomeSize)
	dying := newCreatureAt(1, 3, 3, g, cfg, nn)
	dying.Metabolism.Energy = 30
	dying.Metabolism.Health = 0
	s.Creatures[dying.ID] = dying
	s.Spatial.Place(3, 3, dying.ID)

	s.materializeDeaths(cfg)

	cell, _ := s.World.Get(3, 3)
	if cell.Kind != gridworld.Meat {
		t.Fatalf("cell kind = %v; want Meat", cell.Kind)
	}
	if cell.FoodAmount() != 2 {
		t.Errorf("meat amount = %d; want ceil(30/20)=2", cell.FoodAmount())
	}
	if s.Spatial.IsOccupied(3, 3) {
		t.Error("spatial index should be vacated after death")
	}
}

// Scenario 6 (spec.md §8): the extinction failsafe only fires when the
// recently-dead buffer is non-empty. Creatures that die during a step are
// pushed into that buffer before the failsafe runs, so the population is
// removed outright here to leave the buffer empty.
func TestExtinctionFailsafeRequiresCorpses(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 10
	cfg.World.Height = 10
	cfg.Creature.InitialPopulation = 3
	rng := rand.New(rand.NewSource(1))

	s := NewState(cfg, rng)
	for id, c := range s.Creatures {
		s.Spatial.Clear(c.X, c.Y)
		delete(s.Creatures, id)
	}
	s.recentlyDead = nil

	s.Step(cfg, rng)

	if len(s.Creatures) != 0 {
		t.Fatalf("len(Creatures) = %d; want 0 (no corpses available to resurrect)", len(s.Creatures))
	}
}
