package ecosim

import (
	"math/rand"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/genome"
	"github.com/evocore/ecosim/internal/gridworld"
)

// Step advances the simulation by exactly one tick, in the order spec.md
// §4.6 fixes: food regeneration and decay, shuffled per-creature
// processing, births committed, deaths materialized, the extinction
// failsafe, attack-map rotation, then the tick counter. Grounded on
// _examples/original_source/src/simulation/tick.rs's SimulationState::tick.
func (s *SimulationState) Step(cfg config.Config, rng *rand.Rand) {
	s.World.RegenerateFood(rng, cfg.World.FoodRegenRate, cfg.World.MaxFoodPerCell)
	s.World.AgeAndDecayFood(uint64(cfg.World.PlantDecayTicks), uint64(cfg.World.MeatDecayTicks))

	ids := make([]uint64, 0, len(s.Creatures))
	for id := range s.Creatures {
		ids = append(ids, id)
	}
	rng.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })

	var pendingBirths []*creature.Creature
	attacksThisTick := make(map[uint64][]Direction)

	for _, id := range ids {
		c, ok := s.Creatures[id]
		if !ok {
			continue
		}

		c.Age++
		c.DecayDamageMemory()

		if c.Age >= uint64(cfg.Creature.MaxAgeTicks) {
			c.ApplyDamage(c.Metabolism.Health)
		}

		c.Metabolism.ConsumeEnergy(cfg.Creature.EnergyCostPerTick)
		if c.Energy() <= 0 {
			c.ApplyDamage(c.Metabolism.Health)
		}

		if c.IsAlive() {
			c.Metabolism.PassiveHeal(cfg.Combat.HealthRegenRate, cfg.Combat.HealthRegenEnergyCost)
		}

		if !c.IsAlive() {
			continue
		}

		x, y, energy := c.X, c.Y, c.Energy()
		inputs := s.buildSensorInputs(id, x, y, energy, cfg)
		action := c.DecideAction(inputs)

		s.applyAction(rng, cfg, id, x, y, action, attacksThisTick)

		c, ok = s.Creatures[id]
		if !ok || !c.IsAlive() {
			continue
		}

		if c.CanReproduce(cfg.Creature.MinReproduceEnergy, s.Tick, uint64(cfg.Creature.ReproduceCooldownTicks)) &&
			s.CanSpawnNewCreature(cfg.Creature.MaxPopulation) {
			if tx, ty, ok := s.findEmptyNeighbor(rng, c.X, c.Y); ok {
				offspring := c.Reproduce(
					rng,
					s.NextCreatureID,
					tx, ty,
					cfg.Evolution.MutationRate,
					cfg.Creature.EnergyCostReproduce,
					cfg.Creature.InitialEnergy,
					cfg.Creature.MaxEnergy,
					nnConfig(cfg),
					s.Tick,
				)
				if offspring != nil {
					pendingBirths = append(pendingBirths, offspring)
					s.NextCreatureID++
					s.TotalBirths++
				}
			}
		}
	}

	for _, offspring := range pendingBirths {
		s.Creatures[offspring.ID] = offspring
		s.Spatial.Place(offspring.X, offspring.Y, offspring.ID)
	}

	s.materializeDeaths(cfg)

	if len(s.Creatures) == 0 && len(s.recentlyDead) > 0 {
		s.resurrect(rng, cfg)
	}

	s.AttacksLastTick = attacksThisTick
	s.Tick++
}

func (s *SimulationState) findEmptyNeighbor(rng *rand.Rand, x, y int) (int, int, bool) {
	empty := s.World.EmptyNeighbors(x, y)
	if len(empty) == 0 {
		return 0, 0, false
	}
	p := empty[rng.Intn(len(empty))]
	return p.X, p.Y, true
}

func (s *SimulationState) materializeDeaths(cfg config.Config) {
	var dead []*creature.Creature
	for _, c := range s.Creatures {
		if !c.IsAlive() {
			dead = append(dead, c)
		}
	}

	for _, c := range dead {
		meatAmount := gridworld.MeatAmountFromEnergy(c.Energy())
		if meatAmount > 0 {
			s.World.GetMut(c.X, c.Y).AddFood(meatAmount, cfg.World.MaxFoodPerCell, gridworld.Meat)
		}
		s.Spatial.Clear(c.X, c.Y)
		s.pushRecentlyDead(c)
	}

	s.TotalDeaths += uint64(len(dead))
	for _, c := range dead {
		delete(s.Creatures, c.ID)
	}
}

// resurrect implements the extinction failsafe: when the population has
// hit zero, revive min(initial_population, |recently-dead|) of the most
// recent corpses with fresh ids, full health and initial energy, at
// random positions (retried up to 10 times for an unoccupied cell).
// Resurrections are credited as births, resolving spec.md §9's open
// question on resurrection/birth accounting in favor of a single,
// always-consistent total_births counter.
func (s *SimulationState) resurrect(rng *rand.Rand, cfg config.Config) {
	numToResurrect := cfg.Creature.InitialPopulation
	if numToResurrect > len(s.recentlyDead) {
		numToResurrect = len(s.recentlyDead)
	}

	nn := nnConfig(cfg)
	for i := 0; i < numToResurrect; i++ {
		corpse := s.recentlyDead[len(s.recentlyDead)-1-i]

		newX, newY := s.randomUnoccupiedCell(rng, 10)

		newID := s.NextCreatureID
		s.NextCreatureID++

		resurrected := creature.New(
			newID, newX, newY,
			genome.Genome{Genes: append([]byte(nil), corpse.Genome.Genes...), Generation: corpse.Genome.Generation},
			cfg.Creature.InitialEnergy, cfg.Creature.MaxEnergy, nn, rng,
		)
		s.Creatures[newID] = resurrected
		s.Spatial.Place(newX, newY, newID)
		s.TotalBirths++
	}
}
