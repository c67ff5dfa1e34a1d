package ecosim

import (
	"math"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/gridworld"
)

// SensorInputsFor recomputes the sensor vector for a live creature,
// exposed read-only for collaborators outside the tick engine (the
// observer server's creature-detail views) that need the same inputs the
// controller saw without re-running the simulation.
func (s *SimulationState) SensorInputsFor(id uint64, cfg config.Config) ([]float64, bool) {
	c, ok := s.Creatures[id]
	if !ok {
		return nil, false
	}
	return s.buildSensorInputs(id, c.X, c.Y, c.Energy(), cfg), true
}

// buildSensorInputs assembles the sensor vector for a creature per
// spec.md §4.7, expanding the 16-input vector in
// _examples/original_source/src/simulation/tick.rs's get_sensor_inputs
// to the full 30-position layout. Read-only: must not mutate world or
// creature state. Positions beyond the configured input size, and
// positions above index 29, are left at zero so the network can grow
// without breaking older controllers (spec.md §9).
func (s *SimulationState) buildSensorInputs(id uint64, x, y int, energy float64, cfg config.Config) []float64 {
	inputSize := cfg.Evolution.NeuralNetInputs
	inputs := make([]float64, inputSize)
	set := func(i int, v float64) {
		if i < inputSize {
			inputs[i] = v
		}
	}

	set(0, energy/cfg.Creature.MaxEnergy)

	neighbors := s.World.Neighbors(x, y)
	foodCount, emptyCount, plantCount, meatCount := 0, 0, 0, 0
	for _, n := range neighbors {
		cell, _ := s.World.Get(n.X, n.Y)
		switch {
		case cell.IsFood():
			foodCount++
			if cell.Kind == gridworld.Meat {
				meatCount++
			} else {
				plantCount++
			}
		case cell.IsEmpty():
			emptyCount++
		}
	}
	set(1, float64(foodCount)/8.0)
	set(2, float64(emptyCount)/8.0)

	if cell, ok := s.World.Get(x, y); ok && cell.IsFood() {
		set(3, 1.0)
	}

	nearbyCreatures := s.Spatial.CountInRegion(x, y, 5)
	set(4, math.Min(float64(nearbyCreatures)/25.0, 1.0))

	if _, ok := s.CreatureAt(x, y-1); ok {
		set(5, 1.0)
	}
	if _, ok := s.CreatureAt(x, y+1); ok {
		set(6, 1.0)
	}
	if _, ok := s.CreatureAt(x-1, y); ok {
		set(7, 1.0)
	}
	if _, ok := s.CreatureAt(x+1, y); ok {
		set(8, 1.0)
	}

	for _, dir := range s.AttacksLastTick[id] {
		switch dir {
		case Up:
			set(9, 1.0)
		case Down:
			set(10, 1.0)
		case Left:
			set(11, 1.0)
		case Right:
			set(12, 1.0)
		}
	}

	self := s.Creatures[id]
	set(13, self.Metabolism.HealthRatio())

	if foodCount > 0 {
		set(14, float64(plantCount)/float64(foodCount))
		set(15, float64(meatCount)/float64(foodCount))
	}

	set(16, math.Min(float64(self.Age)/float64(cfg.Creature.MaxAgeTicks), 1.0))

	if self.CanReproduce(cfg.Creature.MinReproduceEnergy, s.Tick, uint64(cfg.Creature.ReproduceCooldownTicks)) {
		set(17, 1.0)
	}
	set(18, math.Min(float64(self.OffspringCount)/10.0, 1.0))
	set(19, math.Min(self.LastDamageTaken/50.0, 1.0))

	set(20, float64(x)/float64(s.World.Width))
	set(21, float64(s.World.Width-1-x)/float64(s.World.Width))
	set(22, float64(y)/float64(s.World.Height))
	set(23, float64(s.World.Height-1-y)/float64(s.World.Height))

	nearestDist, nearest := s.nearestOtherCreature(id, x, y)
	if nearest != nil {
		set(24, math.Min(nearestDist/20.0, 1.0))
		set(25, nearest.Metabolism.EnergyRatio())
		set(26, nearest.Metabolism.HealthRatio())
	}

	set(27, float64(s.countKinInRegion(self, x, y, 5))/25.0)
	set(28, float64(s.countFoodInRegion(x, y, 2))/25.0)
	set(29, float64(s.Spatial.CountInRegion(x, y, 1))/9.0)

	return inputs
}

// nearestOtherCreature finds the closest other occupant to (x,y) by
// querying expanding square regions of the spatial index
// (find_nearest_creature's shape in benches/spatial_index.rs) rather than
// scanning every live creature, so the cost tracks local density instead
// of population size. Once a candidate is found at Euclidean distance
// bestDist, any creature outside the current box (Chebyshev distance >
// radius) is necessarily farther as soon as radius >= bestDist, since
// Euclidean distance is never less than Chebyshev distance — so growing
// the box stops as soon as that holds.
func (s *SimulationState) nearestOtherCreature(selfID uint64, x, y int) (float64, *creature.Creature) {
	maxRadius := s.Spatial.Width + s.Spatial.Height

	var best *creature.Creature
	bestDist := math.Inf(1)

	for radius := 1; radius <= maxRadius; radius++ {
		for _, o := range s.Spatial.RegionOccupants(x-radius, y-radius, x+radius, y+radius) {
			if o.ID == selfID {
				continue
			}
			dx := float64(o.X - x)
			dy := float64(o.Y - y)
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < bestDist {
				bestDist = dist
				best = s.Creatures[o.ID]
			}
		}
		if best != nil && float64(radius) >= bestDist {
			break
		}
	}
	return bestDist, best
}

func (s *SimulationState) countKinInRegion(self *creature.Creature, x, y, radius int) int {
	occupants := s.Spatial.RegionOccupants(x-radius, y-radius, x+radius, y+radius)
	count := 0
	for _, o := range occupants {
		if o.ID == self.ID {
			continue
		}
		other, ok := s.Creatures[o.ID]
		if !ok {
			continue
		}
		if generationDelta(self.Genome.Generation, other.Genome.Generation) <= 2 {
			count++
		}
	}
	return count
}

func generationDelta(a, b uint64) uint64 {
	if a > b {
		return a - b
	}
	return b - a
}

func (s *SimulationState) countFoodInRegion(x, y, radius int) int {
	minX, maxX := x-radius, x+radius
	minY, maxY := y-radius, y+radius
	count := 0
	for gy := minY; gy <= maxY; gy++ {
		for gx := minX; gx <= maxX; gx++ {
			if cell, ok := s.World.Get(gx, gy); ok && cell.IsFood() {
				count++
			}
		}
	}
	return count
}
