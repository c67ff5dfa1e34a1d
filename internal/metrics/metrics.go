// Package metrics computes and exports point-in-time summaries of a
// running simulation (spec.md §6), grounded on
// _examples/original_source/src/stats/metrics.rs's SimulationMetrics,
// extended with total_births, total_deaths and avg_age which the
// original's snapshot omits but the tick engine already tracks.
package metrics

import (
	"github.com/evocore/ecosim/internal/ecosim"
)

// Snapshot is a single tick's aggregate statistics over the live
// population and the grid's food supply.
type Snapshot struct {
	Tick           uint64  `json:"tick" csv:"tick"`
	Population     int     `json:"population" csv:"population"`
	TotalEnergy    float64 `json:"totalEnergy" csv:"total_energy"`
	AvgEnergy      float64 `json:"avgEnergy" csv:"avg_energy"`
	AvgGeneration  float64 `json:"avgGeneration" csv:"avg_generation"`
	MaxGeneration  uint64  `json:"maxGeneration" csv:"max_generation"`
	Generation     uint64  `json:"generation" csv:"generation"`
	AvgAge         float64 `json:"avgAge" csv:"avg_age"`
	TotalFood      uint64  `json:"totalFood" csv:"total_food"`
	TotalBirths    uint64  `json:"totalBirths" csv:"total_births"`
	TotalDeaths    uint64  `json:"totalDeaths" csv:"total_deaths"`
}

// Compute derives a Snapshot from the current simulation state. Mirrors
// zero-population handling in metrics.rs: every ratio field is left at
// zero rather than dividing by zero.
func Compute(s *ecosim.SimulationState) Snapshot {
	population := len(s.Creatures)
	snap := Snapshot{
		Tick:        s.Tick,
		Population:  population,
		TotalFood:   s.World.TotalFood(),
		TotalBirths: s.TotalBirths,
		TotalDeaths: s.TotalDeaths,
	}
	if population == 0 {
		return snap
	}

	var totalEnergy, totalGeneration, totalAge float64
	var maxGeneration uint64
	for _, c := range s.Creatures {
		totalEnergy += c.Energy()
		totalGeneration += float64(c.Genome.Generation)
		totalAge += float64(c.Age)
		if c.Genome.Generation > maxGeneration {
			maxGeneration = c.Genome.Generation
		}
	}

	n := float64(population)
	snap.TotalEnergy = totalEnergy
	snap.AvgEnergy = totalEnergy / n
	snap.AvgGeneration = totalGeneration / n
	snap.MaxGeneration = maxGeneration
	snap.Generation = maxGeneration
	snap.AvgAge = totalAge / n

	return snap
}
