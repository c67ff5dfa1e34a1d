// Package checkpoint persists and restores a SimulationState as JSON on
// disk, grounded on
// _examples/original_source/src/checkpoint/{mod,storage}.rs's
// save_checkpoint/load_checkpoint, translated to Go's encoding/json and
// os package (the original's chrono-based timestamps become Go's
// time.Now().Format).
package checkpoint

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/creature"
	"github.com/evocore/ecosim/internal/ecosim"
	"github.com/evocore/ecosim/internal/genome"
	"github.com/evocore/ecosim/internal/gridworld"
)

type creatureDTO struct {
	ID                uint64  `json:"id"`
	X                 int     `json:"x"`
	Y                 int     `json:"y"`
	Genes             []byte  `json:"genes"`
	Generation        uint64  `json:"generation"`
	Energy            float64 `json:"energy"`
	MaxEnergy         float64 `json:"maxEnergy"`
	Health            float64 `json:"health"`
	LastReproduceTick uint64  `json:"lastReproduceTick"`
	Age               uint64  `json:"age"`
	OffspringCount    uint64  `json:"offspringCount"`
	LastDamageTaken   float64 `json:"lastDamageTaken"`
}

type stateDTO struct {
	Tick           uint64           `json:"tick"`
	NextCreatureID uint64           `json:"nextCreatureId"`
	TotalBirths    uint64           `json:"totalBirths"`
	TotalDeaths    uint64           `json:"totalDeaths"`
	World          *gridworld.World `json:"world"`
	Creatures      []creatureDTO    `json:"creatures"`
}

func toDTO(s *ecosim.SimulationState) stateDTO {
	dto := stateDTO{
		Tick:           s.Tick,
		NextCreatureID: s.NextCreatureID,
		TotalBirths:    s.TotalBirths,
		TotalDeaths:    s.TotalDeaths,
		World:          s.World,
		Creatures:      make([]creatureDTO, 0, len(s.Creatures)),
	}
	for _, c := range s.Creatures {
		dto.Creatures = append(dto.Creatures, creatureDTO{
			ID:                c.ID,
			X:                 c.X,
			Y:                 c.Y,
			Genes:             c.Genome.Genes,
			Generation:        c.Genome.Generation,
			Energy:            c.Metabolism.Energy,
			MaxEnergy:         c.Metabolism.MaxEnergy,
			Health:            c.Metabolism.Health,
			LastReproduceTick: c.LastReproduceTick,
			Age:               c.Age,
			OffspringCount:    c.OffspringCount,
			LastDamageTaken:   c.LastDamageTaken,
		})
	}
	return dto
}

func fromDTO(dto stateDTO, nn creature.NNConfig, rng *rand.Rand) *ecosim.SimulationState {
	creatures := make(map[uint64]*creature.Creature, len(dto.Creatures))
	for _, cd := range dto.Creatures {
		g := genome.Genome{Genes: cd.Genes, Generation: cd.Generation}
		c := creature.New(cd.ID, cd.X, cd.Y, g, cd.Energy, cd.MaxEnergy, nn, rng)
		c.Metabolism.Health = cd.Health
		c.LastReproduceTick = cd.LastReproduceTick
		c.Age = cd.Age
		c.OffspringCount = cd.OffspringCount
		c.LastDamageTaken = cd.LastDamageTaken
		creatures[cd.ID] = c
	}
	return ecosim.Restore(dto.World, creatures, dto.NextCreatureID, dto.Tick, dto.TotalBirths, dto.TotalDeaths)
}

// Save serializes state to path as indented JSON.
func Save(state *ecosim.SimulationState, path string) error {
	data, err := json.MarshalIndent(toDTO(state), "", "  ")
	if err != nil {
		return fmt.Errorf("checkpoint: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("checkpoint: write %s: %w", path, err)
	}
	return nil
}

// Load reads and decodes a checkpoint written by Save, reconstructing
// creature brains from their genomes per nn. One value is drawn from rng
// per restored creature to seed that brain's own action-sampling
// generator, the same way a freshly spawned creature's brain is seeded.
func Load(path string, nn creature.NNConfig, rng *rand.Rand) (*ecosim.SimulationState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("checkpoint: read %s: %w", path, err)
	}

	var dto stateDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		return nil, fmt.Errorf("checkpoint: unmarshal %s: %w", path, err)
	}

	return fromDTO(dto, nn, rng), nil
}

// NNConfig mirrors creature.NNConfig for config-driven callers that
// don't already import the creature package.
func NNConfig(cfg config.Config) creature.NNConfig {
	return creature.NNConfig{
		Inputs:  cfg.Evolution.NeuralNetInputs,
		Hidden:  cfg.Evolution.NeuralNetHidden,
		Outputs: cfg.Evolution.NeuralNetOutputs,
	}
}

// SaveRotated writes state into cfg's checkpoint directory under a fresh
// timestamped filename and prunes old checkpoints beyond KeepLastN,
// mirroring original_source/src/checkpoint/mod.rs's save_checkpoint.
func SaveRotated(state *ecosim.SimulationState, cfg config.Config) (string, error) {
	return SaveWithRotation(cfg.Checkpoint.Directory, cfg.Checkpoint.KeepLastN, func(path string) error {
		return Save(state, path)
	})
}

// LoadLatest finds and loads the most recent checkpoint in cfg's
// directory. Returns (nil, nil) if none exists. A checkpoint that fails
// to parse is quarantined with a timestamped backup name and (nil, nil)
// is returned so the caller falls back to a fresh simulation, mirroring
// load_checkpoint's deserialization-error handling.
func LoadLatest(cfg config.Config, rng *rand.Rand) (*ecosim.SimulationState, error) {
	path := FindLatest(cfg.Checkpoint.Directory)
	if path == "" {
		return nil, nil
	}

	state, err := Load(path, NNConfig(cfg), rng)
	if err != nil {
		if IsCorruptJSON(err) {
			if qErr := QuarantineCorrupt(path); qErr != nil {
				return nil, fmt.Errorf("checkpoint: quarantine after parse failure: %w", qErr)
			}
			return nil, nil
		}
		return nil, err
	}
	return state, nil
}
