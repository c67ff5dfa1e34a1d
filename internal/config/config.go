// Package config loads and defaults the simulation's configuration tree.
//
// Shape and defaults follow the teacher's pkg/config (a flat JSON-backed
// struct with a DefaultConfig literal) generalized to the sections the
// tick engine and its collaborators need: world, creature, evolution,
// combat, simulation, checkpoint, and server.
package config

import (
	"encoding/json"
	"os"
)

// Version is the current application version.
const Version = "0.1.0"

// World holds settings for the grid and its food dynamics.
type World struct {
	Width               int     `json:"width"`
	Height              int     `json:"height"`
	InitialFoodDensity  float64 `json:"initialFoodDensity"`
	FoodRegenRate       float64 `json:"foodRegenRate"`
	MaxFoodPerCell      uint32  `json:"maxFoodPerCell"`
	PlantDecayTicks     uint64  `json:"plantDecayTicks"`
	MeatDecayTicks      uint64  `json:"meatDecayTicks"`
}

// Creature holds settings for the simulated creatures.
type Creature struct {
	InitialPopulation      int     `json:"initialPopulation"`
	MaxPopulation          int     `json:"maxPopulation"`
	InitialEnergy          float64 `json:"initialEnergy"`
	MaxEnergy              float64 `json:"maxEnergy"`
	EnergyPerFood          float64 `json:"energyPerFood"`
	EnergyCostPerTick      float64 `json:"energyCostPerTick"`
	EnergyCostMove         float64 `json:"energyCostMove"`
	EnergyCostSprint       float64 `json:"energyCostSprint"`
	EnergyCostReproduce    float64 `json:"energyCostReproduce"`
	MinReproduceEnergy     float64 `json:"minReproduceEnergy"`
	ReproduceCooldownTicks uint64  `json:"reproduceCooldownTicks"`
	MaxAgeTicks            uint64  `json:"maxAgeTicks"`
	EnergyShareAmount      float64 `json:"energyShareAmount"`
	RestEnergyMultiplier   float64 `json:"restEnergyMultiplier"`
	RestHealingMultiplier  float64 `json:"restHealingMultiplier"`
}

// Evolution holds settings for the genome/neural controller mapping.
type Evolution struct {
	MutationRate     float64 `json:"mutationRate"`
	GenomeSize       int     `json:"genomeSize"`
	NeuralNetInputs  int     `json:"neuralNetInputs"`
	NeuralNetHidden  int     `json:"neuralNetHidden"`
	NeuralNetOutputs int     `json:"neuralNetOutputs"`
}

// Combat holds settings for attack damage and passive healing.
type Combat struct {
	DamagePerAttack       float64 `json:"damagePerAttack"`
	DamagePerStrongAttack float64 `json:"damagePerStrongAttack"`
	HealthRegenRate       float64 `json:"healthRegenRate"`
	HealthRegenEnergyCost float64 `json:"healthRegenEnergyCost"`
}

// Simulation holds settings for the tick loop's own pacing.
type Simulation struct {
	TicksPerSecond  uint64 `json:"ticksPerSecond"`
	LogIntervalTicks uint64 `json:"logIntervalTicks"`
}

// Checkpoint holds settings for periodic state persistence.
type Checkpoint struct {
	Enabled         bool   `json:"enabled"`
	IntervalSeconds uint64 `json:"intervalSeconds"`
	Directory       string `json:"directory"`
	KeepLastN       int    `json:"keepLastN"`
}

// Server holds settings for the observation server.
type Server struct {
	Enabled      bool   `json:"enabled"`
	Address      string `json:"address"`
	Port         uint16 `json:"port"`
	UpdateRateHz uint64 `json:"updateRateHz"`
}

// Config is the full, recognized configuration tree (spec.md §6).
type Config struct {
	Version    string     `json:"version"`
	World      World      `json:"world"`
	Creature   Creature   `json:"creature"`
	Evolution  Evolution  `json:"evolution"`
	Combat     Combat     `json:"combat"`
	Simulation Simulation `json:"simulation"`
	Checkpoint Checkpoint `json:"checkpoint"`
	Server     Server     `json:"server"`
}

// Default returns a configuration with reasonable values for a 300x300
// world, matching the scale called out in spec.md's food-regeneration
// sizing discussion.
func Default() Config {
	return Config{
		Version: Version,
		World: World{
			Width:              300,
			Height:             300,
			InitialFoodDensity: 0.3,
			FoodRegenRate:      0.001,
			MaxFoodPerCell:     10,
			PlantDecayTicks:    600,
			MeatDecayTicks:     300,
		},
		Creature: Creature{
			InitialPopulation:      150,
			MaxPopulation:          1500,
			InitialEnergy:          100.0,
			MaxEnergy:              200.0,
			EnergyPerFood:          20.0,
			EnergyCostPerTick:      0.1,
			EnergyCostMove:         1.0,
			EnergyCostSprint:       2.5,
			EnergyCostReproduce:    50.0,
			MinReproduceEnergy:     100.0,
			ReproduceCooldownTicks: 100,
			MaxAgeTicks:            20000,
			EnergyShareAmount:      15.0,
			RestEnergyMultiplier:   0.5,
			RestHealingMultiplier:  2.0,
		},
		Evolution: Evolution{
			MutationRate:     0.01,
			GenomeSize:       400,
			NeuralNetInputs:  34,
			NeuralNetHidden:  16,
			NeuralNetOutputs: 12,
		},
		Combat: Combat{
			DamagePerAttack:       20.0,
			DamagePerStrongAttack: 35.0,
			HealthRegenRate:       2.0,
			HealthRegenEnergyCost: 2.0,
		},
		Simulation: Simulation{
			TicksPerSecond:   30,
			LogIntervalTicks: 300,
		},
		Checkpoint: Checkpoint{
			Enabled:         true,
			IntervalSeconds: 3600,
			Directory:       "checkpoints",
			KeepLastN:       24,
		},
		Server: Server{
			Enabled:      true,
			Address:      "0.0.0.0",
			Port:         8080,
			UpdateRateHz: 10,
		},
	}
}

// LoadFromFile loads configuration from a JSON file, defaulting any field
// the file omits.
func LoadFromFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// SaveToFile writes configuration to a JSON file with indentation.
func SaveToFile(cfg Config, path string) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadOrInit loads configuration from path, writing and returning defaults
// when the file does not exist. This is the CLI surface's documented
// behavior (spec.md §6).
func LoadOrInit(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		if err := SaveToFile(cfg, path); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	return LoadFromFile(path)
}
