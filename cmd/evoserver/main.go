// Command evoserver runs the simulation's tick loop, optional
// checkpointing, and optional websocket observer server, grounded on
// the teacher's main.go flag-parsing/headless-loop shape and
// original_source/src/main.rs's config/checkpoint/server wiring.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/evocore/ecosim/internal/checkpoint"
	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/ecosim"
	"github.com/evocore/ecosim/internal/metrics"
	"github.com/evocore/ecosim/internal/obslog"
	"github.com/evocore/ecosim/internal/observer"
)

var logger = obslog.New("evoserver")

func main() {
	fmt.Printf("Evolution Simulator Server v%s\n", config.Version)

	configPath := flag.String("config", "config.json", "path to configuration file")
	noCheckpoint := flag.Bool("no-checkpoint", false, "disable checkpoint loading and saving")
	noServer := flag.Bool("no-server", false, "disable the websocket observer server")
	metricsPath := flag.String("metrics-csv", "", "optional path to stream per-tick metrics as CSV")
	seed := flag.Int64("seed", 0, "PRNG seed; 0 selects a time-based seed")
	flag.Parse()

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Infof("config file not found, using defaults and saving to: %s", *configPath)
	} else {
		logger.Infof("loading config from: %s", *configPath)
	}
	cfg, err := config.LoadOrInit(*configPath)
	if err != nil {
		logger.Errorf("loading config: %v", err)
		os.Exit(1)
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(rngSeed))
	logger.Infof("using PRNG seed %d", rngSeed)

	state := initialState(cfg, rng, *noCheckpoint)
	coord := ecosim.NewCoordinator(state)

	if !*noServer && cfg.Server.Enabled {
		srv := observer.NewServer(cfg, coord)
		go func() {
			if err := srv.ListenAndServe(); err != nil {
				logger.Errorf("observer server error: %v", err)
			}
		}()
		logger.Infof("observer server listening on %s:%d", cfg.Server.Address, cfg.Server.Port)
	}

	recorder, err := metrics.NewRecorder(*metricsPath)
	if err != nil {
		logger.Errorf("opening metrics stream: %v", err)
		os.Exit(1)
	}
	defer recorder.Close()

	runSimulation(coord, cfg, rng, recorder, *noCheckpoint)
}

func initialState(cfg config.Config, rng *rand.Rand, noCheckpoint bool) *ecosim.SimulationState {
	if !noCheckpoint && cfg.Checkpoint.Enabled {
		loaded, err := checkpoint.LoadLatest(cfg, rng)
		if err != nil {
			logger.Warnf("checkpoint load failed, starting fresh: %v", err)
		} else if loaded != nil {
			logger.Infof("resumed from checkpoint at tick %d", loaded.Tick)
			return loaded
		}
	}
	return ecosim.NewState(cfg, rng)
}

func runSimulation(
	coord *ecosim.Coordinator,
	cfg config.Config,
	rng *rand.Rand,
	recorder *metrics.Recorder,
	noCheckpoint bool,
) {
	tickPeriod := time.Duration(1000/cfg.Simulation.TicksPerSecond) * time.Millisecond
	ticker := time.NewTicker(tickPeriod)
	defer ticker.Stop()

	checkpointEnabled := !noCheckpoint && cfg.Checkpoint.Enabled
	checkpointInterval := time.Duration(cfg.Checkpoint.IntervalSeconds) * time.Second
	lastCheckpoint := time.Now()

	logInterval := 10 * time.Second
	lastLog := time.Now()

	for range ticker.C {
		var extinct bool
		coord.Tick(cfg, rng)

		if time.Since(lastLog) >= logInterval {
			coord.Read(func(state *ecosim.SimulationState) {
				snap := metrics.Compute(state)
				logger.Infof(
					"tick=%d population=%d avg_energy=%.2f max_generation=%d food=%d",
					snap.Tick, snap.Population, snap.AvgEnergy, snap.MaxGeneration, snap.TotalFood,
				)
				if err := recorder.Record(snap); err != nil {
					logger.Warnf("recording metrics: %v", err)
				}
				extinct = snap.Population == 0
			})
			lastLog = time.Now()
			if extinct {
				logger.Infof("all creatures have died and no corpses remain to resurrect; stopping")
				return
			}
		}

		if checkpointEnabled && time.Since(lastCheckpoint) >= checkpointInterval {
			var saveErr error
			var path string
			coord.Read(func(state *ecosim.SimulationState) {
				path, saveErr = checkpoint.SaveRotated(state, cfg)
			})
			if saveErr != nil {
				logger.Warnf("checkpoint save failed: %v", saveErr)
			} else {
				logger.Infof("checkpoint saved: %s", path)
			}
			lastCheckpoint = time.Now()
		}
	}
}
