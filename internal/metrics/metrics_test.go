package metrics

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/evocore/ecosim/internal/config"
	"github.com/evocore/ecosim/internal/ecosim"
)

func TestComputeEmptyPopulation(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height = 10, 10
	cfg.Creature.InitialPopulation = 0
	rng := rand.New(rand.NewSource(1))
	s := ecosim.NewState(cfg, rng)

	snap := Compute(s)
	if snap.Population != 0 {
		t.Fatalf("Population = %d; want 0", snap.Population)
	}
	if snap.AvgEnergy != 0 || snap.AvgGeneration != 0 || snap.AvgAge != 0 {
		t.Errorf("averages should be zero with no population, got %+v", snap)
	}
}

func TestComputeWithPopulation(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height = 10, 10
	cfg.Creature.InitialPopulation = 5
	rng := rand.New(rand.NewSource(1))
	s := ecosim.NewState(cfg, rng)

	snap := Compute(s)
	if snap.Population != 5 {
		t.Errorf("Population = %d; want 5", snap.Population)
	}
	if snap.AvgEnergy <= 0 {
		t.Errorf("AvgEnergy = %v; want > 0 for freshly spawned creatures", snap.AvgEnergy)
	}
	if snap.TotalEnergy != snap.AvgEnergy*float64(snap.Population) {
		t.Errorf("TotalEnergy/Population mismatch: %v vs avg %v * %d", snap.TotalEnergy, snap.AvgEnergy, snap.Population)
	}
	if snap.Generation != snap.MaxGeneration {
		t.Errorf("Generation = %d; want it to duplicate MaxGeneration (%d)", snap.Generation, snap.MaxGeneration)
	}
}

func TestExportCSVAndJSONRoundTrip(t *testing.T) {
	history := []Snapshot{
		{Tick: 0, Population: 3, AvgEnergy: 50},
		{Tick: 1, Population: 4, AvgEnergy: 55},
	}

	dir := t.TempDir()
	csvPath := filepath.Join(dir, "metrics.csv")
	jsonPath := filepath.Join(dir, "metrics.json")

	if err := ExportCSV(history, csvPath); err != nil {
		t.Fatalf("ExportCSV: %v", err)
	}
	if err := ExportJSON(history, jsonPath); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	if info, err := os.Stat(csvPath); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty csv file, err=%v", err)
	}
	if info, err := os.Stat(jsonPath); err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty json file, err=%v", err)
	}
}

func TestRecorderStreamsRowsAndAccumulatesHistory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stream.csv")

	r, err := NewRecorder(path)
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	defer r.Close()

	for i := uint64(0); i < 3; i++ {
		if err := r.Record(Snapshot{Tick: i, Population: int(i)}); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	if len(r.History()) != 3 {
		t.Errorf("len(History()) = %d; want 3", len(r.History()))
	}
	if err := r.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Errorf("expected non-empty streamed csv, err=%v", err)
	}
}

func TestRecorderWithEmptyPathDisablesStreaming(t *testing.T) {
	r, err := NewRecorder("")
	if err != nil {
		t.Fatalf("NewRecorder: %v", err)
	}
	if err := r.Record(Snapshot{Tick: 1}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(r.History()) != 1 {
		t.Errorf("len(History()) = %d; want 1", len(r.History()))
	}
}
