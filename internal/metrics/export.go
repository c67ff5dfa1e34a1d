package metrics

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
)

// Recorder accumulates Snapshots over a run and flushes them to disk,
// grounded on _examples/pthm-soup/telemetry/output.go's OutputManager
// (header-once CSV writer kept open across the run) and
// _examples/ZachBeta-evolve_sim_1shot/pkg/simulation/stats.go's
// ExportStatsCSV/ExportStatsJSON (whole-run export on demand).
type Recorder struct {
	file          *os.File
	headerWritten bool
	history       []Snapshot
}

// NewRecorder opens path for a streaming CSV export. Passing an empty
// path disables streaming; Record then only appends to History.
func NewRecorder(path string) (*Recorder, error) {
	if path == "" {
		return &Recorder{}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating metrics csv: %w", err)
	}
	return &Recorder{file: f}, nil
}

// Record appends snap to the in-memory history and, if a streaming file
// is open, writes it as the next CSV row.
func (r *Recorder) Record(snap Snapshot) error {
	r.history = append(r.history, snap)

	if r.file == nil {
		return nil
	}

	rows := []Snapshot{snap}
	if !r.headerWritten {
		if err := gocsv.Marshal(rows, r.file); err != nil {
			return fmt.Errorf("writing metrics row: %w", err)
		}
		r.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(rows, r.file); err != nil {
		return fmt.Errorf("writing metrics row: %w", err)
	}
	return nil
}

// History returns every Snapshot recorded so far.
func (r *Recorder) History() []Snapshot {
	return r.history
}

// Close closes the streaming file, if one is open.
func (r *Recorder) Close() error {
	if r.file == nil {
		return nil
	}
	return r.file.Close()
}

// ExportCSV writes the full history to a fresh file at path in one shot.
func ExportCSV(history []Snapshot, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	if err := gocsv.Marshal(history, file); err != nil {
		return fmt.Errorf("marshaling metrics csv: %w", err)
	}
	return nil
}

// ExportJSON writes the full history to path as indented JSON.
func ExportJSON(history []Snapshot, path string) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling metrics json: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
