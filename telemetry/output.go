package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/genetics"
)

// Output file names inside the output directory.
const (
	GenerationsFile = "generations.csv"
	PerfFile        = "perf.csv"
	ConfigFile      = "config.yaml"
	FitnessPlotFile = "fitness.png"
	HallOfFameFile  = "hall_of_fame.json"
)

// OutputManager writes per-generation CSV logs and run artifacts.
// A nil *OutputManager is valid and discards everything.
type OutputManager struct {
	dir             string
	generationsFile *os.File
	perfFile        *os.File

	generationsHeaderWritten bool
	perfHeaderWritten        bool
}

// NewOutputManager creates the output directory and opens the CSV files.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}

	f, err := os.Create(filepath.Join(dir, GenerationsFile))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", GenerationsFile, err)
	}
	om.generationsFile = f

	f, err = os.Create(filepath.Join(dir, PerfFile))
	if err != nil {
		om.generationsFile.Close()
		return nil, fmt.Errorf("creating %s: %w", PerfFile, err)
	}
	om.perfFile = f

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, ConfigFile))
}

// WriteGeneration appends a generation stats row to generations.csv.
func (om *OutputManager) WriteGeneration(stats GenerationStats) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.generationsFile, []GenerationStats{stats}, &om.generationsHeaderWritten); err != nil {
		return fmt.Errorf("writing generation: %w", err)
	}
	return nil
}

// WritePerf appends a performance stats row to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, generation int) error {
	if om == nil {
		return nil
	}
	if err := writeRow(om.perfFile, []PerfStatsCSV{stats.ToCSV(generation)}, &om.perfHeaderWritten); err != nil {
		return fmt.Errorf("writing perf: %w", err)
	}
	return nil
}

// WriteFitnessPlot renders the fitness history to fitness.png.
// Nothing is written before the first generation completes.
func (om *OutputManager) WriteFitnessPlot(records []genetics.GenerationRecord) error {
	if om == nil || len(records) == 0 {
		return nil
	}
	return PlotFitness(records, filepath.Join(om.dir, FitnessPlotFile))
}

// WriteHallOfFame saves the hall to hall_of_fame.json.
func (om *OutputManager) WriteHallOfFame(hof *HallOfFame) error {
	if om == nil || hof == nil {
		return nil
	}
	return hof.Save(filepath.Join(om.dir, HallOfFameFile))
}

// writeRow marshals rows to f, including the header only on the first call.
func writeRow(f *os.File, rows any, headerWritten *bool) error {
	if !*headerWritten {
		if err := gocsv.Marshal(rows, f); err != nil {
			return err
		}
		*headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(rows, f)
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, f := range []*os.File{om.generationsFile, om.perfFile} {
		if f == nil {
			continue
		}
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
