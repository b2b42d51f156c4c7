// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Hard limits shared by every host.
const (
	MaxFeeders            = 500
	MaxFood               = 500
	MaxChromosomeLength   = 48
	traitsPerChromosome   = 3
	minTicksPerGeneration = 1
)

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Arena      ArenaConfig      `yaml:"arena"`
	Population PopulationConfig `yaml:"population"`
	Genetics   GeneticsConfig   `yaml:"genetics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Traits     TraitsConfig     `yaml:"traits"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the window host.
type ScreenConfig struct {
	Width      int `yaml:"width"`
	Height     int `yaml:"height"`
	TargetFPS  int `yaml:"target_fps"`
	PanelWidth int `yaml:"panel_width"` // Control panel to the right of the arena
}

// ArenaConfig describes the frame the arena is cut from.
// The usable area is [x, x+width-margin] by [y, y+height-margin].
type ArenaConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"`
}

// PopulationConfig holds the counts used on reset and respawn.
type PopulationConfig struct {
	Feeders int `yaml:"feeders"`
	Food    int `yaml:"food"`
}

// GeneticsConfig holds genetic algorithm parameters.
type GeneticsConfig struct {
	ChromosomeLength     int     `yaml:"chromosome_length"`
	CrossoverProbability float64 `yaml:"crossover_probability"`
	MutationProbability  float64 `yaml:"mutation_probability"`
}

// SimulationConfig holds loop timing and entity sizes.
type SimulationConfig struct {
	TicksPerGeneration int     `yaml:"ticks_per_generation"`
	FoodSize           float64 `yaml:"food_size"`
	FeederSize         float64 `yaml:"feeder_size"`    // Drawing only
	GridCellSize       float64 `yaml:"grid_cell_size"` // Perception candidate grid
}

// TraitsConfig holds the multipliers from raw trait value to effective value.
type TraitsConfig struct {
	SpeedModifier        float64 `yaml:"speed_modifier"`
	EyesightModifier     float64 `yaml:"eyesight_modifier"`
	IntelligenceModifier float64 `yaml:"intelligence_modifier"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfCollectorWindow int  `yaml:"perf_collector_window"`
	PlotFitness         bool `yaml:"plot_fitness"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	MinX, MinY   float64 // Arena bounds
	MaxX, MaxY   float64
	BitsPerTrait int // ChromosomeLength / 3
	MaxTrait     int // 2^BitsPerTrait - 1
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults, validated.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.Validate()
	return cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

// Validate clamps out-of-range values and recomputes derived values.
// Every adjustment is logged as a warning; loading never fails on range.
func (c *Config) Validate() {
	c.Population.Feeders = clampInt("population.feeders", c.Population.Feeders, 0, MaxFeeders)
	c.Population.Food = clampInt("population.food", c.Population.Food, 0, MaxFood)

	c.Genetics.CrossoverProbability = clampFloat("genetics.crossover_probability", c.Genetics.CrossoverProbability, 0, 1)
	c.Genetics.MutationProbability = clampFloat("genetics.mutation_probability", c.Genetics.MutationProbability, 0, 1)

	length := clampInt("genetics.chromosome_length", c.Genetics.ChromosomeLength, traitsPerChromosome, MaxChromosomeLength)
	if rem := length % traitsPerChromosome; rem != 0 {
		slog.Warn("config value is not a multiple of 3, rounding down",
			"key", "genetics.chromosome_length", "value", length, "clamped", length-rem)
		length -= rem
	}
	c.Genetics.ChromosomeLength = length

	if c.Simulation.TicksPerGeneration < minTicksPerGeneration {
		slog.Warn("config value out of range, clamping",
			"key", "simulation.ticks_per_generation", "value", c.Simulation.TicksPerGeneration, "clamped", minTicksPerGeneration)
		c.Simulation.TicksPerGeneration = minTicksPerGeneration
	}
	c.Simulation.FoodSize = clampFloat("simulation.food_size", c.Simulation.FoodSize, 0, c.Arena.Width)
	if c.Simulation.GridCellSize <= 0 {
		c.Simulation.GridCellSize = 40
	}

	c.Traits.SpeedModifier = clampFloat("traits.speed_modifier", c.Traits.SpeedModifier, 0, math.MaxFloat64)
	c.Traits.EyesightModifier = clampFloat("traits.eyesight_modifier", c.Traits.EyesightModifier, 0, math.MaxFloat64)
	c.Traits.IntelligenceModifier = clampFloat("traits.intelligence_modifier", c.Traits.IntelligenceModifier, 0, math.MaxFloat64)

	c.computeDerived()
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.MinX = c.Arena.X
	c.Derived.MinY = c.Arena.Y
	c.Derived.MaxX = c.Arena.X + c.Arena.Width - c.Arena.Margin
	c.Derived.MaxY = c.Arena.Y + c.Arena.Height - c.Arena.Margin
	if c.Derived.MaxX < c.Derived.MinX {
		c.Derived.MaxX = c.Derived.MinX
	}
	if c.Derived.MaxY < c.Derived.MinY {
		c.Derived.MaxY = c.Derived.MinY
	}

	c.Derived.BitsPerTrait = c.Genetics.ChromosomeLength / traitsPerChromosome
	c.Derived.MaxTrait = 1<<c.Derived.BitsPerTrait - 1
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

func clampInt(key string, v, lo, hi int) int {
	clamped := v
	if clamped < lo {
		clamped = lo
	} else if clamped > hi {
		clamped = hi
	}
	if clamped != v {
		slog.Warn("config value out of range, clamping", "key", key, "value", v, "clamped", clamped)
	}
	return clamped
}

func clampFloat(key string, v, lo, hi float64) float64 {
	clamped := v
	if clamped < lo {
		clamped = lo
	} else if clamped > hi {
		clamped = hi
	}
	if clamped != v {
		slog.Warn("config value out of range, clamping", "key", key, "value", v, "clamped", clamped)
	}
	return clamped
}
