package game

import (
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/systems"
	"github.com/pthm-cable/feeders/telemetry"
)

func testConfig(feeders, food, ticksPerGeneration int) *config.Config {
	cfg := config.Default()
	cfg.Population.Feeders = feeders
	cfg.Population.Food = food
	cfg.Simulation.TicksPerGeneration = ticksPerGeneration
	return cfg
}

func newTestGame(t *testing.T, opts Options) *Game {
	t.Helper()
	g, err := NewGame(opts)
	if err != nil {
		t.Fatalf("NewGame error = %v", err)
	}
	t.Cleanup(func() { g.Close() })
	return g
}

// placeAgent moves agent i to (x, y) heading east.
func placeAgent(g *Game, i int, x, y float64) {
	pos, motion, tr, _ := g.feederMapper.Get(g.agents[i])
	pos.X, pos.Y = x, y
	*motion = systems.NewMotion(0, *tr)
}

func TestNewGameDefaults(t *testing.T) {
	g := newTestGame(t, Options{Seed: 1})

	if g.NumFeeders() != 20 {
		t.Errorf("NumFeeders() = %d, want 20", g.NumFeeders())
	}
	if g.NumFood() != 250 {
		t.Errorf("NumFood() = %d, want 250", g.NumFood())
	}
	if g.State() != Running {
		t.Errorf("State() = %v, want running", g.State())
	}
	if g.Generation() != 0 || len(g.Records()) != 0 {
		t.Errorf("new game has %d generations", g.Generation())
	}
}

func TestSingleAgentEats(t *testing.T) {
	cfg := testConfig(0, 0, 1000)
	cfg.Simulation.FoodSize = 20
	g := newTestGame(t, Options{Config: cfg, Seed: 2})

	if !g.AddFeeder(15, 15, 15) {
		t.Fatal("AddFeeder returned false")
	}
	placeAgent(g, 0, 100, 100)
	if !g.AddFood(110, 100) {
		t.Fatal("AddFood returned false")
	}

	g.Step()

	snap := g.Snapshot()
	if snap.Feeders[0].Eaten != 1 {
		t.Errorf("Eaten = %d, want 1", snap.Feeders[0].Eaten)
	}
	if snap.Food[0].Active {
		t.Error("food still active after being eaten")
	}
	if g.NumFood() != 0 {
		t.Errorf("NumFood() = %d, want 0", g.NumFood())
	}

	// The eaten count is the fitness of the paired genotype.
	g.AdvanceGeneration()
	recs := g.Records()
	if len(recs) != 1 {
		t.Fatalf("len(Records()) = %d, want 1", len(recs))
	}
	if recs[0].HighestFitness != 1 || recs[0].AverageFitness != 1 {
		t.Errorf("record = %+v, want fitness 1", recs[0])
	}

	hof := g.HallOfFame()
	if len(hof) != 1 || hof[0].Chromosome != "111111111111" || hof[0].Traits != "S15 E15 I15" {
		t.Errorf("HallOfFame() = %+v", hof)
	}
}

func TestStepKeepsAgentsInArena(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(50, 100, 200), Seed: 3})
	arena := g.Arena()

	for i := 0; i < 500; i++ {
		g.Step()
		for _, f := range g.Snapshot().Feeders {
			if f.X < arena.MinX || f.X > arena.MaxX || f.Y < arena.MinY || f.Y > arena.MaxY {
				t.Fatalf("tick %d: feeder %d at (%v, %v) outside arena", i, f.ID, f.X, f.Y)
			}
		}
	}
}

func TestGenerationAdvance(t *testing.T) {
	var got []genetics.GenerationRecord
	var stats []telemetry.GenerationStats
	g := newTestGame(t, Options{
		Config:               testConfig(10, 50, 5),
		Seed:                 4,
		OnGenerationComplete: func(r genetics.GenerationRecord) { got = append(got, r) },
		OnStats:              func(s telemetry.GenerationStats) { stats = append(stats, s) },
	})

	for i := 0; i < 4; i++ {
		g.Step()
	}
	if len(got) != 0 {
		t.Fatal("generation completed early")
	}

	g.Step()

	if len(got) != 1 || got[0].Generation != 1 {
		t.Fatalf("records from callback = %+v, want generation 1", got)
	}
	if g.Tick() != 0 {
		t.Errorf("Tick() = %d, want 0 after generation", g.Tick())
	}
	if g.TotalTicks() != 5 {
		t.Errorf("TotalTicks() = %d, want 5", g.TotalTicks())
	}
	if g.NumFeeders() != 10 {
		t.Errorf("NumFeeders() = %d, want 10", g.NumFeeders())
	}
	if g.NumFood() != 50 {
		t.Errorf("NumFood() = %d, want 50 after respawn", g.NumFood())
	}
	if len(stats) != 1 || stats[0].Ticks != 5 || stats[0].Feeders != 10 {
		t.Errorf("stats = %+v", stats)
	}

	// Agent IDs keep counting across generations.
	if id := g.Snapshot().Feeders[0].ID; id != 11 {
		t.Errorf("first agent ID after generation = %d, want 11", id)
	}
}

func TestPause(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(5, 5, 100), Seed: 5})

	g.Pause()
	before := g.Snapshot()
	g.Step()
	g.Update()
	if g.TotalTicks() != 0 {
		t.Errorf("paused game advanced to tick %d", g.TotalTicks())
	}
	if !reflect.DeepEqual(before, g.Snapshot()) {
		t.Error("paused step changed the snapshot")
	}

	g.TogglePause()
	if g.State() != Running {
		t.Fatalf("State() = %v after TogglePause, want running", g.State())
	}
	g.Step()
	if g.TotalTicks() != 1 {
		t.Errorf("TotalTicks() = %d, want 1", g.TotalTicks())
	}

	g.TogglePause()
	if g.State() != Paused {
		t.Errorf("State() = %v, want paused", g.State())
	}
	g.Resume()
	if g.State() != Running {
		t.Errorf("State() = %v after Resume, want running", g.State())
	}
}

func TestUpdateRunsStepsPerUpdate(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(5, 5, 100), Seed: 6, StepsPerUpdate: 4})
	g.Update()
	if g.TotalTicks() != 4 {
		t.Errorf("TotalTicks() = %d, want 4", g.TotalTicks())
	}
}

func TestSetStepsPerUpdate(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(1, 1, 100), Seed: 6})

	tests := []struct {
		name string
		n    int
		want int
	}{
		{"in range", 12, 12},
		{"zero", 0, 1},
		{"negative", -3, 1},
		{"above max", MaxStepsPerUpdate + 50, MaxStepsPerUpdate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.SetStepsPerUpdate(tt.n)
			if g.StepsPerUpdate() != tt.want {
				t.Errorf("StepsPerUpdate() = %d, want %d", g.StepsPerUpdate(), tt.want)
			}
		})
	}
}

func TestReset(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(10, 20, 3), Seed: 7})
	for i := 0; i < 7; i++ {
		g.Step()
	}
	g.Pause()
	g.SetFeederCount(7)
	g.SetFoodCount(9)

	g.Reset()

	if g.State() != Running {
		t.Errorf("State() = %v after Reset, want running", g.State())
	}
	if len(g.Records()) != 0 || g.Generation() != 0 {
		t.Errorf("Records() after Reset = %v", g.Records())
	}
	if g.NumFeeders() != 7 || g.NumFood() != 9 {
		t.Errorf("counts after Reset = (%d, %d), want (7, 9)", g.NumFeeders(), g.NumFood())
	}
	if g.TotalTicks() != 0 || g.Tick() != 0 {
		t.Errorf("ticks after Reset = (%d, %d)", g.Tick(), g.TotalTicks())
	}
	if id := g.Snapshot().Feeders[0].ID; id != 1 {
		t.Errorf("first agent ID after Reset = %d, want 1", id)
	}
}

func TestCountsClamp(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want int
	}{
		{"negative", -3, 0},
		{"in range", 42, 42},
		{"over cap", 900, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(t, Options{Config: testConfig(0, 0, 10), Seed: 8})
			g.SetFeederCount(tt.n)
			g.SetFoodCount(tt.n)
			if g.FeederCount() != tt.want || g.FoodCount() != tt.want {
				t.Errorf("counts = (%d, %d), want %d", g.FeederCount(), g.FoodCount(), tt.want)
			}
		})
	}
}

func TestFoodCountAppliesAtRespawn(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(3, 10, 2), Seed: 9})
	g.SetFoodCount(4)
	if g.NumFood() != 10 {
		t.Errorf("NumFood() = %d before respawn, want 10", g.NumFood())
	}
	g.Step()
	g.Step()
	if g.NumFood() != 4 {
		t.Errorf("NumFood() = %d after respawn, want 4", g.NumFood())
	}
}

func TestCapacity(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(config.MaxFeeders-1, config.MaxFood, 10), Seed: 10})

	if g.AddFood(100, 100) || g.AddRandomFood() {
		t.Error("food added beyond capacity")
	}
	if !g.AddFeeder(3, 4, 5) {
		t.Fatal("AddFeeder below capacity returned false")
	}
	if g.AddFeeder(3, 4, 5) || g.AddRandomFeeder() {
		t.Error("feeder added beyond capacity")
	}
	if g.NumFeeders() != config.MaxFeeders {
		t.Errorf("NumFeeders() = %d, want %d", g.NumFeeders(), config.MaxFeeders)
	}

	last := g.Snapshot().Feeders[config.MaxFeeders-1]
	if last.Traits != "S3 E4 I5" {
		t.Errorf("added feeder traits = %s, want S3 E4 I5", last.Traits)
	}
}

func TestAddFoodClampsToArena(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(0, 0, 10), Seed: 11})
	if !g.AddFood(-50, 9000) {
		t.Fatal("AddFood returned false")
	}
	f := g.Snapshot().Food[0]
	arena := g.Arena()
	if f.X != arena.MinX || f.Y != arena.MaxY {
		t.Errorf("food at (%v, %v), want (%v, %v)", f.X, f.Y, arena.MinX, arena.MaxY)
	}
	if !g.AddRandomFood() || g.NumFood() != 2 {
		t.Errorf("NumFood() = %d, want 2", g.NumFood())
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	run := func() Snapshot {
		g := newTestGame(t, Options{Config: testConfig(20, 100, 25), Seed: 12})
		for i := 0; i < 60; i++ {
			g.Step()
		}
		return g.Snapshot()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with the same seed diverged")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(3, 3, 10), Seed: 13})

	s := g.Snapshot()
	s.Feeders[0].X = -1000
	s.Food[0].Active = false

	again := g.Snapshot()
	if again.Feeders[0].X == -1000 || !again.Food[0].Active {
		t.Error("modifying a snapshot changed the game")
	}
	if len(again.ActiveFood()) != 3 {
		t.Errorf("len(ActiveFood()) = %d, want 3", len(again.ActiveFood()))
	}
}

func TestSnapshotCone(t *testing.T) {
	g := newTestGame(t, Options{Config: testConfig(0, 0, 10), Seed: 14})
	g.AddFeeder(5, 3, 5)
	g.AddFeeder(5, 0, 5)
	placeAgent(g, 0, 200, 200)

	s := g.Snapshot()
	cone := s.Feeders[0].Cone
	wantTipX := 200 + 3*6.67
	if math.Abs(cone.Tip.X-wantTipX) > 0.001 || math.Abs(cone.Tip.Y-200) > 0.001 {
		t.Errorf("cone tip = %v, want (%v, 200)", cone.Tip, wantTipX)
	}
	if !s.Feeders[1].Blind || s.Feeders[1].Cone != (systems.Cone{}) {
		t.Errorf("blind feeder view = %+v", s.Feeders[1])
	}
}

func TestOutputFiles(t *testing.T) {
	dir := t.TempDir()
	g, err := NewGame(Options{Config: testConfig(10, 40, 3), Seed: 15, OutputDir: dir})
	if err != nil {
		t.Fatalf("NewGame error = %v", err)
	}
	for i := 0; i < 9; i++ {
		g.Step()
	}
	if err := g.Close(); err != nil {
		t.Fatalf("Close error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, telemetry.GenerationsFile))
	if err != nil {
		t.Fatalf("reading generations: %v", err)
	}
	if lines := strings.Split(strings.TrimSpace(string(data)), "\n"); len(lines) != 4 {
		t.Errorf("generations.csv has %d lines, want 4", len(lines))
	}

	for _, name := range []string{telemetry.PerfFile, telemetry.ConfigFile, telemetry.FitnessPlotFile, telemetry.HallOfFameFile} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}
}
