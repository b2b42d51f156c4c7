// Command feedertui runs the feeder simulation in a terminal.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	stepsPerUpdate := flag.Int("steps-per-update", 10, "Simulation ticks per frame")
	sound := flag.Bool("sound", false, "Play a chime when a generation completes")
	logPath := flag.String("log", "", "Write JSON logs to this file (default: discard)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs, fitness plot and config snapshot")
	flag.Parse()

	if err := run(*configPath, *seed, *stepsPerUpdate, *sound, *logPath, *outputDir); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, stepsPerUpdate int, sound bool, logPath, outputDir string) error {
	// The terminal belongs to tcell, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("creating log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(configPath); err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var ch *chime
	if sound {
		var err error
		ch, err = newChime()
		if err != nil {
			// Non-fatal, run without sound
			slog.Warn("audio initialization failed", "error", err)
		}
		defer ch.close()
	}

	var records []genetics.GenerationRecord
	g, err := game.NewGame(game.Options{
		Config:         config.Cfg(),
		Seed:           seed,
		OutputDir:      outputDir,
		StepsPerUpdate: stepsPerUpdate,
		OnGenerationComplete: func(rec genetics.GenerationRecord) {
			records = append(records, rec)
			ch.generation()
		},
		OnMilestone: func(m telemetry.Milestone) {
			if m.Type == telemetry.MilestoneNewBest {
				ch.newBest()
			}
		},
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := g.Close(); err != nil {
			slog.Error("failed to write run output", "error", err)
		}
	}()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	slog.Info("starting terminal simulation", "seed", seed)

	ticker := time.NewTicker(33 * time.Millisecond) // ~30 FPS
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	quit := make(chan struct{})
	defer close(quit)
	go pollEvents(screen, eventChan, quit)

	for {
		select {
		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !handleKey(g, ev, &records) {
					return nil
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-ticker.C:
			g.Update()
			draw(screen, g.Snapshot(), records, g.StepsPerUpdate(), g.State().String())
		}
	}
}

// pollEvents forwards screen events to events until the screen is finalized
// or quit is closed. events is closed on return.
func pollEvents(screen tcell.Screen, events chan<- tcell.Event, quit <-chan struct{}) {
	defer close(events)
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

// handleKey applies a key press. Returns false to quit.
func handleKey(g *game.Game, ev *tcell.EventKey, records *[]genetics.GenerationRecord) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q':
		return false
	case ' ':
		g.TogglePause()
	case 'r':
		g.Reset()
		*records = (*records)[:0]
	case 'n':
		g.AdvanceGeneration()
	case '+', '=':
		g.SetStepsPerUpdate(g.StepsPerUpdate() * 2)
	case '-':
		g.SetStepsPerUpdate(g.StepsPerUpdate() / 2)
	}
	return true
}
