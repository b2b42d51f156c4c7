package main

import (
	"math"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/systems"
)

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		name      string
		direction float64
		want      rune
	}{
		{"east", 0, '>'},
		{"south", math.Pi / 2, 'v'},
		{"west", math.Pi, '<'},
		{"north", 3 * math.Pi / 2, '^'},
		{"negative north", -math.Pi / 2, '^'},
		{"full turn", 2 * math.Pi, '>'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := headingGlyph(tt.direction); got != tt.want {
				t.Errorf("headingGlyph(%v) = %q, want %q", tt.direction, got, tt.want)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(100, 30)

	s := game.Snapshot{
		Arena:   systems.Arena{MinX: 0, MinY: 0, MaxX: 100, MaxY: 100},
		Feeders: []game.FeederView{{ID: 1, X: 0, Y: 0}},
		Food:    []game.FoodView{{ID: 1, X: 100, Y: 100, Size: 5, Active: true}},
	}
	records := []genetics.GenerationRecord{{Generation: 1, AverageFitness: 2.5, HighestFitness: 4}}

	draw(screen, s, records, 1, "running")

	// Feeder at the arena's top-left cell, inside the border.
	if r, _, _, _ := screen.GetContent(1, 1); r != '>' {
		t.Errorf("feeder cell = %q, want '>'", r)
	}

	arenaW := 100 - tableWidth - 3
	arenaH := 30 - 4
	if r, _, _, _ := screen.GetContent(arenaW, arenaH); r != '·' {
		t.Errorf("food cell = %q, want '·'", r)
	}
}

func TestDrawTooSmall(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 5)

	draw(screen, game.Snapshot{}, nil, 1, "running")

	if r, _, _, _ := screen.GetContent(0, 0); r != 't' {
		t.Errorf("first cell = %q, want 't'", r)
	}
}
