package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/genetics"
)

// tableWidth is the width of the generation table on the right.
const tableWidth = 36

var (
	styleDefault = tcell.StyleDefault
	styleBorder  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFood    = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleFeeder  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleBlind   = tcell.StyleDefault.Foreground(tcell.ColorMaroon)
	styleHeader  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorAqua)
)

// headings maps a direction octant to a glyph, starting east and turning
// clockwise in screen coordinates.
var headings = []rune{'>', '\\', 'v', '/', '<', '\\', '^', '/'}

// draw renders the arena scaled into the terminal with the generation table
// to its right.
func draw(screen tcell.Screen, s game.Snapshot, records []genetics.GenerationRecord, speed int, status string) {
	screen.Clear()
	width, height := screen.Size()

	arenaW := width - tableWidth - 3
	arenaH := height - 4
	if arenaW < 10 || arenaH < 5 {
		drawText(screen, 0, 0, styleDefault, "terminal too small")
		screen.Show()
		return
	}

	drawBox(screen, 0, 0, arenaW+2, arenaH+2)

	toCell := func(x, y float64) (int, int) {
		cx := int((x - s.Arena.MinX) / s.Arena.Width() * float64(arenaW-1))
		cy := int((y - s.Arena.MinY) / s.Arena.Height() * float64(arenaH-1))
		return 1 + clampInt(cx, 0, arenaW-1), 1 + clampInt(cy, 0, arenaH-1)
	}

	for _, f := range s.Food {
		if !f.Active {
			continue
		}
		x, y := toCell(f.X, f.Y)
		screen.SetContent(x, y, '·', nil, styleFood)
	}

	for _, f := range s.Feeders {
		x, y := toCell(f.X, f.Y)
		style := styleFeeder
		if f.Blind {
			style = styleBlind
		}
		screen.SetContent(x, y, headingGlyph(f.Direction), nil, style)
	}

	// Status lines below the arena
	drawText(screen, 0, arenaH+2, styleStatus, fmt.Sprintf(
		"gen %d  tick %d  feeders %d  food %d/%d  speed %dx  %s",
		s.Generation+1, s.Tick, len(s.Feeders), len(s.ActiveFood()), len(s.Food), speed, status,
	))
	drawText(screen, 0, arenaH+3, styleBorder, "[space] pause  [r] reset  [n] next gen  [+/-] speed  [q] quit")

	drawTable(screen, arenaW+3, 0, height, records)
	screen.Show()
}

// drawTable lists generation records newest first.
func drawTable(screen tcell.Screen, x, y, height int, records []genetics.GenerationRecord) {
	drawText(screen, x, y, styleHeader, fmt.Sprintf("%5s %12s %10s", "gen", "average", "highest"))
	y++

	rows := height - y
	for i := len(records) - 1; i >= 0 && rows > 0; i-- {
		r := records[i]
		drawText(screen, x, y, styleDefault, fmt.Sprintf("%5d %12.3f %10.0f", r.Generation, r.AverageFitness, r.HighestFitness))
		y++
		rows--
	}
}

func headingGlyph(direction float64) rune {
	octant := int(math.Round(direction/(math.Pi/4))) % len(headings)
	if octant < 0 {
		octant += len(headings)
	}
	return headings[octant]
}

func drawBox(screen tcell.Screen, x, y, w, h int) {
	for i := x + 1; i < x+w-1; i++ {
		screen.SetContent(i, y, tcell.RuneHLine, nil, styleBorder)
		screen.SetContent(i, y+h-1, tcell.RuneHLine, nil, styleBorder)
	}
	for j := y + 1; j < y+h-1; j++ {
		screen.SetContent(x, j, tcell.RuneVLine, nil, styleBorder)
		screen.SetContent(x+w-1, j, tcell.RuneVLine, nil, styleBorder)
	}
	screen.SetContent(x, y, tcell.RuneULCorner, nil, styleBorder)
	screen.SetContent(x+w-1, y, tcell.RuneURCorner, nil, styleBorder)
	screen.SetContent(x, y+h-1, tcell.RuneLLCorner, nil, styleBorder)
	screen.SetContent(x+w-1, y+h-1, tcell.RuneLRCorner, nil, styleBorder)
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
