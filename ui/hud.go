package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/genetics"
	"github.com/pthm-cable/feeders/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title              string
	Generation         int
	Tick               int
	TicksPerGeneration int
	Feeders            int
	Food               int
	FoodTotal          int
	Speed              int
	FPS                int32
	Paused             bool
	Milestone          string // most recent milestone, "" for none
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
	x, y     int32
}

// NewHUD creates a new HUD renderer drawing at (x, y).
func NewHUD(x, y int32) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	// Title
	rl.DrawText(data.Title, h.x, h.y, 20, rl.White)

	// Population counts
	rl.DrawText(
		fmt.Sprintf("Generation: %d | Feeders: %d | Food: %d/%d", data.Generation, data.Feeders, data.Food, data.FoodTotal),
		h.x, h.y+25, 16, rl.LightGray,
	)

	// Simulation info
	rl.DrawText(
		fmt.Sprintf("Tick: %d/%d | Speed: %dx | FPS: %d", data.Tick, data.TicksPerGeneration, data.Speed, data.FPS),
		h.x, h.y+45, 16, rl.LightGray,
	)

	// Status
	statusText := "Running"
	if data.Paused {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, h.x, h.y+65, 16, rl.Yellow)

	if data.Milestone != "" {
		rl.DrawText(data.Milestone, h.x, h.y+85, 14, rl.SkyBlue)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenWidth, screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders the tick phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel, one row per registered phase.
func (p *PerfPanel) Draw(stats telemetry.PerfStats, registry *telemetry.PhaseRegistry) {
	x := p.x
	y := p.y

	rl.DrawText("Tick Performance", x, y, 16, rl.White)
	y += 20

	rl.DrawText(
		fmt.Sprintf("Avg: %s  (%.0f ticks/s)", stats.AvgTickDuration.Round(time.Microsecond), stats.TicksPerSecond),
		x, y, 14, rl.Yellow,
	)
	y += 16

	for _, phase := range registry.All() {
		avg := stats.PhaseAvg[phase.ID]
		pct := stats.PhasePct[phase.ID]

		color := rl.LightGray
		if pct > 50 {
			color = rl.Red
		} else if pct > 25 {
			color = rl.Orange
		}

		rl.DrawText(
			fmt.Sprintf("%-14s %8s %5.1f%%", phase.Name, avg.Round(time.Microsecond), pct),
			x, y, 12, color,
		)
		y += 14
	}
}

// generationSections describes the last-generation statistics block.
var generationSections = []SectionDescriptor{
	{
		Title: "Last Generation",
		Fields: []FieldDescriptor{
			{Label: "Average", Widget: WidgetText, Format: "%.2f", Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.AverageFitness })},
			{Label: "Highest", Widget: WidgetText, Format: "%.0f", Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.HighestFitness })},
			{Label: "Median", Widget: WidgetText, Format: "%.1f", Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.FitnessP50 })},
			{Label: "Eaten", Widget: WidgetText, Format: "%.0f", Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return float64(s.FoodEaten) })},
			{Label: "Recognized", Widget: WidgetBar, Range: FieldRange{Min: 0, Max: 1}, Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.Recognition })},
		},
	},
	{
		Title: "Mean Traits",
		Fields: []FieldDescriptor{
			{Label: "Speed", Widget: WidgetBar, Range: traitRange, Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.MeanSpeed })},
			{Label: "Eyesight", Widget: WidgetBar, Range: traitRange, Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.MeanEyesight })},
			{Label: "Intellect", Widget: WidgetBar, Range: traitRange, Getter: statsGetter(func(s telemetry.GenerationStats) float64 { return s.MeanIntelligence })},
		},
	},
}

// traitRange covers the default 4-bit trait segment.
var traitRange = FieldRange{Min: 0, Max: 15}

func statsGetter(f func(telemetry.GenerationStats) float64) func(any) float32 {
	return func(data any) float32 {
		s, ok := data.(telemetry.GenerationStats)
		if !ok {
			return 0
		}
		return float32(f(s))
	}
}

// GenerationPanel shows the last generation's statistics and a table of
// recent generation records.
type GenerationPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	rows     int
}

// NewGenerationPanel creates a panel showing up to rows recent records.
func NewGenerationPanel(x, y, width int32, rows int) *GenerationPanel {
	return &GenerationPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		rows:     rows,
	}
}

// SetPosition updates the panel position.
func (p *GenerationPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the Y position below it.
// stats is nil before the first generation ends.
func (p *GenerationPanel) Draw(records []genetics.GenerationRecord, stats *telemetry.GenerationStats) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	lh := r.Theme.LineHeight

	height := int32(p.rows+2)*lh + padding*2
	if stats != nil {
		height += 11 * lh
	}
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + padding
	y := p.y + padding
	inner := p.width - padding*2

	if stats != nil {
		for _, sd := range generationSections {
			y = r.DrawSection(x, y, sd, *stats, inner)
		}
	}

	y = r.DrawSectionHeader(x, y, "Generations")
	rl.DrawText(fmt.Sprintf("%5s %10s %10s", "gen", "average", "highest"), x, y, r.Theme.FontSize, r.Theme.LabelColor)
	y += lh

	if len(records) == 0 {
		r.DrawLabel(x, y, "no generations yet")
		return p.y + height
	}

	start := len(records) - p.rows
	if start < 0 {
		start = 0
	}
	// Newest first
	for i := len(records) - 1; i >= start; i-- {
		rec := records[i]
		rl.DrawText(
			fmt.Sprintf("%5d %10.2f %10.0f", rec.Generation, rec.AverageFitness, rec.HighestFitness),
			x, y, r.Theme.FontSize, r.Theme.ValueColor,
		)
		y += lh
	}
	return p.y + height
}
