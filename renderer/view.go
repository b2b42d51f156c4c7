package renderer

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/camera"
	"github.com/pthm-cable/feeders/config"
	"github.com/pthm-cable/feeders/game"
	"github.com/pthm-cable/feeders/inspector"
	"github.com/pthm-cable/feeders/telemetry"
	"github.com/pthm-cable/feeders/ui"
)

const (
	controlsWidth   = 280
	generationWidth = 300
	generationRows  = 5
	columnGap       = 10

	// zoomStep is the zoom factor per mouse wheel notch.
	zoomStep = 1.15

	// milestoneShown is how long a milestone banner stays in the HUD.
	milestoneShown = 5 * time.Second

	controlsLegend = "[Space] Pause  [R] Reset  [N] Next gen  [F] Add feeder  [+/-] Speed  [Wheel/RMB] Zoom/Pan  [Home] Reset view  [Click] Inspect feeder / drop food"
)

// View is the window host: it steps a game once per frame, draws it and
// applies user input.
type View struct {
	cfg      *config.Config
	theme    ui.Theme
	overlays *ui.OverlayRegistry
	camera   *camera.Camera

	arena      *ArenaRenderer
	particles  *ParticleRenderer
	hud        *ui.HUD
	controls   *ui.ControlsPanel
	generation *ui.GenerationPanel
	perf       *ui.PerfPanel
	phases     *telemetry.PhaseRegistry
	perfX      int32
	inspector  *inspector.Inspector
	controlsX  int32

	lastStats     *telemetry.GenerationStats
	milestone     string
	milestoneTime time.Time
}

// NewView lays out the window for cfg. The arena sits at the top left with
// the HUD below it. The controls and feeder inspector share the next column;
// generation and perf panels fill the last one.
func NewView(cfg *config.Config) *View {
	theme := ui.DefaultTheme()

	arenaRight := int32(cfg.Arena.X + cfg.Arena.Width)
	arenaBottom := int32(cfg.Arena.Y + cfg.Arena.Height)
	controlsX := arenaRight + columnGap
	generationX := controlsX + controlsWidth + columnGap

	return &View{
		cfg:        cfg,
		theme:      theme,
		overlays:   ui.NewOverlayRegistry(),
		camera:     camera.New(float32(cfg.Arena.X), float32(cfg.Arena.Y), float32(cfg.Arena.Width), float32(cfg.Arena.Height)),
		arena:      NewArenaRenderer(theme),
		particles:  NewParticleRenderer(),
		hud:        ui.NewHUD(10, arenaBottom+10),
		controls:   ui.NewControlsPanel(controlsX, 10, controlsWidth),
		generation: ui.NewGenerationPanel(generationX, 10, generationWidth, generationRows),
		perf:       ui.NewPerfPanel(generationX, 10),
		perfX:      generationX,
		phases:     telemetry.NewPhaseRegistry(),
		inspector:  inspector.NewInspector(controlsX, 10, controlsWidth),
		controlsX:  controlsX,
	}
}

// RecordStats keeps the latest generation stats for the side panel.
// Pass it as game.Options.OnStats.
func (v *View) RecordStats(s telemetry.GenerationStats) {
	v.lastStats = &s
}

// RecordMilestone shows m in the HUD for a few seconds.
// Pass it as game.Options.OnMilestone.
func (v *View) RecordMilestone(m telemetry.Milestone) {
	v.milestone = m.Description
	v.milestoneTime = time.Now()
}

// Run drives g until the window closes or stop reports true.
// The raylib window must already be open.
func (v *View) Run(g *game.Game, stop func(*game.Game) bool) {
	for !rl.WindowShouldClose() {
		v.handleInput(g)
		g.Update()
		g.RecordFrame()

		snap := g.Snapshot()
		v.particles.Update(snap)

		rl.BeginDrawing()
		rl.ClearBackground(v.theme.Background)
		v.draw(g, snap)
		rl.EndDrawing()

		if stop != nil && stop(g) {
			return
		}
	}
}

// handleInput applies keyboard shortcuts and arena clicks.
func (v *View) handleInput(g *game.Game) {
	if rl.IsKeyPressed(rl.KeySpace) {
		g.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		v.reset(g)
	}
	if rl.IsKeyPressed(rl.KeyN) {
		g.AdvanceGeneration()
	}
	if rl.IsKeyPressed(rl.KeyF) {
		g.AddRandomFeeder()
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() * 2)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		g.SetStepsPerUpdate(g.StepsPerUpdate() / 2)
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		v.overlays.HandleKeyPress(key)
	}

	if rl.IsKeyPressed(rl.KeyHome) {
		v.camera.Reset()
	}
	if rl.IsKeyPressed(rl.KeyBackspace) {
		v.inspector.Deselect()
	}

	mouse := rl.GetMousePosition()
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && v.inspector.HandleClose(mouse.X, mouse.Y) {
		return
	}
	if !v.camera.InViewport(mouse.X, mouse.Y) {
		return
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		factor := float32(zoomStep)
		if wheel < 0 {
			factor = 1 / factor
		}
		v.camera.ZoomAt(factor, mouse.X, mouse.Y)
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		v.camera.Pan(-delta.X, -delta.Y)
	}

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		wx, wy := v.camera.ScreenToWorld(mouse.X, mouse.Y)
		x, y := float64(wx), float64(wy)

		// Clicking a feeder inspects it, anywhere else drops food.
		if v.inspector.Pick(g.Snapshot(), x, y) {
			return
		}
		a := g.Arena()
		if x >= a.MinX && x <= a.MaxX && y >= a.MinY && y <= a.MaxY {
			g.AddFood(x, y)
		}
	}
}

func (v *View) reset(g *game.Game) {
	g.Reset()
	v.inspector.Deselect()
	v.particles.Reset()
	v.lastStats = nil
	v.milestone = ""
}

func (v *View) draw(g *game.Game, snap game.Snapshot) {
	ox, oy := v.camera.Offset()
	rl.BeginScissorMode(
		int32(v.camera.ViewportX), int32(v.camera.ViewportY),
		int32(v.camera.ViewportW), int32(v.camera.ViewportH),
	)
	rl.BeginMode2D(rl.Camera2D{
		Offset: rl.Vector2{X: ox, Y: oy},
		Target: rl.Vector2{X: v.camera.X, Y: v.camera.Y},
		Zoom:   v.camera.Scale(),
	})
	v.arena.Draw(snap, v.overlays)
	v.particles.Draw()
	v.inspector.DrawSelection(snap)
	rl.EndMode2D()
	rl.EndScissorMode()

	milestone := v.milestone
	if time.Since(v.milestoneTime) > milestoneShown {
		milestone = ""
	}
	v.hud.Draw(ui.HUDData{
		Title:              "Little Feeders",
		Generation:         snap.Generation + 1,
		Tick:               snap.Tick,
		TicksPerGeneration: v.cfg.Simulation.TicksPerGeneration,
		Feeders:            len(snap.Feeders),
		Food:               len(snap.ActiveFood()),
		FoodTotal:          len(snap.Food),
		Speed:              g.StepsPerUpdate(),
		FPS:                rl.GetFPS(),
		Paused:             snap.State == game.Paused,
		Milestone:          milestone,
	})

	actions, controlsBottom := v.controls.Draw(ui.ControlsState{
		Paused:      snap.State == game.Paused,
		FeederCount: g.FeederCount(),
		FoodCount:   g.FoodCount(),
		MaxCount:    config.MaxFeeders,
		Speed:       g.StepsPerUpdate(),
		MaxSpeed:    game.MaxStepsPerUpdate,
	}, v.overlays)
	v.apply(g, actions)
	v.inspector.SetPosition(v.controlsX, controlsBottom+columnGap)

	bottom := v.generation.Draw(g.Records(), v.lastStats)
	v.perf.SetPosition(v.perfX, bottom+columnGap)
	v.perf.Draw(g.PerfStats(), v.phases)
	v.inspector.Draw(snap)

	v.hud.DrawControls(int32(v.cfg.Screen.Width), int32(v.cfg.Screen.Height), controlsLegend)
	if len(snap.Feeders) == 0 {
		rl.DrawText("No feeders. Press F or raise the slider and reset", 20, 20, 14, rl.Orange)
	}
}

// apply carries out what the controls panel reported.
func (v *View) apply(g *game.Game, a ui.ControlsActions) {
	if a.TogglePause {
		g.TogglePause()
	}
	if a.Reset {
		v.reset(g)
	}
	if a.AddFeeder {
		g.AddRandomFeeder()
	}
	if a.NextGen {
		g.AdvanceGeneration()
	}
	if a.FeederCount != g.FeederCount() {
		g.SetFeederCount(a.FeederCount)
	}
	if a.FoodCount != g.FoodCount() {
		g.SetFoodCount(a.FoodCount)
	}
	if a.Speed != g.StepsPerUpdate() {
		g.SetStepsPerUpdate(a.Speed)
	}
	if a.OverlayToggle != "" {
		v.overlays.Toggle(a.OverlayToggle)
	}
}
