package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ControlsState is what the controls panel shows and edits.
type ControlsState struct {
	Paused      bool
	FeederCount int // applied on reset
	FoodCount   int // applied on respawn
	MaxCount    int
	Speed       int // steps per frame
	MaxSpeed    int
}

// ControlsActions reports what the user did this frame.
type ControlsActions struct {
	TogglePause   bool
	Reset         bool
	AddFeeder     bool
	NextGen       bool
	FeederCount   int
	FoodCount     int
	Speed         int
	OverlayToggle OverlayID
}

// ControlsPanel renders the right-side controls with raygui buttons and sliders.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Draw renders the controls and returns the actions taken plus the Y
// position below the panel.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) (ControlsActions, int32) {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	actions := ControlsActions{
		FeederCount: state.FeederCount,
		FoodCount:   state.FoodCount,
		Speed:       state.Speed,
	}

	panelHeight := int32(250) + int32(len(overlays.All()))*lineHeight
	r.DrawPanel(c.x, c.y, c.width, panelHeight)

	x := float32(c.x + padding)
	y := float32(c.y + padding)
	inner := float32(c.width - padding*2)
	half := (inner - 10) / 2

	rl.DrawText("Controls", int32(x), int32(y), 16, rl.White)
	y += float32(lineHeight) + 6

	// Buttons
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, toggleText(state.Paused, "Resume", "Pause")) {
		actions.TogglePause = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Reset") {
		actions.Reset = true
	}
	y += 30
	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 24}, "Add Feeder") {
		actions.AddFeeder = true
	}
	if gui.Button(rl.Rectangle{X: x + half + 10, Y: y, Width: half, Height: 24}, "Next Gen") {
		actions.NextGen = true
	}
	y += 36

	// Sliders
	actions.FeederCount = c.countSlider(x, &y, inner, "Feeders (on reset)", state.FeederCount, 0, state.MaxCount)
	actions.FoodCount = c.countSlider(x, &y, inner, "Food (per generation)", state.FoodCount, 0, state.MaxCount)
	actions.Speed = c.countSlider(x, &y, inner, "Steps per frame", state.Speed, 1, state.MaxSpeed)

	// Overlay toggles
	y += 4
	rl.DrawText("Overlays", int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += float32(lineHeight)
	for _, desc := range overlays.All() {
		if c.drawToggle(int32(x), int32(y), desc, overlays.IsEnabled(desc.ID), int32(inner)) {
			actions.OverlayToggle = desc.ID
		}
		y += float32(lineHeight)
	}

	rl.DrawText("Click the arena to drop food", int32(x), int32(y)+4, r.Theme.FontSize, rl.Gray)

	return actions, c.y + panelHeight
}

// countSlider draws a labelled integer slider and returns the new value.
func (c *ControlsPanel) countSlider(x float32, y *float32, width float32, label string, value, minVal, maxVal int) int {
	rl.DrawText(label, int32(x), int32(*y), c.renderer.Theme.FontSize, rl.Gray)
	*y += 16
	newValue := gui.SliderBar(
		rl.Rectangle{X: x, Y: *y, Width: width - 50, Height: 16},
		"", "",
		float32(value), float32(minVal), float32(maxVal),
	)
	rl.DrawText(fmt.Sprintf("%d", int(newValue)), int32(x+width-44), int32(*y+2), c.renderer.Theme.FontSize, rl.LightGray)
	*y += 26
	return int(newValue)
}

// drawToggle draws a single overlay toggle line. Returns true if it was clicked.
func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) bool {
	r := c.renderer

	// Status indicator
	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	// Name
	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	// Key binding (right aligned)
	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}

	bounds := rl.Rectangle{X: float32(x), Y: float32(y), Width: float32(width), Height: float32(r.Theme.LineHeight)}
	return rl.IsMouseButtonPressed(rl.MouseLeftButton) && rl.CheckCollisionPointRec(rl.GetMousePosition(), bounds)
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
