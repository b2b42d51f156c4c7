// Package inspector shows the details of one selected feeder.
package inspector

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/feeders/game"
)

// Panel dimensions
const (
	PanelPadding = 10
	HeaderHeight = 26
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSelection   = rl.Color{R: 255, G: 255, B: 255, A: 200}
)

// pickTolerance is added to the feeder radius when hit testing clicks.
const pickTolerance = 3

// Inspector tracks the selected feeder by ID. Feeders are respawned with new
// IDs every generation, so a selection ends with its generation.
type Inspector struct {
	selected    uint32
	hasSelected bool

	panelX, panelY int32
	panelWidth     int32
}

// NewInspector creates an inspector drawing its panel at (x, y).
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{panelX: x, panelY: y, panelWidth: width}
}

// SetPosition updates the panel position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.panelX = x
	ins.panelY = y
}

// Pick selects the feeder under the world point (wx, wy), preferring the
// closest. Returns false when no feeder is there; the selection is unchanged.
func (ins *Inspector) Pick(s game.Snapshot, wx, wy float64) bool {
	hit := s.FeederSize/2 + pickTolerance
	best := hit * hit
	found := false

	for _, f := range s.Feeders {
		dx := f.X - wx
		dy := f.Y - wy
		d := dx*dx + dy*dy
		if d <= best {
			best = d
			ins.selected = f.ID
			found = true
		}
	}
	if found {
		ins.hasSelected = true
	}
	return found
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the selected feeder from s. The selection is dropped when
// the feeder is no longer present.
func (ins *Inspector) Selected(s game.Snapshot) (game.FeederView, bool) {
	if !ins.hasSelected {
		return game.FeederView{}, false
	}
	for _, f := range s.Feeders {
		if f.ID == ins.selected {
			return f, true
		}
	}
	ins.Deselect()
	return game.FeederView{}, false
}

// DrawSelection rings the selected feeder. Call inside the arena camera.
func (ins *Inspector) DrawSelection(s game.Snapshot) {
	f, ok := ins.Selected(s)
	if !ok {
		return
	}
	rl.DrawCircleLines(int32(f.X), int32(f.Y), float32(s.FeederSize), ColorSelection)
}

// HandleClose deselects when the close button was clicked at (mouseX, mouseY).
func (ins *Inspector) HandleClose(mouseX, mouseY float32) bool {
	if !ins.hasSelected {
		return false
	}
	closeX := float32(ins.panelX + ins.panelWidth - 22)
	closeY := float32(ins.panelY + 4)
	if mouseX >= closeX && mouseX <= closeX+18 && mouseY >= closeY && mouseY <= closeY+18 {
		ins.Deselect()
		return true
	}
	return false
}

// Draw renders the panel for the selected feeder, if any.
func (ins *Inspector) Draw(s game.Snapshot) {
	f, ok := ins.Selected(s)
	if !ok {
		return
	}

	fields := ExtractFields(f)
	panelHeight := int32(HeaderHeight + 2*PanelPadding)
	for _, field := range fields {
		panelHeight += fieldHeight(field)
	}

	rl.DrawRectangle(ins.panelX, ins.panelY, ins.panelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: float32(ins.panelWidth), Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	// Header
	rl.DrawRectangle(ins.panelX, ins.panelY, ins.panelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("FEEDER %d", f.ID), ins.panelX+PanelPadding, ins.panelY+6, 14, ColorHeaderText)

	// Close button
	closeX := ins.panelX + ins.panelWidth - 22
	closeY := ins.panelY + 4
	rl.DrawRectangle(closeX, closeY, 18, 18, ColorCloseBtn)
	rl.DrawText("X", closeX+5, closeY+2, 14, rl.White)

	x := ins.panelX + PanelPadding
	y := ins.panelY + HeaderHeight + PanelPadding
	for _, field := range fields {
		y += DrawField(x, y, field)
	}
}
