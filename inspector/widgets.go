package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Widget colors
var (
	ColorBarBg       = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill     = rl.Color{R: 100, G: 180, B: 100, A: 255}
	ColorText        = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorAngleBg     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorAngleNeedle = rl.Color{R: 255, G: 200, B: 100, A: 255}
	ColorBoolOn      = rl.Color{R: 100, G: 200, B: 100, A: 255}
	ColorBoolOff     = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// Row heights per widget.
const (
	labelHeight = 18
	barHeight   = 18
	angleSize   = 36
	boolHeight  = 18
)

// DrawLabel renders a text value.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)
	rl.DrawText(FormatValue(value, options["fmt"]), x+90, y, 14, ColorText)
	return labelHeight
}

// DrawBar renders a horizontal progress bar scaled by the max option.
func DrawBar(x, y int32, name string, value float32, options map[string]string) int32 {
	ratio := value / GetMax(options)
	if ratio > 1 {
		ratio = 1
	}
	if ratio < 0 {
		ratio = 0
	}

	barWidth := int32(120)

	rl.DrawText(name, x, y, 14, ColorTextDim)
	barX := x + 90
	rl.DrawRectangle(barX, y, barWidth, 14, ColorBarBg)
	rl.DrawRectangle(barX, y, int32(float32(barWidth)*ratio), 14, ColorBarFill)
	rl.DrawText(FormatValue(value, options["fmt"]), barX+barWidth+5, y, 14, ColorTextDim)

	return barHeight
}

// DrawAngle renders a heading dial.
func DrawAngle(x, y int32, name string, radians float32) int32 {
	centerX := x + 90 + angleSize/2
	centerY := y + angleSize/2

	rl.DrawText(name, x, y+angleSize/2-7, 14, ColorTextDim)

	rl.DrawCircle(centerX, centerY, float32(angleSize/2), ColorAngleBg)
	rl.DrawCircleLines(centerX, centerY, float32(angleSize/2), ColorTextDim)

	needleLen := float32(angleSize/2 - 4)
	sin, cos := math.Sincos(float64(radians))
	rl.DrawLineEx(
		rl.Vector2{X: float32(centerX), Y: float32(centerY)},
		rl.Vector2{X: float32(centerX) + needleLen*float32(cos), Y: float32(centerY) + needleLen*float32(sin)},
		2,
		ColorAngleNeedle,
	)

	degrees := radians * 180 / math.Pi
	rl.DrawText(fmt.Sprintf("%.0f deg", degrees), x+90+angleSize+8, y+angleSize/2-7, 14, ColorTextDim)

	return angleSize + 4
}

// DrawBool renders an on/off indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	rl.DrawText(name, x, y, 14, ColorTextDim)

	color := ColorBoolOff
	text := "no"
	if value {
		color = ColorBoolOn
		text = "yes"
	}
	rl.DrawRectangle(x+90, y, 14, 14, color)
	rl.DrawText(text, x+90+19, y, 14, color)

	return boolHeight
}

// DrawField renders a field with its widget and returns the height used.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetAngle:
		if v, ok := GetFloatValue(field.Value); ok {
			return DrawAngle(x, y, field.Name, v)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}

// fieldHeight returns the height DrawField will use for field.
func fieldHeight(field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		return barHeight
	case WidgetAngle:
		return angleSize + 4
	case WidgetBool:
		return boolHeight
	}
	return labelHeight
}
