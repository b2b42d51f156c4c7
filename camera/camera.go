// Package camera provides a 2D camera for zooming into the arena.
package camera

// Camera controls the viewport into the arena. The viewport is a fixed
// screen rectangle; at zoom 1 it shows the whole world frame. Panning is
// clamped so the view never leaves the frame.
type Camera struct {
	// Position is the camera center in world coordinates
	X, Y float32

	// Zoom level (1.0 = whole frame, 2.0 = 2x magnification)
	Zoom float32

	// Viewport rectangle on screen
	ViewportX, ViewportY float32
	ViewportW, ViewportH float32

	// World frame in world coordinates
	WorldX, WorldY float32
	WorldW, WorldH float32

	// Zoom constraints
	MinZoom, MaxZoom float32
}

// New creates a camera whose viewport shows the world frame
// (worldX, worldY, worldW, worldH) at the same rectangle on screen.
func New(worldX, worldY, worldW, worldH float32) *Camera {
	c := &Camera{
		ViewportX: worldX,
		ViewportY: worldY,
		ViewportW: worldW,
		ViewportH: worldH,
		WorldX:    worldX,
		WorldY:    worldY,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   6.0,
	}
	c.Reset()
	return c
}

// scale is the screen pixels per world unit at zoom 1.
func (c *Camera) scale() float32 {
	sx := c.ViewportW / c.WorldW
	sy := c.ViewportH / c.WorldH
	if sy < sx {
		return sy
	}
	return sx
}

// Scale returns the screen pixels per world unit at the current zoom.
func (c *Camera) Scale() float32 {
	return c.scale() * c.Zoom
}

// Offset returns the viewport center on screen.
func (c *Camera) Offset() (x, y float32) {
	return c.ViewportX + c.ViewportW/2, c.ViewportY + c.ViewportH/2
}

// WorldToScreen converts world coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	ox, oy := c.Offset()
	s := c.Scale()
	return ox + (wx-c.X)*s, oy + (wy-c.Y)*s
}

// ScreenToWorld converts screen coordinates to world coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	ox, oy := c.Offset()
	s := c.Scale()
	return c.X + (sx-ox)/s, c.Y + (sy-oy)/s
}

// InViewport reports whether a screen point lies inside the viewport.
func (c *Camera) InViewport(sx, sy float32) bool {
	return sx >= c.ViewportX && sx <= c.ViewportX+c.ViewportW &&
		sy >= c.ViewportY && sy <= c.ViewportY+c.ViewportH
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	minX, minY, maxX, maxY := c.VisibleWorldBounds()
	return wx+radius >= minX && wx-radius <= maxX &&
		wy+radius >= minY && wy-radius <= maxY
}

// Pan moves the camera by the given delta in screen pixels.
func (c *Camera) Pan(dx, dy float32) {
	s := c.Scale()
	c.X += dx / s
	c.Y += dy / s
	c.clampPosition()
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
	c.clampPosition()
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt multiplies the zoom by factor keeping the world point under the
// screen position (sx, sy) fixed where the frame allows.
func (c *Camera) ZoomAt(factor, sx, sy float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.Zoom = clamp(c.Zoom*factor, c.MinZoom, c.MaxZoom)

	// Move the center so (wx, wy) maps back to (sx, sy)
	ox, oy := c.Offset()
	s := c.Scale()
	c.X = wx - (sx-ox)/s
	c.Y = wy - (sy-oy)/s
	c.clampPosition()
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X = c.WorldX + c.WorldW/2
	c.Y = c.WorldY + c.WorldH/2
	c.Zoom = 1.0
}

// VisibleWorldBounds returns the world-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	return c.X - halfW, c.Y - halfH, c.X + halfW, c.Y + halfH
}

// clampPosition keeps the visible area inside the world frame.
func (c *Camera) clampPosition() {
	s := c.Scale()
	halfW := c.ViewportW / (2 * s)
	halfH := c.ViewportH / (2 * s)
	c.X = clampCenter(c.X, c.WorldX, c.WorldW, halfW)
	c.Y = clampCenter(c.Y, c.WorldY, c.WorldH, halfH)
}

// clampCenter clamps a center coordinate so [v-half, v+half] stays inside
// [start, start+size]. A view wider than the frame is centered.
func clampCenter(v, start, size, half float32) float32 {
	if 2*half >= size {
		return start + size/2
	}
	return clamp(v, start+half, start+size-half)
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
