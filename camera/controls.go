package camera

import "math"

// Controls turns raw mouse events into orbit rotation and zoom. A drag of
// one viewport height rotates by RotateSpeed radians.
type Controls struct {
	Orbit          *Orbit
	RotateSpeed    float32
	ViewportHeight float32

	dragging     bool
	lastX, lastY float64
}

func NewControls(orbit *Orbit, viewportHeight int) *Controls {
	return &Controls{
		Orbit:          orbit,
		RotateSpeed:    2 * math.Pi,
		ViewportHeight: float32(viewportHeight),
	}
}

func (c *Controls) MouseButton(button int, pressed bool, x, y float64) {
	if button != 0 {
		return
	}
	c.dragging = pressed
	c.lastX, c.lastY = x, y
}

func (c *Controls) CursorMoved(x, y float64) {
	if !c.dragging || c.ViewportHeight <= 0 {
		return
	}
	dx := float32(x-c.lastX) / c.ViewportHeight
	dy := float32(y-c.lastY) / c.ViewportHeight
	c.lastX, c.lastY = x, y
	c.Orbit.Rotate(-dx*c.RotateSpeed, dy*c.RotateSpeed)
}

func (c *Controls) Scroll(yoff float64) {
	c.Orbit.Zoom(float32(yoff))
}

func (c *Controls) Resize(width, height int) {
	c.ViewportHeight = float32(height)
}

func (c *Controls) Dragging() bool {
	return c.dragging
}
