package viz

import (
	"math"

	"github.com/san-kum/nbodysim/internal/dynamo"
)

const (
	ZoomStep = 0.05
	PanStep  = 10.0
)

// Camera maps world coordinates onto canvas sub-pixels. Zoom 1 fits the
// world bounds into the canvas.
type Camera struct {
	Center dynamo.Vec2
	Zoom   float64

	radius float64
	fit    float64
	pw, ph int
}

// NewCamera centres on a world of the given size drawn into a pw x ph
// sub-pixel canvas.
func NewCamera(worldW, worldH, radius float64, pw, ph int) *Camera {
	cam := &Camera{
		Center: dynamo.Vec2{X: worldW / 2, Y: worldH / 2},
		Zoom:   1,
		radius: radius,
	}
	cam.fit = math.Min(float64(pw)/worldW, float64(ph)/worldH)
	cam.pw, cam.ph = pw, ph
	return cam
}

// Scale is sub-pixels per world unit.
func (c *Camera) Scale() float64 { return c.fit * c.Zoom }

// Pan moves the view by PanStep/zoom world units per unit of dx, dy.
func (c *Camera) Pan(dx, dy float64) {
	c.Center.X += dx * PanStep / c.Zoom
	c.Center.Y += dy * PanStep / c.Zoom
}

func (c *Camera) ZoomIn() { c.Zoom += ZoomStep }

// ZoomOut reports false and leaves the zoom unchanged when the body radius
// times the new zoom would fall below 1.
func (c *Camera) ZoomOut() bool {
	next := c.Zoom - ZoomStep
	if c.radius*next < 1 {
		return false
	}
	c.Zoom = next
	return true
}

// Project returns the sub-pixel position of a world point.
func (c *Camera) Project(p dynamo.Vec2) (int, int) {
	s := c.Scale()
	x := (p.X-c.Center.X)*s + float64(c.pw)/2
	y := (p.Y-c.Center.Y)*s + float64(c.ph)/2
	return int(math.Floor(x)), int(math.Floor(y))
}

// PixelRadius is the projected body radius in sub-pixels. ZoomOut keeps
// radius*Zoom at or above 1, so this is at least 1 whenever the fit scale
// is at least one sub-pixel per world unit.
func (c *Camera) PixelRadius() int {
	return int(math.Round(c.radius * c.Scale()))
}

// Draw clears canvas and draws every body as a filled circle in its tag
// colour.
func (c *Camera) Draw(canvas *Canvas, bodies []dynamo.Body) {
	canvas.Clear()
	r := c.PixelRadius()
	for _, b := range bodies {
		x, y := c.Project(b.Position)
		if x < -r || y < -r || x > c.pw+r || y > c.ph+r {
			continue
		}
		canvas.DrawCircle(x, y, r, true, b.Tag)
	}
}
