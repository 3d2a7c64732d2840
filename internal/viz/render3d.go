package viz

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/trackball/internal/scene"
)

const (
	minZoom  = 0.2
	maxZoom  = 5.0
	zoomStep = 1.2
	near     = 0.1
)

// Camera looks down -z from (0, 0, Distance) with a perspective projection.
type Camera struct {
	Distance float64
	Zoom     float64
}

func NewCamera(distance float64) *Camera {
	if distance <= near {
		distance = scene.DefaultCamera
	}
	return &Camera{Distance: distance, Zoom: 1}
}

func (c *Camera) ZoomIn()  { c.SetZoom(c.Zoom * zoomStep) }
func (c *Camera) ZoomOut() { c.SetZoom(c.Zoom / zoomStep) }

// SetZoom clamps z to the supported range.
func (c *Camera) SetZoom(z float64) {
	c.Zoom = math.Max(minZoom, math.Min(maxZoom, z))
}

// Project maps a world point onto a w x h surface with the origin at its
// center and y growing downward. ok is false for points at or behind the
// camera plane.
func (c *Camera) Project(p mgl64.Vec3, w, h float64) (x, y, depth float64, ok bool) {
	d := c.Distance - p.Z()
	if d <= near {
		return 0, 0, 0, false
	}
	k := c.Zoom * math.Min(w, h) / d
	return w/2 + p.X()*k, h/2 - p.Y()*k, d, true
}

// Render draws the scene's wireframe onto the canvas.
func Render(cv *Canvas, s *scene.Scene, cam *Camera) {
	if cv == nil || s == nil || cam == nil {
		return
	}
	RenderSegments(cv, s.Segments(), cam)
}

func RenderSegments(cv *Canvas, segs []scene.Segment, cam *Camera) {
	w, h := cv.Dots()
	fw, fh := float64(w), float64(h)
	for _, sg := range segs {
		x1, y1, _, ok1 := cam.Project(sg.A, fw, fh)
		x2, y2, _, ok2 := cam.Project(sg.B, fw, fh)
		if !ok1 || !ok2 || !nearScreen(x1, y1, fw, fh) || !nearScreen(x2, y2, fw, fh) {
			continue
		}
		cv.DrawLine(round(x1), round(y1), round(x2), round(y2))
	}
}

// nearScreen bounds Bresenham's work for points projected far off screen.
func nearScreen(x, y, w, h float64) bool {
	return x > -4*w && x < 5*w && y > -4*h && y < 5*h
}

func round(v float64) int { return int(math.Round(v)) }
