package window

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/san-kum/trackball/internal/viz"
)

const (
	zoomDuration = 0.25
	wheelStep    = 1.15
)

// Zoom eases a camera's zoom toward a target set by wheel input.
type Zoom struct {
	cam    *viz.Camera
	target float64
	tween  *gween.Tween
}

func NewZoom(cam *viz.Camera) *Zoom {
	return &Zoom{cam: cam, target: cam.Zoom}
}

// Wheel retargets the tween by wheelStep per notch. Notches accumulate onto
// the previous target while a tween is in flight.
func (z *Zoom) Wheel(notches float64) {
	if notches == 0 {
		return
	}
	var clamped viz.Camera
	clamped.SetZoom(z.target * math.Pow(wheelStep, notches))
	z.target = clamped.Zoom
	z.tween = gween.New(float32(z.cam.Zoom), float32(z.target), zoomDuration, ease.OutQuad)
}

// Update advances the tween by dt seconds.
func (z *Zoom) Update(dt float32) {
	if z.tween == nil {
		return
	}
	v, done := z.tween.Update(dt)
	z.cam.SetZoom(float64(v))
	if done {
		z.cam.SetZoom(z.target)
		z.tween = nil
	}
}

func (z *Zoom) Animating() bool { return z.tween != nil }

func (z *Zoom) Target() float64 { return z.target }
