package trackball

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/rotmath"
)

// Controller owns the drag state and accumulated orientation of one object.
type Controller struct {
	id   ObjectID
	sink OrientationSink
	cfg  Config

	state       DragState
	last        input.Point
	hasLast     bool
	orientation mgl64.Quat
}

// NewController returns an idle controller with identity orientation. A nil
// sink discards orientations. An invalid cfg falls back to DefaultConfig.
func NewController(id ObjectID, sink OrientationSink, cfg Config) *Controller {
	if cfg.Validate() != nil {
		cfg = DefaultConfig()
	}
	return &Controller{
		id:          id,
		sink:        sink,
		cfg:         cfg,
		orientation: mgl64.QuatIdent(),
	}
}

func (c *Controller) ID() ObjectID            { return c.id }
func (c *Controller) Config() Config          { return c.cfg }
func (c *Controller) DragState() DragState    { return c.state }
func (c *Controller) Orientation() mgl64.Quat { return c.orientation }

// LastCursor returns the drag baseline, if one has been established.
func (c *Controller) LastCursor() (input.Point, bool) {
	return c.last, c.hasLast
}

// Handle applies one classified event. The returned error is always an
// *UpdateError from the sink; the step and the controller state are valid
// either way.
func (c *Controller) Handle(ev input.Event) (Step, error) {
	step := Step{Object: c.id, Event: ev, Before: c.state}

	switch ev.Kind {
	case input.ButtonPressed:
		if ev.Button == input.ButtonLeft && c.state == Idle {
			c.state = Dragging
			c.clearBaseline()
		}
	case input.ButtonReleased:
		if ev.Button == input.ButtonLeft && c.state == Dragging {
			c.state = Idle
			c.clearBaseline()
		}
	case input.CursorMoved:
		if c.state == Dragging {
			return c.drag(step, ev.Pos)
		}
	case input.ResetRequested:
		return c.reset(step)
	}

	step.After = c.state
	step.Orientation = c.orientation
	return step, nil
}

func (c *Controller) drag(step Step, p input.Point) (Step, error) {
	step.After = c.state
	if !c.hasLast {
		c.last, c.hasLast = p, true
		step.Orientation = c.orientation
		return step, nil
	}

	prev := c.last
	c.last = p

	delta := rotmath.DirectionalVector(rotmath.Lift(p.X, p.Y), rotmath.Lift(prev.X, prev.Y))
	axis := c.orientation.Rotate(mgl64.Vec3{delta.Y(), -delta.X(), delta.Z()})
	angle := delta.Len() * c.cfg.Sensitivity

	inc, err := rotmath.AxisAngleToQuat(axis, angle)
	if errors.Is(err, rotmath.ErrDegenerateAxis) {
		step.Orientation = c.orientation
		return step, nil
	}

	c.orientation = inc.Mul(c.orientation).Normalize()
	step.Rotated = true
	step.Angle = angle
	step.Orientation = c.orientation
	return step, c.apply(step)
}

// reset returns the controller to idle at identity and writes identity to
// the sink.
func (c *Controller) reset(step Step) (Step, error) {
	c.state = Idle
	c.clearBaseline()
	c.orientation = mgl64.QuatIdent()
	step.After = c.state
	step.Orientation = c.orientation
	return step, c.apply(step)
}

func (c *Controller) apply(step Step) error {
	if c.sink == nil {
		return nil
	}
	if err := c.sink.ApplyOrientation(c.id, c.orientation); err != nil {
		return &UpdateError{Object: c.id, Event: step.Event, Wrapped: err}
	}
	return nil
}

func (c *Controller) clearBaseline() {
	c.last = input.Point{}
	c.hasLast = false
}
