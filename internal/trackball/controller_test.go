package trackball

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/san-kum/trackball/internal/input"
	"github.com/san-kum/trackball/internal/rotmath"
)

type testSink struct {
	applied map[ObjectID]mgl64.Quat
	calls   int
	fail    bool
}

func newTestSink() *testSink {
	return &testSink{applied: make(map[ObjectID]mgl64.Quat)}
}

func (s *testSink) ApplyOrientation(id ObjectID, q mgl64.Quat) error {
	s.calls++
	if s.fail {
		return ErrObjectNotFound
	}
	s.applied[id] = q
	return nil
}

func drive(t *testing.T, c *Controller, events ...input.Event) {
	t.Helper()
	for _, ev := range events {
		if _, err := c.Handle(ev); err != nil {
			t.Fatalf("Handle(%v): %v", ev, err)
		}
	}
}

func TestController_Initial(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())

	if c.DragState() != Idle {
		t.Errorf("initial state = %v, want idle", c.DragState())
	}
	if c.Orientation() != mgl64.QuatIdent() {
		t.Errorf("initial orientation = %v, want identity", c.Orientation())
	}
	if _, ok := c.LastCursor(); ok {
		t.Error("initial baseline should be empty")
	}
}

func TestController_IdleMovesDoNothing(t *testing.T) {
	sink := newTestSink()
	c := NewController(NewObjectID(), sink, DefaultConfig())

	for i := 0; i < 20; i++ {
		drive(t, c, input.Moved(float64(i*7), float64(i*3)))
	}

	if c.Orientation() != mgl64.QuatIdent() {
		t.Errorf("orientation changed while idle: %v", c.Orientation())
	}
	if sink.calls != 0 {
		t.Errorf("sink called %d times while idle", sink.calls)
	}
	if _, ok := c.LastCursor(); ok {
		t.Error("baseline set while idle")
	}
}

func TestController_FirstSampleIsBaseline(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft))

	step, err := c.Handle(input.Moved(4, 4))
	if err != nil {
		t.Fatal(err)
	}
	if step.Rotated || c.Orientation() != mgl64.QuatIdent() {
		t.Error("first sample must not rotate")
	}
	if p, ok := c.LastCursor(); !ok || p != (input.Point{X: 4, Y: 4}) {
		t.Errorf("baseline = %v, %v", p, ok)
	}

	step, _ = c.Handle(input.Moved(9, 4))
	if !step.Rotated || c.Orientation() == mgl64.QuatIdent() {
		t.Error("second sample should rotate")
	}
}

func TestController_ReleaseClearsBaseline(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	drive(t, c,
		input.Pressed(input.ButtonLeft),
		input.Moved(0, 0),
		input.Released(input.ButtonLeft),
	)
	if _, ok := c.LastCursor(); ok {
		t.Fatal("baseline survived release")
	}

	drive(t, c, input.Pressed(input.ButtonLeft))
	before := c.Orientation()
	step, _ := c.Handle(input.Moved(50, 50))
	if step.Rotated || c.Orientation() != before {
		t.Error("first move after re-press must only set the baseline")
	}
}

func TestController_ZeroDelta(t *testing.T) {
	sink := newTestSink()
	c := NewController(NewObjectID(), sink, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(3, 3))

	step, err := c.Handle(input.Moved(3, 3))
	if err != nil {
		t.Fatal(err)
	}
	if step.Rotated || c.Orientation() != mgl64.QuatIdent() {
		t.Error("identical position must not rotate")
	}
	if sink.calls != 0 {
		t.Errorf("sink called %d times for zero delta", sink.calls)
	}
}

func TestController_Scenario(t *testing.T) {
	sink := newTestSink()
	id := NewObjectID()
	c := NewController(id, sink, DefaultConfig())

	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0))
	if c.Orientation() != mgl64.QuatIdent() {
		t.Fatal("baseline changed orientation")
	}

	step, err := c.Handle(input.Moved(10, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !step.Rotated || math.Abs(step.Angle-10) > 1e-12 {
		t.Fatalf("step = %+v, want 10 degree rotation", step)
	}

	// delta (10,0) -> raw axis (0,-10,0); identity frame leaves it unchanged.
	half := mgl64.DegToRad(10) / 2
	want := mgl64.Quat{W: math.Cos(half), V: mgl64.Vec3{0, -math.Sin(half), 0}}
	if !rotmath.Near(c.Orientation(), want, 1e-9) {
		t.Errorf("orientation = %v, want %v", c.Orientation(), want)
	}
	if sink.applied[id] != c.Orientation() {
		t.Error("sink orientation differs from controller orientation")
	}

	drive(t, c, input.Released(input.ButtonLeft))
	after := c.Orientation()
	drive(t, c, input.Moved(40, 40), input.Moved(-20, 5))
	if c.Orientation() != after {
		t.Error("moves after release changed orientation")
	}
}

func TestController_VerticalMotion(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0), input.Moved(0, 20))

	if got := rotmath.Axis(c.Orientation()); !rotmath.NearVec(got, mgl64.Vec3{1, 0, 0}, 1e-9) {
		t.Errorf("vertical motion axis = %v, want +x", got)
	}
	if got := rotmath.Angle(c.Orientation()); math.Abs(got-20) > 1e-6 {
		t.Errorf("angle = %v, want 20", got)
	}
}

func TestController_AxisFollowsCurrentFrame(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	// 90 degrees about +x, then a horizontal stroke.
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0), input.Moved(0, 90))
	first := c.Orientation()

	drive(t, c, input.Moved(10, 90))

	// Raw axis -y, carried into the current frame by the first rotation.
	axis := first.Rotate(mgl64.Vec3{0, -1, 0})
	inc, _ := rotmath.AxisAngleToQuat(axis, 10)
	want := inc.Mul(first).Normalize()
	if !rotmath.Near(c.Orientation(), want, 1e-9) {
		t.Errorf("orientation = %v, want %v", c.Orientation(), want)
	}
}

func TestController_Sensitivity(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity float64
		want        float64
	}{
		{"default", 1.0, 5},
		{"double", 2.0, 10},
		{"fine", 0.25, 1.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewController(NewObjectID(), nil, Config{Sensitivity: tt.sensitivity})
			drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0), input.Moved(3, 4))
			if got := rotmath.Angle(c.Orientation()); math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("angle = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestController_InvalidConfigFallsBack(t *testing.T) {
	for _, s := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		c := NewController(NewObjectID(), nil, Config{Sensitivity: s})
		if c.Config().Sensitivity != DefaultSensitivity {
			t.Errorf("sensitivity %v: got %v, want default", s, c.Config().Sensitivity)
		}
	}
}

func TestController_UnitNorm(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft))

	x, y := 0.0, 0.0
	for i := 0; i < 5000; i++ {
		x += math.Sin(float64(i)*0.37) * 13
		y += math.Cos(float64(i)*0.11) * 7
		drive(t, c, input.Moved(x, y))
		if !rotmath.IsUnit(c.Orientation(), 1e-6) {
			t.Fatalf("step %d: |q| = %v", i, c.Orientation().Len())
		}
	}
}

func TestController_RepeatedPressIsNoop(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(1, 1))

	step, _ := c.Handle(input.Pressed(input.ButtonLeft))
	if step.Before != Dragging || step.After != Dragging {
		t.Errorf("step = %+v", step)
	}
	if p, ok := c.LastCursor(); !ok || p != (input.Point{X: 1, Y: 1}) {
		t.Error("repeated press reset the baseline")
	}
}

func TestController_IgnoresOtherButtonsAndQuitEvents(t *testing.T) {
	c := NewController(NewObjectID(), nil, DefaultConfig())

	drive(t, c, input.Pressed(input.ButtonRight))
	if c.DragState() != Idle {
		t.Fatal("right press started a drag")
	}

	drive(t, c, input.Pressed(input.ButtonLeft), input.Released(input.ButtonMiddle))
	if c.DragState() != Dragging {
		t.Fatal("middle release ended a left drag")
	}

	drive(t, c, input.Close(), input.Escape(), input.Event{})
	if c.DragState() != Dragging {
		t.Error("quit events changed controller state")
	}
}

func TestController_Reset(t *testing.T) {
	sink := newTestSink()
	id := NewObjectID()
	c := NewController(id, sink, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0), input.Moved(4, 3))

	step, err := c.Handle(input.Reset())
	if err != nil {
		t.Fatal(err)
	}
	if step.Before != Dragging || step.After != Idle || step.Rotated {
		t.Errorf("step = %+v", step)
	}
	if c.Orientation() != mgl64.QuatIdent() || step.Orientation != mgl64.QuatIdent() {
		t.Errorf("orientation = %v, want identity", c.Orientation())
	}
	if _, ok := c.LastCursor(); ok {
		t.Error("reset kept the baseline")
	}
	if sink.applied[id] != mgl64.QuatIdent() {
		t.Errorf("sink = %v, want identity", sink.applied[id])
	}

	// Moves after a reset stay inert until the next press.
	drive(t, c, input.Moved(10, 10))
	if c.Orientation() != mgl64.QuatIdent() {
		t.Error("move after reset rotated")
	}
}

func TestController_SinkFailure(t *testing.T) {
	sink := newTestSink()
	sink.fail = true
	id := NewObjectID()
	c := NewController(id, sink, DefaultConfig())
	drive(t, c, input.Pressed(input.ButtonLeft), input.Moved(0, 0))

	step, err := c.Handle(input.Moved(5, 0))
	if !errors.Is(err, ErrObjectNotFound) {
		t.Fatalf("error = %v, want ErrObjectNotFound", err)
	}
	var ue *UpdateError
	if !errors.As(err, &ue) || ue.Object != id {
		t.Errorf("error = %#v, want *UpdateError for %s", err, id)
	}
	if !step.Rotated || c.Orientation() == mgl64.QuatIdent() {
		t.Error("state must advance even when the sink fails")
	}
	if p, _ := c.LastCursor(); p != (input.Point{X: 5, Y: 0}) {
		t.Errorf("baseline = %v, want (5,0)", p)
	}

	sink.fail = false
	if _, err := c.Handle(input.Moved(9, 0)); err != nil {
		t.Fatalf("recovery failed: %v", err)
	}
	if sink.applied[id] != c.Orientation() {
		t.Error("sink not updated after recovery")
	}
	if sink.calls != 2 {
		t.Errorf("sink calls = %d, want 2 (no retries)", sink.calls)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"default", DefaultConfig(), false},
		{"small", Config{Sensitivity: 0.01}, false},
		{"zero", Config{}, true},
		{"negative", Config{Sensitivity: -2}, true},
		{"nan", Config{Sensitivity: math.NaN()}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
