package trackball

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
	"github.com/san-kum/trackball/internal/input"
)

// ObjectID identifies a rotatable object.
type ObjectID = uuid.UUID

// NewObjectID returns a fresh random object id.
func NewObjectID() ObjectID { return uuid.New() }

// DragState is the controller's interaction mode.
type DragState uint8

const (
	Idle DragState = iota
	Dragging
)

func (s DragState) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// DefaultSensitivity is the rotation in degrees per unit of cursor travel.
const DefaultSensitivity = 1.0

type Config struct {
	// Sensitivity is degrees of rotation per unit of cursor distance.
	Sensitivity float64
}

func DefaultConfig() Config {
	return Config{Sensitivity: DefaultSensitivity}
}

func (c Config) Validate() error {
	if c.Sensitivity <= 0 || math.IsNaN(c.Sensitivity) || math.IsInf(c.Sensitivity, 0) {
		return ErrInvalidSensitivity
	}
	return nil
}

// Step describes what one event did to one controller.
type Step struct {
	Object      ObjectID
	Event       input.Event
	Before      DragState
	After       DragState
	Rotated     bool
	Angle       float64 // degrees applied by this step, 0 unless Rotated
	Orientation mgl64.Quat
}

// OrientationSink receives computed orientations. Implementations return an
// error wrapping ErrObjectNotFound when id cannot be resolved.
type OrientationSink interface {
	ApplyOrientation(id ObjectID, q mgl64.Quat) error
}

// SinkFunc adapts a function to OrientationSink.
type SinkFunc func(id ObjectID, q mgl64.Quat) error

func (f SinkFunc) ApplyOrientation(id ObjectID, q mgl64.Quat) error { return f(id, q) }

// Observer is notified of every step a Registry dispatches.
type Observer interface {
	OnStep(s Step)
}
