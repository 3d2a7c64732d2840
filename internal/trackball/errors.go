package trackball

import (
	"errors"
	"fmt"

	"github.com/san-kum/trackball/internal/input"
)

// Domain errors for trackball operations.
var (
	// ErrObjectNotFound indicates the sink could not resolve the target object.
	ErrObjectNotFound = errors.New("trackball: object not found")

	// ErrUnknownObject indicates an id with no attached controller.
	ErrUnknownObject = errors.New("trackball: no controller attached for object")

	// ErrInvalidSensitivity indicates a non-positive or non-finite sensitivity.
	ErrInvalidSensitivity = errors.New("trackball: sensitivity must be positive and finite")
)

// UpdateError reports an orientation that was computed but could not be
// applied. The controller state has already advanced when this is returned.
type UpdateError struct {
	Object  ObjectID
	Event   input.Event
	Wrapped error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("apply orientation for %s on %s: %v", e.Object, e.Event, e.Wrapped)
}

func (e *UpdateError) Unwrap() error {
	return e.Wrapped
}
