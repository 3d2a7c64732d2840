package scene

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMesh   = errors.New("scene: unknown mesh kind")
	ErrUnknownPreset = errors.New("scene: unknown preset")
	ErrEmpty         = errors.New("scene: no objects")
)

// MeshError reports a mesh kind NewMesh does not know.
type MeshError struct {
	Kind   string
	Object string
}

func (e *MeshError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("scene: unknown mesh kind %q", e.Kind)
	}
	return fmt.Sprintf("scene: object %q: unknown mesh kind %q", e.Object, e.Kind)
}

func (e *MeshError) Unwrap() error { return ErrUnknownMesh }
