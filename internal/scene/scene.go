package scene

import (
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/trackball/internal/trackball"
)

const DefaultCamera = 4.0

// Object is one rigid, rotatable body. Rotation is written by the trackball
// through Scene.ApplyOrientation.
type Object struct {
	ID       trackball.ObjectID
	Name     string
	Mesh     *Mesh
	Offset   mgl64.Vec3
	Rotation mgl64.Quat
}

// Segment is a world-space edge ready for projection.
type Segment struct {
	A, B   mgl64.Vec3
	Tag    rune
	Object trackball.ObjectID
}

// Transform maps a local mesh point into world space.
func (o *Object) Transform(p mgl64.Vec3) mgl64.Vec3 {
	return o.Rotation.Rotate(p).Add(o.Offset)
}

// Scene is the orientation sink for a set of objects. It is not safe for
// concurrent use; hosts own one scene per event loop.
type Scene struct {
	Name   string
	Camera float64

	objects map[trackball.ObjectID]*Object
	order   []trackball.ObjectID
}

func New(name string) *Scene {
	return &Scene{
		Name:    name,
		Camera:  DefaultCamera,
		objects: make(map[trackball.ObjectID]*Object),
		order:   make([]trackball.ObjectID, 0),
	}
}

// Add instantiates an object with identity rotation and returns its id.
func (s *Scene) Add(name string, mesh *Mesh, offset mgl64.Vec3) trackball.ObjectID {
	id := trackball.NewObjectID()
	s.AddWithID(id, name, mesh, offset)
	return id
}

// AddWithID instantiates an object under a known id, replacing any object
// already registered with it. Replay uses it to rebuild recorded scenes.
func (s *Scene) AddWithID(id trackball.ObjectID, name string, mesh *Mesh, offset mgl64.Vec3) {
	if _, ok := s.objects[id]; !ok {
		s.order = append(s.order, id)
	}
	s.objects[id] = &Object{
		ID:       id,
		Name:     name,
		Mesh:     mesh,
		Offset:   offset,
		Rotation: mgl64.QuatIdent(),
	}
}

// ApplyOrientation implements trackball.OrientationSink.
func (s *Scene) ApplyOrientation(id trackball.ObjectID, q mgl64.Quat) error {
	o, ok := s.objects[id]
	if !ok {
		return fmt.Errorf("scene %q: object %s: %w", s.Name, id, trackball.ErrObjectNotFound)
	}
	o.Rotation = q
	return nil
}

// Remove deletes an object. Later writes for id fail with
// trackball.ErrObjectNotFound.
func (s *Scene) Remove(id trackball.ObjectID) error {
	if _, ok := s.objects[id]; !ok {
		return fmt.Errorf("scene %q: object %s: %w", s.Name, id, trackball.ErrObjectNotFound)
	}
	delete(s.objects, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func (s *Scene) Object(id trackball.ObjectID) (*Object, bool) {
	o, ok := s.objects[id]
	return o, ok
}

// Lookup finds an object by name.
func (s *Scene) Lookup(name string) (*Object, bool) {
	for _, id := range s.order {
		if o := s.objects[id]; o.Name == name {
			return o, true
		}
	}
	return nil, false
}

// Objects returns objects in insertion order.
func (s *Scene) Objects() []*Object {
	out := make([]*Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.objects[id])
	}
	return out
}

func (s *Scene) IDs() []trackball.ObjectID {
	ids := make([]trackball.ObjectID, len(s.order))
	copy(ids, s.order)
	return ids
}

func (s *Scene) Len() int { return len(s.order) }

// Reset returns every object to identity rotation.
func (s *Scene) Reset() {
	for _, o := range s.objects {
		o.Rotation = mgl64.QuatIdent()
	}
}

// Segments returns every edge of every object in world space.
func (s *Scene) Segments() []Segment {
	n := 0
	for _, o := range s.objects {
		n += len(o.Mesh.Edges)
	}
	segs := make([]Segment, 0, n)
	for _, id := range s.order {
		o := s.objects[id]
		for _, e := range o.Mesh.Edges {
			segs = append(segs, Segment{
				A:      o.Transform(e.A),
				B:      o.Transform(e.B),
				Tag:    e.Tag,
				Object: id,
			})
		}
	}
	return segs
}

// Description is the YAML form of a scene.
type Description struct {
	Name    string              `yaml:"name"`
	Camera  float64             `yaml:"camera,omitempty"`
	Objects []ObjectDescription `yaml:"objects"`
}

type ObjectDescription struct {
	Name     string    `yaml:"name"`
	Mesh     string    `yaml:"mesh"`
	Size     float64   `yaml:"size,omitempty"`
	Rings    int       `yaml:"rings,omitempty"`
	Segments int       `yaml:"segments,omitempty"`
	Offset   []float64 `yaml:"offset,omitempty"`
}

// Build instantiates the described scene with fresh object ids.
func (d Description) Build() (*Scene, error) {
	if len(d.Objects) == 0 {
		return nil, fmt.Errorf("scene %q: %w", d.Name, ErrEmpty)
	}
	s := New(d.Name)
	if d.Camera > 0 {
		s.Camera = d.Camera
	}
	for i, od := range d.Objects {
		mesh, err := NewMesh(od.Mesh, od.Size, od.Rings, od.Segments)
		if err != nil {
			return nil, &MeshError{Kind: od.Mesh, Object: od.name(i)}
		}
		s.Add(od.name(i), mesh, od.offset())
	}
	return s, nil
}

func (od ObjectDescription) name(i int) string {
	if od.Name != "" {
		return od.Name
	}
	return fmt.Sprintf("%s-%d", od.Mesh, i)
}

func (od ObjectDescription) offset() mgl64.Vec3 {
	var v mgl64.Vec3
	copy(v[:], od.Offset)
	return v
}

// Parse decodes a YAML scene description and builds it.
func Parse(data []byte) (*Scene, error) {
	var d Description
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("scene: parse: %w", err)
	}
	return d.Build()
}

func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Open resolves name as a built-in preset first and a YAML file second.
func Open(name string) (*Scene, error) {
	if d, ok := Presets[name]; ok {
		return d.Build()
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPreset, name)
	}
	return Load(name)
}
