package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Edge is a wireframe segment in object-local coordinates. Tag selects the
// glyph or color hosts draw it with.
type Edge struct {
	A, B mgl64.Vec3
	Tag  rune
}

type Mesh struct {
	Kind  string
	Edges []Edge
}

func (m *Mesh) add(a, b mgl64.Vec3, tag rune) {
	m.Edges = append(m.Edges, Edge{A: a, B: b, Tag: tag})
}

// Cube returns the twelve edges of an axis-aligned cube centered at the origin.
func Cube(size float64) *Mesh {
	m, s := &Mesh{Kind: "cube"}, size/2
	v := []mgl64.Vec3{
		{-s, -s, -s}, {s, -s, -s}, {s, s, -s}, {-s, s, -s},
		{-s, -s, s}, {s, -s, s}, {s, s, s}, {-s, s, s},
	}
	ei := [][2]int{{0, 1}, {1, 2}, {2, 3}, {3, 0}, {4, 5}, {5, 6}, {6, 7}, {7, 4}, {0, 4}, {1, 5}, {2, 6}, {3, 7}}
	for _, e := range ei {
		m.add(v[e[0]], v[e[1]], '#')
	}
	return m
}

// Sphere returns a UV sphere: rings-1 latitude circles and segments
// meridians. The poles lie on the y axis.
func Sphere(radius float64, rings, segments int) *Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	m := &Mesh{Kind: "sphere"}
	point := func(ring, seg int) mgl64.Vec3 {
		phi := math.Pi * float64(ring) / float64(rings)
		theta := 2 * math.Pi * float64(seg) / float64(segments)
		return mgl64.Vec3{
			radius * math.Sin(phi) * math.Cos(theta),
			radius * math.Cos(phi),
			radius * math.Sin(phi) * math.Sin(theta),
		}
	}
	for r := 1; r < rings; r++ {
		for s := 0; s < segments; s++ {
			m.add(point(r, s), point(r, (s+1)%segments), 'o')
		}
	}
	for s := 0; s < segments; s++ {
		for r := 0; r < rings; r++ {
			m.add(point(r, s), point(r+1, s), '|')
		}
	}
	return m
}

// Axes returns the three positive unit axes scaled to length.
func Axes(length float64) *Mesh {
	m, o := &Mesh{Kind: "axes"}, mgl64.Vec3{}
	m.add(o, mgl64.Vec3{length, 0, 0}, 'X')
	m.add(o, mgl64.Vec3{0, length, 0}, 'Y')
	m.add(o, mgl64.Vec3{0, 0, length}, 'Z')
	return m
}

// Globe is a sphere with its axes drawn through it, so rotation about any
// axis stays visible.
func Globe(radius float64, rings, segments int) *Mesh {
	m := Sphere(radius, rings, segments)
	m.Kind = "globe"
	m.Edges = append(m.Edges, Axes(radius*1.3).Edges...)
	return m
}

// NewMesh builds a mesh by kind. Size is the edge length for cubes and the
// radius otherwise.
func NewMesh(kind string, size float64, rings, segments int) (*Mesh, error) {
	if size <= 0 {
		size = 1
	}
	if rings == 0 {
		rings = 8
	}
	if segments == 0 {
		segments = 12
	}
	switch kind {
	case "cube":
		return Cube(size), nil
	case "sphere":
		return Sphere(size, rings, segments), nil
	case "globe":
		return Globe(size, rings, segments), nil
	case "axes":
		return Axes(size), nil
	default:
		return nil, &MeshError{Kind: kind}
	}
}

// MeshKinds lists the kinds NewMesh accepts.
func MeshKinds() []string { return []string{"axes", "cube", "globe", "sphere"} }
