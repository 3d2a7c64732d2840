package viz

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/san-kum/trackball/internal/scene"
)

func TestCanvasSetUnset(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	if c.Grid[0][0] != 0x2801 {
		t.Errorf("cell 0 = %U, want U+2801", c.Grid[0][0])
	}
	if c.Grid[0][1] != 0x2880 {
		t.Errorf("cell 1 = %U, want U+2880", c.Grid[0][1])
	}
	if !c.IsSet(3, 3) || c.IsSet(1, 1) {
		t.Error("IsSet mismatch")
	}

	c.Unset(0, 0)
	if c.Grid[0][0] != brailleBlank {
		t.Errorf("after unset = %U", c.Grid[0][0])
	}

	// Out of range writes are dropped.
	c.Set(-1, 0)
	c.Set(100, 100)
	c.Unset(-5, -5)
}

func TestCanvasDrawLine(t *testing.T) {
	c := NewCanvas(4, 2)
	w, h := c.Dots()
	if w != 8 || h != 8 {
		t.Fatalf("Dots() = %d, %d", w, h)
	}
	c.DrawLine(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot %d not set", i)
		}
	}
	c.Clear()
	if strings.ContainsFunc(c.String(), func(r rune) bool { return r != brailleBlank && r != '\n' }) {
		t.Error("Clear left dots behind")
	}
}

func TestCanvasResize(t *testing.T) {
	c := NewCanvas(3, 3)
	c.Set(0, 0)
	c.Resize(5, 0)
	if c.Width != 5 || c.Height != 1 || len(c.Grid) != 1 || len(c.Grid[0]) != 5 {
		t.Errorf("Resize: %dx%d", c.Width, c.Height)
	}
	if c.IsSet(0, 0) {
		t.Error("Resize kept old dots")
	}
	if lines := strings.Split(c.String(), "\n"); len(lines) != 1 {
		t.Errorf("String() has %d lines", len(lines))
	}
}

func TestCameraProject(t *testing.T) {
	cam := NewCamera(4)

	x, y, d, ok := cam.Project(mgl64.Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 || d != 4 {
		t.Errorf("origin -> %v,%v,%v,%v", x, y, d, ok)
	}

	x, y, _, _ = cam.Project(mgl64.Vec3{1, 1, 0}, 100, 80)
	if x != 70 || y != 20 {
		t.Errorf("(1,1,0) -> %v,%v, want 70,20", x, y)
	}

	if _, _, _, ok := cam.Project(mgl64.Vec3{0, 0, 4}, 100, 80); ok {
		t.Error("point on the camera plane should not project")
	}
}

func TestCameraZoomClamp(t *testing.T) {
	cam := NewCamera(0)
	if cam.Distance != scene.DefaultCamera {
		t.Errorf("distance = %v, want default", cam.Distance)
	}
	for i := 0; i < 50; i++ {
		cam.ZoomIn()
	}
	if cam.Zoom != maxZoom {
		t.Errorf("zoom = %v, want %v", cam.Zoom, maxZoom)
	}
	for i := 0; i < 50; i++ {
		cam.ZoomOut()
	}
	if cam.Zoom != minZoom {
		t.Errorf("zoom = %v, want %v", cam.Zoom, minZoom)
	}
}

func TestRenderScene(t *testing.T) {
	s, err := scene.GetPreset("cube")
	if err != nil {
		t.Fatal(err)
	}
	c := NewCanvas(20, 10)
	Render(c, s, NewCamera(s.Camera))

	before := c.String()
	if !strings.ContainsFunc(before, func(r rune) bool { return r > brailleBlank }) {
		t.Fatal("nothing drawn")
	}

	id := s.IDs()[0]
	s.ApplyOrientation(id, mgl64.QuatRotate(mgl64.DegToRad(40), mgl64.Vec3{1, 1, 0}.Normalize()))
	c.Clear()
	Render(c, s, NewCamera(s.Camera))
	if c.String() == before {
		t.Error("rotation did not change the rendering")
	}

	Render(nil, s, nil)
}
